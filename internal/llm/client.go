package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

var (
	// ErrEmptyResponse is returned when Gemini answers without any text
	ErrEmptyResponse = errors.New("empty response from LLM")

	// ErrMissingAPIKey is returned when the client is built without credentials
	ErrMissingAPIKey = errors.New("gemini API key is required")
)

// Client represents a Gemini LLM client.
// It satisfies analysis.Completer.
type Client struct {
	apiKey      string
	opts        Options
	timeout     time.Duration
	logger      zerolog.Logger
	genaiClient *genai.Client
	mu          sync.Mutex
}

// NewClient creates a new Gemini LLM client
func NewClient(apiKey string, opts Options, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Client{
		apiKey:      apiKey,
		opts:        opts,
		timeout:     time.Duration(opts.Timeout) * time.Second,
		logger:      logger.With().Str("component", "llm").Str("model", opts.Model).Logger(),
		genaiClient: nil, // Will be created on first use
	}, nil
}

// getClient returns or creates a genai client (thread-safe)
func (c *Client) getClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c.genaiClient = client
	c.logger.Info().Msg("Gemini client created and cached")
	return c.genaiClient, nil
}

// Close closes the LLM client and releases resources
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		err := c.genaiClient.Close()
		c.genaiClient = nil
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to close Gemini client")
			return err
		}
		c.logger.Info().Msg("Gemini client closed")
	}
	return nil
}

// Complete sends a single prompt and returns the raw text of the first candidate
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client, err := c.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get genai client: %w", err)
	}

	model := client.GenerativeModel(c.opts.Model)
	c.configure(model)

	c.logger.Debug().
		Int("prompt_length", len(prompt)).
		Str("prompt", excerpt(prompt, maxLoggedPrompt)).
		Msg("Sending request to LLM")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	c.logger.Info().
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("LLM response generated successfully")

	return text, nil
}

// configure applies generation parameters; zero values keep the model defaults
func (c *Client) configure(model *genai.GenerativeModel) {
	if c.opts.Temperature > 0 {
		model.SetTemperature(c.opts.Temperature)
	}
	if c.opts.TopP > 0 {
		model.SetTopP(c.opts.TopP)
	}
	if c.opts.TopK > 0 {
		model.SetTopK(c.opts.TopK)
	}
	if c.opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(c.opts.MaxTokens)
	}
	if c.opts.JSON {
		model.ResponseMIMEType = JSONMIMEType
	}
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no response candidates", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content parts", ErrEmptyResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts", ErrEmptyResponse)
	}
	return text.String(), nil
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
