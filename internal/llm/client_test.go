package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", Options{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient("key", Options{Timeout: 30}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, c.opts.Model)
	assert.Equal(t, 30.0, c.timeout.Seconds())
	assert.NoError(t, c.Close())
}

func TestConfigureSetsJSONMode(t *testing.T) {
	c, err := NewClient("key", Options{Temperature: 0.2, TopK: 40, MaxTokens: 1024, JSON: true}, zerolog.Nop())
	require.NoError(t, err)

	model := &genai.GenerativeModel{}
	c.configure(model)

	assert.Equal(t, JSONMIMEType, model.ResponseMIMEType)
	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.2, *model.Temperature, 1e-6)
	require.NotNil(t, model.TopK)
	assert.Equal(t, int32(40), *model.TopK)
	require.NotNil(t, model.MaxOutputTokens)
	assert.Equal(t, int32(1024), *model.MaxOutputTokens)
	assert.Nil(t, model.TopP)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"summary":`), genai.Text(` "ok"}`)}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"summary": "ok"}`, text)
}

func TestResponseTextEmpty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responseText(tt.resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}
