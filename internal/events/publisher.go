// Package events announces completed analysis runs on NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/models"
)

// SubjectPrefix is the root of every subject the analyzer publishes on
const SubjectPrefix = "analyzer.run"

// SubjectCompleted receives one event per finished run
const SubjectCompleted = SubjectPrefix + ".completed"

// RunCompleted is the payload published when a run finishes
type RunCompleted struct {
	ReportID     string         `json:"report_id"`
	Variant      models.Variant `json:"variant"`
	ServerID     string         `json:"server_id"`
	ServerName   string         `json:"server_name"`
	Channels     []string       `json:"channels"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	MessageCount int            `json:"message_count"`
	FailedChunks int            `json:"failed_chunks"`
	Artifacts    []string       `json:"artifacts"`
	CompletedAt  time.Time      `json:"completed_at"`
}

// NewRunCompleted builds the event for a saved report
func NewRunCompleted(r *models.Report) RunCompleted {
	return RunCompleted{
		ReportID:     r.ID,
		Variant:      r.Variant,
		ServerID:     r.ServerID,
		ServerName:   r.ServerName,
		Channels:     r.Channels,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		MessageCount: r.MessageCount,
		FailedChunks: r.FailedChunks,
		Artifacts:    r.Artifacts,
		CompletedAt:  r.CreatedAt,
	}
}

// Publisher sends run events over a NATS connection
type Publisher struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger zerolog.Logger
}

// NewPublisher connects to NATS, retrying in the background when the server is not up yet
func NewPublisher(url, token string, logger zerolog.Logger) (*Publisher, error) {
	logger = logger.With().Str("component", "events").Logger()

	opts := []nats.Option{
		nats.Name("community-analyzer"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info().Msg("NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

// PublishRun announces a completed run
func (p *Publisher) PublishRun(ctx context.Context, report *models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Publish(SubjectCompleted, NewRunCompleted(report)); err != nil {
		return err
	}

	p.logger.Debug().
		Str("subject", SubjectCompleted).
		Str("report_id", report.ID).
		Msg("Run event published")
	return nil
}

// Publish marshals data as JSON and publishes it on subject
func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Subscribe registers handler for subject, which may contain wildcards
func (p *Publisher) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := p.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", subject, err)
	}
	p.subs = append(p.subs, sub)
	p.logger.Info().Str("subject", subject).Msg("Subscribed")
	return nil
}

// Close drains subscriptions and closes the connection
func (p *Publisher) Close() {
	for _, sub := range p.subs {
		_ = sub.Unsubscribe()
	}
	p.conn.Close()
}
