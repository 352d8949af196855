package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/community-analyzer/internal/models"
)

// Slack posts digests to a Slack channel
type Slack struct {
	client  *slack.Client
	channel string
	logger  zerolog.Logger
}

// NewSlack creates a Slack notifier
func NewSlack(token, channel string, logger zerolog.Logger, opts ...slack.Option) *Slack {
	return &Slack{
		client:  slack.New(token, opts...),
		channel: channel,
		logger:  logger.With().Str("component", "slack").Logger(),
	}
}

// Notify posts the digest without link previews
func (s *Slack) Notify(ctx context.Context, report *models.Report) error {
	_, ts, err := s.client.PostMessageContext(ctx,
		s.channel,
		slack.MsgOptionText(Digest(report), false),
		slack.MsgOptionPostMessageParameters(slack.PostMessageParameters{
			UnfurlLinks: false,
			UnfurlMedia: false,
		}),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("channel", s.channel).
			Msg("Failed to post digest")
		return fmt.Errorf("failed to post slack message: %w", err)
	}

	s.logger.Info().
		Str("channel", s.channel).
		Str("ts", ts).
		Str("report_id", report.ID).
		Msg("Digest posted to Slack")
	return nil
}
