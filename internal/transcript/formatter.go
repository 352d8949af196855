// Package transcript renders message batches into prompt-ready text.
package transcript

import (
	"strings"

	"github.com/community-analyzer/internal/models"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ChannelResolver turns a channel ID into a human-readable name
type ChannelResolver interface {
	ResolveChannelName(serverID, channelID string) (string, bool)
}

// Formatter renders chunks of messages as transcripts
type Formatter struct {
	resolver     ChannelResolver
	withChannels bool
}

// Option configures a Formatter
type Option func(*Formatter)

// WithChannels prefixes every line with the channel the message was posted in
func WithChannels(resolver ChannelResolver) Option {
	return func(f *Formatter) {
		f.withChannels = true
		f.resolver = resolver
	}
}

// New creates a new transcript formatter
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders one line per message in chunk order:
//
//	[2024-01-02T15:04:05.000Z] alice: hello
//
// With channels enabled the display name is preceded by "#channel".
func (f *Formatter) Format(chunk []models.Message, users models.UserDirectory) string {
	var b strings.Builder
	for i, msg := range chunk {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		b.WriteString(msg.CreatedAt.UTC().Format(TimestampLayout))
		b.WriteString("] ")
		if f.withChannels {
			if name := f.channelName(msg); name != "" {
				b.WriteByte('#')
				b.WriteString(name)
				b.WriteByte(' ')
			}
		}
		b.WriteString(users.Display(msg.UserID))
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}

// channelName resolves via the collaborator, then the raw ID, then the inline name
func (f *Formatter) channelName(msg models.Message) string {
	if f.resolver != nil {
		if name, ok := f.resolver.ResolveChannelName(msg.ServerID, msg.ChannelID); ok && name != "" {
			return name
		}
	}
	if msg.ChannelID != "" {
		return msg.ChannelID
	}
	return msg.ChannelName
}
