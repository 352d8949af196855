package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Variant identifies one kind of analysis run
type Variant string

const (
	// VariantChat produces a summary, FAQ, help interactions and action items
	VariantChat Variant = "chat"

	// VariantInsight produces thematic community insights over a date range
	VariantInsight Variant = "insight"

	// VariantTask identifies community tasks and notable contributions
	VariantTask Variant = "task"

	// VariantReward identifies contributions that deserve badge or token rewards
	VariantReward Variant = "reward"
)

// Variants lists every supported variant in a stable order
var Variants = []Variant{VariantChat, VariantInsight, VariantTask, VariantReward}

// String returns string representation of Variant
func (v Variant) String() string {
	return string(v)
}

// ParseVariant converts user input into a Variant
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantChat, VariantInsight, VariantTask, VariantReward:
		return v, nil
	case "insights":
		return VariantInsight, nil
	case "tasks":
		return VariantTask, nil
	case "rewards":
		return VariantReward, nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// FailureMode decides what happens when inference fails for a chunk
type FailureMode string

const (
	// FailureLenient substitutes a fallback unit and keeps going
	FailureLenient FailureMode = "lenient"

	// FailureStrict aborts the run on the first failed chunk
	FailureStrict FailureMode = "strict"
)

// ParseFailureMode converts user input into a FailureMode
func ParseFailureMode(s string) (FailureMode, error) {
	switch m := FailureMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FailureLenient, FailureStrict:
		return m, nil
	}
	return "", fmt.Errorf("unknown failure mode %q", s)
}

// Message is a single chat message fetched from the data source
type Message struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	ServerID    string    `json:"server_id"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name,omitempty"`
}

// UserDirectory maps author IDs to display names
type UserDirectory map[string]string

// Display returns the display name for an author, falling back to the raw ID
func (d UserDirectory) Display(userID string) string {
	if name, ok := d[userID]; ok && name != "" {
		return name
	}
	return userID
}

// UniqueUserIDs returns the distinct author IDs in first-seen order
func UniqueUserIDs(messages []Message) []string {
	seen := make(map[string]struct{}, len(messages))
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		if _, ok := seen[msg.UserID]; ok {
			continue
		}
		seen[msg.UserID] = struct{}{}
		ids = append(ids, msg.UserID)
	}
	return ids
}

// DateRange is an inclusive time span
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Extend widens the range so it also covers other
func (r DateRange) Extend(other DateRange) DateRange {
	if other.IsZero() {
		return r
	}
	if r.IsZero() {
		return other
	}
	if other.Start.Before(r.Start) {
		r.Start = other.Start
	}
	if other.End.After(r.End) {
		r.End = other.End
	}
	return r
}

// UnmarshalJSON accepts any shape and keeps only bounds it can parse.
// Inference output sometimes carries ranges that are later overwritten anyway.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = DateRange{}
		return nil
	}
	r.Start = parseLooseTime(raw.Start)
	r.End = parseLooseTime(raw.End)
	return nil
}

func parseLooseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SpanOf returns the min/max creation time of messages
func SpanOf(messages []Message) DateRange {
	var r DateRange
	for _, msg := range messages {
		r = r.Extend(DateRange{Start: msg.CreatedAt, End: msg.CreatedAt})
	}
	return r
}

// VariantSettings holds per-variant pipeline tuning
type VariantSettings struct {
	ChunkSize   int
	FailureMode FailureMode
	Consolidate bool
}

// AppConfig represents application configuration
type AppConfig struct {
	// Gemini API settings
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTimeout        int
	LLMTemperature       float32
	LLMTopP              float32
	LLMTopK              int32
	LLMMaxTokens         int32
	LLMRequestsPerMinute int

	// Data source settings
	DataSource      string // "supabase" or "postgres"
	SupabaseURL     string
	SupabaseKey     string
	SupabaseTimeout int
	DatabaseURL     string
	UserCacheSize   int

	// Pipeline settings
	Variants         map[Variant]VariantSettings
	InferenceRetries int

	// Output settings
	OutputDir   string
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	// Notifications
	TelegramToken  string
	TelegramChatID int64
	SlackToken     string
	SlackChannel   string

	// Events
	NATSURL   string
	NATSToken string

	// Service settings
	CommunityConfig string
	APIPort         int
	Timezone        string
	LogLevel        string
	Environment     string
}

// Settings returns the tuning for a variant, falling back to defaults
func (c *AppConfig) Settings(v Variant) VariantSettings {
	if s, ok := c.Variants[v]; ok {
		return s
	}
	return DefaultVariantSettings()[v]
}

// DefaultVariantSettings returns the built-in tuning per variant
func DefaultVariantSettings() map[Variant]VariantSettings {
	return map[Variant]VariantSettings{
		VariantChat:    {ChunkSize: 20, FailureMode: FailureLenient, Consolidate: true},
		VariantInsight: {ChunkSize: 100, FailureMode: FailureLenient, Consolidate: true},
		VariantTask:    {ChunkSize: 100, FailureMode: FailureStrict, Consolidate: false},
		VariantReward:  {ChunkSize: 150, FailureMode: FailureStrict, Consolidate: false},
	}
}
