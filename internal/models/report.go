package models

import "time"

// Report is the persisted record of one completed analysis run
type Report struct {
	ID           string    `json:"id"`
	Variant      Variant   `json:"variant"`
	ServerID     string    `json:"server_id"`
	ServerName   string    `json:"server_name"`
	Channels     []string  `json:"channels"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	MessageCount int       `json:"message_count"`
	ChunkCount   int       `json:"chunk_count"`
	FailedChunks int       `json:"failed_chunks"`
	Consolidated bool      `json:"consolidated"`
	Summary      string    `json:"summary,omitempty"`
	Artifacts    []string  `json:"artifacts"`
	CreatedAt    time.Time `json:"created_at"`
}

// RunRequest describes one analysis run
type RunRequest struct {
	Variant  Variant   `json:"variant"`
	Server   string    `json:"server"`   // name or ID
	Channels []string  `json:"channels"` // names or IDs, "all" for every known channel
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`

	// Overrides the configured failure mode when set
	FailureMode FailureMode `json:"failure_mode,omitempty"`
}
