package models

// FAQ is a genuine question raised in the chat
type FAQ struct {
	Question string `json:"question"`
	Asker    string `json:"asker"`
}

// HelpInteraction records one member helping another
type HelpInteraction struct {
	Helper          string `json:"helper"`
	Recipient       string `json:"recipient"`
	Task            string `json:"task"`
	Assistance      string `json:"assistance"`
	SuggestedPoints int    `json:"suggested_points"`
	Reason          string `json:"reason"`
}

// ActionItem is a concrete follow-up mentioned in the chat
type ActionItem struct {
	Description string `json:"description"`
	MentionedBy string `json:"mentioned_by"`
	Type        string `json:"type"`
}

// ChatAnalysis is the result of analyzing chat messages
type ChatAnalysis struct {
	Summary          string            `json:"summary"`
	FAQ              []FAQ             `json:"faq"`
	HelpInteractions []HelpInteraction `json:"help_interactions"`
	ActionItems      []ActionItem      `json:"action_items"`
}

// Normalize replaces nil collections with empty ones
func (a *ChatAnalysis) Normalize() {
	if a.FAQ == nil {
		a.FAQ = []FAQ{}
	}
	if a.HelpInteractions == nil {
		a.HelpInteractions = []HelpInteraction{}
	}
	if a.ActionItems == nil {
		a.ActionItems = []ActionItem{}
	}
}
