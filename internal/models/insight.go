package models

// KeyTopic is a theme discussed by the community
type KeyTopic struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Participants []string `json:"participants"`
	KeyPoints    []string `json:"key_points"`
}

// NotableInteraction is a question, discussion or announcement worth highlighting
type NotableInteraction struct {
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Participants []string `json:"participants"`
	Impact       string   `json:"impact"`
}

// InsightAnalysis holds community insights for a span of messages
type InsightAnalysis struct {
	Summary             string               `json:"summary"`
	KeyTopics           []KeyTopic           `json:"key_topics"`
	NotableInteractions []NotableInteraction `json:"notable_interactions"`
	EmergingTrends      []string             `json:"emerging_trends"`
	DateRange           DateRange            `json:"dateRange"`
}

// Normalize replaces nil collections with empty ones
func (a *InsightAnalysis) Normalize() {
	if a.KeyTopics == nil {
		a.KeyTopics = []KeyTopic{}
	}
	if a.NotableInteractions == nil {
		a.NotableInteractions = []NotableInteraction{}
	}
	if a.EmergingTrends == nil {
		a.EmergingTrends = []string{}
	}
	for i := range a.KeyTopics {
		if a.KeyTopics[i].Participants == nil {
			a.KeyTopics[i].Participants = []string{}
		}
		if a.KeyTopics[i].KeyPoints == nil {
			a.KeyTopics[i].KeyPoints = []string{}
		}
	}
	for i := range a.NotableInteractions {
		if a.NotableInteractions[i].Participants == nil {
			a.NotableInteractions[i].Participants = []string{}
		}
	}
}

// Span returns the time span covered by the analysis
func (a InsightAnalysis) Span() DateRange {
	return a.DateRange
}

// SetSpan overwrites the time span covered by the analysis
func (a *InsightAnalysis) SetSpan(r DateRange) {
	a.DateRange = r
}
