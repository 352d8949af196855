package models

// TaskRequirements describes who can pick up a task
type TaskRequirements struct {
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	AccessLevel     string   `json:"access_level"`
	ExperienceLevel string   `json:"experience_level"`
}

// SuggestedReward is the reward proposed for a task or contribution
type SuggestedReward struct {
	Points        int      `json:"points"`
	Badges        []string `json:"badges,omitempty"`
	MonetaryValue float64  `json:"monetary_value,omitempty"`
	Reasoning     string   `json:"reasoning"`
}

// IdentifiedTask is a community need found in the chat
type IdentifiedTask struct {
	Description     string           `json:"description"`
	Type            string           `json:"type"`
	Evidence        []string         `json:"evidence"`
	Requirements    TaskRequirements `json:"requirements"`
	SuggestedReward SuggestedReward  `json:"suggested_reward"`
}

// Contribution is valuable work already done by a member
type Contribution struct {
	Contributor     string          `json:"contributor"`
	Description     string          `json:"description"`
	Impact          string          `json:"impact"`
	SuggestedReward SuggestedReward `json:"suggested_reward"`
}

// TaskAnalysis holds identified tasks and contributions
type TaskAnalysis struct {
	IdentifiedTasks []IdentifiedTask `json:"identified_tasks"`
	Contributions   []Contribution   `json:"contributions"`
}

// Normalize replaces nil collections with empty ones
func (a *TaskAnalysis) Normalize() {
	if a.IdentifiedTasks == nil {
		a.IdentifiedTasks = []IdentifiedTask{}
	}
	if a.Contributions == nil {
		a.Contributions = []Contribution{}
	}
	for i := range a.IdentifiedTasks {
		if a.IdentifiedTasks[i].Evidence == nil {
			a.IdentifiedTasks[i].Evidence = []string{}
		}
		if a.IdentifiedTasks[i].Requirements.Skills == nil {
			a.IdentifiedTasks[i].Requirements.Skills = []string{}
		}
	}
}
