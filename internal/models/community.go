package models

// CommunityProfile describes a community for prompt context
type CommunityProfile struct {
	CommunityID        string                    `yaml:"community_id" json:"community_id,omitempty"`
	Name               string                    `yaml:"name" json:"name"`
	Description        string                    `yaml:"description" json:"description"`
	MissionStatement   string                    `yaml:"mission_statement" json:"mission_statement"`
	Goals              []string                  `yaml:"goals" json:"goals"`
	TargetParticipants []TargetParticipant       `yaml:"target_participants" json:"target_participants,omitempty"`
	CurrentCampaigns   []Campaign                `yaml:"current_campaigns" json:"current_campaigns,omitempty"`
	PointSystem        PointSystem               `yaml:"point_system" json:"point_system"`
	RewardGuidelines   RewardGuidelines          `yaml:"reward_guidelines" json:"reward_guidelines"`
	ExistingBadges     []string                  `yaml:"existing_badges" json:"existing_badges,omitempty"`
	Roles              map[string]RoleDefinition `yaml:"roles" json:"roles,omitempty"`
	Resources          map[string]string         `yaml:"resources" json:"resources,omitempty"`
}

// TargetParticipant is a kind of member the community wants to attract
type TargetParticipant struct {
	Role            string   `yaml:"role" json:"role"`
	SkillsNeeded    []string `yaml:"skills_needed" json:"skills_needed"`
	ExperienceLevel string   `yaml:"experience_level" json:"experience_level"`
}

// Campaign is a community initiative
type Campaign struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	StartDate   string `yaml:"start_date" json:"start_date"`
	EndDate     string `yaml:"end_date" json:"end_date,omitempty"`
	Status      string `yaml:"status" json:"status"` // active, upcoming or completed
}

// PointSystem lists how points are earned
type PointSystem struct {
	Rules           []string `yaml:"rules" json:"rules"`
	MonetaryRewards bool     `yaml:"monetary_rewards" json:"monetary_rewards"`
}

// RewardGuidelines bounds the rewards a run may suggest
type RewardGuidelines struct {
	MinPoints                 int                 `yaml:"min_points" json:"min_points"`
	MaxPoints                 int                 `yaml:"max_points" json:"max_points"`
	MonetaryThresholds        *MonetaryThresholds `yaml:"monetary_thresholds" json:"monetary_thresholds,omitempty"`
	RewardWorthyContributions []string            `yaml:"reward_worthy_contributions" json:"reward_worthy_contributions,omitempty"`
	ContributionExamples      []string            `yaml:"contribution_examples" json:"contribution_examples,omitempty"`
}

// MonetaryThresholds bounds monetary rewards
type MonetaryThresholds struct {
	MinValue float64 `yaml:"min_value" json:"min_value"`
	MaxValue float64 `yaml:"max_value" json:"max_value"`
	Currency string  `yaml:"currency" json:"currency,omitempty"`
}

// RoleDefinition describes a community role
type RoleDefinition struct {
	Description string   `yaml:"description" json:"description"`
	Permissions []string `yaml:"permissions" json:"permissions"`
}

// CommunityServer is a chat server with its known channels (id -> name)
type CommunityServer struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Channels map[string]string `yaml:"channels"`
}

// ExistingTask is a task already tracked outside the analyzer
type ExistingTask struct {
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
	Status      string `yaml:"status" json:"status,omitempty"`
}

// Schedule is a recurring analysis run
type Schedule struct {
	Name     string   `yaml:"name"`
	Cron     string   `yaml:"cron"`
	Variant  Variant  `yaml:"variant"`
	Server   string   `yaml:"server"`
	Channels []string `yaml:"channels"`
	Days     int      `yaml:"days"`
}
