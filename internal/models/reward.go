package models

// RewardMetadata is a free-form key/value attached to a reward
type RewardMetadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IdentifiedReward is a badge or token suggested for a member
type IdentifiedReward struct {
	DiscordName string           `json:"discordName"`
	RewardType  string           `json:"rewardType"` // badge or token
	RewardName  string           `json:"rewardName"`
	Amount      float64          `json:"amount"`
	RewardID    string           `json:"rewardId"`
	Reason      string           `json:"reason"`
	Metadata    []RewardMetadata `json:"metadata"`
}

// MetadataValue returns the value stored under key, if any
func (r IdentifiedReward) MetadataValue(key string) string {
	for _, m := range r.Metadata {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// RewardAnalysis holds rewards identified in the chat
type RewardAnalysis struct {
	IdentifiedRewards []IdentifiedReward `json:"identified_rewards"`
}

// Normalize replaces nil collections with empty ones
func (a *RewardAnalysis) Normalize() {
	if a.IdentifiedRewards == nil {
		a.IdentifiedRewards = []IdentifiedReward{}
	}
	for i := range a.IdentifiedRewards {
		if a.IdentifiedRewards[i].Metadata == nil {
			a.IdentifiedRewards[i].Metadata = []RewardMetadata{}
		}
	}
}
