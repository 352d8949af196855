package analysis

import "github.com/community-analyzer/internal/models"

// RewardSchema describes the reward variant
func RewardSchema() Schema[models.RewardAnalysis] {
	return Schema[models.RewardAnalysis]{
		Variant: models.VariantReward,
		Required: []Field{
			{Name: "identified_rewards", Kind: KindArray},
		},
		Fallback: func() models.RewardAnalysis { return models.RewardAnalysis{} },
		Merge:    MergeRewards,
	}
}

// MergeRewards merges reward units
func MergeRewards(units []models.RewardAnalysis) models.RewardAnalysis {
	merged := models.RewardAnalysis{
		IdentifiedRewards: mergeList(units, func(u models.RewardAnalysis) []models.IdentifiedReward { return u.IdentifiedRewards },
			RewardKeyOf, 0),
	}
	merged.Normalize()
	return merged
}
