package analysis

import "github.com/community-analyzer/internal/models"

// TaskSchema describes the task variant
func TaskSchema() Schema[models.TaskAnalysis] {
	return Schema[models.TaskAnalysis]{
		Variant: models.VariantTask,
		Required: []Field{
			{Name: "identified_tasks", Kind: KindArray},
			{Name: "contributions", Kind: KindArray},
		},
		Fallback: func() models.TaskAnalysis { return models.TaskAnalysis{} },
		Merge:    MergeTasks,
	}
}

// MergeTasks merges task units
func MergeTasks(units []models.TaskAnalysis) models.TaskAnalysis {
	merged := models.TaskAnalysis{
		IdentifiedTasks: mergeList(units, func(u models.TaskAnalysis) []models.IdentifiedTask { return u.IdentifiedTasks },
			TaskKeyOf, 0),
		Contributions: mergeList(units, func(u models.TaskAnalysis) []models.Contribution { return u.Contributions },
			ContributionKeyOf, 0),
	}
	merged.Normalize()
	return merged
}
