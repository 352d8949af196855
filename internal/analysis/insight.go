package analysis

import "github.com/community-analyzer/internal/models"

// InsightSchema describes the insight variant
func InsightSchema() Schema[models.InsightAnalysis] {
	return Schema[models.InsightAnalysis]{
		Variant: models.VariantInsight,
		Required: []Field{
			{Name: "summary", Kind: KindString},
			{Name: "key_topics", Kind: KindArray},
			{Name: "notable_interactions", Kind: KindArray},
			{Name: "emerging_trends", Kind: KindArray},
		},
		Fallback: func() models.InsightAnalysis {
			return models.InsightAnalysis{Summary: FallbackSummary}
		},
		Merge: MergeInsights,
	}
}

// MergeInsights merges insight units; the date range spans every unit
func MergeInsights(units []models.InsightAnalysis) models.InsightAnalysis {
	summaries := make([]string, 0, len(units))
	for _, u := range units {
		summaries = append(summaries, u.Summary)
	}

	merged := models.InsightAnalysis{
		Summary: mergeSummaries(summaries),
		KeyTopics: mergeList(units, func(u models.InsightAnalysis) []models.KeyTopic { return u.KeyTopics },
			TopicKeyOf, 0),
		NotableInteractions: mergeList(units, func(u models.InsightAnalysis) []models.NotableInteraction { return u.NotableInteractions },
			InteractionKeyOf, 0),
		EmergingTrends: mergeList(units, func(u models.InsightAnalysis) []string { return u.EmergingTrends },
			TrendKeyOf, 0),
	}
	if span, ok := unitsSpan(units); ok {
		merged.DateRange = span
	}
	merged.Normalize()
	return merged
}
