package analysis

import "github.com/community-analyzer/internal/models"

// ChatLimits caps the merged chat lists
type ChatLimits struct {
	FAQ              int
	HelpInteractions int
	ActionItems      int
}

// DefaultChatLimits are the caps applied to chat aggregates
var DefaultChatLimits = ChatLimits{FAQ: 20, HelpInteractions: 10, ActionItems: 20}

// ChatSchema describes the chat variant
func ChatSchema() Schema[models.ChatAnalysis] {
	return Schema[models.ChatAnalysis]{
		Variant: models.VariantChat,
		Required: []Field{
			{Name: "summary", Kind: KindString},
			{Name: "faq", Kind: KindArray},
			{Name: "help_interactions", Kind: KindArray},
			{Name: "action_items", Kind: KindArray},
		},
		Fallback: func() models.ChatAnalysis {
			return models.ChatAnalysis{Summary: FallbackSummary}
		},
		Merge: ChatMerger(DefaultChatLimits),
	}
}

// ChatMerger returns a merge function applying limits
func ChatMerger(limits ChatLimits) func([]models.ChatAnalysis) models.ChatAnalysis {
	return func(units []models.ChatAnalysis) models.ChatAnalysis {
		summaries := make([]string, 0, len(units))
		for _, u := range units {
			summaries = append(summaries, u.Summary)
		}

		merged := models.ChatAnalysis{
			Summary: mergeSummaries(summaries),
			FAQ: mergeList(units, func(u models.ChatAnalysis) []models.FAQ { return u.FAQ },
				FAQKeyOf, limits.FAQ),
			HelpInteractions: mergeList(units, func(u models.ChatAnalysis) []models.HelpInteraction { return u.HelpInteractions },
				HelpKeyOf, limits.HelpInteractions),
			ActionItems: mergeList(units, func(u models.ChatAnalysis) []models.ActionItem { return u.ActionItems },
				ActionKeyOf, limits.ActionItems),
		}
		merged.Normalize()
		return merged
	}
}
