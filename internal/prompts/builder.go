package prompts

import (
	"fmt"

	"github.com/community-analyzer/internal/models"
)

// Builder renders prompts with the community profile and known tasks baked in
type Builder struct {
	profile       models.CommunityProfile
	existingTasks []models.ExistingTask
}

// NewBuilder creates a new prompt builder
func NewBuilder(profile models.CommunityProfile, existingTasks []models.ExistingTask) *Builder {
	return &Builder{profile: profile, existingTasks: existingTasks}
}

// Chat renders the chat analysis prompt
func (b *Builder) Chat(transcript string) string {
	return fmt.Sprintf(ChatTemplate, transcript)
}

// Insight renders the insight analysis prompt
func (b *Builder) Insight(transcript string) string {
	return fmt.Sprintf(InsightTemplate, transcript)
}

// Task renders the task analysis prompt
func (b *Builder) Task(transcript string) string {
	return fmt.Sprintf(TaskTemplate,
		CommunityContext(b.profile),
		ExistingTasks(b.existingTasks),
		RewardGuidelines(b.profile),
		transcript,
	)
}

// Reward renders the reward identification prompt
func (b *Builder) Reward(transcript string) string {
	g := b.profile.RewardGuidelines
	return fmt.Sprintf(RewardTemplate,
		CommunityContext(b.profile),
		orNone(bullets(g.RewardWorthyContributions, "   - ")),
		orNone(bullets(g.ContributionExamples, "- ")),
		transcript,
	)
}

// Analyze returns the per-chunk prompt for a variant
func (b *Builder) Analyze(v models.Variant) func(string) string {
	switch v {
	case models.VariantInsight:
		return b.Insight
	case models.VariantTask:
		return b.Task
	case models.VariantReward:
		return b.Reward
	}
	return b.Chat
}

// Consolidate returns the consolidation prompt for a variant.
// Its argument is the JSON array of per-chunk results.
func (b *Builder) Consolidate(v models.Variant) func(string) string {
	goal := chatConsolidationGoal
	switch v {
	case models.VariantInsight:
		goal = insightConsolidationGoal
	case models.VariantTask:
		goal = taskConsolidationGoal
	case models.VariantReward:
		goal = rewardConsolidationGoal
	}
	return func(payload string) string {
		return fmt.Sprintf(ConsolidateTemplate, goal, payload)
	}
}

func orNone(s string) string {
	if s == "" {
		return "   - None specified"
	}
	return s
}
