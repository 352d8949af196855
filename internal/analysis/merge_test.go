package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/models"
)

func TestNormalizeSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped newlines", `first\nsecond`, "first\nsecond"},
		{"collapse runs", "a\n\n\n\nb", "a\n\nb"},
		{"strip spaces around newlines", "a  \n   b", "a\nb"},
		{"blank lines with spaces", "a\n \n \n b", "a\n\nb"},
		{"trim", "\n\n  text  \n", "text"},
		{"keeps paragraph break", "a\n\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSummary(tt.in))
		})
	}
}

func TestMergeChatFirstWriteWins(t *testing.T) {
	units := []models.ChatAnalysis{
		{
			Summary: "first",
			HelpInteractions: []models.HelpInteraction{
				{Helper: "bob", Recipient: "alice", Task: "deploy", SuggestedPoints: 50},
			},
		},
		{
			Summary: "second",
			HelpInteractions: []models.HelpInteraction{
				{Helper: "bob", Recipient: "alice", Task: "something else", SuggestedPoints: 10},
				{Helper: "carol", Recipient: "alice", Task: "review"},
			},
		},
	}

	merged := ChatSchema().Merge(units)

	require.Len(t, merged.HelpInteractions, 2)
	assert.Equal(t, "deploy", merged.HelpInteractions[0].Task)
	assert.Equal(t, 50, merged.HelpInteractions[0].SuggestedPoints)
	assert.Equal(t, "carol", merged.HelpInteractions[1].Helper)
	assert.Equal(t, "first\n\nsecond", merged.Summary)
}

func TestMergeKeysDoNotCollideOnDelimiters(t *testing.T) {
	units := []models.ChatAnalysis{{
		Summary: "s",
		FAQ: []models.FAQ{
			{Question: "a:b", Asker: "c"},
			{Question: "a", Asker: "b:c"},
		},
	}}

	merged := ChatSchema().Merge(units)

	assert.Len(t, merged.FAQ, 2)
}

func TestMergeChatCaps(t *testing.T) {
	unit := models.ChatAnalysis{Summary: "s"}
	for i := 0; i < 30; i++ {
		unit.FAQ = append(unit.FAQ, models.FAQ{Question: fmt.Sprintf("q%d", i), Asker: "a"})
		unit.HelpInteractions = append(unit.HelpInteractions, models.HelpInteraction{Helper: fmt.Sprintf("h%d", i), Recipient: "r"})
		unit.ActionItems = append(unit.ActionItems, models.ActionItem{Description: fmt.Sprintf("d%d", i), MentionedBy: "m"})
	}

	merged := ChatSchema().Merge([]models.ChatAnalysis{unit})

	require.Len(t, merged.FAQ, 20)
	require.Len(t, merged.HelpInteractions, 10)
	require.Len(t, merged.ActionItems, 20)
	assert.Equal(t, "q0", merged.FAQ[0].Question)
	assert.Equal(t, "q19", merged.FAQ[19].Question)
	assert.Equal(t, "h9", merged.HelpInteractions[9].Helper)
}

func TestMergeCustomChatLimits(t *testing.T) {
	unit := models.ChatAnalysis{FAQ: []models.FAQ{{Question: "a"}, {Question: "b"}, {Question: "c"}}}

	merged := ChatMerger(ChatLimits{FAQ: 2})([]models.ChatAnalysis{unit})

	assert.Len(t, merged.FAQ, 2)
}

func TestMergeEmptyInput(t *testing.T) {
	chat := ChatSchema().Merge(nil)
	assert.Equal(t, "", chat.Summary)
	assert.NotNil(t, chat.FAQ)
	assert.NotNil(t, chat.HelpInteractions)
	assert.NotNil(t, chat.ActionItems)

	insight := InsightSchema().Merge(nil)
	assert.NotNil(t, insight.KeyTopics)
	assert.NotNil(t, insight.EmergingTrends)
	assert.True(t, insight.DateRange.IsZero())

	task := TaskSchema().Merge(nil)
	assert.NotNil(t, task.IdentifiedTasks)
	assert.NotNil(t, task.Contributions)

	reward := RewardSchema().Merge(nil)
	assert.NotNil(t, reward.IdentifiedRewards)
}

func TestMergeSummariesDropFallbackSentinel(t *testing.T) {
	units := []models.ChatAnalysis{
		{Summary: "real work"},
		{Summary: FallbackSummary},
		{Summary: "more work"},
	}
	assert.Equal(t, "real work\n\nmore work", ChatSchema().Merge(units).Summary)

	allFailed := []models.ChatAnalysis{{Summary: FallbackSummary}, {Summary: FallbackSummary}}
	assert.Equal(t, FallbackSummary, ChatSchema().Merge(allFailed).Summary)
}

func chatUnits() []models.ChatAnalysis {
	return []models.ChatAnalysis{
		{
			Summary:     "Talked about the build.\\nCI is red.",
			FAQ:         []models.FAQ{{Question: "Why is CI red?", Asker: "alice"}},
			ActionItems: []models.ActionItem{{Description: "Fix CI", MentionedBy: "bob", Type: "Technical Tasks"}},
		},
		{
			Summary:          "CI fixed.",
			FAQ:              []models.FAQ{{Question: "Why is CI red?", Asker: "alice"}, {Question: "Can we release?", Asker: "carol"}},
			HelpInteractions: []models.HelpInteraction{{Helper: "bob", Recipient: "alice", Task: "CI"}},
		},
	}
}

func TestMergeIdempotence(t *testing.T) {
	t.Run("chat", func(t *testing.T) {
		units := chatUnits()
		merge := ChatSchema().Merge
		assert.Equal(t, merge(units), merge(append(chatUnits(), units...)))
		assert.Equal(t, merge(units), merge([]models.ChatAnalysis{merge(units)}))
	})

	t.Run("insight", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		units := []models.InsightAnalysis{
			{Summary: "a", KeyTopics: []models.KeyTopic{{Name: "Release"}}, EmergingTrends: []string{"bots"}, DateRange: models.DateRange{Start: start, End: start.Add(time.Hour)}},
			{Summary: "b", KeyTopics: []models.KeyTopic{{Name: "Release"}, {Name: "Docs"}}, EmergingTrends: []string{"bots", "ai"}, DateRange: models.DateRange{Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)}},
		}
		merge := InsightSchema().Merge
		doubled := append(append([]models.InsightAnalysis{}, units...), units...)
		assert.Equal(t, merge(units), merge(doubled))
	})

	t.Run("task", func(t *testing.T) {
		units := []models.TaskAnalysis{{
			IdentifiedTasks: []models.IdentifiedTask{{Description: "Write docs", Type: "Documentation"}},
			Contributions:   []models.Contribution{{Contributor: "bob", Description: "fixed CI"}},
		}}
		merge := TaskSchema().Merge
		doubled := append(append([]models.TaskAnalysis{}, units...), units...)
		assert.Equal(t, merge(units), merge(doubled))
	})

	t.Run("reward", func(t *testing.T) {
		units := []models.RewardAnalysis{{
			IdentifiedRewards: []models.IdentifiedReward{{DiscordName: "@bob", RewardName: "Helper"}},
		}}
		merge := RewardSchema().Merge
		doubled := append(append([]models.RewardAnalysis{}, units...), units...)
		assert.Equal(t, merge(units), merge(doubled))
	})
}

func TestMergeTasksAndRewardsFirstWriteWins(t *testing.T) {
	tasks := MergeTasks([]models.TaskAnalysis{
		{IdentifiedTasks: []models.IdentifiedTask{{Description: "Write docs", Type: "Documentation", SuggestedReward: models.SuggestedReward{Points: 10}}}},
		{IdentifiedTasks: []models.IdentifiedTask{
			{Description: "Write docs", Type: "Documentation", SuggestedReward: models.SuggestedReward{Points: 99}},
			{Description: "Write docs", Type: "Support"},
		}},
	})
	require.Len(t, tasks.IdentifiedTasks, 2)
	assert.Equal(t, 10, tasks.IdentifiedTasks[0].SuggestedReward.Points)

	rewards := MergeRewards([]models.RewardAnalysis{
		{IdentifiedRewards: []models.IdentifiedReward{{DiscordName: "@bob", RewardName: "Helper", Amount: 1}}},
		{IdentifiedRewards: []models.IdentifiedReward{{DiscordName: "@bob", RewardName: "Helper", Amount: 7}, {DiscordName: "@bob", RewardName: "XP"}}},
	})
	require.Len(t, rewards.IdentifiedRewards, 2)
	assert.Equal(t, float64(1), rewards.IdentifiedRewards[0].Amount)
}

func TestMergeInsightsSpan(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	units := []models.InsightAnalysis{
		{DateRange: models.DateRange{Start: start.Add(2 * time.Hour), End: start.Add(5 * time.Hour)}},
		{},
		{DateRange: models.DateRange{Start: start, End: start.Add(time.Hour)}},
	}

	merged := MergeInsights(units)

	assert.Equal(t, start, merged.DateRange.Start)
	assert.Equal(t, start.Add(5*time.Hour), merged.DateRange.End)
}
