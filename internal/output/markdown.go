package output

import (
	"fmt"
	"strings"

	"github.com/community-analyzer/internal/models"
)

// Header identifies what a report covers
type Header struct {
	ServerName string
	Channels   []string
	Range      models.DateRange
}

func (h Header) write(b *strings.Builder, title string, withRange bool) {
	fmt.Fprintf(b, "# %s\n", title)
	fmt.Fprintf(b, "## Server: %s\n", h.ServerName)
	if len(h.Channels) > 0 {
		fmt.Fprintf(b, "## Channels: %s\n", strings.Join(h.Channels, ", "))
	}
	if withRange && !h.Range.IsZero() {
		fmt.Fprintf(b, "## Date Range: %s to %s\n", day(h.Range.Start), day(h.Range.End))
	}
	b.WriteByte('\n')
}

// ChatMarkdown renders a chat analysis
func ChatMarkdown(h Header, a models.ChatAnalysis) string {
	var b strings.Builder
	h.write(&b, "Chat Analysis", true)

	b.WriteString("## Summary\n\n")
	b.WriteString(a.Summary)
	b.WriteString("\n\n")

	b.WriteString("## Frequently Asked Questions\n\n")
	for _, q := range a.FAQ {
		fmt.Fprintf(&b, "- %s (asked by %s)\n", q.Question, q.Asker)
	}
	b.WriteByte('\n')

	b.WriteString("## Help Interactions\n\n")
	for _, hi := range a.HelpInteractions {
		fmt.Fprintf(&b, "### %s helped %s\n", hi.Helper, hi.Recipient)
		fmt.Fprintf(&b, "- Task: %s\n", hi.Task)
		fmt.Fprintf(&b, "- Assistance: %s\n", hi.Assistance)
		fmt.Fprintf(&b, "- Suggested Points: %d\n", hi.SuggestedPoints)
		if hi.Reason != "" {
			fmt.Fprintf(&b, "- Reason: %s\n", hi.Reason)
		}
		b.WriteByte('\n')
	}

	b.WriteString("## Action Items\n\n")
	for _, ai := range a.ActionItems {
		fmt.Fprintf(&b, "- [%s] %s (mentioned by %s)\n", ai.Type, ai.Description, ai.MentionedBy)
	}

	return b.String()
}

// InsightMarkdown renders an overview followed by one section per analysed chunk
func InsightMarkdown(h Header, overview models.InsightAnalysis, chunks []models.InsightAnalysis) string {
	var b strings.Builder
	h.write(&b, "Community Insights", true)

	b.WriteString("## Overview\n\n")
	writeInsight(&b, overview)
	b.WriteString("\n---\n\n")

	for i, c := range chunks {
		fmt.Fprintf(&b, "## Analysis %d (%s to %s)\n\n", i+1, day(c.DateRange.Start), day(c.DateRange.End))
		writeInsight(&b, c)
		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func writeInsight(b *strings.Builder, a models.InsightAnalysis) {
	b.WriteString("### Summary\n")
	b.WriteString(a.Summary)
	b.WriteString("\n\n")

	b.WriteString("### Key Topics Discussed\n\n")
	for _, t := range a.KeyTopics {
		fmt.Fprintf(b, "#### %s\n", t.Name)
		fmt.Fprintf(b, "- Description: %s\n", t.Description)
		fmt.Fprintf(b, "- Participants: %s\n", strings.Join(t.Participants, ", "))
		b.WriteString("- Key Points:\n")
		for _, p := range t.KeyPoints {
			fmt.Fprintf(b, "  - %s\n", p)
		}
		b.WriteByte('\n')
	}

	b.WriteString("### Notable Interactions\n\n")
	for _, n := range a.NotableInteractions {
		fmt.Fprintf(b, "#### %s\n", n.Type)
		fmt.Fprintf(b, "- Description: %s\n", n.Description)
		fmt.Fprintf(b, "- Participants: %s\n", strings.Join(n.Participants, ", "))
		fmt.Fprintf(b, "- Impact: %s\n\n", n.Impact)
	}

	b.WriteString("### Emerging Trends\n\n")
	for _, t := range a.EmergingTrends {
		fmt.Fprintf(b, "- %s\n", t)
	}
}

// TaskMarkdown renders identified tasks and contributions
func TaskMarkdown(h Header, a models.TaskAnalysis) string {
	var b strings.Builder
	h.write(&b, "Community Tasks and Contributions", false)

	b.WriteString("## Identified Tasks\n\n")
	for _, t := range a.IdentifiedTasks {
		fmt.Fprintf(&b, "### %s: %s\n", t.Type, t.Description)
		b.WriteString("#### Requirements:\n")
		fmt.Fprintf(&b, "- Role: %s\n", t.Requirements.Role)
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(t.Requirements.Skills, ", "))
		fmt.Fprintf(&b, "- Access Level: %s\n", t.Requirements.AccessLevel)
		fmt.Fprintf(&b, "- Experience: %s\n\n", t.Requirements.ExperienceLevel)
		b.WriteString("#### Evidence:\n")
		for _, quote := range t.Evidence {
			fmt.Fprintf(&b, "> %s\n", quote)
		}
		b.WriteString("\n#### Suggested Reward:\n")
		writeReward(&b, t.SuggestedReward, true)
	}

	b.WriteString("## Notable Contributions\n\n")
	for _, c := range a.Contributions {
		fmt.Fprintf(&b, "### Contribution by %s\n", c.Contributor)
		fmt.Fprintf(&b, "- Description: %s\n", c.Description)
		fmt.Fprintf(&b, "- Impact: %s\n", c.Impact)
		b.WriteString("#### Suggested Reward:\n")
		writeReward(&b, c.SuggestedReward, false)
	}

	return b.String()
}

func writeReward(b *strings.Builder, r models.SuggestedReward, withMoney bool) {
	fmt.Fprintf(b, "- Points: %d\n", r.Points)
	if len(r.Badges) > 0 {
		fmt.Fprintf(b, "- Badges: %s\n", strings.Join(r.Badges, ", "))
	}
	if withMoney && r.MonetaryValue > 0 {
		fmt.Fprintf(b, "- Monetary Value: $%g\n", r.MonetaryValue)
	}
	fmt.Fprintf(b, "- Reasoning: %s\n\n", r.Reasoning)
}
