package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/community-analyzer/internal/models"
)

// CommunityContext renders a community profile as a prompt section
func CommunityContext(p models.CommunityProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Community Context for %s\n\n", p.Name)

	b.WriteString("## Basic Information\n")
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	if p.MissionStatement != "" {
		fmt.Fprintf(&b, "Mission: %s\n\n", p.MissionStatement)
	}
	if len(p.Goals) > 0 {
		fmt.Fprintf(&b, "Goals:\n%s\n\n", bullets(p.Goals, "- "))
	}

	if len(p.TargetParticipants) > 0 {
		b.WriteString("## Target Participants\n")
		for _, tp := range p.TargetParticipants {
			fmt.Fprintf(&b, "Role: %s\n", tp.Role)
			fmt.Fprintf(&b, "Required Skills: %s\n", strings.Join(tp.SkillsNeeded, ", "))
			fmt.Fprintf(&b, "Experience Level: %s\n\n", tp.ExperienceLevel)
		}
	}

	if len(p.CurrentCampaigns) > 0 {
		b.WriteString("## Active Initiatives\n")
		for _, c := range p.CurrentCampaigns {
			fmt.Fprintf(&b, "%s (%s)\n%s\nStarted: %s\n", c.Name, c.Status, c.Description, c.StartDate)
			if c.EndDate != "" {
				fmt.Fprintf(&b, "Ends: %s\n", c.EndDate)
			}
			b.WriteByte('\n')
		}
	}

	b.WriteString("## Reward System\n")
	if len(p.PointSystem.Rules) > 0 {
		fmt.Fprintf(&b, "%s\n", bullets(p.PointSystem.Rules, "- "))
	}
	if len(p.ExistingBadges) > 0 {
		fmt.Fprintf(&b, "Available badges: %s\n", strings.Join(p.ExistingBadges, ", "))
	}
	b.WriteByte('\n')

	if len(p.Roles) > 0 {
		b.WriteString("## Community Roles\n")
		for _, name := range sortedKeys(p.Roles) {
			role := p.Roles[name]
			fmt.Fprintf(&b, "%s:\n%s\nPermissions: %s\n\n", name, role.Description, strings.Join(role.Permissions, ", "))
		}
	}

	if len(p.Resources) > 0 {
		b.WriteString("## Resources\n")
		for _, name := range sortedKeys(p.Resources) {
			fmt.Fprintf(&b, "- %s: %s\n", name, p.Resources[name])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RewardGuidelines renders the point, badge and monetary bounds for task prompts
func RewardGuidelines(p models.CommunityProfile) string {
	g := p.RewardGuidelines
	lines := []string{
		fmt.Sprintf("- Points: Scale from %d to %d", g.MinPoints, g.MaxPoints),
	}
	if len(p.ExistingBadges) > 0 {
		lines = append(lines, "- Badges: Use from available list: "+strings.Join(p.ExistingBadges, ", "))
	}
	if t := g.MonetaryThresholds; t != nil && p.PointSystem.MonetaryRewards {
		currency := t.Currency
		if currency == "" {
			currency = "USD"
		}
		lines = append(lines, fmt.Sprintf("- Monetary rewards: %g to %g %s", t.MinValue, t.MaxValue, currency))
	} else {
		lines = append(lines, "- No monetary rewards available")
	}
	return strings.Join(lines, "\n")
}

// ExistingTasks renders known tasks as a bulleted list
func ExistingTasks(tasks []models.ExistingTask) string {
	if len(tasks) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		line := fmt.Sprintf("- [%s] %s", t.Type, t.Description)
		if t.Status != "" {
			line += " (" + t.Status + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string, prefix string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = prefix + item
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
