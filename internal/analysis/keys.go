package analysis

import "github.com/community-analyzer/internal/models"

// FAQKey identifies a question by its wording and asker
type FAQKey struct {
	Question string
	Asker    string
}

// HelpKey identifies a help interaction by who helped whom
type HelpKey struct {
	Helper    string
	Recipient string
}

// ActionKey identifies an action item by its description and author
type ActionKey struct {
	Description string
	MentionedBy string
}

// TopicKey identifies a key topic by name
type TopicKey struct {
	Name string
}

// InteractionKey identifies a notable interaction by type and description
type InteractionKey struct {
	Type        string
	Description string
}

// TrendKey identifies an emerging trend by its text
type TrendKey struct {
	Text string
}

// TaskKey identifies a task by description and type
type TaskKey struct {
	Description string
	Type        string
}

// ContributionKey identifies a contribution by contributor and description
type ContributionKey struct {
	Contributor string
	Description string
}

// RewardKey identifies a reward by recipient and reward name
type RewardKey struct {
	DiscordName string
	RewardName  string
}

// FAQKeyOf returns the merge key of a FAQ entry
func FAQKeyOf(f models.FAQ) FAQKey {
	return FAQKey{Question: f.Question, Asker: f.Asker}
}

// HelpKeyOf returns the merge key of a help interaction
func HelpKeyOf(h models.HelpInteraction) HelpKey {
	return HelpKey{Helper: h.Helper, Recipient: h.Recipient}
}

// ActionKeyOf returns the merge key of an action item
func ActionKeyOf(a models.ActionItem) ActionKey {
	return ActionKey{Description: a.Description, MentionedBy: a.MentionedBy}
}

// TopicKeyOf returns the merge key of a key topic
func TopicKeyOf(t models.KeyTopic) TopicKey {
	return TopicKey{Name: t.Name}
}

// InteractionKeyOf returns the merge key of a notable interaction
func InteractionKeyOf(n models.NotableInteraction) InteractionKey {
	return InteractionKey{Type: n.Type, Description: n.Description}
}

// TrendKeyOf returns the merge key of an emerging trend
func TrendKeyOf(t string) TrendKey {
	return TrendKey{Text: t}
}

// TaskKeyOf returns the merge key of an identified task
func TaskKeyOf(t models.IdentifiedTask) TaskKey {
	return TaskKey{Description: t.Description, Type: t.Type}
}

// ContributionKeyOf returns the merge key of a contribution
func ContributionKeyOf(c models.Contribution) ContributionKey {
	return ContributionKey{Contributor: c.Contributor, Description: c.Description}
}

// RewardKeyOf returns the merge key of an identified reward
func RewardKeyOf(r models.IdentifiedReward) RewardKey {
	return RewardKey{DiscordName: r.DiscordName, RewardName: r.RewardName}
}
