// Package notify posts short run digests to chat platforms.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/community-analyzer/internal/models"
)

// maxDigestSummary bounds the summary excerpt in a digest
const maxDigestSummary = 1500

// Notifier delivers a digest of a completed run
type Notifier interface {
	Notify(ctx context.Context, report *models.Report) error
}

// Multi fans a digest out to every notifier and joins their errors
type Multi []Notifier

// Notify calls every notifier even when some fail
func (m Multi) Notify(ctx context.Context, report *models.Report) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Digest formats a report as a short Markdown message
func Digest(r *models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s report for %s*\n", variantTitle(r.Variant), escapeMarkdownV1(r.ServerName))
	if len(r.Channels) > 0 {
		fmt.Fprintf(&b, "Channels: %s\n", escapeMarkdownV1(strings.Join(r.Channels, ", ")))
	}
	fmt.Fprintf(&b, "Period: %s to %s\n", r.StartDate.UTC().Format("2006-01-02"), r.EndDate.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Messages: %d in %d chunks", r.MessageCount, r.ChunkCount)
	if r.FailedChunks > 0 {
		fmt.Fprintf(&b, " (%d failed)", r.FailedChunks)
	}
	b.WriteByte('\n')

	if r.Summary != "" {
		summary := []rune(r.Summary)
		if len(summary) > maxDigestSummary {
			summary = append(summary[:maxDigestSummary], []rune("...")...)
		}
		fmt.Fprintf(&b, "\n%s\n", escapeMarkdownV1(string(summary)))
	}

	if len(r.Artifacts) > 0 {
		b.WriteString("\n*Artifacts:*\n")
		for _, a := range r.Artifacts {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdownV1(a))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func variantTitle(v models.Variant) string {
	switch v {
	case models.VariantInsight:
		return "Insights"
	case models.VariantTask:
		return "Tasks"
	case models.VariantReward:
		return "Rewards"
	}
	return "Chat"
}

// escapeMarkdownV1 escapes the characters Markdown V1 would interpret
func escapeMarkdownV1(text string) string {
	return markdownV1Escaper.Replace(text)
}

var markdownV1Escaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)
