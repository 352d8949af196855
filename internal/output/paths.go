// Package output renders analysis results and writes them to sinks.
package output

import (
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/community-analyzer/internal/models"
)

// Root is the top-level directory (or key prefix) for every artifact
const Root = "outputs"

// dateLayout is used in filenames and headings
const dateLayout = "2006-01-02"

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases s and replaces whitespace runs with '-'
func Slug(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// Category is the directory an artifact is filed under
func Category(v models.Variant) string {
	switch v {
	case models.VariantInsight:
		return "insights"
	case models.VariantTask:
		return "tasks"
	case models.VariantReward:
		return "rewards"
	}
	return "chat"
}

// Key returns the slash-separated location of an artifact:
// outputs/<category>/<server slug>/<filename>
func Key(v models.Variant, serverName, filename string) string {
	return path.Join(Root, Category(v), Slug(serverName), filename)
}

func channelSuffix(channels []string) string {
	if len(channels) == 0 {
		return ""
	}
	parts := make([]string, len(channels))
	for i, c := range channels {
		parts[i] = Slug(c)
	}
	return "-" + strings.Join(parts, "-")
}

func day(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ChatFilename is chat-<channels or server>-<start>-to-<end>.md
func ChatFilename(serverName string, channels []string, r models.DateRange) string {
	scope := channelSuffix(channels)
	if scope == "" {
		scope = "-" + Slug(serverName)
	}
	return "chat" + scope + "-" + day(r.Start) + "-to-" + day(r.End) + ".md"
}

// InsightFilename is insights[-<channels>]-<start>-to-<end>.md
func InsightFilename(channels []string, r models.DateRange) string {
	return "insights" + channelSuffix(channels) + "-" + day(r.Start) + "-to-" + day(r.End) + ".md"
}

// TaskFilename is tasks-<server>[-<channels>]-<today>.md
func TaskFilename(serverName string, channels []string, today time.Time) string {
	return "tasks-" + Slug(serverName) + channelSuffix(channels) + "-" + day(today) + ".md"
}

// RewardFilename is rewards-<server>[-<channels>]-<start>.csv
func RewardFilename(serverName string, channels []string, start time.Time) string {
	return "rewards-" + Slug(serverName) + channelSuffix(channels) + "-" + day(start) + ".csv"
}

// JSONFilename swaps the extension of a markdown artifact for .json
func JSONFilename(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename)) + ".json"
}
