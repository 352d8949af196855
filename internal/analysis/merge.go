package analysis

import (
	"regexp"
	"strings"

	"github.com/community-analyzer/internal/models"
)

// orderedSet keeps the first record seen for every key, in insertion order
type orderedSet[K comparable, R any] struct {
	seen  map[K]struct{}
	items []R
}

func newOrderedSet[K comparable, R any]() *orderedSet[K, R] {
	return &orderedSet[K, R]{seen: make(map[K]struct{})}
}

// add inserts rec unless key is already present
func (s *orderedSet[K, R]) add(key K, rec R) bool {
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, rec)
	return true
}

// list returns at most limit records; limit <= 0 means no cap
func (s *orderedSet[K, R]) list(limit int) []R {
	items := s.items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]R, len(items))
	copy(out, items)
	return out
}

// mergeList deduplicates one list field across units, first write wins
func mergeList[U any, R any, K comparable](units []U, field func(U) []R, key func(R) K, limit int) []R {
	set := newOrderedSet[K, R]()
	for _, u := range units {
		for _, rec := range field(u) {
			set.add(key(rec), rec)
		}
	}
	return set.list(limit)
}

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	spaceBeforeNL  = regexp.MustCompile(`[ \t\r\f\v]+\n`)
	spaceAfterNL   = regexp.MustCompile(`\n[ \t\r\f\v]+`)
)

// NormalizeSummary unescapes literal "\n" sequences, strips whitespace around
// newlines, collapses runs of three or more newlines to two and trims the result.
func NormalizeSummary(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = spaceBeforeNL.ReplaceAllString(s, "\n")
	s = spaceAfterNL.ReplaceAllString(s, "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// mergeSummaries joins distinct, non-empty summaries in unit order.
// Fallback sentinels are dropped unless nothing else is left.
func mergeSummaries(summaries []string) string {
	set := newOrderedSet[string, string]()
	sawFallback := false
	for _, s := range summaries {
		s = strings.TrimSpace(s)
		switch s {
		case "":
			continue
		case FallbackSummary:
			sawFallback = true
			continue
		}
		set.add(s, s)
	}

	parts := set.list(0)
	if len(parts) == 0 {
		if sawFallback {
			return FallbackSummary
		}
		return ""
	}
	return NormalizeSummary(strings.Join(parts, "\n\n"))
}

// spanner is implemented by units that cover a time span
type spanner interface {
	Span() models.DateRange
}

// spanSetter is implemented by pointers to units that cover a time span
type spanSetter interface {
	SetSpan(models.DateRange)
}

// unitsSpan returns [min start, max end] over every unit that carries a span
func unitsSpan[U any](units []U) (models.DateRange, bool) {
	var r models.DateRange
	found := false
	for _, u := range units {
		s, ok := any(u).(spanner)
		if !ok {
			return models.DateRange{}, false
		}
		if span := s.Span(); !span.IsZero() {
			r = r.Extend(span)
			found = true
		}
	}
	return r, found
}

// setSpan overwrites the span of unit when its type carries one
func setSpan[U any](unit *U, r models.DateRange) bool {
	s, ok := any(unit).(spanSetter)
	if !ok {
		return false
	}
	s.SetSpan(r)
	return true
}
