package domain

import (
	"slices"
	"strings"
)

// ActivityQuery narrows a catalog listing. Zero fields do not constrain.
// AgeMin and AgeMax bound the activity's own range from inside; list fields
// match an activity that has any of the values. Limit 0 returns every match.
type ActivityQuery struct {
	Name        string
	AgeMin      *int
	AgeMax      *int
	Formats     []ActivityFormat
	BloomLevels []BloomLevel
	Resources   []Resource
	Topics      []Topic
	Limit       int
	Offset      int
}

// Matches reports whether a passes every filter of q. Paging is not applied.
func (q ActivityQuery) Matches(a *Activity) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.AgeMin != nil && a.AgeMin < *q.AgeMin {
		return false
	}
	if q.AgeMax != nil && a.AgeMax > *q.AgeMax {
		return false
	}
	if len(q.Formats) > 0 && !slices.Contains(q.Formats, a.Format) {
		return false
	}
	if len(q.BloomLevels) > 0 && !slices.Contains(q.BloomLevels, a.BloomLevel) {
		return false
	}
	if len(q.Resources) > 0 && !hasAny(a.ResourcesNeeded, q.Resources) {
		return false
	}
	if len(q.Topics) > 0 && !hasAny(a.Topics, q.Topics) {
		return false
	}
	return true
}

// Page returns the slice of matches selected by Offset and Limit.
func (q ActivityQuery) Page(matches []Activity) []Activity {
	if q.Offset >= len(matches) {
		return nil
	}
	out := matches[max(q.Offset, 0):]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out
}

func hasAny[T comparable](vals, wanted []T) bool {
	return slices.ContainsFunc(vals, func(v T) bool { return slices.Contains(wanted, v) })
}
