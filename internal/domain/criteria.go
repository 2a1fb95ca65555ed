package domain

import (
	"cmp"
	"slices"
)

// SearchCriteria is the normalized request the engine consumes. Set-valued
// fields are sorted and de-duplicated by Normalize; an empty set means no
// constraint.
type SearchCriteria struct {
	TargetAge          int
	TargetDuration     int
	Formats            []ActivityFormat
	Resources          []Resource
	BloomLevels        []BloomLevel
	Topics             []Topic
	PriorityCategories []string
	AllowLessonPlans   bool
	MaxActivityCount   int
	IncludeBreaks      bool
	Limit              int
}

// CriteriaDefaults carries the values Normalize falls back to.
type CriteriaDefaults struct {
	MinutesPerActivity    int
	MaxActivityCountLimit int
	Limit                 int
}

// Normalize returns a copy with sorted sets and defaults applied:
// MaxActivityCount defaults to TargetDuration/MinutesPerActivity clamped to
// [1, MaxActivityCountLimit], and is forced to 1 without lesson plans.
func (c SearchCriteria) Normalize(d CriteriaDefaults) SearchCriteria {
	out := c
	out.Formats = SortedUnique(c.Formats)
	out.Resources = SortedUnique(c.Resources)
	out.BloomLevels = SortedUnique(c.BloomLevels)
	out.Topics = SortedUnique(c.Topics)
	out.PriorityCategories = SortedUnique(c.PriorityCategories)

	if out.MaxActivityCount <= 0 {
		per := d.MinutesPerActivity
		if per <= 0 {
			per = 30
		}
		out.MaxActivityCount = out.TargetDuration / per
	}
	limit := d.MaxActivityCountLimit
	if limit <= 0 {
		limit = 5
	}
	out.MaxActivityCount = clampInt(out.MaxActivityCount, 1, limit)
	if !out.AllowLessonPlans {
		out.MaxActivityCount = 1
	}

	if out.Limit <= 0 {
		out.Limit = d.Limit
		if out.Limit <= 0 {
			out.Limit = 5
		}
	}
	return out
}

// SortedUnique returns a sorted copy of vals without duplicates.
func SortedUnique[T cmp.Ordered](vals []T) []T {
	if len(vals) == 0 {
		return nil
	}
	out := slices.Clone(vals)
	slices.Sort(out)
	return slices.Compact(out)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
