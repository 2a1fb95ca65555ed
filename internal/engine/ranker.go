package engine

import (
	"math"
	"slices"
)

// rank orders scored plans and returns at most limit of them, skipping any
// plan whose id overlap with an already selected plan reaches threshold.
func rank(cands []*candidate, target, maxCount, limit int, threshold float64) []*candidate {
	mid := float64(1+maxCount) / 2
	slices.SortStableFunc(cands, func(a, b *candidate) int {
		if a.score != b.score {
			if a.score > b.score {
				return -1
			}
			return 1
		}
		da := math.Abs(float64(len(a.members)) - mid)
		db := math.Abs(float64(len(b.members)) - mid)
		if da != db {
			if da < db {
				return -1
			}
			return 1
		}
		ta := absInt(a.total - target)
		tb := absInt(b.total - target)
		if ta != tb {
			return ta - tb
		}
		return slices.Compare(a.ids(), b.ids())
	})

	selected := make([]*candidate, 0, min(limit, len(cands)))
	for _, c := range cands {
		if len(selected) >= limit {
			break
		}
		if overlapsAny(c, selected, threshold) {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}

func overlapsAny(c *candidate, selected []*candidate, threshold float64) bool {
	for _, s := range selected {
		if overlap(c, s) >= threshold {
			return true
		}
	}
	return false
}

// overlap is |A∩B| / min(|A|,|B|) over activity ids, so any plan fully
// contained in another counts as a duplicate.
func overlap(a, b *candidate) float64 {
	n := min(len(a.members), len(b.members))
	if n == 0 {
		return 0
	}
	shared := 0
	for _, m := range a.members {
		if b.has(m.Activity.ID) {
			shared++
		}
	}
	return float64(shared) / float64(n)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
