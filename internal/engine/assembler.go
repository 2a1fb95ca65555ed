package engine

import (
	"slices"

	"github.com/alexanderramin/lessonplanner/internal/domain"
	"golang.org/x/sync/errgroup"
)

// assembler builds candidate lesson plans with a beam search: every single
// activity is a candidate, and each depth extends the best BeamWidth partial
// plans by one more activity.
type assembler struct {
	cfg      Config
	criteria domain.SearchCriteria
	scorer   *scorer
}

// assemble returns every generated plan of size 1..MaxActivityCount whose
// minimum duration does not already overshoot the envelope. Duration fit is
// checked later, once breaks are known.
func (as *assembler) assemble(pool []*ScoredActivity) []*candidate {
	upper := float64(as.criteria.TargetDuration) * (1 + as.cfg.DurationTolerance)

	generated := make([]*candidate, 0, len(pool))
	beam := make([]*candidate, 0, len(pool))
	for _, m := range pool {
		c := newCandidate([]*ScoredActivity{m})
		_, c.partial = as.scorer.scorePlan(c.members, 0, false)
		generated = append(generated, c)
		if float64(c.minMinutes) <= upper {
			beam = append(beam, c)
		}
	}
	beam = as.prune(beam)

	for depth := 2; depth <= as.criteria.MaxActivityCount && len(beam) > 0; depth++ {
		var next []*candidate
		for _, c := range beam {
			for _, m := range pool {
				if c.has(m.Activity.ID) {
					continue
				}
				if float64(c.minMinutes+m.Activity.MinMinutes()) > upper {
					continue
				}
				next = append(next, c.extend(m))
			}
		}

		parallelEach(as.cfg.Workers, len(next), func(i int) {
			_, next[i].partial = as.scorer.scorePlan(next[i].members, 0, false)
		})

		next = dedupeBySet(next)
		generated = append(generated, next...)
		beam = as.prune(next)
	}
	return generated
}

// prune orders partial plans best-first and keeps at most BeamWidth.
func (as *assembler) prune(cands []*candidate) []*candidate {
	slices.SortStableFunc(cands, comparePartial)
	if len(cands) > as.cfg.BeamWidth {
		cands = cands[:as.cfg.BeamWidth]
	}
	return cands
}

func comparePartial(a, b *candidate) int {
	if a.partial != b.partial {
		if a.partial > b.partial {
			return -1
		}
		return 1
	}
	return slices.Compare(a.ids(), b.ids())
}

// dedupeBySet keeps the best ordering of each activity-id set.
func dedupeBySet(cands []*candidate) []*candidate {
	best := make(map[string]*candidate, len(cands))
	order := make([]string, 0, len(cands))
	for _, c := range cands {
		cur, ok := best[c.key]
		if !ok {
			best[c.key] = c
			order = append(order, c.key)
			continue
		}
		if comparePartial(c, cur) < 0 {
			best[c.key] = c
		}
	}
	out := make([]*candidate, len(order))
	for i, k := range order {
		out[i] = best[k]
	}
	return out
}

// parallelEach runs fn for every index in [0, n) on at most workers
// goroutines. fn must only write to state owned by its index.
func parallelEach(workers, n int, fn func(i int)) {
	if n == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
