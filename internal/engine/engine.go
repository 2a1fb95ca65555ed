// Package engine scores catalog activities against search criteria and
// assembles them into ranked lesson plans.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// ErrInvalidCriteria is returned when criteria cannot be searched at all.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// Engine is stateless between calls; one Engine may serve concurrent
// requests.
type Engine struct {
	cfg Config
}

// New returns an Engine using cfg. Unusable fields fall back to defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.sanitized()}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Result is the outcome of one recommendation run.
type Result struct {
	// Criteria is the normalized criteria the run used.
	Criteria domain.SearchCriteria
	Plans    []Plan
	Faults   []Fault

	Considered int
	Filtered   int
	Candidates int
}

// Recommend runs filter, scoring, assembly, break insertion and ranking.
// An empty Plans slice is a normal outcome.
func (e *Engine) Recommend(activities []domain.Activity, criteria domain.SearchCriteria) (*Result, error) {
	if err := checkCriteria(criteria); err != nil {
		return nil, err
	}
	criteria = criteria.Normalize(e.cfg.CriteriaDefaults())

	res := &Result{Criteria: criteria, Considered: len(activities), Plans: []Plan{}}

	ordered := slices.Clone(activities)
	slices.SortStableFunc(ordered, func(a, b domain.Activity) int {
		return strings.Compare(a.ID, b.ID)
	})
	ordered, dupes := dropDuplicateIDs(ordered)

	kept, faults := Filter(ordered, criteria, e.cfg.AgeFilterTolerance)
	res.Faults = append(faults, dupes...)
	res.Filtered = len(kept)
	if len(kept) == 0 {
		return res, nil
	}

	sc := newScorer(e.cfg, criteria)
	pool := e.scoreAll(sc, kept)

	as := &assembler{cfg: e.cfg, criteria: criteria, scorer: sc}
	generated := as.assemble(pool)
	finals := e.finalize(sc, criteria, generated)
	res.Candidates = len(finals)

	ranked := rank(finals, criteria.TargetDuration, criteria.MaxActivityCount, criteria.Limit, e.cfg.DiversityThreshold)
	res.Plans = make([]Plan, len(ranked))
	for i, c := range ranked {
		res.Plans[i] = c.toPlan()
	}
	return res, nil
}

// ScoreActivity returns the stand-alone breakdown of one activity, for
// explaining a catalog entry against criteria.
func (e *Engine) ScoreActivity(a domain.Activity, criteria domain.SearchCriteria) ScoredActivity {
	criteria = criteria.Normalize(e.cfg.CriteriaDefaults())
	return newScorer(e.cfg, criteria).scoreActivity(a)
}

// scoreAll scores activities concurrently and returns them best first.
func (e *Engine) scoreAll(sc *scorer, activities []domain.Activity) []*ScoredActivity {
	pool := make([]*ScoredActivity, len(activities))
	parallelEach(e.cfg.Workers, len(activities), func(i int) {
		s := sc.scoreActivity(activities[i])
		pool[i] = &s
	})
	slices.SortStableFunc(pool, func(a, b *ScoredActivity) int {
		if a.Composite != b.Composite {
			if a.Composite > b.Composite {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Activity.ID, b.Activity.ID)
	})
	return pool
}

// finalize applies breaks, drops plans outside the duration envelope, and
// computes the full plan score including duration_fit.
func (e *Engine) finalize(sc *scorer, criteria domain.SearchCriteria, generated []*candidate) []*candidate {
	target := criteria.TargetDuration
	keep := make([]bool, len(generated))
	parallelEach(e.cfg.Workers, len(generated), func(i int) {
		c := generated[i]
		if criteria.IncludeBreaks {
			insertBreaks(c, target, e.cfg)
		}
		c.total = c.totalFor(target)
		if !withinEnvelope(c.total, target, e.cfg.DurationTolerance) {
			return
		}
		c.breakdown, c.score = sc.scorePlan(c.members, c.total, true)
		keep[i] = true
	})

	out := make([]*candidate, 0, len(generated))
	for i, c := range generated {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func checkCriteria(c domain.SearchCriteria) error {
	if c.TargetAge < domain.MinAge || c.TargetAge > domain.MaxAge {
		return fmt.Errorf("%w: target age %d outside [%d,%d]", ErrInvalidCriteria, c.TargetAge, domain.MinAge, domain.MaxAge)
	}
	if c.TargetDuration <= 0 {
		return fmt.Errorf("%w: target duration must be positive, got %d", ErrInvalidCriteria, c.TargetDuration)
	}
	return nil
}

// dropDuplicateIDs keeps the first activity per id; activities must be
// sorted by id.
func dropDuplicateIDs(activities []domain.Activity) ([]domain.Activity, []Fault) {
	var faults []Fault
	out := activities[:0:0]
	for i, a := range activities {
		if i > 0 && a.ID != "" && a.ID == activities[i-1].ID {
			faults = append(faults, Fault{ActivityID: a.ID, Err: errors.New("duplicate activity id")})
			continue
		}
		out = append(out, a)
	}
	return out, faults
}
