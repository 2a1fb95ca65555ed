package engine

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCatalog(rng *rand.Rand, n int) []domain.Activity {
	catalog := make([]domain.Activity, n)
	for i := range catalog {
		ageMin := domain.MinAge + rng.Intn(8)
		ageMax := ageMin + rng.Intn(domain.MaxAge-ageMin+1)
		durMin := 5 + rng.Intn(40)
		durMax := 0
		if rng.Intn(2) == 0 {
			durMax = durMin + rng.Intn(30)
		}
		topics := []domain.Topic{domain.AllTopics[rng.Intn(len(domain.AllTopics))]}
		if rng.Intn(3) == 0 {
			topics = append(topics, domain.AllTopics[rng.Intn(len(domain.AllTopics))])
		}
		opts := []testutil.ActivityOption{
			testutil.WithID(fmt.Sprintf("act-%02d", i)),
			testutil.WithAges(ageMin, ageMax),
			testutil.WithDuration(durMin, durMax),
			testutil.WithFormat(domain.AllFormats[rng.Intn(len(domain.AllFormats))]),
			testutil.WithBloom(domain.AllBloomLevels[rng.Intn(len(domain.AllBloomLevels))]),
			testutil.WithTopics(topics...),
			testutil.WithLoad(
				domain.AllEnergyLevels[rng.Intn(len(domain.AllEnergyLevels))],
				domain.AllEnergyLevels[rng.Intn(len(domain.AllEnergyLevels))],
			),
		}
		if rng.Intn(4) == 0 {
			opts = append(opts, testutil.WithOverhead(rng.Intn(10), rng.Intn(10)))
		}
		catalog[i] = testutil.NewTestActivity(fmt.Sprintf("activity %d", i), opts...)
	}
	return catalog
}

func randomCriteria(rng *rand.Rand) domain.SearchCriteria {
	c := domain.SearchCriteria{
		TargetAge:        domain.MinAge + rng.Intn(domain.MaxAge-domain.MinAge+1),
		TargetDuration:   15 + rng.Intn(150),
		AllowLessonPlans: rng.Intn(4) != 0,
		IncludeBreaks:    rng.Intn(2) == 0,
		Limit:            1 + rng.Intn(6),
	}
	if rng.Intn(2) == 0 {
		c.MaxActivityCount = 1 + rng.Intn(5)
	}
	if rng.Intn(3) == 0 {
		c.Topics = []domain.Topic{domain.AllTopics[rng.Intn(len(domain.AllTopics))]}
	}
	if rng.Intn(3) == 0 {
		c.BloomLevels = []domain.BloomLevel{domain.AllBloomLevels[rng.Intn(len(domain.AllBloomLevels))]}
	}
	if rng.Intn(3) == 0 {
		c.PriorityCategories = []string{CategoryNames()[rng.Intn(len(AllCategories))]}
	}
	return c
}

// TestRecommend_Invariants property-tests every returned plan against the
// filter, envelope, break, score and diversity rules.
func TestRecommend_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := DefaultConfig()
	e := New(cfg)

	for trial := 0; trial < 150; trial++ {
		catalog := randomCatalog(rng, 4+rng.Intn(10))
		criteria := randomCriteria(rng)

		res, err := e.Recommend(catalog, criteria)
		require.NoError(t, err)
		nc := res.Criteria

		assert.LessOrEqual(t, len(res.Plans), nc.Limit, "trial %d: limit", trial)
		if !criteria.AllowLessonPlans {
			assert.Equal(t, 1, nc.MaxActivityCount, "trial %d", trial)
		}

		for i, p := range res.Plans {
			require.NotEmpty(t, p.Activities, "trial %d plan %d", trial, i)
			assert.LessOrEqual(t, len(p.Activities), nc.MaxActivityCount, "trial %d plan %d: size", trial, i)

			dev := math.Abs(float64(p.TotalMinutes-nc.TargetDuration)) / float64(nc.TargetDuration)
			assert.LessOrEqual(t, dev, cfg.DurationTolerance+1e-9,
				"trial %d plan %d: total %d vs target %d", trial, i, p.TotalMinutes, nc.TargetDuration)

			assert.GreaterOrEqual(t, p.Score, 0.0)
			assert.LessOrEqual(t, p.Score, 100.0)
			for _, cs := range p.Breakdown.Scores() {
				assert.GreaterOrEqual(t, cs.Score, 0.0, "trial %d plan %d: %s", trial, i, cs.Category)
				assert.LessOrEqual(t, cs.Score, 100.0, "trial %d plan %d: %s", trial, i, cs.Category)
				assert.Equal(t, slices.Contains(nc.PriorityCategories, cs.Category.String()), cs.IsPriority)
			}
			_, hasCohesion := p.Breakdown.Get(CategorySeriesCohesion)
			assert.Equal(t, len(p.Activities) > 1, hasCohesion, "trial %d plan %d", trial, i)

			allocated := p.BreakMinutes
			for j, pa := range p.Activities {
				a := pa.Activity
				assert.True(t, passesAge(&a, nc.TargetAge, cfg.AgeFilterTolerance),
					"trial %d plan %d: %s ages %d-%d for target %d", trial, i, a.ID, a.AgeMin, a.AgeMax, nc.TargetAge)
				assert.GreaterOrEqual(t, pa.AllocatedMinutes, a.MinMinutes())
				assert.LessOrEqual(t, pa.AllocatedMinutes, a.MaxMinutes())
				allocated += pa.AllocatedMinutes
				if j == len(p.Activities)-1 {
					assert.Nil(t, pa.BreakAfter, "trial %d plan %d: break after last activity", trial, i)
				}
				if !nc.IncludeBreaks {
					assert.Nil(t, pa.BreakAfter)
				}
			}
			assert.Equal(t, p.TotalMinutes, allocated, "trial %d plan %d: allocation", trial, i)
		}

		for i := 0; i < len(res.Plans); i++ {
			for j := i + 1; j < len(res.Plans); j++ {
				assert.Less(t, idOverlap(res.Plans[i].IDs(), res.Plans[j].IDs()), cfg.DiversityThreshold,
					"trial %d: plans %d and %d overlap", trial, i, j)
			}
			if i > 0 {
				assert.GreaterOrEqual(t, res.Plans[i-1].Score, res.Plans[i].Score, "trial %d: ordering", trial)
			}
		}
	}
}

// TestRecommend_Deterministic runs the same request twice, the second time
// with the catalog reversed, and expects identical plans.
func TestRecommend_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := New(DefaultConfig())

	for trial := 0; trial < 50; trial++ {
		catalog := randomCatalog(rng, 12)
		criteria := randomCriteria(rng)

		first, err := e.Recommend(catalog, criteria)
		require.NoError(t, err)

		reversed := make([]domain.Activity, len(catalog))
		for i, a := range catalog {
			reversed[len(catalog)-1-i] = a
		}
		second, err := e.Recommend(reversed, criteria)
		require.NoError(t, err)

		require.Equal(t, len(first.Plans), len(second.Plans), "trial %d", trial)
		for i := range first.Plans {
			assert.Equal(t, first.Plans[i].IDs(), second.Plans[i].IDs(), "trial %d plan %d", trial, i)
			assert.Equal(t, first.Plans[i].Score, second.Plans[i].Score, "trial %d plan %d", trial, i)
			assert.Equal(t, first.Plans[i].TotalMinutes, second.Plans[i].TotalMinutes, "trial %d plan %d", trial, i)
		}
	}
}

// TestRecommend_SingleActivityFallback checks that any activity fitting the
// envelope on its own yields at least one plan.
func TestRecommend_SingleActivityFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	cfg := DefaultConfig()
	e := New(cfg)

	for trial := 0; trial < 100; trial++ {
		catalog := randomCatalog(rng, 6)
		criteria := randomCriteria(rng)
		criteria.IncludeBreaks = false

		res, err := e.Recommend(catalog, criteria)
		require.NoError(t, err)

		kept, _ := Filter(catalog, res.Criteria, cfg.AgeFilterTolerance)
		fits := false
		for _, a := range kept {
			total := clampInt(res.Criteria.TargetDuration, a.MinMinutes(), a.MaxMinutes())
			if withinEnvelope(total, res.Criteria.TargetDuration, cfg.DurationTolerance) {
				fits = true
				break
			}
		}
		if fits {
			assert.NotEmpty(t, res.Plans, "trial %d", trial)
		}
	}
}

func TestRecommend_ExhaustiveBeamFindsBestPair(t *testing.T) {
	// with a beam as wide as the catalog every pair is explored
	rng := rand.New(rand.NewSource(3))
	cfg := DefaultConfig()
	cfg.BeamWidth = 100
	e := New(cfg)

	for trial := 0; trial < 20; trial++ {
		catalog := randomCatalog(rng, 8)
		criteria := domain.SearchCriteria{
			TargetAge:        10,
			TargetDuration:   60,
			AllowLessonPlans: true,
			MaxActivityCount: 2,
			Limit:            1,
		}

		res, err := e.Recommend(catalog, criteria)
		require.NoError(t, err)
		if len(res.Plans) == 0 {
			continue
		}

		nc := res.Criteria
		kept, _ := Filter(catalog, nc, cfg.AgeFilterTolerance)
		sc := newScorer(e.Config(), nc)
		best := 0.0
		for i := range kept {
			for j := range kept {
				if i == j {
					continue
				}
				a, b := sc.scoreActivity(kept[i]), sc.scoreActivity(kept[j])
				c := newCandidate([]*ScoredActivity{&a, &b})
				c.total = c.totalFor(nc.TargetDuration)
				if !withinEnvelope(c.total, nc.TargetDuration, cfg.DurationTolerance) {
					continue
				}
				_, score := sc.scorePlan(c.members, c.total, true)
				best = math.Max(best, score)
			}
			a := sc.scoreActivity(kept[i])
			c := newCandidate([]*ScoredActivity{&a})
			c.total = c.totalFor(nc.TargetDuration)
			if withinEnvelope(c.total, nc.TargetDuration, cfg.DurationTolerance) {
				_, score := sc.scorePlan(c.members, c.total, true)
				best = math.Max(best, score)
			}
		}
		assert.Equal(t, best, res.Plans[0].Score, "trial %d", trial)
	}
}

func idOverlap(a, b []string) float64 {
	shared := 0
	for _, x := range a {
		if slices.Contains(b, x) {
			shared++
		}
	}
	return float64(shared) / float64(min(len(a), len(b)))
}
