package engine

import (
	"math"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// CategoryScore is one category's contribution to a composite score.
type CategoryScore struct {
	Category           Category
	Score              float64 // 0-100
	Weight             float64 // normalized, weights of a breakdown sum to 1
	Impact             float64 // Weight * Score
	PriorityMultiplier float64
	IsPriority         bool
}

// Breakdown holds the category scores of one activity or plan. Categories
// that do not apply (series_cohesion for a single activity) are absent.
type Breakdown struct {
	scores  [numCategories]CategoryScore
	present [numCategories]bool
}

func (b *Breakdown) set(c Category, score float64) {
	b.scores[c] = CategoryScore{Category: c, Score: round2(clampScore(score)), PriorityMultiplier: 1}
	b.present[c] = true
}

// Get returns the score for c and whether it is part of the breakdown.
func (b Breakdown) Get(c Category) (CategoryScore, bool) {
	if c < 0 || c >= numCategories || !b.present[c] {
		return CategoryScore{}, false
	}
	return b.scores[c], true
}

// Scores returns the present category scores in breakdown order.
func (b Breakdown) Scores() []CategoryScore {
	out := make([]CategoryScore, 0, numCategories)
	for _, c := range AllCategories {
		if b.present[c] {
			out = append(out, b.scores[c])
		}
	}
	return out
}

// weigh assigns normalized weights and impacts and returns the composite.
// Priority categories have their base weight multiplied before the weights
// are renormalized to sum to 1. The composite is floored at the mean under
// base weights, so marking a category priority never lowers it.
func (b *Breakdown) weigh(priority prioritySet, multiplier float64) float64 {
	var weights [numCategories]float64
	var total, baseTotal, baseSum float64
	for _, c := range AllCategories {
		if !b.present[c] {
			continue
		}
		w := baseWeights[c]
		baseTotal += w
		baseSum += w * b.scores[c].Score
		if priority[c] {
			w *= multiplier
		}
		weights[c] = w
		total += w
	}
	if total == 0 {
		return 0
	}

	var weighted float64
	for _, c := range AllCategories {
		if !b.present[c] {
			continue
		}
		sc := &b.scores[c]
		sc.Weight = weights[c] / total
		sc.Impact = round2(sc.Weight * sc.Score)
		sc.IsPriority = priority[c]
		if sc.IsPriority {
			sc.PriorityMultiplier = multiplier
		}
		weighted += weights[c] * sc.Score
		sc.Weight = round4(sc.Weight)
	}
	return round2(clampScore(math.Max(weighted/total, baseSum/baseTotal)))
}

// ScoredActivity is a filtered activity with its per-activity breakdown.
type ScoredActivity struct {
	Activity  domain.Activity
	Breakdown Breakdown
	Composite float64
}

type scorer struct {
	cfg      Config
	criteria domain.SearchCriteria
	priority prioritySet
}

func newScorer(cfg Config, criteria domain.SearchCriteria) *scorer {
	return &scorer{
		cfg:      cfg,
		criteria: criteria,
		priority: newPrioritySet(criteria.PriorityCategories),
	}
}

// scoreActivity scores a as a stand-alone plan candidate.
func (s *scorer) scoreActivity(a domain.Activity) ScoredActivity {
	var b Breakdown
	s.setActivityCategories(&b, &a)
	total := clampInt(s.criteria.TargetDuration, a.MinMinutes(), a.MaxMinutes())
	b.set(CategoryDurationFit, durationScore(total, s.criteria.TargetDuration))
	composite := b.weigh(s.priority, s.cfg.PriorityMultiplier)
	return ScoredActivity{Activity: a, Breakdown: b, Composite: composite}
}

func (s *scorer) setActivityCategories(b *Breakdown, a *domain.Activity) {
	b.set(CategoryAgeAppropriateness, ageScore(a, s.criteria.TargetAge, s.cfg.AgeFilterTolerance))
	b.set(CategoryBloomLevelMatch, bloomScore(a.BloomLevel, s.criteria.BloomLevels))
	b.set(CategoryTopicRelevance, topicScore(a.Topics, s.criteria.Topics))
	b.set(CategoryFormatMatch, formatScore(a.Format, s.criteria.Formats))
	b.set(CategoryResourceMatch, resourceScore(a.ResourcesNeeded, s.criteria.Resources))
}

// memberCategories are averaged across plan members.
var memberCategories = []Category{
	CategoryAgeAppropriateness,
	CategoryBloomLevelMatch,
	CategoryTopicRelevance,
	CategoryFormatMatch,
	CategoryResourceMatch,
}

// scorePlan builds the plan-level breakdown: member categories averaged,
// series_cohesion for 2+ members, and duration_fit on the plan total when
// withDuration is set.
func (s *scorer) scorePlan(members []*ScoredActivity, totalMinutes int, withDuration bool) (Breakdown, float64) {
	var b Breakdown
	if len(members) == 0 {
		return b, 0
	}
	for _, c := range memberCategories {
		var sum float64
		for _, m := range members {
			sc, _ := m.Breakdown.Get(c)
			sum += sc.Score
		}
		b.set(c, sum/float64(len(members)))
	}
	if len(members) > 1 {
		acts := make([]*domain.Activity, len(members))
		for i, m := range members {
			acts[i] = &m.Activity
		}
		b.set(CategorySeriesCohesion, seriesCohesion(acts))
	}
	if withDuration {
		b.set(CategoryDurationFit, durationScore(totalMinutes, s.criteria.TargetDuration))
	}
	return b, b.weigh(s.priority, s.cfg.PriorityMultiplier)
}

// ageScore is 100 inside [AgeMin, AgeMax] and decays linearly to 0 at
// tolerance years from the nearest bound.
func ageScore(a *domain.Activity, targetAge, tolerance int) float64 {
	var dist int
	switch {
	case targetAge < a.AgeMin:
		dist = a.AgeMin - targetAge
	case targetAge > a.AgeMax:
		dist = targetAge - a.AgeMax
	default:
		return 100
	}
	if tolerance <= 0 {
		return 0
	}
	return 100 * (1 - float64(dist)/float64(tolerance))
}

// durationScore decays with the relative deviation of total from target.
func durationScore(total, target int) float64 {
	if target <= 0 {
		return 100
	}
	dev := math.Abs(float64(total-target)) / float64(target)
	return 100 * (1 - dev)
}

// bloomScore is 100 for a requested level and 100/(1+d) otherwise, d being
// the ordinal distance to the nearest requested level.
func bloomScore(level domain.BloomLevel, requested []domain.BloomLevel) float64 {
	if len(requested) == 0 {
		return 100
	}
	rank := level.Rank()
	if rank < 0 {
		return 0
	}
	best := -1
	for _, r := range requested {
		rr := r.Rank()
		if rr < 0 {
			continue
		}
		d := rank - rr
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return 100 / float64(1+best)
}

func topicScore(topics, preferred []domain.Topic) float64 {
	if len(preferred) == 0 {
		return 100
	}
	matches := 0
	for _, p := range preferred {
		for _, t := range topics {
			if t == p {
				matches++
				break
			}
		}
	}
	return 100 * float64(matches) / float64(len(preferred))
}

func formatScore(f domain.ActivityFormat, accepted []domain.ActivityFormat) float64 {
	if len(accepted) == 0 {
		return 100
	}
	for _, a := range accepted {
		if a == f {
			return 100
		}
	}
	return 0
}

// resourceScore gives partial credit for the share of required resources
// that are available.
func resourceScore(required, available []domain.Resource) float64 {
	if len(available) == 0 || len(required) == 0 {
		return 100
	}
	have := 0
	for _, r := range required {
		for _, a := range available {
			if a == r {
				have++
				break
			}
		}
	}
	return 100 * float64(have) / float64(len(required))
}

// seriesCohesion scores consecutive transitions: topic continuity (40),
// non-decreasing Bloom level (30) and no repeated high load (30).
func seriesCohesion(acts []*domain.Activity) float64 {
	if len(acts) < 2 {
		return 100
	}
	transitions := float64(len(acts) - 1)
	var topic, bloom, load float64
	for i := 0; i < len(acts)-1; i++ {
		a, b := acts[i], acts[i+1]
		topic += jaccard(a.Topics, b.Topics)
		if a.BloomLevel.Rank() <= b.BloomLevel.Rank() {
			bloom++
		}
		bothMental := a.MentalLoad == domain.EnergyHigh && b.MentalLoad == domain.EnergyHigh
		bothPhysical := a.PhysicalEnergy == domain.EnergyHigh && b.PhysicalEnergy == domain.EnergyHigh
		if !bothMental && !bothPhysical {
			load++
		}
	}
	return 40*topic/transitions + 30*bloom/transitions + 30*load/transitions
}

func jaccard(a, b []domain.Topic) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[domain.Topic]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[domain.Topic]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
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
