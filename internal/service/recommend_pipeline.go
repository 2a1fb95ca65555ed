package service

import (
	"math"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/engine"
)

// AssembleResponse packages ranked plans for the wire: breakdowns keyed by
// category name, the normalized criteria echoed back, and the generation
// time. Scores are rounded to two decimals.
func AssembleResponse(res *engine.Result, generatedAt time.Time) *contract.RecommendResponse {
	recs := make([]contract.Recommendation, 0, len(res.Plans))
	for _, p := range res.Plans {
		recs = append(recs, toRecommendation(p))
	}
	return &contract.RecommendResponse{
		Activities:     recs,
		Total:          len(recs),
		SearchCriteria: contract.NewSearchCriteria(res.Criteria),
		GeneratedAt:    generatedAt.UTC(),
	}
}

func toRecommendation(p engine.Plan) contract.Recommendation {
	acts := make([]contract.PlannedActivity, len(p.Activities))
	for i, pa := range p.Activities {
		acts[i] = contract.PlannedActivity{
			Activity:         contract.NewActivity(pa.Activity),
			AllocatedMinutes: pa.AllocatedMinutes,
			BreakAfter:       toBreak(pa.BreakAfter),
		}
	}

	scores := p.Breakdown.Scores()
	breakdown := make(map[string]contract.CategoryScore, len(scores))
	for _, cs := range scores {
		name := cs.Category.String()
		breakdown[name] = contract.CategoryScore{
			Category:           name,
			Score:              round2(cs.Score),
			Weight:             round4(cs.Weight),
			Impact:             round2(cs.Impact),
			PriorityMultiplier: cs.PriorityMultiplier,
			IsPriority:         cs.IsPriority,
		}
	}

	return contract.Recommendation{
		Activities:           acts,
		Score:                round2(p.Score),
		ScoreBreakdown:       breakdown,
		TotalDurationMinutes: p.TotalMinutes,
		BreakMinutes:         p.BreakMinutes,
	}
}

func toBreak(b *domain.Break) *contract.Break {
	if b == nil {
		return nil
	}
	reasons := b.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &contract.Break{
		Duration:    b.Duration,
		Description: b.Description,
		Reasons:     reasons,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
