package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleResponse() *contract.RecommendResponse {
	return &contract.RecommendResponse{
		RunID: "run-1234",
		Activities: []contract.Recommendation{{
			Activities: []contract.PlannedActivity{
				{
					Activity:         contract.Activity{ID: "a", Name: "Binary Bracelets", AgeMin: 8, AgeMax: 12, Format: "unplugged", BloomLevel: "apply", Topics: []string{"patterns"}},
					AllocatedMinutes: 20,
					BreakAfter:       &contract.Break{Duration: 5, Description: "Short movement break", Reasons: []string{"high mental load for two consecutive activities"}},
				},
				{
					Activity:         contract.Activity{ID: "b", Name: "Robot Directions", AgeMin: 6, AgeMax: 9, Format: "unplugged", BloomLevel: "understand"},
					AllocatedMinutes: 20,
				},
			},
			Score: 82.5,
			ScoreBreakdown: map[string]contract.CategoryScore{
				"age_appropriateness": {Category: "age_appropriateness", Score: 100, Weight: 0.2},
				"topic_relevance":     {Category: "topic_relevance", Score: 50, Weight: 0.27, IsPriority: true, PriorityMultiplier: 1.5},
			},
			TotalDurationMinutes: 45,
			BreakMinutes:         5,
		}},
		Total: 1,
		SearchCriteria: contract.SearchCriteria{
			TargetAge: 9, TargetDuration: 45, Topics: []string{"patterns"},
			AllowLessonPlans: true, MaxActivityCount: 3, IncludeBreaks: true, Limit: 5,
		},
		GeneratedAt: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestFormatRecommendResponse(t *testing.T) {
	out := stripANSI(FormatRecommendResponse(sampleResponse()))

	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "age 9 · 45m · topics patterns · up to 3 activities · breaks")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "82.5")
	assert.Contains(t, out, "Lesson plan · 2 activities")
	assert.Contains(t, out, "(5m breaks)")
	assert.Contains(t, out, "1. Binary Bracelets 20m")
	assert.Contains(t, out, "5m break: Short movement break")
	assert.Contains(t, out, "★ topic_relevance")
	assert.Contains(t, out, "run run-1234 · 2025-03-15 10:30")
	assert.NotContains(t, out, "series_cohesion", "absent categories are not rendered")

	// breakdown follows the fixed category order
	assert.Less(t, strings.Index(out, "age_appropriateness"), strings.Index(out, "topic_relevance"))
}

func TestFormatRecommendResponse_Empty(t *testing.T) {
	resp := &contract.RecommendResponse{SearchCriteria: contract.SearchCriteria{TargetAge: 9, TargetDuration: 30}}
	out := stripANSI(FormatRecommendResponse(resp))
	assert.Contains(t, out, "No activities match these criteria.")
}

func TestRenderScoreBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50.0", stripANSI(RenderScoreBar(50, 10)))
	assert.Equal(t, "[██████████] 100.0", stripANSI(RenderScoreBar(140, 10)))
	assert.Equal(t, "[░░]   0.0", stripANSI(RenderScoreBar(-3, 1)))
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, StyleGreen, ScoreColor(80))
	assert.Equal(t, StyleYellow, ScoreColor(50))
	assert.Equal(t, StyleRed, ScoreColor(49.9))
}

func TestFormatMinutesAndRanges(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h", FormatMinutes(60))
	assert.Equal(t, "1h 15m", FormatMinutes(75))
	assert.Equal(t, "20m", DurationRange(20, 20))
	assert.Equal(t, "20-30m", DurationRange(20, 30))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "abc", Truncate("abc", 5))
}

func TestFormatActivityListAndDetail(t *testing.T) {
	maxDur, prep := 45, 5
	a := domain.Activity{
		ID: "binary-bracelets", Name: "Binary Bracelets", Description: "Encode initials as beads.",
		AgeMin: 8, AgeMax: 12, Format: domain.FormatUnplugged, BloomLevel: domain.BloomApply,
		DurationMinMinutes: 30, DurationMaxMinutes: &maxDur, PrepTimeMinutes: &prep,
		Topics: []domain.Topic{domain.TopicPatterns}, MentalLoad: domain.EnergyHigh, PhysicalEnergy: domain.EnergyLow,
	}

	list := stripANSI(FormatActivityList([]domain.Activity{a}, 1, 0))
	assert.Contains(t, list, "NAME")
	assert.Contains(t, list, "binary-b")
	assert.Contains(t, list, "30-45m")
	assert.Contains(t, list, "1 activities")

	detail := stripANSI(FormatActivityDetail(&a))
	assert.Contains(t, detail, "BINARY BRACELETS")
	assert.Contains(t, detail, "5m prep + cleanup")
	assert.Contains(t, detail, "Encode initials as beads.")

	assert.Contains(t, stripANSI(FormatActivityList(nil, 0, 0)), "No activities found")
	assert.Contains(t, stripANSI(FormatActivityList(nil, 4, 10)), "No activities past offset 10 (4 in total)")
	assert.Contains(t, stripANSI(FormatActivityList([]domain.Activity{a}, 4, 2)), "showing 3-3 of 4 activities")
}

func TestFormatMetaAndRuns(t *testing.T) {
	fv := stripANSI(FormatFieldValues(contract.FieldValues{
		Format: []string{"unplugged", "digital"}, AgeMin: 6, AgeMax: 15,
	}))
	assert.Contains(t, fv, "unplugged, digital")
	assert.Contains(t, fv, "6-15")

	si := stripANSI(FormatScoringInsights(contract.ScoringInsights{
		Categories:         []contract.CategoryInsight{{Name: "bloom_level_match", BaseWeight: 5, Weight: 0.2174, Description: "Bloom"}},
		PriorityMultiplier: 1.5,
		DurationTolerance:  0.2,
	}))
	assert.Contains(t, si, "bloom_level_match")
	assert.Contains(t, si, "21.7%")
	assert.Contains(t, si, "×1.50")
	assert.Contains(t, si, "±20%")

	runs := stripANSI(FormatRunList([]*domain.RecommendationRun{{
		ID: "0123456789", CreatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), Total: 3,
		Criteria: []byte(`{"target_age":9,"target_duration":45,"topics":["algorithms"]}`),
	}}))
	assert.Contains(t, runs, "01234567")
	assert.Contains(t, runs, "2025-03-15 09:00")
	assert.Contains(t, runs, "age 9 · 45m · algorithms")
	assert.Contains(t, stripANSI(FormatRunList(nil)), "No recommendation runs")
}
