package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/contract"
)

// breakdownOrder is the display order of score categories.
var breakdownOrder = []string{
	"age_appropriateness",
	"duration_fit",
	"bloom_level_match",
	"topic_relevance",
	"format_match",
	"resource_match",
	"series_cohesion",
}

// FormatRecommendResponse renders every recommendation as a box with its
// activities, breaks and score breakdown.
func FormatRecommendResponse(resp *contract.RecommendResponse) string {
	var b strings.Builder

	b.WriteString(Header("Recommendations"))
	b.WriteString("\n")
	b.WriteString(criteriaLine(resp.SearchCriteria))
	b.WriteString("\n\n")

	if resp.Total == 0 {
		b.WriteString(StyleYellow.Render("No activities match these criteria."))
		b.WriteString("\n")
		b.WriteString(Dim("Try widening the duration, dropping a format or resource filter, or allowing lesson plans."))
		b.WriteString("\n")
		return b.String()
	}

	for i, rec := range resp.Activities {
		b.WriteString(FormatRecommendation(i+1, rec))
		b.WriteString("\n")
	}

	if resp.RunID != "" {
		b.WriteString(Dim(fmt.Sprintf("run %s · %s", resp.RunID, Timestamp(resp.GeneratedAt))))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRecommendation renders one ranked plan.
func FormatRecommendation(rank int, rec contract.Recommendation) string {
	var b strings.Builder

	kind := "Activity"
	if len(rec.Activities) > 1 {
		kind = fmt.Sprintf("Lesson plan · %d activities", len(rec.Activities))
	}
	fmt.Fprintf(&b, "%s  %s\n", ScoreColor(rec.Score).Render(fmt.Sprintf("%.1f", rec.Score)), Dim(kind))
	fmt.Fprintf(&b, "%s %s", Dim("Total:"), FormatMinutes(rec.TotalDurationMinutes))
	if rec.BreakMinutes > 0 {
		fmt.Fprintf(&b, " %s", Dim(fmt.Sprintf("(%s breaks)", FormatMinutes(rec.BreakMinutes))))
	}
	b.WriteString("\n\n")

	for i, pa := range rec.Activities {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, Bold(pa.Name), Dim(FormatMinutes(pa.AllocatedMinutes)))
		fmt.Fprintf(&b, "   %s · %s · ages %d-%d · %s\n",
			pa.Format, pa.BloomLevel, pa.AgeMin, pa.AgeMax, JoinOrDash(pa.Topics))
		if pa.BreakAfter != nil {
			fmt.Fprintf(&b, "   %s %s\n", StyleBlue.Render(fmt.Sprintf("⏸ %s break:", FormatMinutes(pa.BreakAfter.Duration))),
				pa.BreakAfter.Description)
		}
	}

	b.WriteString("\n")
	b.WriteString(FormatBreakdown(rec.ScoreBreakdown))

	return RenderBox(fmt.Sprintf("#%d", rank), strings.TrimRight(b.String(), "\n"))
}

// FormatBreakdown renders one line per category with a score bar, its
// normalized weight and a star on priority categories.
func FormatBreakdown(breakdown map[string]contract.CategoryScore) string {
	var b strings.Builder
	for _, name := range breakdownOrder {
		cs, ok := breakdown[name]
		if !ok {
			continue
		}
		marker := " "
		if cs.IsPriority {
			marker = StylePurple.Render("★")
		}
		fmt.Fprintf(&b, "%s %-20s %s %s\n", marker, name, RenderScoreBar(cs.Score, 12),
			Dim(fmt.Sprintf("w=%.2f", cs.Weight)))
	}
	return b.String()
}

func criteriaLine(c contract.SearchCriteria) string {
	parts := []string{
		fmt.Sprintf("age %d", c.TargetAge),
		FormatMinutes(c.TargetDuration),
	}
	if len(c.Format) > 0 {
		parts = append(parts, "format "+strings.Join(c.Format, "/"))
	}
	if len(c.BloomLevels) > 0 {
		parts = append(parts, "bloom "+strings.Join(c.BloomLevels, "/"))
	}
	if len(c.Topics) > 0 {
		parts = append(parts, "topics "+strings.Join(c.Topics, "/"))
	}
	if len(c.ResourcesNeeded) > 0 {
		parts = append(parts, "resources "+strings.Join(c.ResourcesNeeded, "/"))
	}
	if len(c.PriorityCategories) > 0 {
		parts = append(parts, "priority "+strings.Join(c.PriorityCategories, "/"))
	}
	if c.AllowLessonPlans {
		parts = append(parts, fmt.Sprintf("up to %d activities", c.MaxActivityCount))
	}
	if c.IncludeBreaks {
		parts = append(parts, "breaks")
	}
	return Dim(strings.Join(parts, " · "))
}
