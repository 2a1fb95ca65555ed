package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/contract"
)

// FormatFieldValues lists the accepted values of every enumerated field.
func FormatFieldValues(fv contract.FieldValues) string {
	var b strings.Builder
	b.WriteString(Header("Field values"))
	b.WriteString("\n")
	line := func(name string, vals []string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-20s", name)), strings.Join(vals, ", "))
	}
	line("format", fv.Format)
	line("resources", fv.ResourcesAvailable)
	line("bloom_level", fv.BloomLevel)
	line("topics", fv.Topics)
	line("mental_load", fv.MentalLoad)
	line("physical_energy", fv.PhysicalEnergy)
	line("priority_categories", fv.PriorityCategories)
	fmt.Fprintf(&b, "%s %d-%d\n", Dim(fmt.Sprintf("%-20s", "age")), fv.AgeMin, fv.AgeMax)
	return b.String()
}

// FormatScoringInsights renders the category table and engine tunables.
func FormatScoringInsights(si contract.ScoringInsights) string {
	rows := make([][]string, len(si.Categories))
	for i, c := range si.Categories {
		rows[i] = []string{
			c.Name,
			fmt.Sprintf("%.0f", c.BaseWeight),
			fmt.Sprintf("%.1f%%", c.Weight*100),
			c.Description,
		}
	}

	var b strings.Builder
	b.WriteString(Header("Scoring"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"CATEGORY", "IMPACT", "SHARE", "DESCRIPTION"}, rows))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s ×%.2f\n", Dim("priority multiplier"), si.PriorityMultiplier)
	fmt.Fprintf(&b, "%s ±%d years\n", Dim("age tolerance      "), si.AgeFilterTolerance)
	fmt.Fprintf(&b, "%s ±%.0f%%\n", Dim("duration tolerance "), si.DurationTolerance*100)
	fmt.Fprintf(&b, "%s %d\n", Dim("beam width         "), si.BeamWidth)
	fmt.Fprintf(&b, "%s %.0f%%\n", Dim("diversity overlap  "), si.DiversityThreshold*100)
	return b.String()
}
