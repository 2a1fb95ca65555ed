package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// FormatActivityList renders one page of a catalog listing as a table.
// total counts every match and offset is the position of acts[0].
func FormatActivityList(acts []domain.Activity, total, offset int) string {
	if total == 0 {
		return Dim("No activities found. Import activities with 'lessonplanner catalog import <file>'.") + "\n"
	}
	if len(acts) == 0 {
		return Dim(fmt.Sprintf("No activities past offset %d (%d in total).", offset, total)) + "\n"
	}
	rows := make([][]string, len(acts))
	for i, a := range acts {
		rows[i] = []string{
			TruncID(a.ID),
			Truncate(a.Name, 32),
			fmt.Sprintf("%d-%d", a.AgeMin, a.AgeMax),
			DurationRange(a.DurationMinMinutes, a.DurationMax()),
			string(a.Format),
			string(a.BloomLevel),
			JoinOrDash(domain.Strings(a.Topics)),
		}
	}
	footer := fmt.Sprintf("%d activities", total)
	if len(acts) < total {
		footer = fmt.Sprintf("showing %d-%d of %d activities", offset+1, offset+len(acts), total)
	}
	return RenderTable([]string{"ID", "NAME", "AGES", "DURATION", "FORMAT", "BLOOM", "TOPICS"}, rows) +
		Dim(footer) + "\n"
}

// FormatActivityDetail renders every field of one activity.
func FormatActivityDetail(a *domain.Activity) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}

	field("ID", a.ID)
	field("Ages", fmt.Sprintf("%d-%d", a.AgeMin, a.AgeMax))
	field("Duration", DurationRange(a.DurationMinMinutes, a.DurationMax()))
	if a.Overhead() > 0 {
		field("Overhead", fmt.Sprintf("%s prep + cleanup", FormatMinutes(a.Overhead())))
	}
	field("Format", string(a.Format))
	field("Bloom", string(a.BloomLevel))
	field("Topics", JoinOrDash(domain.Strings(a.Topics)))
	field("Resources", JoinOrDash(domain.Strings(a.ResourcesNeeded)))
	field("Mental", LoadColor(string(a.MentalLoad)).Render(string(a.MentalLoad)))
	field("Physical", LoadColor(string(a.PhysicalEnergy)).Render(string(a.PhysicalEnergy)))
	if a.Source != "" {
		field("Source", a.Source)
	}
	if a.Description != "" {
		b.WriteString("\n")
		b.WriteString(a.Description)
	}
	return RenderBox(a.Name, strings.TrimRight(b.String(), "\n")) + "\n"
}
