package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// FormatRunList renders recorded runs newest first with a criteria summary.
func FormatRunList(runs []*domain.RecommendationRun) string {
	if len(runs) == 0 {
		return Dim("No recommendation runs recorded yet.") + "\n"
	}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			TruncID(r.ID),
			Timestamp(r.CreatedAt),
			fmt.Sprintf("%d", r.Total),
			runCriteriaSummary(r.Criteria),
		}
	}
	return RenderTable([]string{"RUN", "CREATED", "PLANS", "CRITERIA"}, rows)
}

func runCriteriaSummary(raw []byte) string {
	var c contract.SearchCriteria
	if err := json.Unmarshal(raw, &c); err != nil {
		return Dim("?")
	}
	parts := []string{fmt.Sprintf("age %d", c.TargetAge), FormatMinutes(c.TargetDuration)}
	if len(c.Topics) > 0 {
		parts = append(parts, strings.Join(c.Topics, "/"))
	}
	if len(c.Format) > 0 {
		parts = append(parts, strings.Join(c.Format, "/"))
	}
	return strings.Join(parts, " · ")
}
