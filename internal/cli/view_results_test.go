package cli

import (
	"testing"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/teatest"
	"github.com/stretchr/testify/assert"
)

func browserResponse() *contract.RecommendResponse {
	rec := func(name string, score float64) contract.Recommendation {
		return contract.Recommendation{
			Activities:           []contract.PlannedActivity{{Activity: contract.Activity{ID: name, Name: name}, AllocatedMinutes: 30}},
			Score:                score,
			TotalDurationMinutes: 30,
		}
	}
	return &contract.RecommendResponse{
		Activities: []contract.Recommendation{rec("First", 90), rec("Second", 70), rec("Third", 40)},
		Total:      3,
	}
}

func TestResultsBrowser_Navigation(t *testing.T) {
	m := newResultsBrowser(browserResponse())
	d := teatest.New(t, m, 100, 40)

	d.Keys("j")
	d.Down()
	d.Keys("j")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last item")

	d.Keys("k")
	assert.Equal(t, 1, m.cursor)
	d.RequireView("▸", "Second", "enter details")

	d.Enter()
	assert.True(t, m.expanded)
	d.RequireView("#2", "scroll")

	d.Esc()
	assert.False(t, m.expanded)
	assert.False(t, d.Quit, "esc collapses before it quits")

	d.Keys("q")
	assert.True(t, d.Quit)
}

func TestResultsBrowser_Empty(t *testing.T) {
	m := newResultsBrowser(&contract.RecommendResponse{})
	d := teatest.New(t, m, 80, 20)

	d.Enter()
	assert.False(t, m.expanded)
	d.RequireView("No activities match")

	d.Esc()
	assert.True(t, d.Quit)
}
