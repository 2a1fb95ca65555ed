package engine

import (
	"math"
	"slices"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// PlannedActivity is one step of a lesson plan.
type PlannedActivity struct {
	Activity domain.Activity
	// AllocatedMinutes is the time the activity occupies in the plan, prep
	// and cleanup included.
	AllocatedMinutes int
	BreakAfter       *domain.Break
}

// Plan is a ranked lesson plan: an ordered list of activities with an
// optional break after any non-final step.
type Plan struct {
	Activities   []PlannedActivity
	Score        float64
	Breakdown    Breakdown
	TotalMinutes int
	BreakMinutes int
}

// IDs returns the activity ids in plan order.
func (p Plan) IDs() []string {
	ids := make([]string, len(p.Activities))
	for i, pa := range p.Activities {
		ids[i] = pa.Activity.ID
	}
	return ids
}

// candidate is a plan under construction.
type candidate struct {
	members []*ScoredActivity
	breaks  []*domain.Break
	key     string

	minMinutes int
	maxMinutes int

	partial   float64
	score     float64
	breakdown Breakdown
	total     int
}

func newCandidate(members []*ScoredActivity) *candidate {
	c := &candidate{
		members: members,
		breaks:  make([]*domain.Break, len(members)),
	}
	ids := make([]string, len(members))
	for i, m := range members {
		c.minMinutes += m.Activity.MinMinutes()
		c.maxMinutes += m.Activity.MaxMinutes()
		ids[i] = m.Activity.ID
	}
	slices.Sort(ids)
	c.key = strings.Join(ids, "\x00")
	return c
}

func (c *candidate) extend(m *ScoredActivity) *candidate {
	members := make([]*ScoredActivity, len(c.members), len(c.members)+1)
	copy(members, c.members)
	return newCandidate(append(members, m))
}

func (c *candidate) has(id string) bool {
	for _, m := range c.members {
		if m.Activity.ID == id {
			return true
		}
	}
	return false
}

func (c *candidate) ids() []string {
	ids := make([]string, len(c.members))
	for i, m := range c.members {
		ids[i] = m.Activity.ID
	}
	return ids
}

func (c *candidate) breakMinutes() int {
	total := 0
	for _, b := range c.breaks {
		if b != nil {
			total += b.Duration
		}
	}
	return total
}

// totalFor returns the plan duration closest to target that the members can
// cover, breaks included.
func (c *candidate) totalFor(target int) int {
	br := c.breakMinutes()
	return clampInt(target, c.minMinutes+br, c.maxMinutes+br)
}

// withinEnvelope reports whether total deviates from target by at most the
// tolerance ratio.
func withinEnvelope(total, target int, tolerance float64) bool {
	if target <= 0 {
		return false
	}
	dev := math.Abs(float64(total-target)) / float64(target)
	return dev <= tolerance+1e-9
}

// allocate spreads the plan total over the members: each gets its minimum,
// then the remainder is granted in order up to each member's maximum.
func (c *candidate) allocate() []PlannedActivity {
	out := make([]PlannedActivity, len(c.members))
	remaining := c.total - c.breakMinutes() - c.minMinutes
	for i, m := range c.members {
		alloc := m.Activity.MinMinutes()
		if remaining > 0 {
			extra := min(remaining, m.Activity.MaxMinutes()-alloc)
			alloc += extra
			remaining -= extra
		}
		out[i] = PlannedActivity{
			Activity:         m.Activity,
			AllocatedMinutes: alloc,
			BreakAfter:       c.breaks[i],
		}
	}
	return out
}

func (c *candidate) toPlan() Plan {
	return Plan{
		Activities:   c.allocate(),
		Score:        c.score,
		Breakdown:    c.breakdown,
		TotalMinutes: c.total,
		BreakMinutes: c.breakMinutes(),
	}
}
