package engine

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// insertBreaks decides, for every boundary between consecutive members,
// whether a break is needed. A break that would push the plan out of the
// duration envelope is omitted. Never places a break after the last member.
func insertBreaks(c *candidate, target int, cfg Config) {
	for i := range c.breaks {
		c.breaks[i] = nil
	}
	if len(c.members) < 2 {
		return
	}

	sinceBreak := 0
	intensity := 0
	for i := 0; i < len(c.members)-1; i++ {
		cur := &c.members[i].Activity
		next := &c.members[i+1].Activity

		sinceBreak += cur.MinMinutes()
		intensity += cur.MentalLoad.Intensity() + cur.PhysicalEnergy.Intensity()

		reasons := breakReasons(cur, next, intensity >= cfg.IntensityThreshold)
		if len(reasons) == 0 {
			continue
		}

		minutes := cfg.BreakMinutes
		if sinceBreak >= cfg.LongBreakAfterMinutes {
			minutes = cfg.LongBreakMinutes
		}
		c.breaks[i] = &domain.Break{
			Duration:    roundUp(minutes, cfg.BreakIncrement),
			Description: strings.Join(reasons, "; "),
			Reasons:     reasons,
		}
		if !withinEnvelope(c.totalFor(target), target, cfg.DurationTolerance) {
			c.breaks[i] = nil
			continue
		}
		sinceBreak = 0
		intensity = 0
	}
}

// breakReasons lists why a break belongs between cur and next. Empty means
// no break.
func breakReasons(cur, next *domain.Activity, accumulated bool) []string {
	var reasons []string

	if cur.MentalLoad == domain.EnergyHigh {
		if next.MentalLoad == domain.EnergyHigh {
			reasons = append(reasons, "high mental load for two consecutive activities")
		} else {
			reasons = append(reasons, "mental rest after high mental load")
		}
	}
	if cur.PhysicalEnergy == domain.EnergyHigh {
		if next.PhysicalEnergy == domain.EnergyHigh {
			reasons = append(reasons, "high physical energy for two consecutive activities")
		} else {
			reasons = append(reasons, "physical rest after high physical energy")
		}
	}
	if accumulated && len(reasons) == 0 {
		reasons = append(reasons, "accumulated activity intensity since the last break")
	}
	if cur.Format != next.Format {
		reasons = append(reasons, fmt.Sprintf("transition from %s to %s", cur.Format, next.Format))
	}
	return reasons
}

// roundUp rounds v up to the next multiple of step.
func roundUp(v, step int) int {
	if step <= 1 {
		return v
	}
	return ((v + step - 1) / step) * step
}
