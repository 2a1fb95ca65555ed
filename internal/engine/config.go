package engine

import "github.com/alexanderramin/lessonplanner/internal/domain"

// Config holds every tunable of the recommendation engine. Tests override
// fields on a DefaultConfig() value instead of touching package state.
type Config struct {
	// AgeFilterTolerance widens the hard age filter and sets the distance at
	// which age_appropriateness reaches 0.
	AgeFilterTolerance int
	// PriorityMultiplier scales the weight of every priority category before
	// renormalization.
	PriorityMultiplier float64
	// BeamWidth is the number of partial plans kept per extension step.
	// A width >= catalog size makes the search exhaustive.
	BeamWidth int
	// DurationTolerance is the allowed relative deviation of a plan's total
	// duration from the target (0.2 = ±20%).
	DurationTolerance float64
	// DiversityThreshold is the id-overlap ratio at which a lower-ranked plan
	// is dropped as a near duplicate.
	DiversityThreshold float64

	BreakMinutes          int
	LongBreakMinutes      int
	LongBreakAfterMinutes int
	BreakIncrement        int
	// IntensityThreshold is the accumulated load intensity (low=1, medium=2,
	// high=3 per load axis) that forces a break.
	IntensityThreshold int

	MaxActivityCountLimit int
	MinutesPerActivity    int
	DefaultLimit          int

	// Workers bounds concurrent scoring goroutines.
	Workers int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		AgeFilterTolerance:    2,
		PriorityMultiplier:    1.5,
		BeamWidth:             20,
		DurationTolerance:     0.2,
		DiversityThreshold:    0.5,
		BreakMinutes:          5,
		LongBreakMinutes:      10,
		LongBreakAfterMinutes: 60,
		BreakIncrement:        5,
		IntensityThreshold:    8,
		MaxActivityCountLimit: 5,
		MinutesPerActivity:    30,
		DefaultLimit:          5,
		Workers:               4,
	}
}

// CriteriaDefaults exposes the defaults SearchCriteria.Normalize needs.
func (c Config) CriteriaDefaults() domain.CriteriaDefaults {
	return domain.CriteriaDefaults{
		MinutesPerActivity:    c.MinutesPerActivity,
		MaxActivityCountLimit: c.MaxActivityCountLimit,
		Limit:                 c.DefaultLimit,
	}
}

// sanitized replaces unusable values with defaults so a partially filled
// Config never panics or loops.
func (c Config) sanitized() Config {
	d := DefaultConfig()
	if c.AgeFilterTolerance < 0 {
		c.AgeFilterTolerance = d.AgeFilterTolerance
	}
	if c.PriorityMultiplier < 1 {
		c.PriorityMultiplier = 1
	}
	if c.BeamWidth < 1 {
		c.BeamWidth = d.BeamWidth
	}
	if c.DurationTolerance < 0 {
		c.DurationTolerance = d.DurationTolerance
	}
	if c.DiversityThreshold <= 0 || c.DiversityThreshold > 1 {
		c.DiversityThreshold = d.DiversityThreshold
	}
	if c.BreakMinutes <= 0 {
		c.BreakMinutes = d.BreakMinutes
	}
	if c.LongBreakMinutes < c.BreakMinutes {
		c.LongBreakMinutes = c.BreakMinutes
	}
	if c.LongBreakAfterMinutes <= 0 {
		c.LongBreakAfterMinutes = d.LongBreakAfterMinutes
	}
	if c.BreakIncrement <= 0 {
		c.BreakIncrement = d.BreakIncrement
	}
	if c.IntensityThreshold <= 0 {
		c.IntensityThreshold = d.IntensityThreshold
	}
	if c.MaxActivityCountLimit < 1 {
		c.MaxActivityCountLimit = d.MaxActivityCountLimit
	}
	if c.MinutesPerActivity < 1 {
		c.MinutesPerActivity = d.MinutesPerActivity
	}
	if c.DefaultLimit < 1 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}
