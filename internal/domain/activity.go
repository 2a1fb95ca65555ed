package domain

import (
	"errors"
	"fmt"
	"time"
)

// Global age range supported by the catalog.
const (
	MinAge = 6
	MaxAge = 15
)

// Activity is a single catalog exercise. Activities are read-only to the
// recommendation engine.
type Activity struct {
	ID                 string
	Name               string
	Description        string
	Source             string
	AgeMin             int
	AgeMax             int
	Format             ActivityFormat
	BloomLevel         BloomLevel
	DurationMinMinutes int
	DurationMaxMinutes *int
	Topics             []Topic
	ResourcesNeeded    []Resource
	MentalLoad         EnergyLevel
	PhysicalEnergy     EnergyLevel
	PrepTimeMinutes    *int
	CleanupTimeMinutes *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DurationMax returns the upper duration bound, falling back to the minimum.
func (a *Activity) DurationMax() int {
	return IntFromPtrWithDefault(a.DurationMinMinutes, a.DurationMaxMinutes)
}

// Overhead returns prep plus cleanup minutes.
func (a *Activity) Overhead() int {
	return IntFromPtrWithDefault(0, a.PrepTimeMinutes) + IntFromPtrWithDefault(0, a.CleanupTimeMinutes)
}

// MinMinutes is the shortest time the activity occupies, overhead included.
func (a *Activity) MinMinutes() int {
	return a.DurationMinMinutes + a.Overhead()
}

// MaxMinutes is the longest time the activity occupies, overhead included.
func (a *Activity) MaxMinutes() int {
	return a.DurationMax() + a.Overhead()
}

// HasTopic reports whether the activity covers t.
func (a *Activity) HasTopic(t Topic) bool {
	for _, at := range a.Topics {
		if at == t {
			return true
		}
	}
	return false
}

// Validate checks the invariants the engine relies on and returns every
// violation joined into one error.
func (a *Activity) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if a.AgeMin < MinAge || a.AgeMin > MaxAge {
		errs = append(errs, fmt.Errorf("age_min %d outside [%d,%d]", a.AgeMin, MinAge, MaxAge))
	}
	if a.AgeMax < MinAge || a.AgeMax > MaxAge {
		errs = append(errs, fmt.Errorf("age_max %d outside [%d,%d]", a.AgeMax, MinAge, MaxAge))
	}
	if a.AgeMin > a.AgeMax {
		errs = append(errs, fmt.Errorf("age_min %d greater than age_max %d", a.AgeMin, a.AgeMax))
	}
	if !ValidFormats[string(a.Format)] {
		errs = append(errs, fmt.Errorf("invalid format %q", a.Format))
	}
	if !ValidBloomLevels[string(a.BloomLevel)] {
		errs = append(errs, fmt.Errorf("invalid bloom_level %q", a.BloomLevel))
	}
	if a.DurationMinMinutes < 1 {
		errs = append(errs, fmt.Errorf("duration_min_minutes must be >= 1, got %d", a.DurationMinMinutes))
	}
	if a.DurationMaxMinutes != nil && *a.DurationMaxMinutes < a.DurationMinMinutes {
		errs = append(errs, fmt.Errorf("duration_max_minutes %d less than duration_min_minutes %d",
			*a.DurationMaxMinutes, a.DurationMinMinutes))
	}
	for _, t := range a.Topics {
		if !ValidTopics[string(t)] {
			errs = append(errs, fmt.Errorf("invalid topic %q", t))
		}
	}
	for _, r := range a.ResourcesNeeded {
		if !ValidResources[string(r)] {
			errs = append(errs, fmt.Errorf("invalid resource %q", r))
		}
	}
	if a.MentalLoad != "" && !ValidEnergyLevel[string(a.MentalLoad)] {
		errs = append(errs, fmt.Errorf("invalid mental_load %q", a.MentalLoad))
	}
	if a.PhysicalEnergy != "" && !ValidEnergyLevel[string(a.PhysicalEnergy)] {
		errs = append(errs, fmt.Errorf("invalid physical_energy %q", a.PhysicalEnergy))
	}
	if a.PrepTimeMinutes != nil && *a.PrepTimeMinutes < 0 {
		errs = append(errs, errors.New("prep_time_minutes must be >= 0"))
	}
	if a.CleanupTimeMinutes != nil && *a.CleanupTimeMinutes < 0 {
		errs = append(errs, errors.New("cleanup_time_minutes must be >= 0"))
	}
	return errors.Join(errs...)
}

// Break is a pause attached after one activity of a lesson plan.
type Break struct {
	Duration    int
	Description string
	Reasons     []string
}
