package engine

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// Fault records a catalog activity that was excluded because its record is
// malformed. Faults are for the catalog owner, not the requester.
type Fault struct {
	ActivityID string
	Err        error
}

func (f Fault) Error() string {
	return fmt.Sprintf("activity %q: %v", f.ActivityID, f.Err)
}

// Filter returns the activities that can possibly satisfy criteria. All
// tests are AND-combined; an empty criteria set does not constrain.
// Malformed activities are excluded and reported as faults.
func Filter(activities []domain.Activity, criteria domain.SearchCriteria, ageTolerance int) ([]domain.Activity, []Fault) {
	var kept []domain.Activity
	var faults []Fault

	for _, a := range activities {
		if err := a.Validate(); err != nil {
			faults = append(faults, Fault{ActivityID: a.ID, Err: err})
			continue
		}
		if !passesAge(&a, criteria.TargetAge, ageTolerance) {
			continue
		}
		if len(criteria.Formats) > 0 && !slices.Contains(criteria.Formats, a.Format) {
			continue
		}
		if len(criteria.Resources) > 0 && !coveredBy(a.ResourcesNeeded, criteria.Resources) {
			continue
		}
		if len(criteria.BloomLevels) > 0 && !slices.Contains(criteria.BloomLevels, a.BloomLevel) {
			continue
		}
		if len(criteria.Topics) > 0 && !sharesAny(a.Topics, criteria.Topics) {
			continue
		}
		kept = append(kept, a)
	}
	return kept, faults
}

// passesAge reports whether [AgeMin, AgeMax] overlaps
// [target-tolerance, target+tolerance].
func passesAge(a *domain.Activity, target, tolerance int) bool {
	return a.AgeMin <= target+tolerance && a.AgeMax >= target-tolerance
}

// coveredBy reports whether every element of vals is in set.
func coveredBy[T comparable](vals, set []T) bool {
	return !slices.ContainsFunc(vals, func(v T) bool { return !slices.Contains(set, v) })
}

func sharesAny[T comparable](a, b []T) bool {
	return slices.ContainsFunc(a, func(v T) bool { return slices.Contains(b, v) })
}
