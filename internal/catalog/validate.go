package catalog

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// Validate checks a parsed catalog before conversion and returns every
// problem found, each prefixed with its field path.
func Validate(f *File) []error {
	var errs []error
	if len(f.Activities) == 0 {
		return append(errs, fmt.Errorf("activities: at least one activity is required"))
	}

	seen := make(map[string]int)
	for i := range f.Activities {
		a := &f.Activities[i]
		path := fmt.Sprintf("activities[%d]", i)
		errs = append(errs, validateActivity(path, a)...)

		if a.ID == "" {
			continue
		}
		if first, dup := seen[a.ID]; dup {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q (first used by activities[%d])", path, a.ID, first))
			continue
		}
		seen[a.ID] = i
	}
	return errs
}

func validateActivity(path string, a *ActivityImport) []error {
	var errs []error

	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if strings.TrimSpace(a.Description) == "" {
		errs = append(errs, fmt.Errorf("%s.description is required", path))
	}

	ageOK := true
	if a.AgeMin < domain.MinAge || a.AgeMin > domain.MaxAge {
		errs = append(errs, fmt.Errorf("%s.age_min: %d outside %d-%d", path, a.AgeMin, domain.MinAge, domain.MaxAge))
		ageOK = false
	}
	if a.AgeMax < domain.MinAge || a.AgeMax > domain.MaxAge {
		errs = append(errs, fmt.Errorf("%s.age_max: %d outside %d-%d", path, a.AgeMax, domain.MinAge, domain.MaxAge))
		ageOK = false
	}
	if ageOK && a.AgeMin > a.AgeMax {
		errs = append(errs, fmt.Errorf("%s.age_max: %d must be >= age_min %d", path, a.AgeMax, a.AgeMin))
	}

	if !domain.ValidFormats[a.Format] {
		errs = append(errs, invalidValue(path+".format", a.Format, domain.AllFormats))
	}
	if !domain.ValidBloomLevels[a.BloomLevel] {
		errs = append(errs, invalidValue(path+".bloom_level", a.BloomLevel, domain.AllBloomLevels))
	}

	if a.DurationMinMinutes < 1 {
		errs = append(errs, fmt.Errorf("%s.duration_min_minutes: must be >= 1, got %d", path, a.DurationMinMinutes))
	}
	if a.DurationMaxMinutes != nil && *a.DurationMaxMinutes < a.DurationMinMinutes {
		errs = append(errs, fmt.Errorf("%s.duration_max_minutes: %d must be >= duration_min_minutes %d",
			path, *a.DurationMaxMinutes, a.DurationMinMinutes))
	}
	if a.PrepTimeMinutes != nil && *a.PrepTimeMinutes < 0 {
		errs = append(errs, fmt.Errorf("%s.prep_time_minutes: must be >= 0, got %d", path, *a.PrepTimeMinutes))
	}
	if a.CleanupTimeMinutes != nil && *a.CleanupTimeMinutes < 0 {
		errs = append(errs, fmt.Errorf("%s.cleanup_time_minutes: must be >= 0, got %d", path, *a.CleanupTimeMinutes))
	}

	for j, t := range a.Topics {
		if !domain.ValidTopics[t] {
			errs = append(errs, invalidValue(fmt.Sprintf("%s.topics[%d]", path, j), t, domain.AllTopics))
		}
	}
	for j, r := range a.ResourcesNeeded {
		if !domain.ValidResources[r] {
			errs = append(errs, invalidValue(fmt.Sprintf("%s.resources_needed[%d]", path, j), r, domain.AllResources))
		}
	}
	if a.MentalLoad != "" && !domain.ValidEnergyLevel[a.MentalLoad] {
		errs = append(errs, invalidValue(path+".mental_load", a.MentalLoad, domain.AllEnergyLevels))
	}
	if a.PhysicalEnergy != "" && !domain.ValidEnergyLevel[a.PhysicalEnergy] {
		errs = append(errs, invalidValue(path+".physical_energy", a.PhysicalEnergy, domain.AllEnergyLevels))
	}

	return errs
}

func invalidValue[T ~string](field, got string, allowed []T) error {
	return fmt.Errorf("%s: invalid value %q (expected one of %s)", field, got, strings.Join(domain.Strings(allowed), ", "))
}
