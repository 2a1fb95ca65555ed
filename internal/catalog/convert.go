package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated catalog into domain activities stamped with
// now. Entries without an id get a fresh UUID. Missing load levels default to
// medium; prep, cleanup and maximum duration stay unset when absent.
// Call Validate first; Convert assumes the file is valid.
func Convert(f *File, now time.Time) []domain.Activity {
	now = now.UTC()
	out := make([]domain.Activity, 0, len(f.Activities))
	for _, in := range f.Activities {
		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, domain.Activity{
			ID:                 id,
			Name:               strings.TrimSpace(in.Name),
			Description:        strings.TrimSpace(in.Description),
			Source:             strings.TrimSpace(in.Source),
			AgeMin:             in.AgeMin,
			AgeMax:             in.AgeMax,
			Format:             domain.ActivityFormat(in.Format),
			BloomLevel:         domain.BloomLevel(in.BloomLevel),
			DurationMinMinutes: in.DurationMinMinutes,
			DurationMaxMinutes: copyInt(in.DurationMaxMinutes),
			Topics:             typedSet[domain.Topic](in.Topics),
			ResourcesNeeded:    typedSet[domain.Resource](in.ResourcesNeeded),
			MentalLoad:         energyOrMedium(in.MentalLoad),
			PhysicalEnergy:     energyOrMedium(in.PhysicalEnergy),
			PrepTimeMinutes:    copyInt(in.PrepTimeMinutes),
			CleanupTimeMinutes: copyInt(in.CleanupTimeMinutes),
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return out
}

func energyOrMedium(s string) domain.EnergyLevel {
	if s == "" {
		return domain.EnergyMedium
	}
	return domain.EnergyLevel(s)
}

// typedSet converts, sorts and de-duplicates a list of enum strings. The
// result is never nil.
func typedSet[T ~string](vals []string) []T {
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		out = append(out, T(v))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
