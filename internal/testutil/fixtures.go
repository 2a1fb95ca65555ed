package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

var testActivityCounter atomic.Int64

// Activity options
type ActivityOption func(*domain.Activity)

func WithID(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.ID = id
	}
}

func WithName(name string) ActivityOption {
	return func(a *domain.Activity) {
		a.Name = name
	}
}

func WithAges(min, max int) ActivityOption {
	return func(a *domain.Activity) {
		a.AgeMin = min
		a.AgeMax = max
	}
}

// WithDuration sets the duration range. max <= 0 leaves the maximum unset.
func WithDuration(min, max int) ActivityOption {
	return func(a *domain.Activity) {
		a.DurationMinMinutes = min
		a.DurationMaxMinutes = nil
		if max > 0 {
			a.DurationMaxMinutes = &max
		}
	}
}

func WithOverhead(prep, cleanup int) ActivityOption {
	return func(a *domain.Activity) {
		a.PrepTimeMinutes = &prep
		a.CleanupTimeMinutes = &cleanup
	}
}

func WithFormat(f domain.ActivityFormat) ActivityOption {
	return func(a *domain.Activity) {
		a.Format = f
	}
}

func WithBloom(b domain.BloomLevel) ActivityOption {
	return func(a *domain.Activity) {
		a.BloomLevel = b
	}
}

func WithTopics(topics ...domain.Topic) ActivityOption {
	return func(a *domain.Activity) {
		a.Topics = topics
	}
}

func WithResources(resources ...domain.Resource) ActivityOption {
	return func(a *domain.Activity) {
		a.ResourcesNeeded = resources
	}
}

func WithLoad(mental, physical domain.EnergyLevel) ActivityOption {
	return func(a *domain.Activity) {
		a.MentalLoad = mental
		a.PhysicalEnergy = physical
	}
}

// NewTestActivity returns a valid activity for ages 8-12 lasting 30 minutes,
// with a unique id unless WithID is given.
func NewTestActivity(name string, opts ...ActivityOption) domain.Activity {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	n := testActivityCounter.Add(1)
	a := domain.Activity{
		ID:                 fmt.Sprintf("act-%04d", n),
		Name:               name,
		Description:        name + " activity",
		AgeMin:             8,
		AgeMax:             12,
		Format:             domain.FormatUnplugged,
		BloomLevel:         domain.BloomApply,
		DurationMinMinutes: 30,
		Topics:             []domain.Topic{domain.TopicAlgorithms},
		MentalLoad:         domain.EnergyMedium,
		PhysicalEnergy:     domain.EnergyLow,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
