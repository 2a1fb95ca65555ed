package contract

import "github.com/alexanderramin/lessonplanner/internal/domain"

// Activity is the wire form of a catalog activity.
type Activity struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Source             string   `json:"source,omitempty"`
	AgeMin             int      `json:"age_min"`
	AgeMax             int      `json:"age_max"`
	Format             string   `json:"format"`
	BloomLevel         string   `json:"bloom_level"`
	DurationMinMinutes int      `json:"duration_min_minutes"`
	DurationMaxMinutes *int     `json:"duration_max_minutes,omitempty"`
	Topics             []string `json:"topics"`
	ResourcesNeeded    []string `json:"resources_needed"`
	MentalLoad         string   `json:"mental_load,omitempty"`
	PhysicalEnergy     string   `json:"physical_energy,omitempty"`
	PrepTimeMinutes    *int     `json:"prep_time_minutes,omitempty"`
	CleanupTimeMinutes *int     `json:"cleanup_time_minutes,omitempty"`
}

// NewActivity maps a domain activity to its wire form.
func NewActivity(a domain.Activity) Activity {
	return Activity{
		ID:                 a.ID,
		Name:               a.Name,
		Description:        a.Description,
		Source:             a.Source,
		AgeMin:             a.AgeMin,
		AgeMax:             a.AgeMax,
		Format:             string(a.Format),
		BloomLevel:         string(a.BloomLevel),
		DurationMinMinutes: a.DurationMinMinutes,
		DurationMaxMinutes: a.DurationMaxMinutes,
		Topics:             domain.Strings(a.Topics),
		ResourcesNeeded:    domain.Strings(a.ResourcesNeeded),
		MentalLoad:         string(a.MentalLoad),
		PhysicalEnergy:     string(a.PhysicalEnergy),
		PrepTimeMinutes:    a.PrepTimeMinutes,
		CleanupTimeMinutes: a.CleanupTimeMinutes,
	}
}

// ActivityListRequest filters and pages a catalog listing. List fields match
// activities having any of the values; Limit 0 lists every match.
type ActivityListRequest struct {
	Name            string   `json:"name,omitempty"`
	AgeMin          *int     `json:"age_min,omitempty" validate:"omitempty,min=6,max=15"`
	AgeMax          *int     `json:"age_max,omitempty" validate:"omitempty,min=6,max=15"`
	Format          []string `json:"format,omitempty" validate:"dive,oneof=unplugged digital hybrid"`
	BloomLevel      []string `json:"bloom_level,omitempty" validate:"dive,oneof=remember understand apply analyze evaluate create"`
	ResourcesNeeded []string `json:"resources_needed,omitempty" validate:"dive,oneof=computers tablets handouts blocks electronics stationery"`
	Topics          []string `json:"topics,omitempty" validate:"dive,oneof=decomposition patterns abstraction algorithms"`
	Limit           int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Offset          int      `json:"offset,omitempty" validate:"min=0"`
}

// Query converts the request to a catalog query. Call only after the
// request has been validated.
func (r ActivityListRequest) Query() domain.ActivityQuery {
	return domain.ActivityQuery{
		Name:        r.Name,
		AgeMin:      r.AgeMin,
		AgeMax:      r.AgeMax,
		Formats:     typed[domain.ActivityFormat](r.Format),
		BloomLevels: typed[domain.BloomLevel](r.BloomLevel),
		Resources:   typed[domain.Resource](r.ResourcesNeeded),
		Topics:      typed[domain.Topic](r.Topics),
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

// ActivityListResponse is one page of a catalog listing.
type ActivityListResponse struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

func NewActivityListResponse(acts []domain.Activity, total, limit, offset int) ActivityListResponse {
	out := ActivityListResponse{
		Activities: make([]Activity, len(acts)),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
	for i, a := range acts {
		out.Activities[i] = NewActivity(a)
	}
	return out
}
