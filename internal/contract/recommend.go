package contract

import (
	"time"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// RecommendRequest is the search request as clients send it. Zero
// MaxActivityCount and Limit mean "use the default"; a nil AllowLessonPlans
// means true.
type RecommendRequest struct {
	TargetAge          int      `json:"target_age" validate:"min=6,max=15"`
	TargetDuration     int      `json:"target_duration" validate:"min=1,max=480"`
	Format             []string `json:"format,omitempty" validate:"dive,oneof=unplugged digital hybrid"`
	ResourcesNeeded    []string `json:"resources_needed,omitempty" validate:"dive,oneof=computers tablets handouts blocks electronics stationery"`
	BloomLevels        []string `json:"bloom_levels,omitempty" validate:"dive,oneof=remember understand apply analyze evaluate create"`
	Topics             []string `json:"topics,omitempty" validate:"dive,oneof=decomposition patterns abstraction algorithms"`
	PriorityCategories []string `json:"priority_categories,omitempty" validate:"dive,oneof=age_appropriateness duration_fit bloom_level_match topic_relevance format_match resource_match series_cohesion"`
	AllowLessonPlans   *bool    `json:"allow_lesson_plans,omitempty"`
	MaxActivityCount   int      `json:"max_activity_count,omitempty" validate:"omitempty,min=1,max=5"`
	IncludeBreaks      bool     `json:"include_breaks"`
	Limit              int      `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// NewRecommendRequest returns a request with lesson plans allowed and all
// other options at their defaults.
func NewRecommendRequest(targetAge, targetDuration int) RecommendRequest {
	allow := true
	return RecommendRequest{
		TargetAge:        targetAge,
		TargetDuration:   targetDuration,
		AllowLessonPlans: &allow,
	}
}

// Criteria converts the request to engine criteria. Call only after the
// request has been validated.
func (r RecommendRequest) Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		TargetAge:          r.TargetAge,
		TargetDuration:     r.TargetDuration,
		Formats:            typed[domain.ActivityFormat](r.Format),
		Resources:          typed[domain.Resource](r.ResourcesNeeded),
		BloomLevels:        typed[domain.BloomLevel](r.BloomLevels),
		Topics:             typed[domain.Topic](r.Topics),
		PriorityCategories: r.PriorityCategories,
		AllowLessonPlans:   domain.BoolFromPtrWithDefault(true, r.AllowLessonPlans),
		MaxActivityCount:   r.MaxActivityCount,
		IncludeBreaks:      r.IncludeBreaks,
		Limit:              r.Limit,
	}
}

func typed[T ~string](vals []string) []T {
	if len(vals) == 0 {
		return nil
	}
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

// SearchCriteria echoes the normalized criteria a response was built from.
type SearchCriteria struct {
	TargetAge          int      `json:"target_age"`
	TargetDuration     int      `json:"target_duration"`
	Format             []string `json:"format"`
	ResourcesNeeded    []string `json:"resources_needed"`
	BloomLevels        []string `json:"bloom_levels"`
	Topics             []string `json:"topics"`
	PriorityCategories []string `json:"priority_categories"`
	AllowLessonPlans   bool     `json:"allow_lesson_plans"`
	MaxActivityCount   int      `json:"max_activity_count"`
	IncludeBreaks      bool     `json:"include_breaks"`
	Limit              int      `json:"limit"`
}

// NewSearchCriteria maps normalized engine criteria to the echo form.
func NewSearchCriteria(c domain.SearchCriteria) SearchCriteria {
	prio := c.PriorityCategories
	if prio == nil {
		prio = []string{}
	}
	return SearchCriteria{
		TargetAge:          c.TargetAge,
		TargetDuration:     c.TargetDuration,
		Format:             domain.Strings(c.Formats),
		ResourcesNeeded:    domain.Strings(c.Resources),
		BloomLevels:        domain.Strings(c.BloomLevels),
		Topics:             domain.Strings(c.Topics),
		PriorityCategories: prio,
		AllowLessonPlans:   c.AllowLessonPlans,
		MaxActivityCount:   c.MaxActivityCount,
		IncludeBreaks:      c.IncludeBreaks,
		Limit:              c.Limit,
	}
}

// Break is a pause after one activity of a plan.
type Break struct {
	Duration    int      `json:"duration"`
	Description string   `json:"description"`
	Reasons     []string `json:"reasons"`
}

// PlannedActivity is an activity inside a recommendation.
type PlannedActivity struct {
	Activity
	AllocatedMinutes int    `json:"allocated_minutes"`
	BreakAfter       *Break `json:"break_after,omitempty"`
}

// CategoryScore explains one category of a recommendation's score.
type CategoryScore struct {
	Category           string  `json:"category"`
	Score              float64 `json:"score"`
	Weight             float64 `json:"weight"`
	Impact             float64 `json:"impact"`
	PriorityMultiplier float64 `json:"priority_multiplier"`
	IsPriority         bool    `json:"is_priority"`
}

// Recommendation is one ranked lesson plan.
type Recommendation struct {
	Activities           []PlannedActivity        `json:"activities"`
	Score                float64                  `json:"score"`
	ScoreBreakdown       map[string]CategoryScore `json:"score_breakdown"`
	TotalDurationMinutes int                      `json:"total_duration_minutes"`
	BreakMinutes         int                      `json:"break_minutes"`
}

// RecommendResponse is the result of one recommendation request. RunID is
// set when the response was persisted.
type RecommendResponse struct {
	RunID          string           `json:"run_id,omitempty"`
	Activities     []Recommendation `json:"activities"`
	Total          int              `json:"total"`
	SearchCriteria SearchCriteria   `json:"search_criteria"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

type RecommendErrorCode string

const (
	ErrInvalidRequest     RecommendErrorCode = "INVALID_REQUEST"
	ErrCatalogUnavailable RecommendErrorCode = "CATALOG_UNAVAILABLE"
	ErrInternalError      RecommendErrorCode = "INTERNAL_ERROR"
)

// FieldError names one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type RecommendError struct {
	Code    RecommendErrorCode `json:"code"`
	Message string             `json:"message"`
	Fields  []FieldError       `json:"fields,omitempty"`
}

func (e *RecommendError) Error() string {
	return string(e.Code) + ": " + e.Message
}
