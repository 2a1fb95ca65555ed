package contract

// FieldValues lists the accepted values of every enumerated request and
// activity field, for building client forms.
type FieldValues struct {
	Format             []string `json:"format"`
	ResourcesAvailable []string `json:"resources_available"`
	BloomLevel         []string `json:"bloom_level"`
	Topics             []string `json:"topics"`
	MentalLoad         []string `json:"mental_load"`
	PhysicalEnergy     []string `json:"physical_energy"`
	PriorityCategories []string `json:"priority_categories"`
	AgeMin             int      `json:"age_min"`
	AgeMax             int      `json:"age_max"`
}

// CategoryInsight describes one scoring category.
type CategoryInsight struct {
	Name        string  `json:"name"`
	BaseWeight  float64 `json:"base_weight"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// ScoringInsights explains how recommendations are scored.
type ScoringInsights struct {
	Categories         []CategoryInsight `json:"categories"`
	PriorityMultiplier float64           `json:"priority_multiplier"`
	AgeFilterTolerance int               `json:"age_filter_tolerance"`
	DurationTolerance  float64           `json:"duration_tolerance"`
	BeamWidth          int               `json:"beam_width"`
	DiversityThreshold float64           `json:"diversity_threshold"`
}
