package engine

import "fmt"

// Category is one scoring dimension. The set is closed; weights live in a
// fixed-size table indexed by Category.
type Category int

const (
	CategoryAgeAppropriateness Category = iota
	CategoryDurationFit
	CategoryBloomLevelMatch
	CategoryTopicRelevance
	CategoryFormatMatch
	CategoryResourceMatch
	CategorySeriesCohesion

	numCategories
)

// AllCategories lists every category in breakdown order.
var AllCategories = []Category{
	CategoryAgeAppropriateness,
	CategoryDurationFit,
	CategoryBloomLevelMatch,
	CategoryTopicRelevance,
	CategoryFormatMatch,
	CategoryResourceMatch,
	CategorySeriesCohesion,
}

var categoryNames = [numCategories]string{
	CategoryAgeAppropriateness: "age_appropriateness",
	CategoryDurationFit:        "duration_fit",
	CategoryBloomLevelMatch:    "bloom_level_match",
	CategoryTopicRelevance:     "topic_relevance",
	CategoryFormatMatch:        "format_match",
	CategoryResourceMatch:      "resource_match",
	CategorySeriesCohesion:     "series_cohesion",
}

// baseWeights are relative impact levels; they are normalized per breakdown.
var baseWeights = [numCategories]float64{
	CategoryAgeAppropriateness: 4,
	CategoryDurationFit:        3,
	CategoryBloomLevelMatch:    5,
	CategoryTopicRelevance:     4,
	CategoryFormatMatch:        2,
	CategoryResourceMatch:      2,
	CategorySeriesCohesion:     3,
}

var categoryDescriptions = [numCategories]string{
	CategoryAgeAppropriateness: "How well the activity matches the target age",
	CategoryDurationFit:        "How close the total duration (activities + breaks) is to the target duration",
	CategoryBloomLevelMatch:    "How close the activity is to the requested Bloom's taxonomy levels",
	CategoryTopicRelevance:     "Share of the preferred topics the activity covers",
	CategoryFormatMatch:        "Whether the activity format is one of the accepted formats",
	CategoryResourceMatch:      "Share of the required resources that are available",
	CategorySeriesCohesion:     "How well activities in a lesson plan work together (topic continuity, Bloom progression, load balance)",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// BaseWeight returns the unnormalized weight of c.
func (c Category) BaseWeight() float64 {
	if c < 0 || c >= numCategories {
		return 0
	}
	return baseWeights[c]
}

// Description returns a one-line explanation of c.
func (c Category) Description() string {
	if c < 0 || c >= numCategories {
		return ""
	}
	return categoryDescriptions[c]
}

// ParseCategory maps a category name to its Category.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scoring category %q", name)
}

// CategoryNames returns every category name in breakdown order.
func CategoryNames() []string {
	names := make([]string, len(AllCategories))
	for i, c := range AllCategories {
		names[i] = c.String()
	}
	return names
}

// prioritySet is a fixed-size membership table for priority categories.
type prioritySet [numCategories]bool

func newPrioritySet(names []string) prioritySet {
	var ps prioritySet
	for _, n := range names {
		if c, err := ParseCategory(n); err == nil {
			ps[c] = true
		}
	}
	return ps
}
