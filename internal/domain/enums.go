package domain

import "slices"

type ActivityFormat string

const (
	FormatUnplugged ActivityFormat = "unplugged"
	FormatDigital   ActivityFormat = "digital"
	FormatHybrid    ActivityFormat = "hybrid"
)

// AllFormats lists every accepted activity format.
var AllFormats = []ActivityFormat{FormatUnplugged, FormatDigital, FormatHybrid}

type Resource string

const (
	ResourceComputers   Resource = "computers"
	ResourceTablets     Resource = "tablets"
	ResourceHandouts    Resource = "handouts"
	ResourceBlocks      Resource = "blocks"
	ResourceElectronics Resource = "electronics"
	ResourceStationery  Resource = "stationery"
)

// AllResources lists every accepted resource.
var AllResources = []Resource{
	ResourceComputers, ResourceTablets, ResourceHandouts,
	ResourceBlocks, ResourceElectronics, ResourceStationery,
}

type Topic string

const (
	TopicDecomposition Topic = "decomposition"
	TopicPatterns      Topic = "patterns"
	TopicAbstraction   Topic = "abstraction"
	TopicAlgorithms    Topic = "algorithms"
)

// AllTopics lists the controlled topic vocabulary.
var AllTopics = []Topic{TopicDecomposition, TopicPatterns, TopicAbstraction, TopicAlgorithms}

// BloomLevel is a position in Bloom's taxonomy. The order of AllBloomLevels
// is the cognitive-demand ordering used for scoring.
type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

var AllBloomLevels = []BloomLevel{
	BloomRemember, BloomUnderstand, BloomApply,
	BloomAnalyze, BloomEvaluate, BloomCreate,
}

// Rank returns the ordinal position of b, or -1 for an unknown level.
func (b BloomLevel) Rank() int {
	return slices.Index(AllBloomLevels, b)
}

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

var AllEnergyLevels = []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh}

// Intensity maps a load level onto 1..3. Unknown levels count as medium.
func (e EnergyLevel) Intensity() int {
	switch e {
	case EnergyLow:
		return 1
	case EnergyHigh:
		return 3
	default:
		return 2
	}
}

// ValidFormats, ValidResources, ValidTopics and ValidBloomLevels are the
// canonical sets of accepted strings.
var (
	ValidFormats     = toSet(AllFormats)
	ValidResources   = toSet(AllResources)
	ValidTopics      = toSet(AllTopics)
	ValidBloomLevels = toSet(AllBloomLevels)
	ValidEnergyLevel = toSet(AllEnergyLevels)
)

func toSet[T ~string](vals []T) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[string(v)] = true
	}
	return m
}

// Strings converts a typed string slice to []string.
func Strings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
