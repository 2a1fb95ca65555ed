package service

import (
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/engine"
)

type metaService struct {
	cfg engine.Config
}

// NewMetaService describes the accepted field values and the scoring model
// of an engine configured with cfg.
func NewMetaService(cfg engine.Config) MetaService {
	return &metaService{cfg: cfg}
}

func (s *metaService) FieldValues() contract.FieldValues {
	return contract.FieldValues{
		Format:             domain.Strings(domain.AllFormats),
		ResourcesAvailable: domain.Strings(domain.AllResources),
		BloomLevel:         domain.Strings(domain.AllBloomLevels),
		Topics:             domain.Strings(domain.AllTopics),
		MentalLoad:         domain.Strings(domain.AllEnergyLevels),
		PhysicalEnergy:     domain.Strings(domain.AllEnergyLevels),
		PriorityCategories: engine.CategoryNames(),
		AgeMin:             domain.MinAge,
		AgeMax:             domain.MaxAge,
	}
}

// ScoringInsights lists every category with its base weight and its share of
// the total base weight before priority adjustment.
func (s *metaService) ScoringInsights() contract.ScoringInsights {
	var sum float64
	for _, c := range engine.AllCategories {
		sum += c.BaseWeight()
	}
	cats := make([]contract.CategoryInsight, len(engine.AllCategories))
	for i, c := range engine.AllCategories {
		cats[i] = contract.CategoryInsight{
			Name:        c.String(),
			BaseWeight:  c.BaseWeight(),
			Weight:      round4(c.BaseWeight() / sum),
			Description: c.Description(),
		}
	}
	return contract.ScoringInsights{
		Categories:         cats,
		PriorityMultiplier: s.cfg.PriorityMultiplier,
		AgeFilterTolerance: s.cfg.AgeFilterTolerance,
		DurationTolerance:  s.cfg.DurationTolerance,
		BeamWidth:          s.cfg.BeamWidth,
		DiversityThreshold: s.cfg.DiversityThreshold,
	}
}
