package service

import (
	"context"

	"github.com/alexanderramin/lessonplanner/internal/catalog"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/repository"
)

// RecommendService answers search requests against the stored catalog.
type RecommendService interface {
	// Recommend produces a response and records it as a run.
	Recommend(ctx context.Context, req contract.RecommendRequest) (*contract.RecommendResponse, error)
	// Preview produces a response without recording it.
	Preview(ctx context.Context, req contract.RecommendRequest) (*contract.RecommendResponse, error)
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Created int
	Updated int
	IDs     []string
}

type CatalogService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	Import(ctx context.Context, f *catalog.File) (*ImportResult, error)
	List(ctx context.Context, req contract.ActivityListRequest) (*repository.ActivityPage, error)
	Get(ctx context.Context, id string) (*domain.Activity, error)
	Remove(ctx context.Context, id string) error
}

type MetaService interface {
	FieldValues() contract.FieldValues
	ScoringInsights() contract.ScoringInsights
}

type RunService interface {
	List(ctx context.Context, limit int) ([]*domain.RecommendationRun, error)
	Get(ctx context.Context, id string) (*domain.RecommendationRun, error)
	// Response decodes the stored response of run id.
	Response(ctx context.Context, id string) (*contract.RecommendResponse, error)
}
