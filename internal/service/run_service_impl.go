package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/repository"
)

type runService struct {
	runs repository.RunRepo
}

func NewRunService(runs repository.RunRepo) RunService {
	return &runService{runs: runs}
}

func (s *runService) List(ctx context.Context, limit int) ([]*domain.RecommendationRun, error) {
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *runService) Get(ctx context.Context, id string) (*domain.RecommendationRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting run %q: %w", id, err)
	}
	return run, nil
}

func (s *runService) Response(ctx context.Context, id string) (*contract.RecommendResponse, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var resp contract.RecommendResponse
	if err := json.Unmarshal(run.Response, &resp); err != nil {
		return nil, fmt.Errorf("decoding run %q: %w", id, err)
	}
	return &resp, nil
}
