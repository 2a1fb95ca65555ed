package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/engine"
	"github.com/alexanderramin/lessonplanner/internal/repository"
	"github.com/alexanderramin/lessonplanner/internal/validation"
	"github.com/google/uuid"
)

type recommendService struct {
	activities repository.ActivityRepo
	runs       repository.RunRepo
	engine     *engine.Engine
	logger     *slog.Logger
	observer   UseCaseObserver
	now        func() time.Time
}

// NewRecommendService wires the engine to the catalog and the run sink. A nil
// runs repo disables run recording.
func NewRecommendService(
	activities repository.ActivityRepo,
	runs repository.RunRepo,
	eng *engine.Engine,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) RecommendService {
	if logger == nil {
		logger = discardLogger()
	}
	return &recommendService{
		activities: activities,
		runs:       runs,
		engine:     eng,
		logger:     logger,
		observer:   useCaseObserverOrNoop(observers),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *recommendService) Recommend(ctx context.Context, req contract.RecommendRequest) (*contract.RecommendResponse, error) {
	return s.run(ctx, "recommend", req, s.runs != nil)
}

func (s *recommendService) Preview(ctx context.Context, req contract.RecommendRequest) (*contract.RecommendResponse, error) {
	return s.run(ctx, "recommend-preview", req, false)
}

func (s *recommendService) run(ctx context.Context, name string, req contract.RecommendRequest, save bool) (resp *contract.RecommendResponse, err error) {
	fields := map[string]any{
		"target_age":      req.TargetAge,
		"target_duration": req.TargetDuration,
	}
	defer observe(ctx, s.observer, name, fields)(&err)

	if err = checkRequest(req); err != nil {
		return nil, err
	}

	var (
		catalog []domain.Activity
		skipped []repository.RowFault
	)
	catalog, skipped, err = s.activities.GetAll(ctx)
	if err != nil {
		return nil, &contract.RecommendError{
			Code:    contract.ErrCatalogUnavailable,
			Message: fmt.Sprintf("loading activities: %v", err),
		}
	}
	for _, f := range skipped {
		s.logger.WarnContext(ctx, "skipping undecodable activity",
			"activity_id", f.ID,
			"error", f.Err.Error(),
		)
	}

	var res *engine.Result
	res, err = s.engine.Recommend(catalog, req.Criteria())
	if err != nil {
		if errors.Is(err, engine.ErrInvalidCriteria) {
			return nil, &contract.RecommendError{Code: contract.ErrInvalidRequest, Message: err.Error()}
		}
		return nil, &contract.RecommendError{Code: contract.ErrInternalError, Message: err.Error()}
	}
	for _, f := range res.Faults {
		s.logger.WarnContext(ctx, "skipping malformed activity",
			"activity_id", f.ActivityID,
			"error", f.Err.Error(),
		)
	}
	fields["considered"] = res.Considered
	fields["filtered"] = res.Filtered
	fields["candidates"] = res.Candidates
	fields["faults"] = len(res.Faults) + len(skipped)
	fields["total"] = len(res.Plans)

	resp = AssembleResponse(res, s.now())

	if save {
		if runID, saveErr := s.saveRun(ctx, resp); saveErr != nil {
			s.logger.WarnContext(ctx, "recording recommendation run failed", "error", saveErr.Error())
		} else {
			resp.RunID = runID
			fields["run_id"] = runID
		}
	}
	return resp, nil
}

// checkRequest validates req and maps failures to an INVALID_REQUEST error
// naming every rejected field.
func checkRequest(req contract.RecommendRequest) error {
	err := validation.Struct(req)
	if err == nil {
		return nil
	}
	out := &contract.RecommendError{Code: contract.ErrInvalidRequest, Message: err.Error()}
	var verr *validation.Error
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			out.Fields = append(out.Fields, contract.FieldError{Field: f.Field, Message: f.Message})
		}
	}
	return out
}

func (s *recommendService) saveRun(ctx context.Context, resp *contract.RecommendResponse) (string, error) {
	criteria, err := json.Marshal(resp.SearchCriteria)
	if err != nil {
		return "", fmt.Errorf("encoding criteria: %w", err)
	}
	run := &domain.RecommendationRun{
		ID:        uuid.New().String(),
		CreatedAt: resp.GeneratedAt,
		Total:     resp.Total,
		Criteria:  criteria,
	}

	// the stored response carries its own run id
	resp.RunID = run.ID
	run.Response, err = json.Marshal(resp)
	resp.RunID = ""
	if err != nil {
		return "", fmt.Errorf("encoding response: %w", err)
	}

	if err := s.runs.Create(ctx, run); err != nil {
		return "", fmt.Errorf("creating run: %w", err)
	}
	return run.ID, nil
}
