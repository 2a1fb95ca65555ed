package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lessonplanner/internal/catalog"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/db"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/repository"
	"github.com/alexanderramin/lessonplanner/internal/validation"
)

type catalogService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
	now        func() time.Time
}

func NewCatalogService(
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.Import(ctx, f)
}

// Import validates and converts f, then upserts every activity in one
// transaction. Nothing is written unless every activity is.
func (s *catalogService) Import(ctx context.Context, f *catalog.File) (result *ImportResult, err error) {
	fields := map[string]any{"activities": len(f.Activities)}
	defer observe(ctx, s.observer, "import-catalog", fields)(&err)

	if errs := catalog.Validate(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	acts := catalog.Convert(f, s.now())

	result = &ImportResult{IDs: make([]string, 0, len(acts))}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		for i := range acts {
			a := &acts[i]
			_, getErr := repo.GetByID(ctx, a.ID)
			switch {
			case getErr == nil:
				result.Updated++
			case errors.Is(getErr, repository.ErrNotFound):
				result.Created++
			default:
				return fmt.Errorf("checking activity %q: %w", a.ID, getErr)
			}
			if err := repo.Upsert(ctx, a); err != nil {
				return fmt.Errorf("storing activity %q: %w", a.Name, err)
			}
			result.IDs = append(result.IDs, a.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	return result, nil
}

// List returns one page of the activities matching req.
func (s *catalogService) List(ctx context.Context, req contract.ActivityListRequest) (*repository.ActivityPage, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid listing: %w", err)
	}
	page, err := s.activities.List(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return page, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting activity %q: %w", id, err)
	}
	return a, nil
}

func (s *catalogService) Remove(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-activity", map[string]any{"activity_id": id})(&err)
	if err = s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing activity %q: %w", id, err)
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
