package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// ActivityRepo is the activity catalog.
type ActivityRepo interface {
	Upsert(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	GetAll(ctx context.Context) ([]domain.Activity, []RowFault, error)
	List(ctx context.Context, q domain.ActivityQuery) (*ActivityPage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// RunRepo stores produced recommendation responses.
type RunRepo interface {
	Create(ctx context.Context, r *domain.RecommendationRun) error
	GetByID(ctx context.Context, id string) (*domain.RecommendationRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.RecommendationRun, error)
}

// RowFault is a stored activity row that could not be decoded.
type RowFault struct {
	ID  string
	Err error
}

func (f *RowFault) Error() string {
	return fmt.Sprintf("activity %s: %v", f.ID, f.Err)
}

func (f *RowFault) Unwrap() error { return f.Err }

// ActivityPage is one page of a filtered catalog listing.
type ActivityPage struct {
	Activities []domain.Activity
	Total      int
	Skipped    []RowFault
}
