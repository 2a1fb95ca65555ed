package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/db"
	"github.com/alexanderramin/lessonplanner/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.RecommendationRun) error {
	query := `INSERT INTO recommendation_runs (id, created_at, criteria, response, total)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		formatTime(run.CreatedAt),
		string(run.Criteria),
		string(run.Response),
		run.Total,
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.RecommendationRun, error) {
	query := `SELECT id, created_at, criteria, response, total FROM recommendation_runs WHERE id = ?`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recommendation run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// ListRecent returns up to limit runs, newest first.
func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.RecommendationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, created_at, criteria, response, total FROM recommendation_runs
		ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recommendation runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.RecommendationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recommendation runs: %w", err)
	}
	return runs, nil
}

func scanRun(row rowScanner) (*domain.RecommendationRun, error) {
	var run domain.RecommendationRun
	var createdAt, criteria, response string
	if err := row.Scan(&run.ID, &createdAt, &criteria, &response, &run.Total); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recommendation run: %w", err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("recommendation run %s: %w", run.ID, err)
	}
	run.CreatedAt = t
	run.Criteria = []byte(criteria)
	run.Response = []byte(response)
	return &run, nil
}
