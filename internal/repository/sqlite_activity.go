package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/db"
	"github.com/alexanderramin/lessonplanner/internal/domain"
)

const activityColumns = `id, name, description, source, age_min, age_max, format, bloom_level,
	duration_min_minutes, duration_max_minutes, topics, resources_needed,
	mental_load, physical_energy, prep_time_minutes, cleanup_time_minutes,
	created_at, updated_at`

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo. conn may be a
// *sql.DB or a transaction.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

// Upsert inserts a or replaces the stored activity with the same id. The
// original created_at is kept on replace.
func (r *SQLiteActivityRepo) Upsert(ctx context.Context, a *domain.Activity) error {
	topics, err := encodeList(a.Topics)
	if err != nil {
		return fmt.Errorf("encoding topics: %w", err)
	}
	resources, err := encodeList(a.ResourcesNeeded)
	if err != nil {
		return fmt.Errorf("encoding resources: %w", err)
	}

	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			source = excluded.source,
			age_min = excluded.age_min,
			age_max = excluded.age_max,
			format = excluded.format,
			bloom_level = excluded.bloom_level,
			duration_min_minutes = excluded.duration_min_minutes,
			duration_max_minutes = excluded.duration_max_minutes,
			topics = excluded.topics,
			resources_needed = excluded.resources_needed,
			mental_load = excluded.mental_load,
			physical_energy = excluded.physical_energy,
			prep_time_minutes = excluded.prep_time_minutes,
			cleanup_time_minutes = excluded.cleanup_time_minutes,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Description,
		a.Source,
		a.AgeMin,
		a.AgeMax,
		string(a.Format),
		string(a.BloomLevel),
		a.DurationMinMinutes,
		nullableIntToValue(a.DurationMaxMinutes),
		topics,
		resources,
		string(a.MentalLoad),
		string(a.PhysicalEnergy),
		nullableIntToValue(a.PrepTimeMinutes),
		nullableIntToValue(a.CleanupTimeMinutes),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// GetAll returns the whole catalog ordered by id. Rows that fail to decode
// are skipped and returned as faults.
func (r *SQLiteActivityRepo) GetAll(ctx context.Context) ([]domain.Activity, []RowFault, error) {
	return r.query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY id`)
}

// List returns the activities matching q ordered by id, paged by q.Offset
// and q.Limit. Total counts every match before paging.
func (r *SQLiteActivityRepo) List(ctx context.Context, q domain.ActivityQuery) (*ActivityPage, error) {
	var (
		where []string
		args  []any
	)
	if q.Name != "" {
		where = append(where, "instr(lower(name), lower(?)) > 0")
		args = append(args, q.Name)
	}
	if q.AgeMin != nil {
		where = append(where, "age_min >= ?")
		args = append(args, *q.AgeMin)
	}
	if q.AgeMax != nil {
		where = append(where, "age_max <= ?")
		args = append(args, *q.AgeMax)
	}
	if len(q.Formats) > 0 {
		where = append(where, "format IN ("+placeholders(len(q.Formats))+")")
		args = appendStrings(args, q.Formats)
	}
	if len(q.BloomLevels) > 0 {
		where = append(where, "bloom_level IN ("+placeholders(len(q.BloomLevels))+")")
		args = appendStrings(args, q.BloomLevels)
	}

	query := `SELECT ` + activityColumns + ` FROM activities`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	acts, skipped, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	// topics and resources are JSON lists, matched after decoding
	matches := acts[:0]
	for i := range acts {
		if q.Matches(&acts[i]) {
			matches = append(matches, acts[i])
		}
	}
	return &ActivityPage{
		Activities: q.Page(matches),
		Total:      len(matches),
		Skipped:    skipped,
	}, nil
}

func (r *SQLiteActivityRepo) query(ctx context.Context, query string, args ...any) ([]domain.Activity, []RowFault, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var (
		out     []domain.Activity
		skipped []RowFault
	)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			var fault *RowFault
			if errors.As(err, &fault) {
				skipped = append(skipped, *fault)
				continue
			}
			return nil, nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, skipped, nil
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteActivityRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var (
		a                       domain.Activity
		format, bloom           string
		mental, physical        string
		topics, resources       string
		durMax, prep, cleanup   sql.NullInt64
		createdAtStr, updatedAt string
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Source, &a.AgeMin, &a.AgeMax, &format, &bloom,
		&a.DurationMinMinutes, &durMax, &topics, &resources,
		&mental, &physical, &prep, &cleanup,
		&createdAtStr, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}

	a.Format = domain.ActivityFormat(format)
	a.BloomLevel = domain.BloomLevel(bloom)
	a.MentalLoad = domain.EnergyLevel(mental)
	a.PhysicalEnergy = domain.EnergyLevel(physical)
	a.DurationMaxMinutes = parseNullableInt(durMax)
	a.PrepTimeMinutes = parseNullableInt(prep)
	a.CleanupTimeMinutes = parseNullableInt(cleanup)

	if a.Topics, err = decodeList[domain.Topic](topics); err != nil {
		return nil, &RowFault{ID: a.ID, Err: fmt.Errorf("topics: %w", err)}
	}
	if a.ResourcesNeeded, err = decodeList[domain.Resource](resources); err != nil {
		return nil, &RowFault{ID: a.ID, Err: fmt.Errorf("resources: %w", err)}
	}
	if a.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, &RowFault{ID: a.ID, Err: err}
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, &RowFault{ID: a.ID, Err: err}
	}
	return &a, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func appendStrings[T ~string](args []any, vals []T) []any {
	for _, v := range vals {
		args = append(args, string(v))
	}
	return args
}
