package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/lessonplanner/internal/catalog"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/repository"
	"github.com/alexanderramin/lessonplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCatalogFile() *catalog.File {
	return &catalog.File{Activities: []catalog.ActivityImport{
		{ID: "a1", Name: "Binary Bracelets", Description: "Beads.", AgeMin: 8, AgeMax: 12,
			Format: "unplugged", BloomLevel: "apply", DurationMinMinutes: 30, Topics: []string{"patterns"}},
		{ID: "a2", Name: "Robot Directions", Description: "Arrows.", AgeMin: 6, AgeMax: 9,
			Format: "unplugged", BloomLevel: "understand", DurationMinMinutes: 20, Topics: []string{"algorithms"}},
		{Name: "Scratch Maze", Description: "Blocks.", AgeMin: 9, AgeMax: 13,
			Format: "digital", BloomLevel: "create", DurationMinMinutes: 40, ResourcesNeeded: []string{"computers"}},
	}}
}

func TestCatalogImport_CreatesThenUpdates(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	obs := &recordingObserver{}
	svc := NewCatalogService(repo, testutil.NewTestUoW(database), obs)
	ctx := context.Background()

	res, err := svc.Import(ctx, validCatalogFile())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, res.IDs, 3)
	assert.Equal(t, "a1", res.IDs[0])
	assert.Len(t, res.IDs[2], 36)

	f := validCatalogFile()
	f.Activities = f.Activities[:1]
	f.Activities[0].Name = "Binary Bracelets v2"
	res, err = svc.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	got, err := svc.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Binary Bracelets v2", got.Name)

	page, err := svc.List(ctx, contract.ActivityListRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Activities, 3)
	assert.Equal(t, 3, page.Total)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "import-catalog", obs.events[0].Name)
	assert.Equal(t, 3, obs.events[0].Fields["created"])
}

func TestCatalogImport_ValidationErrors(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	f := validCatalogFile()
	f.Activities[0].AgeMin = 3
	f.Activities[1].Topics = []string{"loops"}

	_, err := svc.Import(ctx, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed (2 errors)")
	assert.Contains(t, err.Error(), "activities[0].age_min")
	assert.Contains(t, err.Error(), "activities[1].topics[0]")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCatalogImport_RollbackOnStoreFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	ctx := context.Background()

	// one exec per upsert; fail the second so the first must roll back
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    errors.New("injected upsert failure"),
	}
	svc := NewCatalogService(repo, failUoW)

	_, err := svc.Import(ctx, validCatalogFile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")
	assert.Contains(t, err.Error(), "Robot Directions")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "nothing persisted after rollback")
}

func TestCatalogImportFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities": [{"id": "x", "name": "X", "description": "d",
		"age_min": 6, "age_max": 8, "format": "hybrid", "bloom_level": "remember", "duration_min_minutes": 15}]}`), 0o644))

	res, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, res.IDs)

	_, err = svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "loading catalog file")
}

func TestCatalogRemove(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.Import(ctx, validCatalogFile())
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "a1"))
	_, err = svc.Get(ctx, "a1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	err = svc.Remove(ctx, "a1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCatalogList_FiltersAndPages(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteActivityRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()
	_, err := svc.Import(ctx, validCatalogFile())
	require.NoError(t, err)

	page, err := svc.List(ctx, contract.ActivityListRequest{Format: []string{"unplugged"}, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Activities, 1)
	assert.Equal(t, "a2", page.Activities[0].ID)

	page, err = svc.List(ctx, contract.ActivityListRequest{Name: "maze", ResourcesNeeded: []string{"computers"}})
	require.NoError(t, err)
	require.Len(t, page.Activities, 1)
	assert.Equal(t, "Scratch Maze", page.Activities[0].Name)

	_, err = svc.List(ctx, contract.ActivityListRequest{Topics: []string{"robots"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topics")
}
