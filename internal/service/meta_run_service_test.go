package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/engine"
	"github.com/alexanderramin/lessonplanner/internal/repository"
	"github.com/alexanderramin/lessonplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaService_FieldValues(t *testing.T) {
	fv := NewMetaService(engine.DefaultConfig()).FieldValues()

	assert.Equal(t, []string{"unplugged", "digital", "hybrid"}, fv.Format)
	assert.Contains(t, fv.ResourcesAvailable, "stationery")
	assert.Equal(t, "remember", fv.BloomLevel[0])
	assert.Equal(t, "create", fv.BloomLevel[len(fv.BloomLevel)-1])
	assert.Len(t, fv.Topics, 4)
	assert.Equal(t, []string{"low", "medium", "high"}, fv.MentalLoad)
	assert.Equal(t, engine.CategoryNames(), fv.PriorityCategories)
	assert.Equal(t, 6, fv.AgeMin)
	assert.Equal(t, 15, fv.AgeMax)
}

func TestMetaService_ScoringInsights(t *testing.T) {
	cfg := engine.DefaultConfig()
	si := NewMetaService(cfg).ScoringInsights()

	require.Len(t, si.Categories, len(engine.AllCategories))
	var sum float64
	for _, c := range si.Categories {
		assert.NotEmpty(t, c.Description)
		assert.Greater(t, c.BaseWeight, 0.0)
		sum += c.Weight
	}
	assert.InDelta(t, 1.0, sum, 0.001)
	assert.Equal(t, "bloom_level_match", si.Categories[2].Name)
	assert.Equal(t, cfg.PriorityMultiplier, si.PriorityMultiplier)
	assert.Equal(t, cfg.BeamWidth, si.BeamWidth)
}

func TestRunService_ResponseRoundTrip(t *testing.T) {
	f := newRecommendFixture(t, scenarioCatalog()...)
	ctx := context.Background()

	resp, err := f.svc.Recommend(ctx, contract.NewRecommendRequest(9, 45))
	require.NoError(t, err)

	runs := NewRunService(f.runs)
	list, err := runs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.RunID, list[0].ID)

	stored, err := runs.Response(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, resp.Total, stored.Total)
	assert.Equal(t, resp.SearchCriteria, stored.SearchCriteria)
	assert.True(t, resp.GeneratedAt.Equal(stored.GeneratedAt))

	_, err = runs.Get(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestRunService_ListEmpty(t *testing.T) {
	runs := NewRunService(repository.NewSQLiteRunRepo(testutil.NewTestDB(t)))
	list, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
