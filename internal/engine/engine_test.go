package engine

import (
	"testing"

	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prep and cleanup count towards the envelope, so with 5+5 minutes of
// overhead the 30-minute activity spans 40 minutes and fits 45 best.
func TestRecommend_OverheadMakesShortActivityTheClosestFit(t *testing.T) {
	overhead := testutil.WithOverhead(5, 5)
	short := testutil.NewTestActivity("short", testutil.WithID("short"), testutil.WithAges(6, 10), testutil.WithDuration(30, 0), overhead)
	medium := testutil.NewTestActivity("medium", testutil.WithID("medium"), testutil.WithAges(8, 12), testutil.WithDuration(45, 0), overhead)
	long := testutil.NewTestActivity("long", testutil.WithID("long"), testutil.WithAges(12, 15), testutil.WithDuration(60, 0), overhead)
	catalog := []domain.Activity{short, medium, long}

	criteria := domain.SearchCriteria{TargetAge: 9, TargetDuration: 45, MaxActivityCount: 1, AllowLessonPlans: true}
	e := New(DefaultConfig())

	res, err := e.Recommend(catalog, criteria)
	require.NoError(t, err)

	require.NotEmpty(t, res.Plans)
	assert.Equal(t, []string{"short"}, res.Plans[0].IDs())
	assert.Equal(t, 2, res.Filtered, "ages 12-15 fall outside 9±2")
	for _, p := range res.Plans {
		assert.NotEqual(t, []string{"long"}, p.IDs())
	}

	shortScore := e.ScoreActivity(short, criteria)
	mediumScore := e.ScoreActivity(medium, criteria)
	shortAge, _ := shortScore.Breakdown.Get(CategoryAgeAppropriateness)
	mediumAge, _ := mediumScore.Breakdown.Get(CategoryAgeAppropriateness)
	shortFit, _ := shortScore.Breakdown.Get(CategoryDurationFit)
	mediumFit, _ := mediumScore.Breakdown.Get(CategoryDurationFit)
	assert.Equal(t, shortAge.Score, mediumAge.Score)
	assert.Greater(t, shortFit.Score, mediumFit.Score)
}

func TestRecommend_WithoutOverheadExactDurationWins(t *testing.T) {
	short := testutil.NewTestActivity("short", testutil.WithID("short"), testutil.WithAges(6, 10), testutil.WithDuration(30, 0))
	medium := testutil.NewTestActivity("medium", testutil.WithID("medium"), testutil.WithAges(8, 12), testutil.WithDuration(45, 0))
	long := testutil.NewTestActivity("long", testutil.WithID("long"), testutil.WithAges(12, 15), testutil.WithDuration(60, 0))

	criteria := domain.SearchCriteria{TargetAge: 9, TargetDuration: 45, MaxActivityCount: 1, AllowLessonPlans: true}
	res, err := New(DefaultConfig()).Recommend([]domain.Activity{short, medium, long}, criteria)
	require.NoError(t, err)

	require.NotEmpty(t, res.Plans)
	assert.Equal(t, []string{"medium"}, res.Plans[0].IDs())
	assert.Equal(t, 2, res.Filtered)
}

func TestRecommend_BreakAfterHighMentalLoad(t *testing.T) {
	load := testutil.WithLoad(domain.EnergyHigh, domain.EnergyLow)
	a := testutil.NewTestActivity("a", testutil.WithID("a"), testutil.WithDuration(20, 0), load)
	b := testutil.NewTestActivity("b", testutil.WithID("b"), testutil.WithDuration(20, 0), load)

	res, err := New(DefaultConfig()).Recommend([]domain.Activity{a, b}, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   45,
		AllowLessonPlans: true,
		MaxActivityCount: 2,
		IncludeBreaks:    true,
	})
	require.NoError(t, err)

	require.Len(t, res.Plans, 1)
	plan := res.Plans[0]
	require.Len(t, plan.Activities, 2)
	brk := plan.Activities[0].BreakAfter
	require.NotNil(t, brk)
	require.NotEmpty(t, brk.Reasons)
	assert.Contains(t, brk.Reasons[0], "mental load")
	assert.Nil(t, plan.Activities[1].BreakAfter)
	assert.Equal(t, 5, plan.BreakMinutes)
	assert.Equal(t, 45, plan.TotalMinutes)
}

func TestRecommend_NoBreaksUnlessRequested(t *testing.T) {
	load := testutil.WithLoad(domain.EnergyHigh, domain.EnergyLow)
	a := testutil.NewTestActivity("a", testutil.WithID("a"), testutil.WithDuration(20, 0), load)
	b := testutil.NewTestActivity("b", testutil.WithID("b"), testutil.WithDuration(20, 0), load)

	res, err := New(DefaultConfig()).Recommend([]domain.Activity{a, b}, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   40,
		AllowLessonPlans: true,
		MaxActivityCount: 2,
	})
	require.NoError(t, err)

	require.Len(t, res.Plans, 1)
	for _, pa := range res.Plans[0].Activities {
		assert.Nil(t, pa.BreakAfter)
	}
	assert.Equal(t, 0, res.Plans[0].BreakMinutes)
}

func TestRecommend_NoMatchingFormatIsEmpty(t *testing.T) {
	catalog := []domain.Activity{
		testutil.NewTestActivity("a"),
		testutil.NewTestActivity("b"),
	}

	res, err := New(DefaultConfig()).Recommend(catalog, domain.SearchCriteria{
		TargetAge:      9,
		TargetDuration: 30,
		Formats:        []domain.ActivityFormat{domain.FormatDigital},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Plans)
	assert.NotNil(t, res.Plans)
	assert.Equal(t, 2, res.Considered)
	assert.Equal(t, 0, res.Filtered)
}

func TestRecommend_PriorityCategoryFlagged(t *testing.T) {
	catalog := []domain.Activity{
		testutil.NewTestActivity("a", testutil.WithTopics(domain.TopicAlgorithms)),
	}

	res, err := New(DefaultConfig()).Recommend(catalog, domain.SearchCriteria{
		TargetAge:          9,
		TargetDuration:     30,
		Topics:             []domain.Topic{domain.TopicAlgorithms},
		PriorityCategories: []string{"topic_relevance"},
	})
	require.NoError(t, err)
	require.Len(t, res.Plans, 1)

	topic, ok := res.Plans[0].Breakdown.Get(CategoryTopicRelevance)
	require.True(t, ok)
	bloom, _ := res.Plans[0].Breakdown.Get(CategoryBloomLevelMatch)
	age, _ := res.Plans[0].Breakdown.Get(CategoryAgeAppropriateness)
	assert.True(t, topic.IsPriority)
	assert.Greater(t, topic.PriorityMultiplier, 1.0)
	assert.False(t, age.IsPriority)
	assert.Greater(t, topic.Impact, age.Impact)
	assert.False(t, bloom.IsPriority)
}

func TestRecommend_TieBreakByID(t *testing.T) {
	catalog := []domain.Activity{
		testutil.NewTestActivity("second", testutil.WithID("b")),
		testutil.NewTestActivity("first", testutil.WithID("a")),
	}

	res, err := New(DefaultConfig()).Recommend(catalog, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   30,
		AllowLessonPlans: true,
		MaxActivityCount: 1,
	})
	require.NoError(t, err)

	require.Len(t, res.Plans, 2)
	assert.Equal(t, res.Plans[0].Score, res.Plans[1].Score)
	assert.Equal(t, []string{"a"}, res.Plans[0].IDs())
	assert.Equal(t, []string{"b"}, res.Plans[1].IDs())
}

func TestRecommend_DiversitySkipsOverlappingPlans(t *testing.T) {
	var catalog []domain.Activity
	for _, id := range []string{"d", "c", "b", "a"} {
		catalog = append(catalog, testutil.NewTestActivity(id, testutil.WithID(id), testutil.WithDuration(15, 0)))
	}

	res, err := New(DefaultConfig()).Recommend(catalog, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   30,
		AllowLessonPlans: true,
		MaxActivityCount: 2,
		Limit:            5,
	})
	require.NoError(t, err)

	require.Len(t, res.Plans, 2)
	assert.Equal(t, []string{"a", "b"}, res.Plans[0].IDs())
	assert.Equal(t, []string{"c", "d"}, res.Plans[1].IDs())
	assert.Equal(t, 6, res.Candidates)
}

func TestRecommend_LessonPlansDisabled(t *testing.T) {
	catalog := []domain.Activity{
		testutil.NewTestActivity("a", testutil.WithDuration(15, 0)),
		testutil.NewTestActivity("b", testutil.WithDuration(15, 0)),
		testutil.NewTestActivity("c", testutil.WithDuration(25, 0)),
	}

	res, err := New(DefaultConfig()).Recommend(catalog, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   30,
		AllowLessonPlans: false,
		MaxActivityCount: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Criteria.MaxActivityCount)
	require.Len(t, res.Plans, 1)
	assert.Len(t, res.Plans[0].Activities, 1)
	assert.Equal(t, 25, res.Plans[0].TotalMinutes)
}

func TestRecommend_AllocatesTowardsTarget(t *testing.T) {
	a := testutil.NewTestActivity("a", testutil.WithID("a"), testutil.WithDuration(20, 40))
	b := testutil.NewTestActivity("b", testutil.WithID("b"), testutil.WithDuration(20, 40))

	res, err := New(DefaultConfig()).Recommend([]domain.Activity{a, b}, domain.SearchCriteria{
		TargetAge:        9,
		TargetDuration:   60,
		AllowLessonPlans: true,
		MaxActivityCount: 2,
	})
	require.NoError(t, err)

	require.NotEmpty(t, res.Plans)
	plan := res.Plans[0]
	assert.Equal(t, 60, plan.TotalMinutes)
	assert.Equal(t, 40, plan.Activities[0].AllocatedMinutes)
	assert.Equal(t, 20, plan.Activities[1].AllocatedMinutes)
}

func TestRecommend_FaultsDoNotAbort(t *testing.T) {
	good := testutil.NewTestActivity("good", testutil.WithID("good"))
	bad := testutil.NewTestActivity("bad", testutil.WithID("bad"), testutil.WithBloom("memorize"))
	dupe := testutil.NewTestActivity("dupe", testutil.WithID("good"))

	res, err := New(DefaultConfig()).Recommend([]domain.Activity{good, bad, dupe}, domain.SearchCriteria{
		TargetAge:      9,
		TargetDuration: 30,
	})
	require.NoError(t, err)

	assert.Len(t, res.Faults, 2)
	require.Len(t, res.Plans, 1)
	assert.Equal(t, "good", res.Plans[0].Activities[0].Activity.Name)
}

func TestRecommend_InvalidCriteria(t *testing.T) {
	e := New(DefaultConfig())

	_, err := e.Recommend(nil, domain.SearchCriteria{TargetAge: 5, TargetDuration: 30})
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	_, err = e.Recommend(nil, domain.SearchCriteria{TargetAge: 9, TargetDuration: 0})
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	res, err := e.Recommend(nil, domain.SearchCriteria{TargetAge: 9, TargetDuration: 30})
	require.NoError(t, err)
	assert.Empty(t, res.Plans)
}

func TestNew_SanitizesConfig(t *testing.T) {
	e := New(Config{})
	cfg := e.Config()

	d := DefaultConfig()
	assert.Equal(t, d.BeamWidth, cfg.BeamWidth)
	assert.Equal(t, d.DiversityThreshold, cfg.DiversityThreshold)
	assert.Equal(t, 1.0, cfg.PriorityMultiplier)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 0, cfg.AgeFilterTolerance)
}
