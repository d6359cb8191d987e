package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/cache"
)

// vanishingCourses hides some courses from lookups, as if deleted after ranking.
type vanishingCourses struct {
	CourseRepository
	gone map[uuid.UUID]bool
}

func (v vanishingCourses) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if v.gone[id] {
		return nil, repositories.ErrNotFound
	}
	return v.CourseRepository.GetByID(ctx, id)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]interface{}
	hits int
}

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	*(dest.(*[]models.OutstandingCourse)) = v.([]models.OutstandingCourse)
	return true, nil
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type rankedCatalog struct {
	env               *testEnv
	physics, chem     *models.SubCategory
	mech, optics, org *models.Course
}

// newRankedCatalog enrolls org 3 times, optics 2 times and mech 2 times,
// with optics enrolled before mech.
func newRankedCatalog(t *testing.T) rankedCatalog {
	env := newTestEnv(t)
	science := env.category(t, "Science")
	rc := rankedCatalog{env: env}
	rc.physics = env.subCategory(t, "Physics", science.ID)
	rc.chem = env.subCategory(t, "Chemistry", science.ID)
	rc.mech = env.course(t, "Mechanics", rc.physics.ID)
	rc.optics = env.course(t, "Optics", rc.physics.ID)
	rc.org = env.course(t, "Organic", rc.chem.ID)

	for _, c := range []*models.Course{rc.optics, rc.org, rc.mech, rc.org, rc.optics, rc.org, rc.mech} {
		env.enroll(t, c.ID)
	}
	return rc
}

func TestMostOutstandingCourses(t *testing.T) {
	rc := newRankedCatalog(t)
	window := models.ReportWindow{From: epoch}

	top, err := rc.env.reports.MostOutstandingCourses(context.Background(), 2, window)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, rc.org.ID, top[0].ID)
	assert.EqualValues(t, 3, top[0].Count)
	assert.Equal(t, rc.optics.ID, top[1].ID, "ties go to the earliest enrolled")
	assert.EqualValues(t, 2, top[1].Count)

	all, err := rc.env.reports.MostOutstandingCourses(context.Background(), 0, window)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Count, all[i].Count)
	}
}

func TestMostOutstandingCoursesWindow(t *testing.T) {
	rc := newRankedCatalog(t)
	future := time.Now().AddDate(100, 0, 0)

	top, err := rc.env.reports.MostOutstandingCourses(context.Background(), 10, models.ReportWindow{From: future})
	require.NoError(t, err)
	assert.Empty(t, top)

	to := epoch
	top, err = rc.env.reports.MostOutstandingCourses(context.Background(), 10, models.ReportWindow{From: epoch.AddDate(-1, 0, 0), To: &to})
	require.NoError(t, err)
	assert.Empty(t, top, "upper bound is exclusive and precedes every enrollment")
}

func TestMostOutstandingCoursesSkipsDeleted(t *testing.T) {
	rc := newRankedCatalog(t)
	repos := rc.env.repos
	reports := NewReportService(
		repos.ReportRepository,
		vanishingCourses{CourseRepository: repos.CourseRepository, gone: map[uuid.UUID]bool{rc.org.ID: true}},
		repos.SubCategoryRepository,
		nil,
		zerolog.Nop(),
	)

	top, err := reports.MostOutstandingCourses(context.Background(), 2, models.ReportWindow{From: epoch})
	require.NoError(t, err)
	require.Len(t, top, 1, "the deleted course leaves a gap rather than pulling in the next one")
	assert.Equal(t, rc.optics.ID, top[0].ID)
}

func TestMostOutstandingCoursesLimit(t *testing.T) {
	rc := newRankedCatalog(t)

	_, err := rc.env.reports.MostOutstandingCourses(context.Background(), MaxReportLimit+1, models.ReportWindow{From: epoch})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = rc.env.reports.MostOutstandingCourses(context.Background(), -1, models.ReportWindow{From: epoch})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMostSubscribedSubCategories(t *testing.T) {
	rc := newRankedCatalog(t)

	top, err := rc.env.reports.MostSubscribedSubCategories(context.Background(), 0, models.ReportWindow{From: epoch})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, rc.physics.ID, top[0].ID)
	assert.EqualValues(t, 4, top[0].Count)
	assert.Equal(t, "Science", top[0].CategoryName)
	assert.Equal(t, rc.chem.ID, top[1].ID)
	assert.EqualValues(t, 3, top[1].Count)
}

func TestReportCache(t *testing.T) {
	rc := newRankedCatalog(t)
	repos := rc.env.repos
	c := &mapCache{data: map[string]interface{}{}}
	reports := NewReportService(repos.ReportRepository, repos.CourseRepository, repos.SubCategoryRepository, c, zerolog.Nop())
	window := models.ReportWindow{From: epoch}

	first, err := reports.MostOutstandingCourses(context.Background(), 3, window)
	require.NoError(t, err)
	assert.Contains(t, c.data, cache.ReportKey("courses", 3, window))

	rc.env.enroll(t, rc.mech.ID)
	second, err := reports.MostOutstandingCourses(context.Background(), 3, window)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, first, second, "cached result is served until it expires")
}
