package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// tickClock returns a clock advancing one minute per call.
func tickClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

type fixture struct {
	repos *Repositories
	cat   *models.Category
	sub   *models.SubCategory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := NewRepositories(NewStore(WithClock(tickClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))))

	cat := &models.Category{Name: "Science"}
	require.NoError(t, repos.CategoryRepository.Create(ctx, cat))
	sub := &models.SubCategory{Name: "Physics", CategoryID: cat.ID}
	require.NoError(t, repos.SubCategoryRepository.Create(ctx, sub))
	return fixture{repos: repos, cat: cat, sub: sub}
}

func (f fixture) course(t *testing.T, name string, subID uuid.UUID) *models.Course {
	t.Helper()
	c := &models.Course{Name: name, TeacherID: uuid.New(), SubCategoryID: subID, Image: "https://img/x.png"}
	require.NoError(t, f.repos.CourseRepository.Create(context.Background(), c))
	return c
}

func TestCategoryNameUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repos.CategoryRepository.Create(ctx, &models.Category{Name: "Science"})
	assert.ErrorIs(t, err, repositories.ErrNameTaken)

	taken, err := f.repos.CategoryRepository.NameTaken(ctx, "Science", f.cat.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own name is not taken")
}

func TestCategoryDeleteRestricted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.repos.CategoryRepository.Delete(ctx, f.cat.ID), repositories.ErrHasSubCategories)

	require.NoError(t, f.repos.SubCategoryRepository.Delete(ctx, f.sub.ID))
	require.NoError(t, f.repos.CategoryRepository.Delete(ctx, f.cat.ID))
	assert.ErrorIs(t, f.repos.CategoryRepository.Delete(ctx, f.cat.ID), repositories.ErrNotFound)
}

func TestSubCategoryJoinsCategoryName(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Science", f.sub.CategoryName)

	err := f.repos.SubCategoryRepository.Create(context.Background(),
		&models.SubCategory{Name: "Orphan", CategoryID: uuid.New()})
	assert.ErrorIs(t, err, repositories.ErrParentNotFound)
}

func TestSubCategoryDeleteWithCourses(t *testing.T) {
	f := newFixture(t)
	f.course(t, "Mechanics", f.sub.ID)

	err := f.repos.SubCategoryRepository.Delete(context.Background(), f.sub.ID)
	assert.ErrorIs(t, err, repositories.ErrHasCourses)
}

func TestEnrollmentIncrementsSubscribersOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.course(t, "Mechanics", f.sub.ID)
	student := uuid.New()

	require.NoError(t, f.repos.MyCourseRepository.Create(ctx, &models.MyCourse{StudentID: student, CourseID: course.ID}))
	err := f.repos.MyCourseRepository.Create(ctx, &models.MyCourse{StudentID: student, CourseID: course.ID})
	assert.ErrorIs(t, err, repositories.ErrAlreadyEnrolled)

	sub, err := f.repos.SubCategoryRepository.GetByID(ctx, f.sub.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sub.SubscriberNumber)

	err = f.repos.MyCourseRepository.Create(ctx, &models.MyCourse{StudentID: student, CourseID: uuid.New()})
	assert.ErrorIs(t, err, repositories.ErrParentNotFound)
}

func TestCourseListFilterAndPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Optics", "Quantum Optics", "Mechanics"} {
		f.course(t, name, f.sub.ID)
	}

	items, total, err := f.repos.CourseRepository.List(ctx,
		models.CourseFilter{Name: "optics", SortBy: "name:asc"}, helpers.Page{Number: 1, Size: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Optics", items[0].Name)

	items, _, err = f.repos.CourseRepository.List(ctx,
		models.CourseFilter{Name: "optics", SortBy: "name:asc"}, helpers.Page{Number: 2, Size: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Quantum Optics", items[0].Name)
}

func TestCourseDeleteCascadesEnrollments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.course(t, "Mechanics", f.sub.ID)
	mc := &models.MyCourse{StudentID: uuid.New(), CourseID: course.ID}
	require.NoError(t, f.repos.MyCourseRepository.Create(ctx, mc))

	require.NoError(t, f.repos.CourseRepository.Delete(ctx, course.ID))
	_, err := f.repos.MyCourseRepository.GetByID(ctx, mc.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTopCoursesRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.course(t, "A", f.sub.ID)
	b := f.course(t, "B", f.sub.ID)
	c := f.course(t, "C", f.sub.ID)

	enroll := func(courseID uuid.UUID) {
		require.NoError(t, f.repos.MyCourseRepository.Create(ctx, &models.MyCourse{StudentID: uuid.New(), CourseID: courseID}))
	}
	// b is enrolled first, so it wins the tie with a.
	enroll(b.ID)
	enroll(a.ID)
	enroll(c.ID)
	enroll(c.ID)
	enroll(c.ID)
	enroll(a.ID)
	enroll(b.ID)

	window := models.ReportWindow{From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	top, err := f.repos.ReportRepository.TopCourses(ctx, 2, window)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, models.CourseCount{CourseID: c.ID, Count: 3}, top[0])
	assert.Equal(t, models.CourseCount{CourseID: b.ID, Count: 2}, top[1])

	late := models.ReportWindow{From: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	top, err = f.repos.ReportRepository.TopCourses(ctx, 10, late)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopSubCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := &models.SubCategory{Name: "Chemistry", CategoryID: f.cat.ID}
	require.NoError(t, f.repos.SubCategoryRepository.Create(ctx, other))

	physics := f.course(t, "Mechanics", f.sub.ID)
	chem1 := f.course(t, "Organic", other.ID)
	chem2 := f.course(t, "Inorganic", other.ID)
	for _, id := range []uuid.UUID{physics.ID, chem1.ID, chem2.ID} {
		require.NoError(t, f.repos.MyCourseRepository.Create(ctx, &models.MyCourse{StudentID: uuid.New(), CourseID: id}))
	}

	top, err := f.repos.ReportRepository.TopSubCategories(ctx, 5,
		models.ReportWindow{From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, other.ID, top[0].SubCategoryID)
	assert.EqualValues(t, 2, top[0].Count)
	assert.Equal(t, f.sub.ID, top[1].SubCategoryID)
}
