package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// MyCourseRepository is the in-memory enrollment log
type MyCourseRepository struct {
	store *Store
}

// Create enrolls once per (student, course) pair and bumps the sub-category counter under the same lock.
func (r *MyCourseRepository) Create(_ context.Context, mc *models.MyCourse) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[mc.CourseID]
	if !ok {
		return repositories.ErrParentNotFound
	}
	for _, existing := range s.myCourses {
		if existing.StudentID == mc.StudentID && existing.CourseID == mc.CourseID {
			return repositories.ErrAlreadyEnrolled
		}
	}
	if _, ok := s.subCategories[course.SubCategoryID]; !ok {
		return repositories.ErrNotFound
	}

	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}
	mc.CreatedAt = s.now()
	s.myCourses[mc.ID] = *mc
	return s.incrementSubscribers(course.SubCategoryID)
}

func (r *MyCourseRepository) GetByID(_ context.Context, id uuid.UUID) (*models.MyCourse, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	mc, ok := s.myCourses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &mc, nil
}

func (r *MyCourseRepository) filter(match func(models.MyCourse) bool, asc bool) []models.MyCourse {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.MyCourse{}
	for _, mc := range s.myCourses {
		if match(mc) {
			out = append(out, mc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].CreatedAt.Compare(out[j].CreatedAt); cmp != 0 {
			return (cmp < 0) == asc
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *MyCourseRepository) GetByStudentID(_ context.Context, studentID uuid.UUID) ([]*models.MyCourse, error) {
	items := r.filter(func(mc models.MyCourse) bool { return mc.StudentID == studentID }, false)
	out := make([]*models.MyCourse, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *MyCourseRepository) List(_ context.Context, filter models.MyCourseFilter, page helpers.Page) ([]*models.MyCourse, int64, error) {
	_, order := helpers.ParseSortBy(filter.SortBy, repositories.MyCourseSortColumns, "created_at")

	items := r.filter(func(mc models.MyCourse) bool {
		if filter.StudentID != uuid.Nil && mc.StudentID != filter.StudentID {
			return false
		}
		return filter.CourseID == uuid.Nil || mc.CourseID == filter.CourseID
	}, order == "ASC")

	start, end := helpers.CalculateSliceIndices(page.Number, int(page.Limit()), len(items))
	out := make([]*models.MyCourse, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, &items[i])
	}
	return out, int64(len(items)), nil
}

func (r *MyCourseRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.myCourses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.myCourses, id)
	return nil
}
