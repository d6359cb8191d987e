package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// CourseRepository is the in-memory course table
type CourseRepository struct {
	store *Store
}

func (r *CourseRepository) Create(_ context.Context, course *models.Course) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[course.SubCategoryID]; !ok {
		return repositories.ErrParentNotFound
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := s.now()
	course.CreatedAt, course.UpdatedAt = now, now
	s.courses[course.ID] = *course
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *CourseRepository) GetDetailsByID(_ context.Context, id uuid.UUID) (*models.CourseDetails, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	d := &models.CourseDetails{Course: c}
	if sc, ok := s.subCategories[c.SubCategoryID]; ok {
		d.SubCategoryName = sc.Name
		d.CategoryID = sc.CategoryID
		if cat, ok := s.categories[sc.CategoryID]; ok {
			d.CategoryName = cat.Name
		}
	}
	for _, mc := range s.myCourses {
		if mc.CourseID == id {
			d.EnrollmentCount++
		}
	}
	return d, nil
}

func matchCourse(c models.Course, filter models.CourseFilter) bool {
	if name := strings.TrimSpace(filter.Name); name != "" &&
		!strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
		return false
	}
	if filter.SubCategoryID != uuid.Nil && c.SubCategoryID != filter.SubCategoryID {
		return false
	}
	if filter.TeacherID != uuid.Nil && c.TeacherID != filter.TeacherID {
		return false
	}
	return true
}

// lessCourse orders by the resolved sort column, then by id.
func lessCourse(a, b models.Course, column string, asc bool) bool {
	var cmp int
	switch column {
	case "name":
		cmp = strings.Compare(a.Name, b.Name)
	case "updated_at":
		cmp = a.UpdatedAt.Compare(b.UpdatedAt)
	case "view_count":
		switch {
		case a.ViewCount < b.ViewCount:
			cmp = -1
		case a.ViewCount > b.ViewCount:
			cmp = 1
		}
	default:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}
	if cmp == 0 {
		return a.ID.String() < b.ID.String()
	}
	if asc {
		return cmp < 0
	}
	return cmp > 0
}

func (r *CourseRepository) List(_ context.Context, filter models.CourseFilter, page helpers.Page) ([]*models.Course, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Course{}
	for _, c := range s.courses {
		if matchCourse(c, filter) {
			matched = append(matched, c)
		}
	}

	column, order := helpers.ParseSortBy(filter.SortBy, repositories.CourseSortColumns, "created_at")
	asc := order == "ASC"
	sort.Slice(matched, func(i, j int) bool { return lessCourse(matched[i], matched[j], column, asc) })

	start, end := helpers.CalculateSliceIndices(page.Number, int(page.Limit()), len(matched))
	out := make([]*models.Course, 0, end-start)
	for i := start; i < end; i++ {
		c := matched[i]
		out = append(out, &c)
	}
	return out, int64(len(matched)), nil
}

func (r *CourseRepository) GetAll(_ context.Context) ([]*models.Course, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return lessCourse(all[i], all[j], "created_at", false) })

	out := make([]*models.Course, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *CourseRepository) Update(_ context.Context, course *models.Course) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.courses[course.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := s.subCategories[course.SubCategoryID]; !ok {
		return repositories.ErrParentNotFound
	}
	current.Name = course.Name
	current.Description = course.Description
	current.TeacherID = course.TeacherID
	current.SubCategoryID = course.SubCategoryID
	current.Image = course.Image
	current.UpdatedAt = s.now()
	s.courses[course.ID] = current
	*course = current
	return nil
}

// Delete removes a course together with its enrollments
func (r *CourseRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.courses, id)
	for mid, mc := range s.myCourses {
		if mc.CourseID == id {
			delete(s.myCourses, mid)
		}
	}
	return nil
}

func (r *CourseRepository) IncrementViews(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.ViewCount++
	s.courses[id] = c
	return nil
}
