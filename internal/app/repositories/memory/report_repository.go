package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// ReportRepository aggregates the in-memory enrollment log
type ReportRepository struct {
	store *Store
}

type group struct {
	id    uuid.UUID
	count int64
	first time.Time
}

// rank orders groups by count desc, earliest enrollment asc, id asc and keeps limit of them.
func rank(groups map[uuid.UUID]*group, limit int) []*group {
	out := make([]*group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.count != b.count {
			return a.count > b.count
		}
		if !a.first.Equal(b.first) {
			return a.first.Before(b.first)
		}
		return a.id.String() < b.id.String()
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *ReportRepository) groupBy(window models.ReportWindow, key func(models.MyCourse) (uuid.UUID, bool)) map[uuid.UUID]*group {
	groups := make(map[uuid.UUID]*group)
	for _, mc := range r.store.myCourses {
		if !window.Contains(mc.CreatedAt) {
			continue
		}
		id, ok := key(mc)
		if !ok {
			continue
		}
		g, seen := groups[id]
		if !seen {
			g = &group{id: id, first: mc.CreatedAt}
			groups[id] = g
		}
		g.count++
		if mc.CreatedAt.Before(g.first) {
			g.first = mc.CreatedAt
		}
	}
	return groups
}

func (r *ReportRepository) TopCourses(_ context.Context, limit int, window models.ReportWindow) ([]models.CourseCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	groups := r.groupBy(window, func(mc models.MyCourse) (uuid.UUID, bool) { return mc.CourseID, true })

	out := []models.CourseCount{}
	for _, g := range rank(groups, limit) {
		out = append(out, models.CourseCount{CourseID: g.id, Count: g.count})
	}
	return out, nil
}

// TopSubCategories skips enrollments whose course no longer exists, as the SQL inner join does.
func (r *ReportRepository) TopSubCategories(_ context.Context, limit int, window models.ReportWindow) ([]models.SubCategoryCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := r.groupBy(window, func(mc models.MyCourse) (uuid.UUID, bool) {
		c, ok := s.courses[mc.CourseID]
		return c.SubCategoryID, ok
	})

	out := []models.SubCategoryCount{}
	for _, g := range rank(groups, limit) {
		out = append(out, models.SubCategoryCount{SubCategoryID: g.id, Count: g.count})
	}
	return out, nil
}
