// Package memory keeps the catalog in process memory. It backs the "memory"
// database driver and doubles as the fake store in service and handler tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// Store holds every table behind one lock so cross-table rules
// (foreign keys, the enrollment counter) stay atomic.
type Store struct {
	mu sync.RWMutex

	categories    map[uuid.UUID]models.Category
	subCategories map[uuid.UUID]models.SubCategory
	courses       map[uuid.UUID]models.Course
	myCourses     map[uuid.UUID]models.MyCourse

	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now as the source of created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		categories:    make(map[uuid.UUID]models.Category),
		subCategories: make(map[uuid.UUID]models.SubCategory),
		courses:       make(map[uuid.UUID]models.Course),
		myCourses:     make(map[uuid.UUID]models.MyCourse),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories groups the repositories sharing one store
type Repositories struct {
	CategoryRepository    *CategoryRepository
	SubCategoryRepository *SubCategoryRepository
	CourseRepository      *CourseRepository
	MyCourseRepository    *MyCourseRepository
	ReportRepository      *ReportRepository
}

// NewRepositories creates all repositories over store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		CategoryRepository:    &CategoryRepository{store: store},
		SubCategoryRepository: &SubCategoryRepository{store: store},
		CourseRepository:      &CourseRepository{store: store},
		MyCourseRepository:    &MyCourseRepository{store: store},
		ReportRepository:      &ReportRepository{store: store},
	}
}

// subCategoryView returns a copy with the category name joined in. Callers hold the lock.
func (s *Store) subCategoryView(sc models.SubCategory) *models.SubCategory {
	if c, ok := s.categories[sc.CategoryID]; ok {
		sc.CategoryName = c.Name
	}
	return &sc
}
