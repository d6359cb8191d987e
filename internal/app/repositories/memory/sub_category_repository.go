package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
)

// SubCategoryRepository is the in-memory sub-category table
type SubCategoryRepository struct {
	store *Store
}

func sortBySubscribers(subs []*models.SubCategory) {
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].SubscriberNumber != subs[j].SubscriberNumber {
			return subs[i].SubscriberNumber > subs[j].SubscriberNumber
		}
		return subs[i].Name < subs[j].Name
	})
}

func (r *SubCategoryRepository) nameTaken(name string, excludeID uuid.UUID) bool {
	for id, sc := range r.store.subCategories {
		if id != excludeID && sc.Name == name {
			return true
		}
	}
	return false
}

func (r *SubCategoryRepository) Create(_ context.Context, sc *models.SubCategory) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.nameTaken(sc.Name, uuid.Nil) {
		return repositories.ErrNameTaken
	}
	if _, ok := s.categories[sc.CategoryID]; !ok {
		return repositories.ErrParentNotFound
	}
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	now := s.now()
	sc.CreatedAt, sc.UpdatedAt = now, now
	sc.SubscriberNumber = 0
	sc.CategoryName = ""
	s.subCategories[sc.ID] = *sc
	*sc = *s.subCategoryView(*sc)
	return nil
}

func (r *SubCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.SubCategory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.subCategories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s.subCategoryView(sc), nil
}

func (r *SubCategoryRepository) list(match func(models.SubCategory) bool) []*models.SubCategory {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.SubCategory{}
	for _, sc := range s.subCategories {
		if match(sc) {
			out = append(out, s.subCategoryView(sc))
		}
	}
	sortBySubscribers(out)
	return out
}

func (r *SubCategoryRepository) GetAll(_ context.Context) ([]*models.SubCategory, error) {
	return r.list(func(models.SubCategory) bool { return true }), nil
}

func (r *SubCategoryRepository) GetByCategoryID(_ context.Context, categoryID uuid.UUID) ([]*models.SubCategory, error) {
	return r.list(func(sc models.SubCategory) bool { return sc.CategoryID == categoryID }), nil
}

func (r *SubCategoryRepository) ExistsByCategoryID(_ context.Context, categoryID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sc := range s.subCategories {
		if sc.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *SubCategoryRepository) NameTaken(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.nameTaken(name, excludeID), nil
}

func (r *SubCategoryRepository) Update(_ context.Context, sc *models.SubCategory) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.subCategories[sc.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.nameTaken(sc.Name, sc.ID) {
		return repositories.ErrNameTaken
	}
	if _, ok := s.categories[sc.CategoryID]; !ok {
		return repositories.ErrParentNotFound
	}
	current.Name = sc.Name
	current.CategoryID = sc.CategoryID
	current.UpdatedAt = s.now()
	s.subCategories[sc.ID] = current
	*sc = *s.subCategoryView(current)
	return nil
}

func (r *SubCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, c := range s.courses {
		if c.SubCategoryID == id {
			return repositories.ErrHasCourses
		}
	}
	delete(s.subCategories, id)
	return nil
}

func (r *SubCategoryRepository) IncrementSubscribers(_ context.Context, id uuid.UUID) (*models.SubCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.incrementSubscribers(id); err != nil {
		return nil, err
	}
	return s.subCategoryView(s.subCategories[id]), nil
}

func (r *SubCategoryRepository) IncrementSubscribersByCourseID(_ context.Context, courseID uuid.UUID) (*models.SubCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[courseID]
	if !ok {
		return nil, repositories.ErrParentNotFound
	}
	if err := s.incrementSubscribers(course.SubCategoryID); err != nil {
		return nil, err
	}
	return s.subCategoryView(s.subCategories[course.SubCategoryID]), nil
}

// incrementSubscribers bumps the counter. Callers hold the write lock.
func (s *Store) incrementSubscribers(id uuid.UUID) error {
	sc, ok := s.subCategories[id]
	if !ok {
		return repositories.ErrNotFound
	}
	sc.SubscriberNumber++
	sc.UpdatedAt = s.now()
	s.subCategories[id] = sc
	return nil
}
