package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
)

// CategoryRepository is the in-memory category table
type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) nameTaken(name string, excludeID uuid.UUID) bool {
	for id, c := range r.store.categories {
		if id != excludeID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) Create(_ context.Context, category *models.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.nameTaken(category.Name, uuid.Nil) {
		return repositories.ErrNameTaken
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := s.now()
	category.CreatedAt, category.UpdatedAt = now, now
	category.SubCategories = nil
	s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) GetAll(_ context.Context) ([]*models.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) GetAllWithSubCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[uuid.UUID][]*models.SubCategory)
	for _, sc := range s.subCategories {
		byCategory[sc.CategoryID] = append(byCategory[sc.CategoryID], s.subCategoryView(sc))
	}
	for _, c := range categories {
		subs := byCategory[c.ID]
		sortBySubscribers(subs)
		if subs == nil {
			subs = []*models.SubCategory{}
		}
		c.SubCategories = subs
	}
	return categories, nil
}

func (r *CategoryRepository) NameTaken(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.nameTaken(name, excludeID), nil
}

func (r *CategoryRepository) Update(_ context.Context, category *models.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.categories[category.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.nameTaken(category.Name, category.ID) {
		return repositories.ErrNameTaken
	}
	current.Name = category.Name
	current.UpdatedAt = s.now()
	s.categories[category.ID] = current
	*category = current
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, sc := range s.subCategories {
		if sc.CategoryID == id {
			return repositories.ErrHasSubCategories
		}
	}
	delete(s.categories, id)
	return nil
}
