package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
)

// CategoryStore is the category storage the seeder writes through
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetAll(ctx context.Context) ([]*models.Category, error)
}

// SubCategoryStore is the sub-category storage the seeder writes through
type SubCategoryStore interface {
	Create(ctx context.Context, sc *models.SubCategory) error
}

// DefaultCatalog maps each default category to its sub-categories.
var DefaultCatalog = []struct {
	Category      string
	SubCategories []string
}{
	{Category: "Development", SubCategories: []string{"Web Development", "Mobile Development", "Programming Languages"}},
	{Category: "Business", SubCategories: []string{"Entrepreneurship", "Management"}},
	{Category: "Design", SubCategories: []string{"Graphic Design", "User Experience"}},
	{Category: "Mathematics", SubCategories: []string{"Algebra", "Statistics"}},
}

// CreateDefaultData creates the default categories and sub-categories if they
// don't exist. Rows that already exist are left alone; other failures are
// collected and returned together.
func CreateDefaultData(ctx context.Context, categories CategoryStore, subCategories SubCategoryStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default catalog data...")

	existing, err := existingCategories(ctx, categories)
	if err != nil {
		return err
	}

	var finalErr error
	created := 0
	for _, entry := range DefaultCatalog {
		categoryID, ok := existing[entry.Category]
		if !ok {
			category := &models.Category{Name: entry.Category}
			if err := categories.Create(ctx, category); err != nil {
				lgr.Error().Err(err).Str("category", entry.Category).Msg("Error creating default category")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			categoryID = category.ID
			created++
		}

		for _, name := range entry.SubCategories {
			sc := &models.SubCategory{Name: name, CategoryID: categoryID}
			err := subCategories.Create(ctx, sc)
			switch {
			case err == nil:
				created++
			case errors.Is(err, repositories.ErrNameTaken):
			default:
				lgr.Error().Err(err).Str("subCategory", name).Msg("Error creating default sub-category")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Int("created", created).Msg("Default catalog data checked")
	return finalErr
}

func existingCategories(ctx context.Context, categories CategoryStore) (map[string]uuid.UUID, error) {
	all, err := categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(all))
	for _, c := range all {
		byName[c.Name] = c.ID
	}
	return byName, nil
}
