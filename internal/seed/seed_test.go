package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())

	require.NoError(t, CreateDefaultData(ctx, repos.CategoryRepository, repos.SubCategoryRepository, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos.CategoryRepository, repos.SubCategoryRepository, zerolog.Nop()))

	categories, err := repos.CategoryRepository.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(DefaultCatalog))

	want := 0
	for _, entry := range DefaultCatalog {
		want += len(entry.SubCategories)
	}
	subCategories, err := repos.SubCategoryRepository.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subCategories, want)
}
