package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// CategoryService defines category operations
type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoriesDetails(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// categoryServiceImpl implements CategoryService
type categoryServiceImpl struct {
	categoryRepo    CategoryRepository
	subCategoryRepo SubCategoryRepository
	logger          zerolog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo CategoryRepository, subCategoryRepo SubCategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryServiceImpl{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		logger:          logger,
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError("name cannot be empty")
	}
	return name, nil
}

// CreateCategory creates a category with a unique name
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	taken, err := s.categoryRepo.NameTaken(ctx, name, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("error checking category name: %w", err)
	}
	if taken {
		return nil, apperrors.NewBadRequestError(apperrors.MsgNameTaken)
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrNameTaken) {
			return nil, apperrors.NewBadRequestError(apperrors.MsgNameTaken)
		}
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	s.logger.Info().Str("categoryID", category.ID.String()).Str("name", name).Msg("Category created")
	return category, nil
}

// GetCategoryByID retrieves a category
func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgCategoryNotFound)
	}
	return category, nil
}

// GetAllCategories retrieves every category
func (s *categoryServiceImpl) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	return categories, nil
}

// GetCategoriesDetails retrieves every category with its sub-categories
func (s *categoryServiceImpl) GetCategoriesDetails(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAllWithSubCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories details: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgCategoryNotFound)
	}

	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		taken, err := s.categoryRepo.NameTaken(ctx, name, id)
		if err != nil {
			return nil, fmt.Errorf("error checking category name: %w", err)
		}
		if taken {
			return nil, apperrors.NewBadRequestError(apperrors.MsgNameTaken)
		}
		category.Name = name
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNameTaken):
			return nil, apperrors.NewBadRequestError(apperrors.MsgNameTaken)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewResourceNotFoundError(apperrors.MsgCategoryNotFound)
		}
		return nil, fmt.Errorf("error updating category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category that no sub-category references
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return mapNotFound(err, apperrors.MsgCategoryNotFound)
	}

	hasChildren, err := s.subCategoryRepo.ExistsByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking sub categories: %w", err)
	}
	if hasChildren {
		return apperrors.NewBadRequestError(apperrors.MsgCategoryHasChildren)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHasSubCategories):
			return apperrors.NewBadRequestError(apperrors.MsgCategoryHasChildren)
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.NewResourceNotFoundError(apperrors.MsgCategoryNotFound)
		}
		return fmt.Errorf("error deleting category: %w", err)
	}

	s.logger.Info().Str("categoryID", id.String()).Msg("Category deleted")
	return nil
}
