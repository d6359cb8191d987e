package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// SubCategoryService defines sub-category operations
type SubCategoryService interface {
	CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest) (*models.SubCategory, error)
	GetSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	GetAllSubCategories(ctx context.Context) ([]*models.SubCategory, error)
	GetSubCategoriesByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*models.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id uuid.UUID, req dto.UpdateSubCategoryRequest) (*models.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id uuid.UUID) error
	IncreaseSubscribers(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	IncreaseSubscribersByCourse(ctx context.Context, courseID uuid.UUID) (*models.SubCategory, error)
}

// subCategoryServiceImpl implements SubCategoryService
type subCategoryServiceImpl struct {
	subCategoryRepo SubCategoryRepository
	categoryRepo    CategoryRepository
	logger          zerolog.Logger
}

// NewSubCategoryService creates a new SubCategoryService
func NewSubCategoryService(subCategoryRepo SubCategoryRepository, categoryRepo CategoryRepository, logger zerolog.Logger) SubCategoryService {
	return &subCategoryServiceImpl{
		subCategoryRepo: subCategoryRepo,
		categoryRepo:    categoryRepo,
		logger:          logger,
	}
}

func (s *subCategoryServiceImpl) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	taken, err := s.subCategoryRepo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("error checking sub category name: %w", err)
	}
	if taken {
		return apperrors.NewBadRequestError(apperrors.MsgNameTaken)
	}
	return nil
}

func (s *subCategoryServiceImpl) ensureCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	categoryID, err := parseID(raw, "categoryId")
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return uuid.Nil, apperrors.NewBadRequestError(apperrors.MsgCategoryIDNotFound)
		}
		return uuid.Nil, fmt.Errorf("error checking category: %w", err)
	}
	return categoryID, nil
}

func mapSubCategoryWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNameTaken):
		return apperrors.NewBadRequestError(apperrors.MsgNameTaken)
	case errors.Is(err, repositories.ErrParentNotFound):
		return apperrors.NewBadRequestError(apperrors.MsgCategoryIDNotFound)
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewResourceNotFoundError(apperrors.MsgSubCategoryNotFound)
	}
	return err
}

// CreateSubCategory creates a sub-category under an existing category
func (s *subCategoryServiceImpl) CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest) (*models.SubCategory, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	categoryID, err := s.ensureCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	sc := &models.SubCategory{Name: name, CategoryID: categoryID}
	if err := s.subCategoryRepo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("error creating sub category: %w", mapSubCategoryWriteError(err))
	}

	s.logger.Info().Str("subCategoryID", sc.ID.String()).Str("categoryID", categoryID.String()).Msg("Sub category created")
	return sc, nil
}

// GetSubCategoryByID retrieves a sub-category with its category name
func (s *subCategoryServiceImpl) GetSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	sc, err := s.subCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgSubCategoryNotFound)
	}
	return sc, nil
}

// GetAllSubCategories lists sub-categories, most subscribed first
func (s *subCategoryServiceImpl) GetAllSubCategories(ctx context.Context) ([]*models.SubCategory, error) {
	subs, err := s.subCategoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sub categories: %w", err)
	}
	return subs, nil
}

// GetSubCategoriesByCategoryID lists the sub-categories of one category
func (s *subCategoryServiceImpl) GetSubCategoriesByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*models.SubCategory, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, mapNotFound(err, apperrors.MsgCategoryNotFound)
	}
	subs, err := s.subCategoryRepo.GetByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sub categories: %w", err)
	}
	return subs, nil
}

// UpdateSubCategory applies a partial update. Keeping its own name is allowed.
func (s *subCategoryServiceImpl) UpdateSubCategory(ctx context.Context, id uuid.UUID, req dto.UpdateSubCategoryRequest) (*models.SubCategory, error) {
	sc, err := s.subCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgSubCategoryNotFound)
	}

	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		sc.Name = name
	}
	if req.CategoryID != nil {
		categoryID, err := s.ensureCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		sc.CategoryID = categoryID
	}

	if err := s.subCategoryRepo.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("error updating sub category: %w", mapSubCategoryWriteError(err))
	}
	return sc, nil
}

// DeleteSubCategory removes a sub-category no course points at
func (s *subCategoryServiceImpl) DeleteSubCategory(ctx context.Context, id uuid.UUID) error {
	err := s.subCategoryRepo.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info().Str("subCategoryID", id.String()).Msg("Sub category deleted")
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewResourceNotFoundError(apperrors.MsgSubCategoryNotFound)
	case errors.Is(err, repositories.ErrHasCourses):
		return apperrors.NewBadRequestError(apperrors.MsgSubCategoryInUse)
	}
	return fmt.Errorf("error deleting sub category: %w", err)
}

// IncreaseSubscribers adds one subscriber to a sub-category
func (s *subCategoryServiceImpl) IncreaseSubscribers(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	sc, err := s.subCategoryRepo.IncrementSubscribers(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgSubCategoryNotFound)
	}
	return sc, nil
}

// IncreaseSubscribersByCourse adds one subscriber to the sub-category of a course
func (s *subCategoryServiceImpl) IncreaseSubscribersByCourse(ctx context.Context, courseID uuid.UUID) (*models.SubCategory, error) {
	sc, err := s.subCategoryRepo.IncrementSubscribersByCourseID(ctx, courseID)
	switch {
	case err == nil:
		return sc, nil
	case errors.Is(err, repositories.ErrParentNotFound):
		return nil, apperrors.NewResourceNotFoundError(apperrors.MsgCourseNotFound)
	}
	return nil, mapNotFound(err, apperrors.MsgSubCategoryNotFound)
}
