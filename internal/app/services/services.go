package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// Storage contracts consumed by the services. Both the postgres and the
// in-memory repositories satisfy them.

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetAll(ctx context.Context) ([]*models.Category, error)
	GetAllWithSubCategories(ctx context.Context) ([]*models.Category, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubCategoryRepository interface {
	Create(ctx context.Context, sc *models.SubCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	GetAll(ctx context.Context) ([]*models.SubCategory, error)
	GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*models.SubCategory, error)
	ExistsByCategoryID(ctx context.Context, categoryID uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, sc *models.SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementSubscribers(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	IncrementSubscribersByCourseID(ctx context.Context, courseID uuid.UUID) (*models.SubCategory, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error)
	List(ctx context.Context, filter models.CourseFilter, page helpers.Page) ([]*models.Course, int64, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type MyCourseRepository interface {
	Create(ctx context.Context, mc *models.MyCourse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MyCourse, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*models.MyCourse, error)
	List(ctx context.Context, filter models.MyCourseFilter, page helpers.Page) ([]*models.MyCourse, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReportRepository interface {
	TopCourses(ctx context.Context, limit int, window models.ReportWindow) ([]models.CourseCount, error)
	TopSubCategories(ctx context.Context, limit int, window models.ReportWindow) ([]models.SubCategoryCount, error)
}

// mapNotFound turns a repository miss into a 404 carrying msg
func mapNotFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewResourceNotFoundError(msg)
	}
	return err
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(field + " must be a valid id")
	}
	return id, nil
}
