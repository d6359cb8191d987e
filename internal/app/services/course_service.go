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
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/media"
)

// CourseService defines course operations
type CourseService interface {
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context, query dto.CourseListQuery, page helpers.Page) ([]*models.Course, int64, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ViewCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetCourseDetails(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo      CourseRepository
	subCategoryRepo SubCategoryRepository
	uploader        media.Uploader
	uploadPreset    string
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService. Images go through uploader with uploadPreset.
func NewCourseService(
	courseRepo CourseRepository,
	subCategoryRepo SubCategoryRepository,
	uploader media.Uploader,
	uploadPreset string,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:      courseRepo,
		subCategoryRepo: subCategoryRepo,
		uploader:        uploader,
		uploadPreset:    uploadPreset,
		logger:          logger,
	}
}

func (s *courseServiceImpl) ensureSubCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	subCategoryID, err := parseID(raw, "subCategoryId")
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.subCategoryRepo.GetByID(ctx, subCategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return uuid.Nil, apperrors.NewBadRequestError(apperrors.MsgSubCategoryIDMissing)
		}
		return uuid.Nil, fmt.Errorf("error checking sub category: %w", err)
	}
	return subCategoryID, nil
}

// uploadImage stores the image remotely; deadlines pass through unchanged so they surface as timeouts.
func (s *courseServiceImpl) uploadImage(ctx context.Context, image string) (string, error) {
	link, err := s.uploader.Upload(ctx, image, s.uploadPreset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		s.logger.Error().Err(err).Str("preset", s.uploadPreset).Msg("Course image upload failed")
		return "", apperrors.NewExternalServiceError("Image upload failed", err)
	}
	return link, nil
}

func mapCourseWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrParentNotFound):
		return apperrors.NewBadRequestError(apperrors.MsgSubCategoryIDMissing)
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewResourceNotFoundError(apperrors.MsgCourseNotFound)
	}
	return err
}

// CreateCourse validates references, uploads the image and inserts the course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	teacherID, err := parseID(req.TeacherID, "teacherId")
	if err != nil {
		return nil, err
	}
	subCategoryID, err := s.ensureSubCategory(ctx, req.SubCategoryID)
	if err != nil {
		return nil, err
	}

	image, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		TeacherID:     teacherID,
		SubCategoryID: subCategoryID,
		Image:         image,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", mapCourseWriteError(err))
	}

	s.logger.Info().Str("courseID", course.ID.String()).Str("subCategoryID", subCategoryID.String()).Msg("Course created")
	return course, nil
}

// ListCourses returns one filtered page of courses and the total match count
func (s *courseServiceImpl) ListCourses(ctx context.Context, query dto.CourseListQuery, page helpers.Page) ([]*models.Course, int64, error) {
	filter := models.CourseFilter{Name: query.Name, SortBy: query.SortBy}
	if query.SubCategoryID != "" {
		id, err := parseID(query.SubCategoryID, "subCategoryId")
		if err != nil {
			return nil, 0, err
		}
		filter.SubCategoryID = id
	}
	if query.TeacherID != "" {
		id, err := parseID(query.TeacherID, "teacherId")
		if err != nil {
			return nil, 0, err
		}
		filter.TeacherID = id
	}

	courses, total, err := s.courseRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, total, nil
}

// GetAllCourses returns every course
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course without side effects
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgCourseNotFound)
	}
	return course, nil
}

// ViewCourse retrieves a course and counts the view. A failed counter update
// is logged and does not fail the read.
func (s *courseServiceImpl) ViewCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.courseRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("courseID", id.String()).Msg("Failed to increment course views")
		return course, nil
	}
	course.ViewCount++
	return course, nil
}

// GetCourseDetails retrieves a course with its catalog placement and enrollment count
func (s *courseServiceImpl) GetCourseDetails(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error) {
	details, err := s.courseRepo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgCourseNotFound)
	}
	return details, nil
}

// UpdateCourse applies a partial update. The image is re-uploaded only when supplied.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgCourseNotFound)
	}

	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		course.Name = name
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.TeacherID != nil {
		teacherID, err := parseID(*req.TeacherID, "teacherId")
		if err != nil {
			return nil, err
		}
		course.TeacherID = teacherID
	}
	if req.SubCategoryID != nil {
		subCategoryID, err := s.ensureSubCategory(ctx, *req.SubCategoryID)
		if err != nil {
			return nil, err
		}
		course.SubCategoryID = subCategoryID
	}
	if req.Image != nil {
		image, err := s.uploadImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		course.Image = image
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", mapCourseWriteError(err))
	}
	return course, nil
}

// DeleteCourse removes a course and its enrollments
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, apperrors.MsgCourseNotFound)
	}
	s.logger.Info().Str("courseID", id.String()).Msg("Course deleted")
	return nil
}
