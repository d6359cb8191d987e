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
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// MyCourseService defines enrollment operations
type MyCourseService interface {
	Enroll(ctx context.Context, req dto.CreateMyCourseRequest) (*models.MyCourse, error)
	ListMyCourses(ctx context.Context, query dto.MyCourseListQuery, page helpers.Page) ([]*models.MyCourse, int64, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*models.MyCourse, error)
	GetMyCourseByID(ctx context.Context, id uuid.UUID) (*models.MyCourse, error)
	DeleteMyCourse(ctx context.Context, id uuid.UUID) error
}

// myCourseServiceImpl implements MyCourseService
type myCourseServiceImpl struct {
	myCourseRepo MyCourseRepository
	courseRepo   CourseRepository
	logger       zerolog.Logger
}

// NewMyCourseService creates a new MyCourseService
func NewMyCourseService(myCourseRepo MyCourseRepository, courseRepo CourseRepository, logger zerolog.Logger) MyCourseService {
	return &myCourseServiceImpl{
		myCourseRepo: myCourseRepo,
		courseRepo:   courseRepo,
		logger:       logger,
	}
}

// Enroll records a student in a course once. The course's sub-category
// subscriber number grows by one in the same write.
func (s *myCourseServiceImpl) Enroll(ctx context.Context, req dto.CreateMyCourseRequest) (*models.MyCourse, error) {
	studentID, err := parseID(req.StudentID, "studentId")
	if err != nil {
		return nil, err
	}
	courseID, err := parseID(req.CourseID, "courseId")
	if err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, mapNotFound(err, apperrors.MsgCourseNotFound)
	}

	mc := &models.MyCourse{StudentID: studentID, CourseID: courseID}
	if err := s.myCourseRepo.Create(ctx, mc); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyEnrolled):
			return nil, apperrors.NewBadRequestError(apperrors.MsgAlreadyEnrolled)
		case errors.Is(err, repositories.ErrParentNotFound):
			return nil, apperrors.NewResourceNotFoundError(apperrors.MsgCourseNotFound)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewResourceNotFoundError(apperrors.MsgSubCategoryNotFound)
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	s.logger.Info().
		Str("myCourseID", mc.ID.String()).
		Str("studentID", studentID.String()).
		Str("courseID", courseID.String()).
		Msg("Student enrolled")
	return mc, nil
}

// ListMyCourses returns one filtered page of enrollments and the total match count
func (s *myCourseServiceImpl) ListMyCourses(ctx context.Context, query dto.MyCourseListQuery, page helpers.Page) ([]*models.MyCourse, int64, error) {
	filter := models.MyCourseFilter{SortBy: query.SortBy}
	if query.StudentID != "" {
		id, err := parseID(query.StudentID, "studentId")
		if err != nil {
			return nil, 0, err
		}
		filter.StudentID = id
	}
	if query.CourseID != "" {
		id, err := parseID(query.CourseID, "courseId")
		if err != nil {
			return nil, 0, err
		}
		filter.CourseID = id
	}

	items, total, err := s.myCourseRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing enrollments: %w", err)
	}
	return items, total, nil
}

// GetByStudentID returns every enrollment of a student
func (s *myCourseServiceImpl) GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*models.MyCourse, error) {
	items, err := s.myCourseRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student enrollments: %w", err)
	}
	return items, nil
}

// GetMyCourseByID retrieves an enrollment
func (s *myCourseServiceImpl) GetMyCourseByID(ctx context.Context, id uuid.UUID) (*models.MyCourse, error) {
	mc, err := s.myCourseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.MsgMyCourseNotFound)
	}
	return mc, nil
}

// DeleteMyCourse removes an enrollment. The subscriber number is a running
// total and is not decremented.
func (s *myCourseServiceImpl) DeleteMyCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.myCourseRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, apperrors.MsgMyCourseNotFound)
	}
	return nil
}
