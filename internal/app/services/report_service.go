package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/cache"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCourseReportLimit      = 10
	DefaultSubCategoryReportLimit = 5
	MaxReportLimit                = 100

	// lookupConcurrency bounds the parallel referent lookups of one report.
	lookupConcurrency = 8
)

// ReportService ranks courses and sub-categories by enrollments in a time window.
// Rankings are cached per (limit, window) until the cache TTL expires;
// new enrollments do not invalidate them, so results may lag by up to one TTL.
type ReportService interface {
	MostOutstandingCourses(ctx context.Context, limit int, window models.ReportWindow) ([]models.OutstandingCourse, error)
	MostSubscribedSubCategories(ctx context.Context, limit int, window models.ReportWindow) ([]models.SubscribedSubCategory, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	reportRepo      ReportRepository
	courseRepo      CourseRepository
	subCategoryRepo SubCategoryRepository
	cache           cache.ReportCache
	logger          zerolog.Logger
}

// NewReportService creates a new ReportService. A nil cache disables caching.
func NewReportService(
	reportRepo ReportRepository,
	courseRepo CourseRepository,
	subCategoryRepo SubCategoryRepository,
	reportCache cache.ReportCache,
	logger zerolog.Logger,
) ReportService {
	if reportCache == nil {
		reportCache = cache.Noop{}
	}
	return &reportServiceImpl{
		reportRepo:      reportRepo,
		courseRepo:      courseRepo,
		subCategoryRepo: subCategoryRepo,
		cache:           reportCache,
		logger:          logger,
	}
}

func resolveLimit(limit, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 1 || limit > MaxReportLimit {
		return 0, apperrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxReportLimit))
	}
	return limit, nil
}

func (s *reportServiceImpl) cached(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Report cache read failed")
		return false
	}
	return hit
}

func (s *reportServiceImpl) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Report cache write failed")
	}
}

// MostOutstandingCourses returns up to limit courses ranked by enrollments in
// window. Courses deleted since they were enrolled are left out.
func (s *reportServiceImpl) MostOutstandingCourses(ctx context.Context, limit int, window models.ReportWindow) ([]models.OutstandingCourse, error) {
	limit, err := resolveLimit(limit, DefaultCourseReportLimit)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey("courses", limit, window)
	var out []models.OutstandingCourse
	if s.cached(ctx, key, &out) {
		return out, nil
	}

	counts, err := s.reportRepo.TopCourses(ctx, limit, window)
	if err != nil {
		return nil, fmt.Errorf("error ranking courses: %w", err)
	}

	slots := make([]*models.OutstandingCourse, len(counts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, cc := range counts {
		i, cc := i, cc
		g.Go(func() error {
			course, err := s.courseRepo.GetByID(gctx, cc.CourseID)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error resolving course %s: %w", cc.CourseID, err)
			}
			slots[i] = &models.OutstandingCourse{Course: *course, Count: cc.Count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out = make([]models.OutstandingCourse, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}

	s.store(ctx, key, out)
	return out, nil
}

// MostSubscribedSubCategories returns up to limit sub-categories ranked by the
// enrollments of their courses in window.
func (s *reportServiceImpl) MostSubscribedSubCategories(ctx context.Context, limit int, window models.ReportWindow) ([]models.SubscribedSubCategory, error) {
	limit, err := resolveLimit(limit, DefaultSubCategoryReportLimit)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey("sub-categories", limit, window)
	var out []models.SubscribedSubCategory
	if s.cached(ctx, key, &out) {
		return out, nil
	}

	counts, err := s.reportRepo.TopSubCategories(ctx, limit, window)
	if err != nil {
		return nil, fmt.Errorf("error ranking sub categories: %w", err)
	}

	slots := make([]*models.SubscribedSubCategory, len(counts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, sc := range counts {
		i, sc := i, sc
		g.Go(func() error {
			sub, err := s.subCategoryRepo.GetByID(gctx, sc.SubCategoryID)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error resolving sub category %s: %w", sc.SubCategoryID, err)
			}
			slots[i] = &models.SubscribedSubCategory{SubCategory: *sub, Count: sc.Count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out = make([]models.SubscribedSubCategory, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}

	s.store(ctx, key, out)
	return out, nil
}
