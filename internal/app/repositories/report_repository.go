package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// ReportRepository aggregates the enrollment log
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func windowPredicate(column string, window models.ReportWindow) squirrel.Sqlizer {
	pred := squirrel.And{squirrel.GtOrEq{column: window.From}}
	if window.To != nil {
		pred = append(pred, squirrel.Lt{column: *window.To})
	}
	return pred
}

func topCoursesQuery(sb squirrel.StatementBuilderType, limit int, window models.ReportWindow) squirrel.SelectBuilder {
	return sb.Select("m.course_id", "COUNT(*) AS enrollments").
		From("my_courses m").
		Where(windowPredicate("m.created_at", window)).
		GroupBy("m.course_id").
		OrderBy("enrollments DESC", "MIN(m.created_at) ASC", "m.course_id ASC").
		Limit(uint64(limit))
}

func topSubCategoriesQuery(sb squirrel.StatementBuilderType, limit int, window models.ReportWindow) squirrel.SelectBuilder {
	return sb.Select("co.sub_category_id", "COUNT(*) AS enrollments").
		From("my_courses m").
		Join("courses co ON co.id = m.course_id").
		Where(windowPredicate("m.created_at", window)).
		GroupBy("co.sub_category_id").
		OrderBy("enrollments DESC", "MIN(m.created_at) ASC", "co.sub_category_id ASC").
		Limit(uint64(limit))
}

// TopCourses groups enrollments in the window by course and returns the
// limit largest groups. Ties go to the group enrolled first, then to the lower id.
func (r *ReportRepository) TopCourses(ctx context.Context, limit int, window models.ReportWindow) ([]models.CourseCount, error) {
	sql, args, err := topCoursesQuery(r.sb, limit, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top courses query: %w", err)
	}

	counts := []models.CourseCount{}
	err = r.collect(ctx, sql, args, func(id uuid.UUID, n int64) {
		counts = append(counts, models.CourseCount{CourseID: id, Count: n})
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// TopSubCategories groups enrollments in the window by the sub-category of the
// enrolled course, with the same ordering rules as TopCourses.
func (r *ReportRepository) TopSubCategories(ctx context.Context, limit int, window models.ReportWindow) ([]models.SubCategoryCount, error) {
	sql, args, err := topSubCategoriesQuery(r.sb, limit, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top sub categories query: %w", err)
	}

	counts := []models.SubCategoryCount{}
	err = r.collect(ctx, sql, args, func(id uuid.UUID, n int64) {
		counts = append(counts, models.SubCategoryCount{SubCategoryID: id, Count: n})
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *ReportRepository) collect(ctx context.Context, sql string, args []interface{}, add func(uuid.UUID, int64)) error {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing report query")
		return fmt.Errorf("error querying report: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			n  int64
		)
		if err := rows.Scan(&id, &n); err != nil {
			return fmt.Errorf("error scanning report row: %w", err)
		}
		add(id, n)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating report rows: %w", err)
	}
	return nil
}
