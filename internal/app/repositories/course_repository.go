package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "name", "description", "teacher_id", "sub_category_id", "image", "view_count", "created_at", "updated_at",
}

// CourseSortColumns maps accepted sortBy fields to columns
var CourseSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"viewCount": "view_count",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.SubCategoryID,
		&c.Image, &c.ViewCount, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// likeEscaper quotes LIKE wildcards using the default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func applyCourseFilter(builder squirrel.SelectBuilder, filter models.CourseFilter) squirrel.SelectBuilder {
	if name := strings.TrimSpace(filter.Name); name != "" {
		builder = builder.Where(squirrel.ILike{"name": containsPattern(name)})
	}
	if filter.SubCategoryID != uuid.Nil {
		builder = builder.Where(squirrel.Eq{"sub_category_id": filter.SubCategoryID})
	}
	if filter.TeacherID != uuid.Nil {
		builder = builder.Where(squirrel.Eq{"teacher_id": filter.TeacherID})
	}
	return builder
}

// Create inserts a course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt, course.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Name, course.Description, course.TeacherID, course.SubCategoryID,
			course.Image, course.ViewCount, now, now).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err, courseSubCategoryConstraint) {
			return ErrParentNotFound
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// GetDetailsByID retrieves a course with its sub-category, category and enrollment count
func (r *CourseRepository) GetDetailsByID(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error) {
	sql, args, err := r.sb.Select(
		"co.id", "co.name", "co.description", "co.teacher_id", "co.sub_category_id",
		"co.image", "co.view_count", "co.created_at", "co.updated_at",
		"s.name", "c.id", "c.name",
		"(SELECT COUNT(*) FROM my_courses m WHERE m.course_id = co.id)",
	).
		From("courses co").
		Join("sub_categories s ON s.id = co.sub_category_id").
		Join("categories c ON c.id = s.category_id").
		Where(squirrel.Eq{"co.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course details query: %w", err)
	}

	d := &models.CourseDetails{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.Name, &d.Description, &d.TeacherID, &d.SubCategoryID,
		&d.Image, &d.ViewCount, &d.CreatedAt, &d.UpdatedAt,
		&d.SubCategoryName, &d.CategoryID, &d.CategoryName, &d.EnrollmentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course details row")
		return nil, fmt.Errorf("error getting course details: %w", err)
	}
	return d, nil
}

// List returns one page of courses matching filter together with the total match count
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter, page helpers.Page) ([]*models.Course, int64, error) {
	countSQL, countArgs, err := applyCourseFilter(r.sb.Select("COUNT(*)").From("courses"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	column, order := helpers.ParseSortBy(filter.SortBy, CourseSortColumns, "created_at")

	builder := applyCourseFilter(r.sb.Select(courseColumns...).From("courses"), filter).
		OrderBy(column+" "+order, "id ASC").
		Limit(page.Limit()).
		Offset(page.Offset())

	courses, err := r.query(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// GetAll returns every course, newest first
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.query(ctx, r.sb.Select(courseColumns...).From("courses").OrderBy("created_at DESC", "id ASC"))
}

func (r *CourseRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Update saves the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()

	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":            course.Name,
			"description":     course.Description,
			"teacher_id":      course.TeacherID,
			"sub_category_id": course.SubCategoryID,
			"image":           course.Image,
			"updated_at":      course.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, courseSubCategoryConstraint) {
			return ErrParentNotFound
		}
		logger.Error().Err(err).Str("courseID", course.ID.String()).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course; its enrollments cascade
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews adds one to the view counter
func (r *CourseRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("courses").
		Set("view_count", squirrel.Expr("view_count + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build increment views query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
