package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/db"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

var myCourseColumns = []string{"id", "student_id", "course_id", "created_at"}

// MyCourseSortColumns maps accepted sortBy fields to columns
var MyCourseSortColumns = map[string]string{
	"createdAt": "created_at",
}

// MyCourseRepository handles enrollment database operations
type MyCourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMyCourseRepository creates a new MyCourseRepository
func NewMyCourseRepository(db *pgxpool.Pool) *MyCourseRepository {
	return &MyCourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanMyCourse(row pgx.Row) (*models.MyCourse, error) {
	mc := &models.MyCourse{}
	err := row.Scan(&mc.ID, &mc.StudentID, &mc.CourseID, &mc.CreatedAt)
	return mc, err
}

// Create enrolls a student in a course and bumps the subscriber number of the
// course's sub-category. Both writes share one transaction; a duplicate pair
// inserts nothing and returns ErrAlreadyEnrolled.
func (r *MyCourseRepository) Create(ctx context.Context, mc *models.MyCourse) error {
	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}
	mc.CreatedAt = time.Now().UTC()

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := insertMyCourseQuery(r.sb, mc).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create my course query: %w", err)
		}

		var insertedID uuid.UUID
		if err := tx.QueryRow(ctx, sql, args...).Scan(&insertedID); err != nil {
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				return ErrAlreadyEnrolled
			case dberrors.IsForeignKeyViolation(err, "my_courses_course_id_fkey"):
				return ErrParentNotFound
			}
			logger.Error().Err(err).Msg("Error executing create my course query")
			return fmt.Errorf("error creating my course: %w", err)
		}

		where, err := courseSubCategoryMatch(mc.CourseID)
		if err != nil {
			return fmt.Errorf("failed to build course sub category query: %w", err)
		}
		return incrementSubscribers(ctx, tx, r.sb, where)
	})
}

// insertMyCourseQuery returns no row when the student is already enrolled.
func insertMyCourseQuery(sb squirrel.StatementBuilderType, mc *models.MyCourse) squirrel.InsertBuilder {
	return sb.Insert("my_courses").
		Columns(myCourseColumns...).
		Values(mc.ID, mc.StudentID, mc.CourseID, mc.CreatedAt).
		Suffix("ON CONFLICT ON CONSTRAINT my_courses_student_course_key DO NOTHING RETURNING id")
}

// courseSubCategoryMatch matches the sub-category row owning courseID.
func courseSubCategoryMatch(courseID uuid.UUID) (squirrel.Sqlizer, error) {
	// Question placeholders; the outer builder renumbers them.
	subSQL, subArgs, err := squirrel.Select("sub_category_id").
		From("courses").
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return squirrel.Expr("id = ("+subSQL+")", subArgs...), nil
}

// GetByID retrieves an enrollment by ID
func (r *MyCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MyCourse, error) {
	sql, args, err := r.sb.Select(myCourseColumns...).
		From("my_courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get my course query: %w", err)
	}

	mc, err := scanMyCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("myCourseID", id.String()).Msg("Error scanning my course row")
		return nil, fmt.Errorf("error getting my course by ID: %w", err)
	}
	return mc, nil
}

// GetByStudentID returns a student's enrollments, newest first
func (r *MyCourseRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*models.MyCourse, error) {
	return r.query(ctx, r.sb.Select(myCourseColumns...).
		From("my_courses").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id ASC"))
}

// List returns one page of enrollments matching filter and the total match count
func (r *MyCourseRepository) List(ctx context.Context, filter models.MyCourseFilter, page helpers.Page) ([]*models.MyCourse, int64, error) {
	where := squirrel.And{}
	if filter.StudentID != uuid.Nil {
		where = append(where, squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.CourseID != uuid.Nil {
		where = append(where, squirrel.Eq{"course_id": filter.CourseID})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("my_courses").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count my courses query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting my courses")
		return nil, 0, fmt.Errorf("error counting my courses: %w", err)
	}

	column, order := helpers.ParseSortBy(filter.SortBy, MyCourseSortColumns, "created_at")

	items, err := r.query(ctx, r.sb.Select(myCourseColumns...).
		From("my_courses").
		Where(where).
		OrderBy(column+" "+order, "id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MyCourseRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.MyCourse, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build my courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing my courses query")
		return nil, fmt.Errorf("error querying my courses: %w", err)
	}
	defer rows.Close()

	items := []*models.MyCourse{}
	for rows.Next() {
		mc, err := scanMyCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning my course row: %w", err)
		}
		items = append(items, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating my course rows: %w", err)
	}
	return items, nil
}

// Delete removes an enrollment
func (r *MyCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("my_courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete my course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("myCourseID", id.String()).Msg("Error executing delete my course query")
		return fmt.Errorf("error deleting my course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
