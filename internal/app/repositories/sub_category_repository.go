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
	"github.com/yigit/learnhub/internal/pkg/logger"
)

const (
	subCategoryNameConstraint     = "sub_categories_name_key"
	subCategoryCategoryConstraint = "sub_categories_category_id_fkey"
	courseSubCategoryConstraint   = "courses_sub_category_id_fkey"
)

var subCategoryColumns = []string{
	"s.id", "s.name", "s.category_id", "c.name", "s.subscriber_number", "s.created_at", "s.updated_at",
}

// SubCategoryRepository handles sub-category database operations
type SubCategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubCategoryRepository creates a new SubCategoryRepository
func NewSubCategoryRepository(db *pgxpool.Pool) *SubCategoryRepository {
	return &SubCategoryRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *SubCategoryRepository) selectSubCategories() squirrel.SelectBuilder {
	return r.sb.Select(subCategoryColumns...).
		From("sub_categories s").
		Join("categories c ON c.id = s.category_id")
}

func scanSubCategory(row pgx.Row) (*models.SubCategory, error) {
	sc := &models.SubCategory{}
	err := row.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.CategoryName,
		&sc.SubscriberNumber, &sc.CreatedAt, &sc.UpdatedAt)
	return sc, err
}

func (r *SubCategoryRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.SubCategory, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sub categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing sub categories query")
		return nil, fmt.Errorf("error querying sub categories: %w", err)
	}
	defer rows.Close()

	subCategories := []*models.SubCategory{}
	for rows.Next() {
		sc, err := scanSubCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning sub category row: %w", err)
		}
		subCategories = append(subCategories, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub category rows: %w", err)
	}
	return subCategories, nil
}

// Create inserts a sub-category and fills in the parent category name
func (r *SubCategoryRepository) Create(ctx context.Context, sc *models.SubCategory) error {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	now := time.Now().UTC()

	sql, args, err := r.sb.Insert("sub_categories").
		Columns("id", "name", "category_id", "subscriber_number", "created_at", "updated_at").
		Values(sc.ID, sc.Name, sc.CategoryID, 0, now, now).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create sub category SQL")
		return fmt.Errorf("failed to build create sub category query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, subCategoryNameConstraint):
			return ErrNameTaken
		case dberrors.IsForeignKeyViolation(err, subCategoryCategoryConstraint):
			return ErrParentNotFound
		}
		logger.Error().Err(err).Msg("Error executing create sub category query")
		return fmt.Errorf("error creating sub category: %w", err)
	}

	created, err := r.GetByID(ctx, sc.ID)
	if err != nil {
		return err
	}
	*sc = *created
	return nil
}

// GetByID retrieves a sub-category with its category name
func (r *SubCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	sql, args, err := r.selectSubCategories().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get sub category query: %w", err)
	}

	sc, err := scanSubCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("subCategoryID", id.String()).Msg("Error scanning sub category row")
		return nil, fmt.Errorf("error getting sub category by ID: %w", err)
	}
	return sc, nil
}

// GetAll returns every sub-category, most subscribed first
func (r *SubCategoryRepository) GetAll(ctx context.Context) ([]*models.SubCategory, error) {
	return r.query(ctx, r.selectSubCategories().
		OrderBy("s.subscriber_number DESC", "s.name ASC"))
}

// GetByCategoryID returns the sub-categories of one category
func (r *SubCategoryRepository) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*models.SubCategory, error) {
	return r.query(ctx, r.selectSubCategories().
		Where(squirrel.Eq{"s.category_id": categoryID}).
		OrderBy("s.subscriber_number DESC", "s.name ASC"))
}

// ExistsByCategoryID reports whether any sub-category references the category
func (r *SubCategoryRepository) ExistsByCategoryID(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("sub_categories").
		Where(squirrel.Eq{"category_id": categoryID}).
		Limit(1).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sub category exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("categoryID", categoryID.String()).Msg("Error checking sub categories")
		return false, fmt.Errorf("error checking sub categories: %w", err)
	}
	return exists, nil
}

// NameTaken reports whether a sub-category other than excludeID uses name
func (r *SubCategoryRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("sub_categories").
		Where(squirrel.And{squirrel.Eq{"name": name}, squirrel.NotEq{"id": excludeID}}).
		Limit(1).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sub category name query: %w", err)
	}

	var taken bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&taken); err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error checking sub category name")
		return false, fmt.Errorf("error checking sub category name: %w", err)
	}
	return taken, nil
}

// Update saves name and category of a sub-category
func (r *SubCategoryRepository) Update(ctx context.Context, sc *models.SubCategory) error {
	sql, args, err := r.sb.Update("sub_categories").
		SetMap(map[string]interface{}{
			"name":        sc.Name,
			"category_id": sc.CategoryID,
			"updated_at":  time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": sc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update sub category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, subCategoryNameConstraint):
			return ErrNameTaken
		case dberrors.IsForeignKeyViolation(err, subCategoryCategoryConstraint):
			return ErrParentNotFound
		}
		logger.Error().Err(err).Str("subCategoryID", sc.ID.String()).Msg("Error executing update sub category query")
		return fmt.Errorf("error updating sub category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	updated, err := r.GetByID(ctx, sc.ID)
	if err != nil {
		return err
	}
	*sc = *updated
	return nil
}

// Delete removes a sub-category. Courses still pointing at it block the delete.
func (r *SubCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("sub_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete sub category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, courseSubCategoryConstraint) {
			return ErrHasCourses
		}
		logger.Error().Err(err).Str("subCategoryID", id.String()).Msg("Error executing delete sub category query")
		return fmt.Errorf("error deleting sub category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementSubscribers adds one to the subscriber number and returns the updated row
func (r *SubCategoryRepository) IncrementSubscribers(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	if err := incrementSubscribers(ctx, r.db, r.sb, squirrel.Eq{"id": id}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// IncrementSubscribersByCourseID adds one to the subscriber number of the course's sub-category
func (r *SubCategoryRepository) IncrementSubscribersByCourseID(ctx context.Context, courseID uuid.UUID) (*models.SubCategory, error) {
	var subCategoryID uuid.UUID
	sql, args, err := r.sb.Select("sub_category_id").
		From("courses").
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course lookup query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&subCategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("error looking up course: %w", err)
	}
	return r.IncrementSubscribers(ctx, subCategoryID)
}

// incrementSubscribers runs the atomic subscriber_number + 1 update; it is used
// both standalone and inside the enrollment transaction.
func incrementSubscribers(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, where squirrel.Sqlizer) error {
	sql, args, err := incrementSubscribersQuery(sb, where, time.Now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build increment subscribers query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing increment subscribers query")
		return fmt.Errorf("error incrementing subscribers: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func incrementSubscribersQuery(sb squirrel.StatementBuilderType, where squirrel.Sqlizer, now time.Time) squirrel.UpdateBuilder {
	return sb.Update("sub_categories").
		Set("subscriber_number", squirrel.Expr("subscriber_number + 1")).
		Set("updated_at", now).
		Where(where)
}
