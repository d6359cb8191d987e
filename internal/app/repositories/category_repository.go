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

const categoryNameConstraint = "categories_name_key"

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a category; ID and timestamps are assigned here
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := time.Now().UTC()

	sql, args, err := r.sb.Insert("categories").
		Columns("id", "name", "created_at", "updated_at").
		Values(category.ID, category.Name, now, now).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create category SQL")
		return fmt.Errorf("failed to build create category query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, categoryNameConstraint) {
			return ErrNameTaken
		}
		logger.Error().Err(err).Msg("Error executing create category query")
		return fmt.Errorf("error creating category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at", "updated_at").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get category by ID SQL")
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	category := &models.Category{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("categoryID", id.String()).Msg("Error scanning category row")
		return nil, fmt.Errorf("error getting category by ID: %w", err)
	}
	return category, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at", "updated_at").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all categories query")
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// GetAllWithSubCategories returns every category with its sub-categories attached
func (r *CategoryRepository) GetAllWithSubCategories(ctx context.Context) ([]*models.Category, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.name", "c.created_at", "c.updated_at",
		"s.id", "s.name", "s.subscriber_number", "s.created_at", "s.updated_at",
	).
		From("categories c").
		LeftJoin("sub_categories s ON s.category_id = c.id").
		OrderBy("c.name ASC", "s.subscriber_number DESC", "s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build categories details query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing categories details query")
		return nil, fmt.Errorf("error querying categories details: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	var current *models.Category
	for rows.Next() {
		var (
			c              models.Category
			subID          *uuid.UUID
			subName        *string
			subSubscribers *int64
			subCreated     *time.Time
			subUpdated     *time.Time
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
			&subID, &subName, &subSubscribers, &subCreated, &subUpdated); err != nil {
			return nil, fmt.Errorf("error scanning categories details row: %w", err)
		}

		if current == nil || current.ID != c.ID {
			c.SubCategories = []*models.SubCategory{}
			current = &c
			categories = append(categories, current)
		}
		if subID != nil {
			current.SubCategories = append(current.SubCategories, &models.SubCategory{
				ID:               *subID,
				Name:             *subName,
				CategoryID:       c.ID,
				CategoryName:     c.Name,
				SubscriberNumber: *subSubscribers,
				CreatedAt:        *subCreated,
				UpdatedAt:        *subUpdated,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories details rows: %w", err)
	}
	return categories, nil
}

// NameTaken reports whether another category already uses name
func (r *CategoryRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("categories").
		Where(squirrel.And{squirrel.Eq{"name": name}, squirrel.NotEq{"id": excludeID}}).
		Limit(1).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build category name query: %w", err)
	}

	var taken bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&taken); err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error checking category name")
		return false, fmt.Errorf("error checking category name: %w", err)
	}
	return taken, nil
}

// Update saves the mutable fields of a category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()

	sql, args, err := r.sb.Update("categories").
		SetMap(map[string]interface{}{
			"name":       category.Name,
			"updated_at": category.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, categoryNameConstraint) {
			return ErrNameTaken
		}
		logger.Error().Err(err).Str("categoryID", category.ID.String()).Msg("Error executing update category query")
		return fmt.Errorf("error updating category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category after checking, in the same transaction, that no
// sub-category references it. The foreign key restricts the delete as well.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		existsSQL, existsArgs, err := subCategoryExistsQuery(r.sb, id).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sub category check query: %w", err)
		}

		var hasChildren bool
		if err := tx.QueryRow(ctx, existsSQL, existsArgs...).Scan(&hasChildren); err != nil {
			logger.Error().Err(err).Str("categoryID", id.String()).Msg("Error checking category sub categories")
			return fmt.Errorf("error checking sub categories: %w", err)
		}
		if hasChildren {
			return ErrHasSubCategories
		}

		sql, args, err := r.sb.Delete("categories").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete category query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err, "sub_categories_category_id_fkey") {
				return ErrHasSubCategories
			}
			logger.Error().Err(err).Str("categoryID", id.String()).Msg("Error executing delete category query")
			return fmt.Errorf("error deleting category: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func subCategoryExistsQuery(sb squirrel.StatementBuilderType, categoryID uuid.UUID) squirrel.SelectBuilder {
	return sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("sub_categories").
		Where(squirrel.Eq{"category_id": categoryID}).
		Limit(1).
		Suffix(")")
}
