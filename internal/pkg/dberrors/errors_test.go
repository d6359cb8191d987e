package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"})

	assert.True(t, IsDuplicateConstraintError(err, "categories_name_key"))
	assert.False(t, IsDuplicateConstraintError(err, "sub_categories_name_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "categories_name_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "sub_categories_category_id_fkey"}

	assert.True(t, IsForeignKeyViolation(err, ""))
	assert.True(t, IsForeignKeyViolation(err, "sub_categories_category_id_fkey"))
	assert.False(t, IsForeignKeyViolation(err, "courses_sub_category_id_fkey"))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}, ""))
}
