package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared repository errors. Services translate them into apperrors.
var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNameTaken is returned when a unique name constraint is violated.
	ErrNameTaken = errors.New("name already taken")
	// ErrHasSubCategories is returned when a category is still referenced by sub-categories.
	ErrHasSubCategories = errors.New("category has sub categories")
	// ErrHasCourses is returned when a sub-category is still referenced by courses.
	ErrHasCourses = errors.New("sub category has courses")
	// ErrParentNotFound is returned when a referenced parent row does not exist.
	ErrParentNotFound = errors.New("referenced record not found")
	// ErrAlreadyEnrolled is returned when the (student, course) pair already exists.
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")
)

// Repositories holds all the repository instances
type Repositories struct {
	CategoryRepository    *CategoryRepository
	SubCategoryRepository *SubCategoryRepository
	CourseRepository      *CourseRepository
	MyCourseRepository    *MyCourseRepository
	ReportRepository      *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		CategoryRepository:    NewCategoryRepository(pool),
		SubCategoryRepository: NewSubCategoryRepository(pool),
		CourseRepository:      NewCourseRepository(pool),
		MyCourseRepository:    NewMyCourseRepository(pool),
		ReportRepository:      NewReportRepository(pool),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
