package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a single offering in the catalog
type Course struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name" example:"Linear Algebra 101"`
	Description   string    `json:"description,omitempty"`
	TeacherID     uuid.UUID `json:"teacherId"`
	SubCategoryID uuid.UUID `json:"subCategoryId"`
	Image         string    `json:"image" example:"https://media.example.com/course/abc.jpg"`
	ViewCount     int64     `json:"viewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CourseDetails is a course with its catalog placement and enrollment total.
type CourseDetails struct {
	Course
	SubCategoryName string    `json:"subCategoryName"`
	CategoryID      uuid.UUID `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	EnrollmentCount int64     `json:"enrollmentCount"`
}

// CourseFilter narrows course listings. Zero values are ignored.
type CourseFilter struct {
	Name          string
	SubCategoryID uuid.UUID
	TeacherID     uuid.UUID
	SortBy        string
}
