package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportWindow selects enrollments with From <= createdAt, and createdAt < To when To is set.
type ReportWindow struct {
	From time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the window.
func (w ReportWindow) Contains(t time.Time) bool {
	if t.Before(w.From) {
		return false
	}
	return w.To == nil || t.Before(*w.To)
}

// CourseCount is one ranked group of the enrollment log keyed by course.
type CourseCount struct {
	CourseID uuid.UUID
	Count    int64
}

// SubCategoryCount is one ranked group of the enrollment log keyed by sub-category.
type SubCategoryCount struct {
	SubCategoryID uuid.UUID
	Count         int64
}

// OutstandingCourse is a resolved entry of the most-outstanding courses report.
type OutstandingCourse struct {
	Course
	Count int64 `json:"count" example:"17"`
}

// SubscribedSubCategory is a resolved entry of the most-subscribed sub-categories report.
type SubscribedSubCategory struct {
	SubCategory
	Count int64 `json:"count" example:"31"`
}
