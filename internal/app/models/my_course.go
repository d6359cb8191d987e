package models

import (
	"time"

	"github.com/google/uuid"
)

// MyCourse is one student-to-course enrollment
type MyCourse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"studentId"`
	CourseID  uuid.UUID `json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

// MyCourseFilter narrows enrollment listings. Zero values are ignored.
type MyCourseFilter struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	SortBy    string
}
