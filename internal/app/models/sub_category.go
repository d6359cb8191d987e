package models

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory is a child grouping under a Category.
// SubscriberNumber counts enrollments into the sub-category's courses.
type SubCategory struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name" example:"Algebra"`
	CategoryID       uuid.UUID `json:"categoryId"`
	CategoryName     string    `json:"categoryName,omitempty" example:"Mathematics"`
	SubscriberNumber int64     `json:"subscriberNumber" example:"42"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
