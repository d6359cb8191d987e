package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top-level grouping of the catalog
type Category struct {
	ID        uuid.UUID `json:"id" example:"6f1c2d9e-6a63-4c53-9e8b-3a9b5bb0d2f1"`
	Name      string    `json:"name" example:"Mathematics"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated by the details view only.
	SubCategories []*SubCategory `json:"subCategories,omitempty"`
}
