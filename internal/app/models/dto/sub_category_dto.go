package dto

// CreateSubCategoryRequest represents sub-category creation data
type CreateSubCategoryRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120" example:"Algebra"`
	CategoryID string `json:"categoryId" binding:"required,uuid" example:"6f1c2d9e-6a63-4c53-9e8b-3a9b5bb0d2f1"`
}

// UpdateSubCategoryRequest represents sub-category update data
type UpdateSubCategoryRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=120"`
	CategoryID *string `json:"categoryId" binding:"omitempty,uuid"`
}

// IsEmpty reports a body that carries no updatable field.
func (r UpdateSubCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.CategoryID == nil
}
