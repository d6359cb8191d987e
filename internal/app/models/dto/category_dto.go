package dto

// CreateCategoryRequest represents category creation data
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120" example:"Mathematics"`
}

// UpdateCategoryRequest represents category update data
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=120" example:"Applied Mathematics"`
}

// IsEmpty reports a body that carries no updatable field.
func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil
}
