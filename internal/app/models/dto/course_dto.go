package dto

// CreateCourseRequest represents course creation data.
// Image is either a data URI or a remote URL; it is uploaded to the media host before insert.
type CreateCourseRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200" example:"Linear Algebra 101"`
	Description   string `json:"description" binding:"max=5000"`
	TeacherID     string `json:"teacherId" binding:"required,uuid"`
	SubCategoryID string `json:"subCategoryId" binding:"required,uuid"`
	Image         string `json:"image" binding:"required,datauri|url"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string `json:"description" binding:"omitempty,max=5000"`
	TeacherID     *string `json:"teacherId" binding:"omitempty,uuid"`
	SubCategoryID *string `json:"subCategoryId" binding:"omitempty,uuid"`
	Image         *string `json:"image" binding:"omitempty,datauri|url"`
}

// IsEmpty reports a body that carries no updatable field.
func (r UpdateCourseRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.TeacherID == nil &&
		r.SubCategoryID == nil && r.Image == nil
}

// CourseListQuery holds the query string of GET /courses
type CourseListQuery struct {
	Name          string `form:"name" binding:"omitempty,max=200"`
	SubCategoryID string `form:"subCategoryId" binding:"omitempty,uuid"`
	TeacherID     string `form:"teacherId" binding:"omitempty,uuid"`
	SortBy        string `form:"sortBy" example:"name:asc"`
}
