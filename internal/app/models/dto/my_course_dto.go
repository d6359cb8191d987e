package dto

// CreateMyCourseRequest enrolls a student into a course
type CreateMyCourseRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

// MyCourseListQuery holds the query string of GET /my-courses
type MyCourseListQuery struct {
	StudentID string `form:"studentId" binding:"omitempty,uuid"`
	CourseID  string `form:"courseId" binding:"omitempty,uuid"`
	SortBy    string `form:"sortBy" example:"createdAt:desc"`
}
