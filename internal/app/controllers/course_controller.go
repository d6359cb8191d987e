package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// CourseController handles course endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Uploads the image to the media host, then stores the course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or unknown sub-category"
// @Failure 502 {object} dto.ErrorResponse "Image upload failed"
// @Failure 504 {object} dto.ErrorResponse "Image upload timed out"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// ListCourses lists courses with filters and pagination
// @Summary List courses
// @Tags courses
// @Produce json
// @Param name query string false "Case-insensitive name fragment"
// @Param subCategoryId query string false "Sub-category ID" Format(uuid)
// @Param teacherId query string false "Teacher ID" Format(uuid)
// @Param sortBy query string false "field:asc|desc, field one of name, createdAt, updatedAt, viewCount"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var q dto.CourseListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}
	page := helpers.ParsePaginationParams(ctx)

	courses, total, err := c.courseService.ListCourses(ctx.Request.Context(), q, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(courses, helpers.NewPaginationInfo(total, page.Number, page.Size)))
}

// GetAllCourses lists every course
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Router /courses/all [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetCourseByID retrieves a course and counts the view
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.ViewCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// GetCourseDetails retrieves a course with its sub-category, category and enrollment count
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.CourseDetails} "Course details retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/details [get]
func (c *CourseController) GetCourseDetails(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	details, err := c.courseService.GetCourseDetails(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(details))
}

// UpdateCourse updates a course
// @Summary Update a course
// @Description Partially updates a course; a new image is uploaded only when supplied
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or unknown sub-category"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 502 {object} dto.ErrorResponse "Image upload failed"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) || !middleware.RequireNonEmpty(ctx, req.IsEmpty()) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse deletes a course and its enrollments
// @Summary Delete a course
// @Tags courses
// @Param id path string true "Course ID" Format(uuid)
// @Success 204 "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
