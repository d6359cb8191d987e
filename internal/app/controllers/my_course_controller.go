package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// MyCourseController handles enrollment endpoints
type MyCourseController struct {
	myCourseService services.MyCourseService
}

// NewMyCourseController creates a new MyCourseController
func NewMyCourseController(myCourseService services.MyCourseService) *MyCourseController {
	return &MyCourseController{
		myCourseService: myCourseService,
	}
}

// CreateMyCourse enrolls a student in a course
// @Summary Enroll in a course
// @Tags my-courses
// @Accept json
// @Produce json
// @Param request body dto.CreateMyCourseRequest true "Enrollment"
// @Success 201 {object} dto.APIResponse{data=models.MyCourse} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or already enrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /my-courses [post]
func (c *MyCourseController) CreateMyCourse(ctx *gin.Context) {
	var req dto.CreateMyCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	mc, err := c.myCourseService.Enroll(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(mc))
}

// ListMyCourses lists enrollments with filters and pagination
// @Summary List enrollments
// @Tags my-courses
// @Produce json
// @Param studentId query string false "Student ID" Format(uuid)
// @Param courseId query string false "Course ID" Format(uuid)
// @Param sortBy query string false "createdAt:asc|desc"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.MyCourse} "Enrollments retrieved successfully"
// @Router /my-courses [get]
func (c *MyCourseController) ListMyCourses(ctx *gin.Context) {
	var q dto.MyCourseListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}
	page := helpers.ParsePaginationParams(ctx)

	items, total, err := c.myCourseService.ListMyCourses(ctx.Request.Context(), q, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(items, helpers.NewPaginationInfo(total, page.Number, page.Size)))
}

// GetStudentCourses lists the enrollments of a student
// @Summary List a student's enrollments
// @Tags my-courses
// @Produce json
// @Param studentId path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.MyCourse} "Enrollments retrieved successfully"
// @Router /my-courses/students/{studentId} [get]
func (c *MyCourseController) GetStudentCourses(ctx *gin.Context) {
	studentID, ok := middleware.ParseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	items, err := c.myCourseService.GetByStudentID(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items))
}

// GetMyCourseByID retrieves an enrollment
// @Summary Get an enrollment
// @Tags my-courses
// @Produce json
// @Param id path string true "Enrollment ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.MyCourse} "Enrollment retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "my course not found"
// @Router /my-courses/{id} [get]
func (c *MyCourseController) GetMyCourseByID(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	mc, err := c.myCourseService.GetMyCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mc))
}

// DeleteMyCourse removes an enrollment
// @Summary Delete an enrollment
// @Tags my-courses
// @Param id path string true "Enrollment ID" Format(uuid)
// @Success 204 "Enrollment deleted"
// @Failure 404 {object} dto.ErrorResponse "my course not found"
// @Router /my-courses/{id} [delete]
func (c *MyCourseController) DeleteMyCourse(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.myCourseService.DeleteMyCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
