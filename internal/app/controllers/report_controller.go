package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// ReportController serves the enrollment rankings
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

func bindReportQuery(ctx *gin.Context) (int, models.ReportWindow, bool) {
	var q dto.ReportQuery
	if !middleware.BindQuery(ctx, &q) {
		return 0, models.ReportWindow{}, false
	}
	window, err := helpers.ParseReportWindow(q.FromDate, q.ToDate)
	if err != nil {
		middleware.RespondValidationError(ctx, err)
		return 0, models.ReportWindow{}, false
	}
	return q.Limit, window, true
}

// MostOutstandingCourses ranks courses by enrollments
// @Summary Most outstanding courses
// @Description Courses ranked by enrollments created on or after fromDate (and before toDate when given)
// @Tags courses
// @Produce json
// @Param limit query int false "Number of courses (1-100)" default(10)
// @Param fromDate query string true "Start of the window, RFC3339 or YYYY-MM-DD"
// @Param toDate query string false "Exclusive end of the window"
// @Success 200 {object} dto.APIResponse{data=[]models.OutstandingCourse} "Ranking computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /courses/most-outstanding [get]
func (c *ReportController) MostOutstandingCourses(ctx *gin.Context) {
	limit, window, ok := bindReportQuery(ctx)
	if !ok {
		return
	}

	courses, err := c.reportService.MostOutstandingCourses(ctx.Request.Context(), limit, window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// MostSubscribedSubCategories ranks sub-categories by enrollments of their courses
// @Summary Most subscribed sub-categories
// @Tags sub-categories
// @Produce json
// @Param limit query int false "Number of sub-categories (1-100)" default(5)
// @Param fromDate query string true "Start of the window, RFC3339 or YYYY-MM-DD"
// @Param toDate query string false "Exclusive end of the window"
// @Success 200 {object} dto.APIResponse{data=[]models.SubscribedSubCategory} "Ranking computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /sub-categories/most-subscribed [get]
func (c *ReportController) MostSubscribedSubCategories(ctx *gin.Context) {
	limit, window, ok := bindReportQuery(ctx)
	if !ok {
		return
	}

	subs, err := c.reportService.MostSubscribedSubCategories(ctx.Request.Context(), limit, window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subs))
}
