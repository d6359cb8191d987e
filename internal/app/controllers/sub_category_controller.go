package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// SubCategoryController handles sub-category endpoints
type SubCategoryController struct {
	subCategoryService services.SubCategoryService
}

// NewSubCategoryController creates a new SubCategoryController
func NewSubCategoryController(subCategoryService services.SubCategoryService) *SubCategoryController {
	return &SubCategoryController{
		subCategoryService: subCategoryService,
	}
}

// CreateSubCategory handles sub-category creation
// @Summary Create a sub-category
// @Tags sub-categories
// @Accept json
// @Produce json
// @Param request body dto.CreateSubCategoryRequest true "Sub-category information"
// @Success 201 {object} dto.APIResponse{data=models.SubCategory} "Sub-category created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, name taken or unknown category"
// @Router /sub-categories [post]
func (c *SubCategoryController) CreateSubCategory(ctx *gin.Context) {
	var req dto.CreateSubCategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	sc, err := c.subCategoryService.CreateSubCategory(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(sc))
}

// GetAllSubCategories lists sub-categories, most subscribed first
// @Summary List sub-categories
// @Tags sub-categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SubCategory} "Sub-categories retrieved successfully"
// @Router /sub-categories [get]
func (c *SubCategoryController) GetAllSubCategories(ctx *gin.Context) {
	subs, err := c.subCategoryService.GetAllSubCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subs))
}

// GetSubCategoriesByCategory lists the sub-categories of a category
// @Summary List sub-categories of a category
// @Tags sub-categories
// @Produce json
// @Param categoryId path string true "Category ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.SubCategory} "Sub-categories retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /sub-categories/by-category/{categoryId} [get]
func (c *SubCategoryController) GetSubCategoriesByCategory(ctx *gin.Context) {
	categoryID, ok := middleware.ParseUUIDParam(ctx, "categoryId")
	if !ok {
		return
	}

	subs, err := c.subCategoryService.GetSubCategoriesByCategoryID(ctx.Request.Context(), categoryID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subs))
}

// GetSubCategoryByID retrieves a sub-category
// @Summary Get a sub-category
// @Tags sub-categories
// @Produce json
// @Param id path string true "Sub-category ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.SubCategory} "Sub-category retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Sub category not found"
// @Router /sub-categories/{id} [get]
func (c *SubCategoryController) GetSubCategoryByID(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	sc, err := c.subCategoryService.GetSubCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sc))
}

// UpdateSubCategory updates a sub-category
// @Summary Update a sub-category
// @Tags sub-categories
// @Accept json
// @Produce json
// @Param id path string true "Sub-category ID" Format(uuid)
// @Param request body dto.UpdateSubCategoryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.SubCategory} "Sub-category updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, name taken or unknown category"
// @Failure 404 {object} dto.ErrorResponse "Sub category not found"
// @Router /sub-categories/{id} [patch]
func (c *SubCategoryController) UpdateSubCategory(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubCategoryRequest
	if !middleware.BindJSON(ctx, &req) || !middleware.RequireNonEmpty(ctx, req.IsEmpty()) {
		return
	}

	sc, err := c.subCategoryService.UpdateSubCategory(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sc))
}

// DeleteSubCategory deletes a sub-category
// @Summary Delete a sub-category
// @Tags sub-categories
// @Param id path string true "Sub-category ID" Format(uuid)
// @Success 204 "Sub-category deleted"
// @Failure 400 {object} dto.ErrorResponse "Sub-category still has courses"
// @Failure 404 {object} dto.ErrorResponse "Sub category not found"
// @Router /sub-categories/{id} [delete]
func (c *SubCategoryController) DeleteSubCategory(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.subCategoryService.DeleteSubCategory(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// IncreaseSubscribers adds one subscriber
// @Summary Increase the subscriber number of a sub-category
// @Tags sub-categories
// @Produce json
// @Param id path string true "Sub-category ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.SubCategory} "Subscriber number increased"
// @Failure 404 {object} dto.ErrorResponse "Sub category not found"
// @Router /sub-categories/{id}/subscribers [patch]
func (c *SubCategoryController) IncreaseSubscribers(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	sc, err := c.subCategoryService.IncreaseSubscribers(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sc))
}

// IncreaseSubscribersByCourse adds one subscriber to the sub-category of a course
// @Summary Increase the subscriber number through a course
// @Tags sub-categories
// @Produce json
// @Param courseId path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.SubCategory} "Subscriber number increased"
// @Failure 404 {object} dto.ErrorResponse "Course or sub category not found"
// @Router /sub-categories/by-course/{courseId}/subscribers [patch]
func (c *SubCategoryController) IncreaseSubscribersByCourse(ctx *gin.Context) {
	courseID, ok := middleware.ParseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	sc, err := c.subCategoryService.IncreaseSubscribersByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sc))
}
