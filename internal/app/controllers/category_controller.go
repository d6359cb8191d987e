package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// CategoryController handles category endpoints
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// CreateCategory handles category creation
// @Summary Create a category
// @Description Creates a category with a unique name
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(category))
}

// GetAllCategories lists categories
// @Summary List categories
// @Description Lists every category ordered by name
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories))
}

// GetCategoriesDetails lists categories with their sub-categories
// @Summary List categories with sub-categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/details [get]
func (c *CategoryController) GetCategoriesDetails(ctx *gin.Context) {
	categories, err := c.categoryService.GetCategoriesDetails(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories))
}

// GetCategoryByID retrieves a category
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(category))
}

// UpdateCategory updates a category
// @Summary Update a category
// @Description Partially updates a category. Keeping the current name is allowed.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID" Format(uuid)
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already taken"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [patch]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !middleware.BindJSON(ctx, &req) || !middleware.RequireNonEmpty(ctx, req.IsEmpty()) {
		return
	}

	category, err := c.categoryService.UpdateCategory(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(category))
}

// DeleteCategory deletes a category without sub-categories
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID" Format(uuid)
// @Success 204 "Category deleted"
// @Failure 400 {object} dto.ErrorResponse "Category still has sub-categories"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := middleware.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
