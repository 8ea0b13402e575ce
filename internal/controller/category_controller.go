package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// List godoc
// @Summary List active categories
// @Tags categories
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
// @Security BearerAuth
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.ListActive()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   body body service.CategoryReq true "category"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 409 {object} util.Response "name taken"
// @Router /api/admin/categories [post]
// @Security BearerAuth
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Create(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id path int true "category id"
// @Param   body body service.CategoryReq true "fields to change"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/admin/categories/{id} [put]
// @Security BearerAuth
func (c *CategoryController) Update(ctx *gin.Context) {
	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce  json
// @Param   id path int true "category id"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
// @Security BearerAuth
func (c *CategoryController) Delete(ctx *gin.Context) {
	if err := c.CategoryService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
