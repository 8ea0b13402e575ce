package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListUsers godoc
// @Summary List users
// @Description Admins see everyone, instructors see their students
// @Tags users
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/users [get]
// @Security BearerAuth
func (c *UserController) ListUsers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	users, err := c.UserService.ListUsers(claims.Role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive godoc
// @Summary Activate or deactivate an account
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path int true "user id"
// @Param   body body SetActiveRequest true "target state"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/status [patch]
// @Security BearerAuth
func (c *UserController) SetActive(ctx *gin.Context) {
	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.SetActive(userID, *req.Active); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": userID, "active": *req.Active})
}
