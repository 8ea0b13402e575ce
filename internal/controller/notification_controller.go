package controller

import (
	"strconv"

	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary Notifications for the calling user, newest first
// @Tags notifications
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/notifications [get]
// @Security BearerAuth
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	notifications, unread, err := c.NotificationService.ListForUser(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"notifications": notifications, "unreadCount": unread})
}

// Unread godoc
// @Summary Most recent unread notifications for the calling user
// @Tags notifications
// @Produce  json
// @Param   limit query int false "max rows, default 5"
// @Success 200 {object} util.Response{data=object}
// @Router /api/notifications/unread [get]
// @Security BearerAuth
func (c *NotificationController) Unread(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}
	notifications, err := c.NotificationService.ListUnread(claims.UserID, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"notifications": notifications})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce  json
// @Param   id path int true "notification id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "not the addressee"
// @Router /api/notifications/{id}/read [post]
// @Security BearerAuth
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.NotificationService.MarkRead(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
