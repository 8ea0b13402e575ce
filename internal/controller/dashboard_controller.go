package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Student godoc
// @Summary Student home dashboard
// @Tags dashboards
// @Produce  json
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/student/dashboard [get]
// @Security BearerAuth
func (c *DashboardController) Student(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dashboard, err := c.DashboardService.StudentOverview(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// Instructor godoc
// @Summary Instructor home dashboard
// @Tags dashboards
// @Produce  json
// @Success 200 {object} util.Response{data=service.InstructorDashboard}
// @Router /api/teacher/dashboard [get]
// @Security BearerAuth
func (c *DashboardController) Instructor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dashboard, err := c.DashboardService.InstructorOverview(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// Report godoc
// @Summary Performance report across the instructor's exams
// @Description Grade distribution plus students averaging below passing
// @Tags dashboards
// @Produce  json
// @Success 200 {object} util.Response{data=service.ExamReport}
// @Router /api/teacher/reports/exams [get]
// @Security BearerAuth
func (c *DashboardController) Report(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.DashboardService.ExamReport(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
