package app

import (
	"examen_backend/docs"
	"examen_backend/internal/config"
	"examen_backend/internal/middleware"
	"examen_backend/internal/model"
	"examen_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)
		api.GET("/certificates/:code", c.certificate.Verify)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.GET("/categories", c.category.List)
		authGroup.GET("/notifications", c.notification.List)
		authGroup.GET("/notifications/unread", c.notification.Unread)
		authGroup.POST("/notifications/:id/read", c.notification.MarkRead)
		authGroup.GET("/results/:id", c.result.Detail)

		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	student := group.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/dashboard", c.dashboard.Student)
		student.GET("/exams", c.exam.ListAssigned)
		student.GET("/exams/:id", c.exam.GetForTaking)
		student.POST("/exams/:id/submit", c.attempt.Submit)
		student.POST("/exams/:id/practice", c.attempt.SubmitPractice)
		student.GET("/results", c.result.ListMine)
		student.POST("/results/:id/revision", c.result.RequestRevision)
		student.POST("/results/:id/certificate", c.certificate.Issue)
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Instructor))
	{
		teacher.GET("/dashboard", c.dashboard.Instructor)
		teacher.GET("/reports/exams", c.dashboard.Report)

		teacher.GET("/exams", c.exam.ListMine)
		teacher.POST("/exams", c.exam.Create)
		teacher.GET("/exams/:id", c.exam.Get)
		teacher.PUT("/exams/:id", c.exam.Update)
		teacher.DELETE("/exams/:id", c.exam.Delete)
		teacher.POST("/exams/:id/publish", c.exam.Publish)

		teacher.GET("/exams/:id/assignments", c.exam.ListAssignedStudents)
		teacher.POST("/exams/:id/assignments", c.exam.Assign)
		teacher.DELETE("/exams/:id/assignments/:studentId", c.exam.Unassign)

		teacher.GET("/exams/:id/questions", c.question.List)
		teacher.POST("/exams/:id/questions", c.question.Create)
		teacher.PUT("/exams/:id/questions/:questionId", c.question.Update)
		teacher.DELETE("/exams/:id/questions/:questionId", c.question.Delete)
		teacher.POST("/questions/image", c.question.UploadImage)

		teacher.GET("/users", c.user.ListUsers)
		teacher.PUT("/results/:id/feedback", c.result.Feedback)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PATCH("/users/:id/status", c.user.SetActive)

		admin.POST("/categories", c.category.Create)
		admin.PUT("/categories/:id", c.category.Update)
		admin.DELETE("/categories/:id", c.category.Delete)
	}
}
