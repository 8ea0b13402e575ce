package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Create godoc
// @Summary Create an exam
// @Tags exams
// @Accept  json
// @Produce  json
// @Param   body body service.ExamReq true "exam"
// @Success 201 {object} util.Response{data=model.Exam}
// @Router /api/teacher/exams [post]
// @Security BearerAuth
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	exam, err := c.ExamService.CreateExam(claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// Update godoc
// @Summary Update an exam
// @Tags exams
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   body body service.ExamReq true "fields to change"
// @Success 200 {object} util.Response{data=model.Exam}
// @Router /api/teacher/exams/{id} [put]
// @Security BearerAuth
func (c *ExamController) Update(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	exam, err := c.ExamService.UpdateExam(util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// Publish godoc
// @Summary Publish an exam
// @Description An exam needs at least one question before it can go live
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response "exam has no questions"
// @Router /api/teacher/exams/{id}/publish [post]
// @Security BearerAuth
func (c *ExamController) Publish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	exam, err := c.ExamService.Publish(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// Delete godoc
// @Summary Delete an exam and everything hanging off it
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id} [delete]
// @Security BearerAuth
func (c *ExamController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ExamService.DeleteExam(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary Exam detail with questions, instructor view
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/exams/{id} [get]
// @Security BearerAuth
func (c *ExamController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	exam, questions, err := c.ExamService.GetExam(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"exam": exam, "questions": questions})
}

// ListMine godoc
// @Summary Exams owned by the calling instructor
// @Tags exams
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/teacher/exams [get]
// @Security BearerAuth
func (c *ExamController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	exams, err := c.ExamService.ListByInstructor(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

type AssignRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
}

// Assign godoc
// @Summary Assign a student to an exam
// @Description Re-assigning an already assigned student is a no-op
// @Tags exams
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   body body AssignRequest true "student"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/assignments [post]
// @Security BearerAuth
func (c *ExamController) Assign(ctx *gin.Context) {
	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	examID := util.MustParseUint(ctx.Param("id"))
	if err := c.ExamService.AssignStudent(examID, claims.UserID, req.StudentID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"examId": examID, "studentId": req.StudentID})
}

// Unassign godoc
// @Summary Remove a student from an exam
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Param   studentId path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/assignments/{studentId} [delete]
// @Security BearerAuth
func (c *ExamController) Unassign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID := util.MustParseUint(ctx.Param("id"))
	studentID := util.MustParseUint(ctx.Param("studentId"))
	if err := c.ExamService.UnassignStudent(examID, claims.UserID, studentID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListAssignedStudents godoc
// @Summary Students assigned to an exam
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/teacher/exams/{id}/assignments [get]
// @Security BearerAuth
func (c *ExamController) ListAssignedStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	students, err := c.ExamService.ListAssignedStudents(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// ListAssigned godoc
// @Summary Exams assigned to the calling student
// @Description Each entry carries an availability status and days remaining
// @Tags exams
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.AssignedExamInfo}
// @Router /api/student/exams [get]
// @Security BearerAuth
func (c *ExamController) ListAssigned(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	exams, err := c.ExamService.ListAssignedExams(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetForTaking godoc
// @Summary Exam paper for a sitting
// @Description Questions come back without correct answers; ordering may be shuffled
// @Tags exams
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "not assigned"
// @Failure 409 {object} util.Response "already completed"
// @Router /api/student/exams/{id} [get]
// @Security BearerAuth
func (c *ExamController) GetForTaking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	exam, questions, err := c.ExamService.GetExamForTaking(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"exam": exam, "questions": questions})
}
