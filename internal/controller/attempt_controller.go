package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"
	"examen_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

func submissionOutcome(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

// Submit godoc
// @Summary Submit a graded attempt
// @Description One graded result per student per exam; a second submission conflicts
// @Tags attempts
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   body body service.SubmitAttemptReq true "answers keyed question_<id>"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 403 {object} util.Response "not assigned"
// @Failure 409 {object} util.Response "already submitted"
// @Failure 400 {object} util.Response "past deadline"
// @Router /api/student/exams/{id}/submit [post]
// @Security BearerAuth
func (c *AttemptController) Submit(ctx *gin.Context) {
	c.submit(ctx, false)
}

// SubmitPractice godoc
// @Summary Submit a practice attempt
// @Description Graded in memory only; nothing is stored and retries are unlimited
// @Tags attempts
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   body body service.SubmitAttemptReq true "answers keyed question_<id>"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Router /api/student/exams/{id}/practice [post]
// @Security BearerAuth
func (c *AttemptController) SubmitPractice(ctx *gin.Context) {
	c.submit(ctx, true)
}

func (c *AttemptController) submit(ctx *gin.Context, practice bool) {
	var req service.SubmitAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	examID := util.MustParseUint(ctx.Param("id"))
	result, err := c.AttemptService.SubmitAttempt(examID, claims.UserID, req, practice)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	mode := "graded"
	if practice {
		mode = "practice"
	}
	monitoring.SubmissionCounter.WithLabelValues(mode, submissionOutcome(result.Passed)).Inc()

	util.Success(ctx, result)
}
