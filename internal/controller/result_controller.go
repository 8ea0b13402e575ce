package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	AttemptService *service.AttemptService
}

func NewResultController(attemptService *service.AttemptService) *ResultController {
	return &ResultController{AttemptService: attemptService}
}

// ListMine godoc
// @Summary Completed results of the calling student
// @Tags results
// @Produce  json
// @Success 200 {object} util.Response{data=service.StudentResultsSummary}
// @Router /api/student/results [get]
// @Security BearerAuth
func (c *ResultController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.AttemptService.ListStudentResults(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Detail godoc
// @Summary Result detail with per-question breakdown
// @Description Students see only their own results; instructors only their exams
// @Tags results
// @Produce  json
// @Param   id path int true "result id"
// @Success 200 {object} util.Response{data=service.ResultDetail}
// @Failure 403 {object} util.Response
// @Router /api/results/{id} [get]
// @Security BearerAuth
func (c *ResultController) Detail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.AttemptService.GetResultDetail(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// RequestRevision godoc
// @Summary Ask the instructor to review a graded result
// @Description A result can be sent to revision once; repeats conflict
// @Tags results
// @Produce  json
// @Param   id path int true "result id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "revision already requested"
// @Router /api/student/results/{id}/revision [post]
// @Security BearerAuth
func (c *ResultController) RequestRevision(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.AttemptService.RequestRevision(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type FeedbackRequest struct {
	Comment         string `json:"comment"`
	Recommendations string `json:"recommendations"`
}

// Feedback godoc
// @Summary Record instructor feedback on a result
// @Description Closes an open revision request when one exists
// @Tags results
// @Accept  json
// @Produce  json
// @Param   id path int true "result id"
// @Param   body body FeedbackRequest true "feedback"
// @Success 200 {object} util.Response
// @Router /api/teacher/results/{id}/feedback [put]
// @Security BearerAuth
func (c *ResultController) Feedback(ctx *gin.Context) {
	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	resultID := util.MustParseUint(ctx.Param("id"))
	if err := c.AttemptService.RecordInstructorFeedback(resultID, claims.UserID, req.Comment, req.Recommendations); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": resultID})
}
