package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	StorageService  *service.StorageService
}

func NewQuestionController(questionService *service.QuestionService, storageService *service.StorageService) *QuestionController {
	return &QuestionController{QuestionService: questionService, StorageService: storageService}
}

// List godoc
// @Summary Questions of an exam, instructor view
// @Tags questions
// @Produce  json
// @Param   id path int true "exam id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/teacher/exams/{id}/questions [get]
// @Security BearerAuth
func (c *QuestionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questions, err := c.QuestionService.ListQuestions(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Create godoc
// @Summary Add a question to an exam
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   body body service.QuestionReq true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/teacher/exams/{id}/questions [post]
// @Security BearerAuth
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.CreateQuestion(util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   id path int true "exam id"
// @Param   questionId path int true "question id"
// @Param   body body service.QuestionReq true "fields to change"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/teacher/exams/{id}/questions/{questionId} [put]
// @Security BearerAuth
func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.UpdateQuestion(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("questionId")),
		claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Param   id path int true "exam id"
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/questions/{questionId} [delete]
// @Security BearerAuth
func (c *QuestionController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.QuestionService.DeleteQuestion(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("questionId")),
		claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadImage godoc
// @Summary Upload a question illustration
// @Tags questions
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "image file"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "unsupported file type"
// @Router /api/teacher/questions/image [post]
// @Security BearerAuth
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadQuestionImage(
		ctx.Request.Context(),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url})
}
