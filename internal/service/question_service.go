package service

import (
	"encoding/json"
	"errors"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	ExamRepo     *repository.ExamRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, examRepo *repository.ExamRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, ExamRepo: examRepo}
}

type QuestionReq struct {
	Text             *string                 `json:"text"`
	Type             *model.QuestionType     `json:"type"`
	Options          []model.QuestionOption  `json:"options"`
	CorrectAnswer    *string                 `json:"correctAnswer"`
	Points           *int                    `json:"points"`
	Order            *int                    `json:"order"`
	Difficulty       *model.Difficulty       `json:"difficulty"`
	EstimatedSeconds *int                    `json:"estimatedSeconds"`
	Explanation      *string                 `json:"explanation"`
	ImageURL         *string                 `json:"imageUrl"`
}

// validateOptions enforces exactly one correct option for single-answer
// choice questions.
func validateOptions(qType model.QuestionType, options []model.QuestionOption) error {
	if qType != model.MultipleChoice {
		return nil
	}
	if len(options) < 2 {
		return util.ErrValidation
	}
	correct := 0
	for _, opt := range options {
		if opt.Correct {
			correct++
		}
	}
	if correct != 1 {
		return util.ErrValidation
	}
	return nil
}

func (s *QuestionService) ownedExam(examID, instructorID uint) error {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if exam.InstructorID != instructorID {
		return util.ErrForbidden
	}
	return nil
}

func (s *QuestionService) CreateQuestion(examID, instructorID uint, req QuestionReq) (*model.Question, error) {
	if err := s.ownedExam(examID, instructorID); err != nil {
		return nil, err
	}
	if req.Text == nil || *req.Text == "" || req.Type == nil {
		return nil, util.ErrValidation
	}
	if err := validateOptions(*req.Type, req.Options); err != nil {
		return nil, err
	}

	question := &model.Question{
		ExamID: examID,
		Text:   *req.Text,
		Type:   *req.Type,
	}
	if err := applyQuestionReq(question, req); err != nil {
		return nil, err
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func applyQuestionReq(q *model.Question, req QuestionReq) error {
	if req.Text != nil {
		q.Text = *req.Text
	}
	if req.Type != nil {
		q.Type = *req.Type
	}
	if req.Options != nil {
		raw, err := json.Marshal(req.Options)
		if err != nil {
			return err
		}
		q.Options = raw
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.Order != nil {
		q.Order = *req.Order
	}
	if req.Difficulty != nil {
		q.Difficulty = *req.Difficulty
	}
	if req.EstimatedSeconds != nil {
		q.EstimatedSeconds = *req.EstimatedSeconds
	}
	if req.Explanation != nil {
		q.Explanation = *req.Explanation
	}
	if req.ImageURL != nil {
		q.ImageURL = *req.ImageURL
	}
	return nil
}

func (s *QuestionService) UpdateQuestion(examID, questionID, instructorID uint, req QuestionReq) (*model.Question, error) {
	if err := s.ownedExam(examID, instructorID); err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if question.ExamID != examID {
		return nil, util.ErrNotFound
	}

	if req.Options != nil {
		qType := question.Type
		if req.Type != nil {
			qType = *req.Type
		}
		if err := validateOptions(qType, req.Options); err != nil {
			return nil, err
		}
	}

	if err := applyQuestionReq(question, req); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(examID, questionID, instructorID uint) error {
	if err := s.ownedExam(examID, instructorID); err != nil {
		return err
	}
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if question.ExamID != examID {
		return util.ErrNotFound
	}
	return s.QuestionRepo.Delete(questionID)
}

func (s *QuestionService) ListQuestions(examID, instructorID uint) ([]model.Question, error) {
	if err := s.ownedExam(examID, instructorID); err != nil {
		return nil, err
	}
	return s.QuestionRepo.ListByExam(examID)
}

// stripCorrectFlags removes the correct markers from an options blob so
// students never see the key.
func stripCorrectFlags(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	var options []model.QuestionOption
	if err := json.Unmarshal(raw, &options); err != nil {
		return raw
	}
	type publicOption struct {
		Text string `json:"text"`
	}
	public := make([]publicOption, 0, len(options))
	for _, opt := range options {
		public = append(public, publicOption{Text: opt.Text})
	}
	out, err := json.Marshal(public)
	if err != nil {
		return raw
	}
	return out
}
