package service

import (
	"errors"
	"math/rand"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	UserRepo     *repository.UserRepository
}

func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	userRepo *repository.UserRepository,
) *ExamService {
	return &ExamService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		UserRepo:     userRepo,
	}
}

type ExamReq struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	CategoryID       *uint      `json:"categoryId"`
	DurationMinutes  *int       `json:"durationMinutes"`
	Deadline         *time.Time `json:"deadline"`
	MaxAttempts      *int       `json:"maxAttempts"`
	ShowAnswers      *bool      `json:"showAnswers"`
	ShuffleQuestions *bool      `json:"shuffleQuestions"`
	PassingScore     *float64   `json:"passingScore"`
}

func (s *ExamService) CreateExam(instructorID uint, req ExamReq) (*model.Exam, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.ErrValidation
	}

	exam := &model.Exam{
		Title:        *req.Title,
		InstructorID: instructorID,
		PassingScore: DefaultPassingScore,
	}
	applyExamReq(exam, req)

	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func applyExamReq(exam *model.Exam, req ExamReq) {
	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.CategoryID != nil {
		exam.CategoryID = req.CategoryID
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.Deadline != nil {
		exam.Deadline = req.Deadline
	}
	if req.MaxAttempts != nil {
		exam.MaxAttempts = *req.MaxAttempts
	}
	if req.ShowAnswers != nil {
		exam.ShowAnswers = *req.ShowAnswers
	}
	if req.ShuffleQuestions != nil {
		exam.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
}

// findOwnedExam loads an exam and checks the acting instructor owns it.
func (s *ExamService) findOwnedExam(examID, instructorID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if exam.InstructorID != instructorID {
		return nil, util.ErrForbidden
	}
	return exam, nil
}

func (s *ExamService) UpdateExam(examID, instructorID uint, req ExamReq) (*model.Exam, error) {
	exam, err := s.findOwnedExam(examID, instructorID)
	if err != nil {
		return nil, err
	}
	applyExamReq(exam, req)
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Publish makes an exam visible to assigned students. A zero-question
// exam cannot be published.
func (s *ExamService) Publish(examID, instructorID uint) (*model.Exam, error) {
	exam, err := s.findOwnedExam(examID, instructorID)
	if err != nil {
		return nil, err
	}

	count, err := s.QuestionRepo.CountByExam(examID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, util.ErrValidation
	}

	exam.Published = true
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) DeleteExam(examID, instructorID uint) error {
	if _, err := s.findOwnedExam(examID, instructorID); err != nil {
		return err
	}
	return s.ExamRepo.Delete(examID)
}

func (s *ExamService) GetExam(examID, instructorID uint) (*model.Exam, []model.Question, error) {
	exam, err := s.findOwnedExam(examID, instructorID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.QuestionRepo.ListByExam(examID)
	if err != nil {
		return nil, nil, err
	}
	return exam, questions, nil
}

func (s *ExamService) ListByInstructor(instructorID uint) ([]model.Exam, error) {
	return s.ExamRepo.ListByInstructor(instructorID)
}

func (s *ExamService) AssignStudent(examID, instructorID, studentID uint) error {
	if _, err := s.findOwnedExam(examID, instructorID); err != nil {
		return err
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if student.Role != model.Student || !student.IsActive {
		return util.ErrValidation
	}

	return s.ExamRepo.Assign(examID, studentID)
}

func (s *ExamService) UnassignStudent(examID, instructorID, studentID uint) error {
	if _, err := s.findOwnedExam(examID, instructorID); err != nil {
		return err
	}
	return s.ExamRepo.Unassign(examID, studentID)
}

func (s *ExamService) ListAssignedStudents(examID, instructorID uint) ([]model.User, error) {
	if _, err := s.findOwnedExam(examID, instructorID); err != nil {
		return nil, err
	}
	return s.ExamRepo.ListAssignedStudents(examID)
}

type ExamStatus string

const (
	ExamAvailable ExamStatus = "available"
	ExamExpiring  ExamStatus = "expiring"
	ExamExpired   ExamStatus = "expired"
	ExamCompleted ExamStatus = "completed"
)

type AssignedExamInfo struct {
	Exam          model.Exam `json:"exam"`
	Status        ExamStatus `json:"status"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	ResultID      uint       `json:"resultId,omitempty"`
	DaysRemaining *int       `json:"daysRemaining,omitempty"`
}

// ListAssignedExams returns a student's assigned exams with their
// derived state: completed beats expired, and exams within three days of
// the deadline are flagged as expiring.
func (s *ExamService) ListAssignedExams(studentID uint) ([]AssignedExamInfo, error) {
	exams, err := s.ExamRepo.ListAssignedExams(studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	infos := make([]AssignedExamInfo, 0, len(exams))
	for i := range exams {
		exam := exams[i]
		info := AssignedExamInfo{Exam: exam, Status: ExamAvailable}

		result, err := s.ResultRepo.FindByStudentAndExam(studentID, exam.ID)
		switch {
		case err == nil:
			info.Status = ExamCompleted
			info.CompletedAt = result.SubmittedAt
			info.ResultID = result.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		case exam.Deadline != nil && exam.Deadline.Before(now):
			info.Status = ExamExpired
		case exam.Deadline != nil:
			days := int(exam.Deadline.Sub(now).Hours() / 24)
			info.DaysRemaining = &days
			if days <= 3 {
				info.Status = ExamExpiring
			}
		}

		infos = append(infos, info)
	}
	return infos, nil
}

// GetExamForTaking returns what the exam page needs: questions without
// answer keys. The caller must be assigned; completed and overdue exams
// are rejected the same way a submission would be.
func (s *ExamService) GetExamForTaking(examID, studentID uint) (*model.Exam, []model.Question, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrNotFound
		}
		return nil, nil, err
	}

	assigned, err := s.ExamRepo.IsAssigned(examID, studentID)
	if err != nil {
		return nil, nil, err
	}
	if !assigned {
		return nil, nil, util.ErrNotAssigned
	}

	if _, err := s.ResultRepo.FindByStudentAndExam(studentID, examID); err == nil {
		return nil, nil, util.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if exam.Deadline != nil && exam.Deadline.Before(time.Now()) {
		return nil, nil, util.ErrExpired
	}

	questions, err := s.QuestionRepo.ListByExam(examID)
	if err != nil {
		return nil, nil, err
	}

	// Strip answer keys before the questions leave the service.
	for i := range questions {
		questions[i].CorrectAnswer = ""
		questions[i].Options = stripCorrectFlags(questions[i].Options)
	}

	if exam.ShuffleQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	return exam, questions, nil
}
