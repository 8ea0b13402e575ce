package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

// AttemptService owns the submission lifecycle: eligibility, grading,
// the at-most-one completed result invariant, revision requests and
// instructor feedback.
type AttemptService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	UserRepo     *repository.UserRepository
	Notifier     *NotificationService
}

func NewAttemptService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
) *AttemptService {
	return &AttemptService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		UserRepo:     userRepo,
		Notifier:     notifier,
	}
}

type SubmitAttemptReq struct {
	// Answers are keyed "question_<id>", the form-field convention the
	// exam page posts.
	Answers        map[string]string `json:"answers" binding:"required"`
	ElapsedSeconds int               `json:"elapsedSeconds"`
}

type SubmissionResult struct {
	ResultID       uint             `json:"resultId,omitempty"`
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Passed         bool             `json:"passed"`
	PracticeMode   bool             `json:"practiceMode"`
	PerQuestion    []GradedQuestion `json:"perQuestion,omitempty"`
}

// parseAnswerKeys strips the "question_" prefix off submitted form keys.
// Unparseable keys are dropped; the grader treats the question as
// unanswered.
func parseAnswerKeys(raw map[string]string) map[uint]string {
	answers := make(map[uint]string, len(raw))
	for key, value := range raw {
		idStr := strings.TrimPrefix(key, "question_")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}
		answers[uint(id)] = value
	}
	return answers
}

// SubmitAttempt grades a submission. In practice mode nothing is
// persisted and the full explanation set comes back; in graded mode one
// result row plus its answers are written atomically, and a concurrent
// duplicate loses against the (student, exam) unique index.
func (s *AttemptService) SubmitAttempt(examID, studentID uint, req SubmitAttemptReq, practice bool) (*SubmissionResult, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	assigned, err := s.ExamRepo.IsAssigned(examID, studentID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, util.ErrNotAssigned
	}

	if !practice {
		if _, err := s.ResultRepo.FindByStudentAndExam(studentID, examID); err == nil {
			return nil, util.ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if exam.Deadline != nil && exam.Deadline.Before(time.Now()) {
			return nil, util.ErrExpired
		}
	}

	questions, err := s.QuestionRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	summary := GradeAttempt(questions, parseAnswerKeys(req.Answers))

	out := &SubmissionResult{
		Score:          summary.Score,
		CorrectCount:   summary.CorrectCount,
		TotalQuestions: summary.TotalQuestions,
		Passed:         IsPassing(summary.Score, exam.PassingScore),
		PracticeMode:   practice,
	}

	if practice {
		out.PerQuestion = summary.PerQuestion
		return out, nil
	}

	now := time.Now()
	result := &model.ExamResult{
		ExamID:         examID,
		StudentID:      studentID,
		Score:          summary.Score,
		TotalPoints:    summary.TotalPoints,
		Completed:      true,
		SubmittedAt:    &now,
		ElapsedSeconds: req.ElapsedSeconds,
		PracticeMode:   false,
		RevisionState:  model.RevisionNone,
	}

	answers := make([]model.Answer, 0, len(summary.PerQuestion))
	for _, gq := range summary.PerQuestion {
		points := 0.0
		if gq.IsCorrect {
			points = float64(gq.Points)
		}
		answers = append(answers, model.Answer{
			ExamID:        examID,
			QuestionID:    gq.QuestionID,
			StudentID:     studentID,
			Text:          gq.SubmittedAnswer,
			IsCorrect:     gq.IsCorrect,
			PointsAwarded: points,
		})
	}

	if err := s.ResultRepo.CreateWithAnswers(result, answers); err != nil {
		return nil, err
	}

	out.ResultID = result.ID
	if exam.ShowAnswers {
		out.PerQuestion = summary.PerQuestion
	}
	return out, nil
}

// RequestRevision flags a result for instructor review, once. The owning
// instructor gets a deep-linked notification.
func (s *AttemptService) RequestRevision(resultID, studentID uint) error {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}

	if result.StudentID != studentID {
		return util.ErrForbidden
	}
	if result.Exam == nil {
		return util.ErrNotFound
	}
	if result.RevisionState != model.RevisionNone {
		return util.ErrAlreadyRequested
	}

	now := time.Now()
	result.RevisionState = model.RevisionRequested
	result.RevisionRequestedAt = &now
	if err := s.ResultRepo.Update(result); err != nil {
		return err
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return err
	}

	_, err = s.Notifier.Send(
		result.Exam.InstructorID,
		model.NotificationInfo,
		fmt.Sprintf("Revision requested: %s", result.Exam.Title),
		fmt.Sprintf("Student %s has requested a revision of their exam", student.Username),
		fmt.Sprintf("/teacher/results/%d/review", result.ID),
	)
	return err
}

// RecordInstructorFeedback stores commentary on a result. Writing
// feedback on a requested revision closes it; commentary is the de facto
// end of the revision cycle.
func (s *AttemptService) RecordInstructorFeedback(resultID, instructorID uint, comment, recommendations string) error {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}

	if result.Exam == nil || result.Exam.InstructorID != instructorID {
		return util.ErrForbidden
	}

	result.InstructorComment = comment
	result.Recommendations = recommendations
	if result.RevisionState == model.RevisionRequested {
		result.RevisionState = model.RevisionCompleted
	}
	return s.ResultRepo.Update(result)
}

type ResultDetail struct {
	Result  *model.ExamResult `json:"result"`
	Answers []model.Answer    `json:"answers"`
	Passed  bool              `json:"passed"`
}

// GetResultDetail returns a result with its answers. Students see their
// own; the exam's instructor sees all of the exam's.
func (s *AttemptService) GetResultDetail(resultID, actorID uint, role model.UserRole) (*ResultDetail, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	switch role {
	case model.Student:
		if result.StudentID != actorID {
			return nil, util.ErrForbidden
		}
	case model.Instructor:
		if result.Exam == nil || result.Exam.InstructorID != actorID {
			return nil, util.ErrForbidden
		}
	case model.Admin:
		// unrestricted
	default:
		return nil, util.ErrForbidden
	}

	answers, err := s.ResultRepo.ListAnswers(resultID)
	if err != nil {
		return nil, err
	}

	passed := false
	if result.Exam != nil {
		passed = IsPassing(result.Score, result.Exam.PassingScore)
	}

	return &ResultDetail{Result: result, Answers: answers, Passed: passed}, nil
}

type StudentResultsSummary struct {
	Results   []model.ExamResult `json:"results"`
	Total     int                `json:"total"`
	Average   float64            `json:"average"`
	Passed    int                `json:"passed"`
	BestScore float64            `json:"bestScore"`
}

// ListStudentResults returns a student's history with the aggregate
// figures the results page shows. Pass/fail is re-derived against the
// exam's current threshold, never stored.
func (s *AttemptService) ListStudentResults(studentID uint) (*StudentResultsSummary, error) {
	results, err := s.ResultRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	summary := &StudentResultsSummary{
		Results: results,
		Total:   len(results),
	}

	var sum float64
	for i := range results {
		r := &results[i]
		sum += r.Score
		if r.Score > summary.BestScore {
			summary.BestScore = r.Score
		}
		if r.Exam != nil && IsPassing(r.Score, r.Exam.PassingScore) {
			summary.Passed++
		}
	}
	if len(results) > 0 {
		summary.Average = Round2(sum / float64(len(results)))
	}

	return summary, nil
}
