package service

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newAttemptService(db *gorm.DB) *AttemptService {
	notifier := NewNotificationService(repository.NewNotificationRepository(db, nil))
	return NewAttemptService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResultRepository(db),
		repository.NewUserRepository(db),
		notifier,
	)
}

func newCertificateService(db *gorm.DB) *CertificateService {
	notifier := NewNotificationService(repository.NewNotificationRepository(db, nil))
	return NewCertificateService(
		repository.NewCertificateRepository(db),
		repository.NewResultRepository(db),
		notifier,
	)
}

func mustOptions(t *testing.T, options []model.QuestionOption) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(options)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	return raw
}

func createUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// seedExam builds a published four-question multiple-choice exam with the
// student already assigned. Option B is correct on every question.
func seedExam(t *testing.T, db *gorm.DB, instructorID, studentID uint) (*model.Exam, []model.Question) {
	t.Helper()

	exam := &model.Exam{
		Title:        "Fractions",
		InstructorID: instructorID,
		Published:    true,
		PassingScore: 60,
		ShowAnswers:  true,
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("create exam: %v", err)
	}

	questions := make([]model.Question, 0, 4)
	for i := 0; i < 4; i++ {
		q := model.Question{
			ExamID: exam.ID,
			Text:   fmt.Sprintf("Question %d", i+1),
			Type:   model.MultipleChoice,
			Options: mustOptions(t, []model.QuestionOption{
				{Text: "A", Correct: false},
				{Text: "B", Correct: true},
				{Text: "C", Correct: false},
			}),
			Points: 1,
			Order:  i,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, q)
	}

	assignment := &model.ExamAssignment{ExamID: exam.ID, StudentID: studentID, AssignedAt: time.Now()}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("assign student: %v", err)
	}

	return exam, questions
}

// answersFor builds a submission answering the first n questions
// correctly and the rest wrong.
func answersFor(questions []model.Question, correctCount int) map[string]string {
	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		value := "A"
		if i < correctCount {
			value = "B"
		}
		answers[fmt.Sprintf("question_%d", q.ID)] = value
	}
	return answers
}
