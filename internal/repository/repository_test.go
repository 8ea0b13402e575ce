package repository

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/util"
	"examen_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"mysql message", errors.New("Error 1062: Duplicate entry '3-7' for key 'idx_result_exam_student'"), true},
		{"sqlite message", errors.New("UNIQUE constraint failed: exam_results.exam_id, exam_results.student_id"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKey(tc.err); got != tc.want {
				t.Errorf("IsDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestResultUniquePerStudentAndExam(t *testing.T) {
	db := newTestDB(t)
	results := NewResultRepository(db)

	now := time.Now()
	first := &model.ExamResult{ExamID: 1, StudentID: 2, Score: 4.0, Completed: true, SubmittedAt: &now}
	answers := []model.Answer{
		{ExamID: 1, QuestionID: 10, StudentID: 2, Text: "B", IsCorrect: true, PointsAwarded: 1},
		{ExamID: 1, QuestionID: 11, StudentID: 2, Text: "A"},
	}
	if err := results.CreateWithAnswers(first, answers); err != nil {
		t.Fatalf("first CreateWithAnswers: %v", err)
	}

	second := &model.ExamResult{ExamID: 1, StudentID: 2, Score: 5.0, Completed: true, SubmittedAt: &now}
	err := results.CreateWithAnswers(second, []model.Answer{{ExamID: 1, QuestionID: 10, StudentID: 2, Text: "B"}})
	if !errors.Is(err, util.ErrConflict) {
		t.Fatalf("duplicate err = %v, want ErrConflict", err)
	}

	var resultCount, answerCount int64
	db.Model(&model.ExamResult{}).Count(&resultCount)
	db.Model(&model.Answer{}).Count(&answerCount)
	if resultCount != 1 {
		t.Errorf("result rows = %d, want 1", resultCount)
	}
	// The losing transaction must leave no answers behind.
	if answerCount != 2 {
		t.Errorf("answer rows = %d, want 2", answerCount)
	}

	t.Run("different exam is fine", func(t *testing.T) {
		other := &model.ExamResult{ExamID: 2, StudentID: 2, Score: 3.0, Completed: true, SubmittedAt: &now}
		if err := results.CreateWithAnswers(other, nil); err != nil {
			t.Fatalf("CreateWithAnswers: %v", err)
		}
	})
}

func TestCertificateUniqueness(t *testing.T) {
	db := newTestDB(t)
	certs := NewCertificateRepository(db)

	base := model.Certificate{StudentID: 1, ExamID: 1, ResultID: 1, VerificationCode: "IFCES-AAAA1111", IssuedAt: time.Now(), Score: 4.5}
	if err := certs.Create(&base); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("one certificate per result", func(t *testing.T) {
		dup := model.Certificate{StudentID: 1, ExamID: 1, ResultID: 1, VerificationCode: "IFCES-BBBB2222", IssuedAt: time.Now(), Score: 4.5}
		if err := certs.Create(&dup); !IsDuplicateKey(err) {
			t.Fatalf("err = %v, want duplicate key", err)
		}
	})

	t.Run("codes are globally unique", func(t *testing.T) {
		clash := model.Certificate{StudentID: 2, ExamID: 2, ResultID: 2, VerificationCode: "IFCES-AAAA1111", IssuedAt: time.Now(), Score: 5.0}
		if err := certs.Create(&clash); !IsDuplicateKey(err) {
			t.Fatalf("err = %v, want duplicate key", err)
		}
	})

	t.Run("lookup by code", func(t *testing.T) {
		found, err := certs.FindByCode("IFCES-AAAA1111")
		if err != nil {
			t.Fatalf("FindByCode: %v", err)
		}
		if found.ResultID != 1 {
			t.Errorf("ResultID = %d, want 1", found.ResultID)
		}
	})
}

func TestExamDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	exams := NewExamRepository(db)

	exam := &model.Exam{Title: "Doomed", InstructorID: 1}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("create exam: %v", err)
	}
	seed := []interface{}{
		&model.Question{ExamID: exam.ID, Text: "q", Type: model.TrueFalse, CorrectAnswer: "true"},
		&model.ExamAssignment{ExamID: exam.ID, StudentID: 5, AssignedAt: time.Now()},
		&model.ExamResult{ExamID: exam.ID, StudentID: 5, Score: 4.0, Completed: true},
		&model.Answer{ExamID: exam.ID, QuestionID: 1, StudentID: 5, ResultID: 1, Text: "true"},
		&model.Certificate{ExamID: exam.ID, StudentID: 5, ResultID: 1, VerificationCode: "IFCES-CCCC3333", IssuedAt: time.Now(), Score: 4.0},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	if err := exams.Delete(exam.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tables := map[string]interface{}{
		"exams":        &model.Exam{},
		"questions":    &model.Question{},
		"assignments":  &model.ExamAssignment{},
		"results":      &model.ExamResult{},
		"answers":      &model.Answer{},
		"certificates": &model.Certificate{},
	}
	for table, m := range tables {
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s rows after delete = %d, want 0", table, count)
		}
	}
}

func TestAssignIdempotentAndReassignable(t *testing.T) {
	db := newTestDB(t)
	exams := NewExamRepository(db)

	if err := exams.Assign(1, 2); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := exams.Assign(1, 2); err != nil {
		t.Fatalf("second Assign: %v", err)
	}

	var count int64
	db.Model(&model.ExamAssignment{}).Count(&count)
	if count != 1 {
		t.Fatalf("assignment rows = %d, want 1", count)
	}

	if err := exams.Unassign(1, 2); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	assigned, err := exams.IsAssigned(1, 2)
	if err != nil {
		t.Fatalf("IsAssigned: %v", err)
	}
	if assigned {
		t.Error("still assigned after Unassign")
	}

	// Unassigning must not poison the unique index for a later re-assign.
	if err := exams.Assign(1, 2); err != nil {
		t.Fatalf("re-Assign: %v", err)
	}
	assigned, err = exams.IsAssigned(1, 2)
	if err != nil {
		t.Fatalf("IsAssigned: %v", err)
	}
	if !assigned {
		t.Error("re-assign did not take")
	}
}
