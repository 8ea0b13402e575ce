package service

import (
	"errors"
	"testing"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/util"
)

func TestSubmitAttemptGraded(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	req := SubmitAttemptReq{Answers: answersFor(questions, 3), ElapsedSeconds: 240}
	out, err := svc.SubmitAttempt(exam.ID, student.ID, req, false)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}

	if out.Score != 3.75 {
		t.Errorf("Score = %v, want 3.75", out.Score)
	}
	if !out.Passed {
		t.Error("3.75 against a threshold of 60 should pass")
	}
	if out.ResultID == 0 {
		t.Fatal("graded submission did not persist a result")
	}
	if len(out.PerQuestion) != 4 {
		t.Errorf("PerQuestion length = %d, want 4 (exam shows answers)", len(out.PerQuestion))
	}

	var resultCount, answerCount int64
	db.Model(&model.ExamResult{}).Count(&resultCount)
	db.Model(&model.Answer{}).Count(&answerCount)
	if resultCount != 1 {
		t.Errorf("result rows = %d, want 1", resultCount)
	}
	if answerCount != 4 {
		t.Errorf("answer rows = %d, want 4", answerCount)
	}
}

func TestSubmitAttemptSecondGradedConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	req := SubmitAttemptReq{Answers: answersFor(questions, 4)}
	if _, err := svc.SubmitAttempt(exam.ID, student.ID, req, false); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	_, err := svc.SubmitAttempt(exam.ID, student.ID, req, false)
	if !errors.Is(err, util.ErrConflict) {
		t.Fatalf("second submission err = %v, want ErrConflict", err)
	}

	var resultCount int64
	db.Model(&model.ExamResult{}).Count(&resultCount)
	if resultCount != 1 {
		t.Errorf("result rows = %d, want 1", resultCount)
	}
}

func TestSubmitAttemptPracticePersistsNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	req := SubmitAttemptReq{Answers: answersFor(questions, 2)}
	for i := 0; i < 3; i++ {
		out, err := svc.SubmitAttempt(exam.ID, student.ID, req, true)
		if err != nil {
			t.Fatalf("practice run %d: %v", i, err)
		}
		if !out.PracticeMode {
			t.Error("PracticeMode not flagged")
		}
		if out.Score != 2.5 {
			t.Errorf("Score = %v, want 2.5", out.Score)
		}
		if len(out.PerQuestion) != 4 {
			t.Errorf("practice PerQuestion length = %d, want 4", len(out.PerQuestion))
		}
	}

	var resultCount, answerCount int64
	db.Model(&model.ExamResult{}).Count(&resultCount)
	db.Model(&model.Answer{}).Count(&answerCount)
	if resultCount != 0 || answerCount != 0 {
		t.Errorf("practice persisted %d results, %d answers; want none", resultCount, answerCount)
	}

	// Practice runs must not block the graded attempt.
	if _, err := svc.SubmitAttempt(exam.ID, student.ID, req, false); err != nil {
		t.Fatalf("graded submission after practice: %v", err)
	}
}

func TestSubmitAttemptEligibility(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	outsider := createUser(t, db, "student2", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	req := SubmitAttemptReq{Answers: answersFor(questions, 4)}

	t.Run("unassigned student is rejected", func(t *testing.T) {
		_, err := svc.SubmitAttempt(exam.ID, outsider.ID, req, false)
		if !errors.Is(err, util.ErrNotAssigned) {
			t.Fatalf("err = %v, want ErrNotAssigned", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		_, err := svc.SubmitAttempt(exam.ID+999, student.ID, req, false)
		if !errors.Is(err, util.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("past deadline rejects graded but allows practice", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		exam.Deadline = &past
		if err := db.Save(exam).Error; err != nil {
			t.Fatalf("set deadline: %v", err)
		}

		if _, err := svc.SubmitAttempt(exam.ID, student.ID, req, false); !errors.Is(err, util.ErrExpired) {
			t.Fatalf("graded err = %v, want ErrExpired", err)
		}
		if _, err := svc.SubmitAttempt(exam.ID, student.ID, req, true); err != nil {
			t.Fatalf("practice after deadline: %v", err)
		}
	})
}

func TestRequestRevision(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	other := createUser(t, db, "student2", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	req := SubmitAttemptReq{Answers: answersFor(questions, 1)}
	out, err := svc.SubmitAttempt(exam.ID, student.ID, req, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	t.Run("only the owner may request", func(t *testing.T) {
		if err := svc.RequestRevision(out.ResultID, other.ID); !errors.Is(err, util.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("first request succeeds and notifies the instructor", func(t *testing.T) {
		if err := svc.RequestRevision(out.ResultID, student.ID); err != nil {
			t.Fatalf("RequestRevision: %v", err)
		}

		var result model.ExamResult
		if err := db.First(&result, out.ResultID).Error; err != nil {
			t.Fatalf("reload result: %v", err)
		}
		if result.RevisionState != model.RevisionRequested {
			t.Errorf("RevisionState = %q, want requested", result.RevisionState)
		}
		if result.RevisionRequestedAt == nil {
			t.Error("RevisionRequestedAt not stamped")
		}

		var notifications []model.Notification
		db.Where("user_id = ?", instructor.ID).Find(&notifications)
		if len(notifications) != 1 {
			t.Fatalf("instructor notifications = %d, want 1", len(notifications))
		}
	})

	t.Run("second request conflicts", func(t *testing.T) {
		if err := svc.RequestRevision(out.ResultID, student.ID); !errors.Is(err, util.ErrAlreadyRequested) {
			t.Fatalf("err = %v, want ErrAlreadyRequested", err)
		}

		var notifications []model.Notification
		db.Where("user_id = ?", instructor.ID).Find(&notifications)
		if len(notifications) != 1 {
			t.Errorf("instructor notifications = %d, want still 1", len(notifications))
		}
	})
}

func TestRecordInstructorFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	intruder := createUser(t, db, "teacher2", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	out, err := svc.SubmitAttempt(exam.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questions, 2)}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.RequestRevision(out.ResultID, student.ID); err != nil {
		t.Fatalf("request revision: %v", err)
	}

	t.Run("foreign instructor is rejected", func(t *testing.T) {
		err := svc.RecordInstructorFeedback(out.ResultID, intruder.ID, "nope", "")
		if !errors.Is(err, util.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("feedback closes the open revision", func(t *testing.T) {
		err := svc.RecordInstructorFeedback(out.ResultID, instructor.ID, "Review unit 3", "Practice more fractions")
		if err != nil {
			t.Fatalf("RecordInstructorFeedback: %v", err)
		}

		var result model.ExamResult
		if err := db.First(&result, out.ResultID).Error; err != nil {
			t.Fatalf("reload result: %v", err)
		}
		if result.InstructorComment != "Review unit 3" {
			t.Errorf("InstructorComment = %q", result.InstructorComment)
		}
		if result.Recommendations != "Practice more fractions" {
			t.Errorf("Recommendations = %q", result.Recommendations)
		}
		if result.RevisionState != model.RevisionCompleted {
			t.Errorf("RevisionState = %q, want completed", result.RevisionState)
		}
	})
}

func TestGetResultDetailAccess(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	intruder := createUser(t, db, "teacher2", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	other := createUser(t, db, "student2", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	out, err := svc.SubmitAttempt(exam.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questions, 4)}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	cases := []struct {
		name    string
		actorID uint
		role    model.UserRole
		wantErr error
	}{
		{"owner student", student.ID, model.Student, nil},
		{"other student", other.ID, model.Student, util.ErrForbidden},
		{"owning instructor", instructor.ID, model.Instructor, nil},
		{"foreign instructor", intruder.ID, model.Instructor, util.ErrForbidden},
		{"admin", 999, model.Admin, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detail, err := svc.GetResultDetail(out.ResultID, tc.actorID, tc.role)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetResultDetail: %v", err)
			}
			if len(detail.Answers) != 4 {
				t.Errorf("answers = %d, want 4", len(detail.Answers))
			}
			if !detail.Passed {
				t.Error("perfect score should pass")
			}
		})
	}
}

func TestListStudentResults(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)

	examA, questionsA := seedExam(t, db, instructor.ID, student.ID)
	examB, questionsB := seedExam(t, db, instructor.ID, student.ID)

	if _, err := svc.SubmitAttempt(examA.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questionsA, 4)}, false); err != nil {
		t.Fatalf("submit A: %v", err)
	}
	if _, err := svc.SubmitAttempt(examB.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questionsB, 1)}, false); err != nil {
		t.Fatalf("submit B: %v", err)
	}

	summary, err := svc.ListStudentResults(student.ID)
	if err != nil {
		t.Fatalf("ListStudentResults: %v", err)
	}

	if summary.Total != 2 {
		t.Errorf("Total = %d, want 2", summary.Total)
	}
	if summary.BestScore != 5.0 {
		t.Errorf("BestScore = %v, want 5.0", summary.BestScore)
	}
	// 5.0 passes, 1.25 does not.
	if summary.Passed != 1 {
		t.Errorf("Passed = %d, want 1", summary.Passed)
	}
	if summary.Average != 3.13 {
		t.Errorf("Average = %v, want 3.13", summary.Average)
	}
}
