package service

import (
	"errors"
	"strings"
	"testing"

	"examen_backend/internal/model"
	"examen_backend/internal/util"
)

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	if !strings.HasPrefix(code, "IFCES-") {
		t.Errorf("code %q lacks the IFCES- prefix", code)
	}
	if len(code) != len("IFCES-")+8 {
		t.Errorf("code %q has the wrong length", code)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("code %q is not upper case", code)
	}
}

func TestIssueOrFetchIdempotent(t *testing.T) {
	db := newTestDB(t)
	attempts := newAttemptService(db)
	certs := newCertificateService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	out, err := attempts.SubmitAttempt(exam.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questions, 4)}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	first, created, err := certs.IssueOrFetch(out.ResultID, student.ID)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	if !created {
		t.Error("first call should mint a new certificate")
	}
	if first.Score != out.Score {
		t.Errorf("frozen score = %v, want %v", first.Score, out.Score)
	}

	second, created, err := certs.IssueOrFetch(out.ResultID, student.ID)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if created {
		t.Error("second call must not mint again")
	}
	if second.VerificationCode != first.VerificationCode {
		t.Errorf("codes differ across calls: %q vs %q", first.VerificationCode, second.VerificationCode)
	}

	var count int64
	db.Model(&model.Certificate{}).Count(&count)
	if count != 1 {
		t.Errorf("certificate rows = %d, want 1", count)
	}
}

func TestIssueOrFetchRejections(t *testing.T) {
	db := newTestDB(t)
	attempts := newAttemptService(db)
	certs := newCertificateService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	other := createUser(t, db, "student2", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	// One of four correct: 1.25 against a threshold of 60.
	out, err := attempts.SubmitAttempt(exam.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questions, 1)}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	t.Run("failing result is not eligible", func(t *testing.T) {
		_, _, err := certs.IssueOrFetch(out.ResultID, student.ID)
		if !errors.Is(err, util.ErrNotEligible) {
			t.Fatalf("err = %v, want ErrNotEligible", err)
		}
	})

	t.Run("only the owner may request issuance", func(t *testing.T) {
		_, _, err := certs.IssueOrFetch(out.ResultID, other.ID)
		if !errors.Is(err, util.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown result", func(t *testing.T) {
		_, _, err := certs.IssueOrFetch(out.ResultID+999, student.ID)
		if !errors.Is(err, util.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestCertificateLookup(t *testing.T) {
	db := newTestDB(t)
	attempts := newAttemptService(db)
	certs := newCertificateService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	exam, questions := seedExam(t, db, instructor.ID, student.ID)

	out, err := attempts.SubmitAttempt(exam.ID, student.ID, SubmitAttemptReq{Answers: answersFor(questions, 4)}, false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cert, _, err := certs.IssueOrFetch(out.ResultID, student.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	t.Run("known code resolves", func(t *testing.T) {
		found, err := certs.Lookup(cert.VerificationCode)
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if found.ResultID != out.ResultID {
			t.Errorf("ResultID = %d, want %d", found.ResultID, out.ResultID)
		}
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := certs.Lookup("IFCES-DOESNOTX")
		if !errors.Is(err, util.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
