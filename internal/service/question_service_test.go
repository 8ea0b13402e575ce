package service

import (
	"errors"
	"testing"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"
)

func TestValidateOptions(t *testing.T) {
	cases := []struct {
		name    string
		qType   model.QuestionType
		options []model.QuestionOption
		wantErr bool
	}{
		{"valid single correct", model.MultipleChoice, []model.QuestionOption{{Text: "A"}, {Text: "B", Correct: true}}, false},
		{"too few options", model.MultipleChoice, []model.QuestionOption{{Text: "A", Correct: true}}, true},
		{"no correct option", model.MultipleChoice, []model.QuestionOption{{Text: "A"}, {Text: "B"}}, true},
		{"two correct options", model.MultipleChoice, []model.QuestionOption{{Text: "A", Correct: true}, {Text: "B", Correct: true}}, true},
		{"true false skips option checks", model.TrueFalse, nil, false},
		{"open ended skips option checks", model.OpenEnded, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateOptions(tc.qType, tc.options)
			if tc.wantErr && !errors.Is(err, util.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
		})
	}
}

func TestStripCorrectFlags(t *testing.T) {
	t.Run("flags are removed, text survives", func(t *testing.T) {
		in := []byte(`[{"text":"A","correct":false},{"text":"B","correct":true}]`)
		got := string(stripCorrectFlags(in))
		want := `[{"text":"A"},{"text":"B"}]`
		if got != want {
			t.Errorf("stripCorrectFlags = %s, want %s", got, want)
		}
	})

	t.Run("empty input passes through", func(t *testing.T) {
		if got := stripCorrectFlags(nil); got != nil {
			t.Errorf("stripCorrectFlags(nil) = %s, want nil", got)
		}
	})
}

func TestQuestionExamScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), repository.NewExamRepository(db))

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)
	examA, questionsA := seedExam(t, db, instructor.ID, student.ID)
	examB, _ := seedExam(t, db, instructor.ID, student.ID)

	// A question addressed through the wrong exam must not resolve.
	_, err := svc.UpdateQuestion(examB.ID, questionsA[0].ID, instructor.ID, QuestionReq{})
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("cross-exam update err = %v, want ErrNotFound", err)
	}

	if err := svc.DeleteQuestion(examB.ID, questionsA[0].ID, instructor.ID); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("cross-exam delete err = %v, want ErrNotFound", err)
	}

	questions, err := svc.ListQuestions(examA.ID, instructor.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 4 {
		t.Errorf("questions = %d, want 4", len(questions))
	}
}
