package service

import (
	"testing"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
)

func TestBandScore(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   GradeDistribution
	}{
		{
			"canonical bands",
			[]float64{5.0, 4.5, 4.0, 3.5, 3.2, 3.0, 2.9, 0},
			GradeDistribution{Excellent: 2, Good: 2, Acceptable: 2, Insufficient: 2},
		},
		{
			"legacy bands",
			[]float64{100, 90, 80, 70, 65, 60, 59, 10},
			GradeDistribution{Excellent: 2, Good: 2, Acceptable: 2, Insufficient: 2},
		},
		{
			"mixed scales band consistently",
			[]float64{4.5, 90, 3.5, 70, 3.0, 60, 2.0, 40},
			GradeDistribution{Excellent: 2, Good: 2, Acceptable: 2, Insufficient: 2},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dist GradeDistribution
			for _, score := range tc.scores {
				BandScore(&dist, score)
			}
			if dist != tc.want {
				t.Errorf("distribution = %+v, want %+v", dist, tc.want)
			}
		})
	}
}

func TestStudentOverview(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResultRepository(db),
		repository.NewUserRepository(db),
		repository.NewCertificateRepository(db),
		repository.NewDashboardRepository(db),
	)
	attempts := newAttemptService(db)

	instructor := createUser(t, db, "teacher1", model.Instructor)
	student := createUser(t, db, "student1", model.Student)

	done, doneQs := seedExam(t, db, instructor.ID, student.ID)
	seedExam(t, db, instructor.ID, student.ID)

	if _, err := attempts.SubmitAttempt(done.ID, student.ID, SubmitAttemptReq{Answers: answersFor(doneQs, 4)}, false); err != nil {
		t.Fatalf("submit: %v", err)
	}

	dash, err := svc.StudentOverview(student.ID)
	if err != nil {
		t.Fatalf("StudentOverview: %v", err)
	}

	if dash.TotalAssigned != 2 {
		t.Errorf("TotalAssigned = %d, want 2", dash.TotalAssigned)
	}
	if dash.Completed != 1 {
		t.Errorf("Completed = %d, want 1", dash.Completed)
	}
	if dash.Average != 5.0 {
		t.Errorf("Average = %v, want 5.0", dash.Average)
	}
}
