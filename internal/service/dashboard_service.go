package service

import (
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
)

type DashboardService struct {
	ExamRepo      *repository.ExamRepository
	QuestionRepo  *repository.QuestionRepository
	ResultRepo    *repository.ResultRepository
	UserRepo      *repository.UserRepository
	CertRepo      *repository.CertificateRepository
	DashboardRepo *repository.DashboardRepository
}

func NewDashboardService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	userRepo *repository.UserRepository,
	certRepo *repository.CertificateRepository,
	dashboardRepo *repository.DashboardRepository,
) *DashboardService {
	return &DashboardService{
		ExamRepo:      examRepo,
		QuestionRepo:  questionRepo,
		ResultRepo:    resultRepo,
		UserRepo:      userRepo,
		CertRepo:      certRepo,
		DashboardRepo: dashboardRepo,
	}
}

type StudentDashboard struct {
	TotalAssigned int64        `json:"totalAssigned"`
	Completed     int64        `json:"completed"`
	Average       float64      `json:"average"`
	Certificates  int64        `json:"certificates"`
	Upcoming      []model.Exam `json:"upcoming"`
}

// StudentOverview aggregates the student landing page: assignment and
// completion counts, raw-score average and the next deadlines still
// open.
func (s *DashboardService) StudentOverview(studentID uint) (*StudentDashboard, error) {
	exams, err := s.ExamRepo.ListAssignedExams(studentID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ResultRepo.CountByStudent(studentID)
	if err != nil {
		return nil, err
	}

	results, err := s.ResultRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	var sum float64
	for i := range results {
		sum += results[i].Score
	}
	average := 0.0
	if len(results) > 0 {
		average = Round2(sum / float64(len(results)))
	}

	certificates, err := s.CertRepo.CountByStudent(studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming := make([]model.Exam, 0, 5)
	for i := range exams {
		exam := exams[i]
		if exam.Deadline == nil || exam.Deadline.Before(now) {
			continue
		}
		count, err := s.ResultRepo.CountByStudentAndExam(studentID, exam.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		upcoming = append(upcoming, exam)
		if len(upcoming) == 5 {
			break
		}
	}

	return &StudentDashboard{
		TotalAssigned: int64(len(exams)),
		Completed:     completed,
		Average:       average,
		Certificates:  certificates,
		Upcoming:      upcoming,
	}, nil
}

type InstructorDashboard struct {
	TotalExams     int64                        `json:"totalExams"`
	TotalQuestions int64                        `json:"totalQuestions"`
	TotalStudents  int64                        `json:"totalStudents"`
	ScoreStats     *repository.ScoreStats       `json:"scoreStats"`
	RecentResults  []repository.RecentResultRow `json:"recentResults"`
	LowPerformers  []repository.LowPerformerRow `json:"lowPerformers"`
}

func (s *DashboardService) InstructorOverview(instructorID uint) (*InstructorDashboard, error) {
	totalExams, err := s.ExamRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.QuestionRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.UserRepo.CountActiveStudents()
	if err != nil {
		return nil, err
	}
	stats, err := s.DashboardRepo.InstructorScoreStats(instructorID)
	if err != nil {
		return nil, err
	}
	recent, err := s.DashboardRepo.ListRecentResults(instructorID, 10)
	if err != nil {
		return nil, err
	}
	low, err := s.DashboardRepo.ListLowPerformers(instructorID, 5)
	if err != nil {
		return nil, err
	}

	return &InstructorDashboard{
		TotalExams:     totalExams,
		TotalQuestions: totalQuestions,
		TotalStudents:  totalStudents,
		ScoreStats:     stats,
		RecentResults:  recent,
		LowPerformers:  low,
	}, nil
}

type GradeDistribution struct {
	Excellent    int `json:"excellent"`
	Good         int `json:"good"`
	Acceptable   int `json:"acceptable"`
	Insufficient int `json:"insufficient"`
}

// BandScore places one stored score in a distribution band. Legacy
// 0-100 rows band on the legacy cutoffs, canonical rows on the 0-5
// cutoffs; the two sets of bounds are equivalent under normalization.
func BandScore(dist *GradeDistribution, score float64) {
	if score > 5.0 {
		switch {
		case score >= 90:
			dist.Excellent++
		case score >= 70:
			dist.Good++
		case score >= 60:
			dist.Acceptable++
		default:
			dist.Insufficient++
		}
		return
	}
	switch {
	case score >= 4.5:
		dist.Excellent++
	case score >= 3.5:
		dist.Good++
	case score >= 3.0:
		dist.Acceptable++
	default:
		dist.Insufficient++
	}
}

type ExamReport struct {
	TotalExams       int64             `json:"totalExams"`
	TotalSubmissions int               `json:"totalSubmissions"`
	Distribution     GradeDistribution `json:"distribution"`
}

func (s *DashboardService) ExamReport(instructorID uint) (*ExamReport, error) {
	totalExams, err := s.ExamRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	scores, err := s.DashboardRepo.ListInstructorScores(instructorID)
	if err != nil {
		return nil, err
	}

	report := &ExamReport{
		TotalExams:       totalExams,
		TotalSubmissions: len(scores),
	}
	for _, score := range scores {
		BandScore(&report.Distribution, score)
	}
	return report, nil
}
