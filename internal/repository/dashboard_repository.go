package repository

import (
	"examen_backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

type ScoreStats struct {
	Average float64 `json:"average"`
	Best    float64 `json:"best"`
	Worst   float64 `json:"worst"`
	Total   int64   `json:"total"`
}

// InstructorScoreStats aggregates over completed results of the
// instructor's exams. Raw stored scores, no normalization: mixed-scale
// rows are the caller's concern.
func (r *DashboardRepository) InstructorScoreStats(instructorID uint) (*ScoreStats, error) {
	var stats ScoreStats
	err := r.DB.Model(&model.ExamResult{}).
		Select("COALESCE(AVG(exam_results.score),0) as average, COALESCE(MAX(exam_results.score),0) as best, COALESCE(MIN(exam_results.score),0) as worst, COUNT(exam_results.id) as total").
		Joins("JOIN exams ON exams.id = exam_results.exam_id AND exams.deleted_at IS NULL").
		Where("exams.instructor_id = ? AND exam_results.completed = ?", instructorID, true).
		Scan(&stats).Error
	return &stats, err
}

type LowPerformerRow struct {
	StudentID    uint    `json:"studentId"`
	Username     string  `json:"username"`
	AverageScore float64 `json:"averageScore"`
}

// ListLowPerformers returns students whose normalized average over the
// instructor's exams is below the canonical 3.0 pass band. Legacy 0-100
// rows are divided by 20 inside the aggregate so both scales average
// together.
func (r *DashboardRepository) ListLowPerformers(instructorID uint, limit int) ([]LowPerformerRow, error) {
	var rows []LowPerformerRow
	err := r.DB.Model(&model.ExamResult{}).
		Select("exam_results.student_id as student_id, users.username as username, AVG(CASE WHEN exam_results.score > 5.0 THEN exam_results.score / 20.0 ELSE exam_results.score END) as average_score").
		Joins("JOIN users ON users.id = exam_results.student_id AND users.deleted_at IS NULL").
		Joins("JOIN exams ON exams.id = exam_results.exam_id AND exams.deleted_at IS NULL").
		Where("exams.instructor_id = ? AND exam_results.completed = ?", instructorID, true).
		Group("exam_results.student_id, users.username").
		Having("AVG(CASE WHEN exam_results.score > 5.0 THEN exam_results.score / 20.0 ELSE exam_results.score END) < ?", 3.0).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ListInstructorScores returns every completed score for the
// instructor's exams, for distribution banding in the service layer.
func (r *DashboardRepository) ListInstructorScores(instructorID uint) ([]float64, error) {
	var scores []float64
	err := r.DB.Model(&model.ExamResult{}).
		Joins("JOIN exams ON exams.id = exam_results.exam_id AND exams.deleted_at IS NULL").
		Where("exams.instructor_id = ? AND exam_results.completed = ?", instructorID, true).
		Pluck("exam_results.score", &scores).Error
	return scores, err
}

type RecentResultRow struct {
	ResultID    uint    `json:"resultId"`
	ExamTitle   string  `json:"examTitle"`
	Username    string  `json:"username"`
	Score       float64 `json:"score"`
	SubmittedAt string  `json:"submittedAt"`
}

func (r *DashboardRepository) ListRecentResults(instructorID uint, limit int) ([]RecentResultRow, error) {
	var rows []RecentResultRow
	err := r.DB.Model(&model.ExamResult{}).
		Select("exam_results.id as result_id, exams.title as exam_title, users.username as username, exam_results.score as score, exam_results.submitted_at as submitted_at").
		Joins("JOIN exams ON exams.id = exam_results.exam_id AND exams.deleted_at IS NULL").
		Joins("JOIN users ON users.id = exam_results.student_id AND users.deleted_at IS NULL").
		Where("exams.instructor_id = ? AND exam_results.completed = ?", instructorID, true).
		Order("exam_results.submitted_at desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
