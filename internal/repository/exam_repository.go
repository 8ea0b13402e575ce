package repository

import (
	"time"

	"examen_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Category").First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) ListByInstructor(instructorID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Preload("Category").
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&exams).Error
	return exams, err
}

// Delete removes an exam and everything hanging off it. The cascade is an
// explicit multi-step transaction: questions, answers, results, certificates
// and assignments go with the exam.
func (r *ExamRepository) Delete(examID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", examID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", examID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", examID).Delete(&model.Certificate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", examID).Delete(&model.ExamResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", examID).Delete(&model.ExamAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, examID).Error
	})
}

func (r *ExamRepository) Assign(examID, studentID uint) error {
	assignment := &model.ExamAssignment{
		ExamID:     examID,
		StudentID:  studentID,
		AssignedAt: time.Now(),
	}
	err := r.DB.Create(assignment).Error
	if IsDuplicateKey(err) {
		// Assigning twice is a no-op.
		return nil
	}
	return err
}

// Unassign hard-deletes the join row; a soft-deleted assignment would
// block re-assigning the same student through the unique index.
func (r *ExamRepository) Unassign(examID, studentID uint) error {
	return r.DB.Unscoped().
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Delete(&model.ExamAssignment{}).Error
}

func (r *ExamRepository) IsAssigned(examID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamAssignment{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ExamRepository) ListAssignedExams(studentID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Preload("Category").
		Joins("JOIN exam_assignments a ON a.exam_id = exams.id AND a.deleted_at IS NULL").
		Where("a.student_id = ?", studentID).
		Order("exams.created_at desc").
		Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) ListAssignedStudents(examID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Joins("JOIN exam_assignments a ON a.student_id = users.id AND a.deleted_at IS NULL").
		Where("a.exam_id = ?", examID).
		Order("users.username asc").
		Find(&students).Error
	return students, err
}

func (r *ExamRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exam{}).
		Where("instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}
