package repository

import (
	"examen_backend/internal/model"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateWithAnswers persists a result and its answers as one atomic unit.
// The (exam_id, student_id) unique index is the backstop against concurrent
// double submission; a violation surfaces as util.ErrConflict and leaves
// nothing behind.
func (r *ResultRepository) CreateWithAnswers(result *model.ExamResult, answers []model.Answer) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResultID = result.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if IsDuplicateKey(err) {
		return util.ErrConflict
	}
	return err
}

func (r *ResultRepository) FindByID(id uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Preload("Exam").First(&result, id).Error
	return &result, err
}

func (r *ResultRepository) FindByStudentAndExam(studentID, examID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) Update(result *model.ExamResult) error {
	return r.DB.Save(result).Error
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("Exam").Preload("Exam.Category").
		Where("student_id = ? AND completed = ?", studentID, true).
		Order("submitted_at desc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByExam(examID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("Student").
		Where("exam_id = ?", examID).
		Order("submitted_at desc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListAnswers(resultID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("result_id = ?", resultID).
		Order("question_id asc").
		Find(&answers).Error
	return answers, err
}

func (r *ResultRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("student_id = ? AND completed = ?", studentID, true).
		Count(&count).Error
	return count, err
}

func (r *ResultRepository) CountByStudentAndExam(studentID, examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count, err
}
