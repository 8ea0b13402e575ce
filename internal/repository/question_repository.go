package repository

import (
	"examen_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// ListByExam returns the exam's questions in author-assigned order, ties
// broken by id.
func (r *QuestionRepository) ListByExam(examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("exam_id = ?", examID).
		Order("`order` asc, id asc").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByExam(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("exam_id = ?", examID).
		Count(&count).Error
	return count, err
}

func (r *QuestionRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN exams ON exams.id = questions.exam_id AND exams.deleted_at IS NULL").
		Where("exams.instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}
