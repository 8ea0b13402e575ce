package repository

import (
	"examen_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// Create inserts a certificate. The store enforces both uniqueness
// invariants: one certificate per result and a globally unique
// verification code. Callers distinguish the two with IsDuplicateKey
// and the error text.
func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) FindByResultID(resultID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("result_id = ?", resultID).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByCode(code string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("verification_code = ?", code).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
