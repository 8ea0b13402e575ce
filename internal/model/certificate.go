package model

import "time"

// Certificate is the verifiable proof-of-passing record for one result.
// The score is frozen at issuance, not a live reference.
// swagger:model Certificate
type Certificate struct {
	BaseModel
	StudentID        uint      `gorm:"index;not null" json:"studentId"`
	ExamID           uint      `gorm:"index;not null" json:"examId"`
	ResultID         uint      `gorm:"uniqueIndex;not null" json:"resultId"`
	VerificationCode string    `gorm:"size:100;uniqueIndex;not null" json:"verificationCode"`
	IssuedAt         time.Time `json:"issuedAt"`
	Score            float64   `gorm:"not null" json:"score"`
}

func (Certificate) TableName() string {
	return "certificates"
}
