package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	InstructorID    uint       `gorm:"index;not null" json:"instructorId"`
	CategoryID      *uint      `gorm:"index" json:"categoryId,omitempty"`
	Category        *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DurationMinutes int        `gorm:"default:60" json:"durationMinutes"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Published       bool       `gorm:"default:false" json:"published"`
	MaxAttempts     int        `gorm:"default:1" json:"maxAttempts"`
	ShowAnswers     bool       `gorm:"default:true" json:"showAnswers"`
	ShuffleQuestions bool      `gorm:"default:false" json:"shuffleQuestions"`
	// Passing threshold, either on the canonical 0-5 scale or the legacy
	// 0-100 scale. Compared through grading.Normalize, never raw.
	PassingScore float64 `gorm:"default:60" json:"passingScore"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamAssignment is the student<->exam relation.
type ExamAssignment struct {
	BaseModel
	ExamID     uint      `gorm:"uniqueIndex:idx_assignment_exam_student;not null" json:"examId"`
	StudentID  uint      `gorm:"uniqueIndex:idx_assignment_exam_student;not null" json:"studentId"`
	AssignedAt time.Time `json:"assignedAt"`
}

func (ExamAssignment) TableName() string {
	return "exam_assignments"
}
