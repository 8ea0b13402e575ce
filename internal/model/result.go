package model

import "time"

type RevisionState string

const (
	RevisionNone      RevisionState = "none"
	RevisionRequested RevisionState = "requested"
	RevisionCompleted RevisionState = "completed"
)

// ExamResult is a student's single completed submission for one exam.
// The (exam_id, student_id) pair is unique: at most one graded attempt.
// swagger:model ExamResult
type ExamResult struct {
	BaseModel
	ExamID    uint  `gorm:"uniqueIndex:idx_result_exam_student;not null" json:"examId"`
	Exam      *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	StudentID uint  `gorm:"uniqueIndex:idx_result_exam_student;not null" json:"studentId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	// Score on the canonical 0-5 scale for rows written by this engine;
	// rows migrated from the legacy system may still carry 0-100 values.
	Score          float64    `gorm:"default:0" json:"score"`
	TotalPoints    float64    `gorm:"default:0" json:"totalPoints"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	ElapsedSeconds int        `gorm:"default:0" json:"elapsedSeconds"`
	PracticeMode   bool       `gorm:"default:false" json:"practiceMode"`

	InstructorComment string `gorm:"type:text" json:"instructorComment,omitempty"`
	Recommendations   string `gorm:"type:text" json:"recommendations,omitempty"`

	RevisionState       RevisionState `gorm:"size:20;default:'none'" json:"revisionState"`
	RevisionRequestedAt *time.Time    `json:"revisionRequestedAt,omitempty"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// Answer is one submitted answer inside a completed attempt. Immutable
// after creation.
// swagger:model Answer
type Answer struct {
	BaseModel
	ResultID      uint    `gorm:"index;not null" json:"resultId"`
	ExamID        uint    `gorm:"index;not null" json:"examId"`
	QuestionID    uint    `gorm:"index;not null" json:"questionId"`
	StudentID     uint    `gorm:"index;not null" json:"studentId"`
	Text          string  `gorm:"type:text" json:"text"`
	IsCorrect     bool    `gorm:"default:false" json:"isCorrect"`
	PointsAwarded float64 `gorm:"default:0" json:"pointsAwarded"`
}

func (Answer) TableName() string {
	return "answers"
}
