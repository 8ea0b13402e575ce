package model

import "encoding/json"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	OpenEnded      QuestionType = "open_ended"
)

type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// swagger:model Question
type Question struct {
	BaseModel
	ExamID uint         `gorm:"index;not null" json:"examId"`
	Text   string       `gorm:"type:text;not null" json:"text"`
	Type   QuestionType `gorm:"size:20;not null" json:"type"`
	// Options is a JSON array of {text, correct} pairs for choice questions.
	Options          json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer    string          `gorm:"type:text" json:"-"`
	Points           int             `gorm:"default:1" json:"points"`
	Order            int             `gorm:"default:0" json:"order"`
	Difficulty       Difficulty      `gorm:"size:20;default:'basic'" json:"difficulty"`
	EstimatedSeconds int             `gorm:"default:60" json:"estimatedSeconds"`
	Explanation      string          `gorm:"type:text" json:"explanation,omitempty"`
	ImageURL         string          `gorm:"size:255" json:"imageUrl,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption is one entry of Question.Options.
type QuestionOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}
