package service

import (
	"encoding/json"
	"math"

	"examen_backend/internal/model"
)

// DefaultPassingScore is the fallback threshold when an exam has none
// configured. Legacy scale, normalizes to 3.0.
const DefaultPassingScore = 60.0

// Normalize maps a score or threshold onto the canonical 0-5 scale.
// Values above 5 are assumed to be legacy 0-100 percentages. A legacy 5%
// is indistinguishable from a perfect canonical score; known limitation
// of the stored data, there is no scale tag to consult.
func Normalize(value float64) float64 {
	if value > 5.0 {
		return value / 20.0
	}
	return value
}

// IsPassing compares a score against a threshold with both sides
// normalized, so mixed-scale rows compare correctly.
func IsPassing(score, passingScore float64) bool {
	if passingScore == 0 {
		passingScore = DefaultPassingScore
	}
	return Normalize(score) >= Normalize(passingScore)
}

// Round2 rounds to two decimals, the precision scores are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GradedQuestion is the per-question outcome of grading one attempt.
type GradedQuestion struct {
	QuestionID      uint   `json:"questionId"`
	QuestionText    string `json:"questionText"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer,omitempty"`
	IsCorrect       bool   `json:"isCorrect"`
	Points          int    `json:"points"`
	Explanation     string `json:"explanation,omitempty"`
}

// GradeSummary is the grader's result for a whole attempt.
type GradeSummary struct {
	PerQuestion    []GradedQuestion `json:"perQuestion"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Score          float64          `json:"score"`
	TotalPoints    float64          `json:"totalPoints"`
}

// CorrectAnswerFor resolves the canonical correct answer of a question.
// For choice questions it is the text of the option flagged correct; for
// true/false the stored value; open-ended questions have none.
func CorrectAnswerFor(q *model.Question) string {
	switch q.Type {
	case model.MultipleChoice:
		var options []model.QuestionOption
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return ""
		}
		for _, opt := range options {
			if opt.Correct {
				return opt.Text
			}
		}
		return ""
	case model.TrueFalse:
		return q.CorrectAnswer
	default:
		return ""
	}
}

// GradeAttempt scores a set of submitted answers against the exam's
// questions. Missing answers count as incorrect, open-ended questions
// are never auto-graded, and a zero-question exam grades to 0.0. The
// grader has no persistence side effects; graded and practice
// submissions run through it identically.
func GradeAttempt(questions []model.Question, answers map[uint]string) GradeSummary {
	summary := GradeSummary{
		PerQuestion:    make([]GradedQuestion, 0, len(questions)),
		TotalQuestions: len(questions),
	}

	for i := range questions {
		q := &questions[i]
		submitted := answers[q.ID]

		correct := CorrectAnswerFor(q)
		isCorrect := false
		if q.Type != model.OpenEnded && correct != "" {
			isCorrect = submitted == correct
		}
		if isCorrect {
			summary.CorrectCount++
		}
		summary.TotalPoints += float64(q.Points)

		summary.PerQuestion = append(summary.PerQuestion, GradedQuestion{
			QuestionID:      q.ID,
			QuestionText:    q.Text,
			SubmittedAnswer: submitted,
			CorrectAnswer:   correct,
			IsCorrect:       isCorrect,
			Points:          q.Points,
			Explanation:     q.Explanation,
		})
	}

	if summary.TotalQuestions > 0 {
		summary.Score = Round2(float64(summary.CorrectCount) / float64(summary.TotalQuestions) * 5.0)
	}

	return summary
}
