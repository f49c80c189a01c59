// Package results computes the score summary and per-question review of a
// submitted attempt. Everything here is a pure function of its inputs.
package results

import (
	"math"

	"github.com/jobhub/assessment/internal/domain/exam"
	"github.com/jobhub/assessment/internal/domain/question"
)

const (
	NotAnswered  = "Not answered"
	NotEvaluated = "Not evaluated"
)

type MCQScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Score   int `json:"score"` // percent
}

// ReviewItem is one row of the question review.
type ReviewItem struct {
	QuestionID string        `json:"question_id"`
	Type       question.Type `json:"type"`
	Prompt     string        `json:"question"`
	UserAnswer string        `json:"user_answer"`
	Answered   bool          `json:"answered"`

	// mcq
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	Correct       bool   `json:"correct"`

	// short_answer
	SampleAnswer    string   `json:"sample_answer,omitempty"`
	KeyPoints       []string `json:"key_points,omitempty"`
	Feedback        string   `json:"feedback,omitempty"`
	EvaluationError bool     `json:"evaluation_error,omitempty"`
}

type Summary struct {
	SkillsAssessed   []string     `json:"skills_assessed"`
	MCQ              MCQScore     `json:"mcq"`
	ShortAnswerCount int          `json:"short_answer_count"`
	Completion       int          `json:"completion"` // percent
	Review           []ReviewItem `json:"review"`
}

// Summarize scores mcq questions by exact match and reports short answers
// with their evaluator feedback. Short answers are never auto-scored.
func Summarize(a *question.Assessment, answers exam.Answers, evaluations exam.Evaluations) Summary {
	s := Summary{
		SkillsAssessed: a.SkillsAssessed,
		Review:         make([]ReviewItem, 0, a.Len()),
	}

	answered := 0
	for _, q := range a.Questions {
		ans := answers[q.ID]
		item := ReviewItem{
			QuestionID: q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			UserAnswer: ans,
			Answered:   ans != "",
		}
		if item.Answered {
			answered++
		} else {
			item.UserAnswer = NotAnswered
		}

		switch q.Type {
		case question.TypeMCQ:
			s.MCQ.Total++
			item.CorrectAnswer = q.CorrectAnswer
			item.Explanation = q.Explanation
			item.Correct = ans == q.CorrectAnswer
			if item.Correct {
				s.MCQ.Correct++
			}
		case question.TypeShortAnswer:
			s.ShortAnswerCount++
			item.SampleAnswer = q.SampleAnswer
			item.KeyPoints = q.KeyPoints
			item.Feedback = NotEvaluated
			if ev, ok := evaluations[q.ID]; ok {
				item.Feedback = ev.Feedback
				item.EvaluationError = ev.Error
			}
		}

		s.Review = append(s.Review, item)
	}

	s.MCQ.Score = percent(s.MCQ.Correct, s.MCQ.Total)
	s.Completion = percent(answered, a.Len())
	return s
}

// NeedsReview reports whether any short answer could not be evaluated and
// should be looked at by a person.
func (s Summary) NeedsReview() bool {
	for _, item := range s.Review {
		if item.EvaluationError {
			return true
		}
	}
	return false
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
