package question

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Type string

const (
	TypeMCQ         Type = "mcq"
	TypeShortAnswer Type = "short_answer"
)

var (
	ErrWrongPayload    = errors.New("question carries a payload of the other type")
	ErrTooFewOptions   = errors.New("multiple choice question needs at least two options")
	ErrNotAnOption     = errors.New("correct answer is not one of the options")
	ErrDuplicateID     = errors.New("duplicate question id")
	ErrEmptyAssessment = errors.New("assessment has no questions")
	ErrUnknownQuestion = errors.New("question not in assessment")
)

// Question is a single exam question. It is immutable once fetched.
type Question struct {
	ID     string `json:"id" validate:"required"`
	Type   Type   `json:"type" validate:"required,oneof=mcq short_answer"`
	Prompt string `json:"question" validate:"required"`

	// mcq
	Options       []string `json:"options,omitempty" validate:"omitempty,unique,dive,required"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`

	// short_answer
	SampleAnswer string   `json:"sampleAnswer,omitempty"`
	KeyPoints    []string `json:"keyPoints,omitempty"`
}

// Assessment is the ordered question set of one attempt.
type Assessment struct {
	SkillsAssessed []string   `json:"skillsAssessed"`
	Questions      []Question `json:"questions"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct tags and the variant rules: exactly one
// type-specific payload, and the correct answer must be an option.
func (q *Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}

	switch q.Type {
	case TypeMCQ:
		if q.SampleAnswer != "" || len(q.KeyPoints) > 0 {
			return fmt.Errorf("question %q: %w", q.ID, ErrWrongPayload)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %q: %w", q.ID, ErrTooFewOptions)
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("question %q: %w", q.ID, ErrNotAnOption)
		}
	case TypeShortAnswer:
		if len(q.Options) > 0 || q.CorrectAnswer != "" {
			return fmt.Errorf("question %q: %w", q.ID, ErrWrongPayload)
		}
	}
	return nil
}

// Accepts reports whether value is a legal answer. An empty value is
// always accepted so an answer can be cleared.
func (q *Question) Accepts(value string) bool {
	if value == "" || q.Type != TypeMCQ {
		return true
	}
	return slices.Contains(q.Options, value)
}

// Hints returns the key points shown next to a short-answer input.
func (q *Question) Hints() []string {
	if q.Type != TypeShortAnswer {
		return nil
	}
	return q.KeyPoints
}

func (q *Question) IsMCQ() bool         { return q.Type == TypeMCQ }
func (q *Question) IsShortAnswer() bool { return q.Type == TypeShortAnswer }

func (a *Assessment) Validate() error {
	if len(a.Questions) == 0 {
		return ErrEmptyAssessment
	}
	seen := make(map[string]struct{}, len(a.Questions))
	for i := range a.Questions {
		q := &a.Questions[i]
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %q: %w", q.ID, ErrDuplicateID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// Find returns the question with the given id.
func (a *Assessment) Find(id string) (*Question, error) {
	for i := range a.Questions {
		if a.Questions[i].ID == id {
			return &a.Questions[i], nil
		}
	}
	return nil, ErrUnknownQuestion
}

func (a *Assessment) Len() int { return len(a.Questions) }

// Count returns how many questions are of the given type.
func (a *Assessment) Count(t Type) int {
	n := 0
	for _, q := range a.Questions {
		if q.Type == t {
			n++
		}
	}
	return n
}
