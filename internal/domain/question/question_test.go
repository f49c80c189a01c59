package question_test

import (
	"errors"
	"testing"

	"github.com/jobhub/assessment/internal/domain/question"
)

func mcq(id, correct string, options ...string) question.Question {
	return question.Question{
		ID:            id,
		Type:          question.TypeMCQ,
		Prompt:        "Pick one",
		Options:       options,
		CorrectAnswer: correct,
	}
}

func shortAnswer(id string) question.Question {
	return question.Question{
		ID:           id,
		Type:         question.TypeShortAnswer,
		Prompt:       "Explain goroutines",
		SampleAnswer: "Lightweight threads managed by the runtime",
		KeyPoints:    []string{"lightweight", "runtime"},
	}
}

func TestValidate_MCQ(t *testing.T) {
	q := mcq("1", "B", "A", "B", "C")
	if err := q.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CorrectAnswerNotAnOption(t *testing.T) {
	q := mcq("1", "D", "A", "B", "C")
	if err := q.Validate(); !errors.Is(err, question.ErrNotAnOption) {
		t.Errorf("expected ErrNotAnOption, got %v", err)
	}
}

func TestValidate_TooFewOptions(t *testing.T) {
	q := mcq("1", "A", "A")
	if err := q.Validate(); !errors.Is(err, question.ErrTooFewOptions) {
		t.Errorf("expected ErrTooFewOptions, got %v", err)
	}
}

func TestValidate_DuplicateOptions(t *testing.T) {
	q := mcq("1", "A", "A", "A")
	if err := q.Validate(); err == nil {
		t.Error("expected error for duplicate options")
	}
}

func TestValidate_UnknownType(t *testing.T) {
	q := shortAnswer("1")
	q.Type = "essay"
	if err := q.Validate(); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestValidate_MixedPayload(t *testing.T) {
	q := shortAnswer("1")
	q.Options = []string{"A", "B"}
	if err := q.Validate(); !errors.Is(err, question.ErrWrongPayload) {
		t.Errorf("expected ErrWrongPayload, got %v", err)
	}

	m := mcq("2", "A", "A", "B")
	m.KeyPoints = []string{"x"}
	if err := m.Validate(); !errors.Is(err, question.ErrWrongPayload) {
		t.Errorf("expected ErrWrongPayload, got %v", err)
	}
}

func TestValidate_MissingPrompt(t *testing.T) {
	q := shortAnswer("1")
	q.Prompt = ""
	if err := q.Validate(); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestAccepts(t *testing.T) {
	m := mcq("1", "B", "A", "B")
	if !m.Accepts("A") || !m.Accepts("") {
		t.Error("expected option and empty value to be accepted")
	}
	if m.Accepts("Z") {
		t.Error("expected value outside options to be rejected")
	}

	s := shortAnswer("2")
	if !s.Accepts("anything at all") {
		t.Error("expected short answer to accept free text")
	}
}

func TestHints(t *testing.T) {
	s := shortAnswer("1")
	if len(s.Hints()) != 2 {
		t.Errorf("expected 2 hints, got %d", len(s.Hints()))
	}
	m := mcq("2", "A", "A", "B")
	if m.Hints() != nil {
		t.Error("expected no hints for mcq")
	}
}

func TestAssessmentValidate(t *testing.T) {
	a := question.Assessment{
		SkillsAssessed: []string{"Go"},
		Questions:      []question.Question{mcq("1", "A", "A", "B"), shortAnswer("2")},
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := question.Assessment{}
	if err := empty.Validate(); !errors.Is(err, question.ErrEmptyAssessment) {
		t.Errorf("expected ErrEmptyAssessment, got %v", err)
	}

	dup := question.Assessment{Questions: []question.Question{shortAnswer("1"), shortAnswer("1")}}
	if err := dup.Validate(); !errors.Is(err, question.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAssessmentFindAndCount(t *testing.T) {
	a := question.Assessment{
		Questions: []question.Question{mcq("1", "A", "A", "B"), mcq("2", "A", "A", "B"), shortAnswer("3")},
	}

	q, err := a.Find("3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsShortAnswer() {
		t.Error("expected short answer question")
	}

	if _, err := a.Find("nope"); !errors.Is(err, question.ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}

	if a.Count(question.TypeMCQ) != 2 || a.Count(question.TypeShortAnswer) != 1 {
		t.Error("unexpected type counts")
	}
}
