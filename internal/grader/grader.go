package grader

import (
	"context"
	"fmt"

	"github.com/jobhub/assessment/internal/domain/question"
)

// Evaluator judges a short-answer response and returns feedback text.
// Implementations may call the portal's evaluation API, an LLM, or return
// canned results (for tests).
type Evaluator interface {
	Evaluate(ctx context.Context, q question.Question, answer string) (string, error)
}

// EvaluationError is returned when an answer could not be evaluated so the
// caller can downgrade it to an error-flagged result.
type EvaluationError struct {
	Reason  string
	Status  int // HTTP status, 0 when no response was received
	Wrapped error
}

func (e *EvaluationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("evaluation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("evaluation failed: %s", e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrapped
}
