package exam

import "maps"

// Answers maps a question id to the user's current answer. An answer is
// present only if non-empty.
type Answers map[string]string

func (a Answers) Present(questionID string) bool {
	return a[questionID] != ""
}

func (a Answers) Clone() Answers {
	if a == nil {
		return Answers{}
	}
	return maps.Clone(a)
}

// Evaluation is the evaluator's judgment of one short-answer response.
// A failed evaluation still carries a feedback string.
type Evaluation struct {
	Feedback string `json:"feedback"`
	Error    bool   `json:"error"`
}

// Evaluations maps a short-answer question id to its evaluation.
type Evaluations map[string]Evaluation

func (e Evaluations) Clone() Evaluations {
	if e == nil {
		return Evaluations{}
	}
	return maps.Clone(e)
}

// AnyFailed reports whether at least one evaluation is error-flagged.
func (e Evaluations) AnyFailed() bool {
	for _, ev := range e {
		if ev.Error {
			return true
		}
	}
	return false
}

// Saved is the durable state written on submit and read when an attempt starts.
type Saved struct {
	Answers     Answers
	Evaluations Evaluations
}
