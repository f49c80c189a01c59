package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jobhub/assessment/internal/domain/exam"
)

const (
	AnswersKey    = "assessment_answers"
	EvaluationKey = "assessment_evaluation"
)

// ErrNoOwner is returned when saved state has neither a learner nor an attempt to belong to.
var ErrNoOwner = errors.New("saved state needs a learner or attempt id")

// Owner names whose saved state is read or written. A learner's state
// follows them across attempts; without a learner the state belongs to the
// single attempt and is never shared.
type Owner struct {
	LearnerID string
	AttemptID string
}

// StateKeys returns the two entry names for an owner.
func StateKeys(o Owner) (answersKey, evaluationKey string, err error) {
	var prefix string
	switch {
	case o.LearnerID != "":
		prefix = "learner/" + o.LearnerID + "/"
	case o.AttemptID != "":
		prefix = "attempt/" + o.AttemptID + "/"
	default:
		return "", "", ErrNoOwner
	}
	return prefix + AnswersKey, prefix + EvaluationKey, nil
}

// LoadAttemptState reads the saved answers and evaluations. Missing entries
// yield empty maps. An entry that does not decode is skipped and reported
// with ErrCorruptState alongside whatever could be read.
func LoadAttemptState(ctx context.Context, s Store, owner Owner) (exam.Saved, error) {
	answersKey, evaluationKey, err := StateKeys(owner)
	if err != nil {
		return exam.Saved{}, err
	}
	saved := exam.Saved{Answers: exam.Answers{}, Evaluations: exam.Evaluations{}}

	var corrupt []error
	if err := loadEntry(ctx, s, answersKey, &saved.Answers); err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return exam.Saved{}, err
		}
		saved.Answers = exam.Answers{}
		corrupt = append(corrupt, err)
	}
	if err := loadEntry(ctx, s, evaluationKey, &saved.Evaluations); err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return exam.Saved{}, err
		}
		saved.Evaluations = exam.Evaluations{}
		corrupt = append(corrupt, err)
	}

	if saved.Answers == nil {
		saved.Answers = exam.Answers{}
	}
	if saved.Evaluations == nil {
		saved.Evaluations = exam.Evaluations{}
	}
	return saved, errors.Join(corrupt...)
}

// SaveAttemptState writes answers and evaluations as JSON strings.
func SaveAttemptState(ctx context.Context, s Store, owner Owner, saved exam.Saved) error {
	answersKey, evaluationKey, err := StateKeys(owner)
	if err != nil {
		return err
	}

	answers := saved.Answers
	if answers == nil {
		answers = exam.Answers{}
	}
	evaluations := saved.Evaluations
	if evaluations == nil {
		evaluations = exam.Evaluations{}
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	evaluationJSON, err := json.Marshal(evaluations)
	if err != nil {
		return fmt.Errorf("encode evaluations: %w", err)
	}

	return s.SetMany(ctx, map[string]string{
		answersKey:    string(answersJSON),
		evaluationKey: string(evaluationJSON),
	})
}

func loadEntry(ctx context.Context, s Store, key string, dest any) error {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptState, key, err)
	}
	return nil
}
