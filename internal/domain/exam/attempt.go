package exam

import (
	"errors"
	"math"
	"time"

	"github.com/jobhub/assessment/internal/domain/question"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
)

// IncompleteWarning is shown on the last question while answers are missing.
const IncompleteWarning = "Please answer all questions before submitting"

var (
	ErrSubmitInFlight   = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrNotSubmitting    = errors.New("attempt is not submitting")
	ErrNotLastQuestion  = errors.New("submit is only available on the last question")
	ErrIncomplete       = errors.New("all questions must be answered before submitting")
	ErrInvalidOption    = errors.New("answer is not one of the question's options")
	ErrTimeExpired      = errors.New("time limit for this attempt has expired")
)

// Attempt is one pass through an assessment. It is the only owner of the
// navigation index, the answer record, and the evaluation results.
// Attempt is not safe for concurrent use; callers serialize access.
type Attempt struct {
	ID         string
	LearnerID  string
	Assessment *question.Assessment
	StartedAt  time.Time
	Deadline   *time.Time

	current     int
	answers     Answers
	evaluations Evaluations
	status      Status
	submitError string
	submittedAt time.Time
	now         func() time.Time
}

// Pending is a short-answer response waiting for evaluation.
type Pending struct {
	Question question.Question
	Answer   string
}

// NewAttempt starts an attempt at the first question. Saved state from an
// earlier submission is restored only where it still fits the assessment;
// it never marks the attempt submitted.
func NewAttempt(id, learnerID string, assessment *question.Assessment, config Config, saved Saved) *Attempt {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	a := &Attempt{
		ID:          id,
		LearnerID:   learnerID,
		Assessment:  assessment,
		StartedAt:   now(),
		answers:     restoreAnswers(assessment, saved.Answers),
		evaluations: restoreEvaluations(assessment, saved.Evaluations),
		status:      StatusInProgress,
		now:         now,
	}

	if config.MaxDuration != nil && *config.MaxDuration > 0 {
		deadline := a.StartedAt.Add(*config.MaxDuration)
		a.Deadline = &deadline
	}
	return a
}

// restoreAnswers keeps saved answers for questions in the assessment that
// would still accept them.
func restoreAnswers(assessment *question.Assessment, saved Answers) Answers {
	out := make(Answers, len(saved))
	for id, value := range saved {
		q, err := assessment.Find(id)
		if err != nil || !q.Accepts(value) {
			continue
		}
		out[id] = value
	}
	return out
}

// restoreEvaluations keeps saved evaluations of short-answer questions only.
func restoreEvaluations(assessment *question.Assessment, saved Evaluations) Evaluations {
	out := make(Evaluations, len(saved))
	for id, ev := range saved {
		q, err := assessment.Find(id)
		if err != nil || !q.IsShortAnswer() {
			continue
		}
		out[id] = ev
	}
	return out
}

func (a *Attempt) Status() Status { return a.status }
func (a *Attempt) CurrentIndex() int { return a.current }
func (a *Attempt) Answers() Answers { return a.answers.Clone() }
func (a *Attempt) Evaluations() Evaluations { return a.evaluations.Clone() }
func (a *Attempt) SubmitError() string { return a.submitError }
func (a *Attempt) SubmittedAt() time.Time { return a.submittedAt }
func (a *Attempt) Current() question.Question { return a.Assessment.Questions[a.current] }

func (a *Attempt) IsLast() bool { return a.current == a.Assessment.Len()-1 }
func (a *Attempt) IsFirst() bool { return a.current == 0 }

// Expired reports whether the time limit, if any, has passed.
func (a *Attempt) Expired() bool {
	return a.Deadline != nil && a.now().After(*a.Deadline)
}

// AllAnswered reports whether every question has a non-empty answer.
func (a *Attempt) AllAnswered() bool {
	for _, q := range a.Assessment.Questions {
		if !a.answers.Present(q.ID) {
			return false
		}
	}
	return true
}

// Answer records value for the question, replacing any earlier answer.
func (a *Attempt) Answer(questionID, value string) error {
	if err := a.editable(); err != nil {
		return err
	}
	if a.Expired() {
		return ErrTimeExpired
	}

	q, err := a.Assessment.Find(questionID)
	if err != nil {
		return err
	}
	if !q.Accepts(value) {
		return ErrInvalidOption
	}

	a.answers[questionID] = value
	return nil
}

// Next moves forward one question. It is a no-op on the last question.
func (a *Attempt) Next() error {
	if err := a.editable(); err != nil {
		return err
	}
	if a.current < a.Assessment.Len()-1 {
		a.current++
	}
	return nil
}

// Previous moves back one question. It is a no-op on the first question.
func (a *Attempt) Previous() error {
	if err := a.editable(); err != nil {
		return err
	}
	if a.current > 0 {
		a.current--
	}
	return nil
}

// BeginSubmit enters the submitting state and returns the short-answer
// responses to evaluate, in assessment order, with a snapshot of the
// answers to persist. An expired attempt may be submitted from any
// question with answers missing.
func (a *Attempt) BeginSubmit() ([]Pending, Answers, error) {
	if err := a.editable(); err != nil {
		return nil, nil, err
	}
	if !a.Expired() {
		if !a.IsLast() {
			return nil, nil, ErrNotLastQuestion
		}
		if !a.AllAnswered() {
			return nil, nil, ErrIncomplete
		}
	}

	var pending []Pending
	for _, q := range a.Assessment.Questions {
		if q.IsShortAnswer() && a.answers.Present(q.ID) {
			pending = append(pending, Pending{Question: q, Answer: a.answers[q.ID]})
		}
	}

	a.status = StatusSubmitting
	a.submitError = ""
	return pending, a.answers.Clone(), nil
}

// CompleteSubmit stores the evaluations and makes the attempt terminal.
func (a *Attempt) CompleteSubmit(evaluations Evaluations) error {
	if a.status != StatusSubmitting {
		return ErrNotSubmitting
	}
	a.evaluations = evaluations.Clone()
	a.status = StatusSubmitted
	a.submittedAt = a.now()
	return nil
}

// FailSubmit returns the attempt to the editable state so the user can retry.
func (a *Attempt) FailSubmit(cause error) error {
	if a.status != StatusSubmitting {
		return ErrNotSubmitting
	}
	a.status = StatusInProgress
	a.submitError = "Failed to submit exam. Please try again."
	if cause != nil && cause.Error() != "" {
		a.submitError = cause.Error()
	}
	return nil
}

func (a *Attempt) editable() error {
	switch a.status {
	case StatusSubmitting:
		return ErrSubmitInFlight
	case StatusSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

// QuestionView is what the exam screen may show before submission.
type QuestionView struct {
	ID        string        `json:"id"`
	Type      question.Type `json:"type"`
	Prompt    string        `json:"question"`
	Options   []string      `json:"options,omitempty"`
	KeyPoints []string      `json:"keyPoints,omitempty"`
}

// View is a render snapshot of the attempt.
type View struct {
	ID             string       `json:"id"`
	Status         Status       `json:"status"`
	SkillsAssessed []string     `json:"skills_assessed"`
	CurrentIndex   int          `json:"current_index"`
	Total          int          `json:"total"`
	Progress       int          `json:"progress"`
	Question       QuestionView `json:"question"`
	Answer         string       `json:"answer"`
	IsFirst        bool         `json:"is_first"`
	IsLast         bool         `json:"is_last"`
	AllAnswered    bool         `json:"all_answered"`
	Warning        string       `json:"warning,omitempty"`
	SubmitError    string       `json:"submit_error,omitempty"`
	Deadline       *time.Time   `json:"deadline,omitempty"`
	Expired        bool         `json:"expired"`
}

func (a *Attempt) View() View {
	q := a.Current()
	total := a.Assessment.Len()

	v := View{
		ID:             a.ID,
		Status:         a.status,
		SkillsAssessed: a.Assessment.SkillsAssessed,
		CurrentIndex:   a.current,
		Total:          total,
		Progress:       int(math.Round(float64(a.current+1) / float64(total) * 100)),
		Question: QuestionView{
			ID:        q.ID,
			Type:      q.Type,
			Prompt:    q.Prompt,
			Options:   q.Options,
			KeyPoints: q.Hints(),
		},
		Answer:      a.answers[q.ID],
		IsFirst:     a.IsFirst(),
		IsLast:      a.IsLast(),
		AllAnswered: a.AllAnswered(),
		SubmitError: a.submitError,
		Deadline:    a.Deadline,
		Expired:     a.Expired(),
	}
	if v.IsLast && !v.AllAnswered && a.status == StatusInProgress {
		v.Warning = IncompleteWarning
	}
	return v
}
