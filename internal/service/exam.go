// internal/service/exam.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobhub/assessment/internal/assessment"
	"github.com/jobhub/assessment/internal/domain/exam"
	"github.com/jobhub/assessment/internal/domain/results"
	"github.com/jobhub/assessment/internal/events"
	"github.com/jobhub/assessment/internal/grader"
	"github.com/jobhub/assessment/internal/store"
)

// FallbackFeedback is recorded for a short answer whose evaluation failed.
const FallbackFeedback = "Could not evaluate this answer."

var (
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrNotSubmitted    = errors.New("attempt has not been submitted")
)

// SubmitError reports a failure after evaluation started, usually while
// persisting. The attempt is back in progress and can be submitted again.
type SubmitError struct {
	Wrapped error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit failed: %v", e.Wrapped)
}

func (e *SubmitError) Unwrap() error {
	return e.Wrapped
}

// EventPublisher receives submitted attempts. *events.Publisher satisfies it.
type EventPublisher interface {
	PublishAttemptSubmitted(ev events.AttemptSubmitted) error
}

type Config struct {
	RedirectDelay time.Duration // how long results stay reachable after submit
	RedirectTo    string        // where the client goes once results are shown
}

func DefaultConfig() Config {
	return Config{
		RedirectDelay: 3 * time.Second,
		RedirectTo:    "/",
	}
}

type StartRequest struct {
	Skills      []string
	LearnerID   string
	MaxDuration *time.Duration
}

// SubmitResult is handed back once an attempt is submitted.
type SubmitResult struct {
	AttemptID     string
	Summary       results.Summary
	Evaluations   exam.Evaluations
	RedirectTo    string
	RedirectAfter time.Duration
}

type entry struct {
	mu      sync.Mutex
	attempt *exam.Attempt
	retire  *time.Timer
}

// ExamService owns the active attempts. Each attempt is mutated only under
// its own lock, one transition at a time; evaluator calls run without the
// lock while the attempt sits in the submitting state.
type ExamService struct {
	fetcher   assessment.Fetcher
	evaluator grader.Evaluator
	store     store.Store
	events    EventPublisher
	logger    *slog.Logger
	cfg       Config
	now       func() time.Time

	mu       sync.RWMutex
	attempts map[string]*entry
}

// NewExamService creates an ExamService. pub may be nil.
func NewExamService(f assessment.Fetcher, e grader.Evaluator, s store.Store, pub EventPublisher, logger *slog.Logger, cfg Config) *ExamService {
	return &ExamService{
		fetcher:   f,
		evaluator: e,
		store:     s,
		events:    pub,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		attempts:  make(map[string]*entry),
	}
}

// Start loads an assessment for the requested skills and opens an attempt.
// With a learner id the learner's saved answers and evaluations are restored.
func (s *ExamService) Start(ctx context.Context, req StartRequest) (exam.View, error) {
	a, err := s.fetcher.Fetch(ctx, req.Skills)
	if err != nil {
		s.logger.Error("error loading assessment", "skills", req.Skills, "error", err)
		return exam.View{}, err
	}

	// Only a learner has state to come back to; an anonymous attempt starts empty.
	var saved exam.Saved
	if req.LearnerID != "" {
		saved, err = store.LoadAttemptState(ctx, s.store, store.Owner{LearnerID: req.LearnerID})
		if err != nil {
			s.logger.Warn("error loading saved answers", "learner_id", req.LearnerID, "error", err)
		}
	}

	cfg := exam.DefaultConfig()
	cfg.MaxDuration = req.MaxDuration
	cfg.Now = s.now

	attempt := exam.NewAttempt(uuid.NewString(), req.LearnerID, a, cfg, saved)

	s.mu.Lock()
	s.attempts[attempt.ID] = &entry{attempt: attempt}
	s.mu.Unlock()

	s.logger.Info("attempt started",
		"attempt_id", attempt.ID,
		"learner_id", req.LearnerID,
		"questions", a.Len(),
		"skills", a.SkillsAssessed,
	)
	return attempt.View(), nil
}

func (s *ExamService) Get(id string) (exam.View, error) {
	return s.apply(id, func(*exam.Attempt) error { return nil })
}

func (s *ExamService) Answer(id, questionID, value string) (exam.View, error) {
	return s.apply(id, func(a *exam.Attempt) error { return a.Answer(questionID, value) })
}

func (s *ExamService) Next(id string) (exam.View, error) {
	return s.apply(id, (*exam.Attempt).Next)
}

func (s *ExamService) Previous(id string) (exam.View, error) {
	return s.apply(id, (*exam.Attempt).Previous)
}

// Submit evaluates the short answers one at a time, persists answers and
// evaluations, and closes the attempt. A failed evaluation is recorded with
// FallbackFeedback and does not stop the submission.
func (s *ExamService) Submit(ctx context.Context, id string) (*SubmitResult, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	pending, answers, err := e.attempt.BeginSubmit()
	learnerID := e.attempt.LearnerID
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// Submission is not cancellable once started.
	ctx = context.WithoutCancel(ctx)

	s.logger.Info("submitting attempt", "attempt_id", id, "pending_evaluations", len(pending))

	owner := store.Owner{LearnerID: learnerID, AttemptID: id}
	evaluations, err := s.evaluateAndSave(ctx, owner, pending, answers)
	if err != nil {
		s.logger.Error("error submitting exam", "attempt_id", id, "error", err)
		e.mu.Lock()
		// nil keeps the generic retry message in submit_error; the cause is logged above
		failErr := e.attempt.FailSubmit(nil)
		e.mu.Unlock()
		if failErr != nil {
			s.logger.Error("error reopening attempt", "attempt_id", id, "error", failErr)
		}
		return nil, &SubmitError{Wrapped: err}
	}

	e.mu.Lock()
	if err := e.attempt.CompleteSubmit(evaluations); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	summary := results.Summarize(e.attempt.Assessment, e.attempt.Answers(), evaluations)
	skills := e.attempt.Assessment.SkillsAssessed
	submittedAt := e.attempt.SubmittedAt()
	e.retire = time.AfterFunc(s.cfg.RedirectDelay, func() { s.retire(id) })
	e.mu.Unlock()

	s.publish(events.AttemptSubmitted{
		AttemptID:   id,
		LearnerID:   learnerID,
		Skills:      skills,
		MCQScore:    summary.MCQ.Score,
		Completion:  summary.Completion,
		NeedsReview: summary.NeedsReview(),
		SubmittedAt: submittedAt,
	})

	s.logger.Info("attempt submitted",
		"attempt_id", id,
		"mcq_score", summary.MCQ.Score,
		"completion", summary.Completion,
		"needs_review", summary.NeedsReview(),
	)

	return &SubmitResult{
		AttemptID:     id,
		Summary:       summary,
		Evaluations:   evaluations,
		RedirectTo:    s.cfg.RedirectTo,
		RedirectAfter: s.cfg.RedirectDelay,
	}, nil
}

// Results returns the summary of a submitted attempt that has not been retired yet.
func (s *ExamService) Results(id string) (results.Summary, error) {
	e, err := s.lookup(id)
	if err != nil {
		return results.Summary{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attempt.Status() != exam.StatusSubmitted {
		return results.Summary{}, ErrNotSubmitted
	}
	return results.Summarize(e.attempt.Assessment, e.attempt.Answers(), e.attempt.Evaluations()), nil
}

// Close stops pending retirements and drops every attempt.
func (s *ExamService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.attempts {
		e.mu.Lock()
		if e.retire != nil {
			e.retire.Stop()
		}
		e.mu.Unlock()
		delete(s.attempts, id)
	}
}

// evaluateAndSave runs the evaluation loop and persists the result. A panic
// in either step is turned into an error so the attempt can be retried.
func (s *ExamService) evaluateAndSave(ctx context.Context, owner store.Owner, pending []exam.Pending, answers exam.Answers) (evaluations exam.Evaluations, err error) {
	defer func() {
		if r := recover(); r != nil {
			evaluations = nil
			err = fmt.Errorf("submit panicked: %v", r)
		}
	}()

	evaluations = s.evaluateAll(ctx, owner.AttemptID, pending)
	if saveErr := store.SaveAttemptState(ctx, s.store, owner, exam.Saved{Answers: answers, Evaluations: evaluations}); saveErr != nil {
		return nil, fmt.Errorf("save attempt state: %w", saveErr)
	}
	return evaluations, nil
}

// evaluateAll calls the evaluator sequentially, in question order.
func (s *ExamService) evaluateAll(ctx context.Context, attemptID string, pending []exam.Pending) exam.Evaluations {
	evaluations := make(exam.Evaluations, len(pending))
	for _, p := range pending {
		feedback, err := s.evaluator.Evaluate(ctx, p.Question, p.Answer)
		if err != nil {
			s.logger.Error("error evaluating answer",
				"attempt_id", attemptID,
				"question_id", p.Question.ID,
				"error", err,
			)
			evaluations[p.Question.ID] = exam.Evaluation{Feedback: FallbackFeedback, Error: true}
			continue
		}
		evaluations[p.Question.ID] = exam.Evaluation{Feedback: feedback}
	}
	return evaluations
}

func (s *ExamService) apply(id string, fn func(*exam.Attempt) error) (exam.View, error) {
	e, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.attempt); err != nil {
		return e.attempt.View(), err
	}
	return e.attempt.View(), nil
}

func (s *ExamService) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.attempts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return e, nil
}

func (s *ExamService) retire(id string) {
	s.mu.Lock()
	delete(s.attempts, id)
	s.mu.Unlock()
	s.logger.Info("attempt retired", "attempt_id", id, "redirect_to", s.cfg.RedirectTo)
}

func (s *ExamService) publish(ev events.AttemptSubmitted) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAttemptSubmitted(ev); err != nil {
		s.logger.Error("failed to publish attempt event", "attempt_id", ev.AttemptID, "error", err)
	}
}
