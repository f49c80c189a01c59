package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobhub/assessment/internal/domain/exam"
	"github.com/jobhub/assessment/internal/domain/results"
	"github.com/jobhub/assessment/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartAttemptRequest struct {
	Skills         []string `json:"skills" validate:"required,min=1,dive,required" example:"Java,Python"`
	LearnerID      string   `json:"learner_id,omitempty" validate:"omitempty,max=128" example:"learner-42"`
	MaxDurationMin *int     `json:"max_duration_min,omitempty" validate:"omitempty,min=1" example:"30"`
}

type AnswerRequest struct {
	// Empty string clears the answer.
	Value *string `json:"value" validate:"required" example:"B"`
}

type SubmitResponse struct {
	Results         results.Summary  `json:"results"`
	Evaluations     exam.Evaluations `json:"evaluations"`
	RedirectTo      string           `json:"redirect_to" example:"/"`
	RedirectAfterMS int64            `json:"redirect_after_ms" example:"3000"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startAttempt loads an assessment and opens an attempt.
// @Summary      Start an attempt
// @Description  Generates an assessment for the selected skills and returns the first question. Saved answers for the learner are restored.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        body  body      StartAttemptRequest  true  "Skills to assess"
// @Success      201   {object}  exam.View
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse  "assessment could not be loaded"
// @Router       /attempts [post]
func (h *Handler) startAttempt(w http.ResponseWriter, r *http.Request) {
	var req StartAttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := service.StartRequest{Skills: req.Skills, LearnerID: req.LearnerID}
	if req.MaxDurationMin != nil {
		d := time.Duration(*req.MaxDurationMin) * time.Minute
		start.MaxDuration = &d
	}

	view, err := h.exams.Start(r.Context(), start)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// getAttempt returns the current state of an attempt.
// @Summary      Get an attempt
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  exam.View
// @Failure      404        {object}  ErrorResponse
// @Router       /attempts/{attemptID} [get]
func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := h.exams.Get(chi.URLParam(r, "attemptID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// answerQuestion records an answer.
// @Summary      Answer a question
// @Description  Records or replaces the answer to a question. Multiple choice answers must be one of the options.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        attemptID   path      string         true  "Attempt ID"
// @Param        questionID  path      string         true  "Question ID"
// @Param        body        body      AnswerRequest  true  "Answer"
// @Success      200         {object}  exam.View
// @Failure      404         {object}  ErrorResponse
// @Failure      409         {object}  ErrorResponse  "submitting or submitted"
// @Failure      410         {object}  ErrorResponse  "time limit expired"
// @Failure      422         {object}  ErrorResponse  "invalid option or unknown question"
// @Router       /attempts/{attemptID}/answers/{questionID} [put]
func (h *Handler) answerQuestion(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.exams.Answer(chi.URLParam(r, "attemptID"), chi.URLParam(r, "questionID"), *req.Value)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// nextQuestion moves to the next question.
// @Summary      Next question
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  exam.View
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /attempts/{attemptID}/next [post]
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.exams.Next(chi.URLParam(r, "attemptID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// previousQuestion moves to the previous question.
// @Summary      Previous question
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  exam.View
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /attempts/{attemptID}/previous [post]
func (h *Handler) previousQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.exams.Previous(chi.URLParam(r, "attemptID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// submitAttempt evaluates and closes the attempt.
// @Summary      Submit an attempt
// @Description  Evaluates short answers, saves answers and evaluations, and returns the results. The attempt stays reachable until redirect_after_ms has passed.
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  SubmitResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "in flight, submitted, or not on the last question"
// @Failure      422        {object}  ErrorResponse  "unanswered questions"
// @Failure      500        {object}  ErrorResponse  "submission failed, attempt can be retried"
// @Router       /attempts/{attemptID}/submit [post]
func (h *Handler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	res, err := h.exams.Submit(r.Context(), chi.URLParam(r, "attemptID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SubmitResponse{
		Results:         res.Summary,
		Evaluations:     res.Evaluations,
		RedirectTo:      res.RedirectTo,
		RedirectAfterMS: res.RedirectAfter.Milliseconds(),
	})
}

// getResults returns the results of a submitted attempt.
// @Summary      Get results
// @Tags         Results
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  results.Summary
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "not submitted yet"
// @Router       /attempts/{attemptID}/results [get]
func (h *Handler) getResults(w http.ResponseWriter, r *http.Request) {
	summary, err := h.exams.Results(chi.URLParam(r, "attemptID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
