// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jobhub/assessment/internal/assessment"
	"github.com/jobhub/assessment/internal/domain/exam"
	"github.com/jobhub/assessment/internal/domain/question"
	"github.com/jobhub/assessment/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	exams  *service.ExamService
	skills []string
	logger *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a Handler. skills is the catalog offered to learners.
func NewHandler(exams *service.ExamService, skills []string, logger *slog.Logger) *Handler {
	return &Handler{
		exams:  exams,
		skills: skills,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"attempt not found"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeAndValidate decodes the JSON body into v and runs its validate tags.
// Returns false if a response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			respondError(w, http.StatusBadRequest, fe.Field()+" failed "+fe.Tag()+" validation")
			return false
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps domain and service errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var loadErr *assessment.LoadError
	var submitErr *service.SubmitError

	switch {
	case errors.Is(err, service.ErrAttemptNotFound):
		respondError(w, http.StatusNotFound, "attempt not found")
	case errors.Is(err, assessment.ErrNoSkills):
		respondError(w, http.StatusBadRequest, "No skills provided")
	case errors.As(err, &loadErr):
		respondError(w, http.StatusBadGateway, loadErr.Reason)
	case errors.Is(err, exam.ErrIncomplete):
		respondError(w, http.StatusUnprocessableEntity, exam.IncompleteWarning)
	case errors.Is(err, exam.ErrInvalidOption), errors.Is(err, question.ErrUnknownQuestion):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, exam.ErrTimeExpired):
		respondError(w, http.StatusGone, err.Error())
	case errors.Is(err, exam.ErrSubmitInFlight),
		errors.Is(err, exam.ErrAlreadySubmitted),
		errors.Is(err, exam.ErrNotLastQuestion),
		errors.Is(err, service.ErrNotSubmitted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &submitErr):
		respondError(w, http.StatusInternalServerError, "Failed to submit exam. Please try again.")
	default:
		h.logger.Error("unhandled error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
