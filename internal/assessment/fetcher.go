package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jobhub/assessment/internal/domain/question"
)

const generatePath = "/api/jobseeker/generate-assessment"

var ErrNoSkills = errors.New("no skills provided")

// Fetcher produces the question set for one attempt.
type Fetcher interface {
	Fetch(ctx context.Context, skills []string) (*question.Assessment, error)
}

// LoadError is returned when the assessment could not be retrieved or was
// malformed. It is terminal for the attempt; nothing is retried.
type LoadError struct {
	Reason  string
	Status  int // HTTP status, 0 when no response was received
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("loading assessment failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("loading assessment failed: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}

// HTTPFetcher calls the assessment generation endpoint of the job portal API.
type HTTPFetcher struct {
	client *resty.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPFetcher{client: client}
}

// Fetch requests an assessment covering skills, passed as repeated
// "skills" query parameters.
func (f *HTTPFetcher) Fetch(ctx context.Context, skills []string) (*question.Assessment, error) {
	skills = cleanSkills(skills)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(url.Values{"skills": skills}).
		Get(generatePath)
	if err != nil {
		return nil, &LoadError{Reason: "request failed", Wrapped: err}
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &LoadError{
			Reason: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode()),
			Status: resp.StatusCode(),
		}
	}

	a, err := Decode(resp.Body())
	if err != nil {
		return nil, &LoadError{Reason: "malformed assessment", Status: resp.StatusCode(), Wrapped: err}
	}
	return a, nil
}

// ── Wire format ─────────────────────────────────────────────────────────────

type wireAssessment struct {
	SkillsAssessed []string       `json:"skillsAssessed"`
	Questions      []wireQuestion `json:"questions"`
}

type wireQuestion struct {
	ID            json.RawMessage `json:"id"`
	Type          string          `json:"type"`
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	SampleAnswer  string          `json:"sampleAnswer"`
	KeyPoints     []string        `json:"keyPoints"`
}

// Decode parses and validates an assessment document. Question ids may be
// JSON strings or numbers; both become string ids.
func Decode(body []byte) (*question.Assessment, error) {
	var w wireAssessment
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	a := &question.Assessment{
		SkillsAssessed: w.SkillsAssessed,
		Questions:      make([]question.Question, 0, len(w.Questions)),
	}
	for i, wq := range w.Questions {
		id, err := decodeID(wq.ID)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		a.Questions = append(a.Questions, question.Question{
			ID:            id,
			Type:          question.Type(wq.Type),
			Prompt:        wq.Question,
			Options:       wq.Options,
			CorrectAnswer: wq.CorrectAnswer,
			Explanation:   wq.Explanation,
			SampleAnswer:  wq.SampleAnswer,
			KeyPoints:     wq.KeyPoints,
		})
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id: %w", err)
	}
	return n.String(), nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
