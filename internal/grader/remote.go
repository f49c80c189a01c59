package grader

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jobhub/assessment/internal/domain/question"
)

const evaluatePath = "/api/jobseeker/evaluate-answer"

// RemoteEvaluator calls the job portal's answer evaluation endpoint.
type RemoteEvaluator struct {
	client *resty.Client
}

var _ Evaluator = (*RemoteEvaluator)(nil)

func NewRemoteEvaluator(baseURL string, timeout time.Duration) *RemoteEvaluator {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RemoteEvaluator{client: client}
}

type evaluateQuestion struct {
	Question     string   `json:"question"`
	Type         string   `json:"type"`
	SampleAnswer string   `json:"sample_answer"`
	KeyPoints    []string `json:"key_points"`
}

type evaluateRequest struct {
	Question evaluateQuestion `json:"question"`
	Answer   string           `json:"answer"`
}

type evaluateResponse struct {
	Feedback *string `json:"feedback"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (e *RemoteEvaluator) Evaluate(ctx context.Context, q question.Question, answer string) (string, error) {
	keyPoints := q.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(evaluateRequest{
			Question: evaluateQuestion{
				Question:     q.Prompt,
				Type:         string(q.Type),
				SampleAnswer: q.SampleAnswer,
				KeyPoints:    keyPoints,
			},
			Answer: answer,
		}).
		Post(evaluatePath)
	if err != nil {
		return "", &EvaluationError{Reason: "request failed", Wrapped: err}
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		reason := "Failed to evaluate answer"
		var body errorResponse
		if json.Unmarshal(resp.Body(), &body) == nil && body.Message != "" {
			reason = body.Message
		}
		return "", &EvaluationError{Reason: reason, Status: resp.StatusCode()}
	}

	var out evaluateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", &EvaluationError{Reason: "malformed evaluation response", Status: resp.StatusCode(), Wrapped: err}
	}
	if out.Feedback == nil {
		return "", &EvaluationError{Reason: "evaluation response has no feedback", Status: resp.StatusCode()}
	}
	return *out.Feedback, nil
}
