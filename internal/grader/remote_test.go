package grader_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobhub/assessment/internal/domain/question"
	"github.com/jobhub/assessment/internal/grader"
)

var shortQuestion = question.Question{
	ID:           "q3",
	Type:         question.TypeShortAnswer,
	Prompt:       "What is a goroutine?",
	SampleAnswer: "A lightweight thread managed by the Go runtime",
	KeyPoints:    []string{"lightweight thread", "managed by the runtime"},
}

func TestRemoteEvaluator_Success(t *testing.T) {
	var got struct {
		Question struct {
			Question     string   `json:"question"`
			Type         string   `json:"type"`
			SampleAnswer string   `json:"sample_answer"`
			KeyPoints    []string `json:"key_points"`
		} `json:"question"`
		Answer string `json:"answer"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/jobseeker/evaluate-answer" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feedback": "Good answer", "score": 8}`))
	}))
	defer srv.Close()

	e := grader.NewRemoteEvaluator(srv.URL, time.Second)
	feedback, err := e.Evaluate(context.Background(), shortQuestion, "green threads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback != "Good answer" {
		t.Errorf("expected %q, got %q", "Good answer", feedback)
	}

	if got.Question.Question != shortQuestion.Prompt || got.Question.Type != "short_answer" {
		t.Errorf("unexpected question payload: %+v", got.Question)
	}
	if got.Question.SampleAnswer != shortQuestion.SampleAnswer || len(got.Question.KeyPoints) != 2 {
		t.Errorf("unexpected grading criteria: %+v", got.Question)
	}
	if got.Answer != "green threads" {
		t.Errorf("unexpected answer %q", got.Answer)
	}
}

func TestRemoteEvaluator_ServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "answer too short"}`))
	}))
	defer srv.Close()

	e := grader.NewRemoteEvaluator(srv.URL, time.Second)
	_, err := e.Evaluate(context.Background(), shortQuestion, "x")

	var evalErr *grader.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Reason != "answer too short" || evalErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("unexpected error: %+v", evalErr)
	}
}

func TestRemoteEvaluator_MissingFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"score": 3}`))
	}))
	defer srv.Close()

	e := grader.NewRemoteEvaluator(srv.URL, time.Second)
	if _, err := e.Evaluate(context.Background(), shortQuestion, "x"); err == nil {
		t.Error("expected error for response without feedback")
	}
}

func TestRemoteEvaluator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	e := grader.NewRemoteEvaluator(url, time.Second)
	_, err := e.Evaluate(context.Background(), shortQuestion, "x")

	var evalErr *grader.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
}
