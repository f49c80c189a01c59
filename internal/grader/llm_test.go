package grader_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jobhub/assessment/internal/grader"
)

func chatServer(t *testing.T, replies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		n := int(calls.Add(1)) - 1
		if n >= len(replies) {
			n = len(replies) - 1
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": replies[n]}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLLMEvaluator_RendersFeedback(t *testing.T) {
	srv, _ := chatServer(t, "Sure!\n```json\n{\"covered\": [\"lightweight thread\"], \"missed\": [\"managed by the runtime\"]}\n```")

	e := grader.NewLLMEvaluator(srv.URL, "qwen3-8b", time.Second)
	feedback, err := e.Evaluate(context.Background(), shortQuestion, "a lightweight thread")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(feedback, "Score: 50/100.") {
		t.Errorf("unexpected feedback %q", feedback)
	}
	if !strings.Contains(feedback, "Missed: managed by the runtime.") {
		t.Errorf("expected missed points in feedback, got %q", feedback)
	}
}

func TestLLMEvaluator_RetriesOnGarbage(t *testing.T) {
	srv, calls := chatServer(t, "I cannot answer that", `{"covered": ["a", "b"], "missed": []}`)

	e := grader.NewLLMEvaluator(srv.URL, "qwen3-8b", time.Second)
	feedback, err := e.Evaluate(context.Background(), shortQuestion, "answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
	if !strings.HasPrefix(feedback, "Score: 100/100.") {
		t.Errorf("unexpected feedback %q", feedback)
	}
}

func TestLLMEvaluator_FailsAfterRetries(t *testing.T) {
	srv, calls := chatServer(t, "nothing useful")

	e := grader.NewLLMEvaluator(srv.URL, "qwen3-8b", time.Second)
	if _, err := e.Evaluate(context.Background(), shortQuestion, "answer"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestLLMEvaluator_EmptyClassification(t *testing.T) {
	srv, _ := chatServer(t, `{"covered": [], "missed": []}`)

	e := grader.NewLLMEvaluator(srv.URL, "qwen3-8b", time.Second)
	feedback, err := e.Evaluate(context.Background(), shortQuestion, "answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback != "Score: 0/100. Missed: Unable to evaluate." {
		t.Errorf("unexpected feedback %q", feedback)
	}
}

func TestKeyPointResult_Score(t *testing.T) {
	r := grader.KeyPointResult{Covered: []string{"a", "b"}, Missed: []string{"c"}}
	if r.Score() != 66 {
		t.Errorf("expected 66, got %d", r.Score())
	}
	if (grader.KeyPointResult{}).Score() != 0 {
		t.Error("expected 0 for empty result")
	}
}
