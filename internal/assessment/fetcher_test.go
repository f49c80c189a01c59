package assessment_test

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/jobhub/assessment/internal/assessment"
	"github.com/jobhub/assessment/internal/domain/question"
)

const validBody = `{
  "skillsAssessed": ["Java", "Python"],
  "questions": [
    {"id": 1, "type": "mcq", "question": "Pick", "options": ["A", "B"], "correctAnswer": "B", "explanation": "because"},
    {"id": "q2", "type": "short_answer", "question": "Explain", "sampleAnswer": "Sample", "keyPoints": ["one", "two"]}
  ]
}`

func TestFetch_Success(t *testing.T) {
	var gotSkills []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobseeker/generate-assessment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotSkills = r.URL.Query()["skills"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validBody))
	}))
	defer srv.Close()

	f := assessment.NewHTTPFetcher(srv.URL, 5*time.Second)
	a, err := f.Fetch(context.Background(), []string{"Java", " Python "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(gotSkills, []string{"Java", "Python"}) {
		t.Errorf("expected repeated skills params, got %v", gotSkills)
	}
	if a.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", a.Len())
	}
	if a.Questions[0].ID != "1" || a.Questions[1].ID != "q2" {
		t.Errorf("unexpected ids %q, %q", a.Questions[0].ID, a.Questions[1].ID)
	}
	if a.Questions[1].Type != question.TypeShortAnswer || len(a.Questions[1].KeyPoints) != 2 {
		t.Errorf("unexpected short answer question: %+v", a.Questions[1])
	}
}

func TestFetch_NoSkills(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	f := assessment.NewHTTPFetcher(srv.URL, time.Second)
	if _, err := f.Fetch(context.Background(), []string{"", "  "}); !errors.Is(err, assessment.ErrNoSkills) {
		t.Errorf("expected ErrNoSkills, got %v", err)
	}
	if called {
		t.Error("expected no request without skills")
	}
}

func TestFetch_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := assessment.NewHTTPFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background(), []string{"Go"})

	var loadErr *assessment.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", loadErr.Status)
	}
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"questions": "nope"}`))
	}))
	defer srv.Close()

	f := assessment.NewHTTPFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background(), []string{"Go"})

	var loadErr *assessment.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := assessment.NewHTTPFetcher(url, time.Second)
	_, err := f.Fetch(context.Background(), []string{"Go"})

	var loadErr *assessment.LoadError
	if !errors.As(err, &loadErr) || loadErr.Status != 0 {
		t.Fatalf("expected LoadError without status, got %v", err)
	}
}

func TestDecode_Rejections(t *testing.T) {
	cases := map[string]string{
		"empty questions":    `{"skillsAssessed": [], "questions": []}`,
		"missing id":         `{"questions": [{"type": "short_answer", "question": "x"}]}`,
		"bad correct answer": `{"questions": [{"id": 1, "type": "mcq", "question": "x", "options": ["A","B"], "correctAnswer": "C"}]}`,
		"unknown type":       `{"questions": [{"id": 1, "type": "essay", "question": "x"}]}`,
		"bool id":            `{"questions": [{"id": true, "type": "short_answer", "question": "x"}]}`,
		"not json":           `<html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := assessment.Decode([]byte(body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRandomSkills(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		picked := assessment.RandomSkills(assessment.DefaultSkills, rng)
		if len(picked) < 2 || len(picked) > 3 {
			t.Fatalf("expected 2 or 3 skills, got %d", len(picked))
		}
		seen := map[string]bool{}
		for _, s := range picked {
			if seen[s] {
				t.Fatalf("duplicate skill %q", s)
			}
			seen[s] = true
			if !slices.Contains(assessment.DefaultSkills, s) {
				t.Fatalf("skill %q not in catalog", s)
			}
		}
	}

	if got := assessment.RandomSkills([]string{"Go"}, rng); len(got) != 1 {
		t.Errorf("expected whole catalog when smaller than pick, got %v", got)
	}
}
