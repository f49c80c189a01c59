package grader

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/jobhub/assessment/internal/domain/question"
)

func TestDecodeKeyPoints(t *testing.T) {
	cases := []struct {
		in      string
		covered []string
	}{
		{`{"covered": ["a"], "missed": []}`, []string{"a"}},
		{"Sure!\n```json\n{\"covered\": [\"a\", \"b\"]}\n```", []string{"a", "b"}},
		{`{"covered": ["brace } inside"]}`, []string{"brace } inside"}},
		{`{"covered": ["escaped \" quote }"]}`, []string{`escaped " quote }`}},
		{`see {not json} then {"covered": ["later"]}`, []string{"later"}},
	}
	for _, c := range cases {
		got, err := decodeKeyPoints(c.in)
		if err != nil {
			t.Errorf("decodeKeyPoints(%q): %v", c.in, err)
			continue
		}
		if !slices.Equal(got.Covered, c.covered) {
			t.Errorf("decodeKeyPoints(%q) covered = %v, want %v", c.in, got.Covered, c.covered)
		}
	}
}

func TestDecodeKeyPoints_Errors(t *testing.T) {
	for in, reason := range map[string]string{
		"no json here": "no JSON object found in LLM response",
		"{unclosed":    "invalid JSON from LLM",
	} {
		_, err := decodeKeyPoints(in)
		var evalErr *EvaluationError
		if !errors.As(err, &evalErr) || evalErr.Reason != reason {
			t.Errorf("decodeKeyPoints(%q) = %v, want reason %q", in, err, reason)
		}
	}
}

func TestSplitKeyPoints_Lists(t *testing.T) {
	text := "- first point\n* second point\n3. third point\n• fourth point\n\n"
	want := []string{"first point", "second point", "third point", "fourth point"}

	if got := splitKeyPoints(text); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitKeyPoints_Sentences(t *testing.T) {
	text := "Goroutines are lightweight threads of execution. They are multiplexed onto OS threads by the Go runtime scheduler. Channels let them communicate safely."

	got := splitKeyPoints(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
}

func TestStripNumberedPrefix(t *testing.T) {
	cases := map[string]string{
		"1. one":     "one",
		"12) twelve": "twelve",
		"1.5 ratio":  "1.5 ratio",
		"7)no space": "7)no space",
		"no number":  "no number",
	}
	for in, want := range cases {
		if got := stripNumberedPrefix(in); got != want {
			t.Errorf("stripNumberedPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildPrompt_FallsBackToSampleAnswer(t *testing.T) {
	q := question.Question{
		ID:           "1",
		Type:         question.TypeShortAnswer,
		Prompt:       "Why channels?",
		SampleAnswer: "- safe communication\n- synchronization",
	}

	prompt := buildPrompt(q, "they are safe")
	if !strings.Contains(prompt, "1. safe communication") || !strings.Contains(prompt, "2. synchronization") {
		t.Errorf("expected numbered key points from sample answer, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "they are safe") {
		t.Error("expected candidate answer in prompt")
	}
}
