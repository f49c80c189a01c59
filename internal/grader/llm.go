package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/jobhub/assessment/internal/domain/question"
)

// LLMEvaluator evaluates short answers by calling an OpenAI-compatible LLM
// endpoint (Ollama, LM Studio, vLLM, etc.).
type LLMEvaluator struct {
	model  string
	client *resty.Client
}

var _ Evaluator = (*LLMEvaluator)(nil)

// KeyPointResult is the structured output expected from the model.
type KeyPointResult struct {
	Covered []string `json:"covered"`
	Missed  []string `json:"missed"`
}

// Score is the share of covered key points, in percent.
func (r KeyPointResult) Score() int {
	total := len(r.Covered) + len(r.Missed)
	if total == 0 {
		return 0
	}
	return len(r.Covered) * 100 / total
}

func NewLLMEvaluator(url, model string, timeout time.Duration) *LLMEvaluator {
	return &LLMEvaluator{
		model: model,
		client: resty.New().
			SetBaseURL(strings.TrimRight(url, "/")).
			SetTimeout(timeout),
	}
}

const maxRetries = 2

// Evaluate asks the model which key points the answer covers and renders
// the classification as feedback. It retries once on unparsable output
// (small models sometimes need a second try).
func (g *LLMEvaluator) Evaluate(ctx context.Context, q question.Question, answer string) (string, error) {
	prompt := buildPrompt(q, answer)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		content, err := g.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		result, err := decodeKeyPoints(content)
		if err != nil {
			lastErr = err
			continue
		}

		if len(result.Covered) == 0 && len(result.Missed) == 0 {
			result.Missed = []string{"Unable to evaluate"}
		}
		return renderFeedback(result), nil
	}

	return "", &EvaluationError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

// ============================================================================
// LLM communication
// ============================================================================

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single chat completion request and returns the raw text.
func (g *LLMEvaluator) callLLM(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(llmRequest{
			Model:       g.model,
			Messages:    []llmMessage{{Role: "user", Content: prompt}},
			Temperature: 0,
		}).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode())
	}

	var llmResp llmResponse
	if err := json.Unmarshal(resp.Body(), &llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}
	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}
	return content, nil
}

// ============================================================================
// JSON extraction
// ============================================================================

// decodeKeyPoints decodes the first JSON object in the model output that
// parses as a classification. Models often wrap it in prose or code fences.
func decodeKeyPoints(content string) (KeyPointResult, error) {
	var firstErr error
	for i := strings.IndexByte(content, '{'); i >= 0; {
		var result KeyPointResult
		err := json.NewDecoder(strings.NewReader(content[i:])).Decode(&result)
		if err == nil {
			return result, nil
		}
		if firstErr == nil {
			firstErr = err
		}

		next := strings.IndexByte(content[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}

	if firstErr == nil {
		return KeyPointResult{}, &EvaluationError{Reason: "no JSON object found in LLM response"}
	}
	return KeyPointResult{}, &EvaluationError{Reason: "invalid JSON from LLM", Wrapped: firstErr}
}

// ============================================================================
// Prompt and feedback
// ============================================================================

// buildPrompt asks for a COVERED / MISSED classification of the question's
// key points. Without key points, points are split from the sample answer.
func buildPrompt(q question.Question, answer string) string {
	points := q.KeyPoints
	if len(points) == 0 {
		points = splitKeyPoints(q.SampleAnswer)
	}

	var keyPoints strings.Builder
	for i, p := range points {
		fmt.Fprintf(&keyPoints, "%d. %s\n", i+1, p)
	}

	return fmt.Sprintf(`/no_think
You are grading a skill assessment. Classify each key point as COVERED or MISSED.

RULES:
- A key point is COVERED if the candidate expressed the same idea, even with different wording or synonyms.
- A key point is MISSED if the candidate did not mention it or got it wrong.
- Only use strings from the KEY POINTS list in your output.

QUESTION:
%s

KEY POINTS:
%s
CANDIDATE'S ANSWER:
%s

Respond with ONLY this JSON, no explanation, no markdown:
{"covered": ["point text", ...], "missed": ["point text", ...]}`,
		q.Prompt, keyPoints.String(), answer)
}

func renderFeedback(r KeyPointResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/100.", r.Score())
	if len(r.Covered) > 0 {
		fmt.Fprintf(&b, " Covered: %s.", strings.Join(r.Covered, "; "))
	}
	if len(r.Missed) > 0 {
		fmt.Fprintf(&b, " Missed: %s.", strings.Join(r.Missed, "; "))
	}
	return b.String()
}

// splitKeyPoints breaks a sample answer into individual points. It looks
// for bullet lists, numbered lists, or sentence boundaries.
func splitKeyPoints(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var points []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "•·")
		trimmed = strings.TrimSpace(trimmed)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			trimmed = strings.TrimSpace(trimmed[2:])
		}
		trimmed = stripNumberedPrefix(trimmed)

		if trimmed != "" {
			points = append(points, trimmed)
		}
	}

	// one big block with no list structure: try sentences
	if len(points) == 1 && utf8.RuneCountInString(points[0]) > 120 {
		if sentences := splitSentences(points[0]); len(sentences) > 1 {
			points = sentences
		}
	}
	return points
}

// stripNumberedPrefix removes a leading "1. " or "1) " style prefix.
func stripNumberedPrefix(s string) string {
	rest := strings.TrimLeftFunc(s, unicode.IsDigit)
	if len(rest) == len(s) {
		return s
	}
	for _, marker := range []string{". ", ") "} {
		if after, ok := strings.CutPrefix(rest, marker); ok {
			return strings.TrimSpace(after)
		}
	}
	return s
}

// splitSentences splits on ". " boundaries, dropping fragments of ten
// runes or fewer.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range strings.SplitAfter(text, ". ") {
		if sentence := strings.TrimSpace(part); utf8.RuneCountInString(sentence) > 10 {
			sentences = append(sentences, sentence)
		}
	}
	return sentences
}
