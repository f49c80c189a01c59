package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobhub/assessment/internal/events"
)

func TestPublishAttemptSubmitted(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := events.NewGoChannel(logger)
	defer ch.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := ch.Subscribe(ctx, events.TopicAttemptSubmitted)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	pub := events.NewPublisher(ch)
	want := events.AttemptSubmitted{AttemptID: "a1", Skills: []string{"Go"}, MCQScore: 50, Completion: 100}
	if err := pub.PublishAttemptSubmitted(want); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-messages:
		var got events.AttemptSubmitted
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		msg.Ack()
		if got.AttemptID != "a1" || got.MCQScore != 50 || got.Completion != 100 {
			t.Errorf("unexpected event %+v", got)
		}
		if msg.Metadata.Get("attempt_id") != "a1" {
			t.Error("expected attempt id in metadata")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunReviewLog_LogsAttemptsNeedingReview(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	ch := events.NewGoChannel(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer ch.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := events.RunReviewLog(ctx, ch, logger); err != nil {
		t.Fatalf("run review log: %v", err)
	}

	pub := events.NewPublisher(ch)
	if err := pub.PublishAttemptSubmitted(events.AttemptSubmitted{AttemptID: "fine"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := pub.PublishAttemptSubmitted(events.AttemptSubmitted{AttemptID: "flagged", NeedsReview: true}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "attempt_id=flagged") {
		if time.Now().After(deadline) {
			t.Fatalf("expected review log line, got %q", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if strings.Contains(out.String(), "attempt_id=fine") {
		t.Error("expected attempts without evaluation errors not to be logged")
	}
}
