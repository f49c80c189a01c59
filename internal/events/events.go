package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const TopicAttemptSubmitted = "assessment.attempt.submitted"

// AttemptSubmitted is published once per successful submission.
type AttemptSubmitted struct {
	AttemptID   string    `json:"attempt_id"`
	LearnerID   string    `json:"learner_id,omitempty"`
	Skills      []string  `json:"skills"`
	MCQScore    int       `json:"mcq_score"`
	Completion  int       `json:"completion"`
	NeedsReview bool      `json:"needs_review"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Publisher encodes attempt events onto a watermill publisher.
type Publisher struct {
	pub message.Publisher
}

func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

func (p *Publisher) PublishAttemptSubmitted(ev AttemptSubmitted) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("attempt_id", ev.AttemptID)
	return p.pub.Publish(TopicAttemptSubmitted, msg)
}

func (p *Publisher) Close() error {
	return p.pub.Close()
}

// NewGoChannel returns the in-process pub/sub used when no broker is configured.
func NewGoChannel(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

// NewKafkaPublisher publishes to the given kafka brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (message.Publisher, error) {
	return kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
}

// RunReviewLog subscribes to submitted attempts and logs the ones whose
// short answers could not all be evaluated, so they can be re-graded by
// hand. It returns once the subscription is open; consumption stops when
// ctx is done.
func RunReviewLog(ctx context.Context, sub message.Subscriber, logger *slog.Logger) error {
	messages, err := sub.Subscribe(ctx, TopicAttemptSubmitted)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicAttemptSubmitted, err)
	}

	go func() {
		for msg := range messages {
			var ev AttemptSubmitted
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				logger.Error("undecodable attempt event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			if ev.NeedsReview {
				logger.Warn("attempt needs manual review",
					"attempt_id", ev.AttemptID,
					"learner_id", ev.LearnerID,
					"skills", ev.Skills,
				)
			}
			msg.Ack()
		}
	}()
	return nil
}
