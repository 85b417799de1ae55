package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
)

const publishTimeout = 5 * time.Second

// DetectionEvent is the message published after a batch of detections
// is persisted.
type DetectionEvent struct {
	UserID     int64           `json:"user_id"`
	ImagePath  string          `json:"image_path"`
	Detections []dto.Detection `json:"detections"`
	DetectedAt time.Time       `json:"detected_at"`
}

// Publisher emits detection events to Kafka. When no broker is
// configured the publisher is a no-op, so callers never need to guard
// against a disabled pipeline.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewPublisher(broker, topic string, log *logger.Logger) *Publisher {
	p := &Publisher{log: log}
	if broker == "" {
		return p
	}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return p
}

// PublishDetections sends the event without blocking the request path.
// Broker failures are logged and otherwise ignored.
func (p *Publisher) PublishDetections(userID int64, imagePath string, detections []dto.Detection) {
	if p.writer == nil || len(detections) == 0 {
		return
	}

	event := DetectionEvent{
		UserID:     userID,
		ImagePath:  imagePath,
		Detections: detections,
		DetectedAt: time.Now(),
	}

	go func() {
		payload, err := json.Marshal(event)
		if err != nil {
			p.log.Error("Failed to encode detection event: %v", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(strconv.FormatInt(userID, 10)),
			Value: payload,
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.log.Warning("Failed to publish detection event: %v", err)
		}
	}()
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
