package events

import (
	"testing"

	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
)

func TestPublisherDisabledWithoutBroker(t *testing.T) {
	p := NewPublisher("", "trash_detections", logger.New(t.TempDir()))

	// Must be safe no-ops with no broker configured.
	p.PublishDetections(1, "/static/uploads/a.jpg", []dto.Detection{
		{TrashType: "Plastic Bottle", Confidence: 0.9},
	})
	if err := p.Close(); err != nil {
		t.Fatalf("Close on disabled publisher must not error: %v", err)
	}
}
