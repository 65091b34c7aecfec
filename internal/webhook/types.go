package webhook

import (
	"time"

	"github.com/emotibot/moodrelay/internal/mood"
)

// Event types that can trigger webhooks
const (
	EventMoodUpdated = "mood.updated"
)

// Event represents a mood change delivered to subscribed webhook targets.
type Event struct {
	Type       string    `json:"event"`
	Timestamp  time.Time `json:"timestamp"`
	Mood       mood.Mood `json:"mood"`
	DeliveryID string    `json:"deliveryId"`
}
