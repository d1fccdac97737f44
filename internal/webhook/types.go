package webhook

import (
	"time"

	"github.com/feral-file/ff-rental-indexer/internal/messaging"
)

// Headers sent with every delivery
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderEventID   = "X-Webhook-Event-ID"
	HeaderEventType = "X-Webhook-Event-Type"
	HeaderTimestamp = "X-Webhook-Timestamp"

	userAgent = "FF-Rental-Indexer-Webhook/1.0"

	// maxResponseBody caps how much of a response is read for logging
	maxResponseBody = 4 * 1024
)

// Event is the body delivered to a webhook endpoint
type Event struct {
	// EventID is the change id, a ULID, so receivers can deduplicate redeliveries
	EventID string `json:"event_id"`
	// EventType is the subject of the change, e.g. "projections.rental_granted"
	EventType string                     `json:"event_type"`
	Timestamp time.Time                  `json:"timestamp"`
	Data      messaging.ProjectionChange `json:"data"`
}

// NewEvent wraps a projection change for delivery
func NewEvent(change messaging.ProjectionChange) Event {
	return Event{
		EventID:   change.ID,
		EventType: change.Subject(),
		Timestamp: change.AppliedAt,
		Data:      change,
	}
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	StatusCode int
	// Body is the response body, limited to 4KB
	Body string
}
