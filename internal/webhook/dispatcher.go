// Package webhook fans mood updates out to configured HTTP targets. Delivery
// runs on a single background worker fed by a bounded queue, so dispatching
// never slows down the mood update path.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emotibot/moodrelay/internal/mood"
	"github.com/emotibot/moodrelay/internal/telemetry"
)

const (
	// queueSize is the buffer size for the event queue
	queueSize = 256

	maxRetries     = 2
	requestTimeout = 10 * time.Second
	retryBackoff   = time.Second
)

// Dispatcher manages webhook event delivery to a static set of target URLs.
type Dispatcher struct {
	targets []string
	secret  string
	client  *http.Client
	log     zerolog.Logger
	queue   chan Event
	done    chan struct{}
	closed  int32 // atomic flag to prevent double-close
}

// NewDispatcher creates a dispatcher for the given target URLs. An empty
// secret disables signing.
func NewDispatcher(targets []string, secret string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		targets: targets,
		secret:  secret,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log.With().Str("component", "webhook").Logger(),
		queue:   make(chan Event, queueSize),
		done:    make(chan struct{}),
	}
}

// Start begins processing events from the queue.
func (d *Dispatcher) Start() {
	go d.worker()
}

// Close gracefully shuts down the dispatcher, waiting for queued deliveries
// to drain. Safe to call multiple times.
func (d *Dispatcher) Close() error {
	if !atomic.CompareAndSwapInt32(&d.closed, 0, 1) {
		return nil // Already closed
	}
	close(d.queue)
	<-d.done
	return nil
}

// DispatchMoodUpdate queues a mood change for delivery. Non-blocking: if the
// queue is full the event is dropped with a warning rather than slowing the
// caller.
func (d *Dispatcher) DispatchMoodUpdate(m mood.Mood) {
	if len(d.targets) == 0 {
		return
	}
	event := Event{
		Type:       EventMoodUpdated,
		Timestamp:  time.Now().UTC(),
		Mood:       m,
		DeliveryID: uuid.New().String(),
	}
	select {
	case d.queue <- event:
	default:
		d.log.Warn().Str("delivery_id", event.DeliveryID).Msg("queue full, dropping event")
		telemetry.WebhookDeliveries.WithLabelValues("dropped").Inc()
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for event := range d.queue {
		payload, err := json.Marshal(event)
		if err != nil {
			d.log.Error().Err(err).Msg("failed to marshal event payload")
			continue
		}
		for _, target := range d.targets {
			d.deliverWithRetry(target, event, payload)
		}
	}
}

// deliverWithRetry posts the payload to a single target, retrying transient
// failures with a flat backoff.
func (d *Dispatcher) deliverWithRetry(target string, event Event, payload []byte) {
	var signature string
	if d.secret != "" {
		signature = ComputeHMAC(payload, d.secret)
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
		if err != nil {
			cancel()
			d.log.Error().Err(err).Str("url", target).Msg("failed to create request")
			telemetry.WebhookDeliveries.WithLabelValues("error").Inc()
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Mood-Event", event.Type)
		req.Header.Set("X-Mood-Delivery", event.DeliveryID)
		if signature != "" {
			req.Header.Set("X-Mood-Signature", signature)
		}

		resp, err := d.client.Do(req)
		cancel()
		if err != nil {
			d.log.Warn().Err(err).Str("url", target).Int("attempt", attempt+1).Msg("delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			d.log.Debug().
				Str("url", target).
				Str("delivery_id", event.DeliveryID).
				Int("status", resp.StatusCode).
				Msg("delivered")
			telemetry.WebhookDeliveries.WithLabelValues("success").Inc()
			return
		}
		d.log.Warn().
			Str("url", target).
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Msg("delivery rejected")
	}
	telemetry.WebhookDeliveries.WithLabelValues("failed").Inc()
}
