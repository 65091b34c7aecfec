package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/emotibot/moodrelay/internal/mood"
	"github.com/emotibot/moodrelay/internal/telemetry"
)

// handleStreamMood serves the mood change stream over SSE. The current mood
// is pushed immediately on connect, then one unnamed data event per update
// observed by this subscriber. Comment pings keep idle connections alive
// through proxies. Client disconnect cancels the subscription; internal
// faults surface as a terminal "error" event before the stream closes.
func (s *Server) handleStreamMood(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		InternalError(w, r, "Streaming unsupported by this connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	subscriber := uuid.NewString()
	log := s.log.With().Str("subscriber", subscriber).Logger()

	telemetry.SSEClients.Inc()
	defer telemetry.SSEClients.Dec()
	log.Debug().Msg("sse client connected")
	defer log.Debug().Msg("sse client disconnected")

	stream := s.store.Subscribe()

	// The stream pull runs in its own goroutine so heartbeats keep flowing
	// while Next blocks waiting for the store's version to move.
	moods := make(chan mood.Mood)
	faults := make(chan error, 1)
	go func() {
		defer close(moods)
		for {
			m, err := stream.Next(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					faults <- err
				}
				return
			}
			select {
			case moods <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case m, ok := <-moods:
			if !ok {
				select {
				case err := <-faults:
					writeSSEError(w, flusher, err)
				default:
				}
				return
			}
			data, err := json.Marshal(m)
			if err != nil {
				writeSSEError(w, flusher, err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

// writeSSEError emits a terminal error event. The stream closes right after.
func writeSSEError(w http.ResponseWriter, flusher http.Flusher, err error) {
	payload, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return
	}
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
	flusher.Flush()
}
