package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/emotibot/moodrelay/internal/mood"
	"github.com/emotibot/moodrelay/internal/store"
	"github.com/emotibot/moodrelay/internal/telemetry"
	"github.com/emotibot/moodrelay/internal/webhook"
)

// Server wires the mood store to its HTTP surface: request/response reads and
// writes plus the SSE change stream.
type Server struct {
	store          *store.Store
	dispatcher     *webhook.Dispatcher // optional; nil disables webhooks
	heartbeat      time.Duration
	rateLimitPerIP int
	log            zerolog.Logger
}

func NewServer(st *store.Store, dispatcher *webhook.Dispatcher, heartbeat time.Duration, rateLimitPerIP int, log zerolog.Logger) *Server {
	return &Server{
		store:          st,
		dispatcher:     dispatcher,
		heartbeat:      heartbeat,
		rateLimitPerIP: rateLimitPerIP,
		log:            log.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(telemetry.Middleware)

	// request/response endpoints get a hard timeout
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		r.Get("/", s.handleHealth)
		r.Get("/healthz", s.handleHealth)
		r.Get("/mood", s.handleGetMood)
		r.With(httprate.LimitByIP(s.rateLimitPerIP, time.Minute)).
			Put("/mood", s.handleUpdateMood)
	})

	// the stream is long-lived; no timeout middleware here
	r.Get("/mood/stream", s.handleStreamMood)

	return r
}

// ---- handlers ----

type updateRequest struct {
	Mood string `json:"mood"`
}

type moodResponse struct {
	Mood mood.Mood `json:"mood"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "moodrelay",
	})
}

func (s *Server) handleGetMood(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, moodResponse{Mood: s.store.Read()})
}

func (s *Server) handleUpdateMood(w http.ResponseWriter, r *http.Request) {
	// Limit request body size to prevent memory exhaustion
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			RequestTooLargeError(w, r, "Request body too large")
			return
		}
		BadRequestError(w, r, ErrCodeInvalidJSON, "Invalid JSON: expected field 'mood'")
		return
	}

	if req.Mood == "" {
		ValidationError(w, r, "Validation failed for one or more fields", map[string]string{
			"mood": "Mood is required",
		})
		return
	}

	updated := s.store.Set(req.Mood)
	telemetry.MoodUpdates.Inc()
	if s.dispatcher != nil {
		s.dispatcher.DispatchMoodUpdate(updated)
	}

	s.log.Info().
		Str("mood", updated.Value).
		Uint64("version", s.store.Version()).
		Msg("mood updated")

	writeJSON(w, http.StatusOK, moodResponse{Mood: updated})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
