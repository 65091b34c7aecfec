// Package client is an HTTP client for the moodrelay API, used by the
// moodctl CLI and usable as a library.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emotibot/moodrelay/internal/mood"
)

// Client is an HTTP client for the moodrelay API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type moodEnvelope struct {
	Mood mood.Mood `json:"mood"`
}

// GetMood retrieves the current mood
func (c *Client) GetMood(ctx context.Context) (mood.Mood, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/mood", nil)
	if err != nil {
		return mood.Mood{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return mood.Mood{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mood.Mood{}, apiError(resp)
	}

	var envelope moodEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return mood.Mood{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return envelope.Mood, nil
}

// SetMood updates the current mood and returns the stored snapshot
func (c *Client) SetMood(ctx context.Context, value string) (mood.Mood, error) {
	body, err := json.Marshal(map[string]string{"mood": value})
	if err != nil {
		return mood.Mood{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/mood", bytes.NewReader(body))
	if err != nil {
		return mood.Mood{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return mood.Mood{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mood.Mood{}, apiError(resp)
	}

	var envelope moodEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return mood.Mood{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return envelope.Mood, nil
}

// Stream connects to the SSE endpoint and calls handle for every mood event
// until ctx is cancelled or the server closes the stream. A server-side
// "error" event terminates the stream with an error; ctx cancellation
// returns nil.
func (c *Client) Stream(ctx context.Context, handle func(mood.Mood)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/mood/stream", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client-side timeout: the stream is long-lived by design.
	httpClient := &http.Client{Transport: c.HTTPClient.Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	scanner := bufio.NewScanner(resp.Body)
	var eventName string
	var data string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, ":"):
			// heartbeat comment
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && data != "":
			if eventName == "error" {
				return decodeStreamError(data)
			}
			var m mood.Mood
			if err := json.Unmarshal([]byte(data), &m); err != nil {
				return fmt.Errorf("failed to decode mood event: %w", err)
			}
			handle(m)
			eventName = ""
			data = ""
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stream read failed: %w", err)
	}
	return nil
}

func decodeStreamError(data string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil || payload.Error == "" {
		return fmt.Errorf("server error event: %s", data)
	}
	return fmt.Errorf("server error: %s", payload.Error)
}

func apiError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
}
