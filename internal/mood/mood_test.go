package mood

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAtRoundTripsWholeSeconds(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC)
	m := At("happy", at)

	if !m.Time().Equal(at) {
		t.Errorf("Expected round trip %v, got %v", at, m.Time())
	}
}

func TestAtPreservesSubsecondPrecision(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 30, 5, 250_000_000, time.UTC)
	m := At("happy", at)

	diff := m.Time().Sub(at)
	if diff < 0 {
		diff = -diff
	}
	if diff > time.Microsecond {
		t.Errorf("Round trip drifted by %v", diff)
	}
}

func TestJSONShape(t *testing.T) {
	m := At("happy", time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if decoded["value"] != "happy" {
		t.Errorf("Expected value 'happy', got %v", decoded["value"])
	}
	if _, ok := decoded["timestamp"].(float64); !ok {
		t.Errorf("Expected numeric timestamp, got %T", decoded["timestamp"])
	}
}
