// Package mood defines the shared mood snapshot type used across the
// store, API, client and CLI layers.
package mood

import (
	"math"
	"time"
)

// Mood is an immutable snapshot of the relay's current mood. Timestamp is
// Unix seconds with sub-second precision, matching the wire format consumed
// by existing clients.
type Mood struct {
	Value     string  `json:"value" yaml:"value"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`
}

// At builds a snapshot observed at the given time. Seconds and the
// sub-second fraction are combined separately so whole seconds survive the
// float representation exactly.
func At(value string, t time.Time) Mood {
	return Mood{
		Value:     value,
		Timestamp: float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second),
	}
}

// Time converts the snapshot's timestamp back to a time.Time.
func (m Mood) Time() time.Time {
	sec, frac := math.Modf(m.Timestamp)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
