package store

import (
	"context"

	"github.com/emotibot/moodrelay/internal/mood"
)

// Stream is a per-subscriber cursor over the store's change sequence. The
// first element is the snapshot captured at Subscribe time; each later
// element is produced on demand once the store's version moves past the
// cursor. Intermediate moods a slow consumer never asked for are skipped.
//
// A Stream is owned by a single consumer and is not safe for concurrent use.
type Stream struct {
	store   *Store
	initial mood.Mood
	last    uint64
	started bool
}

// Next returns the next mood in the sequence, blocking until one is
// available. Cancelling ctx ends the sequence: Next returns ctx.Err(), which
// callers should treat as normal termination rather than a fault.
func (st *Stream) Next(ctx context.Context) (mood.Mood, error) {
	if !st.started {
		if err := ctx.Err(); err != nil {
			return mood.Mood{}, err
		}
		st.started = true
		return st.initial, nil
	}

	m, v, err := st.store.WaitNewerThan(ctx, st.last)
	if err != nil {
		return mood.Mood{}, err
	}
	st.last = v
	return m, nil
}
