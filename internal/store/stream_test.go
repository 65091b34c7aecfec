package store

import (
	"context"
	"testing"
	"time"

	"github.com/emotibot/moodrelay/internal/mood"
)

func mustNext(t *testing.T, st *Stream, ctx context.Context) mood.Mood {
	t.Helper()
	m, err := st.Next(ctx)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	return m
}

func TestStreamReplaysCurrentFirst(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	st := s.Subscribe()
	if m := mustNext(t, st, ctx); m.Value != "neutral" {
		t.Errorf("Expected first element 'neutral', got %q", m.Value)
	}
}

func TestStreamOpenedAfterWritesStartsAtLatest(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	s.Set("happy")
	s.Set("sad")

	st := s.Subscribe()
	if m := mustNext(t, st, ctx); m.Value != "sad" {
		t.Errorf("Expected first element 'sad', got %q", m.Value)
	}
}

func TestStreamObservesUpdatesInOrder(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	st := s.Subscribe()
	got := []string{mustNext(t, st, ctx).Value}

	s.Set("happy")
	got = append(got, mustNext(t, st, ctx).Value)
	s.Set("sad")
	got = append(got, mustNext(t, st, ctx).Value)

	want := []string{"neutral", "happy", "sad"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sequence mismatch at %d: got %v, want %v", i, got, want)
		}
	}
	if final := s.Read().Value; final != "sad" {
		t.Errorf("Expected final read 'sad', got %q", final)
	}

	// A second subscription opened after both writes starts at the latest
	// value, never an earlier one.
	st2 := s.Subscribe()
	if m := mustNext(t, st2, ctx); m.Value != "sad" {
		t.Errorf("Late subscriber expected 'sad' first, got %q", m.Value)
	}
}

func TestStreamCoalescesBurst(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	st := s.Subscribe()
	_ = mustNext(t, st, ctx) // neutral

	s.Set("a")
	s.Set("b")
	s.Set("c")

	// The second pull lands on the latest value, skipping "a" and "b".
	if m := mustNext(t, st, ctx); m.Value != "c" {
		t.Errorf("Expected coalesced value 'c', got %q", m.Value)
	}
	if st.last != 3 {
		t.Errorf("Expected cursor at version 3, got %d", st.last)
	}
}

func TestStreamCancellationTerminatesCleanly(t *testing.T) {
	s, _ := newTestStore()

	ctx, cancel := context.WithCancel(context.Background())
	st := s.Subscribe()
	_ = mustNext(t, st, ctx)

	errs := make(chan error, 1)
	go func() {
		_, err := st.Next(ctx)
		errs <- err
	}()

	cancel()

	select {
	case err := <-errs:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout: blocked Next did not return after cancellation")
	}

	// Other subscriptions and writers are unaffected.
	other := s.Subscribe()
	s.Set("happy")
	if m := mustNext(t, other, context.Background()); m.Value != "neutral" && m.Value != "happy" {
		t.Errorf("Unexpected value on unaffected stream: %q", m.Value)
	}
}

func TestStreamCancelledBeforeFirstElement(t *testing.T) {
	s, _ := newTestStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := s.Subscribe()
	if _, err := st.Next(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled before first element, got %v", err)
	}
}

func TestStreamsCoalesceIndependently(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	fast := s.Subscribe()
	slow := s.Subscribe()

	_ = mustNext(t, fast, ctx)
	_ = mustNext(t, slow, ctx)

	// The fast subscriber keeps up with each write; the slow one pulls
	// once at the end and sees only the latest.
	s.Set("a")
	if m := mustNext(t, fast, ctx); m.Value != "a" {
		t.Errorf("Fast subscriber expected 'a', got %q", m.Value)
	}
	s.Set("b")
	if m := mustNext(t, fast, ctx); m.Value != "b" {
		t.Errorf("Fast subscriber expected 'b', got %q", m.Value)
	}
	s.Set("c")
	if m := mustNext(t, fast, ctx); m.Value != "c" {
		t.Errorf("Fast subscriber expected 'c', got %q", m.Value)
	}

	if m := mustNext(t, slow, ctx); m.Value != "c" {
		t.Errorf("Slow subscriber expected only latest 'c', got %q", m.Value)
	}
}
