package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Rate-JP/metal-rookie-bot/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedLead is a LeadSource returning a constant.
type fixedLead int

func (f fixedLead) LeadMinutes() int { return int(f) }

// recordingNotifier counts deliveries and closes fired on the first one.
type recordingNotifier struct {
	mu    sync.Mutex
	pre   int
	main  int
	fired chan struct{}
	once  sync.Once
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{fired: make(chan struct{})}
}

func (n *recordingNotifier) NotifyPre(ctx context.Context, lead int) {
	n.mu.Lock()
	n.pre++
	n.mu.Unlock()
	n.once.Do(func() { close(n.fired) })
}

func (n *recordingNotifier) NotifyMain(ctx context.Context) {
	n.mu.Lock()
	n.main++
	n.mu.Unlock()
	n.once.Do(func() { close(n.fired) })
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pre, n.main
}

// TestScheduler_FiresMainOnBoundary pins the clock to a boundary: the
// first event is an immediate main notification. The clock then moves
// just past the boundary so the loop parks on the next pre event
// instead of firing again.
func TestScheduler_FiresMainOnBoundary(t *testing.T) {
	notifier := newRecordingNotifier()
	s := NewScheduler(fixedLead(5), notifier, logging.NewNop())

	var calls int
	var mu sync.Mutex
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return Anchor
		}
		return Anchor.Add(time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-notifier.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not fire on the boundary")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	pre, main := notifier.counts()
	assert.Equal(t, 0, pre)
	assert.Equal(t, 1, main)
}

// TestScheduler_UpdatedRecomputes verifies the wake-up path: with the
// next event hours away, Updated() must make the loop recompute without
// delivering anything.
func TestScheduler_UpdatedRecomputes(t *testing.T) {
	notifier := newRecordingNotifier()
	s := NewScheduler(fixedLead(5), notifier, logging.NewNop())

	// An hour before the first boundary: the pre event is ~55m away.
	recomputed := make(chan struct{}, 4)
	s.now = func() time.Time {
		select {
		case recomputed <- struct{}{}:
		default:
		}
		return Anchor.Add(-time.Hour)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// First computation parks the loop on the timer.
	select {
	case <-recomputed:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler never computed an event")
	}

	s.Updated()

	// The wake-up shows as a second clock read.
	select {
	case <-recomputed:
	case <-time.After(5 * time.Second):
		t.Fatal("Updated() did not wake the scheduler")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	pre, main := notifier.counts()
	assert.Zero(t, pre)
	assert.Zero(t, main)
}

// TestScheduler_UpdatedCoalesces verifies Updated never blocks even when
// no loop is draining the channel.
func TestScheduler_UpdatedCoalesces(t *testing.T) {
	s := NewScheduler(fixedLead(5), newRecordingNotifier(), logging.NewNop())
	for i := 0; i < 10; i++ {
		s.Updated()
	}
}
