package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
)

// echoT renders "key" or "key{a=1 b=2}" so tests can assert on keys.
func echoT(key string, p i18n.Params) string {
	if len(p) == 0 {
		return key
	}
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return key + "{" + strings.Join(parts, " ") + "}"
}

func seeded() *rand.Rand { return rand.New(rand.NewSource(1)) }

// fixedRand always returns the same values.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return min(r.n, n-1) }

// counter finishes after n steps, 10ms apart.
type counter struct {
	n, steps  int
	cancelled bool
}

func (c *counter) Step(time.Time) (time.Duration, bool) {
	c.steps++
	return 10 * time.Millisecond, c.steps >= c.n
}

func (c *counter) Cancel() { c.cancelled = true }

// run drives every scheduled task on a virtual clock and returns the total
// time slept.
func run(t *testing.T, s *Scheduler) time.Duration {
	t.Helper()
	var total time.Duration
	err := s.Run(context.Background(), func(_ context.Context, d time.Duration) error {
		total += d
		return nil
	})
	require.NoError(t, err)
	return total
}

func TestSchedulerFireSequence(t *testing.T) {
	s := NewScheduler()
	id := uuid.New()
	done := 0
	c := &counter{n: 3}
	s.Schedule(id, c, func() { done++ })

	ticks := s.Drain()
	require.Len(t, ticks, 1)
	require.Empty(t, s.Drain())

	next, ok := s.Fire(ticks[0])
	require.True(t, ok)
	require.Equal(t, 10*time.Millisecond, next.After)

	// Replaying an old tick does nothing.
	_, ok = s.Fire(ticks[0])
	require.False(t, ok)
	require.Equal(t, 1, c.steps)

	next, ok = s.Fire(next)
	require.True(t, ok)
	_, ok = s.Fire(next)
	require.False(t, ok)
	require.Equal(t, 3, c.steps)
	require.Equal(t, 1, done)

	_, live := s.Task(id)
	require.False(t, live)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	id := uuid.New()
	c := &counter{n: 5}
	s.Schedule(id, c, func() { t.Fatal("onDone after cancel") })
	tick := s.Drain()[0]

	require.True(t, s.Cancel(id))
	require.True(t, c.cancelled)
	require.False(t, s.Cancel(id))

	_, ok := s.Fire(tick)
	require.False(t, ok)
	require.Zero(t, c.steps)
}

func TestSchedulerReplaceCancelsOld(t *testing.T) {
	s := NewScheduler()
	id := uuid.New()
	old := &counter{n: 5}
	s.Schedule(id, old, nil)
	stale := s.Drain()[0]

	s.Schedule(id, &counter{n: 1}, nil)
	require.True(t, old.cancelled)

	_, ok := s.Fire(stale)
	require.False(t, ok)
}

func TestSchedulerActive(t *testing.T) {
	s := NewScheduler()
	a, b := uuid.New(), uuid.New()
	s.Schedule(a, &counter{n: 1}, nil)
	s.Schedule(b, &counter{n: 1}, nil)

	require.Equal(t, 2, s.Active(uuid.Nil))
	require.Equal(t, 1, s.Active(a))

	s.CancelAll()
	require.Zero(t, s.Active(uuid.Nil))
	require.Empty(t, s.Drain())
}

func TestSchedulerRunOrdersByDueTime(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Schedule(uuid.New(), &counter{n: 3}, func() { order = append(order, "short") })
	s.Schedule(uuid.New(), &counter{n: 1}, func() { order = append(order, "instant") })

	total := run(t, s)
	require.Equal(t, []string{"instant", "short"}, order)
	require.Equal(t, 20*time.Millisecond, total)
}

func TestSchedulerRunStopsOnContext(t *testing.T) {
	s := NewScheduler()
	s.Schedule(uuid.New(), NewHtop(nil, echoT, seeded()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err := s.Run(ctx, func(context.Context, time.Duration) error {
		steps++
		if steps == 3 {
			cancel()
		}
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
}
