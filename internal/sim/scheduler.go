// Package sim implements the animated command outputs (scan, decrypt, wget,
// htop, weather, boot) and the scheduler that drives them.
//
// Every simulation is a small state machine: a phase enum plus the output
// accumulated so far. The scheduler owns no timers of its own. It hands out
// Tick values saying "step task X again after d"; whoever owns the clock
// (the Bubble Tea program via tea.Tick, or Run with real sleeps) waits and
// feeds the tick back through Fire. Cancelling a task bumps nothing and
// frees nothing on the clock side: a stale tick simply finds no matching
// entry and is dropped.
package sim

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is a timed state machine. Step advances it one phase and reports how
// long to wait before the next step, or done once it has finished.
type Task interface {
	Step(now time.Time) (next time.Duration, done bool)
}

// Canceler is implemented by tasks holding resources (goroutines, HTTP
// requests) that must be released when the task is torn down early.
type Canceler interface {
	Cancel()
}

// KeyHandler is implemented by interactive tasks. HandleKey returns true
// when the key asks the task to exit.
type KeyHandler interface {
	HandleKey(key string) bool
}

// Tick is a timer handle: step task ID after After, provided the task's
// sequence number still equals Seq.
type Tick struct {
	ID    uuid.UUID
	Seq   uint64
	After time.Duration
}

type job struct {
	task   Task
	seq    uint64
	onDone func()
}

// Scheduler tracks live tasks keyed by the id of the line they draw into.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*job
	queue []Tick
	seq   uint64
}

// NewScheduler creates an empty scheduler. Tasks step on the wall clock.
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[uuid.UUID]*job),
	}
}

// Schedule registers task under id and queues an immediate first tick.
// A task already registered under id is cancelled and replaced.
// onDone, if set, runs once after the task reports done.
func (s *Scheduler) Schedule(id uuid.UUID, task Task, onDone func()) {
	s.mu.Lock()
	old := s.tasks[id]
	s.seq++
	s.tasks[id] = &job{task: task, seq: s.seq, onDone: onDone}
	s.queue = append(s.queue, Tick{ID: id, Seq: s.seq})
	s.mu.Unlock()

	if old != nil {
		cancel(old.task)
	}
}

// Drain returns and clears the ticks queued by Schedule.
func (s *Scheduler) Drain() []Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

// Fire steps the task behind tick. It returns the follow-up tick and true
// while the task keeps running. Ticks for cancelled, finished or replaced
// tasks are ignored.
func (s *Scheduler) Fire(tick Tick) (Tick, bool) {
	s.mu.Lock()
	e, ok := s.tasks[tick.ID]
	if !ok || e.seq != tick.Seq {
		s.mu.Unlock()
		return Tick{}, false
	}
	s.mu.Unlock()

	// Step runs unlocked: tasks may call back into the session, which may
	// schedule or cancel other tasks.
	next, done := e.task.Step(time.Now())

	s.mu.Lock()
	if cur, ok := s.tasks[tick.ID]; !ok || cur != e {
		// Cancelled or replaced while stepping.
		s.mu.Unlock()
		return Tick{}, false
	}
	if done {
		delete(s.tasks, tick.ID)
		s.mu.Unlock()
		if e.onDone != nil {
			e.onDone()
		}
		return Tick{}, false
	}
	s.seq++
	e.seq = s.seq
	s.mu.Unlock()
	return Tick{ID: tick.ID, Seq: e.seq, After: next}, true
}

// Cancel tears down the task under id. It reports whether one was live.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	e, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	if ok {
		cancel(e.task)
	}
	return ok
}

// CancelAll tears down every task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = make(map[uuid.UUID]*job)
	s.queue = nil
	s.mu.Unlock()

	for _, e := range tasks {
		cancel(e.task)
	}
}

// Active counts live tasks other than except.
func (s *Scheduler) Active(except uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tasks)
	if _, ok := s.tasks[except]; ok {
		n--
	}
	return n
}

// Task returns the live task under id.
func (s *Scheduler) Task(id uuid.UUID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return e.task, true
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// RealSleep is a Sleeper backed by a timer.
func RealSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives every queued task to completion, firing ticks in due order and
// sleeping between them. It returns when no ticks are pending or ctx ends.
// Tasks that never finish (htop) keep Run busy until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, sleep Sleeper) error {
	type pending struct {
		tick Tick
		due  time.Duration
	}
	var (
		clock time.Duration
		queue []pending
	)
	enqueue := func(ticks ...Tick) {
		for _, t := range ticks {
			queue = append(queue, pending{tick: t, due: clock + t.After})
		}
	}

	enqueue(s.Drain()...)
	for len(queue) > 0 {
		sort.SliceStable(queue, func(i, j int) bool { return queue[i].due < queue[j].due })
		p := queue[0]
		queue = queue[1:]

		if wait := p.due - clock; wait > 0 {
			if err := sleep(ctx, wait); err != nil {
				return err
			}
			clock = p.due
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if next, ok := s.Fire(p.tick); ok {
			enqueue(next)
		}
		enqueue(s.Drain()...)
	}
	return nil
}

func cancel(t Task) {
	if c, ok := t.(Canceler); ok {
		c.Cancel()
	}
}
