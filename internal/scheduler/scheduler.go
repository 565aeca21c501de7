// Package scheduler implements a FIFO single-flight job queue: at most
// one transcode runs at any instant, each Schedule call is assigned a
// strictly monotonic id, Cancel removes a queued-but-not-yet-started job
// by file identity, and a brief inter-task delay separates consecutive
// runs so the filesystem settles before the next file is considered. A
// dedicated goroutine drains a channel-signaled queue under a mutex.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
)

// DefaultInterTaskDelay is the settle window between consecutive runs.
const DefaultInterTaskDelay = 10 * time.Second

// Handler processes one scheduled file. An error is logged against the
// task's id and never prevents the next task from starting.
type Handler func(ctx context.Context, file string) error

type job struct {
	id   int
	file string
}

// Scheduler is a single-flight FIFO queue of files awaiting processing.
type Scheduler struct {
	handler        Handler
	logger         applog.Logger
	interTaskDelay time.Duration

	mu        sync.Mutex
	queue     []job
	nextID    int
	runningID int

	wake chan struct{}
	done chan struct{}
}

// New builds a Scheduler. handler is invoked once per scheduled file, in
// FIFO order, never concurrently with itself.
func New(handler Handler, logger applog.Logger) *Scheduler {
	return &Scheduler{
		handler:        handler,
		logger:         logger,
		interTaskDelay: DefaultInterTaskDelay,
		wake:           make(chan struct{}, 1),
		done:           make(chan struct{}),
	}
}

// Start launches the background goroutine that drains the queue. It
// returns immediately; the loop runs until ctx is cancelled, at which
// point any still-queued jobs are dropped without running.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Schedule enqueues file and returns its assigned id, a strictly
// monotonic sequence starting at 1.
func (s *Scheduler) Schedule(file string) int {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.queue = append(s.queue, job{id: id, file: file})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return id
}

// Cancel removes file from the queue if it is still waiting to start.
// Since the queue only ever holds jobs that have not yet started, any
// match found here is by construction not the currently running job —
// cancelling a job already in flight is a no-op.
func (s *Scheduler) Cancel(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, j := range s.queue {
		if j.file == file {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) popNext() (job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return job{}, false
	}
	j := s.queue[0]
	s.queue = s.queue[1:]
	s.runningID = j.id
	return j, true
}

func (s *Scheduler) clearRunning() {
	s.mu.Lock()
	s.runningID = 0
	s.mu.Unlock()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		for {
			j, ok := s.popNext()
			if !ok {
				break
			}
			s.runTask(ctx, j)
			s.clearRunning()

			select {
			case <-ctx.Done():
				return
			case <-time.After(s.interTaskDelay):
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// runTask invokes the handler, isolating a panic or error to this one
// task id so it never blocks subsequent tasks.
func (s *Scheduler) runTask(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Errorf("scheduler: task %d panicked: %v", j.id, r)
		}
	}()
	if err := s.handler(ctx, j.file); err != nil && s.logger != nil {
		s.logger.Errorf("scheduler: task %d failed: %v", j.id, err)
	}
}

// Wait blocks until the scheduler's loop goroutine has exited (its
// context was cancelled and any in-flight task returned).
func (s *Scheduler) Wait() {
	<-s.done
}

// Idle reports whether the queue is empty and no task is currently
// running — used by a non-watching run to know when it's safe to exit
// after its initial scan has drained.
func (s *Scheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) == 0 && s.runningID == 0
}
