package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

// newTestScheduler returns a Scheduler whose inter-task delay is negligible, so
// tests don't pay DefaultInterTaskDelay between tasks.
func newTestScheduler(handler Handler) *Scheduler {
	s := New(handler, nil)
	s.interTaskDelay = time.Millisecond
	return s
}

func TestScheduleRunsInFIFOOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	done := make(chan struct{})
	s := newTestScheduler(func(ctx context.Context, file string) error {
		mu.Lock()
		order = append(order, file)
		n := len(order)
		mu.Unlock()
		if n == 3 {
			close(done)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Schedule("a.mkv")
	s.Schedule("b.mkv")
	s.Schedule("c.mkv")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for all three tasks to run")
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"a.mkv", "b.mkv", "c.mkv"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestScheduleAssignsMonotonicIDs(t *testing.T) {
	s := newTestScheduler(func(ctx context.Context, file string) error { return nil })
	id1 := s.Schedule("a.mkv")
	id2 := s.Schedule("b.mkv")
	id3 := s.Schedule("c.mkv")
	if !(id1 < id2 && id2 < id3) {
		t.Fatalf("expected strictly increasing ids, got %d %d %d", id1, id2, id3)
	}
}

func TestCancelRemovesQueuedJob(t *testing.T) {
	var mu sync.Mutex
	var ran []string

	block := make(chan struct{})
	release := make(chan struct{})
	s := newTestScheduler(func(ctx context.Context, file string) error {
		if file == "a.mkv" {
			close(block)
			<-release
		}
		mu.Lock()
		ran = append(ran, file)
		mu.Unlock()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Schedule("a.mkv")
	<-block // a.mkv is now running, still holding the handler

	s.Schedule("b.mkv")
	s.Cancel("b.mkv") // b.mkv never started; safe to cancel while a.mkv runs

	close(release)

	// give the loop time to drain; b.mkv must never appear in ran.
	deadline := time.After(time.Second)
	for {
		mu.Lock()
		done := len(ran) >= 1
		snapshot := append([]string{}, ran...)
		mu.Unlock()
		if done {
			for _, f := range snapshot {
				if f == "b.mkv" {
					t.Fatalf("cancelled job b.mkv ran: %v", snapshot)
				}
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a.mkv to complete")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCancelOfRunningJobIsNoop(t *testing.T) {
	// Cancel only ever scans the queue, which by construction never holds
	// the currently running job, so cancelling its file is a safe no-op.
	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	s := newTestScheduler(func(ctx context.Context, file string) error {
		close(started)
		<-release
		close(finished)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Schedule("a.mkv")
	<-started
	s.Cancel("a.mkv") // a.mkv is already running; the cancel is ignored
	close(release)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("expected the running job to complete despite Cancel")
	}
}

func TestIdleReflectsQueueAndRunningState(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := newTestScheduler(func(ctx context.Context, file string) error {
		close(started)
		<-release
		return nil
	})

	if !s.Idle() {
		t.Fatalf("expected a fresh scheduler to be idle")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Schedule("a.mkv")
	<-started

	if s.Idle() {
		t.Fatalf("expected scheduler to be busy while a task runs")
	}

	close(release)

	deadline := time.After(time.Second)
	for s.Idle() == false {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for scheduler to go idle")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
