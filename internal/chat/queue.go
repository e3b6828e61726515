package chat

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
)

const (
	eventQueueCapacity   = 256
	requestQueueCapacity = 64
)

// Queue is the bounded multi-producer, single-consumer event queue. A full
// queue blocks the producer; state-affecting notifications are never
// dropped.
type Queue struct {
	ch chan Event
}

// NewQueue returns an empty event queue.
func NewQueue() *Queue {
	return &Queue{ch: make(chan Event, eventQueueCapacity)}
}

// Enqueue adds an event, blocking while the queue is full.
func (q *Queue) Enqueue(ev Event) {
	q.ch <- ev
}

// Chan exposes the receive side for the single consumer.
func (q *Queue) Chan() <-chan Event {
	return q.ch
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// CPU policies for the worker pool.
const (
	CPUSingle   = "single"
	CPUMultiple = "multiple"
)

// Request is one unit of blocking work for the pool. Run executes on a
// worker goroutine and returns the event to re-inject; a nil event is
// swallowed. Failures are reported through the returned event, never as a
// panic into the loop.
type Request struct {
	Kind string
	Run  func(ctx context.Context) Event
}

// Workers executes blocking requests off the dispatch loop and feeds their
// results back through the event queue.
type Workers struct {
	requests chan Request
	queue    *Queue
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkers starts a pool sized by policy: one goroutine for "single",
// one per CPU otherwise.
func NewWorkers(policy string, queue *Queue) *Workers {
	n := runtime.NumCPU()
	if policy == CPUSingle || n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Workers{
		requests: make(chan Request, requestQueueCapacity),
		queue:    queue,
		cancel:   cancel,
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
	return w
}

// Submit enqueues a request, blocking while the request queue is full.
func (w *Workers) Submit(req Request) {
	events.Worker.Queue(req.Kind)
	w.requests <- req
}

// Stop cancels in-flight work and waits for the pool to drain.
func (w *Workers) Stop() {
	w.cancel()
	close(w.requests)
	w.wg.Wait()
}

func (w *Workers) run(ctx context.Context) {
	defer w.wg.Done()
	for req := range w.requests {
		if ctx.Err() != nil {
			return
		}
		ev := w.execute(ctx, req)
		if ev == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case w.queue.ch <- ev:
		}
	}
}

// execute runs one request, converting a panic into an error event so a
// misbehaving request cannot take the pool down.
func (w *Workers) execute(ctx context.Context, req Request) (ev Event) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("request %s panicked: %v", req.Kind, r)
			logging.Error(logging.General, err)
			ev = ErrorEvent{Category: logging.General, Err: err}
		}
		events.Worker.Done(req.Kind, nil)
	}()
	return req.Run(ctx)
}
