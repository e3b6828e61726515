package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWorkersFeedResultsBackThroughQueue(t *testing.T) {
	queue := NewQueue()
	workers := NewWorkers(CPUSingle, queue)
	defer workers.Stop()

	workers.Submit(Request{
		Kind: "probe",
		Run: func(context.Context) Event {
			return Refresh{}
		},
	})
	select {
	case ev := <-queue.Chan():
		if ev.Name() != "refresh" {
			t.Fatalf("expected refresh, got %s", ev.Name())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for worker result")
	}
}

func TestWorkersSwallowNilResults(t *testing.T) {
	queue := NewQueue()
	workers := NewWorkers(CPUSingle, queue)
	defer workers.Stop()

	workers.Submit(Request{Kind: "silent", Run: func(context.Context) Event { return nil }})
	workers.Submit(Request{Kind: "loud", Run: func(context.Context) Event { return Refresh{} }})

	// Single-worker ordering: the first queued event must be the second
	// request's; the nil result produced nothing.
	select {
	case ev := <-queue.Chan():
		if ev.Name() != "refresh" {
			t.Fatalf("expected nil result swallowed, got %s first", ev.Name())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for worker result")
	}
	if queue.Len() != 0 {
		t.Fatalf("expected nothing else queued, got %d", queue.Len())
	}
}

func TestWorkerPanicBecomesErrorEvent(t *testing.T) {
	queue := NewQueue()
	workers := NewWorkers(CPUSingle, queue)
	defer workers.Stop()

	workers.Submit(Request{
		Kind: "explode",
		Run:  func(context.Context) Event { panic("boom") },
	})
	workers.Submit(Request{
		Kind: "survivor",
		Run:  func(context.Context) Event { return Refresh{} },
	})

	select {
	case ev := <-queue.Chan():
		errEv, ok := ev.(ErrorEvent)
		if !ok {
			t.Fatalf("expected error event, got %s", ev.Name())
		}
		if !strings.Contains(errEv.Err.Error(), "explode") {
			t.Fatalf("expected request kind in error, got %v", errEv.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for recovered error")
	}

	// The pool survives the panic and keeps serving requests.
	select {
	case ev := <-queue.Chan():
		if ev.Name() != "refresh" {
			t.Fatalf("expected the follow-up request served, got %s", ev.Name())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for follow-up result")
	}
}

func TestErrorEventWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	ev := ErrorEvent{Err: cause}
	if !errors.Is(ev.Err, cause) {
		t.Fatalf("expected cause preserved")
	}
}
