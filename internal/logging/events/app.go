package events

import "github.com/ethernet-zero/matterhorn/internal/logging"

type AppTracer struct{}

type WorkerTracer struct{}

var (
	App    = AppTracer{}
	Worker = WorkerTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Shutdown(reason string) {
	logging.Trace("app.shutdown", map[string]interface{}{"reason": reason})
}

func (AppTracer) Dispatch(event string) {
	logging.Trace("app.dispatch", map[string]interface{}{"event": event})
}

func (AppTracer) Recovered(event string, panicValue interface{}) {
	logging.Trace("app.recovered", map[string]interface{}{
		"event": event,
		"panic": panicValue,
	})
}

func (WorkerTracer) Queue(kind string) {
	logging.Trace("worker.queue", map[string]interface{}{"kind": kind})
}

func (WorkerTracer) Done(kind string, err error) {
	payload := map[string]interface{}{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("worker.done", payload)
}
