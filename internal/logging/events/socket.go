package events

import "github.com/ethernet-zero/matterhorn/internal/logging"

type SocketTracer struct{}

var Socket = SocketTracer{}

func (SocketTracer) Connected(url string) {
	logging.Trace("socket.connected", map[string]interface{}{"url": url})
}

func (SocketTracer) Disconnected(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("socket.disconnected", payload)
}

func (SocketTracer) Reconnecting(attempt int, backoff string) {
	logging.Trace("socket.reconnecting", map[string]interface{}{
		"attempt": attempt,
		"backoff": backoff,
	})
}

func (SocketTracer) Push(kind string) {
	logging.Trace("socket.push", map[string]interface{}{"kind": kind})
}
