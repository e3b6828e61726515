package client

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/gorilla/websocket"
)

// Push is a typed server push notification.
type Push interface {
	pushKind() string
}

type PostedPush struct{ Post types.Post }

type PostEditedPush struct{ Post types.Post }

type PostDeletedPush struct {
	PostID    types.PostID
	ChannelID types.ChannelID
}

type TypingPush struct {
	ChannelID types.ChannelID
	UserID    types.UserID
}

type StatusPush struct {
	UserID types.UserID
	Status string
}

type ChannelCreatedPush struct {
	ChannelID types.ChannelID
	TeamID    types.TeamID
}

type ChannelDeletedPush struct {
	ChannelID types.ChannelID
	TeamID    types.TeamID
}

type TeamAddedPush struct{ TeamID types.TeamID }

type TeamRemovedPush struct{ TeamID types.TeamID }

type TeamUpdatedPush struct{ TeamID types.TeamID }

type ConnectionPush struct {
	Connected bool
	Err       error
}

func (PostedPush) pushKind() string         { return "posted" }
func (PostEditedPush) pushKind() string     { return "post_edited" }
func (PostDeletedPush) pushKind() string    { return "post_deleted" }
func (TypingPush) pushKind() string         { return "typing" }
func (StatusPush) pushKind() string         { return "status_change" }
func (ChannelCreatedPush) pushKind() string { return "channel_created" }
func (ChannelDeletedPush) pushKind() string { return "channel_deleted" }
func (TeamAddedPush) pushKind() string      { return "added_to_team" }
func (TeamRemovedPush) pushKind() string    { return "leave_team" }
func (TeamUpdatedPush) pushKind() string    { return "update_team" }
func (ConnectionPush) pushKind() string     { return "connection" }

// Socket maintains the websocket connection to the server, reconnecting with
// backoff, and hands decoded pushes to a single handler.
type Socket struct {
	url     string
	token   string
	handler func(Push)
}

// NewSocket prepares a websocket client. handler is invoked from the socket
// goroutine; it must only enqueue, never mutate shared state.
func NewSocket(serverURL, token string, handler func(Push)) *Socket {
	return &Socket{url: wsURL(serverURL), token: token, handler: handler}
}

func wsURL(serverURL string) string {
	u := strings.TrimRight(serverURL, "/")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/api/v4/websocket"
}

// Run connects and pumps pushes until ctx is cancelled. Connection loss
// triggers reconnection with exponential backoff capped at 30s.
func (s *Socket) Run(ctx context.Context) {
	backoff := time.Second
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		attempt++
		events.Socket.Reconnecting(attempt, backoff.String())
		if err != nil {
			logging.Error(logging.WebSocket, err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

func (s *Socket) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.handler(ConnectionPush{Err: err})
		return err
	}
	defer conn.Close()

	auth := map[string]interface{}{
		"seq":    1,
		"action": "authentication_challenge",
		"data":   map[string]string{"token": s.token},
	}
	if err := conn.WriteJSON(auth); err != nil {
		s.handler(ConnectionPush{Err: err})
		return err
	}

	events.Socket.Connected(s.url)
	s.handler(ConnectionPush{Connected: true})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var frame wireFrame
		if err := conn.ReadJSON(&frame); err != nil {
			events.Socket.Disconnected(err)
			s.handler(ConnectionPush{Err: err})
			return err
		}
		if frame.Event == "" {
			continue
		}
		events.Socket.Push(frame.Event)
		if push := frame.decode(); push != nil {
			s.handler(push)
		}
	}
}

type wireFrame struct {
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data"`
	Broadcast struct {
		ChannelID string `json:"channel_id"`
		TeamID    string `json:"team_id"`
		UserID    string `json:"user_id"`
	} `json:"broadcast"`
}

// decode maps a server frame onto a typed push. Unknown events yield nil and
// are dropped.
func (f wireFrame) decode() Push {
	switch f.Event {
	case "posted":
		if post, ok := f.embeddedPost(); ok {
			return PostedPush{Post: post}
		}
	case "post_edited":
		if post, ok := f.embeddedPost(); ok {
			return PostEditedPush{Post: post}
		}
	case "post_deleted":
		if post, ok := f.embeddedPost(); ok {
			return PostDeletedPush{PostID: post.ID, ChannelID: post.ChannelID}
		}
	case "typing":
		return TypingPush{
			ChannelID: types.ChannelID(f.Broadcast.ChannelID),
			UserID:    types.UserID(f.stringField("user_id")),
		}
	case "status_change":
		return StatusPush{
			UserID: types.UserID(f.stringField("user_id")),
			Status: f.stringField("status"),
		}
	case "channel_created":
		return ChannelCreatedPush{
			ChannelID: types.ChannelID(f.stringField("channel_id")),
			TeamID:    types.TeamID(f.stringField("team_id")),
		}
	case "channel_deleted":
		return ChannelDeletedPush{
			ChannelID: types.ChannelID(f.stringField("channel_id")),
			TeamID:    types.TeamID(f.Broadcast.TeamID),
		}
	case "added_to_team":
		return TeamAddedPush{TeamID: types.TeamID(f.stringField("team_id"))}
	case "leave_team":
		return TeamRemovedPush{TeamID: types.TeamID(f.stringField("team_id"))}
	case "update_team":
		return TeamUpdatedPush{TeamID: types.TeamID(f.stringField("team_id"))}
	}
	return nil
}

func (f wireFrame) stringField(key string) string {
	if v, ok := f.Data[key].(string); ok {
		return v
	}
	return ""
}

// embeddedPost extracts the post payload, which the server double-encodes as
// a JSON string inside the frame data.
func (f wireFrame) embeddedPost() (types.Post, bool) {
	raw, ok := f.Data["post"].(string)
	if !ok || raw == "" {
		return types.Post{}, false
	}
	var wp wirePost
	if err := json.Unmarshal([]byte(raw), &wp); err != nil {
		logging.Error(logging.WebSocket, err)
		return types.Post{}, false
	}
	return wp.toPost(), true
}

