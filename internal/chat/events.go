package chat

import (
	"time"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// Event is one unit of work for the dispatch loop. Async results are tagged
// variants with typed payloads rather than opaque closures, so the queue
// stays inspectable and transitions stay testable.
type Event interface {
	Name() string
}

// TeamJoined carries everything fetched off the critical path for a join:
// metadata, the channel set, and the last-run channel bias, applied in one
// transition.
type TeamJoined struct {
	Team     types.Team
	Channels []types.Channel
	LastRun  types.ChannelID
}

type TeamJoinFailed struct {
	TeamID types.TeamID
	Err    error
}

type TeamLeft struct {
	TeamID types.TeamID
}

type TeamUpdated struct {
	Team types.Team
}

type ChannelsLoaded struct {
	TeamID   types.TeamID
	Channels []types.Channel
	Err      error
}

type ChannelRemoved struct {
	ChannelID types.ChannelID
}

// PostsLoaded delivers a page of history for a channel, or for a thread
// when RootID is set.
type PostsLoaded struct {
	ChannelID types.ChannelID
	RootID    types.PostID
	Posts     []types.Post
	HasMore   bool
	Err       error
}

type PostReceived struct {
	Post types.Post
}

type PostEdited struct {
	Post types.Post
}

type PostDeleted struct {
	PostID    types.PostID
	ChannelID types.ChannelID
}

// PostAcked resolves a pending optimistic post with the server's copy.
type PostAcked struct {
	PendingID types.PostID
	Post      types.Post
	Err       error
}

type UserTyping struct {
	ChannelID types.ChannelID
	UserID    types.UserID
}

type TypingTick struct {
	Now time.Time
}

type UsersLoaded struct {
	Users []types.User
	Err   error
}

type StatusesLoaded struct {
	Statuses map[types.UserID]string
	Err      error
}

type StatusChanged struct {
	UserID types.UserID
	Status string
}

type PreferenceSaved struct {
	Err error
}

type SpellChecked struct {
	ChannelID  types.ChannelID
	Misspelled map[string]struct{}
	Err        error
}

type EmojiLoaded struct {
	Names []string
	Err   error
}

type TimezoneTick struct{}

// StatusTick triggers a presence poll for every cached user.
type StatusTick struct{}

type SocketState struct {
	Connected bool
	Err       error
}

// Refresh kicks off the first live-data fetch after startup.
type Refresh struct{}

// ErrorEvent surfaces a worker failure as a log-and-continue transition.
type ErrorEvent struct {
	Category logging.Category
	Err      error
}

// Shutdown terminates the dispatch loop without draining the queue.
type Shutdown struct{}

func (TeamJoined) Name() string      { return "team-joined" }
func (TeamJoinFailed) Name() string  { return "team-join-failed" }
func (TeamLeft) Name() string        { return "team-left" }
func (TeamUpdated) Name() string     { return "team-updated" }
func (ChannelsLoaded) Name() string  { return "channels-loaded" }
func (ChannelRemoved) Name() string  { return "channel-removed" }
func (PostsLoaded) Name() string     { return "posts-loaded" }
func (PostReceived) Name() string    { return "post-received" }
func (PostEdited) Name() string      { return "post-edited" }
func (PostDeleted) Name() string     { return "post-deleted" }
func (PostAcked) Name() string       { return "post-acked" }
func (UserTyping) Name() string      { return "user-typing" }
func (TypingTick) Name() string      { return "typing-tick" }
func (UsersLoaded) Name() string     { return "users-loaded" }
func (StatusesLoaded) Name() string  { return "statuses-loaded" }
func (StatusChanged) Name() string   { return "status-changed" }
func (PreferenceSaved) Name() string { return "preference-saved" }
func (SpellChecked) Name() string    { return "spell-checked" }
func (EmojiLoaded) Name() string     { return "emoji-loaded" }
func (TimezoneTick) Name() string    { return "timezone-tick" }
func (StatusTick) Name() string      { return "status-tick" }
func (SocketState) Name() string     { return "socket-state" }
func (Refresh) Name() string         { return "refresh" }
func (ErrorEvent) Name() string      { return "error" }
func (Shutdown) Name() string        { return "shutdown" }
