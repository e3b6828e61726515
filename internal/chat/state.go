// Package chat holds the client's application state and the event dispatch
// core. A single goroutine owns ChatState; every other goroutine interacts
// with it only by enqueuing typed events.
package chat

import (
	"time"

	"github.com/ethernet-zero/matterhorn/internal/client"
	"github.com/ethernet-zero/matterhorn/internal/emoji"
	"github.com/ethernet-zero/matterhorn/internal/runstate"
	"github.com/ethernet-zero/matterhorn/internal/spell"
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/ethernet-zero/matterhorn/internal/zipper"
)

// ChannelSorting selects how the sidebar orders channels.
type ChannelSorting string

const (
	SortDefault     ChannelSorting = "default"
	SortUnreadFirst ChannelSorting = "unread-first"
)

// Options are the configuration values the core branches on. They are
// immutable after setup.
type Options struct {
	ShowTypingIndicator bool
	ChannelSorting      ChannelSorting
	SpellCheck          bool
}

// Resources bundles the shared handles every part of the core may read:
// the service client, the two queues, configuration, and the emoji table.
// All fields are set once during startup.
type Resources struct {
	Service  client.Service
	Events   *Queue
	Workers  *Workers
	Options  Options
	Emoji    *emoji.Table
	Checker  *spell.Checker
	RunState *runstate.Store
}

// ChatState is the root of all client state, owned exclusively by the
// dispatch loop.
type ChatState struct {
	Teams      map[types.TeamID]*TeamState
	TeamZipper *zipper.Zipper[types.TeamID]
	Channels   *store.Channels
	Users      *store.Users
	Me         types.User
	Resources  *Resources

	WindowWidth  int
	WindowHeight int
	Timezone     *time.Location
	History      *History

	Connected bool

	// typing tracks in-flight typing indicators per channel; entries decay
	// on the periodic typing tick.
	typing map[types.ChannelID]map[types.UserID]time.Time
}

// NewChatState builds an empty root around the shared resources.
func NewChatState(me types.User, res *Resources) *ChatState {
	return &ChatState{
		Teams:      make(map[types.TeamID]*TeamState),
		TeamZipper: zipper.FromList[types.TeamID](nil),
		Channels:   store.NewChannels(),
		Users:      store.NewUsers(),
		Me:         me,
		Resources:  res,
		Timezone:   time.Local,
		History:    NewHistory(),
		typing:     make(map[types.ChannelID]map[types.UserID]time.Time),
	}
}

// CurrentTeam returns the focused team's state.
func (st *ChatState) CurrentTeam() (*TeamState, bool) {
	id, ok := st.TeamZipper.Focus()
	if !ok {
		return nil, false
	}
	team, ok := st.Teams[id]
	return team, ok
}

// CurrentChannel returns the focused channel of the focused team.
func (st *ChatState) CurrentChannel() (*store.ClientChannel, bool) {
	team, ok := st.CurrentTeam()
	if !ok {
		return nil, false
	}
	id, ok := team.ChannelZipper.FocusValue()
	if !ok {
		return nil, false
	}
	return st.Channels.Get(id)
}

// NoteTyping records a typing indicator for a user in a channel.
func (st *ChatState) NoteTyping(channelID types.ChannelID, userID types.UserID, now time.Time) {
	if !st.Resources.Options.ShowTypingIndicator || userID == st.Me.ID {
		return
	}
	users, ok := st.typing[channelID]
	if !ok {
		users = make(map[types.UserID]time.Time)
		st.typing[channelID] = users
	}
	users[userID] = now
}

// typingTTL is how long a typing indicator lives without a refresh.
const typingTTL = 3 * time.Second

// ExpireTyping drops indicators older than the decay window.
func (st *ChatState) ExpireTyping(now time.Time) {
	for channelID, users := range st.typing {
		for userID, seen := range users {
			if now.Sub(seen) > typingTTL {
				delete(users, userID)
			}
		}
		if len(users) == 0 {
			delete(st.typing, channelID)
		}
	}
}

// TypingUsers returns the ids currently typing in a channel.
func (st *ChatState) TypingUsers(channelID types.ChannelID) []types.UserID {
	users := st.typing[channelID]
	if len(users) == 0 {
		return nil
	}
	ids := make([]types.UserID, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	return ids
}
