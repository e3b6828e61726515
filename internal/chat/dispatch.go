package chat

import (
	"fmt"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
)

// Dispatch applies one event to the state and reports whether the loop
// should continue. Exactly one event is applied at a time; a panic inside a
// transition is caught here, logged, and does not stop the loop.
// Transitions build complete sub-states before assignment, so a recovered
// panic leaves invariants intact.
func Dispatch(st *ChatState, ev Event) (cont bool) {
	cont = true
	defer func() {
		if r := recover(); r != nil {
			events.App.Recovered(ev.Name(), r)
			logging.Error(logging.General, fmt.Errorf("event %s: %v", ev.Name(), r))
		}
	}()
	events.App.Dispatch(ev.Name())

	switch ev := ev.(type) {
	case TeamJoined:
		st.applyTeamJoined(ev)
	case TeamJoinFailed:
		logging.Error(logging.API, fmt.Errorf("join team %s: %w", ev.TeamID, ev.Err))
	case TeamLeft:
		st.applyTeamLeft(ev.TeamID)
	case TeamUpdated:
		st.applyTeamUpdated(ev.Team)
	case ChannelsLoaded:
		st.applyChannelsLoaded(ev)
	case ChannelRemoved:
		st.applyChannelRemoved(ev.ChannelID)
	case PostsLoaded:
		st.applyPostsLoaded(ev)
	case PostReceived:
		st.applyPostReceived(ev.Post)
	case PostEdited:
		st.applyPostEdited(ev.Post)
	case PostDeleted:
		st.applyPostDeleted(ev.PostID, ev.ChannelID)
	case PostAcked:
		st.applyPostAcked(ev)
	case UserTyping:
		st.NoteTyping(ev.ChannelID, ev.UserID, time.Now())
	case TypingTick:
		st.ExpireTyping(ev.Now)
	case UsersLoaded:
		st.applyUsersLoaded(ev)
	case StatusesLoaded:
		st.applyStatusesLoaded(ev)
	case StatusChanged:
		st.Users.SetStatus(ev.UserID, ev.Status)
	case PreferenceSaved:
		// A failed save is reported but the local order stands.
		if ev.Err != nil {
			logging.Error(logging.API, fmt.Errorf("save preference: %w", ev.Err))
		}
	case SpellChecked:
		st.applySpellChecked(ev)
	case EmojiLoaded:
		st.applyEmojiLoaded(ev)
	case TimezoneTick:
		st.refreshTimezone()
	case StatusTick:
		st.StartStatusFetch()
	case SocketState:
		st.applySocketState(ev)
	case Refresh:
		st.requestRefresh()
	case ErrorEvent:
		logging.Error(ev.Category, ev.Err)
	case Shutdown:
		events.App.Shutdown("event")
		return false
	}
	return cont
}

func (st *ChatState) refreshTimezone() {
	// time.Local tracks the system zone at process start; re-reading keeps
	// message timestamps honest across a zone change.
	if loc, err := time.LoadLocation(""); err == nil && loc != nil {
		st.Timezone = loc
	} else {
		st.Timezone = time.Local
	}
}

func (st *ChatState) applySocketState(ev SocketState) {
	st.Connected = ev.Connected
	if ev.Err != nil {
		logging.Error(logging.WebSocket, ev.Err)
	}
	if ev.Connected {
		// Missed pushes leave gaps; refetch the focused channel.
		st.requestRefresh()
	}
}
