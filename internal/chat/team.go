package chat

import (
	"github.com/ethernet-zero/matterhorn/internal/editor"
	"github.com/ethernet-zero/matterhorn/internal/overlay"
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/ethernet-zero/matterhorn/internal/zipper"
)

// Mode is the modal UI state of one team view.
type Mode int

const (
	ModeMain Mode = iota
	ModeChannelSelect
	ModeUserList
	ModeThemeList
	ModeEmojiList
	ModePostList
	ModeMessageSelect
)

// ThreadInterface is a popped-out thread view: the same message-list shape
// as a channel pane, keyed by root post instead of channel.
type ThreadInterface struct {
	ChannelID types.ChannelID
	RootID    types.PostID
	Posts     *store.PostList
	Editor    *editor.EditState
	Select    *store.SelectState
}

// Close cancels the thread editor's owned timers.
func (t *ThreadInterface) Close() {
	if t != nil && t.Editor != nil {
		t.Editor.Close()
	}
}

// NotifyPrefs are the per-team notification preferences.
type NotifyPrefs struct {
	Desktop     string
	MarkUnread  string
	PushEnabled bool
}

// TeamState aggregates everything scoped to one joined team.
type TeamState struct {
	ID   types.TeamID
	Team types.Team

	mode      Mode
	modeStack []Mode

	ChannelZipper *zipper.Grouped[types.ChannelID]
	Overlay       *overlay.List
	Thread        *ThreadInterface
	Prefs         NotifyPrefs

	// PendingChannel is a channel change requested before its posts have
	// loaded; focus moves once the load event arrives.
	PendingChannel types.ChannelID
	// RecentChannel supports jump-back navigation.
	RecentChannel types.ChannelID
	ReturnChannel types.ChannelID
}

// NewTeamState builds team state around server metadata with an empty
// channel zipper and Main mode.
func NewTeamState(team types.Team) *TeamState {
	return &TeamState{
		ID:            team.ID,
		Team:          team,
		mode:          ModeMain,
		ChannelZipper: zipper.FromGroups[types.ChannelID](nil, nil),
	}
}

// Mode returns the current UI mode.
func (t *TeamState) Mode() Mode {
	return t.mode
}

// PushMode enters a new mode, remembering the previous one for PopMode.
func (t *TeamState) PushMode(mode Mode) {
	t.modeStack = append(t.modeStack, t.mode)
	t.mode = mode
}

// PopMode returns to the previously pushed mode. Popping past the base of
// the stack lands on Main.
func (t *TeamState) PopMode() Mode {
	if len(t.modeStack) == 0 {
		t.mode = ModeMain
		return t.mode
	}
	t.mode = t.modeStack[len(t.modeStack)-1]
	t.modeStack = t.modeStack[:len(t.modeStack)-1]
	return t.mode
}

// ResetMode drops the whole stack and returns to Main.
func (t *TeamState) ResetMode() {
	t.modeStack = nil
	t.mode = ModeMain
	t.Overlay = nil
}

// Close tears down owned sub-state when the team is removed.
func (t *TeamState) Close() {
	t.Thread.Close()
	t.Thread = nil
	t.Overlay = nil
}
