package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

var nowFunc = time.Now

// StartUsersFetch loads the member profiles for a team into the user cache.
func (st *ChatState) StartUsersFetch(teamID types.TeamID) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-users",
		Run: func(ctx context.Context) Event {
			users, err := svc.FetchUsers(ctx, teamID)
			return UsersLoaded{Users: users, Err: err}
		},
	})
}

func (st *ChatState) applyUsersLoaded(ev UsersLoaded) {
	if ev.Err != nil {
		logging.Error(logging.API, fmt.Errorf("load users: %w", ev.Err))
		return
	}
	for _, user := range ev.Users {
		st.Users.Merge(user)
	}
}

// StartStatusFetch polls presence for every cached user.
func (st *ChatState) StartStatusFetch() {
	ids := st.Users.IDs()
	if len(ids) == 0 {
		return
	}
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-statuses",
		Run: func(ctx context.Context) Event {
			statuses, err := svc.FetchStatuses(ctx, ids)
			return StatusesLoaded{Statuses: statuses, Err: err}
		},
	})
}

func (st *ChatState) applyStatusesLoaded(ev StatusesLoaded) {
	if ev.Err != nil {
		logging.Error(logging.API, fmt.Errorf("load statuses: %w", ev.Err))
		return
	}
	for id, status := range ev.Statuses {
		st.Users.SetStatus(id, status)
	}
}

// StartEmojiFetch loads the server's custom emoji once at startup.
func (st *ChatState) StartEmojiFetch() {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-emoji",
		Run: func(ctx context.Context) Event {
			names, err := svc.FetchEmoji(ctx)
			return EmojiLoaded{Names: names, Err: err}
		},
	})
}

// applyEmojiLoaded merges custom emoji into the shared table. The merge
// happens on the dispatch loop so readers never see a torn table.
func (st *ChatState) applyEmojiLoaded(ev EmojiLoaded) {
	if ev.Err != nil {
		logging.Error(logging.API, fmt.Errorf("load emoji: %w", ev.Err))
		return
	}
	st.Resources.Emoji.Merge(ev.Names)
}

// applySpellChecked lands misspelling results on the channel's editor. A
// result for a channel already gone is a no-op; its timer was cancelled but
// a fire may have raced teardown.
func (st *ChatState) applySpellChecked(ev SpellChecked) {
	if ev.Err != nil {
		logging.Error(logging.General, fmt.Errorf("spell check: %w", ev.Err))
		return
	}
	ch, ok := st.Channels.Get(ev.ChannelID)
	if !ok {
		return
	}
	ch.Editor.Misspelled = ev.Misspelled
}
