package chat

import (
	"context"
	"sort"

	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
	"github.com/ethernet-zero/matterhorn/internal/spell"
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/ethernet-zero/matterhorn/internal/zipper"
)

// Sidebar group tags, in render order.
const (
	groupUnread   = "unread"
	groupChannels = "channels"
	groupPrivate  = "private"
	groupDirect   = "direct"
)

// attachChannels builds client channels for freshly seen server channels,
// inserts them into the global table, and rebuilds the team's zipper.
// Channels already in the table keep their state.
func (st *ChatState) attachChannels(team *TeamState, channels []types.Channel) {
	for _, ch := range channels {
		if _, ok := st.Channels.Get(ch.ID); ok {
			continue
		}
		cc := store.NewClientChannel(ch, st.Me.ID)
		st.bindSpellTimer(cc)
		st.Channels.Insert(cc)
		events.Channel.Create(string(ch.ID), ch.Name)
	}
	st.rebuildChannelZipper(team)
}

// bindSpellTimer attaches a debounce timer firing spell-check requests for
// this channel's editor. The timer is owned by the editor and cancelled
// when the channel closes.
func (st *ChatState) bindSpellTimer(cc *store.ClientChannel) {
	if !st.Resources.Options.SpellCheck || st.Resources.Checker == nil {
		return
	}
	checker := st.Resources.Checker
	workers := st.Resources.Workers
	channelID := cc.ID
	cc.Editor.AttachSpellTimer(spell.NewTimer(func(text string) {
		workers.Submit(Request{
			Kind: "spell-check",
			Run: func(ctx context.Context) Event {
				words, err := checker.Check(text)
				return SpellChecked{ChannelID: channelID, Misspelled: words, Err: err}
			},
		})
	}))
}

// rebuildChannelZipper regroups the sidebar, preserving the focused channel
// where possible. Unread-first sorting floats unread channels into their
// own leading group.
func (st *ChatState) rebuildChannelZipper(team *TeamState) {
	focused, hadFocus := team.ChannelZipper.FocusValue()

	channels := st.Channels.ForTeam(team.ID)
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Info.Name < channels[j].Info.Name
	})

	unreadFirst := st.Resources.Options.ChannelSorting == SortUnreadFirst
	byGroup := make(map[string][]types.ChannelID)
	for _, ch := range channels {
		group := groupChannels
		switch {
		case unreadFirst && ch.Info.Unread > 0:
			group = groupUnread
		case ch.Info.Kind == types.ChannelPrivate:
			group = groupPrivate
		case ch.Info.Kind == types.ChannelDirect, ch.Info.Kind == types.ChannelGroup:
			group = groupDirect
		}
		byGroup[group] = append(byGroup[group], ch.ID)
	}
	team.ChannelZipper = zipper.FromGroups([]string{groupUnread, groupChannels, groupPrivate, groupDirect}, byGroup)
	if hadFocus {
		team.ChannelZipper.FocusOnValue(focused)
	}
}

// regroupForUnread refloats the sidebar after an unread transition. Only
// the unread-first ordering moves channels between groups live.
func (st *ChatState) regroupForUnread(ch *store.ClientChannel) {
	if st.Resources.Options.ChannelSorting != SortUnreadFirst {
		return
	}
	if team, ok := st.Teams[ch.Info.TeamID]; ok {
		st.rebuildChannelZipper(team)
	}
}

// selectInitialChannel focuses the last-run channel when it is still a
// member, falling back to Town Square, falling back to whatever is first.
func (st *ChatState) selectInitialChannel(team *TeamState, lastRun types.ChannelID) {
	if lastRun != "" {
		if _, ok := st.Channels.Get(lastRun); ok && team.ChannelZipper.ContainsValue(lastRun) {
			st.FocusChannel(team, lastRun)
			return
		}
	}
	if ch, ok := st.Channels.FindByName(team.ID, types.TownSquareName); ok {
		st.FocusChannel(team, ch.ID)
		return
	}
	if id, ok := team.ChannelZipper.FocusValue(); ok {
		st.FocusChannel(team, id)
	}
}

// FocusChannel moves the sidebar focus, clears unread counters, requests
// history when the channel has not been fetched, and notifies the server of
// the view change. Focusing an unknown channel is a no-op.
func (st *ChatState) FocusChannel(team *TeamState, channelID types.ChannelID) {
	ch, ok := st.Channels.Get(channelID)
	if !ok {
		events.Channel.Orphan("focus", string(channelID))
		return
	}
	if current, ok := team.ChannelZipper.FocusValue(); ok && current != channelID {
		team.ReturnChannel = team.RecentChannel
		team.RecentChannel = current
	}
	team.ChannelZipper.FocusOnValue(channelID)
	team.PendingChannel = ""
	hadUnread := ch.Info.Unread > 0
	ch.Info.Unread = 0
	ch.Info.Mentions = 0
	if hadUnread {
		st.regroupForUnread(ch)
	}
	events.Channel.Focus(string(channelID))

	if !ch.Posts.Fetched {
		st.StartPostsFetch(channelID, "")
	}
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "view-channel",
		Run: func(ctx context.Context) Event {
			if err := svc.ViewChannel(ctx, channelID); err != nil {
				return ErrorEvent{Category: logging.API, Err: err}
			}
			return nil
		},
	})
}

// JumpBack returns to the previously focused channel.
func (st *ChatState) JumpBack(team *TeamState) {
	if team.RecentChannel == "" {
		return
	}
	st.FocusChannel(team, team.RecentChannel)
}

// NextChannel moves the sidebar focus down, wrapping.
func (st *ChatState) NextChannel(team *TeamState) {
	team.ChannelZipper.Right()
	st.afterChannelMove(team)
}

// PrevChannel moves the sidebar focus up, wrapping.
func (st *ChatState) PrevChannel(team *TeamState) {
	team.ChannelZipper.Left()
	st.afterChannelMove(team)
}

func (st *ChatState) afterChannelMove(team *TeamState) {
	if id, ok := team.ChannelZipper.FocusValue(); ok {
		st.FocusChannel(team, id)
	}
}

// StartPostsFetch requests a page of history for a channel, older than
// before when set.
func (st *ChatState) StartPostsFetch(channelID types.ChannelID, before types.PostID) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-posts",
		Run: func(ctx context.Context) Event {
			posts, hasMore, err := svc.FetchPosts(ctx, channelID, before, 0)
			return PostsLoaded{ChannelID: channelID, Posts: posts, HasMore: hasMore, Err: err}
		},
	})
}

// applyChannelsLoaded merges a refreshed channel set for a team. Channels
// gone from the server are removed from the table and the zipper together.
func (st *ChatState) applyChannelsLoaded(ev ChannelsLoaded) {
	if ev.Err != nil {
		return // already logged by the worker path via ErrorEvent use sites
	}
	team, ok := st.Teams[ev.TeamID]
	if !ok {
		return
	}
	current := make(map[types.ChannelID]struct{}, len(ev.Channels))
	for _, ch := range ev.Channels {
		current[ch.ID] = struct{}{}
	}
	for _, cc := range st.Channels.ForTeam(ev.TeamID) {
		if _, ok := current[cc.ID]; !ok {
			st.Channels.Remove(cc.ID)
			events.Channel.Remove(string(cc.ID))
		}
	}
	st.attachChannels(team, ev.Channels)
}

// applyChannelRemoved drops a channel everywhere it is referenced.
func (st *ChatState) applyChannelRemoved(channelID types.ChannelID) {
	ch, ok := st.Channels.Get(channelID)
	if !ok {
		events.Channel.Orphan("remove", string(channelID))
		return
	}
	teamID := ch.Info.TeamID
	st.Channels.Remove(channelID)
	events.Channel.Remove(string(channelID))
	team, ok := st.Teams[teamID]
	if !ok {
		return
	}
	team.ChannelZipper.RemoveValue(channelID)
	if team.Thread != nil && team.Thread.ChannelID == channelID {
		team.Thread.Close()
		team.Thread = nil
	}
	if id, ok := team.ChannelZipper.FocusValue(); ok {
		st.FocusChannel(team, id)
	}
}

// requestRefresh refetches the focused channel's history and member
// statuses; injected at startup and after reconnect.
func (st *ChatState) requestRefresh() {
	ch, ok := st.CurrentChannel()
	if ok {
		st.StartPostsFetch(ch.ID, "")
	}
	st.StartStatusFetch()
}
