package chat

import (
	"testing"

	"github.com/ethernet-zero/matterhorn/internal/spell"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

func focusedChannel(t *testing.T, team *TeamState) types.ChannelID {
	t.Helper()
	id, ok := team.ChannelZipper.FocusValue()
	if !ok {
		t.Fatalf("no focused channel")
	}
	return id
}

func TestFocusChannelClearsCountersAndTracksRecent(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	team := st.Teams["t1"]
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected town-square focused first, got %s", got)
	}

	c2, _ := st.Channels.Get("c2")
	c2.Info.Unread = 4
	c2.Info.Mentions = 2
	st.FocusChannel(team, "c2")
	if c2.Info.Unread != 0 || c2.Info.Mentions != 0 {
		t.Fatalf("expected counters cleared on focus, got %d/%d", c2.Info.Unread, c2.Info.Mentions)
	}
	if team.RecentChannel != "c1" {
		t.Fatalf("expected recent channel c1, got %s", team.RecentChannel)
	}

	st.JumpBack(team)
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected jump back to c1, got %s", got)
	}
	if team.RecentChannel != "c2" {
		t.Fatalf("expected recent channel c2 after jump, got %s", team.RecentChannel)
	}
}

func TestFocusUnknownChannelIsNoOp(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1", openChannel("c1", "t1", "town-square"))
	team := st.Teams["t1"]
	st.FocusChannel(team, "ghost")
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected focus unchanged, got %s", got)
	}
}

func TestNextPrevChannelWraps(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	team := st.Teams["t1"]

	// Alphabetical sidebar order: random, town-square.
	st.FocusChannel(team, "c2")
	if got := focusedChannel(t, team); got != "c2" {
		t.Fatalf("setup: expected c2 focused, got %s", got)
	}
	st.PrevChannel(team)
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected wrap up to c1, got %s", got)
	}
	st.NextChannel(team)
	if got := focusedChannel(t, team); got != "c2" {
		t.Fatalf("expected wrap back to c2, got %s", got)
	}
}

func TestUnreadFirstSortingFloatsUnreadGroup(t *testing.T) {
	st := newTestState(t, nil, Options{ChannelSorting: SortUnreadFirst})
	channels := []types.Channel{
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	}
	joinTeam(st, "t1", channels...)
	team := st.Teams["t1"]

	c1, _ := st.Channels.Get("c1")
	c1.Info.Unread = 3
	// A refreshed channel set triggers the regroup.
	Dispatch(st, ChannelsLoaded{TeamID: "t1", Channels: channels})

	entries := team.ChannelZipper.Items()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.Group != "unread" || first.Value != "c1" {
		t.Fatalf("expected unread channel floated first, got %+v", first)
	}
	if entries[1].Group != "channels" {
		t.Fatalf("expected read channel in the plain group, got %+v", entries[1])
	}
}

func TestUnreadFirstRegroupsOnLiveActivity(t *testing.T) {
	st := newTestState(t, nil, Options{ChannelSorting: SortUnreadFirst})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	team := st.Teams["t1"]

	// town-square is focused; a post landing in random floats it at once.
	Dispatch(st, PostReceived{Post: types.Post{ID: "p1", ChannelID: "c2", UserID: "alice", Message: "ping"}})
	entries := team.ChannelZipper.Items()
	if entries[0].Group != "unread" || entries[0].Value != "c2" {
		t.Fatalf("expected live unread channel floated first, got %+v", entries[0])
	}
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected focus untouched by the regroup, got %s", got)
	}

	// Reading the channel demotes it out of the unread group.
	st.FocusChannel(team, "c2")
	entries = team.ChannelZipper.Items()
	for _, e := range entries {
		if e.Group == "unread" {
			t.Fatalf("expected no unread entries after reading, got %+v", e)
		}
	}
	if got := focusedChannel(t, team); got != "c2" {
		t.Fatalf("expected focus on the read channel, got %s", got)
	}
}

func TestRebuildPreservesFocus(t *testing.T) {
	st := newTestState(t, nil, Options{})
	channels := []types.Channel{
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	}
	joinTeam(st, "t1", channels...)
	team := st.Teams["t1"]
	st.FocusChannel(team, "c2")

	more := append(channels, openChannel("c3", "t1", "dev"))
	Dispatch(st, ChannelsLoaded{TeamID: "t1", Channels: more})
	if got := focusedChannel(t, team); got != "c2" {
		t.Fatalf("expected focus kept across regroup, got %s", got)
	}
	if team.ChannelZipper.Len() != 3 {
		t.Fatalf("expected new channel attached, got %d entries", team.ChannelZipper.Len())
	}
}

func TestChannelsLoadedRemovesGoneChannels(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	team := st.Teams["t1"]

	Dispatch(st, ChannelsLoaded{TeamID: "t1", Channels: []types.Channel{openChannel("c1", "t1", "town-square")}})
	if _, ok := st.Channels.Get("c2"); ok {
		t.Fatalf("expected c2 removed from table")
	}
	if team.ChannelZipper.ContainsValue("c2") {
		t.Fatalf("expected c2 removed from sidebar")
	}
}

func TestChannelRemovedMovesFocusAndClosesThread(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	team := st.Teams["t1"]
	st.FocusChannel(team, "c2")
	st.OpenThread(team, types.Post{ID: "p1", ChannelID: "c2"})

	Dispatch(st, ChannelRemoved{ChannelID: "c2"})
	if _, ok := st.Channels.Get("c2"); ok {
		t.Fatalf("expected channel removed from table")
	}
	if team.Thread != nil {
		t.Fatalf("expected thread in removed channel closed")
	}
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected focus moved to survivor, got %s", got)
	}
}

func TestChannelRemovedStopsSpellTimer(t *testing.T) {
	st := newTestState(t, nil, Options{})
	joinTeam(st, "t1",
		openChannel("c1", "t1", "town-square"),
		openChannel("c2", "t1", "random"),
	)
	ch, _ := st.Channels.Get("c2")
	timer := spell.NewTimer(func(string) {})
	ch.Editor.AttachSpellTimer(timer)

	Dispatch(st, ChannelRemoved{ChannelID: "c2"})
	if !timer.Stopped() {
		t.Fatalf("expected editor spell timer stopped with its channel")
	}

	// A check result racing teardown lands nowhere.
	Dispatch(st, SpellChecked{ChannelID: "c2", Misspelled: map[string]struct{}{"teh": {}}})
	if survivor, _ := st.Channels.Get("c1"); survivor.Editor.Misspelled != nil {
		t.Fatalf("expected orphan result to touch no surviving editor")
	}
}

func TestSelectInitialChannelPrefersLastRun(t *testing.T) {
	st := newTestState(t, nil, Options{})
	Dispatch(st, TeamJoined{
		Team: types.Team{ID: "t1", Name: "t1"},
		Channels: []types.Channel{
			openChannel("c1", "t1", "town-square"),
			openChannel("c2", "t1", "random"),
		},
		LastRun: "c2",
	})
	team := st.Teams["t1"]
	if got := focusedChannel(t, team); got != "c2" {
		t.Fatalf("expected last-run channel focused, got %s", got)
	}
}

func TestSelectInitialChannelFallsBackToFirst(t *testing.T) {
	st := newTestState(t, nil, Options{})
	Dispatch(st, TeamJoined{
		Team: types.Team{ID: "t1", Name: "t1"},
		Channels: []types.Channel{
			openChannel("c1", "t1", "dev"),
			openChannel("c2", "t1", "random"),
		},
		LastRun: "gone",
	})
	team := st.Teams["t1"]
	// No town-square and a stale last-run fall through to the first entry.
	if got := focusedChannel(t, team); got != "c1" {
		t.Fatalf("expected alphabetical first focused, got %s", got)
	}
}

func TestDirectChannelsGroupSeparately(t *testing.T) {
	st := newTestState(t, nil, Options{})
	dm := types.Channel{ID: "d1", TeamID: "t1", Name: "alice__me", Kind: types.ChannelDirect}
	private := types.Channel{ID: "p1", TeamID: "t1", Name: "secret", DisplayName: "secret", Kind: types.ChannelPrivate}
	joinTeam(st, "t1", openChannel("c1", "t1", "town-square"), dm, private)
	team := st.Teams["t1"]

	groups := map[types.ChannelID]string{}
	for _, entry := range team.ChannelZipper.Items() {
		groups[entry.Value] = entry.Group
	}
	want := map[types.ChannelID]string{"c1": "channels", "p1": "private", "d1": "direct"}
	for id, group := range want {
		if groups[id] != group {
			t.Fatalf("expected %s in group %s, got %s", id, group, groups[id])
		}
	}
}
