package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethernet-zero/matterhorn/internal/logging/events"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// teamOrderPreference is the server preference slot persisting tab order.
const (
	teamOrderCategory = "teams_order"
	teamOrderName     = "order"
)

// StartTeamJoin begins an asynchronous join for a team not yet present.
// Metadata and channel membership are fetched on a worker; one TeamJoined
// event later inserts everything atomically. Duplicate joins are rejected
// up front by membership check.
func (st *ChatState) StartTeamJoin(teamID types.TeamID) {
	if _, ok := st.Teams[teamID]; ok {
		events.Team.DuplicateJoin(string(teamID))
		return
	}
	svc := st.Resources.Service
	rs := st.Resources.RunState
	st.Resources.Workers.Submit(Request{
		Kind: "team-join",
		Run: func(ctx context.Context) Event {
			team, err := svc.FetchTeam(ctx, teamID)
			if err != nil {
				return TeamJoinFailed{TeamID: teamID, Err: err}
			}
			channels, err := svc.FetchChannels(ctx, teamID)
			if err != nil {
				return TeamJoinFailed{TeamID: teamID, Err: err}
			}
			var lastRun types.ChannelID
			if rs != nil {
				if state, err := rs.Read(teamID); err == nil {
					lastRun = state.SelectedChannelID
				}
			}
			return TeamJoined{Team: team, Channels: channels, LastRun: lastRun}
		},
	})
}

// applyTeamJoined inserts the fetched team and its channels in one
// transition. The membership check runs again here: the fetch raced with
// nothing, but a second join event for the same id may already have landed.
func (st *ChatState) applyTeamJoined(ev TeamJoined) {
	if _, ok := st.Teams[ev.Team.ID]; ok {
		events.Team.DuplicateJoin(string(ev.Team.ID))
		return
	}
	team := NewTeamState(ev.Team)
	st.Teams[ev.Team.ID] = team
	st.TeamZipper.Insert(ev.Team.ID)
	st.attachChannels(team, ev.Channels)
	st.selectInitialChannel(team, ev.LastRun)
	events.Team.Join(string(ev.Team.ID), ev.Team.Name)
}

// applyTeamLeft removes the team and its zipper entry atomically, tearing
// down owned channel state. Leaving an unknown team is a no-op.
func (st *ChatState) applyTeamLeft(teamID types.TeamID) {
	team, ok := st.Teams[teamID]
	if !ok {
		return
	}
	for _, ch := range st.Channels.ForTeam(teamID) {
		st.Channels.Remove(ch.ID)
	}
	team.Close()
	delete(st.Teams, teamID)
	st.TeamZipper.Remove(teamID)
	events.Team.Leave(string(teamID))
}

// applyTeamUpdated replaces team metadata in place without touching
// membership or zipper position.
func (st *ChatState) applyTeamUpdated(updated types.Team) {
	team, ok := st.Teams[updated.ID]
	if !ok {
		return
	}
	team.Team = updated
	events.Team.Update(string(updated.ID))
}

// StartTeamUpdate refetches metadata for a joined team.
func (st *ChatState) StartTeamUpdate(teamID types.TeamID) {
	if _, ok := st.Teams[teamID]; !ok {
		return
	}
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "team-update",
		Run: func(ctx context.Context) Event {
			team, err := svc.FetchTeam(ctx, teamID)
			if err != nil {
				return TeamJoinFailed{TeamID: teamID, Err: err}
			}
			return TeamUpdated{Team: team}
		},
	})
}

// MoveTeamLeft reorders the focused team one slot left, immediately, then
// persists the order as a preference. Persistence failure does not roll the
// local order back.
func (st *ChatState) MoveTeamLeft() {
	st.TeamZipper.MoveLeft()
	st.persistTeamOrder()
}

// MoveTeamRight mirrors MoveTeamLeft.
func (st *ChatState) MoveTeamRight() {
	st.TeamZipper.MoveRight()
	st.persistTeamOrder()
}

func (st *ChatState) persistTeamOrder() {
	ids := st.TeamZipper.Items()
	order := make([]string, len(ids))
	for i, id := range ids {
		order[i] = string(id)
	}
	events.Team.Reorder(order)
	pref := types.Preference{
		UserID:   st.Me.ID,
		Category: teamOrderCategory,
		Name:     teamOrderName,
		Value:    strings.Join(order, ","),
	}
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "save-team-order",
		Run: func(ctx context.Context) Event {
			return PreferenceSaved{Err: svc.SavePreference(ctx, pref)}
		},
	})
}

// NextTeam moves the team focus right, wrapping.
func (st *ChatState) NextTeam() {
	st.TeamZipper.Right()
}

// PrevTeam moves the team focus left, wrapping.
func (st *ChatState) PrevTeam() {
	st.TeamZipper.Left()
}

// TeamCount reports the number of joined teams.
func (st *ChatState) TeamCount() int {
	return len(st.Teams)
}

// checkTeamInvariant would signal a construction bug; zipper membership and
// the team map are only mutated together.
func (st *ChatState) checkTeamInvariant() error {
	if st.TeamZipper.Len() != len(st.Teams) {
		return fmt.Errorf("team zipper holds %d entries for %d teams", st.TeamZipper.Len(), len(st.Teams))
	}
	for _, id := range st.TeamZipper.Items() {
		if _, ok := st.Teams[id]; !ok {
			return fmt.Errorf("team zipper references unknown team %s", id)
		}
	}
	return nil
}
