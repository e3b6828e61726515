package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethernet-zero/matterhorn/internal/runstate"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// ErrNoTeams is fatal: the client cannot present a UI without membership.
var ErrNoTeams = errors.New("no teams available for this user")

// Startup performs the initial synchronous fetches and builds the first
// consistent ChatState: identity, team list, the working team's channel set,
// zippers, and initial channel focus. Background producers must be started
// only after this returns, since their first action is to enqueue an event
// against the returned state.
func Startup(ctx context.Context, res *Resources, preferredTeam string) (*ChatState, error) {
	me, err := res.Service.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	st := NewChatState(me, res)

	teams, err := res.Service.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	for _, team := range teams {
		st.Teams[team.ID] = NewTeamState(team)
		st.TeamZipper.Insert(team.ID)
	}

	target := teams[0]
	if preferredTeam != "" {
		found := false
		for _, team := range teams {
			if team.Name == preferredTeam || string(team.ID) == preferredTeam {
				target = team
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("not a member of team %q", preferredTeam)
		}
	}
	st.TeamZipper.FocusOn(target.ID)

	channels, err := res.Service.FetchChannels(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch channels for %s: %w", target.Name, err)
	}
	teamState := st.Teams[target.ID]
	st.attachChannels(teamState, channels)

	var lastRun types.ChannelID
	if res.RunState != nil {
		if state, err := res.RunState.Read(target.ID); err == nil {
			lastRun = state.SelectedChannelID
		}
	}
	st.selectInitialChannel(teamState, lastRun)

	return st, nil
}

// StartChannelsFetch loads the channel set of a team lazily, used when
// switching to a team whose channels have not been fetched yet.
func (st *ChatState) StartChannelsFetch(teamID types.TeamID) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-channels",
		Run: func(ctx context.Context) Event {
			channels, err := svc.FetchChannels(ctx, teamID)
			return ChannelsLoaded{TeamID: teamID, Channels: channels, Err: err}
		},
	})
}

// EnsureTeamLoaded requests channels for the focused team when its zipper
// is still empty, called after team switches.
func (st *ChatState) EnsureTeamLoaded() {
	team, ok := st.CurrentTeam()
	if !ok {
		return
	}
	if team.ChannelZipper.Len() == 0 {
		st.StartChannelsFetch(team.ID)
	}
}

// SaveRunState records the focused channel per team for the next session.
// Called once on clean shutdown.
func (st *ChatState) SaveRunState() {
	rs := st.Resources.RunState
	if rs == nil {
		return
	}
	for id, team := range st.Teams {
		channelID, ok := team.ChannelZipper.FocusValue()
		if !ok {
			continue
		}
		if err := rs.Write(id, runStateFor(channelID)); err != nil {
			continue
		}
	}
}

func runStateFor(channelID types.ChannelID) runstate.LastRunState {
	return runstate.LastRunState{SelectedChannelID: channelID}
}
