package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethernet-zero/matterhorn/internal/emoji"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

func startupResources(t *testing.T, svc *fakeService) *Resources {
	t.Helper()
	queue := NewQueue()
	workers := NewWorkers(CPUSingle, queue)
	t.Cleanup(workers.Stop)
	return &Resources{
		Service: svc,
		Events:  queue,
		Workers: workers,
		Emoji:   emoji.NewTable(),
	}
}

func TestStartupBuildsInitialState(t *testing.T) {
	svc := &fakeService{
		fetchTeams: func(context.Context) ([]types.Team, error) {
			return []types.Team{
				{ID: "t1", Name: "engineering"},
				{ID: "t2", Name: "ops"},
			}, nil
		},
		fetchChannels: func(_ context.Context, teamID types.TeamID) ([]types.Channel, error) {
			if teamID != "t1" {
				return nil, errors.New("unexpected team fetched at startup")
			}
			return []types.Channel{
				openChannel("c1", "t1", "town-square"),
				openChannel("c2", "t1", "random"),
			}, nil
		},
	}
	st, err := Startup(context.Background(), startupResources(t, svc), "")
	if err != nil {
		t.Fatalf("startup: %v", err)
	}
	if st.Me.ID != "me" {
		t.Fatalf("expected identity resolved, got %+v", st.Me)
	}
	if st.TeamCount() != 2 {
		t.Fatalf("expected both teams present, got %d", st.TeamCount())
	}
	team, ok := st.CurrentTeam()
	if !ok || team.ID != "t1" {
		t.Fatalf("expected first team focused")
	}
	ch, ok := st.CurrentChannel()
	if !ok || ch.Info.Name != types.TownSquareName {
		t.Fatalf("expected town-square focused, got %+v", ch)
	}
}

func TestStartupPrefersNamedTeam(t *testing.T) {
	svc := &fakeService{
		fetchTeams: func(context.Context) ([]types.Team, error) {
			return []types.Team{
				{ID: "t1", Name: "engineering"},
				{ID: "t2", Name: "ops"},
			}, nil
		},
	}
	st, err := Startup(context.Background(), startupResources(t, svc), "ops")
	if err != nil {
		t.Fatalf("startup: %v", err)
	}
	team, _ := st.CurrentTeam()
	if team.ID != "t2" {
		t.Fatalf("expected preferred team focused, got %s", team.ID)
	}
}

func TestStartupRejectsUnknownPreferredTeam(t *testing.T) {
	svc := &fakeService{
		fetchTeams: func(context.Context) ([]types.Team, error) {
			return []types.Team{{ID: "t1", Name: "engineering"}}, nil
		},
	}
	_, err := Startup(context.Background(), startupResources(t, svc), "marketing")
	if err == nil || !strings.Contains(err.Error(), "marketing") {
		t.Fatalf("expected named-team error, got %v", err)
	}
}

func TestStartupFailsWithoutTeams(t *testing.T) {
	_, err := Startup(context.Background(), startupResources(t, &fakeService{}), "")
	if !errors.Is(err, ErrNoTeams) {
		t.Fatalf("expected ErrNoTeams, got %v", err)
	}
}

func TestStartupSurfacesAuthFailure(t *testing.T) {
	authErr := errors.New("401 unauthorized")
	svc := &fakeService{
		me: func(context.Context) (types.User, error) { return types.User{}, authErr },
	}
	_, err := Startup(context.Background(), startupResources(t, svc), "")
	if !errors.Is(err, authErr) {
		t.Fatalf("expected auth failure surfaced, got %v", err)
	}
}

func TestEnsureTeamLoadedFetchesLazily(t *testing.T) {
	svc := &fakeService{
		fetchChannels: func(_ context.Context, teamID types.TeamID) ([]types.Channel, error) {
			return []types.Channel{openChannel("c9", teamID, "town-square")}, nil
		},
	}
	st := newTestState(t, svc, Options{})
	joinTeam(st, "t1")
	st.EnsureTeamLoaded()

	ev := waitEventNamed(t, st, "channels-loaded")
	Dispatch(st, ev)
	team := st.Teams["t1"]
	if team.ChannelZipper.Len() != 1 {
		t.Fatalf("expected lazy channel load, got %d entries", team.ChannelZipper.Len())
	}
}
