package chat

import (
	"context"
	"testing"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/emoji"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// fakeService satisfies client.Service with per-call hooks. Unset hooks
// return empty results.
type fakeService struct {
	me             func(ctx context.Context) (types.User, error)
	fetchTeams     func(ctx context.Context) ([]types.Team, error)
	fetchTeam      func(ctx context.Context, id types.TeamID) (types.Team, error)
	fetchChannels  func(ctx context.Context, teamID types.TeamID) ([]types.Channel, error)
	fetchUsers     func(ctx context.Context, teamID types.TeamID) ([]types.User, error)
	fetchPosts     func(ctx context.Context, channelID types.ChannelID, before types.PostID, limit int) ([]types.Post, bool, error)
	fetchThread    func(ctx context.Context, rootID types.PostID) ([]types.Post, error)
	createPost     func(ctx context.Context, post types.Post) (types.Post, error)
	updatePost     func(ctx context.Context, post types.Post) (types.Post, error)
	deletePost     func(ctx context.Context, id types.PostID) error
	fetchStatuses  func(ctx context.Context, ids []types.UserID) (map[types.UserID]string, error)
	savePreference func(ctx context.Context, pref types.Preference) error
	viewChannel    func(ctx context.Context, channelID types.ChannelID) error
	sendTyping     func(ctx context.Context, channelID types.ChannelID) error
	fetchEmoji     func(ctx context.Context) ([]string, error)
}

func (f *fakeService) Me(ctx context.Context) (types.User, error) {
	if f.me != nil {
		return f.me(ctx)
	}
	return types.User{ID: "me", Username: "me"}, nil
}

func (f *fakeService) FetchTeams(ctx context.Context) ([]types.Team, error) {
	if f.fetchTeams != nil {
		return f.fetchTeams(ctx)
	}
	return nil, nil
}

func (f *fakeService) FetchTeam(ctx context.Context, id types.TeamID) (types.Team, error) {
	if f.fetchTeam != nil {
		return f.fetchTeam(ctx, id)
	}
	return types.Team{ID: id}, nil
}

func (f *fakeService) FetchChannels(ctx context.Context, teamID types.TeamID) ([]types.Channel, error) {
	if f.fetchChannels != nil {
		return f.fetchChannels(ctx, teamID)
	}
	return nil, nil
}

func (f *fakeService) FetchUsers(ctx context.Context, teamID types.TeamID) ([]types.User, error) {
	if f.fetchUsers != nil {
		return f.fetchUsers(ctx, teamID)
	}
	return nil, nil
}

func (f *fakeService) FetchPosts(ctx context.Context, channelID types.ChannelID, before types.PostID, limit int) ([]types.Post, bool, error) {
	if f.fetchPosts != nil {
		return f.fetchPosts(ctx, channelID, before, limit)
	}
	return nil, false, nil
}

func (f *fakeService) FetchThread(ctx context.Context, rootID types.PostID) ([]types.Post, error) {
	if f.fetchThread != nil {
		return f.fetchThread(ctx, rootID)
	}
	return nil, nil
}

func (f *fakeService) CreatePost(ctx context.Context, post types.Post) (types.Post, error) {
	if f.createPost != nil {
		return f.createPost(ctx, post)
	}
	return post, nil
}

func (f *fakeService) UpdatePost(ctx context.Context, post types.Post) (types.Post, error) {
	if f.updatePost != nil {
		return f.updatePost(ctx, post)
	}
	return post, nil
}

func (f *fakeService) DeletePost(ctx context.Context, id types.PostID) error {
	if f.deletePost != nil {
		return f.deletePost(ctx, id)
	}
	return nil
}

func (f *fakeService) FetchStatuses(ctx context.Context, ids []types.UserID) (map[types.UserID]string, error) {
	if f.fetchStatuses != nil {
		return f.fetchStatuses(ctx, ids)
	}
	return nil, nil
}

func (f *fakeService) SavePreference(ctx context.Context, pref types.Preference) error {
	if f.savePreference != nil {
		return f.savePreference(ctx, pref)
	}
	return nil
}

func (f *fakeService) ViewChannel(ctx context.Context, channelID types.ChannelID) error {
	if f.viewChannel != nil {
		return f.viewChannel(ctx, channelID)
	}
	return nil
}

func (f *fakeService) SendTyping(ctx context.Context, channelID types.ChannelID) error {
	if f.sendTyping != nil {
		return f.sendTyping(ctx, channelID)
	}
	return nil
}

func (f *fakeService) FetchEmoji(ctx context.Context) ([]string, error) {
	if f.fetchEmoji != nil {
		return f.fetchEmoji(ctx)
	}
	return nil, nil
}

// newTestState builds a ChatState over a fake service with a running
// single-worker pool.
func newTestState(t *testing.T, svc *fakeService, opts Options) *ChatState {
	t.Helper()
	if svc == nil {
		svc = &fakeService{}
	}
	queue := NewQueue()
	workers := NewWorkers(CPUSingle, queue)
	t.Cleanup(workers.Stop)
	res := &Resources{
		Service: svc,
		Events:  queue,
		Workers: workers,
		Options: opts,
		Emoji:   emoji.NewTable(),
	}
	return NewChatState(types.User{ID: "me", Username: "me"}, res)
}

// joinTeam runs a TeamJoined transition for a team plus channels.
func joinTeam(st *ChatState, teamID types.TeamID, channels ...types.Channel) {
	Dispatch(st, TeamJoined{
		Team:     types.Team{ID: teamID, Name: string(teamID)},
		Channels: channels,
	})
}

func openChannel(id types.ChannelID, teamID types.TeamID, name string) types.Channel {
	return types.Channel{ID: id, TeamID: teamID, Name: name, DisplayName: name, Kind: types.ChannelOpen}
}

// waitEvent pulls the next worker-produced event off the queue.
func waitEvent(t *testing.T, st *ChatState) Event {
	t.Helper()
	select {
	case ev := <-st.Resources.Events.Chan():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a queued event")
		return nil
	}
}

// waitEventNamed drains queued events until one carries name.
func waitEventNamed(t *testing.T, st *ChatState, name string) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-st.Resources.Events.Chan():
			if ev.Name() == name {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", name)
			return nil
		}
	}
}
