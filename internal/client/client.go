// Package client is the boundary to the chat server: a REST API surface and
// a websocket push stream. Everything here runs on worker goroutines; results
// re-enter the application as queued events.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

// Service is the REST surface the client core depends on.
type Service interface {
	Me(ctx context.Context) (types.User, error)
	FetchTeams(ctx context.Context) ([]types.Team, error)
	FetchTeam(ctx context.Context, id types.TeamID) (types.Team, error)
	FetchChannels(ctx context.Context, teamID types.TeamID) ([]types.Channel, error)
	FetchUsers(ctx context.Context, teamID types.TeamID) ([]types.User, error)
	FetchPosts(ctx context.Context, channelID types.ChannelID, before types.PostID, limit int) ([]types.Post, bool, error)
	FetchThread(ctx context.Context, rootID types.PostID) ([]types.Post, error)
	CreatePost(ctx context.Context, post types.Post) (types.Post, error)
	UpdatePost(ctx context.Context, post types.Post) (types.Post, error)
	DeletePost(ctx context.Context, id types.PostID) error
	FetchStatuses(ctx context.Context, ids []types.UserID) (map[types.UserID]string, error)
	SavePreference(ctx context.Context, pref types.Preference) error
	ViewChannel(ctx context.Context, channelID types.ChannelID) error
	SendTyping(ctx context.Context, channelID types.ChannelID) error
	FetchEmoji(ctx context.Context) ([]string, error)
}

// REST talks to the server's HTTP API.
type REST struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewREST builds a REST client for the given server.
func NewREST(serverURL, token string) *REST {
	return &REST{
		baseURL: strings.TrimRight(serverURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *REST) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (r *REST) Me(ctx context.Context) (types.User, error) {
	var user wireUser
	if err := r.do(ctx, http.MethodGet, "/api/v4/users/me", nil, &user); err != nil {
		return types.User{}, err
	}
	return user.toUser(), nil
}

func (r *REST) FetchTeams(ctx context.Context) ([]types.Team, error) {
	var teams []wireTeam
	if err := r.do(ctx, http.MethodGet, "/api/v4/users/me/teams", nil, &teams); err != nil {
		return nil, err
	}
	out := make([]types.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.toTeam())
	}
	return out, nil
}

func (r *REST) FetchTeam(ctx context.Context, id types.TeamID) (types.Team, error) {
	var team wireTeam
	if err := r.do(ctx, http.MethodGet, "/api/v4/teams/"+url.PathEscape(string(id)), nil, &team); err != nil {
		return types.Team{}, err
	}
	return team.toTeam(), nil
}

func (r *REST) FetchChannels(ctx context.Context, teamID types.TeamID) ([]types.Channel, error) {
	path := fmt.Sprintf("/api/v4/users/me/teams/%s/channels", url.PathEscape(string(teamID)))
	var channels []wireChannel
	if err := r.do(ctx, http.MethodGet, path, nil, &channels); err != nil {
		return nil, err
	}
	out := make([]types.Channel, 0, len(channels))
	for _, c := range channels {
		out = append(out, c.toChannel())
	}
	return out, nil
}

func (r *REST) FetchUsers(ctx context.Context, teamID types.TeamID) ([]types.User, error) {
	path := fmt.Sprintf("/api/v4/users?in_team=%s&per_page=200", url.QueryEscape(string(teamID)))
	var users []wireUser
	if err := r.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	out := make([]types.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.toUser())
	}
	return out, nil
}

func (r *REST) FetchPosts(ctx context.Context, channelID types.ChannelID, before types.PostID, limit int) ([]types.Post, bool, error) {
	if limit <= 0 {
		limit = 60
	}
	path := fmt.Sprintf("/api/v4/channels/%s/posts?per_page=%d", url.PathEscape(string(channelID)), limit)
	if before != "" {
		path += "&before=" + url.QueryEscape(string(before))
	}
	var page wirePostPage
	if err := r.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, false, err
	}
	posts := page.toPosts()
	hasMore := len(posts) >= limit
	return posts, hasMore, nil
}

// FetchThread loads every post of the thread rooted at rootID.
func (r *REST) FetchThread(ctx context.Context, rootID types.PostID) ([]types.Post, error) {
	path := fmt.Sprintf("/api/v4/posts/%s/thread", url.PathEscape(string(rootID)))
	var page wirePostPage
	if err := r.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.toPosts(), nil
}

func (r *REST) CreatePost(ctx context.Context, post types.Post) (types.Post, error) {
	body := map[string]interface{}{
		"channel_id": post.ChannelID,
		"message":    post.Message,
		"root_id":    post.RootID,
	}
	var created wirePost
	if err := r.do(ctx, http.MethodPost, "/api/v4/posts", body, &created); err != nil {
		return types.Post{}, err
	}
	return created.toPost(), nil
}

func (r *REST) UpdatePost(ctx context.Context, post types.Post) (types.Post, error) {
	body := map[string]interface{}{
		"id":      post.ID,
		"message": post.Message,
	}
	var updated wirePost
	if err := r.do(ctx, http.MethodPut, "/api/v4/posts/"+url.PathEscape(string(post.ID))+"/patch", body, &updated); err != nil {
		return types.Post{}, err
	}
	return updated.toPost(), nil
}

func (r *REST) DeletePost(ctx context.Context, id types.PostID) error {
	return r.do(ctx, http.MethodDelete, "/api/v4/posts/"+url.PathEscape(string(id)), nil, nil)
}

func (r *REST) FetchStatuses(ctx context.Context, ids []types.UserID) (map[types.UserID]string, error) {
	if len(ids) == 0 {
		return map[types.UserID]string{}, nil
	}
	var statuses []struct {
		UserID types.UserID `json:"user_id"`
		Status string       `json:"status"`
	}
	if err := r.do(ctx, http.MethodPost, "/api/v4/users/status/ids", ids, &statuses); err != nil {
		return nil, err
	}
	out := make(map[types.UserID]string, len(statuses))
	for _, s := range statuses {
		out[s.UserID] = s.Status
	}
	return out, nil
}

func (r *REST) SavePreference(ctx context.Context, pref types.Preference) error {
	body := []map[string]string{{
		"user_id":  string(pref.UserID),
		"category": pref.Category,
		"name":     pref.Name,
		"value":    pref.Value,
	}}
	return r.do(ctx, http.MethodPut, "/api/v4/users/me/preferences", body, nil)
}

func (r *REST) ViewChannel(ctx context.Context, channelID types.ChannelID) error {
	body := map[string]string{"channel_id": string(channelID)}
	return r.do(ctx, http.MethodPost, "/api/v4/channels/members/me/view", body, nil)
}

func (r *REST) SendTyping(ctx context.Context, channelID types.ChannelID) error {
	body := map[string]string{"channel_id": string(channelID)}
	return r.do(ctx, http.MethodPost, "/api/v4/users/me/typing", body, nil)
}

func (r *REST) FetchEmoji(ctx context.Context) ([]string, error) {
	var emoji []struct {
		Name string `json:"name"`
	}
	if err := r.do(ctx, http.MethodGet, "/api/v4/emoji?per_page=200", nil, &emoji); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(emoji))
	for _, e := range emoji {
		names = append(names, e.Name)
	}
	return names, nil
}
