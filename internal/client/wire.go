package client

import (
	"sort"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

// Wire structs decode the server's JSON payloads; millisecond epochs become
// time.Time at this boundary so nothing upstream handles raw timestamps.

type wireTeam struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

func (t wireTeam) toTeam() types.Team {
	return types.Team{
		ID:          types.TeamID(t.ID),
		Name:        t.Name,
		DisplayName: t.DisplayName,
		Description: t.Description,
	}
}

type wireChannel struct {
	ID            string `json:"id"`
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Purpose       string `json:"purpose"`
	Header        string `json:"header"`
	Type          string `json:"type"`
	UpdateAt      int64  `json:"update_at"`
	TotalMsgCount int    `json:"total_msg_count"`
}

func (c wireChannel) toChannel() types.Channel {
	return types.Channel{
		ID:          types.ChannelID(c.ID),
		TeamID:      types.TeamID(c.TeamID),
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Purpose:     c.Purpose,
		Header:      c.Header,
		Kind:        types.ChannelKind(c.Type),
		UpdateAt:    fromMillis(c.UpdateAt),
		TotalMsg:    c.TotalMsgCount,
	}
}

type wireUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u wireUser) toUser() types.User {
	return types.User{
		ID:        types.UserID(u.ID),
		Username:  u.Username,
		Nickname:  u.Nickname,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type wirePost struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	RootID    string `json:"root_id"`
	Message   string `json:"message"`
	CreateAt  int64  `json:"create_at"`
	UpdateAt  int64  `json:"update_at"`
	DeleteAt  int64  `json:"delete_at"`
}

func (p wirePost) toPost() types.Post {
	return types.Post{
		ID:        types.PostID(p.ID),
		ChannelID: types.ChannelID(p.ChannelID),
		UserID:    types.UserID(p.UserID),
		RootID:    types.PostID(p.RootID),
		Message:   p.Message,
		CreateAt:  fromMillis(p.CreateAt),
		UpdateAt:  fromMillis(p.UpdateAt),
		DeleteAt:  fromMillis(p.DeleteAt),
	}
}

type wirePostPage struct {
	Order []string            `json:"order"`
	Posts map[string]wirePost `json:"posts"`
}

// toPosts flattens the order/posts pair into an oldest-first slice.
func (p wirePostPage) toPosts() []types.Post {
	out := make([]types.Post, 0, len(p.Order))
	for _, id := range p.Order {
		if wp, ok := p.Posts[id]; ok {
			out = append(out, wp.toPost())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateAt.Before(out[j].CreateAt) })
	return out
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
