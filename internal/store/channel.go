// Package store holds the keyed entity collections behind the client state:
// the global channel table, the user cache, and per-channel message lists.
package store

import (
	"github.com/ethernet-zero/matterhorn/internal/editor"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// ChannelInfo is the display metadata for one channel.
type ChannelInfo struct {
	Name        string
	DisplayName string
	Purpose     string
	Header      string
	Kind        types.ChannelKind
	TeamID      types.TeamID
	// DMPartner is set for direct channels only.
	DMPartner types.UserID
	Unread    int
	Mentions  int
	UpdateAt  int64
}

// SelectState is a cursor into a channel's post list while message-select
// mode is active.
type SelectState struct {
	PostID types.PostID
}

// ClientChannel owns all mutable state for one channel: metadata, the
// message sequence, the composition editor, and the optional select cursor.
type ClientChannel struct {
	ID     types.ChannelID
	Info   ChannelInfo
	Posts  *PostList
	Editor *editor.EditState
	Select *SelectState
}

// NewClientChannel builds channel state from server metadata. The post list
// starts empty and unfetched; the DM partner is resolved from the synthetic
// channel name when the channel is a direct conversation.
func NewClientChannel(ch types.Channel, me types.UserID) *ClientChannel {
	info := ChannelInfo{
		Name:        ch.Name,
		DisplayName: ch.DisplayName,
		Purpose:     ch.Purpose,
		Header:      ch.Header,
		Kind:        ch.Kind,
		TeamID:      ch.TeamID,
	}
	if ch.Kind == types.ChannelDirect {
		if partner, ok := types.DirectPartner(ch.Name, me); ok {
			info.DMPartner = partner
		}
	}
	return &ClientChannel{
		ID:     ch.ID,
		Info:   info,
		Posts:  NewPostList(),
		Editor: editor.New(),
	}
}

// Close tears down owned resources, cancelling the editor's spell timer.
func (c *ClientChannel) Close() {
	if c.Editor != nil {
		c.Editor.Close()
	}
}

// Channels is the global ChannelID table shared across teams.
type Channels struct {
	byID map[types.ChannelID]*ClientChannel
}

// NewChannels returns an empty channel table.
func NewChannels() *Channels {
	return &Channels{byID: make(map[types.ChannelID]*ClientChannel)}
}

// Get looks up a channel by id.
func (c *Channels) Get(id types.ChannelID) (*ClientChannel, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Insert adds a channel, keeping an existing entry when the id is already
// present so shared references stay valid.
func (c *Channels) Insert(ch *ClientChannel) *ClientChannel {
	if existing, ok := c.byID[ch.ID]; ok {
		return existing
	}
	c.byID[ch.ID] = ch
	return ch
}

// Remove deletes a channel and closes its owned state. Removing an unknown
// id is a no-op.
func (c *Channels) Remove(id types.ChannelID) {
	ch, ok := c.byID[id]
	if !ok {
		return
	}
	ch.Close()
	delete(c.byID, id)
}

// Len reports the number of channels in the table.
func (c *Channels) Len() int {
	return len(c.byID)
}

// IDs returns every channel id in the table, unordered.
func (c *Channels) IDs() []types.ChannelID {
	ids := make([]types.ChannelID, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	return ids
}

// ForTeam returns the channels owned by teamID, unordered.
func (c *Channels) ForTeam(teamID types.TeamID) []*ClientChannel {
	var out []*ClientChannel
	for _, ch := range c.byID {
		if ch.Info.TeamID == teamID {
			out = append(out, ch)
		}
	}
	return out
}

// FindByName returns the channel named name within teamID.
func (c *Channels) FindByName(teamID types.TeamID, name string) (*ClientChannel, bool) {
	for _, ch := range c.byID {
		if ch.Info.TeamID == teamID && ch.Info.Name == name {
			return ch, true
		}
	}
	return nil, false
}
