package chat

import (
	"github.com/ethernet-zero/matterhorn/internal/overlay"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// OpenChannelSelect shows the channel-switch overlay for a team.
func (st *ChatState) OpenChannelSelect(team *TeamState) {
	items := make([]overlay.Item, 0, st.Channels.Len())
	for _, entry := range team.ChannelZipper.Items() {
		ch, ok := st.Channels.Get(entry.Value)
		if !ok {
			continue
		}
		label := ch.Info.DisplayName
		if label == "" {
			label = ch.Info.Name
		}
		items = append(items, overlay.Item{ID: string(ch.ID), Label: label, Extra: ch.Info.Purpose})
	}
	list := overlay.NewList(overlay.ChannelSelect, "Switch Channel", items)
	list.OnEnter = func(item overlay.Item) {
		st.FocusChannel(team, types.ChannelID(item.ID))
		st.CloseOverlay(team)
	}
	team.Overlay = list
	team.PushMode(ModeChannelSelect)
}

// OpenUserList shows the team member overlay, refreshing profiles in the
// background.
func (st *ChatState) OpenUserList(team *TeamState) {
	items := make([]overlay.Item, 0, st.Users.Len())
	for _, id := range st.Users.IDs() {
		user, ok := st.Users.Get(id)
		if !ok {
			continue
		}
		items = append(items, overlay.Item{
			ID:    string(user.ID),
			Label: user.Username,
			Extra: user.Status,
		})
	}
	list := overlay.NewList(overlay.UserList, "Users", items)
	list.Total = st.Users.Len()
	list.FetchMore = func(string) { st.StartUsersFetch(team.ID) }
	team.Overlay = list
	team.PushMode(ModeUserList)
	st.StartUsersFetch(team.ID)
}

// OpenEmojiList shows the emoji picker; choosing a name inserts it into the
// focused channel's editor.
func (st *ChatState) OpenEmojiList(team *TeamState) {
	names := st.Resources.Emoji.Names()
	items := make([]overlay.Item, 0, len(names))
	for _, name := range names {
		items = append(items, overlay.Item{ID: name, Label: ":" + name + ":"})
	}
	list := overlay.NewList(overlay.EmojiList, "Emoji", items)
	list.OnEnter = func(item overlay.Item) {
		if ch, ok := st.CurrentChannel(); ok {
			ch.Editor.Insert(":" + item.ID + ": ")
		}
		st.CloseOverlay(team)
	}
	team.Overlay = list
	team.PushMode(ModeEmojiList)
}

// OpenThemeList shows available UI themes.
func (st *ChatState) OpenThemeList(team *TeamState, themes []string, apply func(name string)) {
	items := make([]overlay.Item, 0, len(themes))
	for _, name := range themes {
		items = append(items, overlay.Item{ID: name, Label: name})
	}
	list := overlay.NewList(overlay.ThemeList, "Themes", items)
	list.OnEnter = func(item overlay.Item) {
		if apply != nil {
			apply(item.ID)
		}
		st.CloseOverlay(team)
	}
	team.Overlay = list
	team.PushMode(ModeThemeList)
}

// OpenPostList shows a flat post listing (search results, pinned posts) for
// the focused channel.
func (st *ChatState) OpenPostList(team *TeamState, title string, posts []types.Post) {
	items := make([]overlay.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, overlay.Item{ID: string(post.ID), Label: post.Message})
	}
	list := overlay.NewList(overlay.PostList, title, items)
	team.Overlay = list
	team.PushMode(ModePostList)
}

// CloseOverlay dismisses the active overlay and pops back to the previous
// mode.
func (st *ChatState) CloseOverlay(team *TeamState) {
	team.Overlay = nil
	team.PopMode()
}
