package chat

import (
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// EnterMessageSelect starts selection mode on the focused channel, placing
// the cursor on the newest post.
func (st *ChatState) EnterMessageSelect(team *TeamState) {
	ch, ok := st.CurrentChannel()
	if !ok || ch.Posts.Len() == 0 {
		return
	}
	last, _ := ch.Posts.At(ch.Posts.Len() - 1)
	ch.Select = &store.SelectState{PostID: last.ID}
	team.PushMode(ModeMessageSelect)
}

// ExitMessageSelect leaves selection mode.
func (st *ChatState) ExitMessageSelect(team *TeamState) {
	if ch, ok := st.CurrentChannel(); ok {
		ch.Select = nil
	}
	team.PopMode()
}

// SelectedPost returns the post under the selection cursor.
func (st *ChatState) SelectedPost() (types.Post, bool) {
	ch, ok := st.CurrentChannel()
	if !ok || ch.Select == nil {
		return types.Post{}, false
	}
	return ch.Posts.Get(ch.Select.PostID)
}

// SelectOlder moves the selection cursor one post toward history.
func (st *ChatState) SelectOlder() {
	st.moveSelection(-1)
}

// SelectNewer moves the selection cursor one post toward the present.
func (st *ChatState) SelectNewer() {
	st.moveSelection(1)
}

func (st *ChatState) moveSelection(delta int) {
	ch, ok := st.CurrentChannel()
	if !ok || ch.Select == nil {
		return
	}
	posts := ch.Posts.Posts()
	for i, post := range posts {
		if post.ID != ch.Select.PostID {
			continue
		}
		next := i + delta
		if next < 0 || next >= len(posts) {
			return
		}
		ch.Select.PostID = posts[next].ID
		return
	}
	// Cursor post vanished under us; snap to the newest.
	if len(posts) > 0 {
		ch.Select.PostID = posts[len(posts)-1].ID
	}
}

// ReplyToSelected puts the channel editor into reply mode targeting the
// selected post and leaves selection mode.
func (st *ChatState) ReplyToSelected(team *TeamState) {
	post, ok := st.SelectedPost()
	if !ok {
		return
	}
	if ch, chOK := st.CurrentChannel(); chOK {
		ch.Editor.BeginReply(post)
	}
	st.ExitMessageSelect(team)
}

// EditSelected loads the selected post into the editor for amendment. Only
// own posts can be edited.
func (st *ChatState) EditSelected(team *TeamState) {
	post, ok := st.SelectedPost()
	if !ok || post.UserID != st.Me.ID {
		return
	}
	if ch, chOK := st.CurrentChannel(); chOK {
		ch.Editor.BeginEdit(post)
	}
	st.ExitMessageSelect(team)
}

// DeleteSelected asks the server to delete the selected own post.
func (st *ChatState) DeleteSelected(team *TeamState) {
	post, ok := st.SelectedPost()
	if !ok || post.UserID != st.Me.ID {
		return
	}
	st.StartPostDelete(post)
	st.ExitMessageSelect(team)
}

// YankSelected returns the selected post's message for the clipboard and
// leaves selection mode.
func (st *ChatState) YankSelected(team *TeamState) (string, bool) {
	post, ok := st.SelectedPost()
	if !ok {
		return "", false
	}
	st.ExitMessageSelect(team)
	return post.Message, true
}

// OpenSelectedThread pops the selected post out into a thread view.
func (st *ChatState) OpenSelectedThread(team *TeamState) {
	post, ok := st.SelectedPost()
	if !ok {
		return
	}
	st.ExitMessageSelect(team)
	st.OpenThread(team, post)
}
