package chat

import (
	"context"
	"fmt"

	"github.com/ethernet-zero/matterhorn/internal/editor"
	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/google/uuid"
)

// applyPostsLoaded merges a fetched history page into the channel or thread
// it was requested for. A page for an entity no longer present is a benign
// no-op; cross-producer ordering makes that a normal race.
func (st *ChatState) applyPostsLoaded(ev PostsLoaded) {
	if ev.Err != nil {
		logging.Error(logging.API, fmt.Errorf("load posts for %s: %w", ev.ChannelID, ev.Err))
		return
	}
	if ev.RootID != "" {
		st.applyThreadPostsLoaded(ev)
		return
	}
	ch, ok := st.Channels.Get(ev.ChannelID)
	if !ok {
		events.Channel.Orphan("posts-loaded", string(ev.ChannelID))
		return
	}
	ch.Posts.PrependHistory(ev.Posts, ev.HasMore)
}

func (st *ChatState) applyThreadPostsLoaded(ev PostsLoaded) {
	for _, team := range st.Teams {
		thread := team.Thread
		if thread == nil || thread.RootID != ev.RootID {
			continue
		}
		for _, post := range ev.Posts {
			if post.ID == ev.RootID || post.RootID == ev.RootID {
				thread.Posts.Upsert(post)
			}
		}
		thread.Posts.Fetched = true
		thread.Posts.GapBefore = false
	}
}

// applyPostReceived lands a live post in its channel, bumping unread and
// mention counters when the channel is not focused.
func (st *ChatState) applyPostReceived(post types.Post) {
	ch, ok := st.Channels.Get(post.ChannelID)
	if !ok {
		events.Channel.Orphan("post-received", string(post.ChannelID))
		return
	}
	ch.Posts.Upsert(post)

	focused := false
	if current, ok := st.CurrentChannel(); ok && current.ID == post.ChannelID {
		focused = true
	}
	if !focused && post.UserID != st.Me.ID {
		ch.Info.Unread++
		if st.mentionsMe(post.Message) {
			ch.Info.Mentions++
		}
		if ch.Info.Unread == 1 {
			st.regroupForUnread(ch)
		}
	}
	st.feedThread(post)
}

func (st *ChatState) mentionsMe(message string) bool {
	if st.Me.Username == "" {
		return false
	}
	return containsWord(message, "@"+st.Me.Username)
}

// feedThread mirrors a post into any open thread view rooted at it.
func (st *ChatState) feedThread(post types.Post) {
	for _, team := range st.Teams {
		thread := team.Thread
		if thread == nil {
			continue
		}
		if post.RootID == thread.RootID || post.ID == thread.RootID {
			thread.Posts.Upsert(post)
		}
	}
}

func (st *ChatState) applyPostEdited(post types.Post) {
	ch, ok := st.Channels.Get(post.ChannelID)
	if !ok {
		events.Channel.Orphan("post-edited", string(post.ChannelID))
		return
	}
	ch.Posts.Upsert(post)
	st.feedThread(post)
}

func (st *ChatState) applyPostDeleted(postID types.PostID, channelID types.ChannelID) {
	ch, ok := st.Channels.Get(channelID)
	if !ok {
		events.Channel.Orphan("post-deleted", string(channelID))
		return
	}
	ch.Posts.Remove(postID)
	if ch.Select != nil && ch.Select.PostID == postID {
		ch.Select = nil
	}
	st.dropFromThreads(postID, channelID)
}

// dropFromThreads removes a post from any open thread view over the channel.
func (st *ChatState) dropFromThreads(postID types.PostID, channelID types.ChannelID) {
	for _, team := range st.Teams {
		if team.Thread != nil && team.Thread.ChannelID == channelID {
			team.Thread.Posts.Remove(postID)
		}
	}
}

// applyPostAcked swaps an optimistic pending post for the server's copy, or
// drops it and reports when the create failed.
func (st *ChatState) applyPostAcked(ev PostAcked) {
	channelID := ev.Post.ChannelID
	if ev.Err != nil {
		logging.Error(logging.API, fmt.Errorf("send post: %w", ev.Err))
	}
	if channelID == "" {
		// The failure path carries no server post; find the pending copy.
		for _, id := range st.Channels.IDs() {
			if ch, ok := st.Channels.Get(id); ok {
				if _, found := ch.Posts.Get(ev.PendingID); found {
					ch.Posts.Remove(ev.PendingID)
					st.dropFromThreads(ev.PendingID, id)
					return
				}
			}
		}
		return
	}
	ch, ok := st.Channels.Get(channelID)
	if !ok {
		events.Channel.Orphan("post-acked", string(channelID))
		return
	}
	ch.Posts.Remove(ev.PendingID)
	st.dropFromThreads(ev.PendingID, channelID)
	if ev.Err == nil {
		ch.Posts.Upsert(ev.Post)
		st.feedThread(ev.Post)
	}
}

// SubmitEditor sends the editor's buffer according to its mode: a new post,
// a threaded reply, or an edit. The buffer clears immediately; a pending
// copy renders until the server acks.
func (st *ChatState) SubmitEditor(channelID types.ChannelID, ed *editor.EditState) {
	ch, ok := st.Channels.Get(channelID)
	if !ok {
		events.Channel.Orphan("submit", string(channelID))
		return
	}
	text := ed.Text()
	if ed.Empty() {
		return
	}

	switch ed.Mode {
	case editor.Editing:
		if ed.Target == nil {
			panic("edit submit without a target post")
		}
		updated := *ed.Target
		updated.Message = text
		st.startPostUpdate(updated)
	default:
		post := types.Post{
			ID:        types.PostID("pending-" + uuid.NewString()),
			ChannelID: channelID,
			UserID:    st.Me.ID,
			Message:   text,
			CreateAt:  nowFunc(),
			Pending:   true,
		}
		if ed.Mode == editor.Replying && ed.Target != nil {
			if ed.Target.RootID != "" {
				post.RootID = ed.Target.RootID
			} else {
				post.RootID = ed.Target.ID
			}
		}
		ch.Posts.Upsert(post)
		st.feedThread(post)
		st.History.Record(channelID, text)
		st.startPostCreate(post)
	}
	ed.Clear()
}

func (st *ChatState) startPostCreate(post types.Post) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "create-post",
		Run: func(ctx context.Context) Event {
			created, err := svc.CreatePost(ctx, post)
			if err != nil {
				return PostAcked{PendingID: post.ID, Err: err}
			}
			return PostAcked{PendingID: post.ID, Post: created}
		},
	})
}

func (st *ChatState) startPostUpdate(post types.Post) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "update-post",
		Run: func(ctx context.Context) Event {
			updated, err := svc.UpdatePost(ctx, post)
			if err != nil {
				return ErrorEvent{Category: logging.API, Err: err}
			}
			return PostEdited{Post: updated}
		},
	})
}

// StartPostDelete asks the server to delete a post; the post_deleted push
// (or this request's failure) settles the outcome.
func (st *ChatState) StartPostDelete(post types.Post) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "delete-post",
		Run: func(ctx context.Context) Event {
			if err := svc.DeletePost(ctx, post.ID); err != nil {
				return ErrorEvent{Category: logging.API, Err: err}
			}
			return PostDeleted{PostID: post.ID, ChannelID: post.ChannelID}
		},
	})
}

// OpenThread pops out a thread view rooted at post and requests its
// history.
func (st *ChatState) OpenThread(team *TeamState, post types.Post) {
	rootID := post.RootID
	if rootID == "" {
		rootID = post.ID
	}
	team.Thread.Close()
	thread := &ThreadInterface{
		ChannelID: post.ChannelID,
		RootID:    rootID,
		Posts:     store.NewPostList(),
		Editor:    editor.New(),
	}
	thread.Editor.Mode = editor.Replying
	root := post
	root.ID = rootID
	thread.Editor.Target = &root
	team.Thread = thread

	st.startThreadFetch(post.ChannelID, rootID)
}

func (st *ChatState) startThreadFetch(channelID types.ChannelID, rootID types.PostID) {
	svc := st.Resources.Service
	st.Resources.Workers.Submit(Request{
		Kind: "fetch-thread",
		Run: func(ctx context.Context) Event {
			posts, err := svc.FetchThread(ctx, rootID)
			return PostsLoaded{ChannelID: channelID, RootID: rootID, Posts: posts, Err: err}
		},
	})
}

// CloseThread tears down the thread view, cancelling its editor's timers.
func (st *ChatState) CloseThread(team *TeamState) {
	team.Thread.Close()
	team.Thread = nil
}

func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] != needle {
			continue
		}
		beforeOK := i == 0 || haystack[i-1] == ' ' || haystack[i-1] == '\n' || haystack[i-1] == '\t'
		after := i + len(needle)
		afterOK := after == len(haystack) || !isWordByte(haystack[after])
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
