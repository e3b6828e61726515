package store

import (
	"sort"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

// PostList is an ordered, gap-aware message sequence. It tracks whether
// history before the first and after the last loaded post has been fetched,
// so the UI knows when "fetch more" is meaningful at either end.
type PostList struct {
	posts   []types.Post
	byID    map[types.PostID]int
	Fetched bool
	// GapBefore is true while earlier history may exist on the server.
	GapBefore bool
	// GapAfter is true while later history may exist, e.g. after a
	// reconnect that jumped past missed posts.
	GapAfter bool
}

// NewPostList returns an empty sequence marked as not yet fetched.
func NewPostList() *PostList {
	return &PostList{byID: make(map[types.PostID]int), GapBefore: true}
}

// Len reports the number of loaded posts.
func (p *PostList) Len() int {
	return len(p.posts)
}

// Posts returns the loaded posts oldest-first.
func (p *PostList) Posts() []types.Post {
	if len(p.posts) == 0 {
		return nil
	}
	dup := make([]types.Post, len(p.posts))
	copy(dup, p.posts)
	return dup
}

// At returns the post at index i.
func (p *PostList) At(i int) (types.Post, bool) {
	if i < 0 || i >= len(p.posts) {
		return types.Post{}, false
	}
	return p.posts[i], true
}

// Get looks up a post by id.
func (p *PostList) Get(id types.PostID) (types.Post, bool) {
	idx, ok := p.byID[id]
	if !ok {
		return types.Post{}, false
	}
	return p.posts[idx], true
}

// Upsert inserts a post in timestamp order, or replaces it in place when the
// id is already present (edits, reaction updates).
func (p *PostList) Upsert(post types.Post) {
	if idx, ok := p.byID[post.ID]; ok {
		p.posts[idx] = post
		return
	}
	idx := sort.Search(len(p.posts), func(i int) bool {
		return p.posts[i].CreateAt.After(post.CreateAt)
	})
	p.posts = append(p.posts, types.Post{})
	copy(p.posts[idx+1:], p.posts[idx:])
	p.posts[idx] = post
	p.reindex(idx)
}

// Remove drops a post by id. Removing an absent id is a no-op.
func (p *PostList) Remove(id types.PostID) {
	idx, ok := p.byID[id]
	if !ok {
		return
	}
	p.posts = append(p.posts[:idx], p.posts[idx+1:]...)
	delete(p.byID, id)
	p.reindex(idx)
}

// PrependHistory adds an older page of posts fetched from the server, posts
// oldest-first. hasMore reports whether yet-earlier history remains.
func (p *PostList) PrependHistory(posts []types.Post, hasMore bool) {
	for _, post := range posts {
		p.Upsert(post)
	}
	p.Fetched = true
	p.GapBefore = hasMore
}

// AppendLatest adds the newest page of posts and closes the trailing gap.
func (p *PostList) AppendLatest(posts []types.Post) {
	for _, post := range posts {
		p.Upsert(post)
	}
	p.Fetched = true
	p.GapAfter = false
}

func (p *PostList) reindex(from int) {
	for i := from; i < len(p.posts); i++ {
		p.byID[p.posts[i].ID] = i
	}
}
