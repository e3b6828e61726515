package store

import (
	"testing"
	"time"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

func postAt(id string, at time.Time) types.Post {
	return types.Post{ID: types.PostID(id), Message: id, CreateAt: at}
}

func TestUpsertKeepsTimestampOrder(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPostList()
	p.Upsert(postAt("b", base.Add(2*time.Minute)))
	p.Upsert(postAt("a", base))
	p.Upsert(postAt("c", base.Add(4*time.Minute)))

	posts := p.Posts()
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []string{"a", "b", "c"} {
		if string(posts[i].ID) != want {
			t.Fatalf("expected %s at index %d, got %s", want, i, posts[i].ID)
		}
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPostList()
	p.Upsert(postAt("a", base))
	edited := postAt("a", base)
	edited.Message = "edited"
	p.Upsert(edited)
	if p.Len() != 1 {
		t.Fatalf("expected edit to not duplicate, got %d posts", p.Len())
	}
	got, ok := p.Get("a")
	if !ok || got.Message != "edited" {
		t.Fatalf("expected edited message, got %+v", got)
	}
}

func TestRemoveReindexes(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPostList()
	p.Upsert(postAt("a", base))
	p.Upsert(postAt("b", base.Add(time.Minute)))
	p.Upsert(postAt("c", base.Add(2*time.Minute)))

	p.Remove("b")
	if p.Len() != 2 {
		t.Fatalf("expected 2 posts, got %d", p.Len())
	}
	if got, ok := p.Get("c"); !ok || got.Message != "c" {
		t.Fatalf("expected c to remain reachable after remove, got %+v", got)
	}
	p.Remove("missing")
	if p.Len() != 2 {
		t.Fatalf("expected removing absent post to be a no-op")
	}
}

func TestPrependHistorySetsGapState(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPostList()
	if p.Fetched || !p.GapBefore {
		t.Fatalf("expected fresh list unfetched with a leading gap")
	}
	p.PrependHistory([]types.Post{postAt("a", base)}, true)
	if !p.Fetched || !p.GapBefore {
		t.Fatalf("expected fetched with more history available")
	}
	p.PrependHistory([]types.Post{postAt("b", base.Add(-time.Hour))}, false)
	if p.GapBefore {
		t.Fatalf("expected leading gap closed")
	}
	posts := p.Posts()
	if string(posts[0].ID) != "b" {
		t.Fatalf("expected older page sorted first, got %v", posts[0].ID)
	}
}

func TestAppendLatestClosesTrailingGap(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPostList()
	p.GapAfter = true
	p.AppendLatest([]types.Post{postAt("z", base)})
	if p.GapAfter {
		t.Fatalf("expected trailing gap closed")
	}
	if !p.Fetched {
		t.Fatalf("expected list marked fetched")
	}
}
