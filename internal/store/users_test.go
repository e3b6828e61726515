package store

import (
	"testing"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

func TestMergePreservesStatus(t *testing.T) {
	users := NewUsers()
	users.Merge(types.User{ID: "u1", Username: "alice", Status: "online"})
	users.Merge(types.User{ID: "u1", Username: "alice", Nickname: "Al"})
	got, ok := users.Get("u1")
	if !ok {
		t.Fatalf("expected user present")
	}
	if got.Status != "online" {
		t.Fatalf("expected status preserved across profile merge, got %q", got.Status)
	}
	if got.Nickname != "Al" {
		t.Fatalf("expected profile fields updated, got %q", got.Nickname)
	}
}

func TestMergeRekeysUsername(t *testing.T) {
	users := NewUsers()
	users.Merge(types.User{ID: "u1", Username: "alice"})
	users.Merge(types.User{ID: "u1", Username: "alice_renamed"})
	if _, ok := users.GetByUsername("alice"); ok {
		t.Fatalf("expected old username unindexed")
	}
	got, ok := users.GetByUsername("alice_renamed")
	if !ok || got.ID != "u1" {
		t.Fatalf("expected lookup by new username, got %+v", got)
	}
}

func TestSetStatus(t *testing.T) {
	users := NewUsers()
	users.Merge(types.User{ID: "u1", Username: "alice"})
	if !users.SetStatus("u1", "away") {
		t.Fatalf("expected status update for known user")
	}
	got, _ := users.Get("u1")
	if got.Status != "away" {
		t.Fatalf("expected away, got %q", got.Status)
	}
	if users.SetStatus("ghost", "online") {
		t.Fatalf("expected unknown user status ignored")
	}
}

func TestUsernames(t *testing.T) {
	users := NewUsers()
	users.Merge(types.User{ID: "u1", Username: "alice"})
	users.Merge(types.User{ID: "u2", Username: "bob"})
	users.Merge(types.User{ID: "u3"}) // no username
	names := users.Usernames()
	if len(names) != 2 {
		t.Fatalf("expected 2 usernames, got %v", names)
	}
}
