package chat

import (
	"testing"
	"time"
)

func TestNoteTypingSkipsOwnUser(t *testing.T) {
	st := newTestState(t, nil, Options{ShowTypingIndicator: true})
	joinTeam(st, "t1", openChannel("c1", "t1", "town-square"))

	st.NoteTyping("c1", "me", time.Now())
	if len(st.TypingUsers("c1")) != 0 {
		t.Fatalf("expected own typing ignored")
	}
}

func TestExpireTypingKeepsFreshEntries(t *testing.T) {
	st := newTestState(t, nil, Options{ShowTypingIndicator: true})
	now := time.Now()
	st.NoteTyping("c1", "alice", now.Add(-4*time.Second))
	st.NoteTyping("c1", "bob", now.Add(-1*time.Second))

	st.ExpireTyping(now)
	users := st.TypingUsers("c1")
	if len(users) != 1 || users[0] != "bob" {
		t.Fatalf("expected only bob still typing, got %v", users)
	}
}

func TestNoteTypingRefreshExtendsLife(t *testing.T) {
	st := newTestState(t, nil, Options{ShowTypingIndicator: true})
	now := time.Now()
	st.NoteTyping("c1", "alice", now.Add(-4*time.Second))
	st.NoteTyping("c1", "alice", now)

	st.ExpireTyping(now)
	if len(st.TypingUsers("c1")) != 1 {
		t.Fatalf("expected refreshed indicator kept")
	}
}

func TestCurrentChannelWithoutTeams(t *testing.T) {
	st := newTestState(t, nil, Options{})
	if _, ok := st.CurrentTeam(); ok {
		t.Fatalf("expected no current team before any join")
	}
	if _, ok := st.CurrentChannel(); ok {
		t.Fatalf("expected no current channel before any join")
	}
}
