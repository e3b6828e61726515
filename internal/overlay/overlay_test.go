package overlay

import "testing"

func newTestList(ids ...string) *List {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewList(ChannelSelect, "Test", items)
}

func TestMoveCursorClamps(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveCursorDown() {
		t.Fatalf("expected cursor move down")
	}
	if l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	l.MoveCursorEnd()
	if l.MoveCursorDown() {
		t.Fatalf("expected no movement past the end")
	}
	l.MoveCursorHome()
	if l.MoveCursorUp() {
		t.Fatalf("expected no movement before the start")
	}

	empty := newTestList()
	if empty.MoveCursorDown() {
		t.Fatalf("expected no movement on empty list")
	}
}

func TestPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected page down to move")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected oversized page up to clamp to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected viewport offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected viewport offset 0, got %d", l.ViewportOffset)
	}
}

func TestFilterNarrowsAndRestoresCursor(t *testing.T) {
	l := newTestList("town-square", "random", "dev-backend")
	l.Cursor = 2

	l.InsertFilterText("town")
	if len(l.Items) != 1 || l.Items[0].ID != "town-square" {
		t.Fatalf("expected town-square only, got %+v", l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor on the match, got %d", l.Cursor)
	}

	l.ClearFilter()
	if len(l.Items) != 3 {
		t.Fatalf("expected full list restored, got %d items", len(l.Items))
	}
	if l.Cursor != 2 {
		t.Fatalf("expected pre-filter cursor restored, got %d", l.Cursor)
	}
}

func TestFilterNoMatches(t *testing.T) {
	l := newTestList("alpha", "beta")
	l.SetFilter("zzzz", 4)
	if len(l.Items) != 0 {
		t.Fatalf("expected no matches, got %+v", l.Items)
	}
	if _, ok := l.Focused(); ok {
		t.Fatalf("expected no focused item on empty filter result")
	}
}

func TestFilterEditing(t *testing.T) {
	l := newTestList("one", "two")
	l.InsertFilterText("ab")
	l.InsertFilterText("c")
	if l.Filter != "abc" {
		t.Fatalf("expected filter abc, got %q", l.Filter)
	}
	if !l.DeleteFilterRuneBackward() {
		t.Fatalf("expected rune deletion")
	}
	if l.Filter != "ab" {
		t.Fatalf("expected filter ab, got %q", l.Filter)
	}
	if !l.DeleteFilterWordBackward() {
		t.Fatalf("expected word deletion")
	}
	if l.Filter != "" {
		t.Fatalf("expected empty filter, got %q", l.Filter)
	}
	if l.DeleteFilterRuneBackward() {
		t.Fatalf("expected deletion on empty filter to be a no-op")
	}
}

func TestSetFilterTriggersFetchMoreOnQueryChange(t *testing.T) {
	l := newTestList("one")
	var queries []string
	l.FetchMore = func(q string) { queries = append(queries, q) }

	l.SetFilter("on", 2)
	l.SetFilter("on", 2) // unchanged query must not refetch
	l.SetFilter("one", 3)
	l.SetFilter("", 0) // clearing must not refetch

	if len(queries) != 2 || queries[0] != "on" || queries[1] != "one" {
		t.Fatalf("expected fetches for on and one, got %v", queries)
	}
}

func TestEnterInvokesHandler(t *testing.T) {
	l := newTestList("a", "b")
	var chosen string
	l.OnEnter = func(item Item) { chosen = item.ID }
	l.MoveCursorDown()
	if !l.Enter() {
		t.Fatalf("expected enter to fire")
	}
	if chosen != "b" {
		t.Fatalf("expected b chosen, got %q", chosen)
	}

	l.OnEnter = nil
	if l.Enter() {
		t.Fatalf("expected enter without handler to report false")
	}
}

func TestUpdateItemsReclampsCursor(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	l.UpdateItems([]Item{{ID: "a", Label: "a"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", l.Cursor)
	}
}
