// Package overlay implements the modal list overlays layered over the main
// view: user list, channel select, theme list, emoji list, post search.
// Each overlay is a filterable item list with a cursor, an optional
// fetch-more hook for server-backed lists, and an enter handler.
package overlay

// Kind identifies which overlay a list drives.
type Kind int

const (
	UserList Kind = iota
	ChannelSelect
	ThemeList
	EmojiList
	PostList
)

// Item is one overlay row.
type Item struct {
	ID    string
	Label string
	Extra string
}

// List holds overlay state: the full item set, the filtered view, the filter
// query with its own cursor, and the selection cursor with viewport offset.
type List struct {
	Kind  Kind
	Title string

	Full         []Item
	Items        []Item
	Filter       string
	FilterCursor int
	Cursor       int
	LastCursor   int

	ViewportOffset int

	// Total is the server-side result count when it exceeds what is
	// loaded; zero means the list is complete.
	Total int
	// FetchMore requests the next page for server-backed overlays. May be
	// nil for fully local lists.
	FetchMore func(query string)
	// OnEnter handles selection of an item. May be nil for display-only
	// overlays.
	OnEnter func(item Item)
}

// NewList constructs an overlay list over items.
func NewList(kind Kind, title string, items []Item) *List {
	l := &List{Kind: kind, Title: title, LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// UpdateItems refreshes the full item set, re-applying the active filter and
// clamping the cursor and viewport.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = cloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Focused returns the item under the cursor.
func (l *List) Focused() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// Enter invokes the enter handler for the focused item.
func (l *List) Enter() bool {
	item, ok := l.Focused()
	if !ok || l.OnEnter == nil {
		return false
	}
	l.OnEnter(item)
	return true
}

// IndexOf returns the index of the item with the given id.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// MoveCursorUp moves the selection cursor up one row.
func (l *List) MoveCursorUp() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorDown moves the selection cursor down one row.
func (l *List) MoveCursorDown() bool {
	return l.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
