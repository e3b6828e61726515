package zipper

// Entry tags a zipper element with the section it renders under, e.g. the
// favourite/normal/direct groups of a channel sidebar.
type Entry[T comparable] struct {
	Group string
	Value T
}

// Grouped is a zipper over tagged entries. Navigation skips nothing: groups
// only affect rendering, not motion.
type Grouped[T comparable] struct {
	Zipper[Entry[T]]
}

// FromGroups builds a grouped zipper from ordered (group, items) sections.
func FromGroups[T comparable](groups []string, itemsByGroup map[string][]T) *Grouped[T] {
	var entries []Entry[T]
	for _, g := range groups {
		for _, item := range itemsByGroup[g] {
			entries = append(entries, Entry[T]{Group: g, Value: item})
		}
	}
	g := &Grouped[T]{}
	g.items = entries
	return g
}

// FocusValue returns the focused entry's value.
func (g *Grouped[T]) FocusValue() (T, bool) {
	entry, ok := g.Focus()
	if !ok {
		var zero T
		return zero, false
	}
	return entry.Value, true
}

// FocusOnValue moves the focus to the first entry carrying value, in any group.
func (g *Grouped[T]) FocusOnValue(value T) bool {
	for i, entry := range g.items {
		if entry.Value == value {
			g.pos = i
			return true
		}
	}
	return false
}

// ContainsValue reports whether any entry carries value.
func (g *Grouped[T]) ContainsValue(value T) bool {
	for _, entry := range g.items {
		if entry.Value == value {
			return true
		}
	}
	return false
}

// RemoveValue drops every entry carrying value.
func (g *Grouped[T]) RemoveValue(value T) {
	g.Filter(func(e Entry[T]) bool { return e.Value != value })
}
