// Package emoji holds the emoji name table. A background worker populates it
// once after startup; afterwards it is only read, and any refresh must go
// through the dispatch loop.
package emoji

import "sort"

// Table is the loaded emoji name set.
type Table struct {
	names []string
}

// NewTable builds a table from the built-in names; server custom emoji are
// merged in once loaded.
func NewTable() *Table {
	return &Table{names: append([]string(nil), builtin...)}
}

// Merge adds server-side custom emoji names, deduplicated and sorted.
func (t *Table) Merge(extra []string) {
	seen := make(map[string]struct{}, len(t.names)+len(extra))
	merged := make([]string, 0, len(t.names)+len(extra))
	for _, name := range append(t.names, extra...) {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	sort.Strings(merged)
	t.names = merged
}

// Names returns the emoji names in sorted order.
func (t *Table) Names() []string {
	dup := make([]string, len(t.names))
	copy(dup, t.names)
	return dup
}

// builtin is a starter set available before the server table loads.
var builtin = []string{
	"+1", "-1", "clap", "eyes", "fire", "heart", "joy", "laughing",
	"pray", "rocket", "smile", "tada", "thinking", "thumbsup", "thumbsdown",
	"wave",
}
