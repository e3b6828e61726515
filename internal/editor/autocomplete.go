package editor

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Autocomplete is an active completion session over usernames, channel
// names, or emoji. It exists only while the user is mid-completion.
type Autocomplete struct {
	Query      string
	Candidates []string
	Index      int
}

// StartAutocomplete opens a session ranking candidates against query.
// Returns nil when nothing matches.
func StartAutocomplete(query string, candidates []string) *Autocomplete {
	matched := rankCandidates(query, candidates)
	if len(matched) == 0 {
		return nil
	}
	return &Autocomplete{Query: query, Candidates: matched}
}

// Refine re-ranks the session for an updated query. Returns false when the
// session no longer has matches and should be dismissed.
func (a *Autocomplete) Refine(query string, candidates []string) bool {
	matched := rankCandidates(query, candidates)
	if len(matched) == 0 {
		return false
	}
	a.Query = query
	a.Candidates = matched
	if a.Index >= len(matched) {
		a.Index = 0
	}
	return true
}

// Next advances the selection, wrapping.
func (a *Autocomplete) Next() {
	if len(a.Candidates) == 0 {
		return
	}
	a.Index = (a.Index + 1) % len(a.Candidates)
}

// Prev moves the selection backward, wrapping.
func (a *Autocomplete) Prev() {
	if len(a.Candidates) == 0 {
		return
	}
	a.Index--
	if a.Index < 0 {
		a.Index = len(a.Candidates) - 1
	}
}

// Selected returns the highlighted candidate.
func (a *Autocomplete) Selected() (string, bool) {
	if a == nil || a.Index < 0 || a.Index >= len(a.Candidates) {
		return "", false
	}
	return a.Candidates[a.Index], true
}

func rankCandidates(query string, candidates []string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, candidates)
	sort.Sort(ranks)
	matched := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, rank.Target)
	}
	return matched
}
