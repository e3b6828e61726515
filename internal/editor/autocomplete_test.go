package editor

import "testing"

func TestStartAutocomplete(t *testing.T) {
	names := []string{"alice", "bob", "albert"}
	ac := StartAutocomplete("al", names)
	if ac == nil {
		t.Fatalf("expected matches for al")
	}
	for _, c := range ac.Candidates {
		if c == "bob" {
			t.Fatalf("expected bob filtered out, got %v", ac.Candidates)
		}
	}
	if StartAutocomplete("zzz", names) != nil {
		t.Fatalf("expected nil session when nothing matches")
	}
}

func TestStartAutocompleteEmptyQueryKeepsAll(t *testing.T) {
	names := []string{"alice", "bob"}
	ac := StartAutocomplete("", names)
	if ac == nil || len(ac.Candidates) != 2 {
		t.Fatalf("expected all candidates for empty query, got %+v", ac)
	}
}

func TestRefineClampsIndex(t *testing.T) {
	ac := StartAutocomplete("", []string{"aa", "ab", "ba"})
	ac.Index = 2
	if !ac.Refine("a", []string{"aa", "ab", "ba"}) {
		t.Fatalf("expected refine to keep matches")
	}
	if ac.Index >= len(ac.Candidates) && ac.Index != 0 {
		t.Fatalf("expected index clamped, got %d of %d", ac.Index, len(ac.Candidates))
	}
	if ac.Refine("zzz", []string{"aa"}) {
		t.Fatalf("expected refine to fail with no matches")
	}
}

func TestNextPrevWrap(t *testing.T) {
	ac := StartAutocomplete("", []string{"a", "b", "c"})
	ac.Next()
	ac.Next()
	ac.Next()
	if selected, _ := ac.Selected(); selected != "a" {
		t.Fatalf("expected wrap to first, got %s", selected)
	}
	ac.Prev()
	if selected, _ := ac.Selected(); selected != "c" {
		t.Fatalf("expected wrap to last, got %s", selected)
	}
}

func TestSelectedOnNil(t *testing.T) {
	var ac *Autocomplete
	if _, ok := ac.Selected(); ok {
		t.Fatalf("expected no selection on nil session")
	}
}
