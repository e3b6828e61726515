// Package spell runs draft text through an external aspell process and
// schedules re-checks with a debounce timer owned by each editor.
package spell

import (
	"bytes"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const debounceDelay = 500 * time.Millisecond

// Checker shells out to aspell in list mode. The zero value is unusable; use
// NewChecker, which probes for the binary.
type Checker struct {
	path string
}

// NewChecker locates aspell. Returns an error when the binary is missing, in
// which case spell checking stays disabled.
func NewChecker() (*Checker, error) {
	path, err := exec.LookPath("aspell")
	if err != nil {
		return nil, err
	}
	return &Checker{path: path}, nil
}

// Check returns the set of misspelled words in text.
func (c *Checker) Check(text string) (map[string]struct{}, error) {
	cmd := exec.Command(c.path, "list", "--mode=none")
	cmd.Stdin = strings.NewReader(text)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	words := make(map[string]struct{})
	for _, w := range strings.Fields(out.String()) {
		words[w] = struct{}{}
	}
	return words, nil
}

// Timer debounces spell-check requests for one editor. Note re-arms the
// timer on every keystroke; the callback runs on the timer goroutine once
// input has been quiet for the debounce delay. Stop cancels the timer for
// good: a fire racing with Stop is suppressed.
type Timer struct {
	fire func(text string)

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
}

// NewTimer builds a debounce timer invoking fire with the text to check.
func NewTimer(fire func(text string)) *Timer {
	return &Timer{fire: fire}
}

// Note records fresh editor content and re-arms the debounce timer.
func (t *Timer) Note(text string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(debounceDelay, func() {
		t.mu.Lock()
		stopped := t.stopped
		t.mu.Unlock()
		if stopped {
			return
		}
		t.fire(text)
	})
}

// Stop cancels the timer. Safe to call more than once and on nil.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Stopped reports whether Stop has been called.
func (t *Timer) Stopped() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
