// Package editor holds per-surface composition state: the text buffer, its
// attachments, the autocomplete session, and the owned spell-check timer.
package editor

import (
	"unicode"

	"github.com/ethernet-zero/matterhorn/internal/spell"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// Mode describes what submitting the buffer will do.
type Mode int

const (
	NewPost Mode = iota
	Replying
	Editing
)

// Attachment is a file staged for upload alongside the next post.
type Attachment struct {
	Path string
	Name string
}

// EditState is the composition state for one channel or thread editor.
type EditState struct {
	buffer []rune
	cursor int

	Mode        Mode
	Target      *types.Post
	Attachments []Attachment
	Complete    *Autocomplete

	Misspelled map[string]struct{}
	spellTimer *spell.Timer
}

// New builds an empty editor in NewPost mode.
func New() *EditState {
	return &EditState{}
}

// AttachSpellTimer hands ownership of a debounce timer to this editor. The
// timer is cancelled when the editor is closed.
func (e *EditState) AttachSpellTimer(t *spell.Timer) {
	e.spellTimer = t
}

// Close releases owned resources. Closing twice is harmless.
func (e *EditState) Close() {
	e.spellTimer.Stop()
	e.Complete = nil
}

// Text returns the buffer contents.
func (e *EditState) Text() string {
	return string(e.buffer)
}

// SetText replaces the buffer and places the cursor at the end.
func (e *EditState) SetText(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
	e.noteChange()
}

// Cursor returns the rune offset of the cursor.
func (e *EditState) Cursor() int {
	if e.cursor < 0 {
		return 0
	}
	if e.cursor > len(e.buffer) {
		return len(e.buffer)
	}
	return e.cursor
}

// Empty reports whether the buffer holds no text and no attachments.
func (e *EditState) Empty() bool {
	return len(e.buffer) == 0 && len(e.Attachments) == 0
}

// Insert inserts text at the cursor position.
func (e *EditState) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := e.Cursor()
	updated := make([]rune, 0, len(e.buffer)+len(insert))
	updated = append(updated, e.buffer[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, e.buffer[pos:]...)
	e.buffer = updated
	e.cursor = pos + len(insert)
	e.noteChange()
	return true
}

// DeleteRuneBackward deletes a rune before the cursor.
func (e *EditState) DeleteRuneBackward() bool {
	pos := e.Cursor()
	if pos == 0 || len(e.buffer) == 0 {
		return false
	}
	e.buffer = append(e.buffer[:pos-1], e.buffer[pos:]...)
	e.cursor = pos - 1
	e.noteChange()
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (e *EditState) DeleteWordBackward() bool {
	pos := e.Cursor()
	if pos == 0 || len(e.buffer) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(e.buffer[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.buffer[i-1]) {
		i--
	}
	e.buffer = append(e.buffer[:i], e.buffer[pos:]...)
	e.cursor = i
	e.noteChange()
	return true
}

// Clear resets the buffer, mode, and attachments for the next message.
func (e *EditState) Clear() {
	e.buffer = nil
	e.cursor = 0
	e.Mode = NewPost
	e.Target = nil
	e.Attachments = nil
	e.Complete = nil
	e.Misspelled = nil
}

// MoveCursorStart moves the cursor to the start of the buffer.
func (e *EditState) MoveCursorStart() bool {
	if e.Cursor() == 0 {
		return false
	}
	e.cursor = 0
	return true
}

// MoveCursorEnd moves the cursor to the end of the buffer.
func (e *EditState) MoveCursorEnd() bool {
	end := len(e.buffer)
	if e.Cursor() == end {
		return false
	}
	e.cursor = end
	return true
}

// MoveCursorLeft moves the cursor one rune backward.
func (e *EditState) MoveCursorLeft() bool {
	if e.Cursor() == 0 {
		return false
	}
	e.cursor = e.Cursor() - 1
	return true
}

// MoveCursorRight moves the cursor one rune forward.
func (e *EditState) MoveCursorRight() bool {
	pos := e.Cursor()
	if pos >= len(e.buffer) {
		return false
	}
	e.cursor = pos + 1
	return true
}

// MoveCursorWordBackward moves the cursor one word backward.
func (e *EditState) MoveCursorWordBackward() bool {
	pos := e.Cursor()
	if pos == 0 || len(e.buffer) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(e.buffer[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.buffer[i-1]) {
		i--
	}
	if i == pos {
		return false
	}
	e.cursor = i
	return true
}

// MoveCursorWordForward moves the cursor one word forward.
func (e *EditState) MoveCursorWordForward() bool {
	pos := e.Cursor()
	if pos >= len(e.buffer) {
		return false
	}
	i := pos
	for i < len(e.buffer) && !unicode.IsSpace(e.buffer[i]) {
		i++
	}
	for i < len(e.buffer) && unicode.IsSpace(e.buffer[i]) {
		i++
	}
	if i == pos {
		return false
	}
	e.cursor = i
	return true
}

// BeginReply puts the editor into reply mode targeting post.
func (e *EditState) BeginReply(post types.Post) {
	p := post
	e.Mode = Replying
	e.Target = &p
}

// BeginEdit loads post's message for in-place editing.
func (e *EditState) BeginEdit(post types.Post) {
	p := post
	e.Mode = Editing
	e.Target = &p
	e.SetText(post.Message)
}

// AddAttachment stages a file for the next post.
func (e *EditState) AddAttachment(a Attachment) {
	e.Attachments = append(e.Attachments, a)
}

// CurrentWord returns the word under the cursor, used to seed autocomplete.
func (e *EditState) CurrentWord() string {
	pos := e.Cursor()
	start := pos
	for start > 0 && !unicode.IsSpace(e.buffer[start-1]) {
		start--
	}
	return string(e.buffer[start:pos])
}

// ReplaceCurrentWord swaps the word under the cursor for replacement.
func (e *EditState) ReplaceCurrentWord(replacement string) {
	pos := e.Cursor()
	start := pos
	for start > 0 && !unicode.IsSpace(e.buffer[start-1]) {
		start--
	}
	repl := []rune(replacement)
	updated := make([]rune, 0, start+len(repl)+len(e.buffer)-pos)
	updated = append(updated, e.buffer[:start]...)
	updated = append(updated, repl...)
	updated = append(updated, e.buffer[pos:]...)
	e.buffer = updated
	e.cursor = start + len(repl)
	e.noteChange()
}

func (e *EditState) noteChange() {
	if e.spellTimer != nil {
		e.spellTimer.Note(string(e.buffer))
	}
}
