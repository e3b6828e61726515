package ui

import (
	"context"
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethernet-zero/matterhorn/internal/chat"
	"github.com/ethernet-zero/matterhorn/internal/editor"
	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/types"
)

// typingNotifyInterval throttles typing notifications to the server.
const typingNotifyInterval = 2 * time.Second

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c", "ctrl+q":
		m.st.SaveRunState()
		m.quitting = true
		return tea.Quit
	}

	team, ok := m.st.CurrentTeam()
	if !ok {
		return nil
	}

	switch team.Mode() {
	case chat.ModeMessageSelect:
		return m.handleSelectKey(team, key)
	case chat.ModeChannelSelect, chat.ModeUserList, chat.ModeThemeList, chat.ModeEmojiList, chat.ModePostList:
		return m.handleOverlayKey(team, key)
	default:
		return m.handleMainKey(team, key)
	}
}

func (m *Model) handleMainKey(team *chat.TeamState, key tea.KeyMsg) tea.Cmd {
	ed := m.activeEditor(team)

	switch key.String() {
	case "ctrl+n", "alt+down":
		m.st.NextChannel(team)
		return nil
	case "ctrl+p", "alt+up":
		m.st.PrevChannel(team)
		return nil
	case "ctrl+right":
		m.st.NextTeam()
		m.st.EnsureTeamLoaded()
		return nil
	case "ctrl+left":
		m.st.PrevTeam()
		m.st.EnsureTeamLoaded()
		return nil
	case "alt+shift+left":
		m.st.MoveTeamLeft()
		return nil
	case "alt+shift+right":
		m.st.MoveTeamRight()
		return nil
	case "ctrl+o":
		m.st.JumpBack(team)
		return nil
	case "ctrl+k":
		m.st.OpenChannelSelect(team)
		return nil
	case "ctrl+t":
		m.st.OpenThemeList(team, themeNames(), func(name string) {
			m.applyTheme(name)
		})
		return nil
	case "ctrl+g":
		m.st.OpenEmojiList(team)
		return nil
	case "f2":
		m.st.OpenUserList(team)
		return nil
	case "ctrl+s":
		m.st.EnterMessageSelect(team)
		return nil
	case "esc":
		if team.Thread != nil {
			m.st.CloseThread(team)
			return nil
		}
		if ed != nil && ed.Mode != editor.NewPost {
			ed.Clear()
			return nil
		}
		return nil
	case "pgup":
		if ch, ok := m.st.CurrentChannel(); ok && ch.Posts.GapBefore {
			before, _ := ch.Posts.At(0)
			m.st.StartPostsFetch(ch.ID, before.ID)
		}
		return nil
	case "tab":
		m.advanceAutocomplete(ed)
		return nil
	case "up":
		m.recallHistory(ed, true)
		return nil
	case "down":
		m.recallHistory(ed, false)
		return nil
	case "enter":
		m.submit(team, ed)
		return nil
	case "ctrl+a":
		if ed != nil {
			ed.MoveCursorStart()
		}
		return nil
	case "ctrl+e":
		if ed != nil {
			ed.MoveCursorEnd()
		}
		return nil
	case "ctrl+w":
		if ed != nil {
			ed.DeleteWordBackward()
		}
		return nil
	case "alt+b":
		if ed != nil {
			ed.MoveCursorWordBackward()
		}
		return nil
	case "alt+f":
		if ed != nil {
			ed.MoveCursorWordForward()
		}
		return nil
	case "left":
		if ed != nil {
			ed.MoveCursorLeft()
		}
		return nil
	case "right":
		if ed != nil {
			ed.MoveCursorRight()
		}
		return nil
	}

	switch key.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if ed != nil {
			ed.DeleteRuneBackward()
			m.refineAutocomplete(ed)
		}
	case tea.KeySpace:
		m.insertText(ed, " ")
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return nil
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.insertText(ed, string(key.Runes))
	}
	return nil
}

// activeEditor returns the thread editor when a thread view is open, else
// the focused channel's editor.
func (m *Model) activeEditor(team *chat.TeamState) *editor.EditState {
	if team.Thread != nil {
		return team.Thread.Editor
	}
	if ch, ok := m.st.CurrentChannel(); ok {
		return ch.Editor
	}
	return nil
}

func (m *Model) insertText(ed *editor.EditState, text string) {
	if ed == nil {
		return
	}
	ed.Insert(text)
	m.refineAutocomplete(ed)
	m.notifyTyping()
}

// notifyTyping tells the server we are composing, throttled.
func (m *Model) notifyTyping() {
	ch, ok := m.st.CurrentChannel()
	if !ok {
		return
	}
	now := time.Now()
	if now.Sub(m.lastTypingSent) < typingNotifyInterval {
		return
	}
	m.lastTypingSent = now
	svc := m.st.Resources.Service
	channelID := ch.ID
	m.st.Resources.Workers.Submit(chat.Request{
		Kind: "send-typing",
		Run: func(ctx context.Context) chat.Event {
			if err := svc.SendTyping(ctx, channelID); err != nil {
				return chat.ErrorEvent{Category: logging.API, Err: err}
			}
			return nil
		},
	})
}

func (m *Model) submit(team *chat.TeamState, ed *editor.EditState) {
	if ed == nil {
		return
	}
	if selected, ok := ed.Complete.Selected(); ok {
		ed.ReplaceCurrentWord(selected)
		ed.Complete = nil
		return
	}
	var channelID types.ChannelID
	if team.Thread != nil {
		channelID = team.Thread.ChannelID
	} else {
		ch, ok := m.st.CurrentChannel()
		if !ok {
			return
		}
		channelID = ch.ID
	}
	m.st.SubmitEditor(channelID, ed)
}

// advanceAutocomplete starts a completion session for the word under the
// cursor, or cycles an active one.
func (m *Model) advanceAutocomplete(ed *editor.EditState) {
	if ed == nil {
		return
	}
	if ed.Complete != nil {
		ed.Complete.Next()
		return
	}
	word := ed.CurrentWord()
	if word == "" {
		return
	}
	ed.Complete = editor.StartAutocomplete(word, m.completionCandidates(word))
}

func (m *Model) refineAutocomplete(ed *editor.EditState) {
	if ed == nil || ed.Complete == nil {
		return
	}
	word := ed.CurrentWord()
	if word == "" || !ed.Complete.Refine(word, m.completionCandidates(word)) {
		ed.Complete = nil
	}
}

// completionCandidates picks the candidate set by sigil: @ for users,
// ~ for channels, : for emoji.
func (m *Model) completionCandidates(word string) []string {
	switch {
	case len(word) > 0 && word[0] == '@':
		names := m.st.Users.Usernames()
		out := make([]string, 0, len(names))
		for _, name := range names {
			out = append(out, "@"+name)
		}
		return out
	case len(word) > 0 && word[0] == '~':
		team, ok := m.st.CurrentTeam()
		if !ok {
			return nil
		}
		var out []string
		for _, entry := range team.ChannelZipper.Items() {
			if ch, ok := m.st.Channels.Get(entry.Value); ok {
				out = append(out, "~"+ch.Info.Name)
			}
		}
		return out
	case len(word) > 0 && word[0] == ':':
		names := m.st.Resources.Emoji.Names()
		out := make([]string, 0, len(names))
		for _, name := range names {
			out = append(out, ":"+name+":")
		}
		return out
	}
	return m.st.Users.Usernames()
}

func (m *Model) recallHistory(ed *editor.EditState, older bool) {
	if ed == nil {
		return
	}
	ch, ok := m.st.CurrentChannel()
	if !ok {
		return
	}
	var text string
	var found bool
	if older {
		text, found = m.st.History.Prev(ch.ID)
	} else {
		text, found = m.st.History.Next(ch.ID)
	}
	if found {
		ed.SetText(text)
	}
}

func (m *Model) handleSelectKey(team *chat.TeamState, key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc", "ctrl+s":
		m.st.ExitMessageSelect(team)
	case "up", "k":
		m.st.SelectOlder()
	case "down", "j":
		m.st.SelectNewer()
	case "r":
		m.st.ReplyToSelected(team)
	case "e":
		m.st.EditSelected(team)
	case "d":
		m.st.DeleteSelected(team)
	case "y":
		if text, ok := m.st.YankSelected(team); ok {
			if err := clipboard.WriteAll(text); err != nil {
				m.setError("clipboard: " + err.Error())
			} else {
				m.setInfo("message copied")
			}
		}
	case "o", "enter":
		m.st.OpenSelectedThread(team)
	}
	return nil
}

func (m *Model) handleOverlayKey(team *chat.TeamState, key tea.KeyMsg) tea.Cmd {
	list := team.Overlay
	if list == nil {
		team.PopMode()
		return nil
	}
	switch key.String() {
	case "esc":
		m.st.CloseOverlay(team)
		return nil
	case "enter":
		if !list.Enter() {
			m.st.CloseOverlay(team)
		}
		return nil
	case "up", "ctrl+p":
		list.MoveCursorUp()
		list.EnsureCursorVisible(m.overlayPageSize())
		return nil
	case "down", "ctrl+n":
		list.MoveCursorDown()
		list.EnsureCursorVisible(m.overlayPageSize())
		return nil
	case "pgup":
		list.MoveCursorPageUp(m.overlayPageSize())
		list.EnsureCursorVisible(m.overlayPageSize())
		return nil
	case "pgdown":
		list.MoveCursorPageDown(m.overlayPageSize())
		list.EnsureCursorVisible(m.overlayPageSize())
		return nil
	case "ctrl+u":
		list.ClearFilter()
		return nil
	case "ctrl+w":
		list.DeleteFilterWordBackward()
		return nil
	}
	switch key.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		list.DeleteFilterRuneBackward()
	case tea.KeySpace:
		list.InsertFilterText(" ")
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return nil
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		list.InsertFilterText(string(key.Runes))
	}
	list.EnsureCursorVisible(m.overlayPageSize())
	return nil
}

func (m *Model) overlayPageSize() int {
	if m.height <= 6 {
		return 5
	}
	return m.height - 6
}
