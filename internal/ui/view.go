package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ethernet-zero/matterhorn/internal/chat"
	"github.com/ethernet-zero/matterhorn/internal/editor"
	"github.com/ethernet-zero/matterhorn/internal/store"
	"github.com/ethernet-zero/matterhorn/internal/theme"
	"github.com/ethernet-zero/matterhorn/internal/types"
	"github.com/muesli/reflow/truncate"
)

const (
	sidebarWidth     = 24
	minMessageWidth  = 20
	chromeHeightRows = 4 // header, editor, status, typing rows
)

func themeNames() []string {
	return theme.Names()
}

func (m *Model) applyTheme(name string) {
	m.styles = theme.Named(name)
	m.restyleCursor()
}

// View renders the full frame from the current state snapshot.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	team, ok := m.st.CurrentTeam()
	if !ok {
		return m.styles.Error.Render("no team selected")
	}

	switch team.Mode() {
	case chat.ModeChannelSelect, chat.ModeUserList, chat.ModeThemeList, chat.ModeEmojiList, chat.ModePostList:
		if team.Overlay != nil {
			return m.renderOverlay(team)
		}
	}

	sidebar := m.renderSidebar(team)
	main := m.renderMainPane(team)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	var b strings.Builder
	b.WriteString(m.renderHeader(team))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatus(team))
	return b.String()
}

func (m *Model) renderHeader(team *chat.TeamState) string {
	title := team.Team.DisplayName
	if title == "" {
		title = team.Team.Name
	}
	if ch, ok := m.st.CurrentChannel(); ok {
		name := ch.Info.DisplayName
		if name == "" {
			name = ch.Info.Name
		}
		title = fmt.Sprintf("%s / %s", title, name)
		if ch.Info.Header != "" {
			title += "  " + ch.Info.Header
		}
	}
	if !m.st.Connected {
		title += "  [offline]"
	}
	return m.styles.Header.Render(m.fit(title, m.width))
}

func (m *Model) renderSidebar(team *chat.TeamState) string {
	var b strings.Builder
	focused, _ := team.ChannelZipper.FocusValue()
	lastGroup := ""
	for _, entry := range team.ChannelZipper.Items() {
		ch, ok := m.st.Channels.Get(entry.Value)
		if !ok {
			continue
		}
		if entry.Group != lastGroup {
			if lastGroup != "" {
				b.WriteString("\n")
			}
			b.WriteString(m.styles.SidebarGroup.Render(entry.Group))
			b.WriteString("\n")
			lastGroup = entry.Group
		}
		label := ch.Info.DisplayName
		if label == "" {
			label = ch.Info.Name
		}
		if ch.Info.Kind == types.ChannelDirect && ch.Info.DMPartner != "" {
			if user, ok := m.st.Users.Get(ch.Info.DMPartner); ok {
				label = types.DisplayNameFor(user)
			}
		}
		if ch.Info.Unread > 0 {
			label = fmt.Sprintf("%s (%d)", label, ch.Info.Unread)
		}
		if ch.Info.Mentions > 0 {
			label = fmt.Sprintf("%s @%d", label, ch.Info.Mentions)
		}
		label = "  " + m.fit(label, sidebarWidth-2)
		switch {
		case entry.Value == focused:
			b.WriteString(m.styles.SidebarFocused.Render(label))
		case ch.Info.Unread > 0:
			b.WriteString(m.styles.SidebarUnread.Render(label))
		default:
			b.WriteString(m.styles.SidebarItem.Render(label))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Height(m.bodyHeight()).Render(b.String())
}

func (m *Model) renderMainPane(team *chat.TeamState) string {
	width := m.messageWidth()

	if team.Thread != nil {
		return m.renderThread(team, width)
	}

	ch, ok := m.st.CurrentChannel()
	if !ok {
		return lipgloss.NewStyle().Width(width).Render("")
	}

	var b strings.Builder
	b.WriteString(m.renderPosts(ch.Posts, ch.Select, width))
	b.WriteString("\n")
	b.WriteString(m.renderTyping(ch.ID, width))
	b.WriteString("\n")
	b.WriteString(m.renderEditor(team, width))
	return lipgloss.NewStyle().Width(width).Height(m.bodyHeight()).Render(b.String())
}

func (m *Model) renderThread(team *chat.TeamState, width int) string {
	thread := team.Thread
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("thread"))
	b.WriteString("\n")
	b.WriteString(m.renderPosts(thread.Posts, thread.Select, width))
	b.WriteString("\n")
	b.WriteString(m.renderEditor(team, width))
	return lipgloss.NewStyle().Width(width).Height(m.bodyHeight()).Render(b.String())
}

func (m *Model) renderPosts(posts *store.PostList, sel *store.SelectState, width int) string {
	all := posts.Posts()
	visible := m.bodyHeight() - chromeHeightRows
	if visible < 1 {
		visible = 1
	}
	if len(all) > visible {
		all = all[len(all)-visible:]
	}
	var b strings.Builder
	if posts.GapBefore && posts.Fetched {
		b.WriteString(m.styles.Timestamp.Render("-- older history available (pgup) --"))
		b.WriteString("\n")
	}
	for _, post := range all {
		line := m.renderPost(post)
		if sel != nil && sel.PostID == post.ID {
			line = m.styles.Selected.Render(m.fit(post.Message, width))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderPost(post types.Post) string {
	author := string(post.UserID)
	if user, ok := m.st.Users.Get(post.UserID); ok {
		author = types.DisplayNameFor(user)
	}
	authorStyle := m.styles.Author
	if post.UserID == m.st.Me.ID {
		authorStyle = m.styles.OwnAuthor
	}
	stamp := m.styles.Timestamp.Render(humanize.Time(post.CreateAt.In(m.st.Timezone)))
	body := m.styles.Message.Render(post.Message)
	if post.Pending {
		body = m.styles.Pending.Render(post.Message)
	}
	return fmt.Sprintf("%s %s %s", stamp, authorStyle.Render(author), body)
}

func (m *Model) renderTyping(channelID types.ChannelID, width int) string {
	ids := m.st.TypingUsers(channelID)
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if user, ok := m.st.Users.Get(id); ok {
			names = append(names, types.DisplayNameFor(user))
		}
	}
	if len(names) == 0 {
		return ""
	}
	return m.styles.Typing.Render(m.fit(strings.Join(names, ", ")+" typing...", width))
}

func (m *Model) renderEditor(team *chat.TeamState, width int) string {
	ed := m.activeEditor(team)
	if ed == nil {
		return ""
	}
	prompt := "> "
	switch ed.Mode {
	case editor.Replying:
		prompt = "reply> "
	case editor.Editing:
		prompt = "edit> "
	default:
		if team.Thread != nil {
			prompt = "reply> "
		}
	}
	line := m.styles.EditorPrompt.Render(prompt) + m.renderEditorText(ed)
	if ac := ed.Complete; ac != nil {
		if selected, ok := ac.Selected(); ok {
			line += m.styles.Typing.Render(fmt.Sprintf("  [%s %d/%d]", selected, ac.Index+1, len(ac.Candidates)))
		}
	}
	return m.fit(line, width)
}

// renderEditorText splits the buffer at the cursor so the blinking cursor
// cell sits inline, and underlines words the spell checker flagged.
func (m *Model) renderEditorText(ed *editor.EditState) string {
	runes := []rune(ed.Text())
	pos := ed.Cursor()
	if pos > len(runes) {
		pos = len(runes)
	}
	under := " "
	rest := ""
	if pos < len(runes) {
		under = string(runes[pos])
		rest = string(runes[pos+1:])
	}
	m.editCursor.SetChar(under)
	return m.styleWords(string(runes[:pos]), ed.Misspelled) +
		m.editCursor.View() +
		m.styleWords(rest, ed.Misspelled)
}

func (m *Model) styleWords(text string, misspelled map[string]struct{}) string {
	if len(misspelled) == 0 {
		return m.styles.Editor.Render(text)
	}
	words := strings.Split(text, " ")
	for i, word := range words {
		if _, bad := misspelled[strings.Trim(word, ".,!?;:")]; bad {
			words[i] = m.styles.Misspelled.Render(word)
		} else {
			words[i] = m.styles.Editor.Render(word)
		}
	}
	return strings.Join(words, " ")
}

func (m *Model) renderStatus(team *chat.TeamState) string {
	if m.errMsg != "" {
		return m.styles.Error.Render(m.fit(m.errMsg, m.width))
	}
	if info := m.currentInfo(); info != "" {
		return m.styles.Status.Render(m.fit(info, m.width))
	}
	parts := []string{fmt.Sprintf("%d teams", m.st.TeamCount())}
	if ch, ok := m.st.CurrentChannel(); ok {
		parts = append(parts, fmt.Sprintf("%d messages", ch.Posts.Len()))
	}
	if team.Mode() == chat.ModeMessageSelect {
		parts = append(parts, "SELECT")
	}
	return m.styles.Status.Render(m.fit(strings.Join(parts, "  "), m.width))
}

func (m *Model) renderOverlay(team *chat.TeamState) string {
	list := team.Overlay
	var b strings.Builder
	title := list.Title
	if list.Total > len(list.Full) {
		title = fmt.Sprintf("%s (%d of %d)", title, len(list.Full), list.Total)
	}
	b.WriteString(m.styles.OverlayTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.FilterPrompt.Render("/ "))
	b.WriteString(m.styles.Filter.Render(list.Filter))
	b.WriteString("\n\n")

	page := m.overlayPageSize()
	end := list.ViewportOffset + page
	if end > len(list.Items) {
		end = len(list.Items)
	}
	for i := list.ViewportOffset; i < end; i++ {
		item := list.Items[i]
		label := item.Label
		if item.Extra != "" {
			label = fmt.Sprintf("%s  %s", label, item.Extra)
		}
		label = m.fit(label, m.width-2)
		if i == list.Cursor {
			b.WriteString(m.styles.OverlayCursor.Render("> " + label))
		} else {
			b.WriteString(m.styles.OverlayItem.Render("  " + label))
		}
		b.WriteString("\n")
	}
	if len(list.Items) == 0 {
		b.WriteString(m.styles.Status.Render("  no matches"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) messageWidth() int {
	w := m.width - sidebarWidth
	if w < minMessageWidth {
		w = minMessageWidth
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - 2
	if h < 4 {
		h = 4
	}
	return h
}

func (m *Model) fit(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
