package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI. Themes
// are named style sets; the default follows the 256-colour palette.
type Styles struct {
	Sidebar        *lipgloss.Style
	SidebarGroup   *lipgloss.Style
	SidebarItem    *lipgloss.Style
	SidebarFocused *lipgloss.Style
	SidebarUnread  *lipgloss.Style

	Header    *lipgloss.Style
	Timestamp *lipgloss.Style
	Author    *lipgloss.Style
	OwnAuthor *lipgloss.Style
	Message   *lipgloss.Style
	Pending   *lipgloss.Style
	Selected  *lipgloss.Style

	EditorPrompt *lipgloss.Style
	Editor       *lipgloss.Style
	Misspelled   *lipgloss.Style
	Cursor       *lipgloss.Style

	OverlayTitle  *lipgloss.Style
	OverlayItem   *lipgloss.Style
	OverlayCursor *lipgloss.Style
	Filter        *lipgloss.Style
	FilterPrompt  *lipgloss.Style

	Error  *lipgloss.Style
	Status *lipgloss.Style
	Typing *lipgloss.Style
}

var themes = map[string]Styles{
	"default": defaultStyles,
	"mono":    monoStyles,
}

var defaultStyles = Styles{
	Sidebar:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	SidebarGroup:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	SidebarItem:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	SidebarFocused: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true)),
	SidebarUnread:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)),

	Header:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	Timestamp: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))),
	Author:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)),
	OwnAuthor: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	Message:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
	Pending:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)),
	Selected:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238"))),

	EditorPrompt: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	Editor:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
	Misspelled:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Underline(true)),
	Cursor:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("252"))),

	OverlayTitle:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	OverlayItem:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	OverlayCursor: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true)),
	Filter:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	FilterPrompt:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),

	Error:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	Status: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	Typing: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)),
}

var monoStyles = Styles{
	Sidebar:        ptr(lipgloss.NewStyle()),
	SidebarGroup:   ptr(lipgloss.NewStyle().Bold(true)),
	SidebarItem:    ptr(lipgloss.NewStyle()),
	SidebarFocused: ptr(lipgloss.NewStyle().Reverse(true)),
	SidebarUnread:  ptr(lipgloss.NewStyle().Bold(true)),

	Header:    ptr(lipgloss.NewStyle().Bold(true)),
	Timestamp: ptr(lipgloss.NewStyle().Faint(true)),
	Author:    ptr(lipgloss.NewStyle().Bold(true)),
	OwnAuthor: ptr(lipgloss.NewStyle().Bold(true).Underline(true)),
	Message:   ptr(lipgloss.NewStyle()),
	Pending:   ptr(lipgloss.NewStyle().Faint(true).Italic(true)),
	Selected:  ptr(lipgloss.NewStyle().Reverse(true)),

	EditorPrompt: ptr(lipgloss.NewStyle().Bold(true)),
	Editor:       ptr(lipgloss.NewStyle()),
	Misspelled:   ptr(lipgloss.NewStyle().Underline(true)),
	Cursor:       ptr(lipgloss.NewStyle().Reverse(true)),

	OverlayTitle:  ptr(lipgloss.NewStyle().Bold(true)),
	OverlayItem:   ptr(lipgloss.NewStyle()),
	OverlayCursor: ptr(lipgloss.NewStyle().Reverse(true)),
	Filter:        ptr(lipgloss.NewStyle()),
	FilterPrompt:  ptr(lipgloss.NewStyle().Bold(true)),

	Error:  ptr(lipgloss.NewStyle().Bold(true)),
	Status: ptr(lipgloss.NewStyle()),
	Typing: ptr(lipgloss.NewStyle().Italic(true)),
}

// Default returns the default style set.
func Default() Styles {
	return defaultStyles
}

// Named returns the style set for name, falling back to the default.
func Named(name string) Styles {
	if s, ok := themes[name]; ok {
		return s
	}
	return defaultStyles
}

// Names lists the available themes.
func Names() []string {
	return []string{"default", "mono"}
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}
