// Package ui renders ChatState with Bubble Tea and feeds user input into
// the event core. Update is the single dispatch point: one queued event or
// one input per tick, then a redraw from the fresh state snapshot.
package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethernet-zero/matterhorn/internal/chat"
	"github.com/ethernet-zero/matterhorn/internal/theme"
)

type msgHandler func(tea.Msg) tea.Cmd

// appEventMsg wraps one event pulled from the shared queue.
type appEventMsg struct {
	event chat.Event
}

// queueClosedMsg signals the queue drained after shutdown.
type queueClosedMsg struct{}

// Model implements the Bubble Tea model over the client's ChatState.
type Model struct {
	st     *chat.ChatState
	styles theme.Styles

	width  int
	height int

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	// lastTypingSent throttles typing notifications to the server.
	lastTypingSent time.Time
	lastTitle      string

	editCursor cursor.Model

	handlers map[reflect.Type]msgHandler
	quitting bool
}

// NewModel wraps an initial ChatState built by chat.Startup.
func NewModel(st *chat.ChatState) *Model {
	m := &Model{
		st:     st,
		styles: theme.Default(),
	}
	m.editCursor = cursor.New()
	m.restyleCursor()
	m.registerHandlers()
	return m
}

func (m *Model) restyleCursor() {
	if m.styles.Cursor != nil {
		m.editCursor.Style = *m.styles.Cursor
	}
	if m.styles.Editor != nil {
		m.editCursor.TextStyle = *m.styles.Editor
	}
}

// State exposes the underlying state for tests.
func (m *Model) State() *chat.ChatState {
	return m.st
}

// Init arms the event-queue listener and starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.st.Resources.Events), m.editCursor.Focus())
}

func waitForEvent(queue *chat.Queue) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-queue.Chan()
		if !ok {
			return queueClosedMsg{}
		}
		return appEventMsg{event: ev}
	}
}

// Update responds to Bubble Tea messages: exactly one event is applied per
// call, then control returns so the view re-renders from consistent state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	handler := m.handlerFor(msg)
	if handler == nil {
		return m, nil
	}
	cmd := handler(msg)
	if title := m.windowTitle(); title != m.lastTitle {
		m.lastTitle = title
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return m, cmd
}

// windowTitle names the terminal window after the focused team and channel.
func (m *Model) windowTitle() string {
	title := "matterhorn"
	team, ok := m.st.CurrentTeam()
	if !ok {
		return title
	}
	name := team.Team.DisplayName
	if name == "" {
		name = team.Team.Name
	}
	title += " - " + name
	if ch, ok := m.st.CurrentChannel(); ok {
		label := ch.Info.DisplayName
		if label == "" {
			label = ch.Info.Name
		}
		title += "/" + label
	}
	return title
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(appEventMsg{}):       m.handleAppEventMsg,
		reflect.TypeOf(queueClosedMsg{}):    m.handleQueueClosedMsg,
		reflect.TypeOf(cursor.BlinkMsg{}):   m.handleCursorMsg,
	}
}

func (m *Model) handleCursorMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.editCursor, cmd = m.editCursor.Update(msg)
	return cmd
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleAppEventMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(appEventMsg)
	if !ok {
		return nil
	}
	if !chat.Dispatch(m.st, ev.event) {
		m.quitting = true
		return tea.Quit
	}
	switch ev := ev.event.(type) {
	case chat.ErrorEvent:
		if ev.Err != nil {
			m.setError(ev.Err.Error())
		}
	case chat.SocketState:
		if ev.Connected {
			m.setInfo("connected")
		} else {
			m.setError("connection lost, retrying")
		}
	}
	return waitForEvent(m.st.Resources.Events)
}

func (m *Model) handleQueueClosedMsg(tea.Msg) tea.Cmd {
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	m.st.WindowWidth = size.Width
	m.st.WindowHeight = size.Height
	return nil
}

func (m *Model) setError(text string) {
	m.errMsg = text
	m.infoMsg = ""
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = time.Now().Add(5 * time.Second)
	m.errMsg = ""
}

func (m *Model) currentInfo() string {
	if m.infoMsg == "" || time.Now().After(m.infoExpire) {
		return ""
	}
	return m.infoMsg
}
