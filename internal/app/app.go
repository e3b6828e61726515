// Package app owns the process lifecycle: it builds the client resources,
// performs the synchronous startup sequence, starts the background
// producers, and runs the terminal UI until shutdown.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethernet-zero/matterhorn/internal/chat"
	"github.com/ethernet-zero/matterhorn/internal/client"
	"github.com/ethernet-zero/matterhorn/internal/emoji"
	"github.com/ethernet-zero/matterhorn/internal/logging"
	"github.com/ethernet-zero/matterhorn/internal/logging/events"
	"github.com/ethernet-zero/matterhorn/internal/runstate"
	"github.com/ethernet-zero/matterhorn/internal/spell"
	"github.com/ethernet-zero/matterhorn/internal/ui"
)

// CPUPolicy selects the worker pool size.
type CPUPolicy string

const (
	CPUSingle   CPUPolicy = chat.CPUSingle
	CPUMultiple CPUPolicy = chat.CPUMultiple
)

// ChannelSorting selects the sidebar channel order.
type ChannelSorting string

const (
	SortDefault     = ChannelSorting(chat.SortDefault)
	SortUnreadFirst = ChannelSorting(chat.SortUnreadFirst)
)

// Config is the validated runtime configuration the application runs with.
type Config struct {
	ServerURL           string
	Token               string
	TeamName            string
	CPUPolicy           CPUPolicy
	ShowTypingIndicator bool
	ChannelSorting      ChannelSorting
	SpellCheck          bool
	StateDir            string
}

const (
	typingTickInterval   = time.Second
	timezoneTickInterval = time.Minute
	statusPollInterval   = 30 * time.Second
)

// Run builds the full client and blocks until it exits. Startup failures
// (unreachable server, bad token, no team membership) are returned; once
// the UI is up, errors flow through the event queue instead.
func Run(cfg Config) error {
	rest := client.NewREST(cfg.ServerURL, cfg.Token)

	queue := chat.NewQueue()
	workers := chat.NewWorkers(string(cfg.CPUPolicy), queue)
	defer workers.Stop()

	res := &chat.Resources{
		Service: rest,
		Events:  queue,
		Workers: workers,
		Options: chat.Options{
			ShowTypingIndicator: cfg.ShowTypingIndicator,
			ChannelSorting:      chat.ChannelSorting(cfg.ChannelSorting),
			SpellCheck:          cfg.SpellCheck,
		},
		Emoji: emoji.NewTable(),
	}

	if store, err := runstate.NewStore(cfg.StateDir); err == nil {
		res.RunState = store
	} else {
		logging.Error(logging.General, fmt.Errorf("run state unavailable: %w", err))
	}

	if cfg.SpellCheck {
		checker, err := spell.NewChecker()
		if err != nil {
			// Missing aspell degrades to no checking, not a fatal error.
			logging.Error(logging.General, fmt.Errorf("spell checker unavailable: %w", err))
		} else {
			res.Checker = checker
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := chat.Startup(ctx, res, cfg.TeamName)
	if err != nil {
		return err
	}

	if team, ok := st.CurrentTeam(); ok {
		st.StartUsersFetch(team.ID)
	}
	st.StartEmojiFetch()
	queue.Enqueue(chat.Refresh{})

	// Producers start only after a consistent state exists: their first
	// action is to enqueue against it.
	socket := client.NewSocket(cfg.ServerURL, cfg.Token, pushTranslator(res))
	go socket.Run(ctx)
	go runTickers(ctx, queue)

	program := tea.NewProgram(ui.NewModel(st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	events.App.Shutdown("ui-exit")
	st.SaveRunState()
	return nil
}

// pushTranslator converts server pushes into queued events. It runs on the
// socket goroutine, so it may only enqueue and submit work, never touch
// state.
func pushTranslator(res *chat.Resources) func(client.Push) {
	svc := res.Service
	return func(push client.Push) {
		switch push := push.(type) {
		case client.PostedPush:
			res.Events.Enqueue(chat.PostReceived{Post: push.Post})
		case client.PostEditedPush:
			res.Events.Enqueue(chat.PostEdited{Post: push.Post})
		case client.PostDeletedPush:
			res.Events.Enqueue(chat.PostDeleted{PostID: push.PostID, ChannelID: push.ChannelID})
		case client.TypingPush:
			res.Events.Enqueue(chat.UserTyping{ChannelID: push.ChannelID, UserID: push.UserID})
		case client.StatusPush:
			res.Events.Enqueue(chat.StatusChanged{UserID: push.UserID, Status: push.Status})
		case client.ChannelCreatedPush:
			teamID := push.TeamID
			res.Workers.Submit(chat.Request{
				Kind: "refetch-channels",
				Run: func(ctx context.Context) chat.Event {
					channels, err := svc.FetchChannels(ctx, teamID)
					return chat.ChannelsLoaded{TeamID: teamID, Channels: channels, Err: err}
				},
			})
		case client.ChannelDeletedPush:
			res.Events.Enqueue(chat.ChannelRemoved{ChannelID: push.ChannelID})
		case client.TeamAddedPush:
			teamID := push.TeamID
			res.Workers.Submit(chat.Request{
				Kind: "join-team",
				Run: func(ctx context.Context) chat.Event {
					team, err := svc.FetchTeam(ctx, teamID)
					if err != nil {
						return chat.TeamJoinFailed{TeamID: teamID, Err: err}
					}
					channels, err := svc.FetchChannels(ctx, teamID)
					if err != nil {
						return chat.TeamJoinFailed{TeamID: teamID, Err: err}
					}
					return chat.TeamJoined{Team: team, Channels: channels}
				},
			})
		case client.TeamRemovedPush:
			res.Events.Enqueue(chat.TeamLeft{TeamID: push.TeamID})
		case client.TeamUpdatedPush:
			teamID := push.TeamID
			res.Workers.Submit(chat.Request{
				Kind: "refetch-team",
				Run: func(ctx context.Context) chat.Event {
					team, err := svc.FetchTeam(ctx, teamID)
					if err != nil {
						return chat.ErrorEvent{Category: logging.API, Err: err}
					}
					return chat.TeamUpdated{Team: team}
				},
			})
		case client.ConnectionPush:
			res.Events.Enqueue(chat.SocketState{Connected: push.Connected, Err: push.Err})
		}
	}
}

// runTickers feeds the periodic housekeeping events: typing-indicator decay,
// timezone refresh, and presence polling.
func runTickers(ctx context.Context, queue *chat.Queue) {
	typing := time.NewTicker(typingTickInterval)
	defer typing.Stop()
	zone := time.NewTicker(timezoneTickInterval)
	defer zone.Stop()
	status := time.NewTicker(statusPollInterval)
	defer status.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-typing.C:
			queue.Enqueue(chat.TypingTick{Now: now})
		case <-zone.C:
			queue.Enqueue(chat.TimezoneTick{})
		case <-status.C:
			queue.Enqueue(chat.StatusTick{})
		}
	}
}
