package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethernet-zero/matterhorn/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envServerURL  = "MATTERHORN_SERVER_URL"
	envToken      = "MATTERHORN_TOKEN"
	envTeam       = "MATTERHORN_TEAM"
	envCPUPolicy  = "MATTERHORN_CPU_POLICY"
	envTyping     = "MATTERHORN_TYPING_INDICATOR"
	envSorting    = "MATTERHORN_CHANNEL_SORTING"
	envSpell      = "MATTERHORN_SPELL_CHECK"
	envTrace      = "MATTERHORN_TRACE"
	envLogFile    = "MATTERHORN_LOG_FILE"
	envStateDir   = "MATTERHORN_STATE_DIR"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("matterhorn", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	serverURL := fs.String("server", envOrDefault(env, envServerURL, ""), "base URL of the chat server")
	token := fs.String("token", envOrDefault(env, envToken, ""), "session token for the chat server")
	team := fs.String("team", envOrDefault(env, envTeam, ""), "initial team name (defaults to the last-used team)")
	cpuPolicy := fs.String("cpu-policy", envOrDefault(env, envCPUPolicy, "multiple"), "async worker policy: single or multiple")
	typing := fs.Bool("typing-indicator", envOrBool(env, envTyping, true), "show typing indicators for other users")
	sorting := fs.String("channel-sorting", envOrDefault(env, envSorting, "default"), "sidebar channel order: default or unread-first")
	spell := fs.Bool("spell-check", envOrBool(env, envSpell, false), "enable background spell checking of message drafts")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	stateDir := fs.String("state-dir", envOrDefault(env, envStateDir, ""), "directory for last-run state files")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ServerURL:           *serverURL,
			Token:               *token,
			TeamName:            *team,
			CPUPolicy:           app.CPUPolicy(*cpuPolicy),
			ShowTypingIndicator: *typing,
			ChannelSorting:      app.ChannelSorting(*sorting),
			SpellCheck:          *spell,
			StateDir:            *stateDir,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"server":           *serverURL,
			"team":             *team,
			"cpuPolicy":        *cpuPolicy,
			"typingIndicator":  strconv.FormatBool(*typing),
			"channelSorting":   *sorting,
			"spellCheck":       strconv.FormatBool(*spell),
			"trace":            strconv.FormatBool(*trace),
			"logFile":          *logFile,
			"stateDir":         *stateDir,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.ServerURL) == "" {
		return fmt.Errorf("server URL is required (--server or %s)", envServerURL)
	}
	switch cfg.App.CPUPolicy {
	case app.CPUSingle, app.CPUMultiple:
	default:
		return fmt.Errorf("cpu-policy must be %q or %q (got %q)", app.CPUSingle, app.CPUMultiple, cfg.App.CPUPolicy)
	}
	switch cfg.App.ChannelSorting {
	case app.SortDefault, app.SortUnreadFirst:
	default:
		return fmt.Errorf("channel-sorting must be %q or %q (got %q)", app.SortDefault, app.SortUnreadFirst, cfg.App.ChannelSorting)
	}
	return nil
}
