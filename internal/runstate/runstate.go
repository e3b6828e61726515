// Package runstate persists the per-team last-selected channel across
// sessions. Read at startup to bias initial focus, written on clean shutdown.
package runstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethernet-zero/matterhorn/internal/types"
)

// LastRunState records what was focused when the client last exited.
type LastRunState struct {
	SelectedChannelID types.ChannelID `json:"selected_channel_id"`
}

// Store reads and writes last-run state files under a base directory, one
// file per team.
type Store struct {
	dir string
}

// NewStore builds a store rooted at dir. An empty dir falls back to the
// user config directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(base, "matterhorn")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(teamID types.TeamID) string {
	return filepath.Join(s.dir, fmt.Sprintf("last-run-%s.json", teamID))
}

// Read loads the last-run state for a team. A missing file is an error the
// caller treats as "no recorded state".
func (s *Store) Read(teamID types.TeamID) (LastRunState, error) {
	data, err := os.ReadFile(s.path(teamID))
	if err != nil {
		return LastRunState{}, err
	}
	var state LastRunState
	if err := json.Unmarshal(data, &state); err != nil {
		return LastRunState{}, fmt.Errorf("parse last-run state: %w", err)
	}
	return state, nil
}

// Write records the currently selected channel for a team.
func (s *Store) Write(teamID types.TeamID, state LastRunState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	tmp := s.path(teamID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(teamID))
}
