package types

import (
	"strings"
	"time"
)

type TeamID string

type ChannelID string

type UserID string

type PostID string

// ChannelKind mirrors the server's channel type codes.
type ChannelKind string

const (
	ChannelOpen    ChannelKind = "O"
	ChannelPrivate ChannelKind = "P"
	ChannelDirect  ChannelKind = "D"
	ChannelGroup   ChannelKind = "G"
)

// TownSquareName is the well-known default channel every team carries. It is
// the fallback focus target when no valid last-run channel is recorded.
const TownSquareName = "town-square"

type Team struct {
	ID          TeamID
	Name        string
	DisplayName string
	Description string
}

type Channel struct {
	ID          ChannelID
	TeamID      TeamID
	Name        string
	DisplayName string
	Purpose     string
	Header      string
	Kind        ChannelKind
	UpdateAt    time.Time
	TotalMsg    int
}

type User struct {
	ID        UserID
	Username  string
	Nickname  string
	FirstName string
	LastName  string
	Status    string
}

type Post struct {
	ID        PostID
	ChannelID ChannelID
	UserID    UserID
	RootID    PostID
	Message   string
	CreateAt  time.Time
	UpdateAt  time.Time
	DeleteAt  time.Time
	Pending   bool
	Reactions map[string][]UserID
}

// Preference is a server-side user preference entry, used among other things
// to persist team ordering.
type Preference struct {
	UserID   UserID
	Category string
	Name     string
	Value    string
}

// DirectPartner resolves the other participant of a direct-message channel.
// DM channels carry a synthetic name of the form "<id>__<id>"; the partner is
// whichever side is not the current user. Returns false when the name does
// not encode two ids or the current user is not one of them.
func DirectPartner(channelName string, me UserID) (UserID, bool) {
	left, right, ok := strings.Cut(channelName, "__")
	if !ok || left == "" || right == "" {
		return "", false
	}
	switch me {
	case UserID(left):
		return UserID(right), true
	case UserID(right):
		return UserID(left), true
	}
	return "", false
}

// DisplayNameFor returns the best human-readable name for a user.
func DisplayNameFor(u User) string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.FirstName != "" || u.LastName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return u.Username
}
