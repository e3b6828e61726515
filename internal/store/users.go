package store

import "github.com/ethernet-zero/matterhorn/internal/types"

// Users caches user records seen in posts, member lists, and status pushes.
type Users struct {
	byID       map[types.UserID]types.User
	byUsername map[string]types.UserID
}

// NewUsers returns an empty cache.
func NewUsers() *Users {
	return &Users{
		byID:       make(map[types.UserID]types.User),
		byUsername: make(map[string]types.UserID),
	}
}

// Get looks up a user by id.
func (u *Users) Get(id types.UserID) (types.User, bool) {
	user, ok := u.byID[id]
	return user, ok
}

// GetByUsername looks up a user by username.
func (u *Users) GetByUsername(name string) (types.User, bool) {
	id, ok := u.byUsername[name]
	if !ok {
		return types.User{}, false
	}
	return u.Get(id)
}

// Merge upserts a user record, preserving a known status when the incoming
// record carries none (profile fetches omit presence).
func (u *Users) Merge(user types.User) {
	if existing, ok := u.byID[user.ID]; ok {
		if existing.Username != "" && existing.Username != user.Username {
			delete(u.byUsername, existing.Username)
		}
		if user.Status == "" {
			user.Status = existing.Status
		}
	}
	u.byID[user.ID] = user
	if user.Username != "" {
		u.byUsername[user.Username] = user.ID
	}
}

// SetStatus records presence for a user already in the cache. Unknown users
// are ignored; a later profile fetch will bring them in.
func (u *Users) SetStatus(id types.UserID, status string) bool {
	user, ok := u.byID[id]
	if !ok {
		return false
	}
	user.Status = status
	u.byID[id] = user
	return true
}

// Len reports the number of cached users.
func (u *Users) Len() int {
	return len(u.byID)
}

// IDs returns every cached user id, unordered.
func (u *Users) IDs() []types.UserID {
	ids := make([]types.UserID, 0, len(u.byID))
	for id := range u.byID {
		ids = append(ids, id)
	}
	return ids
}

// Usernames returns every cached username, unordered. Used to seed
// @-mention autocomplete.
func (u *Users) Usernames() []string {
	names := make([]string, 0, len(u.byUsername))
	for name := range u.byUsername {
		names = append(names, name)
	}
	return names
}
