package chat

import "github.com/ethernet-zero/matterhorn/internal/types"

const historyLimit = 100

// History keeps sent-message recall per channel, newest last.
type History struct {
	entries map[types.ChannelID][]string
	cursor  map[types.ChannelID]int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{
		entries: make(map[types.ChannelID][]string),
		cursor:  make(map[types.ChannelID]int),
	}
}

// Record appends a sent message and resets the recall cursor.
func (h *History) Record(channelID types.ChannelID, text string) {
	if text == "" {
		return
	}
	list := append(h.entries[channelID], text)
	if len(list) > historyLimit {
		list = list[len(list)-historyLimit:]
	}
	h.entries[channelID] = list
	h.cursor[channelID] = len(list)
}

// Prev recalls the next-older entry. ok is false at the top of history.
func (h *History) Prev(channelID types.ChannelID) (string, bool) {
	list := h.entries[channelID]
	if len(list) == 0 {
		return "", false
	}
	idx := h.cursor[channelID] - 1
	if idx < 0 {
		return "", false
	}
	h.cursor[channelID] = idx
	return list[idx], true
}

// Next recalls the next-newer entry; past the newest it yields an empty
// string to restore a blank editor.
func (h *History) Next(channelID types.ChannelID) (string, bool) {
	list := h.entries[channelID]
	if len(list) == 0 {
		return "", false
	}
	idx := h.cursor[channelID] + 1
	if idx >= len(list) {
		h.cursor[channelID] = len(list)
		return "", true
	}
	h.cursor[channelID] = idx
	return list[idx], true
}
