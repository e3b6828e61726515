package events

import "github.com/ethernet-zero/matterhorn/internal/logging"

type TeamTracer struct{}

type ChannelTracer struct{}

var (
	Team    = TeamTracer{}
	Channel = ChannelTracer{}
)

func (TeamTracer) Join(teamID, name string) {
	logging.Trace("team.join", map[string]interface{}{"team": teamID, "name": name})
}

func (TeamTracer) Leave(teamID string) {
	logging.Trace("team.leave", map[string]interface{}{"team": teamID})
}

func (TeamTracer) Update(teamID string) {
	logging.Trace("team.update", map[string]interface{}{"team": teamID})
}

func (TeamTracer) Reorder(order []string) {
	logging.Trace("team.reorder", map[string]interface{}{"order": order})
}

func (TeamTracer) DuplicateJoin(teamID string) {
	logging.Trace("team.duplicate-join", map[string]interface{}{"team": teamID})
}

func (ChannelTracer) Focus(channelID string) {
	logging.Trace("channel.focus", map[string]interface{}{"channel": channelID})
}

func (ChannelTracer) Create(channelID, name string) {
	logging.Trace("channel.create", map[string]interface{}{"channel": channelID, "name": name})
}

func (ChannelTracer) Remove(channelID string) {
	logging.Trace("channel.remove", map[string]interface{}{"channel": channelID})
}

func (ChannelTracer) Orphan(event, channelID string) {
	logging.Trace("channel.orphan", map[string]interface{}{"event": event, "channel": channelID})
}
