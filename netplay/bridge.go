package netplay

import (
	"github.com/samber/lo"

	"github.com/riptide-gg/netplay/netplay/mmp"
)

// Buffers handed across the embedding boundary are owned snapshots with an
// explicit release contract: the host process must hand them back via Free
// rather than releasing them with its own allocator. On the Go side Free
// drops the backing storage so a use-after-free shows up as an empty view
// instead of corruption.

// StageList is an owned snapshot of the current legal stage ids.
type StageList struct {
	ids []uint16
}

// IDs returns the stage ids. The slice is invalidated by Free.
func (l *StageList) IDs() []uint16 { return l.ids }

// Len returns the number of stages.
func (l *StageList) Len() int { return len(l.ids) }

// Free releases the snapshot. Safe to call more than once.
func (l *StageList) Free() { l.ids = nil }

// PlayerList is an owned snapshot of the assigned roster.
type PlayerList struct {
	players []Player
}

// Players returns the roster. The slice is invalidated by Free.
func (l *PlayerList) Players() []Player { return l.players }

// Len returns the number of players.
func (l *PlayerList) Len() int { return len(l.players) }

// Free releases the snapshot. Safe to call more than once.
func (l *PlayerList) Free() { l.players = nil }

// Stages snapshots the current legal stage list as legacy numeric ids. The
// result is empty until a match has been assigned.
func (c *Client) Stages() *StageList {
	ctx, ok := c.MatchContext()
	if !ok {
		return &StageList{}
	}
	return &StageList{
		ids: lo.Map(ctx.Stages, func(s mmp.Stage, _ int) uint16 { return s.ID() }),
	}
}

// Players snapshots the assigned roster. The result is empty until a match
// has been assigned.
func (c *Client) Players() *PlayerList {
	ctx, ok := c.MatchContext()
	if !ok {
		return &PlayerList{}
	}
	players := make([]Player, len(ctx.Players))
	copy(players, ctx.Players)
	return &PlayerList{players: players}
}
