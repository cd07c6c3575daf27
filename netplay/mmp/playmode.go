package mmp

import "fmt"

// PlayMode identifies which queue a ticket is submitted to. The matchmaking
// server expects the numeric value on the wire, not the name.
type PlayMode uint8

const (
	ModeRanked   PlayMode = 0
	ModeUnranked PlayMode = 1
	ModeDirect   PlayMode = 2
	ModeTeams    PlayMode = 3
)

// FixedRules reports whether the mode locks the ruleset server-side.
// Direct and Teams leave rules up to the players.
func (m PlayMode) FixedRules() bool {
	switch m {
	case ModeRanked, ModeUnranked:
		return true
	default:
		return false
	}
}

func (m PlayMode) String() string {
	switch m {
	case ModeRanked:
		return "ranked"
	case ModeUnranked:
		return "unranked"
	case ModeDirect:
		return "direct"
	case ModeTeams:
		return "teams"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}
