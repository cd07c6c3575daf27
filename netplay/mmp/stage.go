package mmp

import "fmt"

// Stage is one of the legal netplay stages. Each stage maps to the legacy
// 16-bit id used by the game itself; the server sends those ids in ticket
// responses.
type Stage int

const (
	StagePokemonStadium Stage = iota
	StageYoshisStory
	StageDreamland
	StageBattlefield
	StageFinalDestination
	StageFountainOfDreams
)

var stageIDs = map[Stage]uint16{
	StagePokemonStadium:   0x3,
	StageYoshisStory:      0x8,
	StageDreamland:        0x1C,
	StageBattlefield:      0x1F,
	StageFinalDestination: 0x20,
	StageFountainOfDreams: 0x2,
}

var stagesByID = func() map[uint16]Stage {
	m := make(map[uint16]Stage, len(stageIDs))
	for stage, id := range stageIDs {
		m[id] = stage
	}
	return m
}()

// ID returns the legacy numeric id for the stage.
func (s Stage) ID() uint16 {
	return stageIDs[s]
}

func (s Stage) String() string {
	switch s {
	case StagePokemonStadium:
		return "PokemonStadium"
	case StageYoshisStory:
		return "YoshisStory"
	case StageDreamland:
		return "Dreamland"
	case StageBattlefield:
		return "Battlefield"
	case StageFinalDestination:
		return "FinalDestination"
	case StageFountainOfDreams:
		return "FountainOfDreams"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageFromID maps a legacy numeric id back to a Stage. The second return
// is false for ids that do not correspond to a known stage.
func StageFromID(id uint16) (Stage, bool) {
	stage, ok := stagesByID[id]
	return stage, ok
}

// DefaultStages returns the legal stage set used when the server omits one.
// Fountain of Dreams is only legal in singles.
func DefaultStages(playerCount int) []Stage {
	stages := []Stage{
		StagePokemonStadium,
		StageYoshisStory,
		StageDreamland,
		StageBattlefield,
		StageFinalDestination,
	}

	if playerCount == 2 {
		stages = append(stages, StageFountainOfDreams)
	}

	return stages
}
