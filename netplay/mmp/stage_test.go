package mmp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStageIDRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
		id    uint16
	}{
		{name: "PokemonStadium", stage: StagePokemonStadium, id: 0x3},
		{name: "YoshisStory", stage: StageYoshisStory, id: 0x8},
		{name: "Dreamland", stage: StageDreamland, id: 0x1C},
		{name: "Battlefield", stage: StageBattlefield, id: 0x1F},
		{name: "FinalDestination", stage: StageFinalDestination, id: 0x20},
		{name: "FountainOfDreams", stage: StageFountainOfDreams, id: 0x2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stage.ID(); got != tt.id {
				t.Errorf("Stage.ID() = %#x, want %#x", got, tt.id)
			}
			got, ok := StageFromID(tt.id)
			if !ok {
				t.Fatalf("StageFromID(%#x) not found", tt.id)
			}
			if got != tt.stage {
				t.Errorf("StageFromID(%#x) = %v, want %v", tt.id, got, tt.stage)
			}
		})
	}
}

func TestStageFromIDUnknown(t *testing.T) {
	for _, id := range []uint16{0x0, 0x1, 0x4, 0x19, 0xFFFF} {
		if stage, ok := StageFromID(id); ok {
			t.Errorf("StageFromID(%#x) = %v, want no match", id, stage)
		}
	}
}

func TestDefaultStages(t *testing.T) {
	tests := []struct {
		name        string
		playerCount int
		want        []Stage
	}{
		{
			name:        "doubles gets the five-stage set",
			playerCount: 4,
			want: []Stage{
				StagePokemonStadium,
				StageYoshisStory,
				StageDreamland,
				StageBattlefield,
				StageFinalDestination,
			},
		},
		{
			name:        "singles adds fountain",
			playerCount: 2,
			want: []Stage{
				StagePokemonStadium,
				StageYoshisStory,
				StageDreamland,
				StageBattlefield,
				StageFinalDestination,
				StageFountainOfDreams,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultStages(tt.playerCount)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DefaultStages() (- want, + got): %s", diff)
			}
		})
	}
}
