package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHandleRoundaboutsCollapsesStayStepsAndCountsExits covers spec.md §8
// scenario S4 with a single StayOnRoundabout hop between entering and
// exiting: it collapses into the enter step, whose Exit count reflects every
// pass observed (the stay and the exit), not just the final one.
func TestHandleRoundaboutsCollapsesStayStepsAndCountsExits(t *testing.T) {
	steps := []RouteStep{
		{Maneuver: StepManeuver{WaypointType: WaypointDepart, Instruction: TurnInstruction{Type: NoTurn}}},
		{
			Name:          "Ring Road",
			Pronunciation: "ring-road",
			Distance:      5,
			GeometryBegin: 0,
			GeometryEnd:   1,
			Maneuver:      StepManeuver{Instruction: TurnInstruction{Type: EnterRoundabout}},
		},
		{
			Distance:      10,
			GeometryBegin: 1,
			GeometryEnd:   2,
			Maneuver:      StepManeuver{Instruction: TurnInstruction{Type: StayOnRoundabout}},
		},
		{
			Distance:      3,
			GeometryBegin: 2,
			GeometryEnd:   3,
			Maneuver:      StepManeuver{Instruction: TurnInstruction{Type: ExitRoundabout}},
		},
		{Maneuver: StepManeuver{WaypointType: WaypointArrive, Instruction: TurnInstruction{Type: NoTurn}}},
	}

	out := HandleRoundabouts(steps)

	if assert.Len(t, out, 4) {
		enter := out[1]
		assert.Equal(t, uint32(2), enter.Maneuver.Exit)
		assert.InDelta(t, 15.0, enter.Distance, 1e-9)
		assert.Equal(t, 2, enter.GeometryEnd)
		assert.Equal(t, "Ring Road", enter.RotaryName)
		assert.Equal(t, "ring-road", enter.RotaryPronunciation)
		assert.Equal(t, ExitRoundabout, out[2].Maneuver.Instruction.Type)
	}
}

func TestRoundaboutKindOfMapsEachVariant(t *testing.T) {
	assert.Equal(t, RoundaboutIntersectionKind, roundaboutKindOf(EnterRoundaboutIntersection))
	assert.Equal(t, RoundaboutRotary, roundaboutKindOf(EnterRotary))
	assert.Equal(t, RoundaboutCircle, roundaboutKindOf(EnterRoundabout))
}
