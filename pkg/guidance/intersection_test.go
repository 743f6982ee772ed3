package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeIntersectionSource reports a fixed outgoing-edge set regardless of the
// node/incoming edge asked for, enough to exercise BuildIntersection's
// merge/sort/U-turn-prepend steps in isolation.
type fakeIntersectionSource struct {
	outs       []OutgoingEdge
	uturnOK    bool
	turnAllow  map[EdgeID]bool
}

func (f *fakeIntersectionSource) OutgoingEdges(node NodeID, incoming EdgeID) []OutgoingEdge {
	return f.outs
}

func (f *fakeIntersectionSource) IsUTurnAllowed(node NodeID, incoming EdgeID) bool {
	return f.uturnOK
}

func (f *fakeIntersectionSource) IsTurnAllowed(node NodeID, incoming, outgoing EdgeID) bool {
	if f.turnAllow == nil {
		return true
	}
	return f.turnAllow[outgoing]
}

func TestBuildIntersectionPrependsUTurn(t *testing.T) {
	src := &fakeIntersectionSource{
		outs: []OutgoingEdge{
			{EdgeID: 2, PerceivedBearing: 90, Name: 1},
		},
	}
	view := BuildIntersection(src, 0, 1, 0 /* incoming heading north */, false)

	if assert.Len(t, view.Roads, 2) {
		assert.Equal(t, EdgeID(1), view.Roads[0].EdgeID)
		assert.True(t, view.Roads[0].IsValid)
		assert.Equal(t, EdgeID(2), view.Roads[1].EdgeID)
	}
}

func TestBuildIntersectionSortsByAngle(t *testing.T) {
	src := &fakeIntersectionSource{
		outs: []OutgoingEdge{
			{EdgeID: 10, PerceivedBearing: 270, Name: 1}, // left
			{EdgeID: 11, PerceivedBearing: 90, Name: 2},  // right
			{EdgeID: 12, PerceivedBearing: 0, Name: 3},   // straight ahead
		},
	}
	view := BuildIntersection(src, 0, 1, 0, false)
	assert.Equal(t, EdgeID(1), view.Roads[0].EdgeID) // U-turn fixed at index 0

	// Remaining roads sorted ascending by turn angle (right-hand driving).
	for i := 2; i < len(view.Roads); i++ {
		assert.LessOrEqual(t, view.Roads[i-1].Angle, view.Roads[i].Angle)
	}
}

func TestMergeDualCarriageways(t *testing.T) {
	// Two same-named, opposite-direction carriageways close in bearing merge
	// into a single outgoing road.
	outs := []OutgoingEdge{
		{EdgeID: 1, PerceivedBearing: 85, Name: 7, Reversed: false},
		{EdgeID: 2, PerceivedBearing: 95, Name: 7, Reversed: true},
	}
	merged := mergeDualCarriageways(outs)
	assert.Len(t, merged, 1)
}

func TestMergeDualCarriagewaysDifferentNamesDontMerge(t *testing.T) {
	outs := []OutgoingEdge{
		{EdgeID: 1, PerceivedBearing: 85, Name: 7, Reversed: false},
		{EdgeID: 2, PerceivedBearing: 95, Name: 8, Reversed: true},
	}
	merged := mergeDualCarriageways(outs)
	assert.Len(t, merged, 2)
}

func TestClassifyIntersectionNoRealChoice(t *testing.T) {
	// Just the U-turn plus a single continuation: no decision to narrate,
	// so the continuation must classify as NoTurn even though its name
	// differs from the incoming edge's.
	src := &fakeIntersectionSource{
		outs: []OutgoingEdge{
			{EdgeID: 2, PerceivedBearing: 0, Name: 99},
		},
	}
	view := BuildIntersection(src, 0, 1, 0, false)
	classified := ClassifyIntersection(view, ClassData{}, 1, 0)

	assert.Equal(t, NoTurn, classified.Roads[1].Instruction.Type)
}

func TestClassifyIntersectionRealChoiceGetsTurn(t *testing.T) {
	// A genuine fork: two viable continuations beyond the U-turn must
	// produce a real turn instruction, not NoTurn, on at least one branch.
	src := &fakeIntersectionSource{
		outs: []OutgoingEdge{
			{EdgeID: 2, PerceivedBearing: 45, Name: 99},
			{EdgeID: 3, PerceivedBearing: 315, Name: 100},
		},
	}
	view := BuildIntersection(src, 0, 1, 0, false)
	classified := ClassifyIntersection(view, ClassData{}, 1, 0)

	foundRealTurn := false
	for _, r := range classified.Roads[1:] {
		if r.Instruction.Type != NoTurn {
			foundRealTurn = true
		}
	}
	assert.True(t, foundRealTurn)
}
