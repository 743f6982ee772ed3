package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRoundaboutNone(t *testing.T) {
	assert.Equal(t, RoundaboutNone, ClassifyRoundabout(false, 0, 0, 0, "", nil, false))
}

func TestClassifyRoundaboutIntersectionSmallRadius(t *testing.T) {
	kind := ClassifyRoundabout(true, 4, 3, 4.0, "", nil, false)
	assert.Equal(t, RoundaboutIntersectionKind, kind)
}

func TestClassifyRoundaboutIntersectionSingleNode(t *testing.T) {
	kind := ClassifyRoundabout(true, 1, 8, 50.0, "", nil, false)
	assert.Equal(t, RoundaboutIntersectionKind, kind)
}

func TestClassifyRoundaboutRotaryByName(t *testing.T) {
	kind := ClassifyRoundabout(true, 8, 6, 20.0, "Arc de Triomphe", map[string]bool{"Champs-Elysees": true}, false)
	assert.Equal(t, RoundaboutRotary, kind)
}

func TestClassifyRoundaboutRotaryByCircularTag(t *testing.T) {
	kind := ClassifyRoundabout(true, 8, 6, 8.0, "", nil, true)
	assert.Equal(t, RoundaboutRotary, kind)
}

func TestClassifyRoundaboutDefaultCircle(t *testing.T) {
	kind := ClassifyRoundabout(true, 8, 6, 8.0, "", nil, false)
	assert.Equal(t, RoundaboutCircle, kind)
}

func TestRoundaboutTurnTypeByKind(t *testing.T) {
	assert.Equal(t, EnterRoundaboutIntersection, RoundaboutTurnType(RoundaboutIntersectionKind, false))
	assert.Equal(t, EnterAndExitRoundaboutIntersection, RoundaboutTurnType(RoundaboutIntersectionKind, true))
	assert.Equal(t, EnterRotary, RoundaboutTurnType(RoundaboutRotary, false))
	assert.Equal(t, EnterAndExitRotary, RoundaboutTurnType(RoundaboutRotary, true))
	assert.Equal(t, EnterRoundabout, RoundaboutTurnType(RoundaboutCircle, false))
	assert.Equal(t, EnterAndExitRoundabout, RoundaboutTurnType(RoundaboutCircle, true))
}

func TestExitTurnTypeByKind(t *testing.T) {
	assert.Equal(t, ExitRoundaboutIntersection, ExitTurnType(RoundaboutIntersectionKind))
	assert.Equal(t, ExitRotary, ExitTurnType(RoundaboutRotary))
	assert.Equal(t, ExitRoundabout, ExitTurnType(RoundaboutCircle))
}

func TestRoundaboutReflexArcAllowed(t *testing.T) {
	// alpha=30 (angle from inRbBearing to the reversed incoming bearing),
	// beta=90 (angle to the outgoing flow direction): a candidate bearing
	// closer to inRbBearing than alpha falls inside the reflex arc.
	allowed := RoundaboutReflexArcAllowed(0, 210, 90, 10)
	assert.False(t, allowed)

	// A candidate bearing beyond alpha on the same side is fine.
	allowed = RoundaboutReflexArcAllowed(0, 210, 90, 200)
	assert.True(t, allowed)
}

// TestRoundaboutTrackerThreePasses covers spec.md §8 scenario S4: enter,
// two stays, exit. Expect exit count 3 and both stays reported as collapse.
func TestRoundaboutTrackerThreePasses(t *testing.T) {
	tr := &RoundaboutTracker{}
	collapse := tr.Observe(EnterRoundabout)
	assert.False(t, collapse)
	collapse = tr.Observe(StayOnRoundabout)
	assert.True(t, collapse)
	collapse = tr.Observe(StayOnRoundabout)
	assert.True(t, collapse)
	collapse = tr.Observe(ExitRoundabout)
	assert.False(t, collapse)

	// spec.md §8 invariant 7: exit counts are monotone and only ever zero
	// for the enter-only case (never observed here).
	assert.Equal(t, 3, tr.ExitCount)
	assert.NotZero(t, tr.ExitCount)
}
