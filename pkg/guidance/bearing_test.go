package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearingNorth(t *testing.T) {
	a := Coordinate{Lon: 0, Lat: 0}
	b := Coordinate{Lon: 0, Lat: 1_000_000} // due north
	assert.InDelta(t, 0.0, Bearing(a, b), 0.01)
}

func TestBearingEast(t *testing.T) {
	a := Coordinate{Lon: 0, Lat: 0}
	b := Coordinate{Lon: 1_000_000, Lat: 0} // due east
	assert.InDelta(t, 90.0, Bearing(a, b), 0.01)
}

func TestAngleBetweenWraparound(t *testing.T) {
	assert.InDelta(t, 20.0, angleBetween(350, 10), 0.001)
	assert.InDelta(t, 0.0, angleBetween(10, 10), 0.001)
	assert.InDelta(t, 180.0, angleBetween(0, 180), 0.001)
}

func TestReverseBearing(t *testing.T) {
	assert.InDelta(t, 180.0, reverseBearing(0), 0.001)
	assert.InDelta(t, 0.0, reverseBearing(180), 0.001)
	assert.InDelta(t, 270.0, reverseBearing(90), 0.001)
}

func TestBearingsAreReversed(t *testing.T) {
	assert.True(t, bearingsAreReversed(0, 180))
	assert.True(t, bearingsAreReversed(10, 190))
	assert.False(t, bearingsAreReversed(0, 90))
}

func TestTurnAngleStraightAhead(t *testing.T) {
	// Arriving heading north (0), continuing north means a straight-ahead
	// turn angle of 180 per the idealized-angle convention.
	assert.InDelta(t, 180.0, turnAngle(0, 0), 0.001)
}

func TestTurnAngleUTurn(t *testing.T) {
	// Arriving heading north, leaving back south is a U-turn: angle 0.
	assert.InDelta(t, 0.0, turnAngle(0, 180), 0.001)
}

func TestModifierFromAngle(t *testing.T) {
	cases := []struct {
		angle float64
		want  DirectionModifier
	}{
		{0, UTurn},
		{45, SharpRight},
		{90, Right},
		{135, SlightRight},
		{180, Straight},
		{225, SlightLeft},
		{270, Left},
		{315, SharpLeft},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, modifierFromAngle(c.angle), "angle=%v", c.angle)
	}
}

func TestAverageBearingsWraparound(t *testing.T) {
	// 350 and 10 should average to 0 (straddling the wraparound), not 180.
	assert.InDelta(t, 0.0, averageBearings(350, 10), 0.01)
}
