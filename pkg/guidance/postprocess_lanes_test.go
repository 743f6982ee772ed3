package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnticipateLaneChangesNarrowsWithinThreshold(t *testing.T) {
	steps := []RouteStep{
		{
			Intersections: []IntermediateIntersection{{
				Lanes: []LaneData{
					{Indications: []DirectionModifier{Left}, Valid: true},
					{Indications: []DirectionModifier{Straight}, Valid: true},
					{Indications: []DirectionModifier{Right}, Valid: true},
				},
			}},
		},
		{
			Distance: 100,
			Intersections: []IntermediateIntersection{{
				Lanes: []LaneData{
					{Indications: []DirectionModifier{Right}, Valid: true},
				},
			}},
		},
	}

	out := AnticipateLaneChanges(steps)

	lanes := out[0].Intersections[0].Lanes
	assert.False(t, lanes[0].Valid) // Left is no longer reachable for the next maneuver
	assert.False(t, lanes[1].Valid)
	assert.True(t, lanes[2].Valid)
}

func TestAnticipateLaneChangesSkipsBeyondThreshold(t *testing.T) {
	steps := []RouteStep{
		{
			Intersections: []IntermediateIntersection{{
				Lanes: []LaneData{{Indications: []DirectionModifier{Left}, Valid: true}},
			}},
		},
		{
			Distance: 500,
			Intersections: []IntermediateIntersection{{
				Lanes: []LaneData{{Indications: []DirectionModifier{Right}, Valid: true}},
			}},
		},
	}

	out := AnticipateLaneChanges(steps)
	assert.True(t, out[0].Intersections[0].Lanes[0].Valid)
}

func TestIntersectLaneSetsKeepsOverlap(t *testing.T) {
	curr := []LaneData{
		{Indications: []DirectionModifier{Left}, Valid: true},
		{Indications: []DirectionModifier{Straight}, Valid: true},
	}
	next := []LaneData{
		{Indications: []DirectionModifier{Straight}, Valid: true},
	}
	out := intersectLaneSets(curr, next)
	assert.False(t, out[0].Valid)
	assert.True(t, out[1].Valid)
}
