package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimShortSegmentsDropsLeadingAndTrailingSnapArtifacts(t *testing.T) {
	a := Coordinate{Lon: 0, Lat: 0}
	b := Coordinate{Lon: 100, Lat: 0}
	c := Coordinate{Lon: 200, Lat: 0}
	d := Coordinate{Lon: 300, Lat: 0}

	geom := &LegGeometry{
		Locations:        []Coordinate{a, b, c, d},
		OSMNodeIDs:       []uint64{1, 2, 3, 4},
		Annotations:      []Annotation{{}, {}, {}},
		SegmentDistances: []float64{0.5, 15, 0.5},
		SegmentOffsets:   []int{0, 1, 2, 3},
	}
	steps := []RouteStep{
		{GeometryBegin: 0, GeometryEnd: 2},
		{GeometryBegin: 2, GeometryEnd: 3},
	}

	out := TrimShortSegments(steps, geom)

	assert.Len(t, geom.Locations, 2)
	assert.Equal(t, []Coordinate{b, c}, geom.Locations)
	assert.Equal(t, []uint64{2, 3}, geom.OSMNodeIDs)
	assert.Len(t, geom.Annotations, 1)
	assert.Equal(t, []float64{15}, geom.SegmentDistances)

	assert.Equal(t, 0, out[0].GeometryBegin)
	assert.Equal(t, 1, out[0].GeometryEnd)
	assert.Equal(t, 1, out[1].GeometryBegin)
	assert.Equal(t, 2, out[1].GeometryEnd)

	assert.Equal(t, bearingFromCoordinates(b, c), out[0].Maneuver.BearingBefore)
	assert.Equal(t, bearingFromCoordinates(b, c), out[1].Maneuver.BearingAfter)
}

func TestTrimShortSegmentsLeavesNormalSegmentsAlone(t *testing.T) {
	a := Coordinate{Lon: 0, Lat: 0}
	b := Coordinate{Lon: 100, Lat: 0}
	c := Coordinate{Lon: 200, Lat: 0}

	geom := &LegGeometry{
		Locations:        []Coordinate{a, b, c},
		Annotations:      []Annotation{{}, {}},
		SegmentDistances: []float64{50, 50},
		SegmentOffsets:   []int{0, 1, 2},
	}
	steps := []RouteStep{
		{GeometryBegin: 0, GeometryEnd: 1},
		{GeometryBegin: 1, GeometryEnd: 2},
	}

	out := TrimShortSegments(steps, geom)

	assert.Len(t, geom.Locations, 3)
	assert.Equal(t, 0, out[0].GeometryBegin)
	assert.Equal(t, 1, out[0].GeometryEnd)
}

func TestShiftGeometryIndicesClampsAtZero(t *testing.T) {
	steps := []RouteStep{{GeometryBegin: 0, GeometryEnd: 1}}
	shiftGeometryIndices(steps, -1)
	assert.Equal(t, 0, steps[0].GeometryBegin)
	assert.Equal(t, 0, steps[0].GeometryEnd)
}
