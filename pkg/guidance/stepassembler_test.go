package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNameSource struct{ names map[NameID]string }

func (f *fakeNameSource) NameFor(id NameID) string          { return f.names[id] }
func (f *fakeNameSource) RefFor(NameID) string               { return "" }
func (f *fakeNameSource) PronunciationFor(NameID) string      { return "" }
func (f *fakeNameSource) DestinationsFor(NameID) string       { return "" }
func (f *fakeNameSource) ExitsFor(NameID) string              { return "" }

// TestAssembleStepsSimpleTurn covers spec.md §8 scenario S1: three path
// points collapse to exactly Depart, Turn-Left, Arrive.
func TestAssembleStepsSimpleTurn(t *testing.T) {
	geomSrc := &fakeGeometrySource{
		coords: map[NodeID]Coordinate{1: {Lon: 1000, Lat: 0}},
		osmIDs: map[NodeID]uint64{1: 200},
	}
	names := &fakeNameSource{names: map[NameID]string{7: "Main Street"}}
	source := PhantomNode{Location: Coordinate{Lon: 0, Lat: 0}}
	target := PhantomNode{Location: Coordinate{Lon: 2000, Lat: 0}}
	path := []PathData{
		{TurnViaNode: 1, NameID: 7, TurnInstruction: TurnInstruction{Type: Turn, Modifier: Left}},
	}

	geom := AssembleLegGeometry(geomSrc, path, source, target, false, false, 1.0)
	steps := AssembleSteps(names, geomSrc, path, geom, source, target, false, 1.0)

	if assert.Len(t, steps, 3) {
		assert.True(t, steps[0].IsWaypoint())
		assert.Equal(t, WaypointDepart, steps[0].Maneuver.WaypointType)

		assert.Equal(t, Turn, steps[1].Maneuver.Instruction.Type)
		assert.Equal(t, Left, steps[1].Maneuver.Instruction.Modifier)

		assert.True(t, steps[2].IsWaypoint())
		assert.Equal(t, WaypointArrive, steps[2].Maneuver.WaypointType)
	}
}

// TestAssembleStepsSingleEdgeLeg covers spec.md §8 scenario S2: an empty
// path_data slice yields exactly two steps (Depart, Arrive), with
// step[0].duration clamped to >= 0.
func TestAssembleStepsSingleEdgeLeg(t *testing.T) {
	geomSrc := &fakeGeometrySource{coords: map[NodeID]Coordinate{}, osmIDs: map[NodeID]uint64{}}
	names := &fakeNameSource{}
	source := PhantomNode{Location: Coordinate{Lon: 0, Lat: 0}, ForwardDuration: 80, ForwardWeight: 800}
	target := PhantomNode{Location: Coordinate{Lon: 1000, Lat: 0}, ForwardDuration: 50, ForwardWeight: 500}

	geom := AssembleLegGeometry(geomSrc, nil, source, target, false, false, 1.0)
	steps := AssembleSteps(names, geomSrc, nil, geom, source, target, false, 1.0)

	if assert.Len(t, steps, 2) {
		assert.Equal(t, WaypointDepart, steps[0].Maneuver.WaypointType)
		assert.Equal(t, WaypointArrive, steps[1].Maneuver.WaypointType)
		// target.ForwardDuration < source.ForwardDuration, so the raw
		// difference is negative and must clamp to zero.
		assert.Equal(t, 0.0, steps[0].Duration)
	}
}

// TestAssembleStepsDepartArriveHaveOneIntersectionEach covers spec.md §8
// invariant 3: Depart/Arrive each carry exactly one intersection, one
// bearing, one entry=true.
func TestAssembleStepsDepartArriveHaveOneIntersectionEach(t *testing.T) {
	geomSrc := &fakeGeometrySource{
		coords: map[NodeID]Coordinate{1: {Lon: 1000, Lat: 0}},
		osmIDs: map[NodeID]uint64{1: 200},
	}
	names := &fakeNameSource{}
	source := PhantomNode{Location: Coordinate{Lon: 0, Lat: 0}}
	target := PhantomNode{Location: Coordinate{Lon: 2000, Lat: 0}}
	path := []PathData{
		{TurnViaNode: 1, TurnInstruction: TurnInstruction{Type: Turn, Modifier: Left}},
	}
	geom := AssembleLegGeometry(geomSrc, path, source, target, false, false, 1.0)
	steps := AssembleSteps(names, geomSrc, path, geom, source, target, false, 1.0)

	depart, arrive := steps[0], steps[len(steps)-1]
	if assert.Len(t, depart.Intersections, 1) {
		assert.Len(t, depart.Intersections[0].Bearings, 1)
		assert.Equal(t, []bool{true}, depart.Intersections[0].Entry)
		assert.Equal(t, -1, depart.Intersections[0].In)
	}
	if assert.Len(t, arrive.Intersections, 1) {
		assert.Len(t, arrive.Intersections[0].Bearings, 1)
		assert.Equal(t, []bool{true}, arrive.Intersections[0].Entry)
		assert.Equal(t, -1, arrive.Intersections[0].Out)
	}
}

// TestAssembleStepsGeometryIndexContinuity covers spec.md §8 invariant 2:
// every non-arrive step's GeometryEnd anchors the following step's
// GeometryBegin, so the geometry slice has no gaps between steps.
func TestAssembleStepsGeometryIndexContinuity(t *testing.T) {
	geomSrc := &fakeGeometrySource{
		coords: map[NodeID]Coordinate{1: {Lon: 1000, Lat: 0}, 2: {Lon: 1500, Lat: 500}},
		osmIDs: map[NodeID]uint64{1: 200, 2: 201},
	}
	names := &fakeNameSource{}
	source := PhantomNode{Location: Coordinate{Lon: 0, Lat: 0}}
	target := PhantomNode{Location: Coordinate{Lon: 2000, Lat: 1000}}
	path := []PathData{
		{TurnViaNode: 1, TurnInstruction: TurnInstruction{Type: Turn, Modifier: Left}},
		{TurnViaNode: 2, TurnInstruction: TurnInstruction{Type: Turn, Modifier: Right}},
	}
	geom := AssembleLegGeometry(geomSrc, path, source, target, false, false, 1.0)
	steps := AssembleSteps(names, geomSrc, path, geom, source, target, false, 1.0)

	for i := 0; i+1 < len(steps); i++ {
		if steps[i+1].IsWaypoint() && steps[i+1].Maneuver.WaypointType == WaypointArrive {
			continue
		}
		assert.Equal(t, steps[i].GeometryEnd, steps[i+1].GeometryBegin, "steps[%d]/[%d]", i, i+1)
	}
}
