package guidance

const shortSegmentThreshold = 1.0 // meters

// TrimShortSegments implements spec.md §4.G.4: drops a near-zero-length
// leading or trailing coordinate from the leg geometry, re-anchoring the
// depart/arrive steps onto the next real coordinate so their bearings
// reflect the road actually travelled rather than a snapping artifact.
func TrimShortSegments(steps []RouteStep, geom *LegGeometry) []RouteStep {
	if len(steps) == 0 || len(geom.Locations) < 2 {
		return steps
	}

	if geom.SegmentDistances[0] <= shortSegmentThreshold || geom.Locations[0].Equal(geom.Locations[1]) {
		geom.Locations = geom.Locations[1:]
		geom.Annotations = geom.Annotations[1:]
		if len(geom.OSMNodeIDs) > 0 {
			geom.OSMNodeIDs = geom.OSMNodeIDs[1:]
		}
		geom.SegmentDistances = geom.SegmentDistances[1:]
		shiftGeometryIndices(steps, -1)
		if len(steps) > 0 {
			steps[0].Maneuver.BearingBefore = bearingFromCoordinates(geom.Locations[0], geom.Locations[minInt(1, len(geom.Locations)-1)])
		}
	}

	n := len(geom.SegmentDistances)
	if n > 0 && len(geom.Locations) >= 2 {
		last := n - 1
		lastLoc := len(geom.Locations) - 1
		if geom.SegmentDistances[last] <= shortSegmentThreshold || geom.Locations[lastLoc].Equal(geom.Locations[lastLoc-1]) {
			geom.Locations = geom.Locations[:lastLoc]
			geom.Annotations = geom.Annotations[:len(geom.Annotations)-1]
			if len(geom.OSMNodeIDs) > 0 {
				geom.OSMNodeIDs = geom.OSMNodeIDs[:len(geom.OSMNodeIDs)-1]
			}
			geom.SegmentDistances = geom.SegmentDistances[:last]
			if len(steps) > 0 {
				lastStep := len(steps) - 1
				steps[lastStep].Maneuver.BearingAfter = bearingFromCoordinates(geom.Locations[len(geom.Locations)-2], geom.Locations[len(geom.Locations)-1])
			}
		}
	}

	return steps
}

// shiftGeometryIndices shifts every step's GeometryBegin/GeometryEnd by
// delta, clamping at zero, after a leading coordinate is removed from the
// leg geometry.
func shiftGeometryIndices(steps []RouteStep, delta int) {
	for i := range steps {
		steps[i].GeometryBegin = maxInt(0, steps[i].GeometryBegin+delta)
		steps[i].GeometryEnd = maxInt(0, steps[i].GeometryEnd+delta)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
