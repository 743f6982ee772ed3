package guidance

// ResyncGeometry implements spec.md §4.G.10: rebuilds segment_offsets and
// segment_distances so each step contributes exactly one segment, after the
// merges and trims earlier in the pipeline have changed step boundaries.
func ResyncGeometry(geom LegGeometry, steps []RouteStep) LegGeometry {
	offsets := make([]int, 0, len(steps)+1)
	distances := make([]float64, 0, len(steps))

	offsets = append(offsets, 0)
	for _, s := range steps {
		if s.IsWaypoint() && s.Maneuver.WaypointType == WaypointArrive {
			continue
		}
		end := s.GeometryEnd - 1
		if end < 0 {
			end = 0
		}
		offsets = append(offsets, end)
		distances = append(distances, s.Distance)
	}

	geom.SegmentOffsets = offsets
	geom.SegmentDistances = distances
	return geom
}
