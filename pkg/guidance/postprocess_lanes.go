package guidance

const laneAnticipationThreshold = 200.0 // meters

// AnticipateLaneChanges implements spec.md §4.G.7: when two consecutive
// maneuvers each require a lane change but sit within laneAnticipationThreshold
// of each other, the earlier step's available lanes are narrowed to the
// intersection of what both maneuvers need, so the driver changes lanes
// once instead of twice.
func AnticipateLaneChanges(steps []RouteStep) []RouteStep {
	for i := 0; i+1 < len(steps); i++ {
		curr, next := &steps[i], steps[i+1]
		if len(curr.Intersections) == 0 || len(next.Intersections) == 0 {
			continue
		}
		if next.Distance > laneAnticipationThreshold {
			continue
		}
		currLanes := curr.Intersections[len(curr.Intersections)-1].Lanes
		nextLanes := next.Intersections[0].Lanes
		if len(currLanes) == 0 || len(nextLanes) == 0 {
			continue
		}

		narrowed := intersectLaneSets(currLanes, nextLanes)
		if len(narrowed) == 0 {
			continue
		}
		curr.Intersections[len(curr.Intersections)-1].Lanes = narrowed
	}
	return steps
}

// intersectLaneSets keeps only the lanes whose indicated modifier is valid
// for both the current and the anticipated next maneuver.
func intersectLaneSets(curr, next []LaneData) []LaneData {
	nextMods := make(map[DirectionModifier]bool)
	for _, l := range next {
		if !l.Valid {
			continue
		}
		for _, m := range l.Indications {
			nextMods[m] = true
		}
	}
	if len(nextMods) == 0 {
		return curr
	}

	out := make([]LaneData, len(curr))
	for i, l := range curr {
		out[i] = l
		if !l.Valid {
			continue
		}
		stillValid := false
		for _, m := range l.Indications {
			if nextMods[m] {
				stillValid = true
				break
			}
		}
		out[i].Valid = stillValid
	}
	return out
}
