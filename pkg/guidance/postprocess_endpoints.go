package guidance

const (
	relativeLocationMinDist = 5.0
	relativeLocationMaxDist = 300.0
)

// AssignRelativeDepartArriveLocations implements spec.md §4.G.9: sets the
// Depart/Arrive maneuver modifier from the sign of the angle between the
// user's input coordinate and the road actually taken, when that relation
// is well-defined; otherwise falls back to UTurn (no reliable signal).
func AssignRelativeDepartArriveLocations(steps []RouteStep, inputSource, inputTarget Coordinate) []RouteStep {
	if len(steps) == 0 {
		return steps
	}

	depart := &steps[0]
	if depart.Maneuver.WaypointType == WaypointDepart && len(steps) > 1 {
		toSnap := haversineCoord(inputSource, depart.Maneuver.Location)
		toNext := haversineCoord(depart.Maneuver.Location, steps[1].Maneuver.Location)
		if withinRange(toSnap) && withinRange(toNext) {
			inBearing := bearingFromCoordinates(inputSource, depart.Maneuver.Location)
			outBearing := bearingFromCoordinates(depart.Maneuver.Location, steps[1].Maneuver.Location)
			depart.Maneuver.Instruction.Modifier = modifierFromAngle(turnAngle(inBearing, outBearing))
		} else {
			depart.Maneuver.Instruction.Modifier = UTurn
		}
	}

	last := &steps[len(steps)-1]
	if last.Maneuver.WaypointType == WaypointArrive && len(steps) > 1 {
		prevStep := steps[len(steps)-2]
		toSnap := haversineCoord(prevStep.Maneuver.Location, last.Maneuver.Location)
		toTarget := haversineCoord(last.Maneuver.Location, inputTarget)
		if withinRange(toSnap) && withinRange(toTarget) {
			inBearing := bearingFromCoordinates(prevStep.Maneuver.Location, last.Maneuver.Location)
			outBearing := bearingFromCoordinates(last.Maneuver.Location, inputTarget)
			last.Maneuver.Instruction.Modifier = modifierFromAngle(turnAngle(inBearing, outBearing))
		} else {
			last.Maneuver.Instruction.Modifier = UTurn
		}
	}

	return steps
}

func withinRange(dist float64) bool {
	return dist >= relativeLocationMinDist && dist <= relativeLocationMaxDist
}
