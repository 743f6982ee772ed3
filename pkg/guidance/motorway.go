package guidance

// ClassifyMotorwayTurn implements spec.md §4.E.7: motorway-vs-ramp
// classification using road class on both sides of the maneuver.
func ClassifyMotorwayTurn(fromMotorway bool, to ClassData, angle float64, numMotorwayExits int) (TurnType, DirectionModifier) {
	modifier := modifierFromAngle(angle)

	switch {
	case fromMotorway && to.IsMotorway && numMotorwayExits > 1:
		return Fork, forkModifier(angle)
	case fromMotorway && to.IsRampOrLink && !to.IsMotorway:
		return OffRamp, modifier
	case !fromMotorway && to.IsMotorway:
		return OnRamp, modifier
	case fromMotorway && to.IsMotorway:
		return Merge, modifier
	default:
		return Continue, modifier
	}
}

// forkModifier determines the left/right/straight modifier for a fork
// between equal-class motorway continuations, based on relative bearing.
func forkModifier(angle float64) DirectionModifier {
	switch {
	case angle < 170:
		return SlightRight
	case angle > 190:
		return SlightLeft
	default:
		return Straight
	}
}
