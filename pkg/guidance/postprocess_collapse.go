package guidance

// CollapseTurnInstructions implements spec.md §4.G.5: scans sliding windows
// (prev, curr, next) of steps and merges micro-patterns that don't
// correspond to a distinct driver decision. Only curr must be a non-waypoint
// step sharing next's travel mode; prev and next may be depart/arrive
// waypoints, and prev's mode is not compared. Roundabout steps are skipped;
// §4.G.3 already resolved them.
func CollapseTurnInstructions(steps []RouteStep, maxCollapseDistance float64) []RouteStep {
	out := make([]RouteStep, 0, len(steps))
	i := 0
	for i < len(steps) {
		if i+2 >= len(steps) || !collapseEligible(steps[i], steps[i+1], steps[i+2]) {
			out = append(out, steps[i])
			i++
			continue
		}

		prev, curr, next := steps[i], steps[i+1], steps[i+2]

		// Every micro-pattern below merges curr+next into one step, leaving
		// prev as a separate preceding step; all three raw steps are
		// consumed and replaced by two (prev, merged).
		if merged, ok := trySliproad(prev, curr, next); ok {
			out = append(out, prev, merged)
			i += 3
			continue
		}

		if merged, ok := tryStaggered(prev, curr, next, maxCollapseDistance); ok {
			out = append(out, prev, merged)
			i += 3
			continue
		}

		if merged, ok := tryUTurn(prev, curr, next); ok {
			out = append(out, prev, merged)
			i += 3
			continue
		}

		if suppressed, ok := tryNameOscillation(prev, curr, next); ok {
			out = append(out, prev, suppressed, next)
			i += 3
			continue
		}

		if merged, ok := tryTrafficLight(curr, next); ok {
			out = append(out, prev, merged)
			i += 3
			continue
		}

		out = append(out, steps[i])
		i++
	}

	return out
}

func collapseEligible(prev, curr, next RouteStep) bool {
	if curr.IsWaypoint() || curr.Mode != next.Mode {
		return false
	}
	if curr.Maneuver.Instruction.Type.IsRoundaboutType() || next.Maneuver.Instruction.Type.IsRoundaboutType() {
		return false
	}
	return true
}

// trySliproad folds a Sliproad-classified curr step into next, transferring
// next's signage, per §4.G.5.
func trySliproad(prev, curr, next RouteStep) (RouteStep, bool) {
	if curr.Maneuver.Instruction.Type != Sliproad {
		return RouteStep{}, false
	}
	merged := next
	merged.GeometryBegin = curr.GeometryBegin
	merged.Distance += curr.Distance
	merged.Duration += curr.Duration
	merged.Weight += curr.Weight
	merged.Maneuver.BearingBefore = curr.Maneuver.BearingBefore
	if prev.NameID == next.NameID {
		merged.Maneuver.Instruction.Type = Continue
	} else {
		merged.Maneuver.Instruction.Type = Turn
	}
	return merged, true
}

// tryStaggered detects two opposite-handed turns separated by a very short
// hop and merges them into a single straight-through instruction.
func tryStaggered(prev, curr, next RouteStep, maxCollapseDistance float64) (RouteStep, bool) {
	if curr.Distance >= 3.0 {
		return RouteStep{}, false
	}
	cm := curr.Maneuver.Instruction.Modifier
	nm := next.Maneuver.Instruction.Modifier
	rightish := func(m DirectionModifier) bool { return m == Right || m == SlightRight || m == SharpRight }
	leftish := func(m DirectionModifier) bool { return m == Left || m == SlightLeft || m == SharpLeft }
	opposite := (rightish(cm) && leftish(nm)) || (leftish(cm) && rightish(nm))
	if !opposite {
		return RouteStep{}, false
	}

	merged := curr
	merged.GeometryEnd = next.GeometryEnd
	merged.Distance += next.Distance
	merged.Duration += next.Duration
	merged.Weight += next.Weight
	merged.Maneuver.BearingAfter = next.Maneuver.BearingAfter
	merged.Maneuver.Instruction.Modifier = Straight
	if prev.NameID == next.NameID {
		merged.Maneuver.Instruction.Type = Suppressed
	} else {
		merged.Maneuver.Instruction.Type = NewName
	}
	return merged, true
}

// tryUTurn detects a fold-into-one-U-turn pattern: prev and next share a
// name, and curr+next's combined turn reverses the incoming bearing.
func tryUTurn(prev, curr, next RouteStep) (RouteStep, bool) {
	if prev.NameID != next.NameID {
		return RouteStep{}, false
	}
	switch curr.Maneuver.Instruction.Type {
	case Turn, Continue, EndOfRoad:
	default:
		return RouteStep{}, false
	}
	if !bearingsAreReversed(curr.Maneuver.BearingBefore, next.Maneuver.BearingAfter) {
		return RouteStep{}, false
	}

	merged := curr
	merged.GeometryEnd = next.GeometryEnd
	merged.Distance += next.Distance
	merged.Duration += next.Duration
	merged.Weight += next.Weight
	merged.Maneuver.BearingAfter = next.Maneuver.BearingAfter
	merged.Maneuver.Instruction = TurnInstruction{Type: Continue, Modifier: UTurn}
	return merged, true
}

// tryNameOscillation suppresses a middle NewName/slight-turn step when the
// outer two steps share a name, keeping the outer names visible to the
// driver instead of announcing a transient rename.
func tryNameOscillation(prev, curr, next RouteStep) (RouteStep, bool) {
	if prev.NameID != next.NameID {
		return RouteStep{}, false
	}
	slight := curr.Maneuver.Instruction.Modifier == SlightLeft || curr.Maneuver.Instruction.Modifier == SlightRight
	if curr.Maneuver.Instruction.Type != NewName && !slight {
		return RouteStep{}, false
	}
	suppressed := curr
	suppressed.Maneuver.Instruction.Type = Suppressed
	return suppressed, true
}

// tryTrafficLight elongates an unconditional Suppressed node-split step
// (two connected roads, exactly one entry-allowed) into the preceding step.
func tryTrafficLight(curr, next RouteStep) (RouteStep, bool) {
	if curr.Maneuver.Instruction.Type != Suppressed {
		return RouteStep{}, false
	}
	if len(curr.Intersections) == 0 {
		return RouteStep{}, false
	}
	lastIntersection := curr.Intersections[len(curr.Intersections)-1]
	if len(lastIntersection.Bearings) != 2 {
		return RouteStep{}, false
	}
	allowed := 0
	for _, e := range lastIntersection.Entry {
		if e {
			allowed++
		}
	}
	if allowed != 1 {
		return RouteStep{}, false
	}

	merged := curr
	merged.GeometryEnd = next.GeometryEnd
	merged.Distance += next.Distance
	merged.Duration += next.Duration
	merged.Weight += next.Weight
	merged.Maneuver.BearingAfter = next.Maneuver.BearingAfter
	return merged, true
}
