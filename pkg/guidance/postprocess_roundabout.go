package guidance

// HandleRoundabouts implements spec.md §4.G.3: finds each contiguous
// roundabout run, counts its exits, annotates the enter step, and collapses
// intermediate StayOnRoundabout steps into it.
func HandleRoundabouts(steps []RouteStep) []RouteStep {
	out := make([]RouteStep, 0, len(steps))

	i := 0
	for i < len(steps) {
		s := steps[i]
		if !s.Maneuver.Instruction.Type.IsEnterRoundabout() {
			out = append(out, s)
			i++
			continue
		}

		enter := s
		j := i + 1
		tracker := &RoundaboutTracker{}
		tracker.Observe(enter.Maneuver.Instruction.Type)

		var exit *RouteStep
		for j < len(steps) {
			t := steps[j].Maneuver.Instruction.Type
			if t == StayOnRoundabout {
				enter.GeometryEnd = steps[j].GeometryEnd
				enter.Duration += steps[j].Duration
				enter.Distance += steps[j].Distance
				enter.Weight += steps[j].Weight
				tracker.Observe(t)
				j++
				continue
			}
			if t.IsExitRoundabout() {
				e := steps[j]
				exit = &e
				tracker.Observe(t)
				j++
			}
			break
		}

		enter.Maneuver.Exit = uint32(tracker.ExitCount)
		enter.RotaryName = enter.Name
		enter.RotaryPronunciation = enter.Pronunciation

		kind := roundaboutKindOf(enter.Maneuver.Instruction.Type)
		if kind == RoundaboutIntersectionKind && exit != nil {
			enter.Maneuver.Instruction.Modifier = combinedModifierFromBearings(enter.Maneuver.BearingBefore, exit.Maneuver.BearingAfter)
		}

		out = append(out, enter)
		if exit != nil {
			out = append(out, *exit)
		}
		i = j
	}

	return out
}

func roundaboutKindOf(t TurnType) RoundaboutKind {
	switch t {
	case EnterRoundaboutIntersection, EnterAndExitRoundaboutIntersection, EnterRoundaboutIntersectionAtExit:
		return RoundaboutIntersectionKind
	case EnterRotary, EnterAndExitRotary, EnterRotaryAtExit:
		return RoundaboutRotary
	default:
		return RoundaboutCircle
	}
}
