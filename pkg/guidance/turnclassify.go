package guidance

// ClassifyIntersection assigns a TurnInstruction to every candidate road in
// view (except the U-turn slot, which only ever becomes a real instruction
// if the path actually doubles back), per spec.md §4.E.7-8. Roundabout
// rings are classified separately by ClassifyRoundabout/RoundaboutTurnType/
// ExitTurnType at the driving loop that detects the ring; this function
// only runs at ordinary (non-ring) intersections.
func ClassifyIntersection(view IntersectionView, fromClasses ClassData, fromName NameID, numMotorwayExits int) IntersectionView {
	view.Roads[0].Instruction = TurnInstruction{Type: NoTurn, Modifier: UTurn}

	valid := make([]int, 0, len(view.Roads)-1)
	for i := 1; i < len(view.Roads); i++ {
		if view.Roads[i].EntryAllowed && view.Roads[i].IsValid {
			valid = append(valid, i)
		}
	}

	hasStraight := false
	for _, i := range valid {
		if modifierFromAngle(view.Roads[i].Angle) == Straight {
			hasStraight = true
		}
	}

	// A node with no other roads at all beyond the U-turn and the single
	// continuation is a pure shape artifact — a way-splitting point with no
	// actual decision to narrate, regardless of whether the name changes.
	noRealChoice := len(view.Roads) <= 2

	for _, i := range valid {
		road := &view.Roads[i]
		modifier := modifierFromAngle(road.Angle)

		switch {
		case noRealChoice:
			road.Instruction = TurnInstruction{Type: NoTurn, Modifier: modifier}

		case fromClasses.IsMotorway || road.Classes.IsMotorway:
			t, m := ClassifyMotorwayTurn(fromClasses.IsMotorway, road.Classes, road.Angle, numMotorwayExits)
			road.Instruction = TurnInstruction{Type: t, Modifier: m}

		case len(valid) >= 3 && isForkPair(view, valid, i):
			road.Instruction = TurnInstruction{Type: Fork, Modifier: forkModifier(road.Angle)}

		case !hasStraight:
			// The incoming road doesn't continue in any near-straight
			// direction: this intersection forces a turn regardless of
			// name, per §4.E.8's end-of-road rule.
			road.Instruction = TurnInstruction{Type: EndOfRoad, Modifier: modifier}

		case len(valid) == 1:
			if fromName != SpecialNameID && road.Name == fromName {
				road.Instruction = TurnInstruction{Type: Continue, Modifier: modifier}
			} else {
				road.Instruction = TurnInstruction{Type: NewName, Modifier: modifier}
			}

		default:
			road.Instruction = TurnInstruction{Type: Turn, Modifier: modifier}
		}
	}

	return view
}

// SuppressUniformTravelMode implements spec.md §4.E.9's suppress-mode
// handler: when the incoming edge and every outgoing road at this
// intersection share a ferry or train travel mode, no turn decision is
// actually being made by the driver, so every instruction is overwritten
// with NoTurn (keeping its modifier) and no guidance is emitted along the
// leg. Call this after ClassifyIntersection, before the result is used to
// pick a PathData's TurnInstruction.
func SuppressUniformTravelMode(view IntersectionView, incomingMode TravelMode) IntersectionView {
	if incomingMode != TravelModeFerry && incomingMode != TravelModeTrain {
		return view
	}
	for i := 1; i < len(view.Roads); i++ {
		if view.Roads[i].Mode != incomingMode {
			return view
		}
	}
	for i := range view.Roads {
		view.Roads[i].Instruction.Type = NoTurn
	}
	return view
}

// isForkPair reports whether road index i is one of exactly two valid
// roads within a fork's angular range (forkSpread) of each other, the
// geometric signature of a fork rather than an ordinary turn. Whether the
// two roads run roughly forward is not checked.
func isForkPair(view IntersectionView, valid []int, i int) bool {
	const forkSpread = 40.0
	count := 0
	for _, j := range valid {
		if angleBetween(view.Roads[i].Angle, view.Roads[j].Angle) < forkSpread {
			count++
		}
	}
	return count == 2
}
