package guidance

// combinedModifierFromBearings computes the direction modifier for a merged
// turn from the entry bearing of the first piece to the exit bearing of the
// second, per spec.md §4.G.6.
func combinedModifierFromBearings(entryBearing, exitBearing float64) DirectionModifier {
	return modifierFromAngle(turnAngle(entryBearing, exitBearing))
}

// classifyCombinedTurn implements spec.md §4.G.6's combined-turn
// classification rules, applied in the order given there. prevName is the
// name of the step preceding the merged pair; firstName/secondName are the
// names straddling the merge point before/after.
func classifyCombinedTurn(prevName, secondName NameID, first, second TurnInstruction, combinedModifier DirectionModifier) TurnInstruction {
	sameAsSecond := prevName == secondName

	if first.Type == Sliproad || second.Type == Sliproad {
		if sameAsSecond {
			return TurnInstruction{Type: Continue, Modifier: combinedModifier}
		}
		return TurnInstruction{Type: Turn, Modifier: combinedModifier}
	}

	if first.Type == Fork || first.Type == Merge {
		return first
	}

	result := TurnInstruction{Type: Turn, Modifier: combinedModifier}

	switch {
	case combinedModifier == Straight:
		if sameAsSecond {
			result.Type = Suppressed
		} else {
			result.Type = NewName
		}
	case first.Type == Suppressed && second.Type == NewName:
		result.Type = Turn
	case first.Type == NewName && second.Type == Suppressed && combinedModifier != Straight:
		result.Type = Turn
	case first.Type == Continue && !sameAsSecond:
		result.Type = Turn
	case first.Type == Turn && sameAsSecond && second.Type != Suppressed:
		result.Type = Continue
	default:
		result.Type = first.Type
	}

	if second.Type == OnRamp {
		result.Type = OnRamp
	}
	if first.Type == EndOfRoad || second.Type == EndOfRoad {
		result.Type = EndOfRoad
	}

	return result
}
