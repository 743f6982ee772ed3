package guidance

// RoundaboutKind classifies the kind of traffic circle at a node, per
// spec.md §4.E.6.
type RoundaboutKind uint8

const (
	RoundaboutNone RoundaboutKind = iota
	RoundaboutIntersectionKind
	RoundaboutRotary
	RoundaboutCircle
)

// ClassifyRoundabout classifies a traffic-circle ring, per spec.md §4.E.6.
//
//   - None if the node isn't on a ring.
//   - RoundaboutIntersection if the ring has a single node, or <= 4
//     exits and radius < 5m. The bearing gaps between exits are not
//     checked.
//   - Rotary if the ring carries one consistent name not used by any
//     connected road, and radius > 15m, or the ring is tagged circular.
//   - Roundabout otherwise.
func ClassifyRoundabout(onRing bool, ringNodeCount, exitCount int, radiusMeters float64, ringName string, connectedRoadNames map[string]bool, isCircularTag bool) RoundaboutKind {
	if !onRing {
		return RoundaboutNone
	}

	if ringNodeCount <= 1 || (exitCount <= 4 && radiusMeters < 5.0) {
		return RoundaboutIntersectionKind
	}

	if isCircularTag {
		return RoundaboutRotary
	}
	if ringName != "" && !connectedRoadNames[ringName] && radiusMeters > 15.0 {
		return RoundaboutRotary
	}

	return RoundaboutCircle
}

// RoundaboutTurnType returns the TurnType for entering a roundabout ring of
// the given kind, honoring whether the same step also exits immediately
// (single-exit case).
func RoundaboutTurnType(kind RoundaboutKind, entersAndExits bool) TurnType {
	switch kind {
	case RoundaboutIntersectionKind:
		if entersAndExits {
			return EnterAndExitRoundaboutIntersection
		}
		return EnterRoundaboutIntersection
	case RoundaboutRotary:
		if entersAndExits {
			return EnterAndExitRotary
		}
		return EnterRotary
	default:
		if entersAndExits {
			return EnterAndExitRoundabout
		}
		return EnterRoundabout
	}
}

// ExitTurnType returns the TurnType for leaving a roundabout ring of the
// given kind.
func ExitTurnType(kind RoundaboutKind) TurnType {
	switch kind {
	case RoundaboutIntersectionKind:
		return ExitRoundaboutIntersection
	case RoundaboutRotary:
		return ExitRotary
	default:
		return ExitRoundabout
	}
}

// RoundaboutReflexArcAllowed implements spec.md §4.E.5's roundabout
// reflex-arc test: a candidate exit is disallowed if it sits inside the
// reflex arc between the incoming edge and the outgoing roundabout flow
// direction.
func RoundaboutReflexArcAllowed(inRbBearing, incomingBearing, outRbBearing, candidateBearing float64) bool {
	alpha := angleBetween(inRbBearing, reverseBearing(incomingBearing))
	beta := angleBetween(inRbBearing, outRbBearing)
	gamma := angleBetween(inRbBearing, candidateBearing)

	disallow := (alpha < beta && gamma < alpha) || (alpha > beta && gamma > alpha)
	return !disallow
}

// RoundaboutTracker accumulates state across a contiguous roundabout run in
// a step sequence, so §G.3 can count exits and collapse intermediate
// StayOnRoundabout steps. Open Question 4: exit counting starts from the
// first roundabout step actually observed in the leg being processed — if
// a route starts mid-loop (re-routing), exits are counted relative to that
// restart point, not the ring's original entry, by design.
type RoundaboutTracker struct {
	Kind      RoundaboutKind
	ExitCount int
	started   bool
}

// Observe feeds one roundabout-typed step into the tracker and returns
// whether this step should be collapsed into the running enter step (true
// for StayOnRoundabout, false for the final exit or a plain enter).
func (t *RoundaboutTracker) Observe(turn TurnType) (collapse bool) {
	if !t.started {
		t.started = true
	}
	switch {
	case turn == StayOnRoundabout:
		t.ExitCount++
		return true
	case turn.IsExitRoundabout():
		t.ExitCount++
		return false
	default:
		return false
	}
}
