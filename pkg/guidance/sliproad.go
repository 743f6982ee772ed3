package guidance

// sliproadThresholdFactor scales spec.md Config.MaxSliproadThreshold (the
// 60m default, OSRM's MAX_SLIPROAD_THRESHOLD) by the priority class of the
// sliproad candidate before squaring it into an area bound, copied verbatim
// (spec.md Open Question 2 — load-bearing for regression tests, not
// derived) from original_source/src/guidance/sliproad_handler.cpp's
// scaledThresholdByRoadClass switch. RoadClassService has no direct
// equivalent in OSRM's RoadPriorityClass enum (which splits residential
// into MAIN_RESIDENTIAL/SIDE_RESIDENTIAL and has no plain "service" rung);
// it is mapped to SIDE_RESIDENTIAL's 0.3 factor, the same bucket OSRM gives
// every *_link road.
var sliproadThresholdFactor = map[RoadPriorityClass]float64{
	RoadClassMotorway:    1.0,
	RoadClassTrunk:       0.8,
	RoadClassPrimary:     0.8,
	RoadClassSecondary:   0.6,
	RoadClassTertiary:    0.5,
	RoadClassResidential: 0.4,
	RoadClassService:     0.3,
	RoadClassLinkRoad:    0.3,
}

const sliproadMinAreaSqm = 3.0

// SliproadCandidate carries the geometric facts needed to judge whether a
// short link road is a sliproad, per spec.md §4.E.8.
type SliproadCandidate struct {
	Length         float64 // meters
	TriangleArea   float64 // meters^2, formed by the link and the two main roads
	PriorityClass  RoadPriorityClass
	IsThroughStreet bool // the far intersection has another edge of the same name
	CurvatureFlips bool
	NeedsTwoDistinctAnnouncements bool
}

// IsSliproad applies §4.E.8's rejection rules. collapseDistance is
// Config.MaxCollapseDistance; maxThreshold is Config.MaxSliproadThreshold
// (OSRM's MAX_SLIPROAD_THRESHOLD, 60m by default).
func IsSliproad(c SliproadCandidate, collapseDistance, maxThreshold float64) bool {
	if c.Length > 2*collapseDistance {
		return false
	}
	if c.IsThroughStreet {
		return false
	}
	if c.CurvatureFlips {
		return false
	}
	if c.NeedsTwoDistinctAnnouncements {
		return false
	}

	factor, ok := sliproadThresholdFactor[c.PriorityClass]
	if !ok {
		factor = sliproadThresholdFactor[RoadClassResidential]
	}
	maxArea := (maxThreshold * factor) * (maxThreshold * factor)
	if c.TriangleArea < sliproadMinAreaSqm || c.TriangleArea > maxArea {
		return false
	}

	return true
}

// DemoteAdjacentFork decides what a main-road "fork" turn adjacent to a
// confirmed sliproad should be demoted to, per §4.E.8's closing sentence.
func DemoteAdjacentFork(mainBeforeName, mainAfterName string) TurnType {
	if mainBeforeName == mainAfterName {
		return Continue
	}
	if mainAfterName == "" {
		return Suppressed
	}
	return NewName
}
