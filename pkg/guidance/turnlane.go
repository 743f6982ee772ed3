package guidance

// TurnLaneTag is one OSM turn:lanes value, per spec.md §4.F.
type TurnLaneTag uint16

const (
	LaneNone TurnLaneTag = iota
	LaneUTurn
	LaneSharpRight
	LaneRight
	LaneSlightRight
	LaneStraight
	LaneSlightLeft
	LaneLeft
	LaneSharpLeft
	LaneMergeToLeft
	LaneMergeToRight
)

// LaneDescription is the ordered set of tags on one lane group (one
// turn:lanes OSM value, left to right).
type LaneDescription []TurnLaneTag

// matchingModifier maps every lane tag to the DirectionModifier a lane with
// that tag is expected to serve, per turn_lane_matcher's getMatchingModifier
// table. merge_to_left/merge_to_right both idealize to straight, since a
// merge lane still ends up heading roughly ahead.
var matchingModifier = map[TurnLaneTag]DirectionModifier{
	LaneUTurn:        UTurn,
	LaneSharpRight:   SharpRight,
	LaneRight:        Right,
	LaneSlightRight:  SlightRight,
	LaneStraight:     Straight,
	LaneSlightLeft:   SlightLeft,
	LaneLeft:         Left,
	LaneSharpLeft:    SharpLeft,
	LaneMergeToLeft:  Straight,
	LaneMergeToRight: Straight,
}

// GetMatchingModifier translates a lane tag into the direction modifier a
// lane carrying that tag is expected to serve.
func GetMatchingModifier(tag TurnLaneTag) DirectionModifier {
	if m, ok := matchingModifier[tag]; ok {
		return m
	}
	return UTurn // fallback for invalid tags
}

func hasLeftModifier(instr TurnInstruction) bool {
	return instr.Modifier.IsLeftSided()
}

func hasRightModifier(instr TurnInstruction) bool {
	return instr.Modifier.IsRightSided()
}

func entersRoundabout(instr TurnInstruction) bool { return instr.Type.IsEnterRoundabout() }
func leavesRoundabout(instr TurnInstruction) bool { return instr.Type.IsExitRoundabout() }

// IsValidLaneMatch implements turn_lane_matcher's isValidMatch: whether a
// lane carrying tag can plausibly serve the given turn instruction.
func IsValidLaneMatch(tag TurnLaneTag, instr TurnInstruction) bool {
	isMirrored := instr.Type == Merge

	switch tag {
	case LaneUTurn:
		return hasLeftModifier(instr) || instr.Modifier == UTurn
	case LaneSharpRight, LaneRight, LaneSlightRight:
		if isMirrored {
			return hasLeftModifier(instr)
		}
		return leavesRoundabout(instr) || hasRightModifier(instr)
	case LaneStraight:
		if instr.Modifier == Straight {
			return true
		}
		if instr.Type == Suppressed || instr.Type == NewName || instr.Type == StayOnRoundabout {
			return true
		}
		if entersRoundabout(instr) {
			return true
		}
		if (instr.Type == Fork || instr.Type == Continue) &&
			(instr.Modifier == SlightLeft || instr.Modifier == SlightRight) {
			return true
		}
		return false
	case LaneSlightLeft, LaneLeft, LaneSharpLeft:
		if isMirrored {
			return hasRightModifier(instr)
		}
		return instr.Type == StayOnRoundabout || hasLeftModifier(instr)
	default:
		return false
	}
}

// GetMatchingQuality scores how well a lane tag fits a connected road's
// actual turn angle: the angular deviation between the tag's idealized
// angle and the road's perceived angle, in degrees. Lower is better.
func GetMatchingQuality(tag TurnLaneTag, road ConnectedRoad) float64 {
	modifier := GetMatchingModifier(tag)
	return angleBetween(idealizedAngle[modifier], road.Angle)
}

// FindBestMatch returns the index into intersection.Roads whose angle best
// matches tag, preferring a valid match over an invalid one, then an
// entry-allowed road over a disallowed one, then the smallest angular
// deviation.
func FindBestMatch(tag TurnLaneTag, intersection IntersectionView) int {
	best := -1
	for i, r := range intersection.Roads {
		if best == -1 || betterLaneMatch(tag, r, intersection.Roads[best]) {
			best = i
		}
	}
	return best
}

func betterLaneMatch(tag TurnLaneTag, a, b ConnectedRoad) bool {
	av, bv := IsValidLaneMatch(tag, a.Instruction), IsValidLaneMatch(tag, b.Instruction)
	if av != bv {
		return av
	}
	if a.EntryAllowed != b.EntryAllowed {
		return a.EntryAllowed
	}
	return GetMatchingQuality(tag, a) < GetMatchingQuality(tag, b)
}

// FindBestMatchForReverse implements turn_lane_matcher's special u-turn
// matcher: it only searches from the best match for the tag immediately to
// its right onward, since the sharpest right-hand turn can itself be the
// effective u-turn on roads with a median island.
func FindBestMatchForReverse(neighborTag TurnLaneTag, intersection IntersectionView) int {
	neighborIdx := FindBestMatch(neighborTag, intersection)
	if neighborIdx+1 >= len(intersection.Roads) {
		return 0
	}

	best := neighborIdx
	for i := neighborIdx; i < len(intersection.Roads); i++ {
		r := intersection.Roads[i]
		bestR := intersection.Roads[best]
		av, bv := IsValidLaneMatch(LaneUTurn, r.Instruction), IsValidLaneMatch(LaneUTurn, bestR.Instruction)
		better := false
		switch {
		case av != bv:
			better = av
		case r.EntryAllowed != bestR.EntryAllowed:
			better = r.EntryAllowed
		default:
			better = GetMatchingQuality(LaneUTurn, r) < GetMatchingQuality(LaneUTurn, bestR)
		}
		if better {
			best = i
		}
	}
	return best
}

// LaneDataEntry is one contiguous run of identically-tagged lanes, reduced
// from the raw per-lane OSM tag list (e.g. "left|through|through|right"
// yields three entries).
type LaneDataEntry struct {
	Tag      TurnLaneTag
	FromLane uint8
	ToLane   uint8
}

// BuildLaneData collapses a per-lane tag list into LaneDataEntry runs, left
// to right.
func BuildLaneData(lanes LaneDescription) []LaneDataEntry {
	var out []LaneDataEntry
	for i, tag := range lanes {
		if len(out) > 0 && out[len(out)-1].Tag == tag {
			out[len(out)-1].ToLane = uint8(i)
			continue
		}
		out = append(out, LaneDataEntry{Tag: tag, FromLane: uint8(i), ToLane: uint8(i)})
	}
	return out
}

// CanMatchTrivially implements turn_lane_matcher's canMatchTrivially: true
// if every entry-allowed road in the intersection (skipping the u-turn at
// index 0 unless it is tagged explicitly) can be matched, in left-to-right
// order, to the corresponding lane entry.
func CanMatchTrivially(intersection IntersectionView, laneData []LaneDataEntry) bool {
	roadIndex := 1
	lane := 0
	if len(laneData) > 0 && laneData[0].Tag == LaneUTurn {
		if intersection.Roads[0].EntryAllowed {
			lane = 1
		}
	}
	for ; roadIndex < len(intersection.Roads) && lane < len(laneData); roadIndex++ {
		if !intersection.Roads[roadIndex].EntryAllowed {
			continue
		}
		if !IsValidLaneMatch(laneData[lane].Tag, intersection.Roads[roadIndex].Instruction) {
			return false
		}
		if FindBestMatch(laneData[lane].Tag, intersection) != roadIndex {
			return false
		}
		lane++
	}
	return lane == len(laneData) ||
		(lane+1 == len(laneData) && laneData[len(laneData)-1].Tag == LaneUTurn)
}

// AssignLaneData picks, for every LaneDataEntry, the connected road that
// FindBestMatch selects for its tag (entry-allowed or not), and records the
// entry's indication and DirectionModifier-derived validity in that road's
// LaneData. Roads with
// no matching lane entry are left unassigned (Valid=false on a zero-value
// LaneData is the caller's signal to omit lane guidance for that road).
func AssignLaneData(intersection IntersectionView, laneData []LaneDataEntry) map[int]LaneData {
	assigned := make(map[int]LaneData, len(laneData))
	for _, entry := range laneData {
		idx := FindBestMatch(entry.Tag, intersection)
		if idx < 0 {
			continue
		}
		valid := IsValidLaneMatch(entry.Tag, intersection.Roads[idx].Instruction)
		ld := assigned[idx]
		ld.Indications = append(ld.Indications, GetMatchingModifier(entry.Tag))
		ld.Valid = ld.Valid || valid
		assigned[idx] = ld
	}
	return assigned
}
