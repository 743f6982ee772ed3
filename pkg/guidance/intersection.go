package guidance

import "sort"

// ConnectedRoad describes one road leaving an intersection.
type ConnectedRoad struct {
	EdgeID          EdgeID
	Angle           float64 // perceived angle in [0,360), adjusted for merges
	Bearing         float64 // geographic bearing
	EntryAllowed    bool
	Instruction     TurnInstruction
	LaneDataID      LaneDataID
	SegmentLength   float64
	IsValid         bool
	Name            NameID
	Mode            TravelMode
	Classes         ClassData
	IsMergedReverse bool // the reversed half of a merged dual-carriageway pair
}

// IntersectionView is the ordered set of roads connected at an
// intersection. Index 0 is always the U-turn (reversed incoming edge).
type IntersectionView struct {
	Roads []ConnectedRoad
}

// OutgoingEdge is what IntersectionSource reports for one candidate
// outgoing road before classification.
type OutgoingEdge struct {
	EdgeID        EdgeID
	InitialBearing float64
	PerceivedBearing float64
	SegmentLength float64
	Name          NameID
	Mode          TravelMode
	Classes       ClassData
	Reversed      bool // true if this is the split-direction half of a dual carriageway
}

// IntersectionSource is the slice of the DataFacade needed to build an
// IntersectionView at a node, given the incoming edge.
type IntersectionSource interface {
	OutgoingEdges(node NodeID, incoming EdgeID) []OutgoingEdge
	IsUTurnAllowed(node NodeID, incoming EdgeID) bool
	IsTurnAllowed(node NodeID, incoming, outgoing EdgeID) bool
}

// BuildIntersection runs the §4.E pipeline steps 1–4: gather outgoing
// geometries, merge dual carriageways, append the reversed U-turn, and sort
// by angle (or reverse order under left-hand driving).
func BuildIntersection(src IntersectionSource, node NodeID, incoming EdgeID, incomingBearing float64, isLeftHandDriving bool) IntersectionView {
	outs := src.OutgoingEdges(node, incoming)
	outs = mergeDualCarriageways(outs)

	roads := make([]ConnectedRoad, 0, len(outs)+1)

	// Index 0: the U-turn, the reversed incoming edge.
	roads = append(roads, ConnectedRoad{
		EdgeID:       incoming,
		Angle:        0,
		Bearing:      reverseBearing(incomingBearing),
		EntryAllowed: src.IsUTurnAllowed(node, incoming),
		IsValid:      true,
	})

	for _, o := range outs {
		angle := turnAngle(incomingBearing, o.PerceivedBearing)
		roads = append(roads, ConnectedRoad{
			EdgeID:        o.EdgeID,
			Angle:         angle,
			Bearing:       o.PerceivedBearing,
			EntryAllowed:  src.IsTurnAllowed(node, incoming, o.EdgeID),
			LaneDataID:    SpecialSegmentID,
			SegmentLength: o.SegmentLength,
			IsValid:       true,
			Name:          o.Name,
			Mode:          o.Mode,
			Classes:       o.Classes,
		})
	}

	sortIntersection(roads, isLeftHandDriving)
	return IntersectionView{Roads: roads}
}

// sortIntersection sorts roads[1:] counter-clockwise by angle (clockwise
// under left-hand driving), keeping index 0 (the U-turn) fixed.
func sortIntersection(roads []ConnectedRoad, isLeftHandDriving bool) {
	if len(roads) <= 2 {
		return
	}
	rest := roads[1:]
	sort.Slice(rest, func(i, j int) bool {
		if isLeftHandDriving {
			return rest[i].Angle > rest[j].Angle
		}
		return rest[i].Angle < rest[j].Angle
	})
}

// mergeAngleThreshold and mergeAngleThresholdThreeWay implement §4.E.2's
// dual-carriageway merge angular-separation rule.
const (
	mergeAngleThreshold         = 60.0
	mergeAngleThresholdThreeWay = 100.0
)

// mergeDualCarriageways merges adjacent outgoing roads that represent the
// two directions of a split dual carriageway, per spec.md §4.E.2. Only
// immediately-adjacent (by bearing) pairs are considered, and a merge never
// chains into a second merge on either side.
func mergeDualCarriageways(outs []OutgoingEdge) []OutgoingEdge {
	if len(outs) < 2 {
		return outs
	}
	sort.Slice(outs, func(i, j int) bool { return outs[i].PerceivedBearing < outs[j].PerceivedBearing })

	merged := make([]OutgoingEdge, 0, len(outs))
	used := make([]bool, len(outs))

	threshold := mergeAngleThreshold
	if len(outs) == 3 {
		threshold = mergeAngleThresholdThreeWay
	}

	for i := 0; i < len(outs); i++ {
		if used[i] {
			continue
		}
		if i+1 < len(outs) && !used[i+1] && mergeable(outs[i], outs[i+1], float64(threshold)) {
			avg := averageBearings(outs[i].PerceivedBearing, outs[i+1].PerceivedBearing)
			keep := outs[i]
			if outs[i].Reversed {
				keep = outs[i+1]
			}
			keep.PerceivedBearing = avg
			keep.InitialBearing = avg
			merged = append(merged, keep)
			used[i] = true
			used[i+1] = true
			i++
			continue
		}
		merged = append(merged, outs[i])
	}
	return merged
}

// mergeable implements the dual-carriageway mergeability test of §4.E.2,
// excluding the Y-arm-validity geometric check (left to the coordinate
// extractor upstream, which already filters implausible stubs out of the
// outgoing-edge list before it reaches here).
func mergeable(a, b OutgoingEdge, angleThreshold float64) bool {
	if a.Name == SpecialNameID || a.Name != b.Name {
		return false
	}
	if a.Mode != b.Mode || a.Classes.RoadClass != b.Classes.RoadClass {
		return false
	}
	if a.Reversed == b.Reversed {
		return false // exactly one must be reversed
	}
	return angleBetween(a.PerceivedBearing, b.PerceivedBearing) < angleThreshold
}
