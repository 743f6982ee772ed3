// Package guidance turns a raw shortest-path result over a contracted
// routing graph into a driver-facing itinerary: ordered route steps with
// turn instructions, lane hints, intersection views and annotated geometry.
package guidance

import (
	"math"

	"github.com/paulmach/orb"
)

// Special sentinel values for opaque 32-bit identifiers.
const (
	SpecialNodeID    = ^uint32(0)
	SpecialEdgeID    = ^uint32(0)
	SpecialNameID    = ^uint32(0)
	SpecialSegmentID = ^uint32(0)
)

// NodeID, EdgeID, NameID identify entries in the DataFacade's arrays.
type (
	NodeID = uint32
	EdgeID = uint32
	NameID = uint32
)

// SegmentID pairs an opaque segment identifier with whether it is usable.
type SegmentID struct {
	ID      uint32
	Enabled bool
}

// ComponentID identifies a weakly-connected component of the road network.
// IsTiny marks components too small to offer useful routing (dead ends,
// disconnected slivers left over from OSM extraction).
type ComponentID struct {
	ID     uint32
	IsTiny bool
}

// Coordinate is a fixed-point longitude/latitude pair, 1e6-scaled, matching
// OSRM's on-disk representation. orb.Point (float64 lon/lat) is used for all
// geometric math; Coordinate exists at the data-model boundary so equality
// and serialization are exact.
type Coordinate struct {
	Lon, Lat int32 // 1e6-scaled
}

const coordPrecision = 1e6

// FromPoint builds a fixed-point Coordinate from a floating-point orb.Point.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{
		Lon: int32(math.Round(p[0] * coordPrecision)),
		Lat: int32(math.Round(p[1] * coordPrecision)),
	}
}

// Point converts back to a floating-point orb.Point (lon, lat).
func (c Coordinate) Point() orb.Point {
	return orb.Point{float64(c.Lon) / coordPrecision, float64(c.Lat) / coordPrecision}
}

// Equal reports exact fixed-point equality.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lon == o.Lon && c.Lat == o.Lat
}

// TravelMode enumerates how a segment is traversed.
type TravelMode uint8

const (
	TravelModeInaccessible TravelMode = iota
	TravelModeDriving
	TravelModeCycling
	TravelModeWalking
	TravelModeFerry
	TravelModeTrain
)

// RoadPriorityClass buckets OSM highway classes by routing priority; used
// by the sliproad area-threshold table and the obvious-continuation logic.
type RoadPriorityClass uint8

const (
	RoadClassMotorway RoadPriorityClass = iota
	RoadClassTrunk
	RoadClassPrimary
	RoadClassSecondary
	RoadClassTertiary
	RoadClassResidential
	RoadClassService
	RoadClassLinkRoad // *_link variants
)

// ClassData carries per-edge class/priority info read from the facade.
type ClassData struct {
	RoadClass    RoadPriorityClass
	IsMotorway   bool
	IsRampOrLink bool
	IsLowPriority bool
}

// PhantomNode is the projection of a user coordinate onto an edge.
type PhantomNode struct {
	ForwardSegment SegmentID
	ReverseSegment SegmentID

	ForwardWeight   uint32
	ForwardDuration uint32
	ForwardDistance float64
	ForwardOffset   uint32 // weight consumed from edge start to the snap point

	ReverseWeight   uint32
	ReverseDuration uint32
	ReverseDistance float64
	ReverseOffset   uint32

	FwdSegmentPosition uint32

	// flags packs 4 validity bits + a 12-bit bearing into one word, per
	// Design Notes item 9 ("no alignment assumptions").
	flags uint16

	Location      Coordinate
	InputLocation Coordinate

	Component ComponentID
}

const (
	flagSourceValidFwd = 1 << iota
	flagTargetValidFwd
	flagSourceValidRev
	flagTargetValidRev
	bearingShift = 4
	bearingMask  = 0x0FFF // 12 bits
)

// SetBearing stores a bearing in [0,360) degrees.
func (p *PhantomNode) SetBearing(deg float64) {
	b := uint16(math.Mod(deg, 360)) & bearingMask
	p.flags = (p.flags &^ (bearingMask << bearingShift)) | (b << bearingShift)
}

// Bearing returns the stored bearing in [0,360) degrees.
func (p *PhantomNode) Bearing() float64 {
	return float64((p.flags >> bearingShift) & bearingMask)
}

func (p *PhantomNode) setFlag(bit uint16, v bool) {
	if v {
		p.flags |= bit
	} else {
		p.flags &^= bit
	}
}

func (p *PhantomNode) SetSourceValidForward(v bool) { p.setFlag(flagSourceValidFwd, v) }
func (p *PhantomNode) SetTargetValidForward(v bool) { p.setFlag(flagTargetValidFwd, v) }
func (p *PhantomNode) SetSourceValidReverse(v bool) { p.setFlag(flagSourceValidRev, v) }
func (p *PhantomNode) SetTargetValidReverse(v bool) { p.setFlag(flagTargetValidRev, v) }

func (p *PhantomNode) IsSourceValidForward() bool { return p.flags&flagSourceValidFwd != 0 }
func (p *PhantomNode) IsTargetValidForward() bool { return p.flags&flagTargetValidFwd != 0 }
func (p *PhantomNode) IsSourceValidReverse() bool { return p.flags&flagSourceValidRev != 0 }
func (p *PhantomNode) IsTargetValidReverse() bool { return p.flags&flagTargetValidRev != 0 }

// IsValidEndpoint reports whether exactly one of the forward/reverse
// source-or-target validity pairs holds, the precondition for using this
// phantom node as a route leg endpoint.
func (p *PhantomNode) IsValidEndpoint() bool {
	fwd := p.IsSourceValidForward() || p.IsTargetValidForward()
	rev := p.IsSourceValidReverse() || p.IsTargetValidReverse()
	return fwd != rev // exactly one
}

// PhantomEndpoints is the {source, target} pair defining one leg.
type PhantomEndpoints struct {
	Source PhantomNode
	Target PhantomNode
}

// TurnInstruction pairs a turn type with its direction modifier.
type TurnInstruction struct {
	Type     TurnType
	Modifier DirectionModifier
}

// LaneDataID indexes into the facade's turn-lane description table.
type LaneDataID = uint32

// PathData is one element per via-node along the unpacked path.
type PathData struct {
	TurnViaNode NodeID
	NameID      NameID

	// DurationUntilTurn/WeightUntilTurn include the turn cost that follows;
	// segment-only values are these minus DurationOfTurn/WeightOfTurn.
	DurationUntilTurn uint32
	WeightUntilTurn   uint32
	WeightOfTurn      uint32
	DurationOfTurn    uint32

	TurnInstruction TurnInstruction
	LaneDataID      LaneDataID

	TravelMode     TravelMode
	EntryClassID   uint32
	DatasourceID   uint8
	Classes        ClassData
	IsLeftHandDriving bool
	IsSegregated      bool

	PreTurnBearing  float64
	PostTurnBearing float64
}

// InternalRouteResult is the raw input to the guidance core, produced by
// the routing algorithm (an external collaborator per spec.md §1).
type InternalRouteResult struct {
	UnpackedPathSegments   [][]PathData
	LegEndpoints           []PhantomEndpoints
	SourceTraversedReverse []bool
	TargetTraversedReverse []bool
	ShortestPathWeight     uint32 // math.MaxUint32 sentinel == infinite/no route
}

// IsValid reports whether the result represents a found path.
func (r *InternalRouteResult) IsValid() bool {
	return r.ShortestPathWeight != math.MaxUint32
}

// Annotation carries per-inter-location-interval metrics.
type Annotation struct {
	Distance     float64
	Duration     float64
	Weight       float64
	DatasourceID uint8
}

// LegGeometry is the per-leg polyline plus per-coordinate annotations.
type LegGeometry struct {
	Locations        []Coordinate
	SegmentOffsets   []int
	SegmentDistances []float64
	OSMNodeIDs       []uint64
	Annotations      []Annotation
}

// CheckInvariants validates the structural invariants from spec.md §3/§8.
func (g *LegGeometry) CheckInvariants() error {
	if len(g.SegmentOffsets) != len(g.SegmentDistances)+1 {
		return errInvariant("segment_offsets/segment_distances length mismatch")
	}
	if len(g.Locations) <= len(g.SegmentDistances) {
		return errInvariant("locations must outnumber segment_distances")
	}
	if len(g.Annotations) != len(g.Locations)-1 {
		return errInvariant("annotations length must be locations-1")
	}
	return nil
}

// WaypointType marks the role of a step's maneuver.
type WaypointType uint8

const (
	WaypointNone WaypointType = iota
	WaypointDepart
	WaypointArrive
)

// StepManeuver describes the turn taken at the start of a RouteStep.
type StepManeuver struct {
	Location      Coordinate
	BearingBefore float64
	BearingAfter  float64
	Instruction   TurnInstruction
	WaypointType  WaypointType
	Exit          uint32
}

// IntermediateIntersection is the view of an intersection carried on a
// RouteStep for client display (lanes, bearings, alternative roads).
type IntermediateIntersection struct {
	Location      Coordinate
	Bearings      []float64
	Entry         []bool
	In            int // index of the incoming road bearing, -1 if none (depart)
	Out           int // index of the outgoing road bearing, -1 if none (arrive)
	Lanes         []LaneData
}

// LaneData records a turn-lane's indicator and whether it's usable for the
// maneuver actually taken.
type LaneData struct {
	Indications []DirectionModifier
	Valid       bool
}

// RouteStep is one emitted instruction: a named segment between two turns,
// or a synthetic Depart/Arrive bookend.
type RouteStep struct {
	FromID        NodeID
	NameID        NameID
	IsSegregated  bool
	Name          string
	Ref           string
	Pronunciation string
	Destinations  string
	Exits         string
	RotaryName         string
	RotaryPronunciation string

	Duration float64
	Distance float64
	Weight   float64
	Mode     TravelMode

	Maneuver StepManeuver

	GeometryBegin int
	GeometryEnd   int

	Intersections []IntermediateIntersection

	IsLeftHandDriving bool
}

// IsWaypoint reports whether this step is a synthetic Depart/Arrive step.
func (s *RouteStep) IsWaypoint() bool {
	return s.Maneuver.WaypointType != WaypointNone
}

// RouteLeg aggregates distance/duration/weight over its steps, plus a
// driver-facing summary of the two most significant street names.
type RouteLeg struct {
	Distance float64
	Duration float64
	Weight   float64
	Summary  string
	Steps    []RouteStep
}

// Route is the top-level aggregate across all legs.
type Route struct {
	Distance float64
	Duration float64
	Weight   float64
}

func errInvariant(msg string) error {
	return &InvariantError{Msg: msg}
}

// InvariantError marks a data-structure invariant violation — per spec.md
// §7, these are bugs, not recoverable user errors.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "guidance: invariant violation: " + e.Msg }
