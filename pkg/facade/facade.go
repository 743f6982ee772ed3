// Package facade implements the read-only, concurrency-safe data access
// layer the guidance core queries for graph, geometry, name, class and
// turn-lane data, per the engine's DataFacade abstraction.
package facade

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"map_router/pkg/geo"
	"map_router/pkg/graph"
	"map_router/pkg/guidance"
)

// DataFacade is the full read-only surface the guidance pipeline needs,
// composed from the per-component source interfaces pkg/guidance declares
// plus the spatial/classification lookups the routing engine needs to
// build PhantomNode and PathData in the first place.
type DataFacade interface {
	guidance.GeometrySource
	guidance.NameSource
	guidance.IntersectionSource
	guidance.OverrideSource

	EdgeClasses(edge guidance.EdgeID) guidance.ClassData
	EdgeLaneDescription(edge guidance.EdgeID) guidance.LaneDescription
	NearestEdge(lat, lon float64) (edge guidance.EdgeID, fromNode, toNode guidance.NodeID, ratio, distMeters float64, ok bool)
}

// MemoryFacade is an in-memory DataFacade backed directly by the CSR arrays
// built by pkg/graph, with an rtree spatial index over edge bounding boxes
// for NearestEdge.
//
// tidwall/rtree is declared in go.mod but, in the preprocessing-only form
// the teacher shipped, was never imported anywhere — MemoryFacade is where
// that dependency is finally put to work, as the engine's nearest-edge
// index instead of the teacher's flat sorted-grid Snapper (kept in
// pkg/routing for the CH search's own seeding, a distinct concern from
// guidance's representative-coordinate queries).
type MemoryFacade struct {
	g         *graph.Graph
	overrides []guidance.ManeuverOverride
	index     rtree.RTreeG[uint32] // edge index -> bounding box
	src       []uint32             // edge -> source node, built by NewMemoryFacade
}

// NewMemoryFacade builds a facade over g, indexing every edge's bounding
// box for spatial queries.
func NewMemoryFacade(g *graph.Graph, overrides []guidance.ManeuverOverride) *MemoryFacade {
	f := &MemoryFacade{g: g, overrides: overrides}
	f.buildEdgeSourceIndex()
	for e := uint32(0); e < g.NumEdges; e++ {
		min, max := f.edgeBounds(e)
		f.index.Insert(min, max, e)
	}
	return f
}

func (f *MemoryFacade) buildEdgeSourceIndex() {
	f.src = make([]uint32, f.g.NumEdges)
	for u := uint32(0); u < f.g.NumNodes; u++ {
		start, end := f.g.EdgesFrom(u)
		for e := start; e < end; e++ {
			f.src[e] = u
		}
	}
}

func (f *MemoryFacade) edgeSource(edge uint32) uint32 {
	return f.src[edge]
}

func (f *MemoryFacade) edgeBounds(edge uint32) (min, max [2]float64) {
	u := f.edgeSource(edge)
	v := f.g.Head[edge]
	lo := [2]float64{
		math.Min(f.g.NodeLon[u], f.g.NodeLon[v]),
		math.Min(f.g.NodeLat[u], f.g.NodeLat[v]),
	}
	hi := [2]float64{
		math.Max(f.g.NodeLon[u], f.g.NodeLon[v]),
		math.Max(f.g.NodeLat[u], f.g.NodeLat[v]),
	}
	return lo, hi
}

// CoordOf implements guidance.GeometrySource.
func (f *MemoryFacade) CoordOf(n guidance.NodeID) guidance.Coordinate {
	return guidance.FromPoint(orb.Point{f.g.NodeLon[n], f.g.NodeLat[n]})
}

// OSMIDOf implements guidance.GeometrySource.
func (f *MemoryFacade) OSMIDOf(n guidance.NodeID) uint64 {
	return uint64(f.g.OSMNodeID[n])
}

// nameRecord resolves a NameID to its record, or the zero record for
// SpecialNameID/out-of-range.
func (f *MemoryFacade) nameRecord(id guidance.NameID) graph.NameRecord {
	if id == guidance.SpecialNameID || int(id) >= len(f.g.NameRecords) {
		return graph.NameRecord{}
	}
	return f.g.NameRecords[id]
}

// NameFor implements guidance.NameSource.
func (f *MemoryFacade) NameFor(id guidance.NameID) string { return f.nameRecord(id).Name }

// RefFor implements guidance.NameSource.
func (f *MemoryFacade) RefFor(id guidance.NameID) string { return f.nameRecord(id).Ref }

// PronunciationFor implements guidance.NameSource. This extraction carries
// no name:pronunciation-style OSM tags, so it is always empty.
func (f *MemoryFacade) PronunciationFor(id guidance.NameID) string { return "" }

// DestinationsFor implements guidance.NameSource.
func (f *MemoryFacade) DestinationsFor(id guidance.NameID) string { return f.nameRecord(id).Destination }

// ExitsFor implements guidance.NameSource. No junction:ref extraction is
// wired up, so exit numbers are always empty.
func (f *MemoryFacade) ExitsFor(id guidance.NameID) string { return "" }

// EdgeClasses implements DataFacade.
func (f *MemoryFacade) EdgeClasses(edge guidance.EdgeID) guidance.ClassData {
	class := guidance.RoadPriorityClass(f.g.EdgeClass[edge])
	return guidance.ClassData{
		RoadClass:     class,
		IsMotorway:    class == guidance.RoadClassMotorway,
		IsRampOrLink:  f.g.EdgeIsLink[edge],
		IsLowPriority: class >= guidance.RoadClassResidential,
	}
}

// EdgeLaneDescription implements DataFacade.
func (f *MemoryFacade) EdgeLaneDescription(edge guidance.EdgeID) guidance.LaneDescription {
	return guidance.ParseLaneDescription(f.g.EdgeTurnLanes[edge])
}

// OutgoingEdges implements guidance.IntersectionSource: every edge leaving
// node. The U-turn slot (index 0 of the resulting IntersectionView) is
// synthesized by BuildIntersection itself from the incoming edge, so no
// edge is excluded here.
func (f *MemoryFacade) OutgoingEdges(node guidance.NodeID, incoming guidance.EdgeID) []guidance.OutgoingEdge {
	start, end := f.g.EdgesFrom(node)
	out := make([]guidance.OutgoingEdge, 0, end-start)

	for e := start; e < end; e++ {
		out = append(out, guidance.OutgoingEdge{
			EdgeID:           e,
			InitialBearing:   f.bearingAlongEdge(node, e),
			PerceivedBearing: f.perceivedBearing(node, e),
			SegmentLength:    f.edgeLength(e),
			Name:             f.g.EdgeNameID[e],
			Mode:             guidance.TravelModeDriving,
			Classes:          f.EdgeClasses(e),
		})
	}
	return out
}

// NameIDOf exposes an edge's NameID, for callers outside this package (the
// routing engine's guided adapter) that need to build PathData directly.
func (f *MemoryFacade) NameIDOf(edge guidance.EdgeID) guidance.NameID {
	return f.g.EdgeNameID[edge]
}

// BearingAlongEdge exposes bearingAlongEdge for the routing engine's guided
// adapter, which needs the incoming bearing at a via-node to build an
// IntersectionView.
func (f *MemoryFacade) BearingAlongEdge(from guidance.NodeID, edge guidance.EdgeID) float64 {
	return f.bearingAlongEdge(from, edge)
}

func (f *MemoryFacade) bearingAlongEdge(from guidance.NodeID, edge guidance.EdgeID) float64 {
	to := f.g.Head[edge]
	a := guidance.FromPoint(orb.Point{f.g.NodeLon[from], f.g.NodeLat[from]})
	b := guidance.FromPoint(orb.Point{f.g.NodeLon[to], f.g.NodeLat[to]})
	return guidance.Bearing(a, b)
}

// perceivedBearing runs the representative-coordinate extractor over the
// edge's geometry (just the two endpoints in this facade, since the
// underlying graph stores one CSR edge per original OSM segment) to get
// the bearing a driver would perceive leaving the intersection.
func (f *MemoryFacade) perceivedBearing(from guidance.NodeID, edge guidance.EdgeID) float64 {
	to := f.g.Head[edge]
	a := guidance.FromPoint(orb.Point{f.g.NodeLon[from], f.g.NodeLat[from]})
	b := guidance.FromPoint(orb.Point{f.g.NodeLon[to], f.g.NodeLat[to]})
	classes := f.EdgeClasses(edge)
	rep := guidance.ExtractRepresentativeCoordinate([]guidance.Coordinate{a, b}, int(f.g.EdgeLanes[edge]), classes.IsLowPriority, f.g.EdgeRoundabout[edge])
	return guidance.Bearing(a, rep)
}

func (f *MemoryFacade) edgeLength(edge guidance.EdgeID) float64 {
	u := f.edgeSource(edge)
	v := f.g.Head[edge]
	return geo.Haversine(f.g.NodeLat[u], f.g.NodeLon[u], f.g.NodeLat[v], f.g.NodeLon[v])
}

// IsUTurnAllowed implements guidance.IntersectionSource: u-turns are
// allowed whenever the reverse edge exists in the graph (i.e. the road
// isn't oneway at this node).
func (f *MemoryFacade) IsUTurnAllowed(node guidance.NodeID, incoming guidance.EdgeID) bool {
	src := f.edgeSource(incoming)
	start, end := f.g.EdgesFrom(node)
	for e := start; e < end; e++ {
		if f.g.Head[e] == src {
			return true
		}
	}
	return false
}

// IsTurnAllowed implements guidance.IntersectionSource. The underlying
// graph carries no per-turn-restriction relations (turn:restriction
// relations are out of scope for the OSM extraction this facade sits on),
// so every structurally-present outgoing edge is considered allowed.
func (f *MemoryFacade) IsTurnAllowed(node guidance.NodeID, incoming, outgoing guidance.EdgeID) bool {
	return true
}

// ManeuverOverrides implements guidance.OverrideSource.
func (f *MemoryFacade) ManeuverOverrides(nodeSequence []guidance.NodeID) []guidance.ManeuverOverride {
	return f.overrides
}

// NearestEdge implements DataFacade, searching the rtree index with an
// expanding bounding box until at least one candidate is found, then
// picking the true nearest by perpendicular distance.
func (f *MemoryFacade) NearestEdge(lat, lon float64) (edge guidance.EdgeID, fromNode, toNode guidance.NodeID, ratio, distMeters float64, ok bool) {
	const maxRadiusDeg = 0.5 // ~55km at the equator; gives up beyond that

	best := math.Inf(1)
	var bestEdge uint32
	var bestFrom, bestTo uint32
	var bestRatio float64
	found := false

	for radius := 0.01; radius <= maxRadiusDeg; radius *= 2 {
		min := [2]float64{lon - radius, lat - radius}
		max := [2]float64{lon + radius, lat + radius}
		f.index.Search(min, max, func(_, _ [2]float64, e uint32) bool {
			u := f.edgeSource(e)
			v := f.g.Head[e]
			d, r := geo.PointToSegmentDist(lat, lon, f.g.NodeLat[u], f.g.NodeLon[u], f.g.NodeLat[v], f.g.NodeLon[v])
			if d < best {
				best = d
				bestEdge = e
				bestFrom = u
				bestTo = v
				bestRatio = r
				found = true
			}
			return true
		})
		if found {
			break
		}
	}

	if !found {
		return 0, 0, 0, 0, 0, false
	}
	return bestEdge, bestFrom, bestTo, bestRatio, best, true
}
