package routing

import (
	"context"
	"math"

	"github.com/paulmach/orb"

	"map_router/pkg/facade"
	"map_router/pkg/graph"
	"map_router/pkg/guidance"
)

// GuidedResult is the turn-by-turn output of RouteGuided.
type GuidedResult struct {
	Route guidance.Route
	Leg   guidance.RouteLeg
}

// classSpeedMetersPerSecond is a rough free-flow speed table by road
// priority class, used only to turn the CH's distance-based edge weight
// into a duration estimate for guidance annotations — this graph carries
// no measured or tagged speeds (maxspeed extraction is out of scope), so
// duration is always derived, never authoritative.
var classSpeedMetersPerSecond = [...]float64{
	guidance.RoadClassMotorway:    27.0, // ~97 km/h
	guidance.RoadClassTrunk:       22.0,
	guidance.RoadClassPrimary:     18.0,
	guidance.RoadClassSecondary:   15.0,
	guidance.RoadClassTertiary:    12.0,
	guidance.RoadClassResidential: 8.0,
	guidance.RoadClassService:     5.0,
	guidance.RoadClassLinkRoad:    12.0,
}

func classSpeed(class guidance.RoadPriorityClass) float64 {
	if int(class) < len(classSpeedMetersPerSecond) {
		return classSpeedMetersPerSecond[class]
	}
	return 10.0
}

// weightMetersPerUnit converts the CH's millimeter edge weight into meters.
const weightMetersPerUnit = 1000.0

// RouteGuided computes the shortest path between start and end and
// assembles full turn-by-turn guidance over it, using fc for graph/name/
// intersection data. It reuses the same bidirectional CH search as Route;
// only the output stage differs.
func (e *Engine) RouteGuided(ctx context.Context, fc *facade.MemoryFacade, start, end LatLng) (*GuidedResult, error) {
	startSnap, err := e.snapper.Snap(start.Lat, start.Lng)
	if err != nil {
		return nil, err
	}
	endSnap, err := e.snapper.Snap(end.Lat, end.Lng)
	if err != nil {
		return nil, err
	}

	qs := e.qsPool.Get().(*QueryState)
	defer func() {
		qs.Reset()
		e.qsPool.Put(qs)
	}()

	seedForward(qs, e.origGraph, startSnap)
	seedBackward(qs, e.origGraph, endSnap)

	mu, meetNode := e.runCHDijkstra(ctx, qs)
	if meetNode == noNode || mu == math.MaxUint32 {
		return nil, ErrNoRoute
	}

	overlayNodes := e.reconstructOverlayPath(meetNode, qs.PredFwd, qs.PredBwd)
	origNodes := unpackOverlayPath(e.chg, overlayNodes)
	if len(origNodes) < 2 {
		return nil, ErrNoRoute
	}

	source := buildPhantom(e.origGraph, startSnap)
	target := buildPhantom(e.origGraph, endSnap)

	path := buildPathData(e.origGraph, fc, origNodes)

	geom := guidance.AssembleLegGeometry(fc, path, source, target, false, false, weightMetersPerUnit)
	steps := guidance.AssembleSteps(fc, fc, path, geom, source, target, false, weightMetersPerUnit)

	cfg := guidance.DefaultConfig()
	overrides := fc.ManeuverOverrides(origNodes)
	steps, _ = guidance.PostProcess(steps, *geom, overrides, source.Location, target.Location, cfg)

	leg := guidance.AssembleRouteLeg(steps)
	route := guidance.AssembleRoute([]guidance.RouteLeg{leg})

	return &GuidedResult{Route: route, Leg: leg}, nil
}

// buildPhantom constructs a PhantomNode for a snapped query point: its
// location along the edge, and the forward weight/duration consumed from
// the edge's source node up to the snap point (the quantity the leg
// geometry/step assemblers need for the zero-via-node single-edge case).
func buildPhantom(g *graph.Graph, snap SnapResult) guidance.PhantomNode {
	weight := g.Weight[snap.EdgeIdx]
	class := guidance.RoadPriorityClass(g.EdgeClass[snap.EdgeIdx])
	speed := classSpeed(class)

	fwdWeight := uint32(math.Round(float64(weight) * snap.Ratio))
	fwdDistMeters := float64(fwdWeight) / weightMetersPerUnit
	fwdDuration := uint32(math.Round(fwdDistMeters / speed * 10)) // deciseconds

	u, v := snap.NodeU, snap.NodeV
	uPt := guidance.FromPoint(orb.Point{g.NodeLon[u], g.NodeLat[u]})
	vPt := guidance.FromPoint(orb.Point{g.NodeLon[v], g.NodeLat[v]})
	loc := guidance.FromPoint(lerpPoint(uPt.Point(), vPt.Point(), snap.Ratio))

	p := guidance.PhantomNode{
		ForwardSegment:  guidance.SegmentID{ID: snap.EdgeIdx, Enabled: true},
		ForwardWeight:   fwdWeight,
		ForwardDuration: fwdDuration,
		ForwardDistance: fwdDistMeters,
		Location:        loc,
		InputLocation:   loc,
	}
	p.SetSourceValidForward(true)
	p.SetTargetValidForward(true)
	p.SetBearing(guidance.Bearing(uPt, vPt))
	return p
}

func lerpPoint(a, b orb.Point, t float64) orb.Point {
	return [2]float64{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

// buildPathData walks the fully-unpacked original-node path and produces
// one PathData entry per interior via-node, classifying the turn taken at
// each one against the facade's intersection view.
func buildPathData(g *graph.Graph, fc *facade.MemoryFacade, nodes []uint32) []guidance.PathData {
	if len(nodes) <= 2 {
		return nil
	}

	path := make([]guidance.PathData, 0, len(nodes)-2)
	for i := 1; i < len(nodes)-1; i++ {
		prevNode, viaNode, nextNode := nodes[i-1], nodes[i], nodes[i+1]

		inEdge := findEdge(g.FirstOut, g.Head, prevNode, viaNode)
		outEdge := findEdge(g.FirstOut, g.Head, viaNode, nextNode)
		if inEdge == noNode || outEdge == noNode {
			continue
		}

		incomingBearing := fc.BearingAlongEdge(prevNode, inEdge)
		view := guidance.BuildIntersection(fc, viaNode, inEdge, incomingBearing, false)

		numMotorwayExits := 0
		for _, r := range view.Roads[1:] {
			if r.Classes.IsMotorway {
				numMotorwayExits++
			}
		}
		inClasses := fc.EdgeClasses(inEdge)
		view = guidance.ClassifyIntersection(view, inClasses, fc.NameIDOf(inEdge), numMotorwayExits)
		// This facade's OSM ingestion doesn't yet tag ferry/rail ways, so
		// every edge reports TravelModeDriving and this is a no-op today;
		// the call site is wired so a future mode-tagging facade only
		// needs to supply the real incoming mode here.
		view = guidance.SuppressUniformTravelMode(view, guidance.TravelModeDriving)

		instr := guidance.TurnInstruction{Type: guidance.NoTurn, Modifier: guidance.Straight}
		postBearing := incomingBearing
		for _, r := range view.Roads {
			if r.EdgeID == outEdge {
				instr = r.Instruction
				postBearing = r.Bearing
				break
			}
		}

		weight := g.Weight[inEdge]
		distMeters := float64(weight) / weightMetersPerUnit
		duration := uint32(math.Round(distMeters / classSpeed(inClasses.RoadClass) * 10))

		path = append(path, guidance.PathData{
			TurnViaNode:       viaNode,
			NameID:            fc.NameIDOf(inEdge),
			DurationUntilTurn: duration,
			WeightUntilTurn:   weight,
			TurnInstruction:   instr,
			LaneDataID:        guidance.SpecialSegmentID,
			TravelMode:        guidance.TravelModeDriving,
			Classes:           inClasses,
			PreTurnBearing:    incomingBearing,
			PostTurnBearing:   postBearing,
		})
	}
	return path
}
