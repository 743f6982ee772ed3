package graph

import (
	"sort"

	"github.com/paulmach/osm"

	osmparser "map_router/pkg/osm"
)

// Build creates a CSR Graph from parsed OSM edges.
func Build(result *osmparser.ParseResult) *Graph {
	edges := result.Edges
	if len(edges) == 0 {
		return &Graph{}
	}

	// Step 1: Collect all unique node IDs and build a compact mapping.
	nodeSet := make(map[osm.NodeID]uint32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := uint32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	// Pre-collect all nodes referenced by edges.
	for i := range edges {
		addNode(edges[i].FromNodeID)
		addNode(edges[i].ToNodeID)
	}

	numNodes := uint32(len(nodeIDs))

	// Step 2: Build compact edge list with remapped indices.
	type compactEdge struct {
		from      uint32
		to        uint32
		weight    uint32
		shapeLats []float64
		shapeLons []float64

		name, ref, destination string
		class                  uint8
		isLink, isRoundabout   bool
		lanes                  uint8
		turnLanes              string
	}

	compact := make([]compactEdge, len(edges))
	for i, e := range edges {
		compact[i] = compactEdge{
			from:         nodeSet[e.FromNodeID],
			to:           nodeSet[e.ToNodeID],
			weight:       e.Weight,
			shapeLats:    e.ShapeLats,
			shapeLons:    e.ShapeLons,
			name:         e.Name,
			ref:          e.Ref,
			destination:  e.Destination,
			class:        classOrdinal(e.HighwayClass, e.IsLink),
			isLink:       e.IsLink,
			isRoundabout: e.IsRoundabout,
			lanes:        clampLanes(e.Lanes),
			turnLanes:    e.TurnLanesTag,
		}
	}

	// Step 3: Sort edges by source node.
	sort.Slice(compact, func(i, j int) bool {
		if compact[i].from != compact[j].from {
			return compact[i].from < compact[j].from
		}
		return compact[i].to < compact[j].to
	})

	// Step 4: Build CSR arrays.
	numEdges := uint32(len(compact))
	firstOut := make([]uint32, numNodes+1)
	head := make([]uint32, numEdges)
	weight := make([]uint32, numEdges)

	// Geometry arrays.
	geoFirstOut := make([]uint32, numEdges+1)
	var geoShapeLat, geoShapeLon []float64

	// Way metadata arrays. NameRecords deduplicates on the full
	// (name, ref, destination) tuple so two edges sharing all three strings
	// share a NameID, matching OSRM's name-table semantics.
	var nameRecords []NameRecord
	nameRecordIdx := make(map[NameRecord]uint32)
	internRecord := func(name, ref, destination string) uint32 {
		if name == "" && ref == "" && destination == "" {
			return NoName
		}
		rec := NameRecord{Name: name, Ref: ref, Destination: destination}
		if idx, ok := nameRecordIdx[rec]; ok {
			return idx
		}
		idx := uint32(len(nameRecords))
		nameRecords = append(nameRecords, rec)
		nameRecordIdx[rec] = idx
		return idx
	}

	edgeNameID := make([]uint32, numEdges)
	edgeClass := make([]uint8, numEdges)
	edgeIsLink := make([]bool, numEdges)
	edgeRoundabout := make([]bool, numEdges)
	edgeLanes := make([]uint8, numEdges)
	edgeTurnLanes := make([]string, numEdges)

	for i, e := range compact {
		head[i] = e.to
		weight[i] = e.weight
		geoFirstOut[i] = uint32(len(geoShapeLat))
		geoShapeLat = append(geoShapeLat, e.shapeLats...)
		geoShapeLon = append(geoShapeLon, e.shapeLons...)

		edgeNameID[i] = internRecord(e.name, e.ref, e.destination)
		edgeClass[i] = e.class
		edgeIsLink[i] = e.isLink
		edgeRoundabout[i] = e.isRoundabout
		edgeLanes[i] = e.lanes
		edgeTurnLanes[i] = e.turnLanes
	}
	geoFirstOut[numEdges] = uint32(len(geoShapeLat))

	// Build FirstOut via counting.
	for _, e := range compact {
		firstOut[e.from+1]++
	}
	// Prefix sum.
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Step 5: Populate node coordinates.
	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	osmNodeID := make([]int64, numNodes)
	for id, idx := range nodeSet {
		nodeLat[idx] = result.NodeLat[id]
		nodeLon[idx] = result.NodeLon[id]
		osmNodeID[idx] = int64(id)
	}

	return &Graph{
		NumNodes:        numNodes,
		NumEdges:        numEdges,
		FirstOut:        firstOut,
		Head:            head,
		Weight:          weight,
		NodeLat:         nodeLat,
		NodeLon:         nodeLon,
		OSMNodeID:       osmNodeID,
		GeoFirstOut:     geoFirstOut,
		GeoShapeLat:     geoShapeLat,
		GeoShapeLon:     geoShapeLon,
		NameRecords:    nameRecords,
		EdgeNameID:     edgeNameID,
		EdgeClass:      edgeClass,
		EdgeIsLink:     edgeIsLink,
		EdgeRoundabout: edgeRoundabout,
		EdgeLanes:      edgeLanes,
		EdgeTurnLanes:  edgeTurnLanes,
	}
}

// classOrdinal maps an OSM highway=* value to the same priority ordinal
// guidance.RoadPriorityClass uses (motorway=0 … service=6, link roads=7),
// kept in sync by convention rather than a shared import so this package
// has no dependency on the guidance layer.
func classOrdinal(highway string, isLink bool) uint8 {
	if isLink {
		return 7
	}
	switch highway {
	case "motorway":
		return 0
	case "trunk":
		return 1
	case "primary":
		return 2
	case "secondary":
		return 3
	case "tertiary":
		return 4
	case "residential", "living_street", "unclassified":
		return 5
	case "service":
		return 6
	default:
		return 5
	}
}

func clampLanes(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
