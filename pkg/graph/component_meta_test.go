package graph

import (
	"testing"

	"github.com/paulmach/osm"

	osmparser "map_router/pkg/osm"
)

// TestFilterToComponentCarriesGuidanceMetadata guards against the CSR
// rebuild silently dropping the per-edge name/class/lane tables and
// per-node OSM IDs that the guidance facade depends on.
func TestFilterToComponentCarriesGuidanceMetadata(t *testing.T) {
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Weight: 100, Name: "Elm Street", HighwayClass: "residential", Lanes: 2, TurnLanesTag: "left|right"},
			{FromNodeID: 20, ToNodeID: 30, Weight: 200, Name: "Elm Street", HighwayClass: "residential"},
			{FromNodeID: 30, ToNodeID: 10, Weight: 300, Name: "Elm Street", HighwayClass: "residential"},
			// A disconnected sliver, dropped by LargestComponent.
			{FromNodeID: 40, ToNodeID: 50, Weight: 400},
		},
		NodeLat: map[osm.NodeID]float64{10: 1.0, 20: 1.1, 30: 1.2, 40: 2.0, 50: 2.1},
		NodeLon: map[osm.NodeID]float64{10: 103.0, 20: 103.1, 30: 103.2, 40: 104.0, 50: 104.1},
	}

	g := Build(result)
	nodes := LargestComponent(g)
	filtered := FilterToComponent(g, nodes)

	if len(filtered.NameRecords) == 0 {
		t.Fatal("NameRecords dropped by FilterToComponent")
	}
	if len(filtered.EdgeNameID) != int(filtered.NumEdges) {
		t.Fatalf("EdgeNameID length = %d, want %d", len(filtered.EdgeNameID), filtered.NumEdges)
	}
	if len(filtered.OSMNodeID) != int(filtered.NumNodes) {
		t.Fatalf("OSMNodeID length = %d, want %d", len(filtered.OSMNodeID), filtered.NumNodes)
	}

	// Every filtered edge should resolve back to "Elm Street" — the name
	// table must not have been reordered relative to EdgeNameID.
	for _, id := range filtered.EdgeNameID {
		if id == NoName {
			continue
		}
		if filtered.NameRecords[id].Name != "Elm Street" {
			t.Errorf("edge name = %q, want Elm Street", filtered.NameRecords[id].Name)
		}
	}

	// OSM node IDs for the surviving triangle should be exactly {10,20,30}.
	seen := map[int64]bool{}
	for _, id := range filtered.OSMNodeID {
		seen[id] = true
	}
	for _, want := range []int64{10, 20, 30} {
		if !seen[want] {
			t.Errorf("OSMNodeID %d missing after filter", want)
		}
	}
}

// TestCHGraphCarriesOriginalEdges guards the CHGraph.OrigFirstOut/OrigHead/
// OrigWeight fields: the facade and routing engine reconstruct a *Graph
// straight from a *CHGraph's original-edge arrays without re-running OSM
// ingestion. It builds a CHGraph literal from a Graph's arrays and checks
// the fields hold them; it does not run contraction.
func TestCHGraphCarriesOriginalEdges(t *testing.T) {
	g := &Graph{
		NumNodes: 2,
		NumEdges: 2,
		FirstOut: []uint32{0, 1, 2},
		Head:     []uint32{1, 0},
		Weight:   []uint32{100, 100},
		NodeLat:  []float64{1.0, 1.1},
		NodeLon:  []float64{103.0, 103.1},
	}
	chg := &CHGraph{
		NumNodes:     g.NumNodes,
		OrigFirstOut: g.FirstOut,
		OrigHead:     g.Head,
		OrigWeight:   g.Weight,
	}
	if len(chg.OrigHead) != int(g.NumEdges) {
		t.Fatalf("OrigHead length = %d, want %d", len(chg.OrigHead), g.NumEdges)
	}
	if chg.OrigWeight[0] != 100 {
		t.Errorf("OrigWeight[0] = %d, want 100", chg.OrigWeight[0])
	}
}
