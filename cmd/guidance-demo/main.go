package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"map_router/pkg/ch"
	"map_router/pkg/facade"
	"map_router/pkg/graph"
	"map_router/pkg/guidance"
	osmparser "map_router/pkg/osm"
	"map_router/pkg/routing"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	startLat := flag.Float64("start-lat", 0, "Start point latitude")
	startLng := flag.Float64("start-lng", 0, "Start point longitude")
	endLat := flag.Float64("end-lat", 0, "End point latitude")
	endLng := flag.Float64("end-lng", 0, "End point longitude")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: guidance-demo --input <file.osm.pbf> --start-lat .. --start-lng .. --end-lat .. --end-lng ..")
		os.Exit(1)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("parsing OSM data...")
	parseResult, err := osmparser.Parse(context.Background(), f)
	if err != nil {
		log.Fatalf("failed to parse OSM data: %v", err)
	}
	log.Printf("parsed %d edges, %d nodes", len(parseResult.Edges), len(parseResult.NodeLat))

	log.Println("building graph...")
	g := graph.Build(parseResult)

	log.Println("extracting largest connected component...")
	componentNodes := graph.LargestComponent(g)
	g = graph.FilterToComponent(g, componentNodes)
	log.Printf("filtered graph: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	log.Println("running contraction hierarchies...")
	chg := ch.Contract(g)

	origGraph := &graph.Graph{
		NumNodes:       chg.NumNodes,
		NumEdges:       uint32(len(chg.OrigHead)),
		FirstOut:       chg.OrigFirstOut,
		Head:           chg.OrigHead,
		Weight:         chg.OrigWeight,
		NodeLat:        chg.NodeLat,
		NodeLon:        chg.NodeLon,
		OSMNodeID:      g.OSMNodeID,
		GeoFirstOut:    chg.GeoFirstOut,
		GeoShapeLat:    chg.GeoShapeLat,
		GeoShapeLon:    chg.GeoShapeLon,
		NameRecords:    g.NameRecords,
		EdgeNameID:     g.EdgeNameID,
		EdgeClass:      g.EdgeClass,
		EdgeIsLink:     g.EdgeIsLink,
		EdgeRoundabout: g.EdgeRoundabout,
		EdgeLanes:      g.EdgeLanes,
		EdgeTurnLanes:  g.EdgeTurnLanes,
	}

	fc := facade.NewMemoryFacade(origGraph, nil)
	engine := routing.NewEngine(chg, origGraph)

	start := routing.LatLng{Lat: *startLat, Lng: *startLng}
	end := routing.LatLng{Lat: *endLat, Lng: *endLng}

	result, err := engine.RouteGuided(context.Background(), fc, start, end)
	if err != nil {
		log.Fatalf("routing failed: %v", err)
	}

	printLeg(result.Leg)
}

func printLeg(leg guidance.RouteLeg) {
	fmt.Printf("distance: %.0f m, duration: %.0f s\n\n", leg.Distance, leg.Duration)
	for i, step := range leg.Steps {
		name := step.Name
		if name == "" {
			name = step.Ref
		}
		fmt.Printf("%2d. %-14s %-30s %7.0f m\n", i+1, step.Maneuver.Instruction.Type, name, step.Distance)
	}
}
