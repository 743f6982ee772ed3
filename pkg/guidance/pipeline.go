package guidance

// PostProcess runs the full §4.G pipeline over one leg's assembled steps,
// in the order G.1 … G.10. The order is load-bearing: roundabout handling
// assumes un-trimmed geometry, and instruction collapsing assumes
// roundabouts have already been resolved.
func PostProcess(steps []RouteStep, geom LegGeometry, overrides []ManeuverOverride, inputSource, inputTarget Coordinate, c Config) ([]RouteStep, LegGeometry) {
	steps = ApplyManeuverOverrides(steps, overrides)           // G.1
	steps = CollapseSegregatedTurns(steps)                      // G.2
	steps = HandleRoundabouts(steps)                            // G.3
	steps = TrimShortSegments(steps, &geom)                     // G.4
	steps = CollapseTurnInstructions(steps, c.MaxCollapseDistance) // G.5
	steps = AnticipateLaneChanges(steps)                        // G.7
	steps = BuildIntersectionsAndSuppressShortNames(steps, c)   // G.8
	steps = AssignRelativeDepartArriveLocations(steps, inputSource, inputTarget) // G.9
	geom = ResyncGeometry(geom, steps)                          // G.10
	return steps, geom
}
