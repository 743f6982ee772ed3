package guidance

// NameSource resolves display strings by NameID, the slice of the
// DataFacade the step assembler needs.
type NameSource interface {
	NameFor(NameID) string
	RefFor(NameID) string
	PronunciationFor(NameID) string
	DestinationsFor(NameID) string
	ExitsFor(NameID) string
}

// AssembleSteps emits one RouteStep per named segment between turns, plus
// synthetic Depart and Arrive steps bracketing the leg, per spec.md §4.D.
func AssembleSteps(names NameSource, geomSrc GeometrySource, path []PathData, geom *LegGeometry, source, target PhantomNode, sourceReversed bool, weightMultiplier float64) []RouteStep {
	var steps []RouteStep

	bearingAfterDepart := 0.0
	if len(geom.Locations) >= 2 {
		bearingAfterDepart = bearingFromCoordinates(geom.Locations[0], geom.Locations[1])
	}

	depart := RouteStep{
		Mode: TravelModeDriving,
		Maneuver: StepManeuver{
			Location:      geom.Locations[0],
			BearingBefore: 0,
			BearingAfter:  bearingAfterDepart,
			Instruction:   TurnInstruction{Type: NoTurn, Modifier: Straight},
			WaypointType:  WaypointDepart,
		},
		GeometryBegin: 0,
		Intersections: []IntermediateIntersection{{
			Location: geom.Locations[0],
			Bearings: []float64{bearingAfterDepart},
			Entry:    []bool{true},
			In:       -1,
			Out:      0,
		}},
	}

	if len(path) == 0 {
		// Single-edge leg: one step for the whole on-edge segment.
		dur := float64(target.ForwardDuration) - float64(source.ForwardDuration)
		if dur < 0 {
			dur = 0
		}
		weight := float64(target.ForwardWeight)/weightMultiplier - float64(source.ForwardWeight)/weightMultiplier
		depart.GeometryEnd = len(geom.Locations) - 1
		depart.Distance = geom.SegmentDistances[0]
		depart.Duration = dur
		depart.Weight = weight
		steps = append(steps, depart)
	} else {
		current := depart
		segmentIdx := 0
		var accDuration, accWeight float64

		var lastNameID NameID
		for _, p := range path {
			accDuration += float64(p.DurationUntilTurn) / 10.0
			accWeight += float64(p.WeightUntilTurn) / weightMultiplier
			lastNameID = p.NameID

			if p.TurnInstruction.Type != NoTurn {
				current.NameID = p.NameID
				current.Name = names.NameFor(p.NameID)
				current.Ref = names.RefFor(p.NameID)
				current.Pronunciation = names.PronunciationFor(p.NameID)
				current.Destinations = names.DestinationsFor(p.NameID)
				current.Exits = names.ExitsFor(p.NameID)
				current.Mode = p.TravelMode
				current.IsSegregated = p.IsSegregated
				current.IsLeftHandDriving = p.IsLeftHandDriving
				if segmentIdx < len(geom.SegmentDistances) {
					current.Distance = geom.SegmentDistances[segmentIdx]
				}
				current.Duration = accDuration - float64(p.DurationOfTurn)/10.0
				current.Weight = accWeight - float64(p.WeightOfTurn)/weightMultiplier
				prevEnd := geom.SegmentOffsets[segmentIdx+1]
				current.GeometryEnd = prevEnd

				steps = append(steps, current)
				segmentIdx++
				accDuration = 0
				accWeight = 0

				turnCoord := geomSrc.CoordOf(p.TurnViaNode)
				current = RouteStep{
					Mode: p.TravelMode,
					Maneuver: StepManeuver{
						Location:      turnCoord,
						BearingBefore: p.PreTurnBearing,
						BearingAfter:  p.PostTurnBearing,
						Instruction:   p.TurnInstruction,
					},
					GeometryBegin: prevEnd,
				}
			}
		}

		// Freeze the tail step, from the last turn (or depart) to the
		// target — it carries the name of whichever road we're still on.
		current.NameID = lastNameID
		current.Name = names.NameFor(lastNameID)
		current.Ref = names.RefFor(lastNameID)
		current.Pronunciation = names.PronunciationFor(lastNameID)
		current.Destinations = names.DestinationsFor(lastNameID)
		current.Exits = names.ExitsFor(lastNameID)
		if segmentIdx < len(geom.SegmentDistances) {
			current.Distance = geom.SegmentDistances[segmentIdx]
		}
		current.Duration = accDuration
		current.Weight = accWeight
		current.GeometryEnd = len(geom.Locations) - 1
		steps = append(steps, current)
	}

	bearingBeforeArrive := 0.0
	if len(geom.Locations) >= 2 {
		n := len(geom.Locations)
		bearingBeforeArrive = bearingFromCoordinates(geom.Locations[n-2], geom.Locations[n-1])
	}

	arrive := RouteStep{
		Mode: TravelModeDriving,
		Maneuver: StepManeuver{
			Location:      geom.Locations[len(geom.Locations)-1],
			BearingBefore: bearingBeforeArrive,
			BearingAfter:  0,
			Instruction:   TurnInstruction{Type: NoTurn, Modifier: Straight},
			WaypointType:  WaypointArrive,
		},
		GeometryBegin: len(geom.Locations) - 1,
		GeometryEnd:   len(geom.Locations) - 1,
		Intersections: []IntermediateIntersection{{
			Location: geom.Locations[len(geom.Locations)-1],
			Bearings: []float64{bearingBeforeArrive},
			Entry:    []bool{true},
			In:       0,
			Out:      -1,
		}},
	}
	steps = append(steps, arrive)

	return steps
}
