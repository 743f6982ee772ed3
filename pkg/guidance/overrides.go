package guidance

// ManeuverOverride is an operator-supplied correction to the instruction
// produced at one via-node, keyed on a from-edge-based-node sequence so it
// survives minor path variation around the override point.
type ManeuverOverride struct {
	ViaCoordinate Coordinate
	NodeSequence  []NodeID
	Type          TurnType
	Modifier      DirectionModifier
	OverrideType  bool // whether Type should replace the step's instruction
	OverrideMod   bool // whether Modifier should replace the step's instruction
}

// OverrideSource exposes operator-authored corrections for one leg.
type OverrideSource interface {
	ManeuverOverrides(nodeSequence []NodeID) []ManeuverOverride
}

// ApplyManeuverOverrides implements spec.md §4.G.1 / §4.J: match each
// override record against the step stream by via-node coordinate and
// replace the matched step's instruction fields.
func ApplyManeuverOverrides(steps []RouteStep, overrides []ManeuverOverride) []RouteStep {
	for _, ov := range overrides {
		for i := range steps {
			if !steps[i].Maneuver.Location.Equal(ov.ViaCoordinate) {
				continue
			}
			if ov.OverrideType {
				steps[i].Maneuver.Instruction.Type = ov.Type
			}
			if ov.OverrideMod {
				steps[i].Maneuver.Instruction.Modifier = ov.Modifier
			}
			break
		}
	}
	return steps
}
