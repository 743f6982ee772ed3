package guidance

import "strings"

// laneTagByOSMValue maps OSM turn:lanes per-lane values to TurnLaneTag.
// A lane carrying multiple semicolon-separated values (e.g.
// "through;right") keeps only the first — OSRM's lane matcher treats such
// lanes as their primary indication for quality scoring.
var laneTagByOSMValue = map[string]TurnLaneTag{
	"":               LaneStraight, // OSM's "none"/empty slot reads as through
	"none":           LaneStraight,
	"through":        LaneStraight,
	"left":           LaneLeft,
	"slight_left":    LaneSlightLeft,
	"sharp_left":     LaneSharpLeft,
	"right":          LaneRight,
	"slight_right":   LaneSlightRight,
	"sharp_right":    LaneSharpRight,
	"reverse":        LaneUTurn,
	"merge_to_left":  LaneMergeToLeft,
	"merge_to_right": LaneMergeToRight,
}

// ParseLaneDescription parses an OSM turn:lanes value ("left|through|through|right")
// into one tag per lane, left to right as OSM orders them.
func ParseLaneDescription(tag string) LaneDescription {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, "|")
	out := make(LaneDescription, 0, len(parts))
	for _, p := range parts {
		first := p
		if idx := strings.IndexByte(p, ';'); idx >= 0 {
			first = p[:idx]
		}
		t, ok := laneTagByOSMValue[strings.TrimSpace(first)]
		if !ok {
			t = LaneStraight
		}
		out = append(out, t)
	}
	return out
}
