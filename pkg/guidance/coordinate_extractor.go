package guidance

import (
	"math"

	"github.com/paulmach/orb"

	"map_router/pkg/geo"
)

const laneWidthMeters = 3.25

// ExtractRepresentativeCoordinate implements spec.md §4.I: picks a
// coordinate along an outgoing edge's geometry that reflects how a human
// perceives the road leaving an intersection, rather than OSM's per-vertex
// modelling noise.
func ExtractRepresentativeCoordinate(geometry []Coordinate, laneCount int, isLowPriority, isRoundabout bool) Coordinate {
	pts := dedupe(geometry)
	if len(pts) <= 2 {
		return pts[len(pts)-1]
	}

	if isLowPriority || isRoundabout {
		return pointAlong(pts, 2.0)
	}

	farThreshold := float64(laneCount)*0.5*laneWidthMeters + 10.0
	if haversineCoord(pts[0], pts[1]) > farThreshold {
		return pts[1]
	}

	lookahead := 40.0 + float64(laneCount)*1.625
	truncated := truncateToDistance(pts, lookahead)

	maxDev := maxDeviationFromChord(truncated)
	if maxDev < 0.5*laneWidthMeters {
		return truncated[len(truncated)-1]
	}

	straightLen := float64(laneCount)*0.5*laneWidthMeters + 10.0
	if straightPortionLength(truncated, 0.25*laneWidthMeters) >= straightLen {
		return pointAlong(truncated, 5.0)
	}

	resampled := resample(truncated, 1.0)
	residual := regressionResidual(resampled)
	if residual < 0.35*laneWidthMeters {
		return offsetThroughOrigin(resampled, truncated[0])
	}

	if hasDirectOffset(truncated, laneWidthMeters) {
		return offsetCorrected(truncated)
	}

	if hasCurve(truncated, laneWidthMeters) {
		return pointAlong(truncated, 2.0)
	}

	return pointAlong(truncated, 10.0)
}

func dedupe(pts []Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(pts))
	for i, p := range pts {
		if i == 0 || !p.Equal(pts[i-1]) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return pts
	}
	return out
}

func haversineCoord(a, b Coordinate) float64 {
	ap, bp := a.Point(), b.Point()
	return geo.Haversine(ap[1], ap[0], bp[1], bp[0])
}

// pointAlong returns the point at `dist` meters along the polyline,
// interpolating the final segment if dist falls beyond the last vertex.
func pointAlong(pts []Coordinate, dist float64) Coordinate {
	if len(pts) == 0 {
		return Coordinate{}
	}
	remaining := dist
	for i := 0; i+1 < len(pts); i++ {
		segLen := haversineCoord(pts[i], pts[i+1])
		if remaining <= segLen || segLen == 0 {
			if segLen == 0 {
				return pts[i+1]
			}
			t := remaining / segLen
			return lerp(pts[i], pts[i+1], t)
		}
		remaining -= segLen
	}
	return pts[len(pts)-1]
}

func lerp(a, b Coordinate, t float64) Coordinate {
	ap, bp := a.Point(), b.Point()
	lon := ap[0] + t*(bp[0]-ap[0])
	lat := ap[1] + t*(bp[1]-ap[1])
	return FromPoint(orb.Point{lon, lat})
}

func truncateToDistance(pts []Coordinate, dist float64) []Coordinate {
	out := []Coordinate{pts[0]}
	remaining := dist
	for i := 0; i+1 < len(pts); i++ {
		segLen := haversineCoord(pts[i], pts[i+1])
		if segLen >= remaining {
			out = append(out, pointAlong(pts[i:], remaining))
			return out
		}
		remaining -= segLen
		out = append(out, pts[i+1])
	}
	return out
}

// maxDeviationFromChord returns the largest perpendicular distance from any
// point in pts to the chord connecting its first and last point.
func maxDeviationFromChord(pts []Coordinate) float64 {
	if len(pts) < 2 {
		return 0
	}
	a, b := pts[0], pts[len(pts)-1]
	var maxDev float64
	for _, p := range pts {
		d, _ := geo.PointToSegmentDist(p.Point()[1], p.Point()[0], a.Point()[1], a.Point()[0], b.Point()[1], b.Point()[0])
		if d > maxDev {
			maxDev = d
		}
	}
	return maxDev
}

// straightPortionLength returns the cumulative distance over which the
// polyline's deviation from its running chord stays under threshold.
func straightPortionLength(pts []Coordinate, threshold float64) float64 {
	if len(pts) < 2 {
		return 0
	}
	var dist float64
	for i := 1; i < len(pts); i++ {
		dist += haversineCoord(pts[i-1], pts[i])
		if maxDeviationFromChord(pts[:i+1]) > threshold {
			return dist - haversineCoord(pts[i-1], pts[i])
		}
	}
	return dist
}

// resample returns points along the polyline at uniform `step` meter
// intervals.
func resample(pts []Coordinate, step float64) []Coordinate {
	if len(pts) < 2 {
		return pts
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += haversineCoord(pts[i-1], pts[i])
	}
	n := int(total / step)
	if n < 2 {
		return pts
	}
	out := make([]Coordinate, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, pointAlong(pts, float64(i)*step))
	}
	return out
}

// regressionResidual fits a least-squares line through pts (in a local
// equirectangular projection) and returns the max residual distance.
func regressionResidual(pts []Coordinate) float64 {
	if len(pts) < 2 {
		return 0
	}
	n := float64(len(pts))
	var sx, sy, sxx, sxy float64
	origin := pts[0].Point()
	cosLat := math.Cos(origin[1] * math.Pi / 180)
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		pp := p.Point()
		xs[i] = (pp[0] - origin[0]) * cosLat * 111320
		ys[i] = (pp[1] - origin[1]) * 110540
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	denom := n*sxx - sx*sx
	if denom == 0 {
		return 0
	}
	slope := (n*sxy - sx*sy) / denom
	intercept := (sy - slope*sx) / n

	var maxResidual float64
	for i := range pts {
		predicted := slope*xs[i] + intercept
		res := math.Abs(ys[i] - predicted)
		if res > maxResidual {
			maxResidual = res
		}
	}
	return maxResidual
}

// offsetThroughOrigin returns the far endpoint of the resampled polyline
// (intersectionNode when it is empty). It fits no regression line and does
// not offset anything toward the intersection node.
func offsetThroughOrigin(resampled []Coordinate, intersectionNode Coordinate) Coordinate {
	if len(resampled) == 0 {
		return intersectionNode
	}
	return resampled[len(resampled)-1]
}

// hasDirectOffset detects an initial jog smaller than one lane width
// followed by a near-straight remainder.
func hasDirectOffset(pts []Coordinate, laneWidth float64) bool {
	if len(pts) < 3 {
		return false
	}
	jog, _ := geo.PointToSegmentDist(pts[1].Point()[1], pts[1].Point()[0], pts[0].Point()[1], pts[0].Point()[0], pts[len(pts)-1].Point()[1], pts[len(pts)-1].Point()[0])
	return jog < laneWidth && maxDeviationFromChord(pts[1:]) < 0.5*laneWidth
}

func offsetCorrected(pts []Coordinate) Coordinate {
	return pts[len(pts)-1]
}

// hasCurve detects monotonic deviation to a single maximum on the same side
// of the chord, with a combined turn angle exceeding half the narrow-turn
// threshold (taken as 30 degrees, i.e. threshold 15).
func hasCurve(pts []Coordinate, laneWidth float64) bool {
	if len(pts) < 3 {
		return false
	}
	a, b := pts[0], pts[len(pts)-1]
	var prevSign int
	var maxDev float64
	for _, p := range pts[1 : len(pts)-1] {
		d, _ := geo.PointToSegmentDist(p.Point()[1], p.Point()[0], a.Point()[1], a.Point()[0], b.Point()[1], b.Point()[0])
		sign := sideOfLine(a, b, p)
		if prevSign != 0 && sign != 0 && sign != prevSign {
			return false // flips sides: not a simple curve
		}
		if sign != 0 {
			prevSign = sign
		}
		if d > maxDev {
			maxDev = d
		}
	}
	totalAngle := angleBetween(bearingFromCoordinates(pts[0], pts[1]), bearingFromCoordinates(pts[len(pts)-2], pts[len(pts)-1]))
	return maxDev > 0 && totalAngle > 15
}

func sideOfLine(a, b, p Coordinate) int {
	ap, bp, pp := a.Point(), b.Point(), p.Point()
	cross := (bp[0]-ap[0])*(pp[1]-ap[1]) - (bp[1]-ap[1])*(pp[0]-ap[0])
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}
