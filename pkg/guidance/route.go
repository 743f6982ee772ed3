package guidance

// AssembleRouteLeg sums a leg's steps into its aggregate distance, duration
// and weight, and picks a two-name driver-facing summary, per spec.md §4.H.
func AssembleRouteLeg(steps []RouteStep) RouteLeg {
	leg := RouteLeg{Steps: steps}
	for _, s := range steps {
		leg.Distance += s.Distance
		leg.Duration += s.Duration
		leg.Weight += s.Weight
	}
	leg.Summary = summarize(steps)
	return leg
}

// summarize picks up to two distinct, non-empty street names from the
// leg's longest steps, joined as a driver-facing route summary.
func summarize(steps []RouteStep) string {
	type named struct {
		name string
		dist float64
	}
	var best []named
	seen := map[string]bool{}
	for _, s := range steps {
		if s.Name == "" || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		best = append(best, named{s.Name, s.Distance})
	}
	for i := 0; i < len(best); i++ {
		for j := i + 1; j < len(best); j++ {
			if best[j].dist > best[i].dist {
				best[i], best[j] = best[j], best[i]
			}
		}
	}
	switch {
	case len(best) == 0:
		return ""
	case len(best) == 1:
		return best[0].name
	default:
		return best[0].name + ", " + best[1].name
	}
}

// AssembleRoute implements spec.md §4.H: sums leg aggregates into the
// top-level route total. No additional logic.
func AssembleRoute(legs []RouteLeg) Route {
	var r Route
	for _, leg := range legs {
		r.Distance += leg.Distance
		r.Duration += leg.Duration
		r.Weight += leg.Weight
	}
	return r
}
