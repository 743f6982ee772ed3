package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleRouteLegSumsStepsAndSummarizes(t *testing.T) {
	steps := []RouteStep{
		{Name: "Main St", Distance: 100, Duration: 10, Weight: 10},
		{Name: "Oak Ave", Distance: 200, Duration: 20, Weight: 20},
		{Name: "", Distance: 5, Duration: 1, Weight: 1},
	}
	leg := AssembleRouteLeg(steps)
	assert.InDelta(t, 305.0, leg.Distance, 1e-9)
	assert.InDelta(t, 31.0, leg.Duration, 1e-9)
	assert.InDelta(t, 31.0, leg.Weight, 1e-9)
	assert.Equal(t, "Oak Ave, Main St", leg.Summary)
}

func TestSummarizeSkipsDuplicateAndEmptyNames(t *testing.T) {
	steps := []RouteStep{
		{Name: "Main St", Distance: 50},
		{Name: "Main St", Distance: 500},
		{Name: "", Distance: 1000},
	}
	assert.Equal(t, "Main St", summarize(steps))
}

func TestSummarizeEmptyWhenNoNamedSteps(t *testing.T) {
	steps := []RouteStep{{Name: "", Distance: 10}}
	assert.Equal(t, "", summarize(steps))
}

func TestAssembleRouteSumsLegs(t *testing.T) {
	legs := []RouteLeg{
		{Distance: 100, Duration: 10, Weight: 10},
		{Distance: 50, Duration: 5, Weight: 5},
	}
	route := AssembleRoute(legs)
	assert.InDelta(t, 150.0, route.Distance, 1e-9)
	assert.InDelta(t, 15.0, route.Duration, 1e-9)
	assert.InDelta(t, 15.0, route.Weight, 1e-9)
}
