package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSliproadThresholdAreaByClass pins sliproadThresholdFactor's magnitudes
// against the scaledThresholdByRoadClass source it is grounded on: area
// bounds are (maxThreshold*factor)^2, at the default 60m maxThreshold.
func TestSliproadThresholdAreaByClass(t *testing.T) {
	const maxThreshold = 60.0
	cases := []struct {
		class   RoadPriorityClass
		maxArea float64
	}{
		{RoadClassMotorway, 3600.0},
		{RoadClassTrunk, 2304.0},
		{RoadClassPrimary, 2304.0},
		{RoadClassSecondary, 1296.0},
		{RoadClassTertiary, 900.0},
		{RoadClassResidential, 576.0},
		{RoadClassService, 324.0},
		{RoadClassLinkRoad, 324.0},
	}
	for _, c := range cases {
		candidate := SliproadCandidate{Length: 20, TriangleArea: c.maxArea - 1, PriorityClass: c.class}
		assert.True(t, IsSliproad(candidate, 30, maxThreshold), "class=%v just under area bound should accept", c.class)

		tooBig := SliproadCandidate{Length: 20, TriangleArea: c.maxArea + 1, PriorityClass: c.class}
		assert.False(t, IsSliproad(tooBig, 30, maxThreshold), "class=%v just over area bound should reject", c.class)
	}
}

// TestSliproadThresholdOrderingMatchesSource pins the per-class ordering:
// higher-priority road classes get a larger area allowance, never smaller,
// which is the defect the fabricated table had backwards.
func TestSliproadThresholdOrderingMatchesSource(t *testing.T) {
	order := []RoadPriorityClass{
		RoadClassLinkRoad, RoadClassService, RoadClassResidential,
		RoadClassTertiary, RoadClassSecondary, RoadClassPrimary, RoadClassTrunk, RoadClassMotorway,
	}
	var prev float64
	for _, class := range order {
		area := (60.0 * sliproadThresholdFactor[class]) * (60.0 * sliproadThresholdFactor[class])
		assert.GreaterOrEqual(t, area, prev, "class=%v must not have a smaller area bound than the previous, lower-priority class", class)
		prev = area
	}
}

func TestIsSliproadRejectsLongLinks(t *testing.T) {
	c := SliproadCandidate{Length: 100, TriangleArea: 100, PriorityClass: RoadClassResidential}
	assert.False(t, IsSliproad(c, 30, 60))
}

func TestIsSliproadRejectsThroughStreets(t *testing.T) {
	c := SliproadCandidate{Length: 20, TriangleArea: 100, PriorityClass: RoadClassResidential, IsThroughStreet: true}
	assert.False(t, IsSliproad(c, 30, 60))
}

func TestIsSliproadRejectsTinyArea(t *testing.T) {
	c := SliproadCandidate{Length: 20, TriangleArea: 1.0, PriorityClass: RoadClassResidential}
	assert.False(t, IsSliproad(c, 30, 60))
}

func TestDemoteAdjacentFork(t *testing.T) {
	assert.Equal(t, Continue, DemoteAdjacentFork("Main St", "Main St"))
	assert.Equal(t, Suppressed, DemoteAdjacentFork("Main St", ""))
	assert.Equal(t, NewName, DemoteAdjacentFork("Main St", "Oak Ave"))
}
