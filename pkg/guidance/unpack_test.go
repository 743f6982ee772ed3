package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeEdgeSource is a tiny hand-built contraction hierarchy: a single
// shortcut edge 1->3 expands to the two original edges 1->2 and 2->3.
type fakeEdgeSource struct {
	// forward[from][to] is the edge stored in the forward direction.
	forward map[[2]NodeID]EdgeData
}

func (f *fakeEdgeSource) FindSmallestEdge(from, to NodeID, pred func(EdgeData) bool) (EdgeID, EdgeData, bool) {
	d, ok := f.forward[[2]NodeID{from, to}]
	if !ok || !pred(d) {
		return 0, EdgeData{}, false
	}
	return EdgeID(from<<16 | to), d, true
}

func TestUnpackEdgeDirectOriginalEdge(t *testing.T) {
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{
		{1, 2}: {Weight: 10},
	}}

	var calls []unpackPair
	err := UnpackEdge(src, 1, 2, func(from, to NodeID, edge EdgeID, data EdgeData) {
		calls = append(calls, unpackPair{from, to})
	})
	assert.NoError(t, err)
	if assert.Len(t, calls, 1) {
		assert.Equal(t, unpackPair{1, 2}, calls[0])
	}
}

func TestUnpackEdgeExpandsShortcutInTravelOrder(t *testing.T) {
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{
		{1, 3}: {Shortcut: true, Middle: 2, Weight: 20},
		{1, 2}: {Weight: 10},
		{2, 3}: {Weight: 10},
	}}

	var order []unpackPair
	err := UnpackEdge(src, 1, 3, func(from, to NodeID, edge EdgeID, data EdgeData) {
		order = append(order, unpackPair{from, to})
	})
	assert.NoError(t, err)
	assert.Equal(t, []unpackPair{{1, 2}, {2, 3}}, order)
}

func TestUnpackEdgeFallsBackToBackwardEdge(t *testing.T) {
	// Only the reverse direction 2->1 is stored; UnpackEdge must find it
	// and mark data.Backward.
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{
		{2, 1}: {Weight: 5},
	}}

	var gotBackward bool
	err := UnpackEdge(src, 1, 2, func(from, to NodeID, edge EdgeID, data EdgeData) {
		gotBackward = data.Backward
	})
	assert.NoError(t, err)
	assert.True(t, gotBackward)
}

func TestUnpackEdgeMissingEdgeIsDataIntegrityError(t *testing.T) {
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{}}
	err := UnpackEdge(src, 1, 2, func(NodeID, NodeID, EdgeID, EdgeData) {})
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestUnpackPathWalksConsecutivePairs(t *testing.T) {
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{
		{1, 2}: {Weight: 10},
		{2, 3}: {Weight: 10},
		{3, 4}: {Weight: 10},
	}}

	var order []unpackPair
	err := UnpackPath(src, []NodeID{1, 2, 3, 4}, func(from, to NodeID, edge EdgeID, data EdgeData) {
		order = append(order, unpackPair{from, to})
	})
	assert.NoError(t, err)
	assert.Equal(t, []unpackPair{{1, 2}, {2, 3}, {3, 4}}, order)
}

// TestUnpackEdgeRoundTrip verifies spec.md invariant 6: unpacking a packed
// path then repacking via original-edge concatenation yields the same edge
// sequence as a direct walk of the original edges.
func TestUnpackEdgeRoundTrip(t *testing.T) {
	src := &fakeEdgeSource{forward: map[[2]NodeID]EdgeData{
		{1, 4}: {Shortcut: true, Middle: 2, Weight: 30},
		{1, 2}: {Weight: 10},
		{2, 4}: {Shortcut: true, Middle: 3, Weight: 20},
		{2, 3}: {Weight: 10},
		{3, 4}: {Weight: 10},
	}}

	var repacked []unpackPair
	err := UnpackEdge(src, 1, 4, func(from, to NodeID, edge EdgeID, data EdgeData) {
		repacked = append(repacked, unpackPair{from, to})
	})
	assert.NoError(t, err)
	assert.Equal(t, []unpackPair{{1, 2}, {2, 3}, {3, 4}}, repacked)
}
