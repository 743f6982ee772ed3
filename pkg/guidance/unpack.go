package guidance

// EdgeData describes one graph edge as seen by the edge unpacker: either a
// contracted shortcut (Shortcut=true, Middle names the via-node) or an
// original edge carrying the data needed to build a PathData entry.
type EdgeData struct {
	Shortcut bool
	Middle   NodeID
	Backward bool // true if this edge's direction is stored reversed
	Weight   uint32
}

// EdgeSource is the minimal slice of the DataFacade (spec.md §6.1) the edge
// unpacker needs: find_smallest_edge(u, v, pred).
type EdgeSource interface {
	// FindSmallestEdge returns the lowest-weight edge from `from` to `to`
	// whose data satisfies pred, or ok=false if none exists.
	FindSmallestEdge(from, to NodeID, pred func(EdgeData) bool) (EdgeID, EdgeData, bool)
}

// acceptAny is the default predicate used by the unpacker: any edge will do,
// mirroring the contract in spec.md §4.B ("find the smallest-weight edge").
func acceptAny(EdgeData) bool { return true }

type unpackPair struct {
	from, to NodeID
}

// UnpackEdge walks the contraction hierarchy between two overlay nodes,
// invoking cb for each original (non-shortcut) edge encountered, in travel
// order. It implements spec.md §4.B exactly: pairs are pushed onto a LIFO
// stack in reverse so the first pair popped is the first step; a missing
// edge in both directions is a data-structure invariant violation.
func UnpackEdge(ds EdgeSource, from, to NodeID, cb func(from, to NodeID, edge EdgeID, data EdgeData)) error {
	stack := []unpackPair{{from, to}}

	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		edge, data, ok := ds.FindSmallestEdge(pair.from, pair.to, acceptAny)
		if !ok {
			edge, data, ok = ds.FindSmallestEdge(pair.to, pair.from, acceptAny)
			if !ok {
				return ErrDataIntegrity
			}
			data.Backward = true
		}

		if !data.Shortcut {
			cb(pair.from, pair.to, edge, data)
			continue
		}

		m := data.Middle
		// Push (m,to) then (from,m) so from→m pops first.
		stack = append(stack, unpackPair{m, pair.to})
		stack = append(stack, unpackPair{pair.from, m})
	}

	return nil
}

// UnpackPath walks an entire overlay node sequence (a shortest path through
// the contracted graph), unpacking every shortcut edge along consecutive
// pairs into original edges, in travel order.
func UnpackPath(ds EdgeSource, path []NodeID, cb func(from, to NodeID, edge EdgeID, data EdgeData)) error {
	for i := 0; i+1 < len(path); i++ {
		if err := UnpackEdge(ds, path[i], path[i+1], cb); err != nil {
			return err
		}
	}
	return nil
}
