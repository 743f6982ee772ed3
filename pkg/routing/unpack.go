package routing

import "map_router/pkg/graph"

const maxUnpackDepth = 100

const noNode = ^uint32(0) // sentinel for "no node"

// unpackOverlayPath expands a reconstructed CH overlay node path (source,
// ..., meetNode, ..., target) into the full original-graph node sequence,
// resolving every shortcut hop's FwdMiddle/BwdMiddle via-node recursively.
// FwdMiddle/BwdMiddle already store the original via-node ID directly, so
// unpacking works entirely in node space with no intermediate edge-index
// bookkeeping: overlayNodes and the CH graph share the same node-ID space
// as the base graph.
func unpackOverlayPath(chg *graph.CHGraph, overlayNodes []uint32) []uint32 {
	if len(overlayNodes) == 0 {
		return nil
	}

	result := make([]uint32, 0, len(overlayNodes)*2)
	result = append(result, overlayNodes[0])

	for i := 0; i < len(overlayNodes)-1; i++ {
		unpackHop(chg, overlayNodes[i], overlayNodes[i+1], &result)
	}

	return result
}

// hop is a from→to pair awaiting expansion, with a recursion-depth guard.
type hop struct {
	from, to uint32
	depth    int
}

// unpackHop expands a single overlay-graph hop from→to, appending every
// node from the path but "from" (already the tail of result) to result.
// The hop may be a forward-stored shortcut, a backward-stored shortcut, or
// a plain base edge — tried in that order with an explicit stack, the same
// iterative style the teacher used for its own shortcut unpacking.
func unpackHop(chg *graph.CHGraph, from, to uint32, result *[]uint32) {
	stack := []hop{{from, to, 0}}

	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if h.depth > maxUnpackDepth {
			*result = append(*result, h.to)
			continue
		}

		middle := int32(-1)
		if ei := findEdge(chg.FwdFirstOut, chg.FwdHead, h.from, h.to); ei != noNode {
			middle = chg.FwdMiddle[ei]
		} else if ei := findEdge(chg.BwdFirstOut, chg.BwdHead, h.to, h.from); ei != noNode {
			middle = chg.BwdMiddle[ei]
		}

		if middle < 0 {
			*result = append(*result, h.to)
			continue
		}

		mid := uint32(middle)
		// Push in reverse order so from→mid is processed before mid→to.
		stack = append(stack, hop{mid, h.to, h.depth + 1})
		stack = append(stack, hop{h.from, mid, h.depth + 1})
	}
}

// findEdge finds an edge from source to target in a CSR graph.
func findEdge(firstOut, head []uint32, source, target uint32) uint32 {
	start := firstOut[source]
	end := firstOut[source+1]
	for e := start; e < end; e++ {
		if head[e] == target {
			return e
		}
	}
	return noNode
}
