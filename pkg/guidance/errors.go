package guidance

import (
	"errors"
	"fmt"
)

// Sentinel errors, matching the teacher's routing.ErrNoRoute/ErrPointTooFar
// pattern: a small set of well-known errors checked with errors.Is at the
// request boundary.
var (
	// ErrInvalidPath is returned when InternalRouteResult is malformed: an
	// empty path with no phantom endpoints, or adjacent legs whose
	// endpoints don't match.
	ErrInvalidPath = errors.New("guidance: invalid path")

	// ErrNoRoute is returned when the shortest-path search found no route
	// (ShortestPathWeight is the infinite sentinel).
	ErrNoRoute = errors.New("guidance: no route found")

	// ErrDataIntegrity marks a violated structural invariant: a missing
	// edge during unpacking, or inconsistent segment offsets. Per spec.md
	// §7 this is always a bug, never a user-facing condition; it is
	// returned (not panicked) unless Config.Strict is set.
	ErrDataIntegrity = errors.New("guidance: data integrity violation")
)

func (c Config) fail(msg string) error {
	if c.Strict {
		panic("guidance: " + msg)
	}
	return fmt.Errorf("%s: %w", msg, ErrDataIntegrity)
}
