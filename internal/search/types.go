// Package search implements obstacle-aware nearest-neighbor search: for each
// source area, the nearest other area reachable by a straight connecting
// segment that does not cross any obstacle, within a bounded radius.
package search

// NoNeighbor is the sentinel for "no valid result found", distinct from an
// error. It is used for both the identifier and the distance.
const NoNeighbor = -1

// NeighborResult is the outcome for one source feature.
type NeighborResult struct {
	// SourceID is the source feature's identifier.
	SourceID int64

	// NearestID is the nearest non-crossing neighbor's identifier, or
	// NoNeighbor when none was found within the radius.
	NearestID int64

	// Distance is the edge-to-edge distance achieved, or NoNeighbor.
	Distance float64
}

// Found reports whether a neighbor was found.
func (r NeighborResult) Found() bool {
	return r.NearestID != NoNeighbor
}

// Result is the outcome of a search run.
type Result struct {
	// Neighbors holds one entry per processed source feature, in source
	// order. On cancellation this is the completed prefix of the input.
	Neighbors []NeighborResult

	// Incomplete is set when cooperative cancellation stopped the run before
	// every source feature was processed. Not an error.
	Incomplete bool

	// SkippedObstacles lists obstacle ids excluded from crossing tests
	// because their geometry was malformed. A non-empty list means crossing
	// tests ran degraded; reported neighbors are not proven safe against
	// those obstacles.
	SkippedObstacles []int64
}
