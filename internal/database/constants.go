package database

// HNSW parameters for 3-dimensional RGB vectors
const (
	// HNSWMaxNeighbors (M) is the maximum number of neighbors per node.
	HNSWMaxNeighbors = 16

	// HNSWEfSearch is the search candidate pool size.
	HNSWEfSearch = 100

	// HNSWSearchMultiplier is the factor to request more candidates from HNSW
	// so results can be re-ranked by exact distance.
	HNSWSearchMultiplier = 3

	// ExactScanLimit is the number of distinct colors up to which searches
	// scan every color instead of walking the graph.
	ExactScanLimit = 4096
)
