package database

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/coder/hnsw"

	"github.com/kozaktomas/portfolio/internal/selection"
)

// ErrIndexEmpty is returned when searching an index with no colored photos.
var ErrIndexEmpty = errors.New("color index is empty")

// colorNode is one distinct color and every photo that has it.
type colorNode struct {
	color  selection.Color
	photos []selection.Photo
}

// ColorIndex answers "photos near this color" queries. Each distinct color
// is stored once. Small indexes are scanned exactly; larger ones go through
// an HNSW graph whose candidates are re-ranked by exact distance.
type ColorIndex struct {
	graph      *hnsw.Graph[int]
	nodes      []colorNode // graph key -> node
	count      int
	exactLimit int
	mu         sync.RWMutex
}

// NewColorIndex creates a new empty index.
func NewColorIndex() *ColorIndex {
	return &ColorIndex{exactLimit: ExactScanLimit}
}

func newColorGraph() *hnsw.Graph[int] {
	g := hnsw.NewGraph[int]()
	g.M = HNSWMaxNeighbors
	g.EfSearch = HNSWEfSearch
	g.Distance = hnsw.EuclideanDistance
	return g
}

// Build replaces the index content. Photos without a color are left out.
func (x *ColorIndex) Build(photos []selection.Photo) {
	var nodes []colorNode
	byColor := make(map[selection.Color]int)
	count := 0
	for _, p := range photos {
		if !p.Color.Valid {
			continue
		}
		i, ok := byColor[p.Color]
		if !ok {
			i = len(nodes)
			byColor[p.Color] = i
			nodes = append(nodes, colorNode{color: p.Color})
		}
		nodes[i].photos = append(nodes[i].photos, p)
		count++
	}

	var g *hnsw.Graph[int]
	if len(nodes) > x.exactLimit {
		g = newColorGraph()
		for i, n := range nodes {
			g.Add(hnsw.MakeNode(i, n.color.Vector()))
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.graph = g
	x.nodes = nodes
	x.count = count
}

// Len returns the number of indexed photos.
func (x *ColorIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.count
}

// Search returns up to k photos closest to c, nearest first. Photos sharing
// a color keep their catalog order.
func (x *ColorIndex) Search(c selection.Color, k int) ([]ColorMatch, error) {
	if !c.Valid {
		return nil, errors.New("search color is absent")
	}
	if k <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.nodes) == 0 {
		return nil, ErrIndexEmpty
	}

	candidates := x.candidates(c, k)
	type ranked struct {
		node     int
		distance float64
	}
	order := make([]ranked, 0, len(candidates))
	for _, i := range candidates {
		order = append(order, ranked{node: i, distance: selection.Distance(c, x.nodes[i].color)})
	}
	slices.SortStableFunc(order, func(a, b ranked) int {
		return cmp.Compare(a.distance, b.distance)
	})

	matches := make([]ColorMatch, 0, min(k, x.count))
	for _, r := range order {
		for _, p := range x.nodes[r.node].photos {
			if len(matches) == k {
				return matches, nil
			}
			matches = append(matches, ColorMatch{Photo: p, Distance: r.distance})
		}
	}
	return matches, nil
}

// candidates returns the node keys worth ranking for a k-photo query.
func (x *ColorIndex) candidates(c selection.Color, k int) []int {
	if x.graph == nil {
		all := make([]int, len(x.nodes))
		for i := range all {
			all[i] = i
		}
		return all
	}

	neighbors := x.graph.Search(c.Vector(), max(k*HNSWSearchMultiplier, HNSWEfSearch))
	keys := make([]int, 0, len(neighbors))
	for _, n := range neighbors {
		keys = append(keys, n.Key)
	}
	return keys
}
