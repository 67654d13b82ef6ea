// Package fingerprint detects near-duplicate photos by perceptual hash.
package fingerprint

import (
	"fmt"
	"image"
	"math/bits"
	"sort"

	"golang.org/x/image/draw"
)

// DefaultThreshold is the largest Hamming distance still reported as a
// near duplicate.
const DefaultThreshold = 6

// Hash is a 64-bit difference hash.
type Hash uint64

func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Distance returns the number of differing bits.
func Distance(a, b Hash) int {
	return bits.OnesCount64(uint64(a ^ b))
}

// DHash computes the difference hash of img: the image is shrunk to 9x8 gray
// pixels and every bit records whether a pixel is brighter than its right
// neighbour.
func DHash(img image.Image) Hash {
	gray := image.NewGray(image.Rect(0, 0, 9, 8))
	draw.BiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	var h Hash
	bit := 63
	for y := range 8 {
		for x := range 8 {
			if gray.GrayAt(x, y).Y > gray.GrayAt(x+1, y).Y {
				h |= 1 << bit
			}
			bit--
		}
	}
	return h
}

// Entry is a hashed catalog photo.
type Entry struct {
	Category string `json:"category"`
	Filename string `json:"filename"`
	Hash     Hash   `json:"-"`
}

// Pair is two photos whose hashes are within the threshold.
type Pair struct {
	A        Entry `json:"a"`
	B        Entry `json:"b"`
	Distance int   `json:"distance"`
}

// Duplicates compares every entry with every other one and returns the pairs
// within threshold, closest first. Ties keep input order.
func Duplicates(entries []Entry, threshold int) []Pair {
	var pairs []Pair
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if d := Distance(entries[i].Hash, entries[j].Hash); d <= threshold {
				pairs = append(pairs, Pair{A: entries[i], B: entries[j], Distance: d})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Distance < pairs[j].Distance
	})
	return pairs
}
