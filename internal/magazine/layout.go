package magazine

import (
	"fmt"
	"math/rand/v2"
)

// Layout is the arrangement of photos on one magazine slide.
type Layout int

const (
	// LayoutSingle shows one photo full frame.
	LayoutSingle Layout = iota + 1
	// LayoutSplit shows two photos side by side.
	LayoutSplit
	// LayoutMasterLeft shows a large photo left and two stacked on the right.
	LayoutMasterLeft
	// LayoutGrid shows four photos in a 2x2 grid.
	LayoutGrid
	// LayoutMasterRight mirrors LayoutMasterLeft.
	LayoutMasterRight
)

var layoutNames = map[Layout]string{
	LayoutSingle:      "single",
	LayoutSplit:       "split",
	LayoutMasterLeft:  "master-left",
	LayoutGrid:        "grid",
	LayoutMasterRight: "master-right",
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// MarshalText encodes the layout by name.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a layout name.
func (l *Layout) UnmarshalText(text []byte) error {
	for layout, name := range layoutNames {
		if name == string(text) {
			*l = layout
			return nil
		}
	}
	return fmt.Errorf("unknown layout %q", text)
}

// Capacity returns how many photos the layout holds.
func (l Layout) Capacity() int {
	switch l {
	case LayoutSplit:
		return 2
	case LayoutMasterLeft, LayoutMasterRight:
		return 3
	case LayoutGrid:
		return 4
	default:
		return 1
	}
}

// PickLayout draws one of the five layouts uniformly.
func PickLayout(r *rand.Rand) Layout {
	return Layout(r.IntN(5) + 1)
}

// FinalLayout maps the requested layout to one that fits the photos actually packed.
func FinalLayout(requested Layout, achieved int) Layout {
	switch {
	case achieved <= 1:
		return LayoutSingle
	case achieved == 2:
		return LayoutSplit
	case achieved == 3:
		if requested == LayoutMasterLeft || requested == LayoutMasterRight {
			return requested
		}
		return LayoutMasterLeft
	default:
		return LayoutGrid
	}
}

// LayoutForSize returns a layout that holds n photos. Three-photo slides put
// the master photo on a random side.
func LayoutForSize(n int, r *rand.Rand) Layout {
	switch {
	case n <= 1:
		return LayoutSingle
	case n == 2:
		return LayoutSplit
	case n == 3:
		if r.IntN(2) == 0 {
			return LayoutMasterLeft
		}
		return LayoutMasterRight
	default:
		return LayoutGrid
	}
}
