package selection

import (
	"fmt"
	"strings"
)

// DiversityPolicy chooses how a gallery category picks its photos.
type DiversityPolicy int

const (
	// Balanced picks photos that differ in location and color.
	Balanced DiversityPolicy = iota
	// ColorCoordinated picks photos close in color to a random seed photo.
	ColorCoordinated
)

func (p DiversityPolicy) String() string {
	switch p {
	case Balanced:
		return "balanced"
	case ColorCoordinated:
		return "coordinated"
	default:
		return fmt.Sprintf("DiversityPolicy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name as used in the gallery configuration.
func ParsePolicy(s string) (DiversityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced", "diverse":
		return Balanced, nil
	case "coordinated", "color-coordinated", "color_coordinated":
		return ColorCoordinated, nil
	default:
		return Balanced, fmt.Errorf("unknown diversity policy %q", s)
	}
}

// MarshalText encodes the policy by name.
func (p DiversityPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *DiversityPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Select dispatches to the selection strategy of policy.
func Select(policy DiversityPolicy, pool []Photo, count int, opts Options) ([]Photo, error) {
	switch policy {
	case ColorCoordinated:
		return SelectCoordinated(pool, count, opts)
	default:
		return SelectDiverse(pool, count, opts)
	}
}
