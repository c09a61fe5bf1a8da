// Package world provides the hex-grid atlas the empire's sites live on.
// Uses axial coordinates (q, r); every coordinate has a canonical site name
// such as "E3N12", so distances can be computed from names alone.
package world

import (
	"fmt"
	"strconv"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

// Name returns the canonical site name of a coordinate: E/W carries q,
// S/N carries r. The origin is "E0S0".
func (h HexCoord) Name() string {
	ew, q := "E", h.Q
	if q < 0 {
		ew, q = "W", -q-1
	}
	ns, r := "S", h.R
	if r < 0 {
		ns, r = "N", -r-1
	}
	return fmt.Sprintf("%s%d%s%d", ew, q, ns, r)
}

func (h HexCoord) String() string {
	return h.Name()
}

// ParseName converts a canonical site name back into a coordinate.
func ParseName(name string) (HexCoord, error) {
	if len(name) < 4 {
		return HexCoord{}, fmt.Errorf("site name %q too short", name)
	}

	ew := name[0]
	if ew != 'E' && ew != 'W' {
		return HexCoord{}, fmt.Errorf("site name %q: bad east/west marker", name)
	}

	split := -1
	for i := 1; i < len(name); i++ {
		if name[i] == 'N' || name[i] == 'S' {
			split = i
			break
		}
	}
	if split <= 1 || split == len(name)-1 {
		return HexCoord{}, fmt.Errorf("site name %q: bad north/south marker", name)
	}

	q, err := strconv.Atoi(name[1:split])
	if err != nil || q < 0 {
		return HexCoord{}, fmt.Errorf("site name %q: bad q", name)
	}
	r, err := strconv.Atoi(name[split+1:])
	if err != nil || r < 0 {
		return HexCoord{}, fmt.Errorf("site name %q: bad r", name)
	}

	if ew == 'W' {
		q = -q - 1
	}
	if name[split] == 'N' {
		r = -r - 1
	}
	return HexCoord{Q: q, R: r}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
