package world

import (
	"fmt"
	"math"
)

const (
	// SectorSize is the width of a sector; each sector has a core hex at its center.
	SectorSize = 10

	// Unreachable is the distance reported for names that do not parse.
	Unreachable = math.MaxInt32

	// transportFalloff shapes the transport cost curve.
	transportFalloff = 30.0
)

// Map is the atlas of known sites. Distances work for any canonical name;
// the registered sites only back lookups and layout generation.
type Map struct {
	Sites  map[string]HexCoord `json:"sites"`
	Radius int                 `json:"radius"` // Wrap-around radius; 0 disables wrapping
}

// NewMap creates an empty atlas with the given radius.
// A hex grid of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func NewMap(radius int) *Map {
	return &Map{
		Sites:  make(map[string]HexCoord),
		Radius: radius,
	}
}

// Place registers a site at the given coordinate under its canonical name.
func (m *Map) Place(coord HexCoord) string {
	name := coord.Name()
	m.Sites[name] = coord
	return name
}

// Position returns the coordinate of a named site.
func (m *Map) Position(name string) (HexCoord, bool) {
	if c, ok := m.Sites[name]; ok {
		return c, true
	}
	c, err := ParseName(name)
	if err != nil {
		return HexCoord{}, false
	}
	return c, true
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map) InBounds(coord HexCoord) bool {
	return max(abs(coord.Q), abs(coord.R), abs(coord.S())) <= m.Radius
}

// SiteCount returns the number of registered sites.
func (m *Map) SiteCount() int {
	return len(m.Sites)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, sites=%d)", m.Radius, m.SiteCount())
}

// LinearDistance returns the hex distance between two sites. The continuous
// variant measures across the wrapped map edge when that is shorter.
func (m *Map) LinearDistance(from, to string, continuous bool) int {
	a, okA := m.Position(from)
	b, okB := m.Position(to)
	if !okA || !okB {
		return Unreachable
	}
	if !continuous || m.Radius <= 0 {
		return Distance(a, b)
	}

	width := 2*m.Radius + 1
	best := Distance(a, b)
	for dq := -1; dq <= 1; dq++ {
		for dr := -1; dr <= 1; dr++ {
			shifted := HexCoord{Q: b.Q + dq*width, R: b.R + dr*width}
			if d := Distance(a, shifted); d < best {
				best = d
			}
		}
	}
	return best
}

// TransactionCost returns the energy needed to move amount units between
// two sites. Cost grows with distance and saturates at the amount itself.
func (m *Map) TransactionCost(amount int, from, to string) int {
	if amount <= 0 {
		return 0
	}
	d := m.LinearDistance(from, to, true)
	if d == Unreachable {
		return amount
	}
	return int(math.Ceil(float64(amount) * (1 - math.Exp(-float64(d)/transportFalloff))))
}

// Core returns the name of the core hex at the center of the site's sector.
func (m *Map) Core(site string) string {
	c, ok := m.Position(site)
	if !ok {
		return site
	}
	return HexCoord{Q: sectorCenter(c.Q), R: sectorCenter(c.R)}.Name()
}

func sectorCenter(v int) int {
	sector := int(math.Floor(float64(v) / SectorSize))
	return sector*SectorSize + SectorSize/2
}
