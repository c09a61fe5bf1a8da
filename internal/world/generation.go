// Site layout generation using layered simplex noise.
// A richness field decides where sites settle and how developed they are;
// a second field decides which mineral each site's deposit holds.
package world

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/mini-empire/internal/colony"
)

// GenConfig holds layout generation parameters.
type GenConfig struct {
	Radius     int   // Hex grid radius
	Seed       int64 // Random seed (0 = random)
	Sites      int   // Full trade sites to place
	SwapSites  int   // Low-tier extraction sites to place
	MinSpacing int   // Minimum hex distance between sites
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:     30,
		Seed:       0,
		Sites:      14,
		SwapSites:  8,
		MinSpacing: 3,
	}
}

// SmallTestConfig returns a tiny layout for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:     8,
		Seed:       42,
		Sites:      4,
		SwapSites:  3,
		MinSpacing: 2,
	}
}

// SiteSeed holds the generated parameters of one site.
type SiteSeed struct {
	Name     string
	Coord    HexCoord
	Tier     int
	Swap     bool
	Mineral  colony.Resource
	Richness float64 // 0.0–1.0, scales starting stock and deposit size
}

// GenerateSites lays out sites on a fresh map and returns both.
// Trade sites take the richest hexes; swap sites fill in the next best.
func GenerateSites(cfg GenConfig) (*Map, []SiteSeed) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	richNoise := opensimplex.NewNormalized(seed)
	mineralNoise := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord HexCoord
		score float64
	}
	var candidates []scored

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if max(abs(q), abs(r), abs(coord.S())) > cfg.Radius {
				continue
			}
			x, y := cartesian(coord)
			candidates = append(candidates, scored{coord, octaveNoise(richNoise, x, y, 4, 0.08, 0.5)})
		}
	}

	// Sort by score descending; ties by coordinate so layouts are reproducible.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].coord.Q != candidates[j].coord.Q {
			return candidates[i].coord.Q < candidates[j].coord.Q
		}
		return candidates[i].coord.R < candidates[j].coord.R
	})

	m := NewMap(cfg.Radius)
	var seeds []SiteSeed

	place := func(want int, swap bool) {
		placed := 0
		for _, c := range candidates {
			if placed >= want {
				return
			}
			if _, taken := m.Sites[c.coord.Name()]; taken || tooClose(c.coord, seeds, cfg.MinSpacing) {
				continue
			}
			x, y := cartesian(c.coord)
			seeds = append(seeds, SiteSeed{
				Name:     m.Place(c.coord),
				Coord:    c.coord,
				Tier:     tierFor(c.score, swap, rng),
				Swap:     swap,
				Mineral:  mineralFor(mineralNoise.Eval2(x*0.15, y*0.15)),
				Richness: c.score,
			})
			placed++
		}
	}
	place(cfg.Sites, false)
	place(cfg.SwapSites, true)

	return m, seeds
}

// tierFor maps richness to a production tier. Swap sites stay low tier.
func tierFor(score float64, swap bool, rng *rand.Rand) int {
	if swap {
		return 4 + rng.Intn(2)
	}
	tier := 5 + int(math.Round(score*3))
	if tier > 8 {
		tier = 8
	}
	return tier
}

func mineralFor(v float64) colony.Resource {
	idx := int(v * float64(len(colony.RawMinerals)))
	if idx >= len(colony.RawMinerals) {
		idx = len(colony.RawMinerals) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return colony.RawMinerals[idx]
}

// cartesian converts hex coords to continuous space for noise sampling.
// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
func cartesian(c HexCoord) (float64, float64) {
	return float64(c.Q) + float64(c.R)*0.5, float64(c.R) * math.Sqrt(3.0) / 2.0
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func tooClose(coord HexCoord, existing []SiteSeed, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}
