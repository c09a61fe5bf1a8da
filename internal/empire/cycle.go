package empire

import "github.com/talgya/mini-empire/internal/colony"

// Cycle is the state scoped to a single tick. Init replaces it wholesale, so
// nothing here can leak into the next cycle.
type Cycle struct {
	Tick     uint64
	Resource colony.Resource // Resource the terminal network evaluates this cycle

	terminals []*colony.Node // Owned nodes with a terminal
	storages  []*colony.Node // Owned nodes with a storage buffer
	swapNodes []*colony.Node // Swap candidates with a terminal

	shortages []*colony.Node
	severe    []*colony.Node
	surpluses []*colony.Node
	placed    map[string]bool // Sites already in one of the three sets

	alliesRegistered bool

	inventory   map[colony.Resource]int // Memoized on first access
	spawnGroups map[string]*SpawnGroup
}

func newCycle(tick uint64, res colony.Resource) *Cycle {
	return &Cycle{
		Tick:        tick,
		Resource:    res,
		placed:      make(map[string]bool),
		spawnGroups: make(map[string]*SpawnGroup),
	}
}

// Shortages returns the nodes short of the cycle's resource.
func (c *Cycle) Shortages() []*colony.Node { return c.shortages }

// SevereShortages returns the nodes starving for energy.
func (c *Cycle) SevereShortages() []*colony.Node { return c.severe }

// Surpluses returns the nodes able to supply the cycle's resource.
func (c *Cycle) Surpluses() []*colony.Node { return c.surpluses }

// Terminals returns the owned nodes with a terminal registered this cycle.
func (c *Cycle) Terminals() []*colony.Node { return c.terminals }

// SwapNodes returns the swap candidates registered this cycle.
func (c *Cycle) SwapNodes() []*colony.Node { return c.swapNodes }
