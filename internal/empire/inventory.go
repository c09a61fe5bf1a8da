package empire

import "github.com/talgya/mini-empire/internal/colony"

// Inventory returns the empire-wide holdings of every resource, summed over
// each registered terminal and storage. The sum is taken on first access in
// a cycle and reused until the next Init. Callers must not modify the map.
func (e *Empire) Inventory() map[colony.Resource]int {
	c := e.cycle
	if c.inventory != nil {
		return c.inventory
	}

	inv := make(map[colony.Resource]int)
	for _, n := range c.terminals {
		for r, qty := range n.Terminal {
			if qty != 0 {
				inv[r] += qty
			}
		}
	}
	for _, n := range c.storages {
		for r, qty := range n.Storage {
			if qty != 0 {
				inv[r] += qty
			}
		}
	}
	c.inventory = inv
	return inv
}

// HasAbundance reports whether the empire holds more of res than perNode
// for every registered terminal. A perNode of zero or less means twice the
// reserve amount.
func (e *Empire) HasAbundance(res colony.Resource, perNode int) bool {
	if perNode <= 0 {
		perNode = e.cfg.ReserveAmount * 2
	}
	return e.Inventory()[res] > len(e.cycle.terminals)*perNode
}

// Search selects which end of the holdings FindBestTerminal looks for.
type Search int

const (
	Lowest Search = iota
	Highest
)

// FindBestTerminal returns the registered node whose terminal holds the least
// (or most) of res. The first node wins ties. Highest returns nil when no
// terminal holds any res; Lowest returns nil only with no terminals.
func (e *Empire) FindBestTerminal(res colony.Resource, search Search) *colony.Node {
	var best *colony.Node
	if search == Highest {
		highest := 0
		for _, n := range e.cycle.terminals {
			if amount := n.Terminal.Get(res); amount > highest {
				highest = amount
				best = n
			}
		}
		return best
	}

	lowest := 0
	for _, n := range e.cycle.terminals {
		if amount := n.Terminal.Get(res); best == nil || amount < lowest {
			lowest = amount
			best = n
		}
	}
	return best
}
