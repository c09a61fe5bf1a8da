package empire

import (
	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/tuning"
)

// Class is the role a node plays for one resource in one cycle.
type Class int

const (
	ClassNone Class = iota
	ClassShortage
	ClassSevere
	ClassSurplus
)

func (c Class) String() string {
	switch c {
	case ClassShortage:
		return "shortage"
	case ClassSevere:
		return "severe"
	case ClassSurplus:
		return "surplus"
	default:
		return "none"
	}
}

// Classify decides the role of n for res. Nodes below the minimum tier or
// lacking a storage or terminal are never classified.
//
// Energy has its own table: a swap candidate only ever becomes a shortage,
// while other nodes may become a severe shortage when both buffers run low.
// Every comparison against a shortage level is strict.
func Classify(cfg tuning.Tuning, n *colony.Node, res colony.Resource, swap bool) Class {
	if n == nil || n.Tier < cfg.MinTier || !n.HasTerminal() || !n.HasStorage() {
		return ClassNone
	}
	termEnergy := n.Terminal.Get(colony.Energy)
	termTotal := n.Terminal.Total()

	if res == colony.Energy {
		if swap {
			if termEnergy < cfg.SwapEnergyNeed {
				return ClassShortage
			}
			return ClassNone
		}
		storeEnergy := n.Storage.Get(colony.Energy)
		if termEnergy < cfg.ShortageTerminalEnergy && storeEnergy < cfg.NeedEnergyThreshold &&
			termTotal < cfg.TerminalFillCap {
			return ClassSevere
		}
		if n.Owned && termEnergy >= cfg.SurplusTerminalEnergy && storeEnergy > cfg.SupplyEnergyThreshold {
			return ClassSurplus
		}
		return ClassNone
	}

	amount := n.Terminal.Get(res)
	if !swap && amount < cfg.ReserveAmount && termTotal < cfg.TerminalFillCap {
		return ClassShortage
	}
	if n.Owned && termEnergy >= cfg.SenderTerminalEnergy && amount >= cfg.ReserveAmount*2 {
		return ClassSurplus
	}
	return ClassNone
}

// analyze classifies n for the cycle's resource and files it. A site lands in
// at most one set per cycle, however many times it is registered.
func (e *Empire) analyze(n *colony.Node, swap bool) {
	c := e.cycle
	if c.placed[n.Site] {
		return
	}
	switch Classify(e.cfg, n, c.Resource, swap) {
	case ClassShortage:
		c.shortages = append(c.shortages, n)
	case ClassSevere:
		c.severe = append(c.severe, n)
	case ClassSurplus:
		c.surpluses = append(c.surpluses, n)
	default:
		return
	}
	c.placed[n.Site] = true
}
