package empire

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/mini-empire/internal/colony"
)

// EngageSwap moves extraction from the active swap site to the nearby swap
// site whose mineral the empire holds least of. Candidates lie within the
// swap range of the active site's sector core, are not already active, and
// have minerals left or regenerating soon. The new site must already be safe
// to claim.
func (e *Empire) EngageSwap(activeSite string) Outcome {
	return e.guard("swap", func() Outcome {
		var out Outcome
		target, mineral := e.swapTarget(activeSite)
		if target == nil {
			return out
		}

		slog.Info("swap wants to switch", "component", "EMPIRE",
			"from", activeSite, "to", target.Site, "mineral", mineral)
		if status := e.deps.Claims.Unclaim(activeSite); status != colony.OK {
			out.fail(fmt.Errorf("unclaim %s for swap to %s: %s", activeSite, target.Site, status))
			return out
		}
		e.deps.Claims.SetSwapActive(activeSite, false)
		e.deps.Claims.SetSwapActive(target.Site, true)
		target.SwapActive = true

		out.Executed++
		e.record("swap", "%s swapped to %s to mine %s", activeSite, target.Site, mineral)
		return out
	})
}

func (e *Empire) swapTarget(activeSite string) (*colony.Node, colony.Resource) {
	core := e.deps.Geo.Core(activeSite)

	var minerals []colony.Resource
	options := make(map[colony.Resource]*colony.Node)
	for _, n := range e.cycle.swapNodes {
		if n.SwapActive || n.Site == activeSite || n.Deposit == nil {
			continue
		}
		if e.deps.Geo.LinearDistance(core, n.Site, false) > e.cfg.SwapRange {
			continue
		}
		d := n.Deposit
		if d.Amount <= 0 && d.TicksToRegeneration >= e.cfg.SwapRegenWindow {
			continue
		}
		if _, seen := options[d.Mineral]; seen {
			continue
		}
		options[d.Mineral] = n
		minerals = append(minerals, d.Mineral)
	}

	inv := e.Inventory()
	var lowest colony.Resource
	lowestCount := math.MaxInt
	for _, m := range minerals {
		if inv[m] < lowestCount {
			lowest, lowestCount = m, inv[m]
		}
	}
	if lowest == "" {
		return nil, ""
	}
	return options[lowest], lowest
}
