package empire

import (
	"log/slog"
	"sort"

	"github.com/talgya/mini-empire/internal/colony"
)

// TradeIntent pairs a supplying node with its nearest receiver.
type TradeIntent struct {
	Sender   *colony.Node
	Receiver *colony.Node
	Distance int
}

// networkTrade ships the cycle's resource from surplus nodes to shortage
// nodes. Each node sends at most once and receives at most once per cycle.
func (e *Empire) networkTrade() Outcome {
	e.registerAllies()

	var out Outcome
	for _, p := range e.matchIntents() {
		if err := e.ship(p); err != nil {
			out.fail(err)
			continue
		}
		out.Executed++
	}
	return out
}

// registerAllies classifies the remembered allied sites that are visible this
// cycle. Runs once per cycle.
func (e *Empire) registerAllies() {
	c := e.cycle
	if c.alliesRegistered || e.deps.Sites == nil {
		return
	}
	c.alliesRegistered = true

	for _, name := range e.Memory.AllyForts {
		if n, ok := e.deps.Sites.Site(name); ok {
			e.analyze(n, false)
		}
	}
	for _, name := range e.Memory.AllySwaps {
		if n, ok := e.deps.Sites.Site(name); ok {
			e.analyze(n, true)
		}
	}
}

// matchIntents proposes one intent per surplus node, sorted nearest first,
// and greedily keeps those whose sender and receiver are both still unused.
func (e *Empire) matchIntents() []TradeIntent {
	c := e.cycle
	receivers := c.shortages
	severe := len(c.severe) > 0
	if severe {
		receivers = c.severe
	}

	var pairs []TradeIntent
	for _, sender := range c.surpluses {
		var closest *colony.Node
		best := 0
		for _, r := range receivers {
			if r.Site == sender.Site {
				continue
			}
			d := e.deps.Geo.LinearDistance(sender.Site, r.Site, false)
			if closest == nil || d < best {
				closest, best = r, d
			}
		}
		if closest == nil {
			continue
		}
		if c.Resource == colony.Energy && !severe && best > e.cfg.TradeMaxDistance &&
			sender.Storage.Total() < e.cfg.NearCapacityStorage {
			continue
		}
		pairs = append(pairs, TradeIntent{Sender: sender, Receiver: closest, Distance: best})
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Distance < pairs[j].Distance })

	var chosen []TradeIntent
	for len(pairs) > 0 {
		p := pairs[0]
		chosen = append(chosen, p)
		rest := pairs[:0]
		for _, q := range pairs[1:] {
			if q.Sender.Site != p.Sender.Site && q.Receiver.Site != p.Receiver.Site {
				rest = append(rest, q)
			}
		}
		pairs = rest
	}
	return chosen
}

// ship sends the resource for one intent. Refusals are returned, not retried.
func (e *Empire) ship(p TradeIntent) error {
	res := e.cycle.Resource
	amount := e.cfg.TradeEnergyAmount
	if res != colony.Energy {
		amount = e.cfg.ReserveAmount - p.Receiver.Terminal.Get(res)
	}
	if amount < e.cfg.MinShipment {
		amount = e.cfg.MinShipment
	}

	status := e.deps.Terminals.Send(p.Sender.Site, res, amount, p.Receiver.Site)
	if status != colony.OK {
		return &TransferError{From: p.Sender.Site, To: p.Receiver.Site, Resource: res, Amount: amount, Status: status}
	}

	dist := e.deps.Geo.LinearDistance(p.Receiver.Site, p.Sender.Site, true)
	slog.Info("network transfer", "component", "NETWORK",
		"from", p.Sender.Site, "to", p.Receiver.Site, "resource", res, "amount", amount,
		"owned", p.Receiver.Owned, "distance", dist)
	e.record("network", "%s sent %d %s to %s (dist %d)", p.Sender.Site, amount, res, p.Receiver.Site, dist)
	return nil
}
