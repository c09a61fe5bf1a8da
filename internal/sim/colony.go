// Package sim is a self-contained colony the empire can run against: a set
// of generated sites that produce and mine each tick, a terminal network with
// real transport costs, and a marketplace seeded with third-party orders.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/market"
	"github.com/talgya/mini-empire/internal/tuning"
	"github.com/talgya/mini-empire/internal/world"
)

// Production rates per tick.
const (
	energyPerTier    = 40    // Storage energy per tier level
	mineRate         = 15    // Mineral units extracted from a deposit
	productRate      = 5     // Product units at tier 7 and above
	terminalEnergy   = 60000 // Working energy level of a terminal
	haulPerTick      = 2000  // Energy moved between storage and terminal
	depositRegenTime = 20000 // Ticks for an exhausted deposit to refill
)

// Registrar receives the sites eligible for trade each cycle.
type Registrar interface {
	Register(n *colony.Node)
	RegisterSwap(n *colony.Node)
}

// Site is one generated location and its simulation bookkeeping.
type Site struct {
	Node    *colony.Node
	Coord   world.HexCoord
	Swap    bool
	Claimed bool
	Spawns  []string
	Product colony.Resource // Compound the site manufactures, if any

	sentAt uint64 // Tick of the last terminal send
}

// Colony owns every site and the exchange they trade on.
type Colony struct {
	Map      *world.Map
	Sites    []*Site
	Exchange *market.Exchange

	cfg   tuning.Tuning
	index map[string]*Site
	rng   *rand.Rand
	tick  uint64
}

// New builds a colony from generated site seeds. Every fifth trade site
// belongs to an ally.
func New(m *world.Map, seeds []world.SiteSeed, cfg tuning.Tuning, credits float64, seed int64) *Colony {
	c := &Colony{
		Map:      m,
		Exchange: market.NewExchange(credits),
		cfg:      cfg,
		index:    make(map[string]*Site, len(seeds)),
		rng:      rand.New(rand.NewSource(seed + 500)),
	}
	c.Exchange.OnDeal = c.settle

	trade := 0
	activeSector := make(map[string]bool)
	for _, s := range seeds {
		n := &colony.Node{
			Site:     s.Name,
			Tier:     s.Tier,
			Owned:    true,
			Storage:  colony.Store{colony.Energy: int(s.Richness * 400000)},
			Terminal: colony.Store{colony.Energy: int(s.Richness * 60000)},
			Deposit: &colony.Deposit{
				Mineral: s.Mineral,
				Amount:  int(20000 + s.Richness*50000),
			},
		}
		site := &Site{Node: n, Coord: s.Coord, Swap: s.Swap, Claimed: true}

		if s.Swap {
			// One active swap site per sector. The rest stay claimed but
			// idle until a swap moves extraction to them.
			core := m.Core(s.Name)
			n.SwapActive = !activeSector[core]
			activeSector[core] = true
		} else {
			site.Spawns = []string{fmt.Sprintf("Spawn-%s", s.Name)}
			if s.Tier >= 7 {
				site.Product = colony.Products[trade%len(colony.Products)]
			}
			n.Owned = trade%5 != 4
			trade++
		}

		c.Sites = append(c.Sites, site)
		c.index[s.Name] = site
	}
	return c
}

// Allies returns the names of allied sites.
func (c *Colony) Allies() []string {
	var out []string
	for _, s := range c.Sites {
		if !s.Node.Owned {
			out = append(out, s.Node.Site)
		}
	}
	return out
}

// Begin starts a tick.
func (c *Colony) Begin(tick uint64) {
	c.tick = tick
}

// RegisterAll hands every owned trade site and every claimed swap site,
// active or idle, to r.
func (c *Colony) RegisterAll(r Registrar) {
	for _, s := range c.Sites {
		switch {
		case s.Swap && s.Claimed:
			r.RegisterSwap(s.Node)
		case !s.Swap && s.Node.Owned:
			r.Register(s.Node)
		}
	}
}

// Produce runs one tick of local work at every site: energy harvest,
// hauling between storage and terminal, mining, and manufacturing.
func (c *Colony) Produce() {
	for _, s := range c.Sites {
		n := s.Node
		if !s.Claimed {
			c.regenerate(n.Deposit)
			continue
		}
		n.Storage.Add(colony.Energy, energyPerTier*n.Tier)
		c.haul(n)

		if !s.Swap || n.SwapActive {
			c.mine(n)
		} else {
			c.regenerate(n.Deposit)
		}
		if s.Product != "" && c.room(n, productRate) {
			n.Terminal.Add(s.Product, productRate)
		}
	}
}

// haul keeps the terminal's energy near its working level.
func (c *Colony) haul(n *colony.Node) {
	have := n.Terminal.Get(colony.Energy)
	switch {
	case have < terminalEnergy:
		move := min(haulPerTick, terminalEnergy-have, n.Storage.Get(colony.Energy))
		if move > 0 && c.room(n, move) {
			n.Storage.Add(colony.Energy, -move)
			n.Terminal.Add(colony.Energy, move)
		}
	case have > terminalEnergy+haulPerTick:
		n.Terminal.Add(colony.Energy, -haulPerTick)
		n.Storage.Add(colony.Energy, haulPerTick)
	}
}

func (c *Colony) mine(n *colony.Node) {
	d := n.Deposit
	if d == nil {
		return
	}
	if d.Amount <= 0 {
		c.regenerate(d)
		return
	}
	take := min(mineRate, d.Amount)
	if !c.room(n, take) {
		return
	}
	d.Amount -= take
	n.Terminal.Add(d.Mineral, take)
	if d.Amount == 0 {
		d.TicksToRegeneration = depositRegenTime
	}
}

func (c *Colony) regenerate(d *colony.Deposit) {
	if d == nil || d.Amount > 0 {
		return
	}
	d.TicksToRegeneration--
	if d.TicksToRegeneration <= 0 {
		d.Amount = 30000
		d.TicksToRegeneration = 0
	}
}

// room reports whether the terminal can take amount more units.
func (c *Colony) room(n *colony.Node, amount int) bool {
	return n.Terminal.Total()+amount <= c.cfg.TerminalCapacity
}

// DepletedSwaps returns the active swap sites whose deposits are exhausted.
func (c *Colony) DepletedSwaps() []string {
	var out []string
	for _, s := range c.Sites {
		if s.Swap && s.Node.SwapActive && s.Node.Deposit != nil && s.Node.Deposit.Amount == 0 {
			out = append(out, s.Node.Site)
		}
	}
	return out
}

// Site returns the node of a known site.
func (c *Colony) Site(name string) (*colony.Node, bool) {
	s, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return s.Node, true
}

// Spawns returns the spawn names at a site.
func (c *Colony) Spawns(name string) []string {
	if s, ok := c.index[name]; ok {
		return s.Spawns
	}
	return nil
}

// Send moves amount of res from one terminal to another, paying the
// transport cost in energy at the sender. A terminal sends once per tick.
func (c *Colony) Send(from string, res colony.Resource, amount int, to string) colony.Status {
	src, ok := c.index[from]
	dst, ok2 := c.index[to]
	if !ok || !ok2 || src.Node.Terminal == nil || dst.Node.Terminal == nil {
		return colony.ErrNotFound
	}
	if !src.Node.Owned {
		return colony.ErrNotOwner
	}
	if amount <= 0 || from == to {
		return colony.ErrInvalidArgs
	}
	if src.sentAt == c.tick && c.tick != 0 {
		return colony.ErrTired
	}

	cost := c.Map.TransactionCost(amount, from, to)
	need := amount
	if res == colony.Energy {
		need += cost
	}
	if src.Node.Terminal.Get(res) < need || src.Node.Terminal.Get(colony.Energy) < cost {
		return colony.ErrNotEnoughResources
	}
	if !c.room(dst.Node, amount) {
		return colony.ErrFull
	}

	src.Node.Terminal.Add(res, -amount)
	src.Node.Terminal.Add(colony.Energy, -cost)
	dst.Node.Terminal.Add(res, amount)
	src.sentAt = c.tick
	return colony.OK
}

// Unclaim releases a site.
func (c *Colony) Unclaim(site string) colony.Status {
	s, ok := c.index[site]
	if !ok {
		return colony.ErrNotFound
	}
	if !s.Node.Owned || !s.Claimed {
		return colony.ErrNotOwner
	}
	s.Claimed = false
	return colony.OK
}

// SetSwapActive flags a swap site for extraction. Activating a site claims it.
func (c *Colony) SetSwapActive(site string, active bool) {
	s, ok := c.index[site]
	if !ok {
		return
	}
	s.Node.SwapActive = active
	if active {
		s.Claimed = true
	}
}
