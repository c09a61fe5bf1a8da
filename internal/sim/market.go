package sim

import (
	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/market"
	"github.com/talgya/mini-empire/internal/world"
)

// Third-party market shape.
const (
	ordersPerBook = 2    // Third-party orders kept per side and resource
	fillChance    = 0.25 // Chance per market round that one of our orders trades
	excessLot     = 2000 // Units offered when a terminal is overstocked
)

// Overstock is a terminal that should unload some stock on the market.
type Overstock struct {
	Site     string
	Resource colony.Resource
	Amount   int
}

// settle moves the goods of a deal we initiated. The deal's transport cost is
// paid in energy from our terminal.
func (c *Colony) settle(s market.Settlement) colony.Status {
	site, ok := c.index[s.Site]
	if !ok || site.Node.Terminal == nil {
		return colony.ErrNotFound
	}
	n := site.Node
	res := s.Order.Resource
	cost := c.Map.TransactionCost(s.Amount, s.Site, s.Order.Site)
	if n.Terminal.Get(colony.Energy) < cost {
		return colony.ErrNotEnoughResources
	}

	if s.Order.Side == market.Sell {
		if !c.room(n, s.Amount) {
			return colony.ErrFull
		}
		n.Terminal.Add(colony.Energy, -cost)
		n.Terminal.Add(res, s.Amount)
		return colony.OK
	}

	need := s.Amount
	if res == colony.Energy {
		need += cost
	}
	if n.Terminal.Get(res) < need {
		return colony.ErrNotEnoughResources
	}
	n.Terminal.Add(res, -s.Amount)
	n.Terminal.Add(colony.Energy, -cost)
	return colony.OK
}

// SeedOrders tops up third-party orders: minerals offered for sale and
// wanted, and products both wanted and sold by competitors.
func (c *Colony) SeedOrders() {
	for _, m := range colony.RawMinerals {
		v := c.cfg.ValueOf(m)
		c.topUp(market.Sell, m, v*(0.7+c.rng.Float64()*0.6))
		c.topUp(market.Buy, m, v*(0.5+c.rng.Float64()*0.5))
	}
	for _, p := range colony.Products {
		price := c.cfg.ProductPrice[p]
		c.topUp(market.Buy, p, price*(0.6+c.rng.Float64()*0.5))
		c.topUp(market.Sell, p, price*(0.9+c.rng.Float64()*0.4))
	}
}

func (c *Colony) topUp(side market.Side, res colony.Resource, price float64) {
	if price <= 0 {
		return
	}
	have := 0
	for _, o := range c.Exchange.AllOrders(market.Filter{Side: side, Resource: res}) {
		if !o.Mine {
			have++
		}
	}
	for ; have < ordersPerBook; have++ {
		c.Exchange.List(market.Order{
			Side:      side,
			Resource:  res,
			Price:     price,
			Remaining: 500 + c.rng.Intn(4500),
			Site:      c.randomSite(),
		})
	}
}

func (c *Colony) randomSite() string {
	r := c.Map.Radius
	if r <= 0 {
		r = world.SectorSize
	}
	return world.HexCoord{Q: c.rng.Intn(2*r+1) - r, R: c.rng.Intn(2*r+1) - r}.Name()
}

// FillOrders lets third parties trade against our open orders, moving the
// goods in or out of the originating terminal.
func (c *Colony) FillOrders() int {
	filled := 0
	for _, o := range c.Exchange.MyOrders() {
		if c.rng.Float64() >= fillChance {
			continue
		}
		site, ok := c.index[o.Site]
		if !ok || site.Node.Terminal == nil {
			continue
		}
		n := site.Node
		want := 100 + c.rng.Intn(900)

		if o.Side == market.Sell {
			want = min(want, n.Terminal.Get(o.Resource))
			if want <= 0 {
				continue
			}
			got := c.Exchange.Fill(o.ID, want)
			n.Terminal.Add(o.Resource, -got)
			filled += got
			continue
		}

		want = min(want, c.cfg.TerminalCapacity-n.Terminal.Total())
		if want <= 0 {
			continue
		}
		got := c.Exchange.Fill(o.ID, want)
		n.Terminal.Add(o.Resource, got)
		filled += got
	}
	return filled
}

// Overstocked returns owned trade sites whose terminals are past the fill
// cap, each with its largest non-energy holding.
func (c *Colony) Overstocked() []Overstock {
	var out []Overstock
	for _, s := range c.Sites {
		n := s.Node
		if s.Swap || !n.Owned || n.Terminal.Total() < c.cfg.TerminalFillCap {
			continue
		}
		var top colony.Resource
		for _, r := range colony.TradeResources {
			if r != colony.Energy && n.Terminal.Get(r) > n.Terminal.Get(top) {
				top = r
			}
		}
		if top == "" {
			continue
		}
		out = append(out, Overstock{Site: n.Site, Resource: top, Amount: min(excessLot, n.Terminal.Get(top))})
	}
	return out
}
