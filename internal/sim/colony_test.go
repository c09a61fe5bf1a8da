package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/empire"
	"github.com/talgya/mini-empire/internal/market"
	"github.com/talgya/mini-empire/internal/tuning"
	"github.com/talgya/mini-empire/internal/world"
)

// testColony lays out five trade sites along the east axis and two swap
// sites close to the core of sector E5S5.
func testColony(t *testing.T) *Colony {
	t.Helper()
	m := world.NewMap(20)
	var seeds []world.SiteSeed
	for i := 0; i < 5; i++ {
		coord := world.HexCoord{Q: i * 2, R: 0}
		seeds = append(seeds, world.SiteSeed{
			Name: m.Place(coord), Coord: coord, Tier: 7, Mineral: colony.Hydrogen, Richness: 0.5,
		})
	}
	for i := 0; i < 2; i++ {
		coord := world.HexCoord{Q: 4 + i, R: 4}
		seeds = append(seeds, world.SiteSeed{
			Name: m.Place(coord), Coord: coord, Tier: 4, Swap: true, Mineral: colony.Oxygen, Richness: 0.5,
		})
	}
	return New(m, seeds, tuning.Default(), 50000, 7)
}

type recorder struct {
	trade, swap []string
}

func (r *recorder) Register(n *colony.Node)     { r.trade = append(r.trade, n.Site) }
func (r *recorder) RegisterSwap(n *colony.Node) { r.swap = append(r.swap, n.Site) }

func TestNewColony(t *testing.T) {
	c := testColony(t)
	require.Len(t, c.Sites, 7)

	assert.Equal(t, []string{c.Sites[4].Node.Site}, c.Allies())

	a := c.Sites[0]
	assert.Equal(t, 200000, a.Node.Storage.Get(colony.Energy))
	assert.Equal(t, 30000, a.Node.Terminal.Get(colony.Energy))
	assert.NotEmpty(t, a.Spawns)
	assert.Equal(t, colony.Products[0], a.Product)

	first, second := c.Sites[5], c.Sites[6]
	assert.True(t, first.Node.SwapActive, "first swap site in a sector is active")
	assert.False(t, second.Node.SwapActive)
	assert.True(t, second.Claimed, "idle swap sites stay claimed")
	assert.Empty(t, first.Spawns)
}

func TestRegisterAll(t *testing.T) {
	c := testColony(t)
	var r recorder
	c.RegisterAll(&r)

	assert.Len(t, r.trade, 4, "allies are not registered as our own")
	assert.Equal(t, []string{c.Sites[5].Node.Site, c.Sites[6].Node.Site}, r.swap)
}

func TestSendChargesTransport(t *testing.T) {
	c := testColony(t)
	c.Begin(10)
	from, to := c.Sites[0].Node, c.Sites[1].Node
	from.Terminal.Add(colony.Hydrogen, 1000)

	cost := c.Map.TransactionCost(1000, from.Site, to.Site)
	require.Positive(t, cost)

	require.Equal(t, colony.OK, c.Send(from.Site, colony.Hydrogen, 1000, to.Site))
	assert.Zero(t, from.Terminal.Get(colony.Hydrogen))
	assert.Equal(t, 30000-cost, from.Terminal.Get(colony.Energy))
	assert.Equal(t, 1000, to.Terminal.Get(colony.Hydrogen))

	assert.Equal(t, colony.ErrTired, c.Send(from.Site, colony.Energy, 100, to.Site))
	c.Begin(11)
	assert.Equal(t, colony.OK, c.Send(from.Site, colony.Energy, 100, to.Site))
}

func TestSendRefusals(t *testing.T) {
	c := testColony(t)
	c.Begin(1)
	a, b, ally := c.Sites[0].Node, c.Sites[1].Node, c.Sites[4].Node

	assert.Equal(t, colony.ErrNotFound, c.Send("nowhere", colony.Energy, 100, b.Site))
	assert.Equal(t, colony.ErrNotOwner, c.Send(ally.Site, colony.Energy, 100, a.Site))
	assert.Equal(t, colony.ErrInvalidArgs, c.Send(a.Site, colony.Energy, 0, b.Site))
	assert.Equal(t, colony.ErrNotEnoughResources, c.Send(a.Site, colony.Catalyst, 100, b.Site))

	b.Terminal.Add(colony.Oxygen, tuning.Default().TerminalCapacity-b.Terminal.Total())
	assert.Equal(t, colony.ErrFull, c.Send(a.Site, colony.Energy, 100, b.Site))
}

func TestProduceHaulsAndMines(t *testing.T) {
	c := testColony(t)
	a := c.Sites[0].Node
	before := a.Storage.Get(colony.Energy)

	c.Produce()

	assert.Equal(t, 30000+haulPerTick, a.Terminal.Get(colony.Energy), "hauls a load into the terminal")
	assert.Equal(t, before+energyPerTier*7-haulPerTick, a.Storage.Get(colony.Energy))
	assert.Equal(t, mineRate, a.Terminal.Get(colony.Hydrogen))
	assert.Equal(t, productRate, a.Terminal.Get(colony.Products[0]))

	idle := c.Sites[6].Node
	assert.Zero(t, idle.Terminal.Get(colony.Oxygen), "idle swap sites do not mine")
}

func TestSwapClaims(t *testing.T) {
	c := testColony(t)
	active, idle := c.Sites[5], c.Sites[6]

	require.Equal(t, colony.OK, c.Unclaim(active.Node.Site))
	assert.Equal(t, colony.ErrNotOwner, c.Unclaim(active.Node.Site))
	c.SetSwapActive(active.Node.Site, false)
	c.SetSwapActive(idle.Node.Site, true)

	assert.True(t, idle.Claimed)
	assert.True(t, idle.Node.SwapActive)
	assert.False(t, active.Claimed)
	assert.False(t, active.Node.SwapActive)
	assert.Equal(t, colony.ErrNotFound, c.Unclaim("nowhere"))
}

func TestDepletedSwaps(t *testing.T) {
	c := testColony(t)
	assert.Empty(t, c.DepletedSwaps())
	c.Sites[5].Node.Deposit.Amount = 0
	assert.Equal(t, []string{c.Sites[5].Node.Site}, c.DepletedSwaps())
}

func TestDealSettlesGoods(t *testing.T) {
	c := testColony(t)
	a := c.Sites[0].Node
	id := c.Exchange.List(market.Order{Side: market.Sell, Resource: colony.Keanium, Price: 0.1, Remaining: 1000, Site: "W5N5"})

	require.Equal(t, colony.OK, c.Exchange.Deal(id, 400, a.Site))
	assert.Equal(t, 400, a.Terminal.Get(colony.Keanium))
	cost := c.Map.TransactionCost(400, a.Site, "W5N5")
	assert.Equal(t, 30000-cost, a.Terminal.Get(colony.Energy))

	buy := c.Exchange.List(market.Order{Side: market.Buy, Resource: colony.Keanium, Price: 0.2, Remaining: 1000, Site: "W5N5"})
	assert.Equal(t, colony.ErrNotEnoughResources, c.Exchange.Deal(buy, 900, a.Site))
	o, _ := c.Exchange.Order(buy)
	assert.Equal(t, 1000, o.Remaining, "a refused settlement leaves the order untouched")
}

func TestSeedOrdersTopsUp(t *testing.T) {
	c := testColony(t)
	c.SeedOrders()
	c.SeedOrders()

	for _, side := range []market.Side{market.Buy, market.Sell} {
		orders := c.Exchange.AllOrders(market.Filter{Side: side, Resource: colony.Hydrogen})
		assert.Len(t, orders, ordersPerBook)
	}
	assert.Len(t, c.Exchange.AllOrders(market.Filter{Side: market.Sell, Resource: colony.CatalyzedGhodiumAlkalide}), ordersPerBook)
}

func TestFillOrdersMovesGoods(t *testing.T) {
	c := testColony(t)
	a := c.Sites[0].Node
	a.Terminal.Add(colony.Utrium, 5000)
	require.Equal(t, colony.OK, c.Exchange.CreateOrder(market.Sell, colony.Utrium, 1, 5000, a.Site))

	filled := 0
	for i := 0; i < 200 && filled == 0; i++ {
		filled = c.FillOrders()
	}
	require.Positive(t, filled)
	assert.Equal(t, 5000-filled, a.Terminal.Get(colony.Utrium))
}

func TestOverstocked(t *testing.T) {
	c := testColony(t)
	a := c.Sites[0].Node
	a.Terminal.Add(colony.Zynthium, 250000)

	got := c.Overstocked()
	require.Len(t, got, 1)
	assert.Equal(t, Overstock{Site: a.Site, Resource: colony.Zynthium, Amount: excessLot}, got[0])
}

func TestDepletedSwapMovesToIdleSite(t *testing.T) {
	c := testColony(t)
	active, idle := c.Sites[5], c.Sites[6]
	active.Node.Deposit.Amount = 0
	require.Equal(t, []string{active.Node.Site}, c.DepletedSwaps())

	emp := empire.New(nil, tuning.Default(), empire.Deps{
		Geo:       c.Map,
		Terminals: c,
		Sites:     c,
		Claims:    c,
		Book:      c.Exchange,
	})
	emp.Init(1)
	c.Begin(1)
	c.RegisterAll(emp)

	out := emp.EngageSwap(active.Node.Site)
	require.True(t, out.OK(), "%v", out.Failures)
	assert.Equal(t, 1, out.Executed)

	assert.True(t, idle.Node.SwapActive)
	assert.True(t, idle.Claimed)
	assert.False(t, active.Node.SwapActive)
	assert.False(t, active.Claimed)
	assert.Empty(t, c.DepletedSwaps())

	c.Produce()
	assert.Equal(t, mineRate, idle.Node.Terminal.Get(colony.Oxygen))
}
