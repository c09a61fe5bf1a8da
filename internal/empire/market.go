package empire

import (
	"log/slog"
	"math"

	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/market"
)

// marketDue reports whether the periodic market work runs this tick.
func (e *Empire) marketDue() bool {
	return e.cycle.Tick%e.cfg.MarketInterval == e.cfg.MarketPhase
}

// orderCount counts our live orders for (side, res). While scanning it
// cancels any of our orders, of any type, left with only dust, and lowers the
// price of matching orders to adjustPrice when that is cheaper. An
// adjustPrice of zero leaves prices alone.
func (e *Empire) orderCount(side market.Side, res colony.Resource, adjustPrice float64, out *Outcome) int {
	book := e.deps.Book
	count := 0
	for _, o := range book.MyOrders() {
		if e.sweepDust(o, out) {
			continue
		}
		if o.Side != side || o.Resource != res {
			continue
		}
		count++
		if adjustPrice > 0 && adjustPrice < o.Price {
			slog.Info("lowering order price", "component", "MARKET",
				"resource", res, "side", side, "from", o.Price, "to", adjustPrice)
			if status := book.ChangeOrderPrice(o.ID, adjustPrice); status != colony.OK {
				out.fail(&MarketError{Op: "reprice", OrderID: o.ID, Resource: res, Amount: o.Remaining, Price: adjustPrice, Site: o.Site, Status: status})
			}
		}
	}
	return count
}

// sweepDust cancels o when only dust is left on it and reports whether it did
// so. Every scan of our orders passes each order through it.
func (e *Empire) sweepDust(o market.Order, out *Outcome) bool {
	if o.Remaining >= e.cfg.DustAmount {
		return false
	}
	if status := e.deps.Book.CancelOrder(o.ID); status != colony.OK {
		out.fail(&MarketError{Op: "cancel", OrderID: o.ID, Resource: o.Resource, Amount: o.Remaining, Price: o.Price, Site: o.Site, Status: status})
	}
	return true
}

// removeOrders cancels every one of our orders for (side, res), and any dust
// order met along the way.
func (e *Empire) removeOrders(side market.Side, res colony.Resource, out *Outcome) {
	book := e.deps.Book
	for _, o := range book.MyOrders() {
		if e.sweepDust(o, out) || o.Side != side || o.Resource != res {
			continue
		}
		if status := book.CancelOrder(o.ID); status != colony.OK {
			out.fail(&MarketError{Op: "cancel", OrderID: o.ID, Resource: res, Amount: o.Remaining, Price: o.Price, Site: o.Site, Status: status})
		}
	}
}

// unitTransport is the per-unit transport cost between two sites, in credits.
func (e *Empire) unitTransport(from, to string) float64 {
	perHundred := e.deps.Geo.TransactionCost(100, from, to)
	return float64(perHundred) / 100 * e.cfg.ValueOf(colony.Energy)
}

// buyShortages buys every raw mineral the empire is not abundant in, at the
// terminal holding the least of it.
func (e *Empire) buyShortages() Outcome {
	var out Outcome
	if e.deps.Book.Credits() < e.cfg.CreditReserve || !e.marketDue() {
		return out
	}

	for _, m := range colony.RawMinerals {
		if e.HasAbundance(m, e.cfg.ReserveAmount) {
			continue
		}
		slog.Info("not enough mineral, attempting to purchase", "component", "EMPIRE", "resource", m)
		if n := e.FindBestTerminal(m, Lowest); n != nil {
			e.buyMineral(n, m, &out)
		}
	}
	return out
}

// BuyMineral buys res for the registered site through the marketplace.
func (e *Empire) BuyMineral(site string, res colony.Resource) Outcome {
	return e.guard("buy-mineral", func() Outcome {
		var out Outcome
		for _, n := range e.cycle.terminals {
			if n.Site == site {
				e.buyMineral(n, res, &out)
				break
			}
		}
		return out
	})
}

// buyMineral takes the cheapest sell order for res, transport included, when
// it is within fair value, and keeps one buy order open at the best price seen.
func (e *Empire) buyMineral(n *colony.Node, res colony.Resource, out *Outcome) {
	if e.cfg.TerminalCapacity-n.Terminal.Total() < e.cfg.ReserveAmount {
		e.fullWarn.Do(func() {
			slog.Warn("wanted to buy mineral but lowest terminal was full", "component", "EMPIRE",
				"site", n.Site, "resource", res)
		})
		return
	}

	e.removeOrders(market.Sell, res, out)

	var best *market.Order
	lowestExpense := math.MaxFloat64
	for _, o := range e.deps.Book.AllOrders(market.Filter{Side: market.Sell, Resource: res}) {
		if o.Mine || o.Remaining < e.cfg.MinLot {
			continue
		}
		expense := o.Price + e.unitTransport(n.Site, o.Site)
		if expense < lowestExpense {
			lowestExpense = expense
			best = &o
			slog.Debug("could buy", "component", "MARKET", "from", o.Site, "price", o.Price, "expense", expense)
		}
	}
	if best == nil {
		return
	}

	if lowestExpense <= e.cfg.ValueOf(res) {
		amount := min(best.Remaining, e.cfg.ReserveAmount)
		status := e.deps.Book.Deal(best.ID, amount, n.Site)
		if status != colony.OK {
			out.fail(&MarketError{Op: "deal", OrderID: best.ID, Resource: res, Amount: amount, Price: best.Price, Site: n.Site, Status: status})
		} else {
			out.Executed++
			slog.Info("bought", "component", "MARKET", "amount", amount, "resource", res, "from", best.Site, "site", n.Site)
			e.record("market", "%s bought %d %s from %s at %.3f", n.Site, amount, res, best.Site, best.Price)
		}
	}

	if e.orderCount(market.Buy, res, 0, out) == 0 {
		amount := e.cfg.ReserveAmount * 2
		status := e.deps.Book.CreateOrder(market.Buy, res, best.Price, amount, n.Site)
		if status != colony.OK {
			out.fail(&MarketError{Op: "create", Resource: res, Amount: amount, Price: best.Price, Site: n.Site, Status: status})
			return
		}
		out.Executed++
		slog.Info("placed buy order", "component", "MARKET", "resource", res, "price", best.Price, "site", n.Site)
		e.record("market", "buy order for %d %s at %.3f to %s", amount, res, best.Price, n.Site)
	}
}

// sellCompounds keeps one sell order open per product at its target price,
// posted from the stocked terminal farthest from the nearest competitor.
func (e *Empire) sellCompounds() Outcome {
	var out Outcome
	if !e.marketDue() {
		return out
	}

	for _, product := range colony.Products {
		price, ok := e.cfg.ProductPrice[product]
		if !ok || price <= 0 {
			continue
		}
		if e.orderCount(market.Sell, product, price, &out) > 0 {
			continue
		}

		var stocked []*colony.Node
		for _, n := range e.cycle.terminals {
			if n.Terminal.Get(product) >= e.cfg.ReserveAmount {
				stocked = append(stocked, n)
			}
		}
		if len(stocked) == 0 {
			continue
		}
		slog.Info("no orders for product, creating one", "component", "MARKET", "resource", product)

		var competition []string
		for _, o := range e.deps.Book.AllOrders(market.Filter{Side: market.Sell, Resource: product}) {
			if !o.Mine {
				competition = append(competition, o.Site)
			}
		}

		var best *colony.Node
		farthest := 0
		for _, n := range stocked {
			nearest := math.MaxInt
			for _, site := range competition {
				if d := e.deps.Geo.LinearDistance(site, n.Site, false); d < nearest {
					nearest = d
				}
			}
			if nearest > farthest {
				farthest = nearest
				best = n
			}
		}
		if best == nil {
			continue
		}

		status := e.deps.Book.CreateOrder(market.Sell, product, price, e.cfg.ReserveAmount, best.Site)
		if status != colony.OK {
			out.fail(&MarketError{Op: "create", Resource: product, Amount: e.cfg.ReserveAmount, Price: price, Site: best.Site, Status: status})
			continue
		}
		out.Executed++
		e.record("market", "sell order for %d %s at %.3f from %s", e.cfg.ReserveAmount, product, price, best.Site)
	}
	return out
}

// SellExcess sells up to dealAmount of res from site into the most profitable
// buy order, transport included, and leaves a sell order open at that price
// for follow-on demand. Callers outside the periodic cycle use it to unload
// stock.
func (e *Empire) SellExcess(site string, res colony.Resource, dealAmount int) Outcome {
	return e.guard("sell-excess", func() Outcome {
		var out Outcome
		if site == "" || dealAmount <= 0 {
			return out
		}
		book := e.deps.Book
		orders := book.AllOrders(market.Filter{Side: market.Buy, Resource: res})

		e.removeOrders(market.Buy, res, &out)

		var best *market.Order
		highestGain := 0.0
		for _, o := range orders {
			if o.Mine || o.Remaining < e.cfg.MinLot {
				continue
			}
			gain := o.Price - e.unitTransport(site, o.Site)
			if gain > highestGain {
				highestGain = gain
				best = &o
				slog.Debug("could sell", "component", "MARKET", "to", o.Site, "price", o.Price, "gain", gain)
			}
		}
		if best == nil {
			return out
		}

		amount := min(best.Remaining, dealAmount)
		status := book.Deal(best.ID, amount, site)

		if e.orderCount(market.Sell, res, best.Price, &out) == 0 {
			if s := book.CreateOrder(market.Sell, res, best.Price, dealAmount*2, site); s != colony.OK {
				out.fail(&MarketError{Op: "create", Resource: res, Amount: dealAmount * 2, Price: best.Price, Site: site, Status: s})
			} else {
				out.Executed++
				slog.Info("placed sell order", "component", "MARKET", "resource", res, "price", best.Price, "site", site)
				e.record("market", "sell order for %d %s at %.3f from %s", dealAmount*2, res, best.Price, site)
			}
		}

		switch status {
		case colony.OK:
			out.Executed++
			slog.Info("sold", "component", "MARKET", "amount", amount, "resource", res, "to", best.Site)
			e.record("market", "%s sold %d %s to %s at %.3f", site, amount, res, best.Site, best.Price)
		case colony.ErrInvalidArgs:
			slog.Warn("invalid deal args", "component", "MARKET", "order", best.ID, "amount", amount, "site", site)
			out.fail(&MarketError{Op: "deal", OrderID: best.ID, Resource: res, Amount: amount, Price: best.Price, Site: site, Status: status})
		default:
			out.fail(&MarketError{Op: "deal", OrderID: best.ID, Resource: res, Amount: amount, Price: best.Price, Site: site, Status: status})
		}
		return out
	})
}
