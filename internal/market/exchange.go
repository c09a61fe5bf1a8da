package market

import (
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/mini-empire/internal/colony"
)

// OrderFeeRate is the listing fee charged on price × amount when an order is created.
const OrderFeeRate = 0.05

// Settlement describes goods changing hands in a deal or fill.
type Settlement struct {
	Order  Order // Order state before the trade
	Amount int
	Site   string // Our site; the order's site is the counterparty
}

// Exchange is an in-memory order book. Third-party orders enter through List;
// the empire's orders through CreateOrder. Safe for concurrent use.
type Exchange struct {
	mu      sync.Mutex
	orders  map[string]*Order
	listing []string // Listing order, oldest first
	credits float64

	// OnDeal settles goods for a deal the empire initiates. A non-OK status
	// aborts the deal before credits or remaining amounts change. It runs with
	// the book locked and must not call back into the Exchange.
	OnDeal func(s Settlement) colony.Status
}

// NewExchange creates an empty book with the given credit balance.
func NewExchange(credits float64) *Exchange {
	return &Exchange{
		orders:  make(map[string]*Order),
		credits: credits,
	}
}

// List posts a third-party order and returns its ID.
func (x *Exchange) List(o Order) string {
	x.mu.Lock()
	defer x.mu.Unlock()

	o.ID = uuid.NewString()
	o.Mine = false
	x.insert(&o)
	return o.ID
}

// Credits returns the empire's balance.
func (x *Exchange) Credits() float64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.credits
}

// AllOrders lists live orders matching f in listing order.
func (x *Exchange) AllOrders(f Filter) []Order {
	x.mu.Lock()
	defer x.mu.Unlock()

	var out []Order
	for _, id := range x.listing {
		o := x.orders[id]
		if f.Matches(*o) {
			out = append(out, *o)
		}
	}
	return out
}

// MyOrders lists the empire's live orders in listing order.
func (x *Exchange) MyOrders() []Order {
	x.mu.Lock()
	defer x.mu.Unlock()

	var out []Order
	for _, id := range x.listing {
		if o := x.orders[id]; o.Mine {
			out = append(out, *o)
		}
	}
	return out
}

// Order returns a live order by ID.
func (x *Exchange) Order(id string) (Order, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	o, ok := x.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// CreateOrder posts an order for the empire, charging the listing fee.
func (x *Exchange) CreateOrder(side Side, res colony.Resource, price float64, amount int, site string) colony.Status {
	if (side != Buy && side != Sell) || res == "" || price <= 0 || amount <= 0 || site == "" {
		return colony.ErrInvalidArgs
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	fee := price * float64(amount) * OrderFeeRate
	if fee > x.credits {
		return colony.ErrNotEnoughResources
	}
	x.credits -= fee

	x.insert(&Order{
		ID:        uuid.NewString(),
		Side:      side,
		Resource:  res,
		Price:     price,
		Remaining: amount,
		Site:      site,
		Mine:      true,
	})
	return colony.OK
}

// CancelOrder removes one of the empire's orders.
func (x *Exchange) CancelOrder(id string) colony.Status {
	x.mu.Lock()
	defer x.mu.Unlock()

	o, ok := x.orders[id]
	if !ok {
		return colony.ErrInvalidArgs
	}
	if !o.Mine {
		return colony.ErrNotOwner
	}
	x.remove(id)
	return colony.OK
}

// ChangeOrderPrice reprices one of the empire's orders.
func (x *Exchange) ChangeOrderPrice(id string, price float64) colony.Status {
	x.mu.Lock()
	defer x.mu.Unlock()

	o, ok := x.orders[id]
	if !ok || price <= 0 {
		return colony.ErrInvalidArgs
	}
	if !o.Mine {
		return colony.ErrNotOwner
	}
	o.Price = price
	return colony.OK
}

// Deal trades up to amount units against a third-party order.
func (x *Exchange) Deal(id string, amount int, site string) colony.Status {
	x.mu.Lock()
	defer x.mu.Unlock()

	o, ok := x.orders[id]
	if !ok || o.Mine || amount <= 0 || site == "" {
		return colony.ErrInvalidArgs
	}
	amount = min(amount, o.Remaining)

	value := o.Price * float64(amount)
	if o.Side == Sell && value > x.credits {
		return colony.ErrNotEnoughResources
	}

	if x.OnDeal != nil {
		if status := x.OnDeal(Settlement{Order: *o, Amount: amount, Site: site}); status != colony.OK {
			return status
		}
	}

	if o.Side == Sell {
		x.credits -= value
	} else {
		x.credits += value
	}
	x.consume(o, amount)
	return colony.OK
}

// Fill lets a third party trade against one of the empire's orders.
// It returns the units actually filled.
func (x *Exchange) Fill(id string, amount int) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	o, ok := x.orders[id]
	if !ok || !o.Mine || amount <= 0 {
		return 0
	}
	amount = min(amount, o.Remaining)
	value := o.Price * float64(amount)
	if o.Side == Sell {
		x.credits += value
	} else {
		if value > x.credits {
			return 0
		}
		x.credits -= value
	}
	x.consume(o, amount)
	return amount
}

func (x *Exchange) insert(o *Order) {
	x.orders[o.ID] = o
	x.listing = append(x.listing, o.ID)
}

func (x *Exchange) consume(o *Order, amount int) {
	o.Remaining -= amount
	if o.Remaining <= 0 {
		x.remove(o.ID)
	}
}

func (x *Exchange) remove(id string) {
	delete(x.orders, id)
	for i, lid := range x.listing {
		if lid == id {
			x.listing = append(x.listing[:i], x.listing[i+1:]...)
			break
		}
	}
}
