// Package market provides the order-book vocabulary the empire trades through,
// the Book interface it consumes, and Exchange, an in-memory order book.
package market

import (
	"fmt"

	"github.com/talgya/mini-empire/internal/colony"
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Order is one live order on the book.
type Order struct {
	ID        string          `json:"id"`
	Side      Side            `json:"side"`
	Resource  colony.Resource `json:"resource"`
	Price     float64         `json:"price"`     // Credits per unit
	Remaining int             `json:"remaining"` // Units still open
	Site      string          `json:"site"`      // Origin site
	Mine      bool            `json:"mine"`      // Placed by this empire
}

func (o Order) String() string {
	return fmt.Sprintf("%s %d %s @ %.3f from %s", o.Side, o.Remaining, o.Resource, o.Price, o.Site)
}

// Filter narrows an order listing. Zero fields match everything.
type Filter struct {
	Side     Side
	Resource colony.Resource
}

// Matches reports whether o passes the filter.
func (f Filter) Matches(o Order) bool {
	if f.Side != "" && o.Side != f.Side {
		return false
	}
	if f.Resource != "" && o.Resource != f.Resource {
		return false
	}
	return true
}

// Book is the marketplace as seen by the empire. Every call is synchronous
// and returns a status code instead of an error; callers log failures.
type Book interface {
	// Credits returns the empire's current balance.
	Credits() float64
	// AllOrders lists every live order matching f, ours included.
	AllOrders(f Filter) []Order
	// MyOrders lists the empire's own live orders.
	MyOrders() []Order

	CreateOrder(side Side, res colony.Resource, price float64, amount int, site string) colony.Status
	CancelOrder(id string) colony.Status
	ChangeOrderPrice(id string, price float64) colony.Status
	// Deal trades up to amount units against someone else's order, settling at site.
	Deal(id string, amount int, site string) colony.Status
}
