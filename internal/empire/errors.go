package empire

import (
	"fmt"

	"github.com/talgya/mini-empire/internal/colony"
)

// TransferError records a terminal transfer the primitive refused.
type TransferError struct {
	From     string
	To       string
	Resource colony.Resource
	Amount   int
	Status   colony.Status
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("send %d %s from %s to %s: %s", e.Amount, e.Resource, e.From, e.To, e.Status)
}

// MarketError records an order-book call that did not return OK.
type MarketError struct {
	Op       string // "deal", "create", "cancel", "reprice"
	OrderID  string
	Resource colony.Resource
	Amount   int
	Price    float64
	Site     string
	Status   colony.Status
}

func (e *MarketError) Error() string {
	return fmt.Sprintf("market %s %s (order %q, amount %d, price %.3f, site %s): %s",
		e.Op, e.Resource, e.OrderID, e.Amount, e.Price, e.Site, e.Status)
}

// Outcome is the result of one step of a cycle.
type Outcome struct {
	Step     string
	Executed int // Transfers, deals, orders and swaps carried out
	Failures []error
}

// OK reports whether the step ran without failures.
func (o Outcome) OK() bool {
	return len(o.Failures) == 0
}

func (o *Outcome) fail(err error) {
	o.Failures = append(o.Failures, err)
}
