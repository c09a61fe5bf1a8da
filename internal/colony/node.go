package colony

import "fmt"

// Store maps a resource type to the quantity held. Absent keys mean zero.
type Store map[Resource]int

// Get returns the quantity of r, zero when absent or when the store is nil.
func (s Store) Get(r Resource) int {
	if s == nil {
		return 0
	}
	return s[r]
}

// Total returns the sum of all quantities in the store.
func (s Store) Total() int {
	total := 0
	for _, qty := range s {
		total += qty
	}
	return total
}

// Add adjusts the quantity of r by delta, dropping the key when it reaches zero.
func (s Store) Add(r Resource, delta int) {
	qty := s[r] + delta
	if qty <= 0 {
		delete(s, r)
		return
	}
	s[r] = qty
}

// Deposit is the single mineral deposit of a site.
type Deposit struct {
	Mineral             Resource `json:"mineral"`
	Amount              int      `json:"amount"`
	TicksToRegeneration int      `json:"ticks_to_regeneration"`
}

// Node is a site able to take part in trade: a production location with a
// storage buffer and a transport terminal. Nodes are registered fresh every
// cycle; the network never keeps a Node across cycles.
type Node struct {
	Site  string `json:"site"`
	Tier  int    `json:"tier"`  // Production tier, 1–8
	Owned bool   `json:"owned"` // False for allied sites

	// Nil when the site has no storage buffer or no terminal.
	Storage  Store `json:"storage,omitempty"`
	Terminal Store `json:"terminal,omitempty"`

	// Mineral deposit and extraction flag, used by swap rotation.
	Deposit    *Deposit `json:"deposit,omitempty"`
	SwapActive bool     `json:"swap_active"`
}

// HasStorage reports whether the node has a storage buffer.
func (n *Node) HasStorage() bool { return n.Storage != nil }

// HasTerminal reports whether the node has a transport terminal.
func (n *Node) HasTerminal() bool { return n.Terminal != nil }

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s, tier=%d, owned=%t)", n.Site, n.Tier, n.Owned)
}

// Status is the result code of an external primitive (transfer, order, deal).
type Status int

const (
	OK                    Status = 0
	ErrNotOwner           Status = -1
	ErrNotFound           Status = -5
	ErrNotEnoughResources Status = -6
	ErrFull               Status = -8
	ErrNotInRange         Status = -9
	ErrInvalidArgs        Status = -10
	ErrTired              Status = -11
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case ErrNotOwner:
		return "ERR_NOT_OWNER"
	case ErrNotFound:
		return "ERR_NOT_FOUND"
	case ErrNotEnoughResources:
		return "ERR_NOT_ENOUGH_RESOURCES"
	case ErrFull:
		return "ERR_FULL"
	case ErrNotInRange:
		return "ERR_NOT_IN_RANGE"
	case ErrInvalidArgs:
		return "ERR_INVALID_ARGS"
	case ErrTired:
		return "ERR_TIRED"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
