// Package empire is the resource-logistics layer of the colony AI. Once per
// tick it aggregates the inventory of every registered site, classifies sites
// as short or in surplus for one resource in the rotation, ships resources
// between them over the terminal network, and keeps the empire's marketplace
// orders reconciled.
//
// A cycle runs in three phases, all on one goroutine:
//
//	Init      picks the cycle's resource and clears per-cycle state
//	Register  adds each eligible site (done by the site framework)
//	Actions   terminal network, market upkeep, strike report
//
// Public entry points never panic and never return escalated errors; every
// failure is logged and surfaced in the step's Outcome.
package empire

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/market"
	"github.com/talgya/mini-empire/internal/tuning"
)

const (
	// maxEvents bounds the recent-event buffer between drains.
	maxEvents = 1000
	// fullWarnEvery logs one in this many terminal-full aborts, after the first.
	fullWarnEvery = 50
)

// Geography answers map questions about sites.
type Geography interface {
	// LinearDistance returns the map distance between two sites; the
	// continuous variant measures across the wrapped map edge.
	LinearDistance(from, to string, continuous bool) int
	// TransactionCost returns the energy needed to move amount units.
	TransactionCost(amount int, from, to string) int
	// Core returns the core reference site of the sector containing site.
	Core(site string) string
}

// Terminals is the transfer primitive of the terminal network.
type Terminals interface {
	Send(from string, res colony.Resource, amount int, to string) colony.Status
}

// Sites looks up sites visible this cycle.
type Sites interface {
	Site(name string) (*colony.Node, bool)
	Spawns(name string) []string
}

// Claims changes which sites the empire holds and mines.
type Claims interface {
	Unclaim(site string) colony.Status
	SetSwapActive(site string, active bool)
}

// Deps bundles the external collaborators the empire calls into.
type Deps struct {
	Geo       Geography
	Terminals Terminals
	Sites     Sites
	Claims    Claims
	Book      market.Book
}

// Event is a notable trade or market occurrence.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "network", "market", "swap", "strike"
}

// Empire is the context object threaded through every step of a cycle.
type Empire struct {
	Memory *Memory
	Events []Event

	cfg   tuning.Tuning
	deps  Deps
	cycle *Cycle

	fullWarn rate.Sometimes
}

// New creates an empire over persisted memory. A nil memory starts fresh.
func New(mem *Memory, cfg tuning.Tuning, deps Deps) *Empire {
	if mem == nil {
		mem = NewMemory()
	}
	return &Empire{
		Memory:   mem,
		cfg:      cfg,
		deps:     deps,
		cycle:    newCycle(0, ""),
		fullWarn: rate.Sometimes{First: 1, Every: fullWarnEvery},
	}
}

// Cycle returns the current cycle state.
func (e *Empire) Cycle() *Cycle {
	return e.cycle
}

// Tuning returns the tuning the empire runs with.
func (e *Empire) Tuning() tuning.Tuning {
	return e.cfg
}

// Init starts a cycle: it advances the trade rotation and discards all
// per-cycle state. Call exactly once per tick, before any Register.
func (e *Empire) Init(tick uint64) {
	list := e.cfg.TradeResources
	if e.Memory.TradeIndex < 0 || e.Memory.TradeIndex >= len(list) {
		e.Memory.TradeIndex = 0
	}
	res := list[e.Memory.TradeIndex]
	e.Memory.TradeIndex++

	e.cycle = newCycle(tick, res)
}

// Register adds an owned site to this cycle. Its storage and terminal count
// toward the inventory, and it is classified when it has both.
func (e *Empire) Register(n *colony.Node) {
	if n == nil || !n.Owned {
		return
	}
	c := e.cycle
	if n.HasTerminal() {
		c.terminals = append(c.terminals, n)
	}
	if n.HasStorage() {
		c.storages = append(c.storages, n)
	}
	if n.HasTerminal() && n.HasStorage() {
		e.analyze(n, false)
	}
}

// RegisterSwap adds a swap candidate. Swap sites receive energy but never
// supply it, and are not counted in the inventory.
func (e *Empire) RegisterSwap(n *colony.Node) {
	if n == nil {
		return
	}
	if n.HasTerminal() {
		e.cycle.swapNodes = append(e.cycle.swapNodes, n)
	}
	e.analyze(n, true)
}

// AddAllyForts remembers allied sites that take part in the network.
func (e *Empire) AddAllyForts(sites []string) {
	e.Memory.AllyForts = union(e.Memory.AllyForts, sites)
}

// AddAllySwaps remembers allied swap sites that receive energy.
func (e *Empire) AddAllySwaps(sites []string) {
	e.Memory.AllySwaps = union(e.Memory.AllySwaps, sites)
}

// Actions runs every end-of-cycle step. A failing or panicking step does not
// stop the ones after it. Call exactly once per tick, after registration.
func (e *Empire) Actions() []Outcome {
	steps := []struct {
		name string
		run  func() Outcome
	}{
		{"network", e.networkTrade},
		{"buy-shortages", e.buyShortages},
		{"sell-compounds", e.sellCompounds},
		{"strikes", e.reportStrikes},
	}

	outcomes := make([]Outcome, 0, len(steps))
	for _, s := range steps {
		outcomes = append(outcomes, e.guard(s.name, s.run))
	}

	if len(e.Events) > maxEvents {
		e.Events = e.Events[len(e.Events)-maxEvents:]
	}
	return outcomes
}

// DrainEvents returns the buffered events and clears the buffer.
func (e *Empire) DrainEvents() []Event {
	events := e.Events
	e.Events = nil
	return events
}

// guard runs one step, converting a panic into a failure and logging every
// failure the step reports.
func (e *Empire) guard(name string, run func() Outcome) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out.Step = name
			out.fail(fmt.Errorf("%s: panic: %v", name, r))
		}
		for _, err := range out.Failures {
			slog.Error("step failed", "step", name, "tick", e.cycle.Tick, "error", err)
		}
	}()
	out = run()
	out.Step = name
	return out
}

func (e *Empire) record(category, format string, args ...any) {
	e.Events = append(e.Events, Event{
		Tick:        e.cycle.Tick,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}
