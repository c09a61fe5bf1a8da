package empire

import (
	"github.com/talgya/mini-empire/internal/colony"
	"github.com/talgya/mini-empire/internal/market"
	"github.com/talgya/mini-empire/internal/tuning"
)

// fakeGeo answers distances from a table; unknown pairs are one apart.
type fakeGeo struct {
	dist       map[[2]string]int
	perHundred int
	core       string
}

func (g *fakeGeo) set(a, b string, d int) {
	if g.dist == nil {
		g.dist = make(map[[2]string]int)
	}
	g.dist[[2]string{a, b}] = d
	g.dist[[2]string{b, a}] = d
}

func (g *fakeGeo) LinearDistance(from, to string, continuous bool) int {
	if from == to {
		return 0
	}
	if d, ok := g.dist[[2]string{from, to}]; ok {
		return d
	}
	return 1
}

func (g *fakeGeo) TransactionCost(amount int, from, to string) int {
	return g.perHundred * amount / 100
}

func (g *fakeGeo) Core(site string) string {
	if g.core != "" {
		return g.core
	}
	return site
}

type sent struct {
	From, To string
	Resource colony.Resource
	Amount   int
}

type fakeTerminals struct {
	sends  []sent
	status colony.Status
	panics bool
}

func (f *fakeTerminals) Send(from string, res colony.Resource, amount int, to string) colony.Status {
	if f.panics {
		panic("terminal exploded")
	}
	if f.status != colony.OK {
		return f.status
	}
	f.sends = append(f.sends, sent{From: from, To: to, Resource: res, Amount: amount})
	return colony.OK
}

type fakeSites struct {
	nodes  map[string]*colony.Node
	spawns map[string][]string
	calls  int
}

func (f *fakeSites) Site(name string) (*colony.Node, bool) {
	n, ok := f.nodes[name]
	return n, ok
}

func (f *fakeSites) Spawns(name string) []string {
	f.calls++
	return f.spawns[name]
}

type fakeClaims struct {
	unclaimed []string
	active    map[string]bool
	status    colony.Status
}

func (f *fakeClaims) Unclaim(site string) colony.Status {
	if f.status != colony.OK {
		return f.status
	}
	f.unclaimed = append(f.unclaimed, site)
	return colony.OK
}

func (f *fakeClaims) SetSwapActive(site string, active bool) {
	if f.active == nil {
		f.active = make(map[string]bool)
	}
	f.active[site] = active
}

type harness struct {
	geo    *fakeGeo
	term   *fakeTerminals
	sites  *fakeSites
	claims *fakeClaims
	book   *market.Exchange
	emp    *Empire
}

func newHarness(cfg tuning.Tuning) *harness {
	h := &harness{
		geo:    &fakeGeo{},
		term:   &fakeTerminals{},
		sites:  &fakeSites{nodes: map[string]*colony.Node{}, spawns: map[string][]string{}},
		claims: &fakeClaims{},
		book:   market.NewExchange(100000),
	}
	h.emp = New(nil, cfg, Deps{
		Geo:       h.geo,
		Terminals: h.term,
		Sites:     h.sites,
		Claims:    h.claims,
		Book:      h.book,
	})
	return h
}

// rotation returns default tuning evaluating only res.
func rotation(res colony.Resource) tuning.Tuning {
	cfg := tuning.Default()
	cfg.TradeResources = []colony.Resource{res}
	return cfg
}

func node(site string, terminal, storage colony.Store) *colony.Node {
	return &colony.Node{Site: site, Tier: 7, Owned: true, Terminal: terminal, Storage: storage}
}

func myOrders(x *market.Exchange, side market.Side, res colony.Resource) []market.Order {
	var out []market.Order
	for _, o := range x.MyOrders() {
		if o.Side == side && o.Resource == res {
			out = append(out, o)
		}
	}
	return out
}
