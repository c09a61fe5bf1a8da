package empire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-empire/internal/colony"
)

func TestNetworkNoMatchWithoutSupplier(t *testing.T) {
	cfg := rotation(colony.Energy)
	cfg.SupplyEnergyThreshold = 400000
	cfg.NeedEnergyThreshold = 50000
	h := newHarness(cfg)

	h.emp.Init(1)
	h.emp.Register(node("A", colony.Store{colony.Energy: 60000}, colony.Store{colony.Energy: 100000}))
	h.emp.Register(node("B", colony.Store{colony.Energy: 10000}, colony.Store{colony.Energy: 5000}))

	c := h.emp.Cycle()
	require.Len(t, c.SevereShortages(), 1)
	assert.Equal(t, "B", c.SevereShortages()[0].Site)
	assert.Empty(t, c.Surpluses())

	out := h.emp.networkTrade()
	assert.True(t, out.OK())
	assert.Zero(t, out.Executed)
	assert.Empty(t, h.term.sends)
}

func TestNetworkEachNodeSendsAndReceivesOnce(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	supply := func() colony.Store { return colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000} }

	h.emp.Init(1)
	for _, s := range []string{"S1", "S2", "S3"} {
		h.emp.Register(node(s, supply(), colony.Store{}))
	}
	h.emp.Register(node("R1", colony.Store{colony.Hydrogen: 4950}, colony.Store{}))
	h.emp.Register(node("R2", colony.Store{colony.Hydrogen: 1000}, colony.Store{}))

	h.geo.set("S1", "R1", 1)
	h.geo.set("S1", "R2", 5)
	h.geo.set("S2", "R1", 2)
	h.geo.set("S2", "R2", 3)
	h.geo.set("S3", "R1", 4)
	h.geo.set("S3", "R2", 6)

	out := h.emp.networkTrade()
	require.True(t, out.OK())

	senders := map[string]int{}
	receivers := map[string]int{}
	for _, s := range h.term.sends {
		senders[s.From]++
		receivers[s.To]++
	}
	for site, n := range senders {
		assert.Equal(t, 1, n, "sender %s", site)
	}
	for site, n := range receivers {
		assert.Equal(t, 1, n, "receiver %s", site)
	}

	// Every sender's nearest receiver is R1, so only the closest pair ships.
	require.Len(t, h.term.sends, 1)
	assert.Equal(t, sent{From: "S1", To: "R1", Resource: colony.Hydrogen, Amount: 100}, h.term.sends[0],
		"a 50 unit top-up is rounded up to the minimum shipment")
}

func TestNetworkPairsNearestFirst(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.emp.Init(1)
	h.emp.Register(node("S1", colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000}, colony.Store{}))
	h.emp.Register(node("S2", colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000}, colony.Store{}))
	h.emp.Register(node("R1", colony.Store{}, colony.Store{}))
	h.emp.Register(node("R2", colony.Store{colony.Hydrogen: 3000}, colony.Store{}))

	h.geo.set("S1", "R1", 3)
	h.geo.set("S1", "R2", 4)
	h.geo.set("S2", "R1", 5)
	h.geo.set("S2", "R2", 2)

	h.emp.networkTrade()
	require.Len(t, h.term.sends, 2)
	assert.Equal(t, sent{From: "S2", To: "R2", Resource: colony.Hydrogen, Amount: 2000}, h.term.sends[0])
	assert.Equal(t, sent{From: "S1", To: "R1", Resource: colony.Hydrogen, Amount: 5000}, h.term.sends[1])
}

func energySupplier(site string) *colony.Node {
	return node(site, colony.Store{colony.Energy: 40000}, colony.Store{colony.Energy: 300000})
}

func TestNetworkEnergyDistanceCap(t *testing.T) {
	h := newHarness(rotation(colony.Energy))
	h.emp.Init(1)
	h.emp.Register(energySupplier("S"))
	swap := node("W", colony.Store{colony.Energy: 100}, colony.Store{})
	h.emp.RegisterSwap(swap)
	h.geo.set("S", "W", 10)

	require.Len(t, h.emp.Cycle().Shortages(), 1)
	h.emp.networkTrade()
	assert.Empty(t, h.term.sends, "ordinary shortages beyond the cap are dropped")
}

func TestNetworkSevereIgnoresDistanceCap(t *testing.T) {
	h := newHarness(rotation(colony.Energy))
	h.emp.Init(1)
	h.emp.Register(energySupplier("S"))
	h.emp.Register(node("R", colony.Store{colony.Energy: 100}, colony.Store{colony.Energy: 100}))
	h.geo.set("S", "R", 10)

	require.Len(t, h.emp.Cycle().SevereShortages(), 1)
	h.emp.networkTrade()
	require.Len(t, h.term.sends, 1)
	assert.Equal(t, sent{From: "S", To: "R", Resource: colony.Energy, Amount: 10000}, h.term.sends[0])
}

func TestNetworkFullSenderIgnoresDistanceCap(t *testing.T) {
	h := newHarness(rotation(colony.Energy))
	h.emp.Init(1)
	h.emp.Register(node("S", colony.Store{colony.Energy: 40000}, colony.Store{colony.Energy: 950000}))
	h.emp.RegisterSwap(node("W", colony.Store{colony.Energy: 100}, colony.Store{}))
	h.geo.set("S", "W", 10)

	h.emp.networkTrade()
	assert.Len(t, h.term.sends, 1)
}

func TestNetworkTransferFailureIsReported(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.term.status = colony.ErrNotEnoughResources
	h.emp.Init(1)
	h.emp.Register(node("S", colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000}, colony.Store{}))
	h.emp.Register(node("R", colony.Store{}, colony.Store{}))

	out := h.emp.networkTrade()
	require.Len(t, out.Failures, 1)

	var te *TransferError
	require.True(t, errors.As(out.Failures[0], &te))
	assert.Equal(t, "S", te.From)
	assert.Equal(t, "R", te.To)
	assert.Equal(t, 5000, te.Amount)
	assert.Equal(t, colony.ErrNotEnoughResources, te.Status)
}

func TestNetworkAlliesReceiveButNeverSend(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	ally := node("E9S9", colony.Store{}, colony.Store{})
	ally.Owned = false
	rich := node("E8S8", colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000}, colony.Store{})
	rich.Owned = false
	h.sites.nodes[ally.Site] = ally
	h.sites.nodes[rich.Site] = rich
	h.emp.AddAllyForts([]string{ally.Site, rich.Site, "E7S7"})

	h.emp.Init(1)
	h.emp.Register(node("S", colony.Store{colony.Energy: 20000, colony.Hydrogen: 20000}, colony.Store{}))

	h.emp.networkTrade()
	require.Len(t, h.term.sends, 1)
	assert.Equal(t, "S", h.term.sends[0].From)
	assert.Equal(t, ally.Site, h.term.sends[0].To)

	// A second pass in the same cycle does not register the allies again.
	h.emp.registerAllies()
	assert.Len(t, h.emp.Cycle().Shortages(), 1)
}
