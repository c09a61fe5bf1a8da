package empire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-empire/internal/colony"
)

func swapNode(site string, mineral colony.Resource, amount, regen int) *colony.Node {
	n := node(site, colony.Store{colony.Energy: 60000}, colony.Store{})
	n.Tier = 4
	n.Deposit = &colony.Deposit{Mineral: mineral, Amount: amount, TicksToRegeneration: regen}
	return n
}

func TestEngageSwapPicksScarcestMineral(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.geo.core = "CORE"
	h.emp.Init(1)
	h.emp.Register(node("HOME", colony.Store{colony.Utrium: 9000, colony.Keanium: 2000}, colony.Store{colony.Oxygen: 500}))

	active := swapNode("W0", colony.Oxygen, 0, 0)
	active.SwapActive = true
	u := swapNode("W1", colony.Utrium, 70000, 0)
	k := swapNode("W2", colony.Keanium, 70000, 0)
	depleted := swapNode("W3", colony.Lemergium, 0, 20000)
	far := swapNode("W4", colony.Zynthium, 70000, 0)
	h.geo.set("CORE", "W4", 5)
	for _, n := range []*colony.Node{active, u, k, depleted, far} {
		h.emp.RegisterSwap(n)
	}

	out := h.emp.EngageSwap("W0")
	require.True(t, out.OK())
	assert.Equal(t, 1, out.Executed)

	assert.Equal(t, []string{"W0"}, h.claims.unclaimed)
	assert.Equal(t, map[string]bool{"W0": false, "W2": true}, h.claims.active)
	assert.True(t, k.SwapActive)
}

func TestEngageSwapRegeneratingDepositQualifies(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.emp.Init(1)
	h.emp.RegisterSwap(swapNode("W1", colony.Catalyst, 0, 8999))

	h.emp.EngageSwap("W0")
	assert.True(t, h.claims.active["W1"])
}

func TestEngageSwapNoCandidate(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.emp.Init(1)
	h.emp.RegisterSwap(swapNode("W1", colony.Catalyst, 0, 9000))

	out := h.emp.EngageSwap("W0")
	assert.True(t, out.OK())
	assert.Zero(t, out.Executed)
	assert.Empty(t, h.claims.unclaimed)
}

func TestEngageSwapKeepsClaimWhenUnclaimFails(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.claims.status = colony.ErrNotOwner
	h.emp.Init(1)
	h.emp.RegisterSwap(swapNode("W1", colony.Catalyst, 100, 0))

	out := h.emp.EngageSwap("W0")
	require.Len(t, out.Failures, 1)
	assert.Empty(t, h.claims.active)
}

func TestEngageSwapTiesGoToFirstFound(t *testing.T) {
	h := newHarness(rotation(colony.Hydrogen))
	h.emp.Init(1)
	h.emp.RegisterSwap(swapNode("W1", colony.Oxygen, 100, 0))
	h.emp.RegisterSwap(swapNode("W2", colony.Hydrogen, 100, 0))
	h.emp.RegisterSwap(swapNode("W3", colony.Oxygen, 100, 0))

	h.emp.EngageSwap("W0")
	assert.Equal(t, map[string]bool{"W0": false, "W1": true}, h.claims.active)
}
