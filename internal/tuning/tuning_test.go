package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-empire/internal/colony"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, colony.Energy, d.TradeResources[0])
	assert.Equal(t, 0.05, d.ValueOf(colony.Energy))
	assert.Zero(t, d.ValueOf(colony.Ghodium))
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeTuning(t, `
reserve_amount: 3000
trade_max_distance: 9
trade_resources: [energy, H]
`)
	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, got.ReserveAmount)
	assert.Equal(t, 9, got.TradeMaxDistance)
	assert.Equal(t, []colony.Resource{colony.Energy, colony.Hydrogen}, got.TradeResources)
	assert.Equal(t, Default().SupplyEnergyThreshold, got.SupplyEnergyThreshold)
	assert.Equal(t, Default().MarketInterval, got.MarketInterval)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty rotation", "trade_resources: []\n"},
		{"zero market interval", "market_interval: 0\n"},
		{"zero report interval", "report_interval: 0\n"},
		{"negative reserve", "reserve_amount: -1\n"},
		{"not yaml", "reserve_amount: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTuning(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadShippedConfig(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "configs", "tuning.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().ReserveAmount, got.ReserveAmount)
	assert.Equal(t, 1.5, got.ProductPrice[colony.CatalyzedLemergiumAlkalide])
}
