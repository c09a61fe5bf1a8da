// Package tuning holds the thresholds, prices and intervals that drive the
// terminal network and the marketplace, loaded from tuning.yaml.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-empire/internal/colony"
)

type Tuning struct {
	// Per-node target quantity used to size shipments and detect shortage.
	ReserveAmount int `yaml:"reserve_amount"`
	// Fixed energy shipment per cycle.
	TradeEnergyAmount int `yaml:"trade_energy_amount"`
	// Energy shipments farther than this are dropped unless the network is in
	// severe mode or the sender's storage is near capacity.
	TradeMaxDistance int `yaml:"trade_max_distance"`
	// Storage energy below which a starving terminal becomes a severe shortage.
	NeedEnergyThreshold int `yaml:"need_energy_threshold"`
	// Storage energy above which a node may supply energy.
	SupplyEnergyThreshold int `yaml:"supply_energy_threshold"`

	SwapEnergyNeed         int `yaml:"swap_energy_need"`         // swap terminal energy shortage level
	ShortageTerminalEnergy int `yaml:"shortage_terminal_energy"` // terminal energy shortage level
	SurplusTerminalEnergy  int `yaml:"surplus_terminal_energy"`  // terminal energy needed to supply energy
	SenderTerminalEnergy   int `yaml:"sender_terminal_energy"`   // terminal energy needed to ship anything else
	TerminalFillCap        int `yaml:"terminal_fill_cap"`        // receivers at or above this are skipped
	TerminalCapacity       int `yaml:"terminal_capacity"`        // hard terminal capacity
	NearCapacityStorage    int `yaml:"near_capacity_storage"`    // sender storage that lifts the distance cap
	MinTier                int `yaml:"min_tier"`                 // minimum production tier to trade
	MinShipment            int `yaml:"min_shipment"`             // shipments are rounded up to this

	// Marketplace.
	CreditReserve  float64 `yaml:"credit_reserve"`  // no buying below this balance
	MinLot         int     `yaml:"min_lot"`         // orders with less remaining are ignored
	DustAmount     int     `yaml:"dust_amount"`     // own orders with less remaining are cancelled
	MarketInterval uint64  `yaml:"market_interval"` // periodic market work runs when tick % interval == phase
	MarketPhase    uint64  `yaml:"market_phase"`

	// Fair value per unit, in credits. Energy's value prices transport cost.
	ResourceValue map[colony.Resource]float64 `yaml:"resource_value"`
	// Target sell price per unit for manufactured products.
	ProductPrice map[colony.Resource]float64 `yaml:"product_price"`

	// Reporting and strikes.
	ReportInterval    uint64 `yaml:"report_interval"`
	StrikeFlightTicks uint64 `yaml:"strike_flight_ticks"`

	// Swap rotation.
	SwapRange       int `yaml:"swap_range"`
	SwapRegenWindow int `yaml:"swap_regen_window"`

	// Resource rotation evaluated by the terminal network, one per cycle.
	TradeResources []colony.Resource `yaml:"trade_resources"`
}

// Default returns the tuning used when no file is supplied.
func Default() Tuning {
	return Tuning{
		ReserveAmount:         5000,
		TradeEnergyAmount:     10000,
		TradeMaxDistance:      6,
		NeedEnergyThreshold:   200000,
		SupplyEnergyThreshold: 250000,

		SwapEnergyNeed:         50000,
		ShortageTerminalEnergy: 50000,
		SurplusTerminalEnergy:  30000,
		SenderTerminalEnergy:   10000,
		TerminalFillCap:        270000,
		TerminalCapacity:       300000,
		NearCapacityStorage:    940000,
		MinTier:                6,
		MinShipment:            100,

		CreditReserve:  10000,
		MinLot:         100,
		DustAmount:     10,
		MarketInterval: 100,
		MarketPhase:    2,

		ResourceValue: map[colony.Resource]float64{
			colony.Energy:    0.05,
			colony.Hydrogen:  0.2,
			colony.Oxygen:    0.2,
			colony.Utrium:    0.2,
			colony.Lemergium: 0.2,
			colony.Keanium:   0.2,
			colony.Zynthium:  0.2,
			colony.Catalyst:  0.3,
		},
		ProductPrice: map[colony.Resource]float64{
			colony.CatalyzedUtriumAcid:        1.2,
			colony.CatalyzedKeaniumAlkalide:   1.2,
			colony.CatalyzedLemergiumAlkalide: 1.5,
			colony.CatalyzedZynthiumAlkalide:  1.2,
			colony.CatalyzedGhodiumAlkalide:   2.0,
		},

		ReportInterval:    1000,
		StrikeFlightTicks: 50000,

		SwapRange:       4,
		SwapRegenWindow: 9000,

		TradeResources: append([]colony.Resource(nil), colony.TradeResources...),
	}
}

// Load reads a tuning file. Keys missing from the file keep their defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate rejects settings the network cannot run with.
func (t Tuning) Validate() error {
	if len(t.TradeResources) == 0 {
		return fmt.Errorf("trade_resources is empty")
	}
	if t.MarketInterval == 0 {
		return fmt.Errorf("market_interval must be positive")
	}
	if t.ReportInterval == 0 {
		return fmt.Errorf("report_interval must be positive")
	}
	if t.ReserveAmount <= 0 {
		return fmt.Errorf("reserve_amount must be positive")
	}
	return nil
}

// ValueOf returns the fair value of r, zero when unknown.
func (t Tuning) ValueOf(r colony.Resource) float64 {
	return t.ResourceValue[r]
}
