// Package colony provides the shared vocabulary of the empire: resource types,
// per-site stores, trade nodes, and the status codes returned by external calls.
package colony

// Resource identifies a tradable resource type.
type Resource string

// Base currency resource. Every transfer and marketplace deal is paid for in it.
const Energy Resource = "energy"

// Raw minerals extracted from site deposits.
const (
	Hydrogen  Resource = "H"
	Oxygen    Resource = "O"
	Utrium    Resource = "U"
	Lemergium Resource = "L"
	Keanium   Resource = "K"
	Zynthium  Resource = "Z"
	Catalyst  Resource = "X"
)

// Intermediate and manufactured compounds.
const (
	Hydroxide Resource = "OH"
	Ghodium   Resource = "G"

	UtriumAcid        Resource = "UH2O"
	KeaniumAlkalide   Resource = "KHO2"
	LemergiumAlkalide Resource = "LHO2"
	ZynthiumAlkalide  Resource = "ZHO2"
	GhodiumAlkalide   Resource = "GHO2"

	CatalyzedUtriumAcid        Resource = "XUH2O"
	CatalyzedKeaniumAlkalide   Resource = "XKHO2"
	CatalyzedLemergiumAlkalide Resource = "XLHO2"
	CatalyzedZynthiumAlkalide  Resource = "XZHO2"
	CatalyzedGhodiumAlkalide   Resource = "XGHO2"
)

// RawMinerals lists the minerals that can only be extracted or bought.
var RawMinerals = []Resource{
	Hydrogen, Oxygen, Utrium, Lemergium, Keanium, Zynthium, Catalyst,
}

// Products lists the manufactured compounds the empire sells.
var Products = []Resource{
	CatalyzedUtriumAcid,
	CatalyzedKeaniumAlkalide,
	CatalyzedLemergiumAlkalide,
	CatalyzedZynthiumAlkalide,
	CatalyzedGhodiumAlkalide,
}

// TradeResources is the default rotation evaluated by the terminal network,
// one resource per cycle.
var TradeResources = []Resource{
	Energy,
	Hydrogen, Oxygen, Utrium, Lemergium, Keanium, Zynthium, Catalyst,
	Hydroxide, Ghodium,
	UtriumAcid, KeaniumAlkalide, LemergiumAlkalide, ZynthiumAlkalide, GhodiumAlkalide,
	CatalyzedUtriumAcid, CatalyzedKeaniumAlkalide, CatalyzedLemergiumAlkalide,
	CatalyzedZynthiumAlkalide, CatalyzedGhodiumAlkalide,
}
