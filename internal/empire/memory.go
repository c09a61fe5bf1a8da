package empire

// Strike tracks one long-range strike in flight.
type Strike struct {
	Tick uint64 `json:"tick" db:"tick"` // Launch tick
	Site string `json:"site" db:"site"` // Target site
}

// Memory is the empire state that survives across cycles. It is mutated in
// place by whichever step needs it and saved by the host between cycles.
type Memory struct {
	TradeIndex    int      `json:"trade_index"` // Next position in the trade rotation
	AllyForts     []string `json:"ally_forts"`
	AllySwaps     []string `json:"ally_swaps"`
	ActiveStrikes []Strike `json:"active_strikes"`
}

// NewMemory returns empty memory with the rotation at its start.
func NewMemory() *Memory {
	return &Memory{
		AllyForts:     []string{},
		AllySwaps:     []string{},
		ActiveStrikes: []Strike{},
	}
}

// union appends the names not already present, keeping first-seen order.
func union(existing []string, names []string) []string {
	seen := make(map[string]bool, len(existing)+len(names))
	for _, n := range existing {
		seen[n] = true
	}
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		existing = append(existing, n)
	}
	return existing
}
