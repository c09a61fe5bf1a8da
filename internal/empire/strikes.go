package empire

import (
	"fmt"
	"log/slog"
)

// AddStrike starts tracking a strike launched at tick toward site.
func (e *Empire) AddStrike(tick uint64, site string) {
	if site == "" {
		return
	}
	e.Memory.ActiveStrikes = append(e.Memory.ActiveStrikes, Strike{Tick: tick, Site: site})
}

// StrikeReport returns one line per strike still in flight at tick. Strikes
// that have landed are dropped from memory.
func (e *Empire) StrikeReport(tick uint64) []string {
	flight := e.cfg.StrikeFlightTicks
	var lines []string
	kept := e.Memory.ActiveStrikes[:0]
	for _, s := range e.Memory.ActiveStrikes {
		var elapsed uint64
		if tick > s.Tick {
			elapsed = tick - s.Tick
		}
		if elapsed >= flight {
			continue
		}
		kept = append(kept, s)
		lines = append(lines, fmt.Sprintf("%d ticks since launch, %d till our strike lands in %s",
			elapsed, flight-elapsed, s.Site))
	}
	e.Memory.ActiveStrikes = kept
	return lines
}

// reportStrikes logs the strike report and the status line on the report
// interval.
func (e *Empire) reportStrikes() Outcome {
	var out Outcome
	tick := e.cycle.Tick
	if tick%e.cfg.ReportInterval != 0 {
		return out
	}
	for _, line := range e.StrikeReport(tick) {
		slog.Info(line, "component", "EMPIRE")
		e.record("strike", "%s", line)
		out.Executed++
	}
	if e.deps.Book != nil {
		slog.Info(e.StatusLine(), "component", "EMPIRE")
	}
	return out
}
