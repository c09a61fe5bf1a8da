package empire

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-empire/internal/colony"
)

// StatusLine summarizes the current cycle in one line.
func (e *Empire) StatusLine() string {
	c := e.cycle
	credits := 0.0
	if e.deps.Book != nil {
		credits = e.deps.Book.Credits()
	}
	return fmt.Sprintf("tick %s | trading %s | shortages %d severe %d surpluses %d | nodes %d | credits %s | energy %s",
		humanize.Comma(int64(c.Tick)),
		c.Resource,
		len(c.shortages), len(c.severe), len(c.surpluses),
		len(c.terminals),
		humanize.Comma(int64(credits)),
		humanize.Comma(int64(e.Inventory()[colony.Energy])),
	)
}
