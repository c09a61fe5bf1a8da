// Command empiresim runs the empire's terminal network and marketplace layer
// against a generated colony, saving empire memory between runs.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/talgya/mini-empire/internal/empire"
	"github.com/talgya/mini-empire/internal/engine"
	"github.com/talgya/mini-empire/internal/persistence"
	"github.com/talgya/mini-empire/internal/sim"
	"github.com/talgya/mini-empire/internal/tuning"
	"github.com/talgya/mini-empire/internal/world"
)

const startingCredits = 250000

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := envOrDefault("EMPIRE_DB", "data/empire.db")
	tuningPath := envOrDefault("EMPIRE_TUNING", "configs/tuning.yaml")
	seed := int64(envIntOrDefault("EMPIRE_SEED", 42))
	ticks := envIntOrDefault("EMPIRE_TICKS", 0)
	intervalMS := envIntOrDefault("EMPIRE_INTERVAL_MS", 100)

	// ── Tuning ────────────────────────────────────────────────────────
	cfg, err := tuning.Load(tuningPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("tuning file not found, using defaults", "path", tuningPath)
		cfg = tuning.Default()
	case err != nil:
		slog.Error("failed to load tuning", "path", tuningPath, "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	mem, err := db.LoadMemory()
	if err != nil {
		slog.Error("failed to load empire memory", "error", err)
		os.Exit(1)
	}
	startTick, err := db.LastTick()
	if err != nil {
		slog.Error("failed to read last tick", "error", err)
		os.Exit(1)
	}

	// ── Colony (always regenerated, deterministic from seed) ──────────
	gen := world.DefaultGenConfig()
	gen.Seed = seed
	atlas, seeds := world.GenerateSites(gen)
	col := sim.New(atlas, seeds, cfg, startingCredits, seed)
	slog.Info("colony generated", "map", atlas.String(), "sites", len(col.Sites), "allies", len(col.Allies()))

	emp := empire.New(mem, cfg, empire.Deps{
		Geo:       atlas,
		Terminals: col,
		Sites:     col,
		Claims:    col,
		Book:      col.Exchange,
	})
	emp.AddAllyForts(col.Allies())

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.Interval = time.Duration(intervalMS) * time.Millisecond
	eng.ReportEvery = cfg.ReportInterval

	eng.OnInit = func(tick uint64) {
		col.Begin(tick)
		emp.Init(tick)
		if tick%cfg.MarketInterval == 0 {
			col.SeedOrders()
		}
	}
	eng.OnRegister = func(tick uint64) {
		col.RegisterAll(emp)
	}
	eng.OnSiteTasks = func(tick uint64) {
		col.Produce()
		for _, site := range col.DepletedSwaps() {
			emp.EngageSwap(site)
		}
		if tick%cfg.MarketInterval == 0 {
			for _, o := range col.Overstocked() {
				emp.SellExcess(o.Site, o.Resource, o.Amount)
			}
			if n := col.FillOrders(); n > 0 {
				slog.Debug("orders filled by third parties", "units", n)
			}
		}
	}
	eng.OnActions = func(tick uint64) {
		emp.Actions()
	}
	eng.OnReport = func(tick uint64) {
		slog.Info("exchange", "tick", tick,
			"open_orders", len(col.Exchange.MyOrders()),
			"credits", int64(col.Exchange.Credits()),
			"swaps_depleted", len(col.DepletedSwaps()))
	}
	eng.OnSave = func(tick uint64) {
		if err := db.SaveEmpireState(emp, tick); err != nil {
			slog.Error("periodic save failed", "error", err)
		}
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	if startTick > 0 {
		fmt.Printf("Resuming from tick %d\n", startTick)
	}
	if ticks > 0 {
		fmt.Printf("Running %d ticks...\n", ticks)
		eng.RunTicks(uint64(ticks))
	} else {
		fmt.Println("Starting empire... (Ctrl+C to stop)")
		eng.Run()
	}

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveEmpireState(emp, eng.Tick); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Empire stopped. State saved.")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
