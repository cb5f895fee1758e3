// Command mapgen generates a terrain map, answers path queries on it and
// records the run in an optional SQLite catalog.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/talgya/cellmap/internal/config"
	"github.com/talgya/cellmap/internal/entropy"
	"github.com/talgya/cellmap/internal/navigation"
	"github.com/talgya/cellmap/internal/persistence"
	"github.com/talgya/cellmap/internal/world"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("mapgen failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	opts := NewOptions(os.Getenv("CELLMAP_CONFIG"))
	fs := flag.NewFlagSet("mapgen", flag.ContinueOnError)
	if err := opts.Parse(fs, args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", opts.ConfigPath, err)
		}
		cfg = loaded
		slog.Info("config loaded", "path", opts.ConfigPath)
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// ── Catalog ───────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Catalog.Enabled {
		if dir := filepath.Dir(cfg.Catalog.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create catalog dir: %w", err)
			}
		}
		var err error
		db, err = persistence.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("catalog opened", "path", cfg.Catalog.Path)
	}

	// ── Map ───────────────────────────────────────────────────────────
	var (
		grid   *world.Grid
		params world.GenParams
		runID  string
	)
	if opts.Replay != "" {
		if db == nil {
			return errors.New("-replay needs a catalog (-catalog or catalog.enabled)")
		}
		r, err := db.Run(opts.Replay)
		if err != nil {
			return err
		}
		params = r.Params
		runID = r.ID
		slog.Info("replaying run", "id", r.ID, "width", r.Width, "height", r.Height, "seed", r.Seed)
		grid = r.Replay()
	} else {
		params = cfg.GenParams()
		gen := world.NewGenerator(params)
		gen.Entropy = entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY"))
		if params.Seed == 0 && gen.Entropy.Enabled() {
			slog.Info("seed will be drawn from random.org")
		}
		grid = gen.Generate(cfg.Map.Width, cfg.Map.Height)
	}
	slog.Info("map generated",
		"width", grid.Width(),
		"height", grid.Height(),
		"cells", humanize.Comma(int64(grid.Size())),
		"seed", grid.Seed(),
	)
	logTerrain(grid)

	if db != nil && runID == "" {
		r := persistence.NewRun(grid, params)
		if err := db.SaveRun(&r); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		runID = r.ID
	}

	if cfg.Relief.Enabled {
		logRelief(grid, cfg.ReliefParams())
	}

	// ── Paths ─────────────────────────────────────────────────────────
	pf := navigation.New(grid)
	var found []*navigation.Path
	for _, q := range opts.Paths {
		p, ok := pf.FindPath(q.X1, q.Y1, q.X2, q.Y2)
		rec := persistence.PathQuery{RunID: runID, FromX: q.X1, FromY: q.Y1, ToX: q.X2, ToY: q.Y2, Found: ok}
		if ok {
			rec.Cost = p.Cost()
			rec.RealCost = p.RealCost()
			found = append(found, p)
			slog.Info("path found", "query", q, "cells", p.Cost(), "real_cost", p.RealCost())
		} else {
			slog.Info("no path", "query", q)
		}
		if db != nil {
			if err := db.SavePath(rec); err != nil {
				return err
			}
		}
	}

	if opts.ASCII {
		if err := renderASCII(out, grid, found...); err != nil {
			return err
		}
	}
	if runID != "" {
		fmt.Fprintln(out, "run:", runID)
	}
	return nil
}

func logTerrain(g *world.Grid) {
	counts := world.TerrainCounts(g)
	types := make([]world.Terrain, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		share := float64(counts[t]) / float64(g.Size()) * 100
		slog.Info("terrain",
			"type", world.TerrainName(t),
			"count", humanize.Comma(int64(counts[t])),
			"share", humanize.FtoaWithDigits(share, 2)+"%",
		)
	}
	slog.Info("coverage",
		"land", humanize.FtoaWithDigits(world.Coverage(g, world.Land)*100, 2)+"%",
		"water", humanize.FtoaWithDigits(world.Coverage(g, world.Water)*100, 2)+"%",
	)
}

func logRelief(g *world.Grid, cfg world.ReliefConfig) {
	relief := world.Relief(g, g.Seed(), cfg)
	lo, hi, sum := 1.0, 0.0, 0.0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := relief.At(x, y)
			lo = min(lo, v)
			hi = max(hi, v)
			sum += v
		}
	}
	if g.Size() == 0 {
		return
	}
	slog.Info("relief",
		"min", humanize.FtoaWithDigits(lo, 3),
		"max", humanize.FtoaWithDigits(hi, 3),
		"mean", humanize.FtoaWithDigits(sum/float64(g.Size()), 3),
	)
}
