// Command contato runs the linguistic contact simulation headless and
// exports the resulting time series as CSV.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contato-sim/contato/config"
	"github.com/contato-sim/contato/sim"
	"github.com/contato-sim/contato/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	years := flag.Int("years", 0, "Simulated years (0 = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for series.csv and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output every time series record via slog")

	flag.Parse()

	// Structured JSON logging to stdout
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *years > 0 {
		cfg.Run.Years = *years
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}

	model, err := sim.New(cfg)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	model.OnRecord(func(rec telemetry.Record) {
		if err := output.WriteRecord(rec); err != nil {
			slog.Error("failed to write record", "error", err)
		}
		if *logStats {
			slog.Info("record", "stats", rec)
		}
	})

	// SIGINT/SIGTERM stop the run between monthly steps; the partial
	// series is still written.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("stop requested")
		model.Stop()
	}()

	slog.Info("starting simulation",
		"seed", cfg.Run.Seed,
		"years", cfg.Run.Years,
		"residents", cfg.Population.InitialResidents,
		"migrants", cfg.Population.InitialMigrants,
		"districts", len(cfg.Districts),
	)

	series, err := model.Run()
	if err != nil {
		slog.Error("run aborted", "error", err, "steps_completed", model.Progress())
		os.Exit(1)
	}

	last := telemetry.Record{}
	if len(series) > 0 {
		last = series[len(series)-1]
	}
	slog.Info("simulation complete",
		"steps", model.Progress(),
		"records", len(series),
		"residents", last.Residents,
		"migrants", last.Migrants,
		"resident_vocabulary", last.ResidentVocabulary,
		"migrant_vocabulary", last.MigrantVocabulary,
	)
}
