// Command register is the operator CLI for the cash register session lifecycle.
//
// Every invocation runs one subcommand against the configured store backend:
//
//	register open -count 20=5 -count 0.25=8
//	register sale -amount 12.50 -method cash -order A-1001
//	register preview -count 20=5 -count 0.25=8
//	register close -count 20=6 -count 0.25=8
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ipang84/retailmaster/internal/adapter/kvstore"
	"github.com/ipang84/retailmaster/internal/adapter/metrics"
	"github.com/ipang84/retailmaster/internal/app"
	"github.com/ipang84/retailmaster/internal/platform/config"
	"github.com/ipang84/retailmaster/internal/platform/correlation"
	"github.com/ipang84/retailmaster/internal/platform/logging"
	"github.com/ipang84/retailmaster/internal/platform/version"
	"github.com/jonboulle/clockwork"
)

const exitUsage = 64

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return 0
	case "version":
		fmt.Fprintln(stdout, version.Get())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logging.InitLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	ctx = correlation.WithCommand(ctx, args[0])
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	reg := metrics.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(reg)
	registerMetrics := metrics.NewRegisterMetrics(reg)

	clock := clockwork.NewRealClock()
	kv, closeKV, err := openBackend(ctx, cfg, clock)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to open store", "backend", cfg.StoreBackend, "error", err)
		fmt.Fprintf(stderr, "store: %v\n", err)
		return 1
	}
	defer closeKV()

	store := kvstore.New(kvstore.Instrument(kv, cfg.StoreBackend, storeMetrics), cfg.KeyPrefix)
	c := &cli{
		register: app.NewRegister(store, clock, app.WithMetrics(registerMetrics)),
		clock:    clock,
		loc:      loc,
		stdout:   stdout,
		stderr:   stderr,
	}

	err = c.execute(ctx, args)

	if cfg.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsTextfile, reg); werr != nil {
			slog.WarnContext(ctx, "Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", werr)
		}
	}

	return c.report(ctx, err)
}
