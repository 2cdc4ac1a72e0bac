// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/seed"
	"github.com/tomtom215/shelfmate/internal/supervisor"
	"github.com/tomtom215/shelfmate/internal/supervisor/services"
)

// printJSON writes v to the command output, indented.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// noArgs rejects positional arguments.
func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, args)
	}
	return nil
}

func cmdRun(ctx context.Context, a *app, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	cfg := a.cfg

	if cfg.Seed.DummyData {
		res, err := seed.Seed(ctx, a.store, catalog.Fixtures())
		if err != nil {
			return fmt.Errorf("seed dummy data: %w", err)
		}
		logging.Info().Int("users", res.Users).Int("playlists", res.Playlists).Msg("Dummy data seeded (SEED_DUMMY_DATA=true)")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Maintenance.GCInterval > 0 && !cfg.Storage.InMemory {
		tree.AddDataService(services.NewGCService(a.kv, cfg.Maintenance.GCInterval, cfg.Maintenance.GCDiscardRatio))
	}
	tree.AddDataService(services.NewReconcileService(a.store.Playlists, cfg.Maintenance.ReconcileInterval))

	if cfg.Metrics.Enabled {
		server := services.NewMetricsServer(cfg.Metrics.Addr, cfg.Metrics.Path)
		tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout))
		logging.Info().Str("addr", cfg.Metrics.Addr).Str("path", cfg.Metrics.Path).Msg("Serving metrics")
	}

	logging.Info().
		Str("storage", cfg.Storage.Path).
		Bool("in_memory", cfg.Storage.InMemory).
		Dur("gc_interval", cfg.Maintenance.GCInterval).
		Dur("reconcile_interval", cfg.Maintenance.ReconcileInterval).
		Msg("Starting Shelfmate with supervisor tree")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		logging.Warn().Int("services", len(report)).Msg("Some services did not stop in time")
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}

func cmdSeed(ctx context.Context, a *app, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	res, err := seed.Seed(ctx, a.store, catalog.Fixtures())
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func cmdUnseed(ctx context.Context, a *app, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	n, err := seed.Clear(ctx, a.store)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]int{"removed": n})
}

func cmdReconcile(ctx context.Context, a *app, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	report, err := a.store.Playlists.ReconcileLikes(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(report)
}

func cmdStats(ctx context.Context, a *app, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	stats, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(stats)
}

// onePath returns the single path argument. "-" means the command's stdio.
func onePath(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: expected exactly one path", errUsage)
	}
	return args[0], nil
}

func cmdBackup(ctx context.Context, a *app, args []string) (err error) {
	path, err := onePath(args)
	if err != nil {
		return err
	}

	w := a.out
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create backup file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close backup file: %w", cerr)
			}
		}()
		w = f
	}

	_, err = a.kv.Backup(ctx, w)
	return err
}

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

func cmdRestore(ctx context.Context, a *app, args []string) error {
	var replace bool
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&replace, "replace", false, "wipe the store before loading the snapshot")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	path, err := onePath(fs.Args())
	if err != nil {
		return err
	}

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open backup file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if replace {
		if err := a.kv.Clear(ctx); err != nil {
			return fmt.Errorf("wipe before restore: %w", err)
		}
	}
	return a.kv.Restore(ctx, r)
}

func cmdWipe(ctx context.Context, a *app, args []string) error {
	var yes bool
	fs := flag.NewFlagSet("wipe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&yes, "yes", false, "confirm deleting every collection")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := noArgs(fs.Args()); err != nil {
		return err
	}
	if !yes {
		return fmt.Errorf("%w: wipe deletes everything, pass --yes to confirm", errUsage)
	}

	if err := a.kv.Clear(ctx); err != nil {
		return err
	}
	logging.Ctx(ctx).Warn().Msg("All collections deleted")
	return nil
}
