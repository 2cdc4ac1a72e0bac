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
	"sort"

	flag "github.com/spf13/pflag"

	"github.com/tomtom215/shelfmate/internal/config"
	"github.com/tomtom215/shelfmate/internal/kvstore"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/store"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage")

// options are the global flags.
type options struct {
	configPath string
	logLevel   string
	inMemory   bool
}

// app is what every command runs against.
type app struct {
	cfg   *config.Config
	kv    *kvstore.Store
	store *store.Store
	out   io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"run":       {usage: "run", run: cmdRun},
	"seed":      {usage: "seed", run: cmdSeed},
	"unseed":    {usage: "unseed", run: cmdUnseed},
	"reconcile": {usage: "reconcile", run: cmdReconcile},
	"stats":     {usage: "stats", run: cmdStats},
	"backup":    {usage: "backup <file|->", run: cmdBackup},
	"restore":   {usage: "restore [--replace] <file|->", run: cmdRestore},
	"wipe":      {usage: "wipe --yes", run: cmdWipe},
}

// parseArgs splits args into global options, the command name and its arguments.
func parseArgs(args []string, stderr io.Writer) (options, string, []string, error) {
	var opts options

	fs := flag.NewFlagSet("shelfmate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	fs.BoolVar(&opts.inMemory, "in-memory", false, "use a throwaway in-memory store")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return opts, "", nil, err
	}
	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return opts, "", nil, fmt.Errorf("%w: missing command", errUsage)
	}
	return opts, fs.Arg(0), fs.Args()[1:], nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: shelfmate [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nflags:")
	fmt.Fprint(w, fs.FlagUsages())
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.LoadWithPath(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.inMemory {
		cfg.Storage.InMemory = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// execute runs one CLI invocation and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, name, rest, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	logging.Init(cfg.Logging.ToLoggingConfig())

	kv, err := kvstore.Open(cfg.Storage.ToKVConfig())
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open store")
		return exitError
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	a := &app{cfg: cfg, kv: kv, store: store.New(kv), out: stdout}

	ctx = logging.ContextWithLogger(ctx, logging.With().Str("command", name).Logger())
	ctx = logging.ContextWithNewCorrelationID(ctx)
	if err := cmd.run(ctx, a, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\nusage: shelfmate %s\n", err, cmd.usage)
			return exitUsage
		}
		logging.Ctx(ctx).Error().Err(err).Msg("Command failed")
		return exitError
	}
	return exitOK
}
