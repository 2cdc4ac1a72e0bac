// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package main is the operator CLI for a Shelfmate data directory.
//
// Shelfmate keeps users, friendships, wishlists, playlists, likes,
// recommendations, reviews and viewing history in an embedded BadgerDB store.
// This binary opens that store and runs one command against it:
//
//	shelfmate [--config path] [--log-level lvl] [--in-memory] <command> [args]
//
//	run                 supervise background maintenance and serve /metrics
//	seed                replace demo users and playlists
//	unseed              remove demo users and everything they own
//	reconcile           repair playlist like counters
//	stats               print record counts as JSON
//	backup <file|->     write a snapshot
//	restore [--replace] <file|->
//	wipe --yes          delete every collection
//
// # Configuration
//
// Settings come from built-in defaults, then an optional YAML file, then
// environment variables (see internal/config). Flags given here win over all
// three.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. For run this stops the
// supervisor tree, which shuts the metrics server down gracefully and lets
// in-flight maintenance passes finish before the store is closed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
