// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package supervisor runs Shelfmate's long-lived background work under a
suture v4 supervisor tree.

# Tree

	shelfmate (root)
	├── data-layer
	│   ├── kv-gc            value log garbage collection
	│   └── like-reconcile   playlist like counter repair
	└── api-layer
	    └── metrics-http     Prometheus /metrics and /healthz

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog into the zerolog bridge from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewGCService(kv, 10*time.Minute, 0.5))
	tree.AddDataService(services.NewReconcileService(st.Playlists, time.Hour))
	tree.AddAPIService(services.NewHTTPServerService(services.NewMetricsServer(addr, "/metrics"), 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
