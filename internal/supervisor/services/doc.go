// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package services provides the suture.Service implementations run by the
supervisor tree.

# Available Services

GCService (data layer):
  - Calls kvstore.Store.RunGC on a ticker
  - Skipped entirely for in-memory stores by RunGC itself

ReconcileService (data layer):
  - Calls store.PlaylistStore.ReconcileLikes once on start, then on a ticker
  - Repairs like counters left inconsistent by a crash or a manual edit

HTTPServerService (api layer):
  - Wraps an *http.Server, usually from NewMetricsServer
  - Graceful shutdown with a bounded timeout

Maintenance passes that fail are logged and retried on the next tick rather
than returned, so one bad pass does not push the tree into backoff. Services
depend on small interfaces (GarbageCollector, LikeReconciler, HTTPServer) and
are tested with doubles.
*/
package services
