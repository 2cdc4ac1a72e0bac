// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package metrics holds the Prometheus instruments for the key-value store
// and its maintenance services. Instruments register on the default registry
// through promauto and are exposed by the supervisor's /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Operation Metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation", "collection"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed key-value store operations",
		},
		[]string{"operation", "collection", "error_type"},
	)

	StoreCorruptValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_corrupt_values_total",
			Help: "Stored values that could not be decoded and were replaced by the caller default",
		},
		[]string{"collection"},
	)

	StoreCollectionBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_collection_bytes",
			Help: "Encoded size of the last write of each collection",
		},
		[]string{"collection"},
	)

	StoreTxnConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_txn_conflicts_total",
			Help: "Transactions retried after a write conflict",
		},
	)

	// Maintenance Metrics
	StoreGCRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of value log garbage collection passes",
		},
	)

	StoreGCDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "store_gc_duration_seconds",
			Help:    "Duration of value log garbage collection passes",
			Buckets: prometheus.DefBuckets,
		},
	)

	LikeReconcileRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_like_reconcile_runs_total",
			Help: "Total number of playlist like reconciliation passes",
		},
	)

	LikeReconcileFixes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_like_reconcile_fixes_total",
			Help: "Records corrected by playlist like reconciliation",
		},
		[]string{"kind"}, // "counter", "dangling_index_entry"
	)
)

// RecordStoreOp records the duration and outcome of a store operation.
func RecordStoreOp(operation, collection string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		StoreOpErrors.WithLabelValues(operation, collection, errorType).Inc()
	}
}

// RecordCorruptValue counts a value that failed to decode.
func RecordCorruptValue(collection string) {
	StoreCorruptValues.WithLabelValues(collection).Inc()
}

// RecordCollectionSize records the encoded size of a collection write.
func RecordCollectionSize(collection string, size int) {
	StoreCollectionBytes.WithLabelValues(collection).Set(float64(size))
}

// RecordTxnConflict counts a transaction retried after badger.ErrConflict.
func RecordTxnConflict() {
	StoreTxnConflicts.Inc()
}

// RecordGCRun records a value log GC pass.
func RecordGCRun(duration time.Duration) {
	StoreGCRuns.Inc()
	StoreGCDuration.Observe(duration.Seconds())
}

// RecordLikeReconcile records a reconciliation pass and what it corrected.
func RecordLikeReconcile(countersFixed, danglingRemoved int) {
	LikeReconcileRuns.Inc()
	if countersFixed > 0 {
		LikeReconcileFixes.WithLabelValues("counter").Add(float64(countersFixed))
	}
	if danglingRemoved > 0 {
		LikeReconcileFixes.WithLabelValues("dangling_index_entry").Add(float64(danglingRemoved))
	}
}
