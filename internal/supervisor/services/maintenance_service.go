// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package services

import (
	"context"
	"time"

	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/store"
)

// GarbageCollector is satisfied by *kvstore.Store.
type GarbageCollector interface {
	RunGC(ctx context.Context, ratio float64) error
}

// LikeReconciler is satisfied by *store.PlaylistStore.
type LikeReconciler interface {
	ReconcileLikes(ctx context.Context) (store.ReconcileReport, error)
}

// tick calls fn every interval until ctx is canceled. A failed pass is logged
// and the loop keeps going; the store stays usable between passes.
// A non-positive interval parks the service until shutdown.
func tick(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				logging.Warn().Err(err).Str("service", name).Msg("maintenance pass failed")
			}
		}
	}
}

// GCService periodically reclaims space in the value log.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	ratio    float64
	name     string
}

// NewGCService runs gc.RunGC(ratio) every interval.
func NewGCService(gc GarbageCollector, interval time.Duration, ratio float64) *GCService {
	return &GCService{
		gc:       gc,
		interval: interval,
		ratio:    ratio,
		name:     "kv-gc",
	}
}

// Serve implements suture.Service.
func (s *GCService) Serve(ctx context.Context) error {
	return tick(ctx, s.name, s.interval, func(ctx context.Context) error {
		return s.gc.RunGC(ctx, s.ratio)
	})
}

func (s *GCService) String() string {
	return s.name
}

// ReconcileService periodically repairs playlist like counters. It runs one
// pass right away so a crash during a previous process is repaired on start.
type ReconcileService struct {
	reconciler LikeReconciler
	interval   time.Duration
	name       string
}

// NewReconcileService runs r.ReconcileLikes on start and then every interval.
func NewReconcileService(r LikeReconciler, interval time.Duration) *ReconcileService {
	return &ReconcileService{
		reconciler: r,
		interval:   interval,
		name:       "like-reconcile",
	}
}

// Serve implements suture.Service.
func (s *ReconcileService) Serve(ctx context.Context) error {
	if err := s.reconcile(ctx); err != nil && ctx.Err() == nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("initial reconciliation failed")
	}
	return tick(ctx, s.name, s.interval, s.reconcile)
}

func (s *ReconcileService) reconcile(ctx context.Context) error {
	report, err := s.reconciler.ReconcileLikes(ctx)
	if err != nil {
		return err
	}
	logging.Debug().
		Int("playlists", report.Playlists).
		Int("counters_fixed", report.CountersFixed).
		Int("dangling_removed", report.DanglingRemoved).
		Msg("like counters reconciled")
	return nil
}

func (s *ReconcileService) String() string {
	return s.name
}
