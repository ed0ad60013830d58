// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler runs the background loops: promoting due scheduled
// articles to published, and periodically reconciling denormalized user
// counters against the source tables.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/store"
)

// Scheduler drives the publish and reconcile tickers.
type Scheduler struct {
	articles *store.ArticleStore
	users    *store.UserStore

	publishInterval   time.Duration
	reconcileInterval time.Duration
}

// New creates a Scheduler over the given stores.
func New(articles *store.ArticleStore, users *store.UserStore, publishInterval, reconcileInterval time.Duration) *Scheduler {
	return &Scheduler{
		articles:          articles,
		users:             users,
		publishInterval:   publishInterval,
		reconcileInterval: reconcileInterval,
	}
}

// Run starts both loops and blocks until ctx is cancelled. A failed tick is
// logged and retried on the next interval; due articles missed while the
// process was down are picked up on the first tick after restart.
func (s *Scheduler) Run(ctx context.Context) {
	publish := time.NewTicker(s.publishInterval)
	defer publish.Stop()
	reconcile := time.NewTicker(s.reconcileInterval)
	defer reconcile.Stop()

	slog.Info("scheduler started",
		"publish_interval", s.publishInterval,
		"reconcile_interval", s.reconcileInterval)

	for {
		select {
		case <-publish.C:
			s.PromoteDue()
		case <-reconcile.C:
			s.ReconcileStats()
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		}
	}
}

// PromoteDue publishes every scheduled article whose time has come. The
// promotion is a single idempotent UPDATE, so overlapping runs are safe.
func (s *Scheduler) PromoteDue() {
	n, err := s.articles.PromoteDue(time.Now())
	if err != nil {
		slog.Error("promote scheduled articles", "error", err)
		return
	}
	if n > 0 {
		slog.Info("scheduled articles published", "count", n)
	}
}

// ReconcileStats recomputes articles/followers/following counters for every
// user from the underlying tables.
func (s *Scheduler) ReconcileStats() {
	ids, err := s.users.ListIDs()
	if err != nil {
		slog.Error("list users for reconcile", "error", err)
		return
	}
	var failed int
	for _, id := range ids {
		if err := s.users.RecomputeStats(id); err != nil {
			slog.Warn("recompute user stats", "user_id", id, "error", err)
			failed++
		}
	}
	slog.Debug("user stats reconciled", "users", len(ids), "failed", failed)
}
