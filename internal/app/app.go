// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package app wires the agent together: local queue, remote gateway, sync
// engine, realtime subscriptions, trigger scheduler and the worker bridge.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pairkeep/pairkeep/internal/auth"
	"github.com/pairkeep/pairkeep/internal/config"
	"github.com/pairkeep/pairkeep/internal/gateway"
	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/internal/netstatus"
	"github.com/pairkeep/pairkeep/internal/realtime"
	"github.com/pairkeep/pairkeep/internal/retry"
	"github.com/pairkeep/pairkeep/internal/scheduler"
	"github.com/pairkeep/pairkeep/internal/store"
	"github.com/pairkeep/pairkeep/internal/syncer"
	"github.com/pairkeep/pairkeep/internal/workers"
)

const (
	shutdownTimeout = 5 * time.Second
	probeInterval   = 30 * time.Second
)

// App is the assembled sync agent.
type App struct {
	cfg *config.AgentConfig
	log *logger.Logger

	db         *store.DB
	session    *auth.Facade
	net        *netstatus.Notifier
	reconciler *realtime.Reconciler
	scheduler  *scheduler.Scheduler
	bridge     *workers.BridgeWorker
	workers    *workers.Workers

	moodCache *realtime.MoodCache
	noteCache *realtime.NoteCache
}

// New builds the agent from cfg. The session file is loaded if present; a
// missing session is fine, the agent then idles until one is saved.
func New(ctx context.Context, cfg *config.AgentConfig, log *logger.Logger) (*App, error) {
	session := auth.NewFacade(log.GetChildLogger("component", "auth"), cfg.Storage.SessionPath)
	if err := session.Load(); err != nil && !errors.Is(err, auth.ErrNoSession) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log.GetChildLogger("component", "store"))
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate queue database: %w", err)
	}

	queue := store.NewMoodRepository(db, log.GetChildLogger("component", "store"))

	gw, err := gateway.NewHTTPGateway(cfg.Remote, session, log.GetChildLogger("component", "gateway"))
	if err != nil {
		return nil, fmt.Errorf("build gateway: %w", err)
	}

	net := netstatus.NewNotifier(
		log.GetChildLogger("component", "netstatus"),
		gw.Ping,
		cfg.Sync.OnlineDebounce,
	)
	gw.SetOnlineCheck(net.Online)

	dialer := realtime.NewDialer(cfg.Remote.RealtimeURL, session, log.GetChildLogger("component", "realtime"))
	reconciler := realtime.NewReconciler(dialer, log.GetChildLogger("component", "realtime"))

	policy := retry.New(retry.MoodSchedule(), net.Online, log.GetChildLogger("component", "retry"))
	engine := syncer.NewEngine(queue, gw, policy, net.Online, session, reconciler,
		log.GetChildLogger("component", "syncer"))

	sched := scheduler.New(engine, net, cfg.Sync.Interval, log.GetChildLogger("component", "scheduler"))

	bridge := workers.NewBridgeWorker(cfg.Bridge.Address, sched, log.GetChildLogger("component", "bridge"))

	return &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		session:    session,
		net:        net,
		reconciler: reconciler,
		scheduler:  sched,
		bridge:     bridge,
		workers:    workers.NewWorkers(bridge),
		moodCache:  realtime.NewMoodCache(),
		noteCache:  realtime.NewNoteCache(),
	}, nil
}

// Run starts the agent and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.workers.Run()
	go a.net.Run(ctx, probeInterval)
	a.scheduler.Start(ctx)
	a.subscribeRealtime()

	a.log.Info().Str("func", "Run").Msg("agent started")
	<-ctx.Done()
	return a.Shutdown()
}

// subscribeRealtime opens the couple's topics when the user is signed in
// and linked. Without a partner there is nothing to listen for.
func (a *App) subscribeRealtime() {
	userID, err := a.session.UserID()
	if err != nil {
		a.log.Info().Str("func", "subscribeRealtime").Msg("no session, realtime stays off")
		return
	}

	moodLog := a.log.GetChildLogger("component", "realtime")
	a.reconciler.Subscribe("moods:"+userID, realtime.NewMoodHandler(a.moodCache, moodLog))

	if partnerID := a.session.PartnerID(); partnerID != "" {
		a.reconciler.Subscribe("notes:"+userID, realtime.NewNoteHandler(a.noteCache, moodLog))
	}
}

// Shutdown tears the agent down in reverse start order.
func (a *App) Shutdown() error {
	a.log.Info().Str("func", "Shutdown").Msg("agent stopping")

	a.reconciler.Close()
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.bridge.Shutdown(ctx); err != nil {
		a.log.Err(err).Str("func", "Shutdown").Msg("bridge shutdown failed")
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close queue database: %w", err)
	}
	return nil
}
