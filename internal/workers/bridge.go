// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

package workers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

// StatusReporter is the scheduler surface the bridge forwards to.
type StatusReporter interface {
	RecordWorkerResult(msg models.WorkerMessage)
	Status(ctx context.Context) models.SyncStatus
}

// BridgeWorker listens on loopback for the out-of-process background-sync
// worker. The worker posts a completion report after uploading entries on
// its own; the bridge folds that report into the scheduler's bookkeeping.
type BridgeWorker struct {
	addr     string
	reporter StatusReporter
	log      *logger.Logger
	server   *http.Server
}

// NewBridgeWorker creates the bridge listener bound to addr.
func NewBridgeWorker(addr string, reporter StatusReporter, log *logger.Logger) *BridgeWorker {
	b := &BridgeWorker{addr: addr, reporter: reporter, log: log}
	b.server = &http.Server{
		Addr:              addr,
		Handler:           b.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return b
}

// Run implements [Worker]. It serves until Shutdown is called.
func (b *BridgeWorker) Run() {
	go func() {
		b.log.Info().Str("func", "Run").Str("addr", b.addr).Msg("worker bridge listening")
		if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.log.Err(err).Str("func", "Run").Msg("worker bridge stopped unexpectedly")
		}
	}()
}

// Shutdown stops the listener gracefully.
func (b *BridgeWorker) Shutdown(ctx context.Context) error {
	return b.server.Shutdown(ctx)
}

func (b *BridgeWorker) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/background-sync/complete", b.handleComplete)
		r.Get("/status", b.handleStatus)
	})

	return r
}

func (b *BridgeWorker) handleComplete(w http.ResponseWriter, r *http.Request) {
	var msg models.WorkerMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		b.log.Debug().Str("func", "handleComplete").Err(err).Msg("malformed worker message")
		http.Error(w, "malformed message", http.StatusBadRequest)
		return
	}

	if !msg.Recognized() {
		// Future worker message types are accepted and ignored so old agents
		// don't break newer workers.
		b.log.Debug().Str("func", "handleComplete").Str("type", msg.Type).Msg("ignoring unknown worker message type")
		w.WriteHeader(http.StatusAccepted)
		return
	}

	b.reporter.RecordWorkerResult(msg)
	w.WriteHeader(http.StatusNoContent)
}

func (b *BridgeWorker) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(b.reporter.Status(r.Context())); err != nil {
		b.log.Debug().Str("func", "handleStatus").Err(err).Msg("failed to encode status")
	}
}
