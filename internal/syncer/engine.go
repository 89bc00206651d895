// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package syncer drains the local mood queue to the hosted platform. Runs
// are safe to trigger from several places at once: each run re-reads the
// queue, entries already being uploaded by another run are skipped, and a
// successfully uploaded entry is marked synced before it is counted, so a
// crashed or repeated run never uploads the same entry twice.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pairkeep/pairkeep/internal/gateway"
	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/internal/realtime"
	"github.com/pairkeep/pairkeep/internal/retry"
	"github.com/pairkeep/pairkeep/internal/store"
	"github.com/pairkeep/pairkeep/models"
)

//go:generate mockgen -source=engine.go -destination=../mock/syncer_mock.go -package=mock

// broadcastTimeout bounds the fire-and-forget partner nudge.
const broadcastTimeout = 5 * time.Second

// Identity names the local user whose queue is drained.
type Identity interface {
	UserID() (string, error)
	PartnerID() string
}

// Broadcaster pushes a lightweight "new data" nudge to the partner's device
// after a successful drain. Delivery is best effort.
type Broadcaster interface {
	Broadcast(ctx context.Context, event string, payload any) error
}

// Syncer is the queue-drain surface consumed by the scheduler and bridge.
type Syncer interface {
	SyncPending(ctx context.Context) models.SyncResult
	PendingCount(ctx context.Context) (int, error)
}

// Engine uploads queued mood entries one by one with retries.
type Engine struct {
	queue       store.QueueStore
	moods       gateway.MoodGateway
	policy      *retry.Policy
	online      func() bool
	identity    Identity
	broadcaster Broadcaster
	log         *logger.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewEngine wires the drain loop. broadcaster may be nil when realtime is
// unavailable.
func NewEngine(
	queue store.QueueStore,
	moods gateway.MoodGateway,
	policy *retry.Policy,
	online func() bool,
	identity Identity,
	broadcaster Broadcaster,
	log *logger.Logger,
) *Engine {
	return &Engine{
		queue:       queue,
		moods:       moods,
		policy:      policy,
		online:      online,
		identity:    identity,
		broadcaster: broadcaster,
		log:         log,
		inFlight:    make(map[int64]struct{}),
	}
}

// SyncPending implements [Syncer]. It uploads every unsynced entry and
// reports per-entry failures without aborting the run; one bad entry never
// blocks the rest of the queue.
func (e *Engine) SyncPending(ctx context.Context) models.SyncResult {
	log := e.log.GetChildLogger("func", "SyncPending")

	if !e.online() {
		log.Debug().Msg("offline, skipping sync run")
		return models.SyncResult{Note: "offline, entries stay queued"}
	}

	ownerID, err := e.identity.UserID()
	if err != nil {
		log.Debug().Err(err).Msg("no signed-in user, skipping sync run")
		return models.SyncResult{Note: "not signed in, entries stay queued"}
	}

	entries, err := e.queue.Unsynced(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("failed to read unsynced entries")
		return models.SyncResult{Errors: []string{fmt.Sprintf("read queue: %v", err)}}
	}
	if len(entries) == 0 {
		return models.SyncResult{Note: "nothing to sync"}
	}

	log.Info().Int("pending", len(entries)).Msg("starting sync run")

	var result models.SyncResult
	for _, entry := range entries {
		if ctx.Err() != nil {
			result.Note = "sync run cancelled"
			break
		}

		if !e.claim(entry.LocalID) {
			// Another run is uploading this entry right now.
			continue
		}

		remote, err := e.uploadEntry(ctx, entry)
		e.release(entry.LocalID)

		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("mood %d: %v", entry.LocalID, err))
			if errors.Is(err, retry.ErrOffline) {
				result.Note = "connection lost mid-run, remaining entries stay queued"
				break
			}
			continue
		}
		result.Synced++
		e.notifyPartner(remote)
	}

	log.Info().
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Msg("sync run finished")

	return result
}

// uploadEntry pushes one entry and marks it synced. The gateway resolves
// same-day collisions on the platform side, so a retried entry converges on
// the existing remote row instead of duplicating it.
func (e *Engine) uploadEntry(ctx context.Context, entry models.MoodEntry) (models.RemoteMood, error) {
	var remote models.RemoteMood

	err := e.policy.Do(ctx, func(ctx context.Context) error {
		var opErr error
		remote, opErr = e.moods.Create(ctx, models.InsertFrom(entry))
		if opErr != nil && !gateway.IsRetryable(opErr) {
			return retry.Permanent(opErr)
		}
		return opErr
	})
	if err != nil {
		e.log.Warn().
			Str("func", "uploadEntry").
			Int64("local_id", entry.LocalID).
			Err(err).
			Msg("entry upload failed, it stays queued")
		return models.RemoteMood{}, err
	}

	if err = e.queue.MarkSynced(ctx, entry.LocalID, remote.ID); err != nil {
		return models.RemoteMood{}, fmt.Errorf("uploaded but not marked synced: %w", err)
	}

	return remote, nil
}

// PendingCount implements [Syncer].
func (e *Engine) PendingCount(ctx context.Context) (int, error) {
	ownerID, err := e.identity.UserID()
	if err != nil {
		return 0, err
	}
	return e.queue.PendingCount(ctx, ownerID)
}

// HasPending reports whether any entry is still waiting for upload.
func (e *Engine) HasPending(ctx context.Context) bool {
	count, err := e.PendingCount(ctx)
	return err == nil && count > 0
}

// notifyPartner pushes the freshly synced mood to the partner's feed in the
// background. Failures are logged and dropped; the partner will see the data
// on their next pull anyway.
func (e *Engine) notifyPartner(mood models.RemoteMood) {
	if e.broadcaster == nil || e.identity.PartnerID() == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
		defer cancel()

		if err := e.broadcaster.Broadcast(ctx, realtime.EventNewMood, mood); err != nil {
			e.log.Debug().
				Str("func", "notifyPartner").
				Err(err).
				Msg("partner nudge not delivered")
		}
	}()
}

func (e *Engine) claim(localID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[localID]; busy {
		return false
	}
	e.inFlight[localID] = struct{}{}
	return true
}

func (e *Engine) release(localID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, localID)
}
