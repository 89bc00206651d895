// Package scheduler decides when the sync engine runs: once at startup,
// whenever connectivity comes back, and on a fixed interval in between. A
// completion report from the out-of-process background worker only refreshes
// the bookkeeping; the worker has already uploaded the entries itself.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/internal/netstatus"
	"github.com/pairkeep/pairkeep/internal/syncer"
	"github.com/pairkeep/pairkeep/models"
)

// ConnectivitySource is the slice of the network notifier the scheduler
// consumes.
type ConnectivitySource interface {
	Online() bool
	Subscribe() (<-chan netstatus.Transition, func())
}

// Scheduler drives periodic and event-triggered sync runs. It is idle until
// Start is called.
type Scheduler struct {
	engine   syncer.Syncer
	net      ConnectivitySource
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statusMu   sync.RWMutex
	lastRun    time.Time
	lastResult models.SyncResult

	now func() time.Time
}

// New creates a scheduler. If interval is zero or negative it defaults to
// five minutes.
func New(engine syncer.Syncer, net ConnectivitySource, interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		engine:   engine,
		net:      net,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Start stops any previous run loop, then launches a goroutine that syncs
// immediately, again on every offline-to-online transition, and on the
// configured interval. The goroutine exits when ctx is cancelled or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		// Startup drain: entries queued while the agent was down.
		s.runSync(loopCtx)

		transitions, cancelSub := s.net.Subscribe()
		defer cancelSub()

		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case tr, ok := <-transitions:
				if !ok {
					transitions = nil
					continue
				}
				if tr.Online {
					s.log.Info().Str("func", "Start").Msg("back online, draining queue")
					s.runSync(loopCtx)
				}
			case <-t.C:
				s.runSync(loopCtx)
			}
		}
	}()
}

// Stop cancels the run loop and blocks until it has exited. Safe to call
// when the scheduler is not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// TriggerSync runs the engine once outside the regular schedule and records
// the outcome.
func (s *Scheduler) TriggerSync(ctx context.Context) models.SyncResult {
	return s.runSync(ctx)
}

// RecordWorkerResult folds a background worker completion into the status
// bookkeeping. Unrecognized message types are ignored. No sync run is
// triggered: the worker already uploaded the entries it reports on.
func (s *Scheduler) RecordWorkerResult(msg models.WorkerMessage) {
	if !msg.Recognized() {
		s.log.Debug().
			Str("func", "RecordWorkerResult").
			Str("type", msg.Type).
			Msg("ignoring unknown worker message")
		return
	}

	s.statusMu.Lock()
	s.lastRun = s.now()
	s.lastResult = models.SyncResult{
		Synced: msg.SuccessCount,
		Failed: msg.FailCount,
		Note:   "completed by background worker",
	}
	s.statusMu.Unlock()

	s.log.Info().
		Str("func", "RecordWorkerResult").
		Int("synced", msg.SuccessCount).
		Int("failed", msg.FailCount).
		Msg("background worker finished a sync")
}

// Status returns the current sync status snapshot. It never blocks on a
// running sync.
func (s *Scheduler) Status(ctx context.Context) models.SyncStatus {
	pending, err := s.engine.PendingCount(ctx)
	if err != nil {
		s.log.Debug().Str("func", "Status").Err(err).Msg("pending count unavailable")
		pending = 0
	}

	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	return models.SyncStatus{
		Online:     s.net.Online(),
		Pending:    pending,
		LastRun:    s.lastRun,
		LastResult: s.lastResult,
	}
}

func (s *Scheduler) runSync(ctx context.Context) models.SyncResult {
	result := s.engine.SyncPending(ctx)

	s.statusMu.Lock()
	s.lastRun = s.now()
	s.lastResult = result
	s.statusMu.Unlock()

	return result
}
