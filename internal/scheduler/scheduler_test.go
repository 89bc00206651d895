package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/internal/netstatus"
	"github.com/pairkeep/pairkeep/models"
)

type countingEngine struct {
	mu      sync.Mutex
	runs    int
	pending int
}

func (c *countingEngine) SyncPending(context.Context) models.SyncResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs++
	return models.SyncResult{Synced: 1}
}

func (c *countingEngine) PendingCount(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, nil
}

func (c *countingEngine) runCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs
}

type stubNet struct {
	online      bool
	transitions chan netstatus.Transition
}

func newStubNet(online bool) *stubNet {
	return &stubNet{online: online, transitions: make(chan netstatus.Transition, 4)}
}

func (s *stubNet) Online() bool { return s.online }

func (s *stubNet) Subscribe() (<-chan netstatus.Transition, func()) {
	return s.transitions, func() {}
}

func TestScheduler_RunsOnStart(t *testing.T) {
	engine := &countingEngine{}
	s := New(engine, newStubNet(true), time.Hour, logger.Nop())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return engine.runCount() == 1 },
		time.Second, 10*time.Millisecond, "starting the scheduler must drain the queue once")
}

func TestScheduler_RunsOnOnlineTransition(t *testing.T) {
	engine := &countingEngine{}
	net := newStubNet(true)
	s := New(engine, net, time.Hour, logger.Nop())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return engine.runCount() == 1 }, time.Second, 10*time.Millisecond)

	net.transitions <- netstatus.Transition{Online: true, At: time.Now()}
	require.Eventually(t, func() bool { return engine.runCount() == 2 },
		time.Second, 10*time.Millisecond, "coming back online must trigger a drain")

	// Offline transitions never trigger runs.
	net.transitions <- netstatus.Transition{Online: false, At: time.Now()}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, engine.runCount())
}

func TestScheduler_RunsOnTicker(t *testing.T) {
	engine := &countingEngine{}
	s := New(engine, newStubNet(true), 20*time.Millisecond, logger.Nop())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return engine.runCount() >= 3 },
		time.Second, 10*time.Millisecond, "the interval trigger must keep firing")
}

func TestScheduler_WorkerResultRefreshesStatusOnly(t *testing.T) {
	engine := &countingEngine{pending: 2}
	s := New(engine, newStubNet(true), time.Hour, logger.Nop())
	s.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	s.RecordWorkerResult(models.WorkerMessage{
		Type: models.WorkerMessageTypeCompleted, SuccessCount: 4, FailCount: 1,
	})

	status := s.Status(context.Background())
	assert.Equal(t, 4, status.LastResult.Synced)
	assert.Equal(t, 1, status.LastResult.Failed)
	assert.Equal(t, 2, status.Pending)
	assert.True(t, status.Online)
	assert.False(t, status.LastRun.IsZero())
	assert.Zero(t, engine.runCount(), "a worker report must not start another sync")
}

func TestScheduler_IgnoresUnknownWorkerMessages(t *testing.T) {
	engine := &countingEngine{}
	s := New(engine, newStubNet(true), time.Hour, logger.Nop())

	s.RecordWorkerResult(models.WorkerMessage{Type: "SOMETHING_ELSE", SuccessCount: 9})

	status := s.Status(context.Background())
	assert.True(t, status.LastRun.IsZero())
	assert.Zero(t, status.LastResult.Synced)
}

func TestScheduler_TriggerSyncUpdatesBookkeeping(t *testing.T) {
	engine := &countingEngine{}
	s := New(engine, newStubNet(true), time.Hour, logger.Nop())

	result := s.TriggerSync(context.Background())

	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, engine.runCount())
	assert.Equal(t, result, s.Status(context.Background()).LastResult)
}

func TestScheduler_StopIsSafeWhenIdle(t *testing.T) {
	s := New(&countingEngine{}, newStubNet(true), time.Hour, logger.Nop())
	s.Stop()
	s.Stop()
}

func TestScheduler_RestartReplacesLoop(t *testing.T) {
	engine := &countingEngine{}
	s := New(engine, newStubNet(true), time.Hour, logger.Nop())

	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return engine.runCount() == 2 },
		time.Second, 10*time.Millisecond)
}
