package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

type fakeChannel struct {
	events chan models.ChannelEvent

	mu     sync.Mutex
	sent   []string
	closed bool
}

func newFakeChannel(buffered int) *fakeChannel {
	return &fakeChannel{events: make(chan models.ChannelEvent, buffered)}
}

func (f *fakeChannel) Events() <-chan models.ChannelEvent { return f.events }

func (f *fakeChannel) Send(_ context.Context, event string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, event)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *fakeChannel) sentEvents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// fakeDialer hands out scripted channels, one per Dial call.
type fakeDialer struct {
	mu       sync.Mutex
	channels []*fakeChannel
	err      error
	dials    int
}

func (f *fakeDialer) Dial(context.Context, string) (Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dials++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.channels) == 0 {
		ch := newFakeChannel(8)
		ch.events <- models.ChannelEvent{Event: EventSubscribed}
		return ch, nil
	}
	ch := f.channels[0]
	f.channels = f.channels[1:]
	return ch, nil
}

func (f *fakeDialer) dialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dials
}

func (f *fakeDialer) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func newTestReconciler(dialer Dialer) *Reconciler {
	r := NewReconciler(dialer, logger.Nop())
	r.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return r
}

func TestReconciler_SubscribeDeliversDataEvents(t *testing.T) {
	ch := newFakeChannel(8)
	ch.events <- models.ChannelEvent{Event: EventSubscribed}
	ch.events <- models.ChannelEvent{Event: EventNewMood, Payload: []byte(`{"id":"m-1"}`)}

	dialer := &fakeDialer{channels: []*fakeChannel{ch}}
	r := newTestReconciler(dialer)
	defer r.Close()

	received := make(chan models.ChannelEvent, 1)
	r.Subscribe("couple:1", func(event models.ChannelEvent) { received <- event })

	select {
	case event := <-received:
		assert.Equal(t, EventNewMood, event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected the data event to reach the handler")
	}
	assert.Equal(t, models.StatusConnected, r.Status())
}

func TestReconciler_DuplicateSubscribeIsNoOp(t *testing.T) {
	dialer := &fakeDialer{}
	r := newTestReconciler(dialer)
	defer r.Close()

	r.Subscribe("couple:1", func(models.ChannelEvent) {})
	require.Eventually(t, func() bool { return r.Status() == models.StatusConnected },
		time.Second, 10*time.Millisecond)

	before := dialer.dialCount()
	r.Subscribe("couple:1", func(models.ChannelEvent) {})
	assert.Equal(t, before, dialer.dialCount(), "a second subscribe must not open a new channel")
}

func TestReconciler_UnsubscribeIsIdempotent(t *testing.T) {
	dialer := &fakeDialer{}
	r := newTestReconciler(dialer)

	r.Subscribe("couple:1", func(models.ChannelEvent) {})
	r.Unsubscribe("couple:1")
	r.Unsubscribe("couple:1")
	r.Unsubscribe("never-subscribed")

	assert.Equal(t, models.StatusDisconnected, r.Status())
}

func TestReconciler_RedialsAfterDrop(t *testing.T) {
	dropped := newFakeChannel(8)
	dropped.events <- models.ChannelEvent{Event: EventSubscribed}
	dropped.events <- models.ChannelEvent{Event: EventChannelError}
	dropped.Close()

	dialer := &fakeDialer{channels: []*fakeChannel{dropped}}
	r := newTestReconciler(dialer)
	defer r.Close()

	r.Subscribe("couple:1", func(models.ChannelEvent) {})

	require.Eventually(t, func() bool { return dialer.dialCount() >= 2 },
		time.Second, 10*time.Millisecond, "a dropped channel must be redialled")
	require.Eventually(t, func() bool { return r.Status() == models.StatusConnected },
		time.Second, 10*time.Millisecond)
}

func TestReconciler_GivesUpAfterRepeatedFailures(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	r := newTestReconciler(dialer)
	defer r.Close()

	r.Subscribe("couple:1", func(models.ChannelEvent) {})

	require.Eventually(t, func() bool { return dialer.dialCount() == maxReconnects+1 },
		time.Second, 10*time.Millisecond)

	// The pump has stopped; no further dials happen.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, maxReconnects+1, dialer.dialCount())
	assert.Equal(t, models.StatusDisconnected, r.Status())
}

func TestReconciler_ResubscribeAfterGiveUpOpensNewChannel(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	r := newTestReconciler(dialer)
	defer r.Close()

	r.Subscribe("couple:1", func(models.ChannelEvent) {})
	require.Eventually(t, func() bool { return dialer.dialCount() == maxReconnects+1 },
		time.Second, 10*time.Millisecond)

	// The link is back; an explicit resubscribe must not hit the
	// duplicate-topic guard.
	dialer.setErr(nil)
	require.Eventually(t, func() bool {
		r.Subscribe("couple:1", func(models.ChannelEvent) {})
		return dialer.dialCount() > maxReconnects+1
	}, time.Second, 10*time.Millisecond, "resubscribe after give-up must open a new channel")

	require.Eventually(t, func() bool { return r.Status() == models.StatusConnected },
		time.Second, 10*time.Millisecond)
}

func TestReconciler_BroadcastNeedsLiveChannel(t *testing.T) {
	dialer := &fakeDialer{}
	r := newTestReconciler(dialer)
	defer r.Close()

	err := r.Broadcast(context.Background(), EventNewMood, nil)
	assert.ErrorIs(t, err, ErrNoLiveChannel)
}

func TestReconciler_BroadcastUsesLiveChannel(t *testing.T) {
	ch := newFakeChannel(8)
	ch.events <- models.ChannelEvent{Event: EventSubscribed}

	dialer := &fakeDialer{channels: []*fakeChannel{ch}}
	r := newTestReconciler(dialer)
	defer r.Close()

	r.Subscribe("couple:1", func(models.ChannelEvent) {})
	require.Eventually(t, func() bool { return r.Status() == models.StatusConnected },
		time.Second, 10*time.Millisecond)

	require.NoError(t, r.Broadcast(context.Background(), EventNewMood, map[string]int{"synced": 1}))
	assert.Equal(t, []string{EventNewMood}, ch.sentEvents())
}
