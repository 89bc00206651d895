// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package realtime keeps live subscriptions to the hosted realtime service
// and reconciles their lifecycle: one channel per topic, automatic
// reconnects with capped backoff, and duplicate-free delivery into the
// local caches.
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

const (
	reconnectBase = time.Second
	reconnectCap  = 30 * time.Second
	maxReconnects = 5
)

// ErrNoLiveChannel is returned by Broadcast when no topic is connected.
var ErrNoLiveChannel = errors.New("no live realtime channel")

// Handler consumes data events from a subscribed topic.
type Handler func(event models.ChannelEvent)

type subscription struct {
	topic   string
	handler Handler
	cancel  context.CancelFunc

	mu      sync.Mutex
	channel Channel
	status  models.ConnectionStatus
}

// Reconciler owns all realtime subscriptions of the agent.
type Reconciler struct {
	dialer Dialer
	log    *logger.Logger

	mu   sync.Mutex
	subs map[string]*subscription
	wg   sync.WaitGroup

	// sleep is swapped in tests to skip backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewReconciler creates a reconciler with no subscriptions.
func NewReconciler(dialer Dialer, log *logger.Logger) *Reconciler {
	return &Reconciler{
		dialer: dialer,
		log:    log,
		subs:   make(map[string]*subscription),
		sleep:  sleepCtx,
	}
}

// Subscribe opens a channel for topic and dispatches its data events to
// handler. Subscribing to an already subscribed topic is a logged no-op, so
// a remounting caller never stacks duplicate channels.
func (r *Reconciler) Subscribe(topic string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subs[topic]; exists {
		r.log.Warn().
			Str("func", "Subscribe").
			Str("topic", topic).
			Msg("topic already subscribed, keeping the existing channel")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		topic:   topic,
		handler: handler,
		cancel:  cancel,
		status:  models.StatusConnecting,
	}
	r.subs[topic] = sub

	r.wg.Add(1)
	go r.run(ctx, sub)
}

// Unsubscribe tears down the topic's channel. Unknown topics are ignored,
// so repeated unsubscribes are safe.
func (r *Reconciler) Unsubscribe(topic string) {
	r.mu.Lock()
	sub, ok := r.subs[topic]
	if ok {
		delete(r.subs, topic)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	sub.cancel()
	sub.mu.Lock()
	if sub.channel != nil {
		_ = sub.channel.Close()
	}
	sub.mu.Unlock()
}

// Close tears down every subscription and waits for their pumps to stop.
func (r *Reconciler) Close() {
	r.mu.Lock()
	topics := make([]string, 0, len(r.subs))
	for topic := range r.subs {
		topics = append(topics, topic)
	}
	r.mu.Unlock()

	for _, topic := range topics {
		r.Unsubscribe(topic)
	}
	r.wg.Wait()
}

// Status reports the aggregate connection state: connected only when every
// subscribed topic has a live channel.
func (r *Reconciler) Status() models.ConnectionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.subs) == 0 {
		return models.StatusDisconnected
	}

	status := models.StatusConnected
	for _, sub := range r.subs {
		sub.mu.Lock()
		s := sub.status
		sub.mu.Unlock()

		switch s {
		case models.StatusDisconnected:
			return models.StatusDisconnected
		case models.StatusConnecting:
			status = models.StatusConnecting
		}
	}
	return status
}

// Broadcast implements the partner-nudge surface: it sends event on any
// live channel. Returns [ErrNoLiveChannel] when nothing is connected.
func (r *Reconciler) Broadcast(ctx context.Context, event string, payload any) error {
	r.mu.Lock()
	var target Channel
	for _, sub := range r.subs {
		sub.mu.Lock()
		if sub.status == models.StatusConnected && sub.channel != nil {
			target = sub.channel
		}
		sub.mu.Unlock()
		if target != nil {
			break
		}
	}
	r.mu.Unlock()

	if target == nil {
		return ErrNoLiveChannel
	}
	return target.Send(ctx, event, payload)
}

// run keeps the topic connected until the subscription is cancelled. The
// backoff doubles from one second up to thirty and resets whenever the
// channel subscribes successfully; after five straight failures the topic
// is left disconnected.
func (r *Reconciler) run(ctx context.Context, sub *subscription) {
	defer r.wg.Done()

	delay := reconnectBase
	failures := 0

	for ctx.Err() == nil {
		sub.setStatus(models.StatusConnecting)

		ch, err := r.dialer.Dial(ctx, sub.topic)
		if err == nil {
			sub.attach(ch)
			subscribed := r.pump(sub, ch)
			sub.detach()

			if ctx.Err() != nil {
				return
			}
			sub.setStatus(models.StatusDisconnected)

			if subscribed {
				delay = reconnectBase
				failures = 0
			}
		} else {
			r.log.Debug().
				Str("func", "run").
				Str("topic", sub.topic).
				Err(err).
				Msg("realtime dial failed")
		}

		failures++
		if failures > maxReconnects {
			r.log.Error().
				Str("func", "run").
				Str("topic", sub.topic).
				Int("failures", failures-1).
				Msg("giving up on realtime topic until next subscribe")
			sub.setStatus(models.StatusDisconnected)
			r.forget(sub)
			return
		}

		if err := r.sleep(ctx, delay); err != nil {
			return
		}
		delay *= 2
		if delay > reconnectCap {
			delay = reconnectCap
		}
	}
}

// pump dispatches channel events until the stream ends. It reports whether
// the channel reached the subscribed state.
func (r *Reconciler) pump(sub *subscription, ch Channel) bool {
	subscribed := false

	for event := range ch.Events() {
		switch event.Event {
		case EventSubscribed:
			subscribed = true
			sub.setStatus(models.StatusConnected)
			r.log.Info().
				Str("func", "pump").
				Str("topic", sub.topic).
				Msg("realtime topic subscribed")
		case EventChannelError, EventTimedOut:
			sub.setStatus(models.StatusDisconnected)
		case EventClosed:
			// Normal teardown, the loop ends with the stream.
		default:
			sub.handler(event)
		}
	}

	_ = ch.Close()
	return subscribed
}

// forget releases a subscription whose reconnect budget is exhausted, so a
// later Subscribe for the same topic starts fresh instead of hitting the
// duplicate guard. The identity check keeps a racing Unsubscribe+Subscribe
// pair from losing the newer subscription.
func (r *Reconciler) forget(sub *subscription) {
	r.mu.Lock()
	if cur, ok := r.subs[sub.topic]; ok && cur == sub {
		delete(r.subs, sub.topic)
	}
	r.mu.Unlock()
	sub.cancel()
}

func (s *subscription) setStatus(status models.ConnectionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *subscription) attach(ch Channel) {
	s.mu.Lock()
	s.channel = ch
	s.mu.Unlock()
}

func (s *subscription) detach() {
	s.mu.Lock()
	s.channel = nil
	s.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
