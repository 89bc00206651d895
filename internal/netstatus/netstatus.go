// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package netstatus tracks whether the hosted platform is reachable and
// notifies subscribers about connectivity transitions. Going offline is
// reported immediately; going back online is debounced so that a flapping
// link does not trigger repeated sync runs.
package netstatus

import (
	"context"
	"sync"
	"time"

	"github.com/pairkeep/pairkeep/internal/logger"
)

// Transition describes a connectivity change delivered to subscribers.
type Transition struct {
	// Online is the connectivity state after the transition.
	Online bool
	// At is when the transition was observed.
	At time.Time
}

// Probe reports whether the remote endpoint is currently reachable.
type Probe func(ctx context.Context) bool

// Notifier tracks connectivity and fans transitions out to subscribers.
type Notifier struct {
	log      *logger.Logger
	probe    Probe
	debounce time.Duration

	mu          sync.Mutex
	online      bool
	subscribers map[int]chan Transition
	nextSubID   int
	pendingUp   *time.Timer

	// timerFactory is swapped in tests to control the debounce timer.
	timerFactory func(d time.Duration, fn func()) *time.Timer
}

// NewNotifier creates a Notifier with the given probe and online debounce
// window. The notifier starts in the online state; the first probe corrects
// it if the link is actually down.
func NewNotifier(log *logger.Logger, probe Probe, debounce time.Duration) *Notifier {
	return &Notifier{
		log:          log,
		probe:        probe,
		debounce:     debounce,
		online:       true,
		subscribers:  make(map[int]chan Transition),
		timerFactory: time.AfterFunc,
	}
}

// Online reports the current connectivity state.
func (n *Notifier) Online() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.online
}

// Subscribe registers a new transition listener. The returned cancel func
// removes the subscription and closes the channel; it is safe to call more
// than once.
func (n *Notifier) Subscribe() (<-chan Transition, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextSubID
	n.nextSubID++

	ch := make(chan Transition, 4)
	n.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subscribers[id]; ok {
				delete(n.subscribers, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// SetOnline records an observed connectivity state. Offline transitions
// apply immediately; online transitions are held for the debounce window and
// dropped if the link goes down again before it elapses.
func (n *Notifier) SetOnline(online bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !online {
		if n.pendingUp != nil {
			n.pendingUp.Stop()
			n.pendingUp = nil
		}
		if n.online {
			n.online = false
			n.broadcastLocked(Transition{Online: false, At: time.Now()})
			n.log.Info().Str("func", "SetOnline").Msg("connection lost")
		}
		return
	}

	if n.online || n.pendingUp != nil {
		return
	}

	if n.debounce <= 0 {
		n.online = true
		n.broadcastLocked(Transition{Online: true, At: time.Now()})
		n.log.Info().Str("func", "SetOnline").Msg("connection restored")
		return
	}

	n.pendingUp = n.timerFactory(n.debounce, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.pendingUp == nil {
			return
		}
		n.pendingUp = nil
		n.online = true
		n.broadcastLocked(Transition{Online: true, At: time.Now()})
		n.log.Info().Str("func", "SetOnline").Msg("connection restored")
	})
}

// Check runs the probe once and feeds the result into SetOnline.
func (n *Notifier) Check(ctx context.Context) bool {
	up := n.probe(ctx)
	n.SetOnline(up)
	return up
}

// Run probes connectivity on the given interval until ctx is cancelled. It
// blocks and is meant to be started in its own goroutine.
func (n *Notifier) Run(ctx context.Context, interval time.Duration) {
	n.Check(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n.Check(ctx)
		}
	}
}

func (n *Notifier) broadcastLocked(tr Transition) {
	for _, ch := range n.subscribers {
		select {
		case ch <- tr:
		default:
			// Slow subscribers drop transitions rather than block the notifier.
		}
	}
}
