// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package retry reruns failed remote operations with exponential backoff.
// A policy can be bound to a connectivity check so that attempts fail fast
// while the device is offline instead of burning the whole schedule.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pairkeep/pairkeep/internal/logger"
)

// ErrOffline is returned when an attempt is skipped because the device has
// no connectivity.
var ErrOffline = errors.New("device is offline")

// permanentError stops the schedule: retrying cannot change the outcome.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so [Policy.Do] returns it immediately instead of
// burning the remaining attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Config describes a retry schedule.
type Config struct {
	// MaxAttempts is the total number of attempts including the first one.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the per-attempt delay.
	MaxDelay time.Duration
	// Multiplier scales the delay after each failed attempt.
	Multiplier float64
}

// Default returns the general-purpose schedule: three attempts with delays
// of 1s and 2s, capped at 30s.
func Default() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}

// MoodSchedule returns the schedule used for queue drains: four attempts
// with delays of 1s, 2s and 4s.
func MoodSchedule() Config {
	return Config{
		MaxAttempts:  4,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}

// Online reports current connectivity. A nil check means always online.
type Online func() bool

// Policy executes operations according to a [Config].
type Policy struct {
	cfg    Config
	online Online
	log    *logger.Logger

	// sleep is swapped in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds a policy from cfg. A MaxAttempts below one is treated as a
// single attempt.
func New(cfg Config, online Online, log *logger.Logger) *Policy {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Policy{
		cfg:    cfg,
		online: online,
		log:    log,
		sleep:  sleepCtx,
	}
}

// Do runs op until it succeeds, the schedule is exhausted, or ctx is
// cancelled. Connectivity is checked before every attempt; when the device
// is offline the run ends immediately with [ErrOffline] wrapped around the
// last attempt error, if any.
func (p *Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	delay := p.cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.online != nil && !p.online() {
			if lastErr != nil {
				return fmt.Errorf("%w: %w", ErrOffline, lastErr)
			}
			return ErrOffline
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}

		if attempt == p.cfg.MaxAttempts {
			break
		}

		p.log.Debug().
			Str("func", "Do").
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(lastErr).
			Msg("attempt failed, retrying")

		if err := p.sleep(ctx, delay); err != nil {
			return err
		}

		delay = time.Duration(float64(delay) * p.cfg.Multiplier)
		if p.cfg.MaxDelay > 0 && delay > p.cfg.MaxDelay {
			delay = p.cfg.MaxDelay
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", p.cfg.MaxAttempts, lastErr)
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
