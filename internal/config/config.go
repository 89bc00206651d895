// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the pairkeep
// sync agent. It is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the hosted data platform endpoints and timeouts.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds trigger scheduling and retry settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Bridge holds the background-sync worker bridge listener settings.
	Bridge Bridge `envPrefix:"BRIDGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds endpoints and timeouts for the hosted data platform.
type Remote struct {
	// BaseURL is the HTTP endpoint of the hosted data API
	// (e.g. "https://api.pairkeep.app"). Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RealtimeURL is the websocket endpoint of the platform's realtime
	// broadcast service (e.g. "wss://realtime.pairkeep.app").
	// Env: REMOTE_REALTIME_URL
	RealtimeURL string `env:"REALTIME_URL"`

	// RequestTimeout is the default timeout for outbound requests
	// (e.g. "30s"). Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local queue database settings.
	DB DB `envPrefix:"DB_"`

	// SessionPath is the path of the cached session file written by the
	// platform's auth layer. Env: STORAGE_SESSION_PATH
	SessionPath string `env:"SESSION_PATH"`
}

// DB holds connection settings for the local SQLite queue database.
type DB struct {
	// DSN is the SQLite file path or connection string used for the local
	// offline queue. Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds trigger scheduling settings for the sync engine.
type Sync struct {
	// Interval defines how often the periodic trigger fires while the app
	// is open, online, and authenticated. Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// OnlineDebounce is how long an offline→online transition must hold
	// before the online trigger fires. Env: SYNC_ONLINE_DEBOUNCE
	OnlineDebounce time.Duration `env:"ONLINE_DEBOUNCE"`
}

// Bridge holds settings for the localhost listener that receives completion
// messages from the out-of-process background-sync worker.
type Bridge struct {
	// Address is the loopback TCP address the bridge listens on,
	// in "host:port" format. Env: BRIDGE_ADDRESS
	Address string `env:"ADDRESS"`
}

// defaults returns the built-in configuration layer, merged in last so any
// explicitly provided value wins.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Remote: Remote{
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "pairkeep.db"},
		},
		Sync: Sync{
			Interval:       5 * time.Minute,
			OnlineDebounce: 1500 * time.Millisecond,
		},
		Bridge: Bridge{
			Address: "127.0.0.1:47600",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the agent configuration
// from all available sources in the following priority order (earlier sources
// win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
