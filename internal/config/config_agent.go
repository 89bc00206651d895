package config

import (
	"fmt"
	"time"
)

// AgentRemote holds network settings used by the agent's transport layer.
type AgentRemote struct {
	// BaseURL is the hosted data API endpoint.
	BaseURL string
	// RealtimeURL is the realtime websocket endpoint.
	RealtimeURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// AgentStorage groups local persistence settings for the agent.
type AgentStorage struct {
	// DB holds local queue database settings.
	DB DB
	// SessionPath is the cached session file location.
	SessionPath string
}

// AgentSync contains trigger scheduling settings.
type AgentSync struct {
	// Interval defines how often the periodic sync trigger fires.
	Interval time.Duration
	// OnlineDebounce is how long a reconnect must hold before the online
	// trigger fires.
	OnlineDebounce time.Duration
}

// AgentBridge contains worker bridge listener settings.
type AgentBridge struct {
	// Address is the loopback address the bridge listens on.
	Address string
}

// AgentConfig is the agent-specific configuration view assembled from
// [StructuredConfig].
type AgentConfig struct {
	// Remote contains hosted platform endpoints and timeouts.
	Remote AgentRemote
	// Storage contains local persistence settings.
	Storage AgentStorage
	// Sync contains trigger scheduling settings.
	Sync AgentSync
	// Bridge contains worker bridge settings.
	Bridge AgentBridge
}

// GetAgentConfig builds and validates the agent-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the agent runtime, and validates the resulting [AgentConfig].
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	agentCfg := &AgentConfig{
		Remote: AgentRemote{
			BaseURL:        cfg.Remote.BaseURL,
			RealtimeURL:    cfg.Remote.RealtimeURL,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: AgentStorage{
			DB:          DB{DSN: cfg.Storage.DB.DSN},
			SessionPath: cfg.Storage.SessionPath,
		},
		Sync: AgentSync{
			Interval:       cfg.Sync.Interval,
			OnlineDebounce: cfg.Sync.OnlineDebounce,
		},
		Bridge: AgentBridge{
			Address: cfg.Bridge.Address,
		},
	}

	return agentCfg, agentCfg.validate()
}
