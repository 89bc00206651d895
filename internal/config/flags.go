package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-base-url hosted data API endpoint
//	-realtime-url realtime websocket endpoint
//	-d local queue database DSN (SQLite path)
//	-session cached session file path
//	-sync-interval periodic sync interval (e.g., "5m")
//	-online-debounce offline→online debounce (e.g., "1500ms")
//	-bridge-address worker bridge listen address host:port
//	-request-timeout outbound request timeout (e.g., "30s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *StructuredConfig {
	var baseURL string
	var realtimeURL string
	var databaseDSN string
	var sessionPath string
	var syncInterval time.Duration
	var onlineDebounce time.Duration
	var bridgeAddress string
	var requestTimeout time.Duration
	var jsonConfigPath string

	fs.StringVar(&baseURL, "base-url", "", "Hosted data API endpoint")
	fs.StringVar(&realtimeURL, "realtime-url", "", "Realtime websocket endpoint")
	fs.StringVar(&databaseDSN, "d", "", "Local queue database DSN")
	fs.StringVar(&sessionPath, "session", "", "Cached session file path")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	fs.DurationVar(&onlineDebounce, "online-debounce", 0, "Offline→online debounce (e.g., 1500ms)")
	fs.StringVar(&bridgeAddress, "bridge-address", "", "Worker bridge listen address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        baseURL,
			RealtimeURL:    realtimeURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB:          DB{DSN: databaseDSN},
			SessionPath: sessionPath,
		},
		Sync: Sync{
			Interval:       syncInterval,
			OnlineDebounce: onlineDebounce,
		},
		Bridge: Bridge{
			Address: bridgeAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}
