// Package config loads the pairkeep agent configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults, merging the layers in that priority order and validating the
// result before the agent starts.
package config
