// Package config loads runtime configuration for the UniStay client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local database file
//	-r string   MongoDB connection string of the backend store
//	-n string   database name within the backend store
//	-p string   host:port probed to decide reachability
//	-i int      reachability probe timeout (seconds)
//	-s string   path of the session token file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the probe timeout, so values can
// be either strings like "2s" or integer nanoseconds:
//
//	{
//	  "database_path": "unistay.db",
//	  "remote_uri": "mongodb://127.0.0.1:27017",
//	  "remote_database": "unistay",
//	  "probe_addr": "127.0.0.1:27017",
//	  "probe_timeout": "2s",
//	  "session_token_file": ""
//	}
//
// Primary API
//
//   - type Config                     — holds the local store, remote store and probe settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
