package config

import "time"

// Config holds runtime settings for the UniStay client.
//
// Fields:
//   - DatabasePath: filesystem path of the local SQLite cache.
//   - RemoteURI: MongoDB connection string of the backend store.
//   - RemoteDatabase: database name within the backend store.
//   - ProbeAddr: host:port dialed to decide reachability before each
//     remote call.
//   - ProbeTimeout: how long a single reachability probe may take.
//   - SessionTokenFile: path of the file holding the signed-in session
//     token; empty means nobody is signed in.
type Config struct {
	DatabasePath     string
	RemoteURI        string
	RemoteDatabase   string
	ProbeAddr        string
	ProbeTimeout     time.Duration
	SessionTokenFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "unistay.db"
	c.RemoteURI = "mongodb://127.0.0.1:27017"
	c.RemoteDatabase = "unistay"
	c.ProbeAddr = "127.0.0.1:27017"
	c.ProbeTimeout = 2 * time.Second
	c.SessionTokenFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
