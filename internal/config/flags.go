package config

import (
	"flag"
	"os"
	"time"

	"github.com/unistay/unistay/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local database file (default from Config)
//	-r string   MongoDB connection string of the backend store
//	-n string   database name within the backend store
//	-p string   host:port probed to decide reachability
//	-i int      reachability probe timeout in seconds
//	-s string   path of the session token file
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-n", "-p", "-i", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database file")
	fs.StringVar(&cfg.RemoteURI, "r", cfg.RemoteURI, "connection string of the backend store")
	fs.StringVar(&cfg.RemoteDatabase, "n", cfg.RemoteDatabase, "database name within the backend store")
	fs.StringVar(&cfg.ProbeAddr, "p", cfg.ProbeAddr, "host:port probed to decide reachability")
	probeTimeout := fs.Int("i", int(cfg.ProbeTimeout.Seconds()), "reachability probe timeout (in seconds)")
	fs.StringVar(&cfg.SessionTokenFile, "s", cfg.SessionTokenFile, "path of the session token file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
}
