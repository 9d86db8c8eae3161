package main

import (
	"context"
	"log"
	"os"

	"github.com/unistay/unistay/internal/app"
	"github.com/unistay/unistay/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	// Close before exiting so the database handle is released even when the
	// command fails; log.Fatalf would skip it.
	err = a.Run(ctx, nonFlagArgs(os.Args[1:]))
	if cerr := a.Close(ctx); err == nil {
		err = cerr
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

// nonFlagArgs strips the configuration flags (and their values) so only
// the subcommand and its arguments remain.
func nonFlagArgs(args []string) []string {
	out := make([]string, 0, len(args))
	skip := false
	for _, a := range args {
		if skip {
			skip = false
			continue
		}
		switch a {
		case "-d", "-r", "-n", "-p", "-i", "-s", "-c", "-config":
			skip = true
		default:
			out = append(out, a)
		}
	}
	return out
}
