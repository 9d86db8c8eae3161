// Package app wires the UniStay client together: local store, remote
// store, reachability probe, session identity and the hybrid coordinators.
// It is the only place concrete implementations meet; everything below it
// takes its collaborators as interfaces.
package app

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/unistay/unistay/internal/config"
	"github.com/unistay/unistay/internal/filex"
	"github.com/unistay/unistay/internal/hybrid"
	"github.com/unistay/unistay/internal/identity"
	"github.com/unistay/unistay/internal/local"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/reachability"
	"github.com/unistay/unistay/internal/remote"
)

// App is the assembled client.
type App struct {
	cfg *config.Config
	log logging.Logger

	store  *local.Store
	stores *remote.Stores

	id  identity.Provider
	net reachability.Oracle

	Profiles *hybrid.ProfileCoordinator
	Listings *hybrid.ListingCoordinator
	Reviews  *hybrid.ReviewCoordinator
}

// NewApp opens the local store, connects to the remote store and builds
// the coordinators. A failed remote connection is not fatal: the app
// starts in offline mode and every coordinator sees an always-false
// reachability oracle, so the disconnected stores are never called.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	store, err := local.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	var (
		net      reachability.Oracle
		stores   *remote.Stores
		profiles remote.ProfileStore
		names    remote.NameResolver
		listings remote.ListingStore
		reviews  remote.ReviewStore
	)
	stores, err = remote.Connect(ctx, cfg.RemoteURI, cfg.RemoteDatabase)
	if err != nil {
		log.Warn(ctx, "remote store unavailable, starting offline", "err", err)
		net = reachability.Static(false)
	} else {
		net = reachability.NewProbe(cfg.ProbeAddr, cfg.ProbeTimeout)
		profiles = stores.Profiles
		names = stores.Profiles
		listings = stores.Listings
		reviews = stores.Reviews
	}

	id := sessionIdentity(cfg)

	return &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		stores:   stores,
		id:       id,
		net:      net,
		Profiles: hybrid.NewProfileCoordinator(store.Profiles, profiles, names, id, net, log),
		Listings: hybrid.NewListingCoordinator(store.Listings, listings, store.Meta, net, log),
		Reviews:  hybrid.NewReviewCoordinator(store.Reviews, reviews, store.Meta, net, log),
	}, nil
}

// sessionIdentity derives the signed-in user from the session token file.
// No file configured, or no file present, means signed out.
func sessionIdentity(cfg *config.Config) identity.Provider {
	if cfg.SessionTokenFile == "" {
		return identity.Static{}
	}
	path := cfg.SessionTokenFile
	return identity.NewSessionProvider(func(context.Context) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	})
}

// CurrentUserID exposes the session identity to commands.
func (a *App) CurrentUserID(ctx context.Context) (string, bool) {
	return a.id.CurrentUserID(ctx)
}

// Close releases both stores.
func (a *App) Close(ctx context.Context) error {
	if a.stores != nil {
		if err := a.stores.Close(ctx); err != nil {
			a.log.Warn(ctx, "closing remote store", "err", err)
		}
	}
	return a.store.Close()
}
