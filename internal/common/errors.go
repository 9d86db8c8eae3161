// Package common defines shared sentinel errors used across the local
// store, the remote store and the hybrid coordinators. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// ErrCrossUserViolation is returned when a local-store operation is
	// attempted against an entity id that does not match the single cached
	// user. It always indicates caller misuse and is never swallowed.
	ErrCrossUserViolation = errors.New("cross-user violation")

	// Network-level errors.
	ErrUnreachable       = errors.New("network unreachable")
	ErrRemoteWriteFailed = errors.New("remote write failed")

	// ErrCorruptRemoteData is returned when a remote document does not
	// decode into its expected shape. Distinguishable from ErrNotFound so
	// data problems are not masked as cache misses.
	ErrCorruptRemoteData = errors.New("corrupt remote data")

	// ErrMigrationFailed aborts local store initialization; continuing
	// with a mismatched schema risks silent data corruption.
	ErrMigrationFailed = errors.New("migration failed")
)
