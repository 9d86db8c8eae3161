// Package identity exposes who is currently signed in. The hybrid
// coordinators use it to gate profile pushes: locally cached data is only
// ever pushed for the account that produced it.
package identity

import "context"

// Provider reports the currently authenticated user.
type Provider interface {
	// CurrentUserID returns the signed-in user's id and true, or "" and
	// false when nobody is signed in.
	CurrentUserID(ctx context.Context) (string, bool)
}

// Static is a fixed Provider, used in tests and for forced sign-out.
type Static struct {
	ID string
}

func (s Static) CurrentUserID(context.Context) (string, bool) {
	return s.ID, s.ID != ""
}
