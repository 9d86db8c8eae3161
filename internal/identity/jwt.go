package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the current session token, e.g. from the platform
// keychain. An empty token means signed out.
type TokenSource func(ctx context.Context) (string, error)

// SessionProvider derives the current user id from the session JWT's sub
// claim. The token is parsed without signature verification: the identity
// service verified it when it was issued, and this client only needs the
// subject for cache gating, not for authorization decisions.
type SessionProvider struct {
	source TokenSource
	parser *jwt.Parser
}

func NewSessionProvider(source TokenSource) *SessionProvider {
	return &SessionProvider{
		source: source,
		parser: jwt.NewParser(),
	}
}

func (p *SessionProvider) CurrentUserID(ctx context.Context) (string, bool) {
	token, err := p.source(ctx)
	if err != nil || token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	if _, _, err := p.parser.ParseUnverified(token, claims); err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
