// Package reachability provides the connectivity oracle consulted by the
// hybrid coordinators. The oracle is re-evaluated on every call; its
// result is never cached across operations because connectivity can change
// at any moment.
package reachability

import (
	"context"
	"net"
	"time"
)

// Oracle reports whether the device currently has network connectivity.
type Oracle interface {
	Reachable(ctx context.Context) bool
}

// Static is a fixed Oracle for tests and forced-offline mode.
type Static bool

func (s Static) Reachable(context.Context) bool { return bool(s) }

// Probe checks connectivity by opening a TCP connection to a well-known
// endpoint, typically the remote store's host. Each Reachable call dials
// fresh.
type Probe struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewProbe builds a probe for addr (host:port). timeout bounds a single
// probe attempt.
func NewProbe(addr string, timeout time.Duration) *Probe {
	return &Probe{addr: addr, timeout: timeout}
}

func (p *Probe) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
