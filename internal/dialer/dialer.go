package dialer

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/frankli0324/go-httpc/internal/http"
)

// DefaultTimeout bounds the lookup, connect and handshake of a transport.
const DefaultTimeout = 60 * time.Second

// Dialers handle pretty much everything related to the actual connection,
// from looking up the host to the TLS handshake.
type Dialer interface {
	// Dial returns a fresh connection to the target using the scheme's
	// transport. The connection is owned by one exchange and never reused.
	Dial(ctx context.Context, s Scheme, t *http.Target) (net.Conn, error)
}

type CoreDialer struct {
	Resolver *Resolver
	Timeout  time.Duration // zero means DefaultTimeout

	TLSConfig  *tls.Config // base config, ServerName and verification are overridden
	SkipVerify bool
	CAFile     string // verify against this bundle instead of the system roots
	CertFile   string // client certificate
	KeyFile    string
}

func (d *CoreDialer) Clone() *CoreDialer {
	c := *d
	c.Resolver = d.Resolver.Clone()
	c.TLSConfig = d.TLSConfig.Clone()
	return &c
}

func (d *CoreDialer) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}
