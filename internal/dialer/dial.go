package dialer

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/getlantern/golog"
	"golang.org/x/sys/unix"

	"github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/metrics"
)

var log = golog.LoggerFor("go-httpc.dialer")

var zeroDialer net.Dialer

// maxSocketPath is the room for a path in sockaddr_un, terminator included.
var maxSocketPath = len(unix.RawSockaddrUnix{}.Path)

func (d *CoreDialer) Dial(ctx context.Context, s Scheme, t *http.Target) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()

	start := time.Now()
	var conn net.Conn
	var err error
	switch s.Kind {
	case KindPlain:
		conn, err = d.dialTCP(ctx, t, s.port(t))
	case KindTLS:
		conn, err = d.dialTLS(ctx, t, s.port(t))
	case KindUnix:
		conn, err = d.dialUnix(ctx, t)
	default:
		err = fmt.Errorf("%w: unknown transport kind %v", http.ErrUnknownScheme, s.Kind)
	}
	if err != nil {
		return nil, err
	}
	metrics.ConnectDuration.WithLabelValues(s.Kind.String()).Observe(time.Since(start).Seconds())
	return conn, nil
}

// dialTCP tries the candidates of the host in order and returns the first
// connection established.
func (d *CoreDialer) dialTCP(ctx context.Context, t *http.Target, port string) (net.Conn, error) {
	candidates, err := d.Resolver.Lookup(ctx, t.Host)
	if err != nil {
		return nil, err
	}
	var lastErr error
	for _, c := range candidates {
		addr := net.JoinHostPort(c.IP, port)
		conn, err := zeroDialer.DialContext(ctx, c.Family.Network(), addr)
		if err == nil {
			log.Debugf("connected to %s (%s) for %s", addr, c.Family, t.Host)
			return conn, nil
		}
		log.Debugf("unable to connect to %s: %v", addr, err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (d *CoreDialer) dialTLS(ctx context.Context, t *http.Target, port string) (net.Conn, error) {
	config, err := d.tlsConfig(t.Host)
	if err != nil {
		return nil, err
	}
	conn, err := d.dialTCP(ctx, t, port)
	if err != nil {
		return nil, err
	}
	c := tls.Client(conn, config)
	if err := c.HandshakeContext(ctx); err != nil {
		conn.Close()
		var he x509.HostnameError
		if errors.As(err, &he) {
			return nil, fmt.Errorf("%w: %v", http.ErrHostnameMismatch, err)
		}
		return nil, err
	}
	if !config.InsecureSkipVerify {
		if err := matchHostname(c.ConnectionState(), t.Host); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (d *CoreDialer) dialUnix(ctx context.Context, t *http.Target) (net.Conn, error) {
	if len(t.Socket) >= maxSocketPath {
		return nil, fmt.Errorf("unix socket path too long: %d bytes", len(t.Socket))
	}
	return zeroDialer.DialContext(ctx, "unix", t.Socket)
}
