package dialer

import (
	"github.com/frankli0324/go-httpc/internal/dialer"
)

// Dialers are responsible for creating underlying streams that http requests could
// be written to and responses could be read from. for example, opening a raw TCP
// connection and doing the TLS handshake for https requests.
//
// Unlike [net/http.Transport], A Dialer MUST NOT hold active connection states,
// every connection it returns is used for exactly one exchange and closed
// afterwards. Like [net/http.Transport], it SHOULD hold the connection related
// configs like the [Resolver] or *[net/tls.Config].
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface. It would
// be used by a zero value [Client].
type CoreDialer = dialer.CoreDialer

// we need a dedicated resolver to customize the hosts table and the DNS
// servers used for resolving hostnames.
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
//
// Resolver reads the nameservers from a resolv.conf of our choosing and
// passes them to that hook, the hosts table is consulted before any query.
type Resolver = dialer.Resolver

// Candidate is one address a hostname resolved to.
type Candidate = dialer.Candidate

// Scheme describes how URLs of a scheme are connected.
type Scheme = dialer.Scheme

const (
	KindPlain = dialer.KindPlain
	KindTLS   = dialer.KindTLS
	KindUnix  = dialer.KindUnix
)

var (
	HTTP     = dialer.HTTP
	HTTPS    = dialer.HTTPS
	HTTPUnix = dialer.HTTPUnix
)
