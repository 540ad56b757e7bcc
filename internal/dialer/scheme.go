package dialer

import "github.com/frankli0324/go-httpc/internal/http"

// Kind selects the transport a scheme connects with.
type Kind int

const (
	KindPlain Kind = iota // TCP
	KindTLS               // TCP with a TLS handshake
	KindUnix              // unix domain stream socket
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindTLS:
		return "tls"
	case KindUnix:
		return "unix"
	}
	return "unknown"
}

// Scheme is how a URL scheme is connected.
type Scheme struct {
	Kind        Kind
	DefaultPort string // unused by unix sockets
}

const UnixScheme = "http+unix"

var (
	HTTP     = Scheme{Kind: KindPlain, DefaultPort: "80"}
	HTTPS    = Scheme{Kind: KindTLS, DefaultPort: "443"}
	HTTPUnix = Scheme{Kind: KindUnix}
)

// DefaultSchemes returns the schemes a client starts with. Unix sockets
// have to be enabled explicitly.
func DefaultSchemes() map[string]Scheme {
	return map[string]Scheme{"http": HTTP, "https": HTTPS}
}

// Socket reports whether URLs of the scheme name a socket path instead of a
// host.
func (s Scheme) Socket() bool {
	return s.Kind == KindUnix
}

func (s Scheme) port(t *http.Target) string {
	if t.Port != "" {
		return t.Port
	}
	return s.DefaultPort
}
