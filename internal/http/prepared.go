package http

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"
)

type PreparedRequest struct {
	*Request

	Scheme string
	Target *Target
	Body   []byte
}

// Target is the parsed destination of a request.
type Target struct {
	Host       string // hostname without brackets, empty for socket targets
	Port       string // empty when the URL carries no port
	Socket     string // filesystem path of a local domain socket
	RequestURI string
}

// HostHeader is the default value of the Host header for t.
func (t *Target) HostHeader() string {
	if t.Socket != "" {
		return "localhost"
	}
	if strings.IndexByte(t.Host, ':') >= 0 {
		return "[" + t.Host + "]"
	}
	return t.Host
}

func (r *Request) Prepare() (*PreparedRequest, error) {
	scheme, err := SchemeOf(r.URL)
	if err != nil {
		return nil, err
	}
	pr := &PreparedRequest{Request: r, Scheme: scheme}
	if err := pr.updateBody(); err != nil {
		return nil, err
	}
	return pr, nil
}

// should only be called once at [Prepare]
func (r *PreparedRequest) updateBody() error {
	switch b := r.Request.Body.(type) {
	case nil:
		r.Body = nil
	case string:
		r.Body = []byte(b)
	case []byte:
		r.Body = b
	case *bytes.Buffer: // snapshot, the buffer is not drained
		r.Body = b.Bytes()
	case *bytes.Reader:
		snapshot := *b
		r.Body = make([]byte, snapshot.Len())
		snapshot.Read(r.Body)
	case *strings.Reader:
		snapshot := *b
		r.Body = make([]byte, snapshot.Len())
		snapshot.Read(r.Body)
	default:
		return fmt.Errorf("unsupported body type: %T", r.Request.Body)
	}
	return nil
}

// SchemeOf returns the lower-cased scheme of a URL without parsing the rest
// of it, so that unknown schemes can be rejected before anything else.
func SchemeOf(raw string) (string, error) {
	scheme, _, ok := strings.Cut(raw, ":")
	if !ok || scheme == "" {
		return "", fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, raw)
	}
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", fmt.Errorf("%w: invalid scheme in %q", ErrInvalidURL, raw)
		}
	}
	return strings.ToLower(scheme), nil
}

// ParseTarget parses raw into a Target. When socket is set, the authority
// of raw is a percent-encoded filesystem path instead of a host.
func ParseTarget(raw string, socket bool) (*Target, error) {
	if socket {
		return parseSocketTarget(raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: empty host in %q", ErrInvalidURL, raw)
	}
	return &Target{Host: u.Hostname(), Port: u.Port(), RequestURI: u.RequestURI()}, nil
}

func parseSocketTarget(raw string) (*Target, error) {
	_, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, fmt.Errorf("%w: missing authority in %q", ErrInvalidURL, raw)
	}
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority, err := url.PathUnescape(rest[:end])
	if err != nil || authority == "" {
		return nil, fmt.Errorf("%w: invalid socket path in %q", ErrInvalidURL, raw)
	}
	u, err := url.Parse("http://localhost" + rest[end:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return &Target{Socket: path.Join("/", authority), RequestURI: u.RequestURI()}, nil
}
