package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getlantern/golog"

	"github.com/frankli0324/go-httpc/internal/dialer"
	"github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/transport"
)

var log = golog.LoggerFor("go-httpc")

type Handler = http.Handler
type Middleware = http.Middleware

// Config holds the connection settings of a [Client].
type Config struct {
	Resolver *dialer.Resolver
	Timeout  time.Duration // lookup, connect and handshake; default 60s

	// Verify is a bool, or the path of a CA bundle to verify peers
	// against. nil means true.
	Verify interface{}
	// Cert is nil, the path of a file holding both the client certificate
	// and its key, or a [2]string or []string of certificate and key paths.
	Cert interface{}
}

type Client struct {
	middlewares []Middleware
	dialer      dialer.Dialer
	schemes     map[string]dialer.Scheme
}

var defaultDialer = &dialer.CoreDialer{}

var defaultSchemes = dialer.DefaultSchemes()

// NewClient validates cfg and returns a client using it. A zero Client
// behaves like NewClient(Config{}).
func NewClient(cfg Config) (*Client, error) {
	requireCert, caFile, err := dialer.NormalizeVerify(cfg.Verify)
	if err != nil {
		return nil, err
	}
	certFile, keyFile, err := dialer.NormalizeCert(cfg.Cert)
	if err != nil {
		return nil, err
	}
	return &Client{dialer: &dialer.CoreDialer{
		Resolver:   cfg.Resolver,
		Timeout:    cfg.Timeout,
		SkipVerify: !requireCert,
		CAFile:     caFile,
		CertFile:   certFile,
		KeyFile:    keyFile,
	}}, nil
}

// Use appends mws to the chain. Middlewares run in the order they were added.
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer replaces the dialer of the client with the one returned by f,
// which receives the current dialer.
func (c *Client) UseDialer(f func(dialer.Dialer) dialer.Dialer) {
	c.dialer = f(c.getDialer())
}

func (c *Client) getDialer() dialer.Dialer {
	if c.dialer == nil {
		return defaultDialer
	}
	return c.dialer
}

func (c *Client) scheme(name string) (dialer.Scheme, bool) {
	schemes := c.schemes
	if schemes == nil {
		schemes = defaultSchemes
	}
	s, ok := schemes[name]
	return s, ok
}

// Request starts an exchange: the request line, the headers and the body
// given with req are written before it returns. More body may be written
// with [ClientRequest.Write] before calling [ClientRequest.Finish].
//
// Errors in req are reported before any connection is made.
func (c *Client) Request(ctx context.Context, req *http.Request) (*ClientRequest, error) {
	pr, err := req.Prepare()
	if err != nil {
		return nil, err
	}
	s, ok := c.scheme(pr.Scheme)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", http.ErrUnknownScheme, pr.Scheme)
	}
	target, err := http.ParseTarget(req.URL, s.Socket())
	if err != nil {
		return nil, err
	}
	header, framing, err := transport.ResolveWriter(req.Method, target.HostHeader(), req.Header, len(pr.Body))
	if err != nil {
		return nil, err
	}
	if framing.Kind == transport.WriteBounded && int64(len(pr.Body)) > framing.Length {
		return nil, fmt.Errorf("%w: content-length is %d, got %d bytes", http.ErrBodyTooLong, framing.Length, len(pr.Body))
	}

	raw, err := c.getDialer().Dial(ctx, s, target)
	if err != nil {
		return nil, err
	}
	conn := dialer.Watch(ctx, raw)

	if err := transport.WriteRequestHead(conn, req.Method, target.RequestURI, header); err != nil {
		conn.Close()
		return nil, err
	}
	cr := &ClientRequest{
		Method: req.Method,
		URL:    req.URL,
		Header: header,
		conn:   conn,
		writer: transport.NewBodyWriter(conn, framing),
	}
	log.Debugf("%s %s over %v, %v body", req.Method, req.URL, raw.RemoteAddr(), cr.writer.Kind())
	if len(pr.Body) > 0 {
		if _, err := cr.writer.Write(pr.Body); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return cr, nil
}

// CtxDo sends req through the middleware chain and returns the response
// once its head has been read. The body must be read and closed.
func (c *Client) CtxDo(ctx context.Context, req *http.Request) (*http.Response, error) {
	next := func(ctx context.Context, req *http.Request) (*http.Response, error) {
		cr, err := c.Request(ctx, req)
		if err != nil {
			return nil, err
		}
		return cr.Finish()
	}
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	return next(ctx, req)
}

// ClientRequest is an exchange whose request body is being written.
type ClientRequest struct {
	Method string
	URL    string
	Header http.Header // as written to the wire

	conn   *dialer.Conn
	writer *transport.BodyWriter
}

func (r *ClientRequest) Write(p []byte) (int, error) {
	return r.writer.Write(p)
}

// Finish completes the request body and reads the response head. Interim
// 1xx responses other than 101 are skipped.
func (r *ClientRequest) Finish() (*http.Response, error) {
	if err := r.writer.Finish(); err != nil {
		if !errors.Is(err, http.ErrBodyFinished) {
			r.conn.Close()
		}
		return nil, err
	}
	resp, err := r.readResponse(bufio.NewReader(r.conn))
	if err != nil {
		r.conn.Close()
		return nil, err
	}
	return resp, nil
}

func (r *ClientRequest) readResponse(br *bufio.Reader) (*http.Response, error) {
	for {
		version, code, reason, err := transport.ReadStatusLine(br)
		if err != nil {
			return nil, err
		}
		header, err := transport.ReadHeader(br)
		if err != nil {
			return nil, err
		}
		if code >= 100 && code < 200 && code != 101 {
			log.Debugf("skipping interim response %d %s", code, reason)
			continue
		}

		kind, length := transport.ReadZero, int64(0)
		if transport.BodyAllowed(r.Method, code) {
			kind, length, err = transport.ResolveReader(version, header)
			if err != nil {
				return nil, err
			}
		} else if version != http.HTTP10 && version != http.HTTP11 {
			return nil, fmt.Errorf("%w: %v", http.ErrUnsupportedVersion, version)
		}
		body := transport.NewBodyReader(kind, length, br, r.conn)
		log.Debugf("%s %s: %d %s, %v body", r.Method, r.URL, code, reason, body.Kind())
		return &http.Response{
			Version:    version,
			StatusCode: code,
			Reason:     reason,
			Header:     header,
			Body:       body,
		}, nil
	}
}
