package http

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/frankli0324/go-httpc/internal"
	ihttp "github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/metrics"
)

type Client = internal.Client
type Config = internal.Config
type ClientRequest = internal.ClientRequest
type Header = http.Header
type Request = ihttp.Request
type Response = ihttp.Response
type Version = ihttp.Version
type RequestError = ihttp.RequestError

type Handler = ihttp.Handler
type Middleware = ihttp.Middleware

var (
	HTTP10 = ihttp.HTTP10
	HTTP11 = ihttp.HTTP11
)

var (
	ErrInvalidVerify           = ihttp.ErrInvalidVerify
	ErrInvalidCert             = ihttp.ErrInvalidCert
	ErrInvalidURL              = ihttp.ErrInvalidURL
	ErrUnknownScheme           = ihttp.ErrUnknownScheme
	ErrInvalidHeader           = ihttp.ErrInvalidHeader
	ErrUnknownConnection       = ihttp.ErrUnknownConnection
	ErrUnknownTransferEncoding = ihttp.ErrUnknownTransferEncoding
	ErrUnsupportedVersion      = ihttp.ErrUnsupportedVersion
	ErrAmbiguousFraming        = ihttp.ErrAmbiguousFraming
	ErrBodyNotAllowed          = ihttp.ErrBodyNotAllowed
	ErrBodyTooLong             = ihttp.ErrBodyTooLong
	ErrBodyTooShort            = ihttp.ErrBodyTooShort
	ErrBodyFinished            = ihttp.ErrBodyFinished
	ErrHostNotFound            = ihttp.ErrHostNotFound
	ErrConnectionLost          = ihttp.ErrConnectionLost
	ErrHostnameMismatch        = ihttp.ErrHostnameMismatch
)

// NewClient validates cfg and returns a client using it.
func NewClient(cfg Config) (*Client, error) {
	return internal.NewClient(cfg)
}

// DefaultClient is used by [Do].
var DefaultClient = &Client{}

// Do sends req with [DefaultClient].
func Do(ctx context.Context, req *Request) (*Response, error) {
	return DefaultClient.CtxDo(ctx, req)
}

// Metrics is a [Middleware] recording request counts, errors and latencies.
// The collectors have to be registered with [RegisterMetrics] to be exported.
var Metrics Middleware = metrics.Middleware

func RegisterMetrics(r prometheus.Registerer) error {
	return metrics.Register(r)
}
