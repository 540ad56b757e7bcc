package http

import "errors"

// configuration errors, raised before or without touching the network
var (
	ErrInvalidVerify = errors.New("http: verify must be a bool or a CA bundle path")
	ErrInvalidCert   = errors.New("http: cert must be a path or a (certfile, keyfile) pair")
	ErrInvalidURL    = errors.New("http: invalid URL")
	ErrUnknownScheme = errors.New("http: unknown URI scheme")
	ErrInvalidHeader = errors.New("http: invalid header")

	ErrUnknownConnection       = errors.New("http: unknown connection value")
	ErrUnknownTransferEncoding = errors.New("http: unknown transfer encoding")
	ErrUnsupportedVersion      = errors.New("http: unsupported HTTP version")
	ErrAmbiguousFraming        = errors.New("http: either content-length or transfer-encoding: chunked must be used")

	ErrBodyNotAllowed = errors.New("http: no request body allowed")
	ErrBodyTooLong    = errors.New("http: body longer than declared content length")
	ErrBodyTooShort   = errors.New("http: body shorter than declared content length")
	ErrBodyFinished   = errors.New("http: body already finished")
)

var (
	// ErrHostNotFound is returned when neither the hosts table nor the
	// resolver yields an address. It is distinct from connection failures.
	ErrHostNotFound = errors.New("http: host not found")

	// ErrConnectionLost is returned when the peer closes the connection
	// before a complete response arrived.
	ErrConnectionLost = errors.New("http: connection lost")

	ErrHostnameMismatch = errors.New("http: certificate does not match hostname")
)

// RequestError reports malformed input from the peer.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "http: " + e.Reason
}
