package transport

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/transport/chunked"
)

type ReaderKind int

const (
	ReadZero ReaderKind = iota
	ReadBounded
	ReadChunked
	ReadUntilClose
)

func (k ReaderKind) String() string {
	switch k {
	case ReadZero:
		return "zero"
	case ReadBounded:
		return "bounded"
	case ReadChunked:
		return "chunked"
	case ReadUntilClose:
		return "until-close"
	}
	return "unknown"
}

// BodyAllowed reports whether a response to method with the given status
// may carry a body at all, per RFC 9112 section 6.3.
func BodyAllowed(method string, status int) bool {
	return method != "HEAD" && status >= 200 && status != 204 && status != 304
}

// ResolveReader decides how the body of a response is framed.
//
//	HTTP/1.0: Content-Length if present, otherwise until close.
//	HTTP/1.1: chunked if Transfer-Encoding is chunked, Content-Length if
//	          the coding is absent or identity, otherwise until close when
//	          neither is given. Any other coding is ambiguous.
//
// A declared length of zero is the zero reader.
func ResolveReader(version http.Version, h http.Header) (ReaderKind, int64, error) {
	switch version {
	case http.HTTP10:
		cl, ok, err := responseLength(h)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			return ReadUntilClose, 0, nil
		}
		return bounded(cl), cl, nil
	case http.HTTP11:
		te, hasTE := HeaderList(h, "Transfer-Encoding")
		te = strings.ToLower(te)
		if te == "chunked" {
			return ReadChunked, 0, nil
		}
		if hasTE && te != "identity" {
			return 0, 0, fmt.Errorf("%w, got transfer-encoding '%s'", http.ErrAmbiguousFraming, te)
		}
		cl, ok, err := responseLength(h)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			return ReadUntilClose, 0, nil
		}
		return bounded(cl), cl, nil
	}
	return 0, 0, fmt.Errorf("%w: %v", http.ErrUnsupportedVersion, version)
}

func bounded(n int64) ReaderKind {
	if n == 0 {
		return ReadZero
	}
	return ReadBounded
}

func responseLength(h http.Header) (int64, bool, error) {
	n, ok, err := ContentLength(h)
	if err != nil {
		return 0, false, &http.RequestError{Reason: err.Error()}
	}
	return n, ok, nil
}

// BodyReader reads a response body with exactly one framing. Closing it
// closes the underlying transport.
type BodyReader struct {
	kind    ReaderKind
	br      *bufio.Reader
	remain  int64
	chunked *chunked.Reader
	closer  io.Closer
}

func NewBodyReader(kind ReaderKind, length int64, br *bufio.Reader, closer io.Closer) *BodyReader {
	r := &BodyReader{kind: kind, br: br, remain: length, closer: closer}
	if kind == ReadChunked {
		r.chunked = chunked.NewReader(br)
	}
	return r
}

func (b *BodyReader) Kind() ReaderKind {
	return b.kind
}

func (b *BodyReader) Read(p []byte) (int, error) {
	switch b.kind {
	case ReadZero:
		return 0, io.EOF
	case ReadBounded:
		if b.remain <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > b.remain {
			p = p[:b.remain]
		}
		n, err := b.br.Read(p)
		b.remain -= int64(n)
		if err == io.EOF {
			err = http.ErrConnectionLost
		}
		return n, err
	case ReadChunked:
		return b.chunked.Read(p)
	case ReadUntilClose:
		return b.br.Read(p)
	}
	return 0, fmt.Errorf("unknown reader kind %v", b.kind)
}

func (b *BodyReader) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
