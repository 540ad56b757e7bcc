package transport

import (
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/transport/chunked"
)

type WriterKind int

const (
	WriteZero WriterKind = iota
	WriteBounded
	WriteChunked
)

func (k WriterKind) String() string {
	switch k {
	case WriteZero:
		return "zero"
	case WriteBounded:
		return "bounded"
	case WriteChunked:
		return "chunked"
	}
	return "unknown"
}

// Framing is the body framing of an outgoing message.
type Framing struct {
	Kind   WriterKind
	Length int64 // declared length of a bounded body
}

// ResolveWriter normalizes the headers of a request and decides how its
// body is framed. host is the default Host value and bodyLen the length of
// the body given with the request. The returned header has canonical keys.
//
// Only "Connection: close" is accepted: connections are never reused.
func ResolveWriter(method, host string, in http.Header, bodyLen int) (http.Header, Framing, error) {
	if !httpguts.ValidHeaderFieldName(method) {
		return nil, Framing{}, fmt.Errorf("%w: invalid method %q", http.ErrInvalidHeader, method)
	}
	h := make(http.Header, len(in)+2)
	for k, vv := range in {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, Framing{}, fmt.Errorf("%w: invalid field name %q", http.ErrInvalidHeader, k)
		}
		for _, v := range vv {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, Framing{}, fmt.Errorf("%w: invalid value for field %q", http.ErrInvalidHeader, k)
			}
		}
		ck := textproto.CanonicalMIMEHeaderKey(k)
		h[ck] = append(h[ck], vv...)
	}
	if len(h.Values("Host")) == 0 {
		h.Set("Host", host)
	}

	connection, err := HeaderSingle(h, "Connection", "close")
	if err != nil {
		return nil, Framing{}, err
	}
	if strings.ToLower(connection) != "close" {
		return nil, Framing{}, fmt.Errorf("%w '%s'", http.ErrUnknownConnection, connection)
	}
	h.Set("Connection", connection)

	te, hasTE := HeaderList(h, "Transfer-Encoding")
	if hasTE {
		te = strings.ToLower(te)
		if te != "identity" && te != "chunked" {
			return nil, Framing{}, fmt.Errorf("%w '%s'", http.ErrUnknownTransferEncoding, te)
		}
	}
	cl, hasCL, err := ContentLength(h)
	if err != nil {
		return nil, Framing{}, fmt.Errorf("%w: %v", http.ErrInvalidHeader, err)
	}
	if !hasCL {
		cl = int64(bodyLen)
	}

	switch {
	case method == "HEAD":
		if cl != 0 {
			return nil, Framing{}, fmt.Errorf("%w: content-length != 0 for HEAD request", http.ErrBodyNotAllowed)
		}
		h.Del("Transfer-Encoding")
		h.Set("Content-Length", "0")
		return h, Framing{Kind: WriteZero}, nil
	case te == "chunked":
		h.Del("Content-Length")
		h.Set("Transfer-Encoding", "chunked")
		return h, Framing{Kind: WriteChunked}, nil
	}
	h.Del("Transfer-Encoding")
	h.Set("Content-Length", strconv.FormatInt(cl, 10))
	return h, Framing{Kind: WriteBounded, Length: cl}, nil
}

// BodyWriter writes a request body with exactly one framing.
type BodyWriter struct {
	kind     WriterKind
	w        io.Writer
	remain   int64
	chunked  *chunked.Writer
	finished bool
}

func NewBodyWriter(w io.Writer, f Framing) *BodyWriter {
	bw := &BodyWriter{kind: f.Kind, w: w, remain: f.Length}
	if f.Kind == WriteChunked {
		bw.chunked = chunked.NewWriter(w)
	}
	return bw
}

func (b *BodyWriter) Kind() WriterKind {
	return b.kind
}

// Write writes p as body bytes. A bounded writer refuses, without writing
// anything, a p longer than what is left of the declared length.
func (b *BodyWriter) Write(p []byte) (int, error) {
	if b.finished {
		return 0, http.ErrBodyFinished
	}
	switch b.kind {
	case WriteZero:
		if len(p) > 0 {
			return 0, fmt.Errorf("%w for HEAD requests", http.ErrBodyNotAllowed)
		}
		return 0, nil
	case WriteBounded:
		if int64(len(p)) > b.remain {
			return 0, fmt.Errorf("%w: %d bytes left, got %d", http.ErrBodyTooLong, b.remain, len(p))
		}
		if len(p) == 0 {
			return 0, nil
		}
		n, err := b.w.Write(p)
		b.remain -= int64(n)
		return n, err
	case WriteChunked:
		return b.chunked.Write(p)
	}
	return 0, fmt.Errorf("unknown writer kind %v", b.kind)
}

// Finish completes the body. It fails for a bounded body that has not
// reached its declared length, and when called twice.
func (b *BodyWriter) Finish() error {
	if b.finished {
		return http.ErrBodyFinished
	}
	switch b.kind {
	case WriteBounded:
		if b.remain > 0 {
			return fmt.Errorf("%w: %d bytes missing", http.ErrBodyTooShort, b.remain)
		}
	case WriteChunked:
		if err := b.chunked.Close(); err != nil {
			return err
		}
	}
	b.finished = true
	return nil
}
