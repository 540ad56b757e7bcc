package chunked

import (
	"fmt"
	"io"
)

// NewWriter is taken from golang src/net/http/internal/chunked.go. Every
// Write call becomes exactly one chunk.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Wire: w}
}

type Writer struct {
	Wire io.Writer
}

func (cw *Writer) Write(data []byte) (n int, err error) {

	// Don't send 0-length data. It looks like EOF for chunked encoding.
	if len(data) == 0 {
		return 0, nil
	}

	if _, err = fmt.Fprintf(cw.Wire, "%x\r\n", len(data)); err != nil {
		return 0, err
	}
	if n, err = cw.Wire.Write(data); err != nil {
		return
	}
	if n != len(data) {
		err = io.ErrShortWrite
		return
	}
	if _, err = io.WriteString(cw.Wire, "\r\n"); err != nil {
		return
	}
	if f, ok := cw.Wire.(interface{ Flush() error }); ok {
		err = f.Flush()
	}
	return
}

// Close writes the terminating zero-size chunk. Trailers are not supported.
func (cw *Writer) Close() error {
	n, err := io.WriteString(cw.Wire, "0\r\n\r\n")
	if err == nil && n != 5 {
		return io.ErrShortWrite
	}
	if err == nil {
		if f, ok := cw.Wire.(interface{ Flush() error }); ok {
			err = f.Flush()
		}
	}
	return err
}
