package chunked

import (
	"bufio"
	"errors"
	"io"

	"github.com/frankli0324/go-httpc/internal/http"
)

const maxLineLength = 4096

var (
	errMalformed = &http.RequestError{Reason: "malformed chunked encoding"}
	errTooLarge  = &http.RequestError{Reason: "http chunk length too large"}
)

// NewReader returns a reader decoding the chunked transfer coding from r.
// A single Read never returns bytes of more than one chunk.
func NewReader(r io.Reader) *Reader {
	var br *bufio.Reader
	if v, ok := r.(*bufio.Reader); ok {
		br = v
	} else {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

type Reader struct {
	r      *bufio.Reader
	remain int64 // bytes left in the current chunk, 0 when a size line is due
	err    error // sticky, io.EOF after the last chunk
}

// Remaining returns the number of bytes left in the current chunk.
func (c *Reader) Remaining() int64 {
	return c.remain
}

func (c *Reader) Read(p []byte) (n int, err error) {
	if c.err != nil {
		return 0, c.err
	}
	if c.remain == 0 {
		size, err := c.readChunkHeader()
		if err != nil {
			c.err = err
			return 0, err
		}
		if size == 0 {
			if err := c.readTrailer(); err != nil {
				c.err = err
				return 0, err
			}
			c.err = io.EOF
			return 0, io.EOF
		}
		c.remain = size
	}
	if len(p) == 0 {
		return 0, nil
	}
	if int64(len(p)) > c.remain {
		p = p[:c.remain]
	}
	n, err = c.r.Read(p)
	c.remain -= int64(n)
	if err != nil {
		if err == io.EOF {
			err = http.ErrConnectionLost
		}
		c.err = err
		return n, err
	}
	if c.remain == 0 {
		if err := c.expectCRLF(); err != nil {
			c.err = err
			return n, err
		}
	}
	return n, nil
}

func (c *Reader) readChunkHeader() (size int64, err error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	// chunk extensions are ignored
	for i, b := range line {
		if b == ';' {
			line = line[:i]
			break
		}
	}
	line = trimOWS(line)
	if len(line) == 0 {
		return 0, errMalformed
	}
	if len(line) > 15 {
		return 0, errTooLarge
	}
	for _, b := range line {
		switch {
		case '0' <= b && b <= '9':
			b = b - '0'
		case 'a' <= b && b <= 'f':
			b = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			b = b - 'A' + 10
		default:
			return 0, &http.RequestError{Reason: "invalid byte in chunk length"}
		}
		size <<= 4
		size |= int64(b)
	}
	return size, nil
}

// readTrailer discards trailer fields up to the terminating empty line.
func (c *Reader) readTrailer() error {
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func (c *Reader) expectCRLF() error {
	dr, err := c.r.ReadByte()
	if err != nil {
		return lost(err)
	}
	dn, err := c.r.ReadByte()
	if err != nil {
		return lost(err)
	}
	if dr != '\r' || dn != '\n' {
		return errMalformed
	}
	return nil
}

// readLine returns the next line without its CRLF or LF terminator.
func (c *Reader) readLine() ([]byte, error) {
	var line []byte
	for {
		frag, err := c.r.ReadSlice('\n')
		line = append(line, frag...)
		if len(line) > maxLineLength {
			return nil, errTooLarge
		}
		if err == nil {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return nil, lost(err)
		}
	}
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, nil
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func lost(err error) error {
	if err == io.EOF {
		return http.ErrConnectionLost
	}
	return err
}
