package transport

import (
	"bufio"
	"errors"
	"io"
	"net/textproto"
	"regexp"
	"sort"
	"strconv"

	"github.com/frankli0324/go-httpc/internal/http"
)

const maxStatusLineLength = 8192

var statusLine = regexp.MustCompile(`^([^ ]+) (\d{3}) ([^\r\n]*)\r?\n$`)

// WriteRequestHead writes the request line and the header part of an
// HTTP/1.1 request, flushing after each, e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.google.com\r\n
//	X-Xx-Yy: cccccc\r\n
//	\r\n
//
// Host is written first, the other fields sorted by name.
func WriteRequestHead(w io.Writer, method, requestURI string, h http.Header) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	header.WriteString(method)
	header.WriteByte(' ')
	header.WriteString(requestURI)
	header.WriteByte(' ')
	header.WriteString(http.HTTP11.String())
	header.WriteString("\r\n")
	if err := header.Flush(); err != nil {
		return err
	}

	keys := make([]string, 0, len(h))
	for k := range h {
		if k != "Host" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	keys = append([]string{"Host"}, keys...)
	for _, k := range keys {
		for _, v := range h[k] {
			header.WriteString(k)
			header.WriteString(": ")
			header.WriteString(v)
			header.WriteString("\r\n")
		}
	}
	header.WriteString("\r\n")
	return header.Flush()
}

// ReadStatusLine reads and parses "<version> <code> <reason>". A peer that
// closes before sending anything yields [http.ErrConnectionLost].
func ReadStatusLine(br *bufio.Reader) (http.Version, int, string, error) {
	var line []byte
	for {
		frag, err := br.ReadSlice('\n')
		line = append(line, frag...)
		if len(line) > maxStatusLineLength {
			return http.Version{}, 0, "", &http.RequestError{Reason: "status line too long"}
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			if len(line) == 0 {
				return http.Version{}, 0, "", http.ErrConnectionLost
			}
			break // unterminated, fails to match below
		}
		return http.Version{}, 0, "", err
	}

	m := statusLine.FindSubmatch(line)
	if m == nil {
		return http.Version{}, 0, "", &http.RequestError{Reason: "could not parse status line"}
	}
	version, err := http.ParseVersion(string(m[1]))
	if err != nil {
		return http.Version{}, 0, "", &http.RequestError{Reason: "invalid HTTP version"}
	}
	code, _ := strconv.Atoi(string(m[2])) // three digits
	return version, code, string(m[3]), nil
}

// ReadHeader reads header fields up to and including the empty line.
func ReadHeader(br *bufio.Reader) (http.Header, error) {
	tp := textproto.NewReader(br)
	mimeHeader, err := tp.ReadMIMEHeader()
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, http.ErrConnectionLost
		}
		var pe textproto.ProtocolError
		if errors.As(err, &pe) {
			return nil, &http.RequestError{Reason: pe.Error()}
		}
		return nil, err
	}
	return http.Header(mimeHeader), nil
}
