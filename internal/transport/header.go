package transport

import (
	"fmt"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/frankli0324/go-httpc/internal/http"
)

// HeaderList joins all values of a list-valued header with ", ".
func HeaderList(h http.Header, key string) (string, bool) {
	vv := h.Values(key)
	if len(vv) == 0 {
		return "", false
	}
	trimmed := make([]string, len(vv))
	for i, v := range vv {
		trimmed[i] = textproto.TrimString(v)
	}
	return strings.Join(trimmed, ", "), true
}

// HeaderSingle returns the only value of key, or def when key is absent.
func HeaderSingle(h http.Header, key, def string) (string, error) {
	vv := h.Values(key)
	switch len(vv) {
	case 0:
		return def, nil
	case 1:
		return textproto.TrimString(vv[0]), nil
	}
	return "", fmt.Errorf("%w: multiple %s values %q", http.ErrInvalidHeader, key, vv)
}

// ContentLength returns the declared content length of a header set.
// Repeated identical values are accepted, differing ones are not.
func ContentLength(h http.Header) (n int64, ok bool, err error) {
	contentLens := h.Values("Content-Length")
	if len(contentLens) == 0 {
		return 0, false, nil
	}

	// Hardening against HTTP request smuggling, taken from standard library
	first := textproto.TrimString(contentLens[0])
	for _, ct := range contentLens[1:] {
		if first != textproto.TrimString(ct) {
			return 0, false, fmt.Errorf("message cannot contain multiple Content-Length headers; got %q", contentLens)
		}
	}
	u, err := strconv.ParseUint(first, 10, 63)
	if err != nil {
		return 0, false, fmt.Errorf("invalid Content-Length %q", first)
	}
	return int64(u), true, nil
}
