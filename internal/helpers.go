package internal

import "github.com/frankli0324/go-httpc/internal/dialer"

// EnableUnixSockets registers the http+unix scheme on c. The authority of
// such URLs is the percent-encoded path of the socket, e.g.
// http+unix://%2Fvar%2Frun%2Fdocker.sock/info.
func (c *Client) EnableUnixSockets() {
	schemes := make(map[string]dialer.Scheme, len(defaultSchemes)+1)
	for name, s := range defaultSchemes {
		schemes[name] = s
	}
	for name, s := range c.schemes {
		schemes[name] = s
	}
	schemes[dialer.UnixScheme] = dialer.HTTPUnix
	c.schemes = schemes
}
