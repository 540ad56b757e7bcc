package dnsconf

import (
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/frankli0324/go-httpc/internal/iputil"
)

const DNSPort = 53

type Server struct {
	Family iputil.Family
	IP     string
	Port   int
}

// Addr returns the host:port form of s suitable for dialing.
func (s Server) Addr() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// ParseServer parses a nameserver address. The port is always DNSPort.
func ParseServer(s string) (Server, error) {
	family, ip, err := iputil.ParseIP(s)
	if err != nil {
		return Server{}, err
	}
	return Server{Family: family, IP: ip, Port: DNSPort}, nil
}

// ResolvConf is the nameserver list of a resolv.conf(5) file, in file
// order and without duplicates.
type ResolvConf struct {
	servers []Server
}

func NewResolvConf(servers []Server) *ResolvConf {
	c := &ResolvConf{}
	seen := map[[2]string]bool{}
	for _, s := range servers {
		key := [2]string{s.IP, strconv.Itoa(s.Port)}
		if seen[key] {
			continue
		}
		seen[key] = true
		c.servers = append(c.servers, s)
	}
	return c
}

func ParseResolvConf(r io.Reader) *ResolvConf {
	var servers []Server
	err := eachLine(r, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == ';' {
			return
		}
		i := strings.IndexAny(line, " \t")
		if i < 0 || strings.ToLower(line[:i]) != "nameserver" {
			return
		}
		value := strings.TrimSpace(line[i+1:])
		s, err := ParseServer(value)
		if err != nil {
			log.Debugf("skipping nameserver with invalid address %.64q", value)
			return
		}
		servers = append(servers, s)
	})
	if err != nil {
		log.Errorf("reading resolv.conf: %v", err)
	}
	return NewResolvConf(servers)
}

// Servers returns a copy of the nameserver list.
func (c *ResolvConf) Servers() []Server {
	return append([]Server(nil), c.servers...)
}
