// Package dnsconf parses the static resolver configuration of a host,
// /etc/hosts and /etc/resolv.conf, into immutable snapshots, and caches
// them per path.
package dnsconf

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/idna"

	"github.com/frankli0324/go-httpc/internal/iputil"
)

// CanonicalName is the form names are indexed and looked up by: ASCII
// (punycode) for internationalized names, lower-cased, without the
// trailing dot of a fully qualified name.
func CanonicalName(name string) string {
	name = strings.TrimSuffix(name, ".")
	if ascii, err := idna.Lookup.ToASCII(name); err == nil {
		name = ascii
	}
	return strings.ToLower(name)
}

// eachLine calls fn for every line of r without its terminator. Lines have
// no length limit, so one oversized line never hides the ones after it.
func eachLine(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type set map[string]struct{}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Hosts is a static host table. The zero value is an empty table.
type Hosts struct {
	ips   map[string]set // canonical ip -> names
	names map[string]set // canonical name -> canonical ips
}

// NewHosts builds a table from canonical or non-canonical IP literals to
// names. Entries with invalid IPs are dropped.
func NewHosts(entries map[string][]string) *Hosts {
	h := &Hosts{ips: map[string]set{}, names: map[string]set{}}
	for ip, names := range entries {
		_, canon, err := iputil.ParseIP(ip)
		if err != nil {
			continue
		}
		h.add(canon, names)
	}
	return h
}

func (h *Hosts) add(ip string, names []string) {
	s, ok := h.ips[ip]
	if !ok {
		s = set{}
		h.ips[ip] = s
	}
	for _, name := range names {
		name = CanonicalName(name)
		if name == "" {
			continue
		}
		s[name] = struct{}{}
		byName, ok := h.names[name]
		if !ok {
			byName = set{}
			h.names[name] = byName
		}
		byName[ip] = struct{}{}
	}
}

// ParseHosts reads a hosts(5) file. Lines whose address does not parse
// are skipped.
func ParseHosts(r io.Reader) *Hosts {
	h := &Hosts{ips: map[string]set{}, names: map[string]set{}}
	err := eachLine(r, func(line string) {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		_, ip, err := iputil.ParseIP(fields[0])
		if err != nil {
			log.Debugf("skipping hosts entry with invalid address %.64q", fields[0])
			return
		}
		h.add(ip, fields[1:])
	})
	if err != nil {
		log.Errorf("reading hosts: %v", err)
	}
	return h
}

// IPToNames returns the names of ip, which need not be canonical.
func (h *Hosts) IPToNames(ip string) []string {
	_, canon, err := iputil.ParseIP(ip)
	if err != nil {
		return nil
	}
	return h.ips[canon].sorted()
}

// NameToIPs returns the addresses of name, compared in canonical form.
func (h *Hosts) NameToIPs(name string) []string {
	return h.names[CanonicalName(name)].sorted()
}

func (h *Hosts) IPs() []string {
	out := make([]string, 0, len(h.ips))
	for ip := range h.ips {
		out = append(out, ip)
	}
	sort.Strings(out)
	return out
}

func (h *Hosts) Names() []string {
	out := make([]string, 0, len(h.names))
	for name := range h.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (h *Hosts) Len() int {
	return len(h.ips)
}
