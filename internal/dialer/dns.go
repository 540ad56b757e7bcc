package dialer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/frankli0324/go-httpc/internal/dnsconf"
	"github.com/frankli0324/go-httpc/internal/http"
	"github.com/frankli0324/go-httpc/internal/iputil"
)

// Candidate is one address a host name resolved to.
type Candidate struct {
	Family iputil.Family
	IP     string
}

// Resolver looks host names up in the hosts table first and falls back to
// DNS queries against the nameservers of resolv.conf, tried in order. A nil
// *Resolver uses the system paths.
//
// The queries go through the pure Go resolver of package net, which still
// consults the system hosts file (/etc/hosts) before asking a nameserver.
// A custom HostsPath or StaticHosts therefore takes precedence over the
// system table but does not hide it.
type Resolver struct {
	HostsPath      string           // defaults to /etc/hosts
	ResolvConfPath string           // defaults to /etc/resolv.conf
	StaticHosts    *dnsconf.Hosts   // replaces the hosts file when set
	Servers        []dnsconf.Server // replaces the resolv.conf nameservers when set
	Network        string           // one of "ip4", "ip6", default is "ip"

	Cache *dnsconf.Cache // defaults to dnsconf.Default

	// LookupNetIP replaces the network resolution step when set.
	LookupNetIP func(ctx context.Context, network, host string) ([]netip.Addr, error)
}

func (r *Resolver) Clone() *Resolver {
	if r == nil {
		return nil
	}
	c := *r
	c.Servers = append([]dnsconf.Server(nil), r.Servers...)
	return &c
}

func (r *Resolver) cache() *dnsconf.Cache {
	if r.Cache != nil {
		return r.Cache
	}
	return dnsconf.Default
}

func (r *Resolver) network() string {
	if r.Network == "" {
		return "ip"
	}
	return r.Network
}

func (r *Resolver) accepts(f iputil.Family) bool {
	switch r.network() {
	case "ip4":
		return f == iputil.FamilyInet
	case "ip6":
		return f == iputil.FamilyInet6
	}
	return true
}

func (r *Resolver) hosts() *dnsconf.Hosts {
	if r.StaticHosts != nil {
		return r.StaticHosts
	}
	return r.cache().LoadHosts(r.HostsPath, false)
}

// Lookup returns the addresses of host in preference order. IP literals
// resolve to themselves. [http.ErrHostNotFound] is returned when nothing
// matches.
func (r *Resolver) Lookup(ctx context.Context, host string) ([]Candidate, error) {
	if r == nil {
		r = &Resolver{}
	}
	if family, ip, err := iputil.ParseIP(host); err == nil {
		if !r.accepts(family) {
			return nil, fmt.Errorf("%w: %s is not an %s address", http.ErrHostNotFound, host, r.network())
		}
		return []Candidate{{family, ip}}, nil
	}

	name := dnsconf.CanonicalName(host)
	if candidates := r.candidates(r.hosts().NameToIPs(name)); len(candidates) > 0 {
		return candidates, nil
	}

	addrs, err := r.lookupNetwork(ctx, name)
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) && de.IsNotFound {
			return nil, fmt.Errorf("%w: %s", http.ErrHostNotFound, host)
		}
		return nil, err
	}
	ips := make([]string, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.Unmap().String())
	}
	candidates := r.candidates(ips)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", http.ErrHostNotFound, host)
	}
	return candidates, nil
}

func (r *Resolver) candidates(ips []string) []Candidate {
	var out []Candidate
	for _, ip := range ips {
		family, canon, err := iputil.ParseIP(ip)
		if err != nil || !r.accepts(family) {
			continue
		}
		out = append(out, Candidate{family, canon})
	}
	return out
}

func (r *Resolver) lookupNetwork(ctx context.Context, name string) ([]netip.Addr, error) {
	if r.LookupNetIP != nil {
		return r.LookupNetIP(ctx, r.network(), name)
	}
	servers := r.Servers
	if servers == nil {
		servers = r.cache().LoadResolvConf(r.ResolvConfPath, false).Servers()
	}
	if len(servers) == 0 {
		return customServerResolver.LookupNetIP(ctx, r.network(), name)
	}

	// a dead nameserver only shows when its answer is missing, so each
	// server gets a lookup of its own and the next one is tried on
	// timeouts and network failures
	var lastErr error
	for _, s := range servers {
		addrs, err := customServerResolver.LookupNetIP(dnsServerCtx{ctx, s.Addr()}, r.network(), name)
		if err == nil {
			return addrs, nil
		}
		lastErr = err
		var de *net.DNSError
		if !errors.As(err, &de) || !(de.IsTimeout || de.IsTemporary) || ctx.Err() != nil {
			return nil, err
		}
		log.Debugf("nameserver %s failed for %s: %v", s.Addr(), name, err)
	}
	return nil, lastErr
}

// this type should not be used outside this file.
// prevents non-custom DNS server contexts to iterate through all keys
type dnsServerCtx struct {
	context.Context
	server string
}

var dnsServerCtxKey = &dnsServerCtx{} // non-nil pointer to any object, definitely unique

func (c dnsServerCtx) Value(key interface{}) interface{} {
	if key == dnsServerCtxKey {
		return c.server
	}
	return c.Context.Value(key)
}

// the resolver dials the nameserver carried by the context instead of the
// one chosen from the system configuration
var customServerResolver = net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		if server, ok := ctx.Value(dnsServerCtxKey).(string); ok {
			address = server
		}
		return zeroDialer.DialContext(ctx, network, address)
	},
}
