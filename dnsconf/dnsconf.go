// Package dnsconf exposes the hosts table and resolver configuration store
// the client resolves hostnames with.
package dnsconf

import (
	"github.com/frankli0324/go-httpc/internal/dnsconf"
)

type Hosts = dnsconf.Hosts
type ResolvConf = dnsconf.ResolvConf
type Server = dnsconf.Server
type Cache = dnsconf.Cache

const (
	DefaultHostsPath      = dnsconf.DefaultHostsPath
	DefaultResolvConfPath = dnsconf.DefaultResolvConfPath
)

// Default is the process-wide cache used by a [Resolver] without one.
var Default = dnsconf.Default

var (
	NewHosts        = dnsconf.NewHosts
	ParseHosts      = dnsconf.ParseHosts
	NewResolvConf   = dnsconf.NewResolvConf
	ParseResolvConf = dnsconf.ParseResolvConf
	ParseServer     = dnsconf.ParseServer
)

// LoadHosts returns the hosts table at path, /etc/hosts when empty, parsing
// it on first use. A missing file is an empty table.
func LoadHosts(path string, forceReload bool) *Hosts {
	return dnsconf.LoadHosts(path, forceReload)
}

// LoadResolvConf returns the resolver configuration at path,
// /etc/resolv.conf when empty, parsing it on first use.
func LoadResolvConf(path string, forceReload bool) *ResolvConf {
	return dnsconf.LoadResolvConf(path, forceReload)
}
