package dnsconf

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/getlantern/golog"
	"golang.org/x/sync/singleflight"

	"github.com/frankli0324/go-httpc/internal/metrics"
)

const (
	DefaultHostsPath      = "/etc/hosts"
	DefaultResolvConfPath = "/etc/resolv.conf"
)

var log = golog.LoggerFor("go-httpc.dnsconf")

type kind string

const (
	kindHosts      kind = "hosts"
	kindResolvConf kind = "resolv.conf"
)

type key struct {
	kind kind
	path string
}

func (k key) flight() string {
	return string(k.kind) + "\x00" + k.path
}

type entry struct {
	value    interface{}
	loadedAt time.Time
}

// Cache loads configuration files on first access and hands out the same
// immutable snapshot until it is reloaded. A missing or unreadable file
// yields an empty snapshot. The zero value is ready to use.
type Cache struct {
	// Open opens a configuration file, defaults to os.Open
	Open func(path string) (io.ReadCloser, error)
	// Now timestamps snapshots, defaults to time.Now
	Now func() time.Time
	// MaxAge, when positive, reloads snapshots older than it on access.
	MaxAge time.Duration

	mu      sync.RWMutex
	entries map[key]*entry
	gens    map[key]uint64 // bumped by Invalidate
	group   singleflight.Group
}

// Default is the process-wide cache used by LoadHosts and LoadResolvConf.
var Default = &Cache{}

func LoadHosts(path string, forceReload bool) *Hosts {
	return Default.LoadHosts(path, forceReload)
}

func LoadResolvConf(path string, forceReload bool) *ResolvConf {
	return Default.LoadResolvConf(path, forceReload)
}

// LoadHosts returns the table parsed from path, DefaultHostsPath if empty.
// forceReload discards the cached snapshot first.
func (c *Cache) LoadHosts(path string, forceReload bool) *Hosts {
	if path == "" {
		path = DefaultHostsPath
	}
	v := c.load(key{kindHosts, filepath.Clean(path)}, forceReload, func(r io.Reader) interface{} {
		return ParseHosts(r)
	})
	return v.(*Hosts)
}

// LoadResolvConf returns the configuration parsed from path,
// DefaultResolvConfPath if empty.
func (c *Cache) LoadResolvConf(path string, forceReload bool) *ResolvConf {
	if path == "" {
		path = DefaultResolvConfPath
	}
	v := c.load(key{kindResolvConf, filepath.Clean(path)}, forceReload, func(r io.Reader) interface{} {
		return ParseResolvConf(r)
	})
	return v.(*ResolvConf)
}

// Invalidate drops every snapshot loaded from path.
func (c *Cache) Invalidate(path string) {
	path = filepath.Clean(path)
	keys := []key{{kindHosts, path}, {kindResolvConf, path}}
	c.mu.Lock()
	if c.gens == nil {
		c.gens = map[key]uint64{}
	}
	for _, k := range keys {
		delete(c.entries, k)
		c.gens[k]++
	}
	c.mu.Unlock()
	// later loads must not join a parse that started before the change
	for _, k := range keys {
		c.group.Forget(k.flight())
	}
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cache) open(path string) (io.ReadCloser, error) {
	if c.Open != nil {
		return c.Open(path)
	}
	return os.Open(path)
}

func (c *Cache) fresh(e *entry) bool {
	return c.MaxAge <= 0 || c.now().Sub(e.loadedAt) < c.MaxAge
}

func (c *Cache) load(k key, forceReload bool, parse func(io.Reader) interface{}) interface{} {
	if !forceReload {
		c.mu.RLock()
		e, ok := c.entries[k]
		c.mu.RUnlock()
		if ok && c.fresh(e) {
			return e.value
		}
	}
	// concurrent loads of one file share a single parse
	v, _, _ := c.group.Do(k.flight(), func() (interface{}, error) {
		c.mu.RLock()
		gen := c.gens[k]
		c.mu.RUnlock()

		value := c.parse(k, parse)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gens[k] != gen {
			log.Debugf("%s %s changed while loading, not caching", k.kind, k.path)
			return value, nil
		}
		if c.entries == nil {
			c.entries = map[key]*entry{}
		}
		c.entries[k] = &entry{value: value, loadedAt: c.now()}
		return value, nil
	})
	return v
}

func (c *Cache) parse(k key, parse func(io.Reader) interface{}) interface{} {
	f, err := c.open(k.path)
	if err != nil {
		log.Debugf("%s %s unavailable, using empty configuration: %v", k.kind, k.path, err)
		metrics.ConfigLoads.WithLabelValues(string(k.kind), "missing").Inc()
		return parse(strings.NewReader(""))
	}
	defer f.Close()
	metrics.ConfigLoads.WithLabelValues(string(k.kind), "ok").Inc()
	return parse(f)
}
