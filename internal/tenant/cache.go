// internal/tenant/cache.go
//
// Host → site cache.
//
// Context
// -------
// Every public request starts with "which site owns this host?".  The
// answer changes rarely, so resolved site rows are cached keyed by the
// request host (subdomain or custom domain) with singleflight collapsing
// concurrent loads of the same host.  Entries are evicted on idle TTL or
// LRU pressure (see evictor.go), and the dashboard calls Invalidate after
// a site-settings write so public rendering never serves stale branding
// for longer than one in-flight request.
//
// Page content is deliberately NOT cached here — pages are re-read per
// request so section edits show up immediately.
package tenant

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/metrics"
	"github.com/yanizio/atelier/internal/site"
)

// Static defaults; cmd/web may override via config.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 1000
	EvictInterval = 5 * time.Minute
)

// SiteLookup is the storage surface the cache loads from.  ByHost returns
// (nil, nil) on a miss.
type SiteLookup interface {
	ByHost(ctx context.Context, host string) (*site.Record, error)
}

type entry struct {
	site     *site.Record
	lastSeen int64 // UnixNano
}

// Cache lazily loads sites by host, stores them in a sync.Map, and evicts
// them on idle TTL or LRU pressure.
type Cache struct {
	lookup      SiteLookup
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(lookup SiteLookup, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		lookup:     lookup,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the site for host, loading it on demand.  Unknown hosts fail
// with NotFound; misses are not cached, so a site created moments later is
// picked up on the next request.
func (c *Cache) Get(ctx context.Context, host string) (*site.Record, error) {
	if v, ok := c.m.Load(host); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.site, nil
	}

	v, err, _ := c.sfg.Do(host, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(host); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.site, nil
		}
		rec, err := c.lookup.ByHost(ctx, host)
		if err != nil {
			metrics.SiteLoadErrorsTotal.Inc()
			return nil, err
		}
		if rec == nil {
			return nil, apperr.New(apperr.NotFound, "no site for host %q", host)
		}
		c.m.Store(host, &entry{site: rec, lastSeen: time.Now().UnixNano()})
		metrics.SiteLoadTotal.Inc()
		metrics.ActiveSites.Inc()
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*site.Record), nil
}

// Invalidate drops the cached entry for host (if any).  Called after site
// mutations so the next request reloads fresh settings.
func (c *Cache) Invalidate(host string) {
	if _, ok := c.m.LoadAndDelete(host); ok {
		metrics.ActiveSites.Dec()
	}
}

// InvalidateSite drops every host entry pointing at siteID — a site is
// reachable via both its subdomain and its custom domain.
func (c *Cache) InvalidateSite(siteID string) {
	c.m.Range(func(key, value any) bool {
		if value.(*entry).site.ID == siteID {
			c.m.Delete(key)
			metrics.ActiveSites.Dec()
		}
		return true
	})
}
