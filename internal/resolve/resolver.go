// internal/resolve/resolver.go
//
// Page resolution pipeline: (host, slug) → Page ready for rendering.
//
// Absence handling
// ----------------
// On the public path, "no such site" and "no such page" are normal
// outcomes — visitors mistype domains all day.  Those come back as
// (nil, nil) and the HTTP layer renders its 404 state.  Only storage
// failures surface as errors here.  Dashboard lookups, which hold a
// canonical site id, go straight to the site repository's ByID and get a
// typed NotFound instead.
package resolve

import (
	"context"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/site"
)

// SiteDirectory is the site-lookup surface the resolver needs.
type SiteDirectory interface {
	ByHost(ctx context.Context, host string) (*site.Record, error)
}

// PageDirectory is the page-lookup surface the resolver needs.
type PageDirectory interface {
	ForSite(ctx context.Context, siteID string) ([]page.Record, error)
	BySlug(ctx context.Context, siteID, slug string) (*page.Record, error)
}

// Resolver maps public identifiers to stored content.
type Resolver struct {
	sites SiteDirectory
	pages PageDirectory
}

// New builds a Resolver over the two directories.
func New(sites SiteDirectory, pages PageDirectory) *Resolver {
	return &Resolver{sites: sites, pages: pages}
}

// SiteByHost resolves a subdomain or custom domain.  (nil, nil) when no
// site matches.
func (r *Resolver) SiteByHost(ctx context.Context, host string) (*site.Record, error) {
	return r.sites.ByHost(ctx, host)
}

// PageBySlug resolves host + slug to a page.  (nil, nil) when either the
// site or the page is absent.
func (r *Resolver) PageBySlug(ctx context.Context, host, slug string) (*page.Record, error) {
	s, err := r.sites.ByHost(ctx, host)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	p, err := r.pages.BySlug(ctx, s.ID, slug)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// HomePage picks the site's default page: first visible by SortOrder,
// falling back to the first page overall so a fully-draft site still
// resolves deterministically.  (nil, nil) when the site has no pages.
func (r *Resolver) HomePage(ctx context.Context, siteID string) (*page.Record, error) {
	pages, err := r.pages.ForSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return page.HomePage(pages), nil
}

// HomePageByHost combines SiteByHost and HomePage for the public root
// path.  The site is returned too so the caller can build navigation
// without a second lookup.
func (r *Resolver) HomePageByHost(ctx context.Context, host string) (*site.Record, *page.Record, error) {
	s, err := r.sites.ByHost(ctx, host)
	if err != nil || s == nil {
		return nil, nil, err
	}
	p, err := r.HomePage(ctx, s.ID)
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}
