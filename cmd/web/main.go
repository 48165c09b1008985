// cmd/web/main.go
//
// Atelier – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Load and validate config (YAML + ATELIER_ env overrides).
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Resolve the database password (Vault when enabled, config otherwise)
//     and open the shared pool.
//
//  5. Build the host → site cache (lazy-loads each site on first hit).
//
//  6. Expose the Prometheus /metrics endpoint.
//
//  7. Build the root handler: the builder host gets the dashboard JSON
//     API, every other host gets public rendering (host → site → slug or
//     home page → section loop).  Wrap with request-info enrichment,
//     security headers, and optional ForceHTTPS.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/config"
	"github.com/yanizio/atelier/internal/dashboard"
	"github.com/yanizio/atelier/internal/database"
	"github.com/yanizio/atelier/internal/logger"
	"github.com/yanizio/atelier/internal/middleware"
	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/render"
	"github.com/yanizio/atelier/internal/requestinfo"
	"github.com/yanizio/atelier/internal/resolve"
	"github.com/yanizio/atelier/internal/server"
	"github.com/yanizio/atelier/internal/site"
	"github.com/yanizio/atelier/internal/tenant"
	"github.com/yanizio/atelier/internal/vault"

	_ "github.com/yanizio/atelier/blocks" // register built-in section blocks
)

const serverEnvPath = "/usr/local/etc/atelier/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Database connect ────────────────────────────────────────────
	//
	dsn, err := buildDSN(ctx, cfg)
	if err != nil {
		logOut.Fatalw("resolve database credentials", "error", err)
	}
	logOut.Infow("connecting to database")
	db, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalw("connect database", "error", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	sites := site.NewRepository(db)
	pages := page.NewRepository(db)
	pageSvc := page.NewService(pages)
	engine := page.NewEngine(pages)

	// Early sanity check: log the site count before serving.
	var active int
	_ = db.Get(&active, `SELECT COUNT(*) FROM site`)
	logOut.Infow("sites found", "count", active)

	//
	// ── 2.  Host → site cache ───────────────────────────────────────────
	//
	idleTTL := tenant.IdleTTL
	if cfg.Cache.IdleTTLMinutes > 0 {
		idleTTL = time.Duration(cfg.Cache.IdleTTLMinutes) * time.Minute
	}
	maxEntries := tenant.MaxEntries
	if cfg.Cache.MaxEntries > 0 {
		maxEntries = cfg.Cache.MaxEntries
	}
	cache := tenant.New(sites, idleTTL, maxEntries)

	res := resolve.New(cachedSites{cache}, pages)

	//
	// ── 3.  Metrics endpoint ────────────────────────────────────────────
	//
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	//
	// ── 4.  Dashboard API + public renderer, split on Host ──────────────
	//
	dash := dashboard.New(pageSvc, engine, sites, cache)
	dashRouter := dash.Router()

	public := publicHandler(res, pages, logOut)

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if stripPort(r.Host) == cfg.HTTP.BuilderHost {
			dashRouter.ServeHTTP(w, r)
			return
		}
		public.ServeHTTP(w, r)
	})

	//
	// ── 5.  Middleware chain ────────────────────────────────────────────
	//
	// AccessLog sits inside Enrich so the per-request fingerprint it logs
	// is already attached to the context.
	var handler http.Handler = root
	handler = middleware.AccessLog(handler)
	handler = middleware.Security(handler)
	handler = requestinfo.Enrich(handler)
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(cache, handler)
	}
	mux.Handle("/", handler)

	srv := server.New(cfg.HTTP.ListenAddr, mux)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalw("http server", "error", err)
	}
}

// publicHandler serves visitor traffic: host → site, slug (or empty for
// the home page) → page, page → rendered document.  Unknown hosts and
// slugs are plain 404s; only storage failures become 500s.
func publicHandler(res *resolve.Resolver, pages resolve.PageDirectory, logOut *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := stripPort(r.Host)
		slug := strings.Trim(r.URL.Path, "/")

		var (
			s   *site.Record
			p   *page.Record
			err error
		)
		if slug == "" {
			s, p, err = res.HomePageByHost(r.Context(), host)
		} else {
			if s, err = res.SiteByHost(r.Context(), host); err == nil && s != nil {
				p, err = res.PageBySlug(r.Context(), host, slug)
			}
		}
		if err != nil {
			logOut.Errorw("resolve request", "host", host, "slug", slug, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if s == nil || p == nil {
			http.NotFound(w, r)
			return
		}

		siblings, err := pages.ForSite(r.Context(), s.ID)
		if err != nil {
			// Navigation is best-effort; the page itself still renders.
			logOut.Errorw("navigation lookup", "site", s.ID, "error", err)
			siblings = nil
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.Page(w, s, p, siblings); err != nil {
			logOut.Errorw("render page", "page", p.ID, "error", err)
		}
	})
}

// cachedSites adapts the tenant cache to the resolver's SiteDirectory:
// a cache miss on an unknown host becomes the public path's (nil, nil).
type cachedSites struct {
	cache *tenant.Cache
}

func (c cachedSites) ByHost(ctx context.Context, host string) (*site.Record, error) {
	rec, err := c.cache.Get(ctx, host)
	if apperr.Is(err, apperr.NotFound) {
		return nil, nil
	}
	return rec, err
}

// buildDSN fills the {password} placeholder in the DSN template with the
// secret from Vault (when enabled) or from config.
func buildDSN(ctx context.Context, cfg *config.Config) (string, error) {
	pw := cfg.Database.Password
	if cfg.Vault.Enabled {
		cli, err := vault.New(ctx, log.Printf)
		if err != nil {
			return "", err
		}
		pw, err = cli.GetKV(ctx, cfg.Vault.Path, cfg.Vault.Key, time.Hour)
		if err != nil {
			return "", err
		}
	}
	return strings.ReplaceAll(cfg.Database.DSN, "{password}", pw), nil
}

// stripPort removes any “:port” suffix from the Host header.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
