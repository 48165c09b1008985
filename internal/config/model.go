// internal/config/model.go
//
// Typed configuration model for the builder.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `ATELIER_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.  BuilderHost is the dashboard's own
// hostname: requests for it are routed to the management API instead of
// public rendering.
type HTTP struct {
	ListenAddr  string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS  bool   `koanf:"force_https"`
	BuilderHost string `koanf:"builder_host" validate:"required,hostname"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  The *password* is stored in
// Vault (see the Vault section) and injected at runtime, keeping
// credentials out of flat files and git history.  When Vault is disabled
// the password comes from the `ATELIER_DATABASE__PASSWORD` override.
type Database struct {
	DSN      string `koanf:"dsn" validate:"required"`
	Password string `koanf:"password"`
}

//
// Vault section
//

// Vault configures the optional secret backend.  When Enabled, the DB
// password is read from `<mount>/<path>` key `<key>` at boot.
type Vault struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
	Key     string `koanf:"key"`
}

//
// Cache section
//

// Cache tunes the host → site cache.  Zero values fall back to the
// defaults in internal/tenant.
type Cache struct {
	IdleTTLMinutes int `koanf:"idle_ttl_minutes"`
	MaxEntries     int `koanf:"max_entries"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or ATELIER_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // ATELIER_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Vault    Vault    `koanf:"vault"`
	Cache    Cache    `koanf:"cache"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
