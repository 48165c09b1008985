// internal/middleware/accesslog.go
//
// Access-log middleware.
//
// Emits one INFO line per completed request: method, host, path, status,
// duration, plus the client fingerprint (IP, browser, device class, bot
// flag, primary language) that requestinfo.Enrich attached upstream.
//
// Notes
// -----
// • Must sit *inside* requestinfo.Enrich in the chain; when it does not,
//   the fingerprint fields are simply omitted.
// • The status is captured with a thin ResponseWriter wrapper; an
//   unwritten status counts as 200, matching net/http.

package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/atelier/internal/requestinfo"
)

// statusWriter records the first WriteHeader call.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

// AccessLog logs every completed request through the global zap logger.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"host", r.Host,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			fields = append(fields,
				"ip", info.IP,
				"browser", info.UA.Browser,
				"device", info.UA.Device,
				"bot", info.UA.IsBot,
				"lang", info.PrimaryLang,
			)
		}
		zap.S().Infow("request", fields...)
	})
}
