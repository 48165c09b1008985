// internal/dashboard/respond.go
//
// JSON response and error plumbing shared by every dashboard handler.
package dashboard

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/atelier/internal/apperr"
)

// respond writes v as JSON with the given status.  Encoding failures are
// logged and abandoned; headers are already out the door at that point.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("dashboard: encode response", "error", err)
	}
}

// fail maps an error's kind to an HTTP status and writes a JSON error body.
// Storage errors keep their detail out of the response.
func fail(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	msg := "internal error"
	switch kind {
	case apperr.Validation:
		status, msg = http.StatusBadRequest, err.Error()
	case apperr.NotFound:
		status, msg = http.StatusNotFound, err.Error()
	case apperr.Conflict:
		status, msg = http.StatusConflict, err.Error()
	default:
		zap.S().Errorw("dashboard: internal error", "error", err)
	}

	respond(w, status, map[string]string{"error": msg})
}

// decode unmarshals the request body into dst, converting malformed JSON
// into a Validation error so fail renders it as a 400.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, err, "malformed JSON body")
	}
	return nil
}
