// internal/apperr/apperr.go
//
// Kind-tagged errors shared by the storage, engine, and HTTP layers.
//
// Context
// -------
// The mutation path fails loud: every storage or validation failure is
// returned to the caller untouched.  Handlers need to tell those failures
// apart without string matching, so each error carries one of four kinds:
//
//   • Validation – malformed input, rejected before any write.
//   • NotFound   – the referenced site, page, or section does not exist.
//   • Conflict   – uniqueness or lifecycle rule broken (slug taken,
//     last page of a site).
//   • Storage    – the database failed; never retried here.
//
// "Legitimately absent" outcomes (a page with no sections, a host that
// matches no site on the public path) are NOT errors; they are empty
// slices or nil results.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind uint8

const (
	Validation Kind = iota + 1
	NotFound
	Conflict
	Storage
)

// String returns the lowercase kind name used in logs and JSON payloads.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Storage:
		return "storage"
	}
	return "unknown"
}

// Error is the concrete type behind every failure the core produces.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a leaf error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message.  A nil err yields a leaf
// error so callers don't have to branch.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.  Unclassified
// errors report Storage, the conservative default for the mutation path.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
