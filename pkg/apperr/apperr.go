// Package apperr defines the closed error taxonomy shared by every stage of
// the generation pipeline. Stages never return ad-hoc errors across their
// public boundary: they wrap the underlying cause in an *Error carrying one
// of the Kind values below, so the orchestrator can map failures to a
// stable outward-facing contract without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates the closed set of error categories a pipeline stage may
// surface. New kinds are not meant to be added casually — the set mirrors
// the stages' documented failure modes.
type Kind int

const (
	// Unknown is the zero value and should never appear on a returned error.
	Unknown Kind = iota

	// RateLimited means the caller's per-minute or per-day rate-limit cap
	// was breached.
	// Retryable after the stated delay.
	RateLimited

	// QuotaExceeded means the plan's generations-per-month cap was breached.
	QuotaExceeded

	// PlanLimitExceeded means a Brief exceeded the plan's max-entities-per-diagram.
	PlanLimitExceeded

	// PlanForbidsTier means the plan does not allow the classified tier.
	PlanForbidsTier

	// BriefRejected means the LLM output failed schema validation twice.
	BriefRejected

	// AllModelsFailed means every provider in a tier's chain was exhausted.
	AllModelsFailed

	// Timeout means a caller-provided deadline expired.
	Timeout

	// InputInvalid means malformed colors, unreadable uploads, or an
	// entity count below 1.
	InputInvalid

	// LayoutUnsatisfiable is theoretical: a solver's own invariants would
	// have to be broken for this to fire.
	LayoutUnsatisfiable

	// InternalError is the fallback for anything unexpected.
	InternalError
)

// String renders the Kind in the same snake-free form used in logs and in
// the outward-facing error contract.
func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "RateLimited"
	case QuotaExceeded:
		return "QuotaExceeded"
	case PlanLimitExceeded:
		return "PlanLimitExceeded"
	case PlanForbidsTier:
		return "PlanForbidsTier"
	case BriefRejected:
		return "BriefRejected"
	case AllModelsFailed:
		return "AllModelsFailed"
	case Timeout:
		return "Timeout"
	case InputInvalid:
		return "InputInvalid"
	case LayoutUnsatisfiable:
		return "LayoutUnsatisfiable"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Retryable reports whether the caller may retry the same request after
// the kind's implied delay without changing anything. Only RateLimited is
// retryable at this layer; everything else needs caller action (upgrade
// plan, fix input, wait out a timeout with a fresh deadline).
func (k Kind) Retryable() bool {
	return k == RateLimited
}

// Error is the concrete error type every stage boundary returns. It wraps
// an underlying cause and tags it with a Kind so callers can branch with
// errors.As without parsing messages.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error for the given stage and kind, wrapping cause.
// cause may be nil when the kind itself is the whole story (e.g. a plan
// policy rejection with no underlying error).
func New(stage string, kind Kind, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: cause}
}

// Newf is New with a formatted cause, mirroring fmt.Errorf's %w handling
// when the format string ends in a wrapped verb.
func Newf(stage string, kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err, walking the unwrap chain. Returns
// Unknown if err is nil, and InternalError if err carries no *Error.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return InternalError
}
