// Package fxerr defines the failure kinds shared by every pricing package.
//
// Every engine function validates its inputs before computing and reports
// failures as one of three kinds:
//
//   - KindValidation: non-positive or inconsistent numeric inputs
//   - KindConvergence: an iterative solver exhausted its budget
//   - KindData: a lookup could not be satisfied from caller-supplied data
//
// Callers match on kind via IsValidation / IsConvergence / IsData (or
// errors.As with *Error) instead of string-matching messages.
package fxerr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind int

const (
	// KindValidation marks rejected inputs: negative prices, bid > ask,
	// mismatched array lengths, weights not summing to one, tenor <= 0.
	KindValidation Kind = iota
	// KindConvergence marks an iterative solver that ran out of iterations
	// or hit a degenerate derivative.
	KindConvergence
	// KindData marks lookups that cannot be satisfied from the supplied
	// market data: missing rate legs, empty time windows, no path.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConvergence:
		return "convergence"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Error is a classified engine failure. Op is the exported function that
// rejected the call, in the "Package.Func" or "Func" form used in messages.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a KindValidation error.
func Validationf(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Convergencef builds a KindConvergence error.
func Convergencef(op, format string, args ...any) error {
	return &Error{Kind: KindConvergence, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// DataErrf builds a KindData error.
func DataErrf(op, format string, args ...any) error {
	return &Error{Kind: KindData, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and operation to an underlying error.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: "wrapped", Err: err}
}

func is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsValidation reports whether err is a KindValidation failure.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsConvergence reports whether err is a KindConvergence failure.
func IsConvergence(err error) bool { return is(err, KindConvergence) }

// IsData reports whether err is a KindData failure.
func IsData(err error) bool { return is(err, KindData) }
