package dmp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the stable taxonomy of failures this package raises. No
// internal recovery happens anywhere in the package: every failure is
// surfaced to the caller through one of these kinds, wrapped in *Error.
type ErrorKind int

const (
	// NullInput marks a required string argument that was absent.
	NullInput ErrorKind = iota
	// PatternTooLong marks a Bitap pattern longer than Config.MatchMaxBits.
	PatternTooLong
	// IllegalEscape marks a percent-encoded sequence that could not be decoded.
	IllegalEscape
	// InvalidOp marks an unrecognized operation character in a delta or patch.
	InvalidOp
	// DeltaLengthMismatch marks a delta whose consumed length didn't match text1.
	DeltaLengthMismatch
	// InvalidPatchHeader marks a line that doesn't match "@@ -A[,B] +C[,D] @@".
	InvalidPatchHeader
	// InvalidCallShape marks a PatchMake argument combination matching none
	// of the accepted call shapes.
	InvalidCallShape
)

func (k ErrorKind) String() string {
	switch k {
	case NullInput:
		return "NullInput"
	case PatternTooLong:
		return "PatternTooLong"
	case IllegalEscape:
		return "IllegalEscape"
	case InvalidOp:
		return "InvalidOp"
	case DeltaLengthMismatch:
		return "DeltaLengthMismatch"
	case InvalidPatchHeader:
		return "InvalidPatchHeader"
	case InvalidCallShape:
		return "InvalidCallShape"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this package. Op names
// the failing entry point (e.g. "dmp.FromDelta", "dmp.PatchFromText") so
// callers logging errors don't need to re-derive it from a stack trace.
type Error struct {
	Kind ErrorKind
	Op   string
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

func newError(kind ErrorKind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, msg: msg}
}

func wrapError(kind ErrorKind, op, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, msg: msg, err: errors.Wrap(cause, msg)}
}
