package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind enumerates the fatal error kinds the engine can report (spec §7).
// The solver never produces a "best effort" result: any Kind aborts the
// inference run that produced it.
type Kind int

const (
	// KindRankMismatch: two shape terms were unified with differing rank.
	KindRankMismatch Kind = iota
	// KindDimMismatch: two concrete dims were unified with different values.
	KindDimMismatch
	// KindTypeConflict: meet of two types produced the empty set.
	KindTypeConflict
	// KindUnknownReference: a connection named a submodel or port that does not exist.
	KindUnknownReference
	// KindCycle: connections formed a directed cycle among non-nested vertices.
	KindCycle
	// KindMissingPort: a primitive's declared port is neither connected, aliased, nor annotated.
	KindMissingPort
	// KindAmbiguousExposure: two internal ports claimed the same outward alias incompatibly.
	KindAmbiguousExposure
)

func (k Kind) String() string {
	switch k {
	case KindRankMismatch:
		return "rank-mismatch"
	case KindDimMismatch:
		return "dim-mismatch"
	case KindTypeConflict:
		return "type-conflict"
	case KindUnknownReference:
		return "unknown-reference"
	case KindCycle:
		return "cycle"
	case KindMissingPort:
		return "missing-port"
	case KindAmbiguousExposure:
		return "ambiguous-exposure"
	default:
		return fmt.Sprintf("unknown-kind(%d)", int(k))
	}
}

// Diagnostic is the engine's single structured error type. Every fatal error
// produced anywhere in the pipeline — solver, graph build, static
// propagation — is a Diagnostic, so a caller can always recover Kind, Path
// and the offending ports with a single errors.As, regardless of which
// package raised it.
type Diagnostic struct {
	Kind  Kind
	Path  string   // dotted composite path, e.g. "Model.m3.m2"
	Ports []string // offending port names, qualified where useful
	cause error
}

// Error satisfies the error interface with a one-line, CLI-friendly message.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Path, d.Kind)
	if len(d.Ports) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(d.Ports, ", "))
	}
	if d.cause != nil {
		fmt.Fprintf(&b, ": %s", d.cause)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/errors.As chain
// through a Diagnostic to whatever github.com/pkg/errors stack it wraps.
func (d *Diagnostic) Unwrap() error {
	return d.cause
}

// Wrap builds a new Diagnostic. When cause is non-nil it is captured with
// errors.WithStack so a %+v of the Diagnostic at the CLI boundary prints the
// stack frame where the underlying failure actually occurred, not just the
// composite path that surfaced it.
func Wrap(kind Kind, path string, cause error, ports ...string) *Diagnostic {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Diagnostic{
		Kind:  kind,
		Path:  path,
		Ports: append([]string(nil), ports...),
		cause: cause,
	}
}

// New is Wrap with no underlying cause, for diagnostics raised directly by a
// validation check rather than propagated from a deeper failure.
func New(kind Kind, path string, ports ...string) *Diagnostic {
	return Wrap(kind, path, nil, ports...)
}
