// Package errors provides error handling for svchef.
//
// This package re-exports github.com/cockroachdb/errors and defines one
// sentinel per failure kind the pipeline can report. Callers classify
// failures with errors.Is against the sentinels; messages stay single-line
// so the CLI can print them directly.
//
// Usage:
//
//	// Create a classified error
//	return errors.NewModuleNotFound("fifo_ctrl")
//
//	// Wrap with context, preserving classification
//	if err := strategy.Load(path); err != nil {
//	    return errors.Wrap(err, "loading design")
//	}
//
//	// Check classification
//	if errors.Is(err, errors.ErrModuleNotFound) {
//	    // handle missing module
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// User-facing hints
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

// Sentinel errors for the extraction pipeline. Wrap or Mark these to add
// context while keeping the classification testable with Is().
var (
	// ErrModuleNotFound indicates the requested module is absent from the
	// compiled design.
	ErrModuleNotFound = New("module not found")

	// ErrUnsupportedConstruct indicates a port or parameter type that the
	// document model cannot represent.
	ErrUnsupportedConstruct = New("unsupported construct")

	// ErrCyclicType indicates a composite type that refers back to itself,
	// directly or through its members.
	ErrCyclicType = New("cyclic type")

	// ErrInvalidFilterPattern indicates a malformed exclusion expression.
	ErrInvalidFilterPattern = New("invalid filter pattern")

	// ErrSourceRead indicates the input file is missing or unreadable.
	ErrSourceRead = New("source read failure")

	// ErrSyntax indicates the source text could not be parsed.
	ErrSyntax = New("syntax error")
)

// NewModuleNotFound creates a module-not-found error naming the module.
func NewModuleNotFound(module string) error {
	return Mark(Newf("module %q not found in design", module), ErrModuleNotFound)
}

// NewUnsupportedConstruct creates an unsupported-construct error with a
// formatted message.
func NewUnsupportedConstruct(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupportedConstruct)
}

// NewCyclicType creates a cyclic-type error naming the resolution path.
func NewCyclicType(path string) error {
	return Mark(Newf("cyclic type resolution through %s", path), ErrCyclicType)
}

// NewSyntax creates a parse diagnostic carrying file and line context.
func NewSyntax(file string, line int, format string, args ...interface{}) error {
	msg := Newf(format, args...)
	if file == "" {
		return Mark(msg, ErrSyntax)
	}
	return Mark(Wrapf(msg, "%s:%d", file, line), ErrSyntax)
}

// IsModuleNotFound checks if an error is or wraps ErrModuleNotFound.
func IsModuleNotFound(err error) bool {
	return err != nil && Is(err, ErrModuleNotFound)
}

// IsUnsupportedConstruct checks if an error is or wraps ErrUnsupportedConstruct.
func IsUnsupportedConstruct(err error) bool {
	return err != nil && Is(err, ErrUnsupportedConstruct)
}

// IsCyclicType checks if an error is or wraps ErrCyclicType.
func IsCyclicType(err error) bool {
	return err != nil && Is(err, ErrCyclicType)
}

// IsSyntax checks if an error is or wraps ErrSyntax.
func IsSyntax(err error) bool {
	return err != nil && Is(err, ErrSyntax)
}
