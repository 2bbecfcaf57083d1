// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"errors"
	"fmt"
)

// Sentinel errors, in the flat table saferwall/pe's helper.go keeps for
// ErrInvalidPESize and its siblings: one var block, one line of doc each,
// checked with errors.Is at call sites.
var (
	// ErrSchemaFrozen is returned when a schema-mutating call targets a
	// part of the schema that is already fixed (e.g. a second
	// DefineVariables for a class whose variable catalog exists).
	ErrSchemaFrozen = errors.New("exodus: schema is frozen (file is in data mode)")

	// ErrSchemaMutable is returned when a bulk data I/O call is made while
	// the handle is still in define mode and no implicit end-define
	// applies.
	ErrSchemaMutable = errors.New("exodus: schema is still mutable (file is in define mode)")

	// ErrWriteOnReadOnly is returned by any mutating call on a Read handle.
	ErrWriteOnReadOnly = errors.New("exodus: write attempted on a read-only handle")

	// ErrReadOnWriteOnly is returned when a Write (not Append) handle is
	// asked to read back data it cannot yet see.
	ErrReadOnWriteOnly = errors.New("exodus: read attempted on a write-only handle")

	// ErrNotInitialized is returned by any operation that requires Init to
	// have already run.
	ErrNotInitialized = errors.New("exodus: file has not been initialized")

	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("exodus: file has already been initialized")

	// ErrNonContiguousTimeStep is returned when a time-dependent write
	// targets a step index more than one past the current maximum.
	ErrNonContiguousTimeStep = errors.New("exodus: time step would leave a gap in the unlimited time axis")

	// ErrInvalidTimeStep is returned for a non-positive step index.
	ErrInvalidTimeStep = errors.New("exodus: time step indices are 1-based and must be positive")

	// ErrOutOfRange is returned by partial coordinate/array I/O whose
	// [start, count) window exceeds the backing dimension.
	ErrOutOfRange = errors.New("exodus: [start, count) window is out of range")
)

// Kind is the taxonomy of fatal errors spec §7 enumerates. Errors that
// carry structured fields implement error and wrap a *KindError so callers
// can errors.As into the specific kind when they need the fields, or
// errors.Is against the sentinels above for the mode-state kinds.
type Kind int

const (
	KindBackend Kind = iota
	KindSchemaFrozen
	KindSchemaMutable
	KindInvalidDimension
	KindArrayLengthMismatch
	KindStringTooLong
	KindEntityNotFound
	KindVariableNotDefined
	KindInvalidTopology
	KindOutOfRange
	KindInvalidTimeStep
	KindNonContiguousTimeStep
	KindTruthTableViolation
	KindWriteOnReadOnly
	KindReadOnWriteOnly
	KindNotInitialized
)

func (k Kind) String() string {
	switch k {
	case KindBackend:
		return "Backend"
	case KindSchemaFrozen:
		return "SchemaFrozen"
	case KindSchemaMutable:
		return "SchemaMutable"
	case KindInvalidDimension:
		return "InvalidDimension"
	case KindArrayLengthMismatch:
		return "ArrayLengthMismatch"
	case KindStringTooLong:
		return "StringTooLong"
	case KindEntityNotFound:
		return "EntityNotFound"
	case KindVariableNotDefined:
		return "VariableNotDefined"
	case KindInvalidTopology:
		return "InvalidTopology"
	case KindOutOfRange:
		return "OutOfRange"
	case KindInvalidTimeStep:
		return "InvalidTimeStep"
	case KindNonContiguousTimeStep:
		return "NonContiguousTimeStep"
	case KindTruthTableViolation:
		return "TruthTableViolation"
	case KindWriteOnReadOnly:
		return "WriteOnReadOnly"
	case KindReadOnWriteOnly:
		return "ReadOnWriteOnly"
	case KindNotInitialized:
		return "NotInitialized"
	default:
		return "Unknown"
	}
}

// Error is the structured error type backing every non-sentinel kind in
// spec §7. It always has a Kind and a human-readable message; some kinds
// attach extra fields (Expected/Actual, Class/ID, Name).
type Error struct {
	Kind     Kind
	Message  string
	Expected interface{}
	Actual   interface{}
	Class    Class
	HasClass bool
	ID       EntityID
	Name     string
	Err      error // wrapped backend error, for KindBackend
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exodus: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("exodus: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, exodus.ErrSchemaFrozen) work for the kinds that
// also have a flat sentinel above, without the sentinel and the kind
// drifting apart.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindSchemaFrozen:
		return target == ErrSchemaFrozen
	case KindSchemaMutable:
		return target == ErrSchemaMutable
	case KindWriteOnReadOnly:
		return target == ErrWriteOnReadOnly
	case KindReadOnWriteOnly:
		return target == ErrReadOnWriteOnly
	case KindNotInitialized:
		return target == ErrNotInitialized
	case KindNonContiguousTimeStep:
		return target == ErrNonContiguousTimeStep
	case KindInvalidTimeStep:
		return target == ErrInvalidTimeStep
	case KindOutOfRange:
		return target == ErrOutOfRange
	default:
		return false
	}
}

func errBackend(err error) error {
	return &Error{Kind: KindBackend, Message: "backend operation failed", Err: err}
}

func errSchemaFrozen(op string) error {
	return &Error{Kind: KindSchemaFrozen, Message: op}
}

func errSchemaMutable(op string) error {
	return &Error{Kind: KindSchemaMutable, Message: op}
}

func errInvalidDimension(name string, expected, actual int) error {
	return &Error{Kind: KindInvalidDimension, Message: name, Expected: expected, Actual: actual}
}

func errArrayLengthMismatch(what string, expected, actual int) error {
	return &Error{Kind: KindArrayLengthMismatch, Message: what, Expected: expected, Actual: actual}
}

func errStringTooLong(what string, max, actual int) error {
	return &Error{Kind: KindStringTooLong, Message: what, Expected: max, Actual: actual}
}

func errEntityNotFound(class Class, id EntityID) error {
	return &Error{Kind: KindEntityNotFound, Message: "entity not found", Class: class, HasClass: true, ID: id}
}

func errVariableNotDefined(name string) error {
	return &Error{Kind: KindVariableNotDefined, Message: "variable not defined", Name: name}
}

func errInvalidTopology(s string) error {
	return &Error{Kind: KindInvalidTopology, Message: "invalid topology", Name: s}
}

func errReservedName(what string) error {
	return &Error{Kind: KindInvalidTopology, Message: "name is reserved: " + what}
}

func errTruthTableViolation(class Class, entityIdx, varIdx int) error {
	return &Error{
		Kind:     KindTruthTableViolation,
		Message:  fmt.Sprintf("entity index %d has no variable index %d materialized", entityIdx, varIdx),
		Class:    class,
		HasClass: true,
	}
}
