// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package store is the storage-adapter contract (spec §4.2): a thin
// abstraction over a NetCDF-4-like backend. The core format engine never
// talks to an HDF5/NetCDF library directly. It talks to this interface,
// so the backend can be swapped by implementing the op table below. Two
// implementations live in this package: Mem, an in-memory store every unit
// test in the module runs against, and File, a disk-backed store built
// from the pack's own storage idioms (mmap-go for the byte-level I/O,
// klauspost/compress for the compression filter option).
package store

import "errors"

// Format mirrors the create-time backend format choices in spec §4.2.
type Format int

const (
	FormatNC3 Format = iota
	FormatNC3_64Bit
	FormatNC4
	FormatNC4Classic
	FormatCDF5
)

// WordSize is the on-disk float word size.
type WordSize int

const (
	WordSize4 WordSize = 4
	WordSize8 WordSize = 8
)

// VarType is a backend variable's element type.
type VarType int

const (
	TypeInt32 VarType = iota
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeChar
)

// Size returns the element's on-disk width in bytes.
func (t VarType) Size() int {
	switch t {
	case TypeInt32, TypeFloat32:
		return 4
	case TypeInt64, TypeFloat64:
		return 8
	case TypeChar:
		return 1
	default:
		return 0
	}
}

// Var is an opaque handle to a backend variable: its name, element type,
// and ordered dimension names. The first dimension may be the unlimited
// time dimension.
type Var struct {
	Name string
	Type VarType
	Dims []string
}

// Scope selects the target of an attribute operation: either the global
// (file-level) scope, or a specific variable's scope.
type Scope struct {
	global  bool
	varName string
}

// Global is the file-level attribute scope.
func Global() Scope { return Scope{global: true} }

// OfVar is a variable's attribute scope.
func OfVar(name string) Scope { return Scope{varName: name} }

func (s Scope) String() string {
	if s.global {
		return "<global>"
	}
	return s.varName
}

// Compression mirrors the create-option compression filter (spec §4.1).
type Compression struct {
	Kind  CompressionKind
	Level int // 1..9 for Gzip/Zstd; ignored for None/Szip.
}

type CompressionKind int

const (
	CompressionNone CompressionKind = iota
	CompressionGzip
	CompressionSzip
	CompressionZstd
)

// PerfConfig mirrors the create-option backend cache/chunk tuning knobs.
type PerfConfig struct {
	CacheBytes  int
	CacheSlots  int
	Preemption  float64 // [0,1]
	ChunkSizes  []int
	NodeTypeHint string
}

// ErrNotFound is wrapped into the errors Mem's Read, Write, PutAttr,
// GetAttr and SetFilter return for a variable that does not exist
// (Store.Var/DimLen report a miss through their bool result instead); the
// store package itself never exposes the core's error kinds.
var ErrNotFound = errors.New("store: not found")

// Store is the full op table the core format engine needs from the
// backend (spec §4.2). All operations may fail with an opaque error; the
// core wraps anything unrecognized as Backend(kind).
type Store interface {
	// AddDim declares a new dimension. name must be unique. length == 0
	// means unlimited (at most one such dimension may exist: time_step).
	AddDim(name string, length int) error

	// DimLen returns a dimension's current length and whether it exists.
	// For the unlimited dimension this is its current extent.
	DimLen(name string) (int, bool)

	// AddVar declares a new variable over the given (already-declared)
	// dimensions, in order.
	AddVar(name string, typ VarType, dims []string) (Var, error)

	// Var looks up a previously declared variable.
	Var(name string) (Var, bool)

	// Read fetches a hyperslab as raw bytes in row-major order, element
	// width determined by the variable's type. len(origin) == len(shape)
	// == len(v.Dims).
	Read(v Var, origin, shape []int) ([]byte, error)

	// Write stores a hyperslab from raw bytes in row-major order.
	// len(data) must equal product(shape) * v.Type.Size().
	Write(v Var, origin, shape []int, data []byte) error

	// PutAttr/GetAttr set and fetch typed global or per-variable
	// attributes. Supported value types: string, int32, int64, float64.
	PutAttr(scope Scope, name string, value interface{}) error
	GetAttr(scope Scope, name string) (interface{}, bool, error)

	// EndDefine freezes the schema and allows bulk data I/O.
	// ReenterDefine thaws it again. Both are idempotent.
	EndDefine() error
	ReenterDefine() error
	InDefineMode() bool

	// SetFilter attaches a compression filter to a variable. Must be
	// called in define mode, before the first Write to that variable.
	SetFilter(v Var, c Compression) error

	// Configure applies backend cache/chunk tuning hints. Advisory: a
	// backend is free to approximate or ignore knobs it has no use for,
	// the same way a real NetCDF-4 backend treats chunk-cache sizing as a
	// performance hint rather than a correctness requirement.
	Configure(p PerfConfig) error

	Flush() error
	Close() error
}
