// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"go.uber.org/zap"

	"github.com/exodus-go/exodus/internal/store"
)

// OpenMode controls Create's overwrite behavior (spec §4.1).
type OpenMode int

const (
	Clobber OpenMode = iota
	NoClobber
)

// FloatSize declares the on-disk word size for floating point data.
type FloatSize int

const (
	Float32 FloatSize = 4
	Float64 FloatSize = 8
)

// IntMode declares the on-disk width for IDs.
type IntMode int

const (
	Int32 IntMode = iota
	Int64
)

// VariableLayout selects how a class's variable values are laid out on
// disk the first time a value is written for that class (spec §4.7).
// Global is always Combined regardless of this setting.
type VariableLayout int

const (
	LayoutCombined VariableLayout = iota
	LayoutSeparate
)

// CompressionKind mirrors store.CompressionKind at the public surface.
type CompressionKind = store.CompressionKind

const (
	CompressionNone = store.CompressionNone
	CompressionGzip = store.CompressionGzip
	CompressionSzip = store.CompressionSzip
	CompressionZstd = store.CompressionZstd
)

// Compression is the create-option compression filter (spec §4.1).
type Compression struct {
	Kind  CompressionKind
	Level int // 1..9, Gzip/Zstd only.
}

func (c Compression) toStore() store.Compression {
	return store.Compression{Kind: c.Kind, Level: c.Level}
}

// applyCompression attaches the handle's configured compression filter to
// a newly declared variable, in define mode, before its first Write
// (spec §4.2 set-filter). A no-op when Compression is left at its
// CompressionNone default.
func (f *File) applyCompression(v store.Var) error {
	if f.opts.Compression.Kind == CompressionNone {
		return nil
	}
	return wrapBackend(f.st.SetFilter(v, f.opts.Compression.toStore()))
}

// PerfConfig tunes the backend cache and chunking (spec §4.1). It is the
// only place environment-style knobs enter the library; there are no
// environment variables consulted anywhere else (spec §6).
type PerfConfig struct {
	CacheBytes   int
	CacheSlots   int
	Preemption   float64 // [0,1]
	ChunkSizes   []int
	NodeTypeHint string
}

func (p PerfConfig) toStore() store.PerfConfig {
	return store.PerfConfig{
		CacheBytes:   p.CacheBytes,
		CacheSlots:   p.CacheSlots,
		Preemption:   p.Preemption,
		ChunkSizes:   p.ChunkSizes,
		NodeTypeHint: p.NodeTypeHint,
	}
}

// Options configures Create/Open/Append, mirroring saferwall/pe's Options
// struct passed into pe.New: a single optional struct with documented
// per-field defaults, never environment-driven.
type Options struct {
	// OpenMode applies to Create only: Clobber overwrites an existing
	// file, NoClobber fails if the path exists. Defaults to Clobber.
	OpenMode OpenMode

	// FloatSize is the on-disk float word size. Defaults to Float64.
	FloatSize FloatSize

	// IntMode is the on-disk ID width. Defaults to Int32.
	IntMode IntMode

	// Compression is the storage filter for large arrays. Defaults to
	// CompressionNone.
	Compression Compression

	// PerfConfig tunes backend cache/chunk behavior. Zero value lets the
	// backend pick its own defaults.
	PerfConfig PerfConfig

	// Logger overrides the default Warn-level stderr zap logger.
	Logger *zap.Logger

	// InMemory, when true, backs the handle with an in-memory store
	// instead of a disk file; most tests in the module use it instead of
	// touching disk.
	InMemory bool

	// VariableLayout picks Combined or Separate storage for block/set/Nodal
	// variable values, decided once per class on its first value write.
	// Defaults to LayoutCombined. Global always uses Combined.
	VariableLayout VariableLayout
}

func defaultOptions(opts *Options) Options {
	if opts == nil {
		return Options{FloatSize: Float64, IntMode: Int32}
	}
	o := *opts
	if o.FloatSize == 0 {
		o.FloatSize = Float64
	}
	return o
}
