// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
)

// Mem is an in-memory Store. It is the reference backend every test in the
// module runs against: dimensions and variables are plain Go maps, and
// hyperslab I/O is done with manual row-major stride arithmetic rather than
// an HDF5/NetCDF bitstream. It enforces the same define/data mode
// discipline a real backend would (§4.1/§4.2), so core logic that depends
// on that discipline is exercised the same way it would be against a real
// file.
type Mem struct {
	dims     map[string]int
	unlimDim string
	vars     map[string]*memVar
	varOrder []string
	gattrs   map[string]interface{}
	define   bool
	closed   bool
	perf     PerfConfig
}

type memVar struct {
	v      Var
	data   []byte // flat, row-major, grows along the unlimited dimension
	attrs  map[string]interface{}
	filter Compression
}

// NewMem returns a Mem store already in define mode, as Store.create does
// in the real backend contract.
func NewMem() *Mem {
	return &Mem{
		dims:   make(map[string]int),
		vars:   make(map[string]*memVar),
		gattrs: make(map[string]interface{}),
		define: true,
	}
}

func (m *Mem) AddDim(name string, length int) error {
	if !m.define {
		return fmt.Errorf("store: AddDim(%q): not in define mode", name)
	}
	if _, ok := m.dims[name]; ok {
		return fmt.Errorf("store: dimension %q already exists", name)
	}
	if length == 0 {
		if m.unlimDim != "" {
			return fmt.Errorf("store: a second unlimited dimension %q is not allowed, already have %q", name, m.unlimDim)
		}
		m.unlimDim = name
	}
	m.dims[name] = length
	return nil
}

func (m *Mem) DimLen(name string) (int, bool) {
	n, ok := m.dims[name]
	return n, ok
}

func (m *Mem) AddVar(name string, typ VarType, dims []string) (Var, error) {
	if !m.define {
		return Var{}, fmt.Errorf("store: AddVar(%q): not in define mode", name)
	}
	if _, ok := m.vars[name]; ok {
		return Var{}, fmt.Errorf("store: variable %q already exists", name)
	}
	for _, d := range dims {
		if _, ok := m.dims[d]; !ok {
			return Var{}, fmt.Errorf("store: variable %q references undeclared dimension %q", name, d)
		}
	}
	v := Var{Name: name, Type: typ, Dims: append([]string(nil), dims...)}
	m.vars[name] = &memVar{v: v, attrs: make(map[string]interface{})}
	m.varOrder = append(m.varOrder, name)
	return v, nil
}

func (m *Mem) Var(name string) (Var, bool) {
	mv, ok := m.vars[name]
	if !ok {
		return Var{}, false
	}
	return mv.v, true
}

// shapeFor resolves a variable's current dimension lengths, substituting
// the store's live unlimited-dimension extent for the unlimited axis.
func (m *Mem) shapeFor(v Var) ([]int, error) {
	shape := make([]int, len(v.Dims))
	for i, d := range v.Dims {
		n, ok := m.dims[d]
		if !ok {
			return nil, fmt.Errorf("store: variable %q dimension %q no longer exists", v.Name, d)
		}
		shape[i] = n
	}
	return shape, nil
}

func product(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func (m *Mem) Read(v Var, origin, shape []int) ([]byte, error) {
	if m.define {
		return nil, fmt.Errorf("store: Read(%q): in define mode, data I/O forbidden", v.Name)
	}
	mv, ok := m.vars[v.Name]
	if !ok {
		return nil, fmt.Errorf("store: %w: variable %q", ErrNotFound, v.Name)
	}
	full, err := m.shapeFor(v)
	if err != nil {
		return nil, err
	}
	elemSize := v.Type.Size()
	out := make([]byte, product(shape)*elemSize)
	return out, copyHyperslab(mv.data, out, full, origin, shape, elemSize, false)
}

func (m *Mem) Write(v Var, origin, shape []int, data []byte) error {
	if m.define {
		return fmt.Errorf("store: Write(%q): in define mode, data I/O forbidden", v.Name)
	}
	mv, ok := m.vars[v.Name]
	if !ok {
		return fmt.Errorf("store: %w: variable %q", ErrNotFound, v.Name)
	}
	elemSize := v.Type.Size()
	if len(data) != product(shape)*elemSize {
		return fmt.Errorf("store: Write(%q): data length %d does not match shape %v (%d bytes expected)",
			v.Name, len(data), shape, product(shape)*elemSize)
	}

	// Grow along the unlimited axis (and correspondingly the backing
	// buffer) if this write extends past the current extent.
	if len(v.Dims) > 0 && v.Dims[0] == m.unlimDim {
		need := origin[0] + shape[0]
		if cur := m.dims[m.unlimDim]; need > cur {
			m.dims[m.unlimDim] = need
		}
	}
	full, err := m.shapeFor(v)
	if err != nil {
		return err
	}
	need := product(full) * elemSize
	if len(mv.data) < need {
		grown := make([]byte, need)
		copy(grown, mv.data)
		mv.data = grown
	}
	return copyHyperslab(mv.data, data, full, origin, shape, elemSize, true)
}

// copyHyperslab copies between a flat row-major buffer (dims "full") and a
// tightly packed hyperslab buffer (origin/shape), in the direction
// indicated by toFull.
func copyHyperslab(fullBuf, slabBuf []byte, full, origin, shape []int, elemSize int, toFull bool) error {
	if len(full) != len(origin) || len(full) != len(shape) {
		return fmt.Errorf("store: rank mismatch: full=%d origin=%d shape=%d", len(full), len(origin), len(shape))
	}
	for i := range full {
		if origin[i] < 0 || origin[i]+shape[i] > full[i] {
			return fmt.Errorf("store: hyperslab out of range on axis %d: origin=%d shape=%d full=%d", i, origin[i], shape[i], full[i])
		}
	}
	strides := make([]int, len(full))
	stride := 1
	for i := len(full) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= full[i]
	}
	idx := make([]int, len(shape))
	slabPos := 0
	for {
		fullOffset := 0
		for i, s := range strides {
			fullOffset += (origin[i] + idx[i]) * s
		}
		fullOffset *= elemSize
		if toFull {
			copy(fullBuf[fullOffset:fullOffset+elemSize], slabBuf[slabPos:slabPos+elemSize])
		} else {
			copy(slabBuf[slabPos:slabPos+elemSize], fullBuf[fullOffset:fullOffset+elemSize])
		}
		slabPos += elemSize

		axis := len(shape) - 1
		for axis >= 0 {
			idx[axis]++
			if idx[axis] < shape[axis] {
				break
			}
			idx[axis] = 0
			axis--
		}
		if axis < 0 {
			break
		}
	}
	return nil
}

func (m *Mem) PutAttr(scope Scope, name string, value interface{}) error {
	if scope.global {
		m.gattrs[name] = value
		return nil
	}
	mv, ok := m.vars[scope.varName]
	if !ok {
		return fmt.Errorf("store: PutAttr: %w: variable %q", ErrNotFound, scope.varName)
	}
	mv.attrs[name] = value
	return nil
}

func (m *Mem) GetAttr(scope Scope, name string) (interface{}, bool, error) {
	if scope.global {
		v, ok := m.gattrs[name]
		return v, ok, nil
	}
	mv, ok := m.vars[scope.varName]
	if !ok {
		return nil, false, fmt.Errorf("store: GetAttr: %w: variable %q", ErrNotFound, scope.varName)
	}
	v, ok := mv.attrs[name]
	return v, ok, nil
}

func (m *Mem) EndDefine() error {
	m.define = false
	return nil
}

func (m *Mem) ReenterDefine() error {
	m.define = true
	return nil
}

func (m *Mem) InDefineMode() bool { return m.define }

func (m *Mem) SetFilter(v Var, c Compression) error {
	if !m.define {
		return fmt.Errorf("store: SetFilter(%q): not in define mode", v.Name)
	}
	mv, ok := m.vars[v.Name]
	if !ok {
		return fmt.Errorf("store: SetFilter: %w: variable %q", ErrNotFound, v.Name)
	}
	mv.filter = c
	return nil
}

// Configure records the backend tuning hints. The in-memory store has no
// cache or chunk store of its own to tune, so it only keeps the value
// available for inspection (e.g. by tests asserting it was passed
// through), the same way it would be a no-op on a filesystem that ignores
// chunk-cache sizing hints for a given volume.
func (m *Mem) Configure(p PerfConfig) error {
	m.perf = p
	return nil
}

func (m *Mem) Flush() error {
	return nil
}

func (m *Mem) Close() error {
	m.closed = true
	return nil
}
