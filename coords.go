// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"encoding/binary"
	"math"

	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// PutCoords writes the nodal coordinate arrays (spec §4.4). Exactly
// NumDim of x, y, z must be supplied (non-nil), each of length NumNodes.
// Declares the coordx/coordy/coordz variables on first call (entering
// define mode as needed), then writes the full arrays.
func (f *File) PutCoords(x, y, z []float64) error {
	p, err := f.requireInit()
	if err != nil {
		return err
	}
	axes := [][]float64{x, y, z}[:p.NumDim]
	for i, a := range axes {
		if a == nil {
			return errArrayLengthMismatch("PutCoords axis", p.NumNodes, 0)
		}
		if len(a) != p.NumNodes {
			return errArrayLengthMismatch("PutCoords axis", p.NumNodes, len(a))
		}
		_ = i
	}

	if err := f.ensureCoordVars(); err != nil {
		return err
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	for axis, a := range axes {
		v, _ := f.st.Var(naming.VarCoord(axis))
		if err := f.writeFloatSlab(v, []int{0}, []int{p.NumNodes}, a); err != nil {
			return err
		}
	}
	return nil
}

// PutCoordsWindow writes a partial [start,count) window of one coordinate
// axis (spec §4.4). start+count must not exceed NumNodes.
func (f *File) PutCoordsWindow(axis int, start, count int, values []float64) error {
	p, err := f.requireInit()
	if err != nil {
		return err
	}
	if start < 0 || count < 0 || start+count > p.NumNodes {
		return ErrOutOfRange
	}
	if len(values) != count {
		return errArrayLengthMismatch("PutCoordsWindow", count, len(values))
	}
	if err := f.ensureCoordVars(); err != nil {
		return err
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	v, _ := f.st.Var(naming.VarCoord(axis))
	return f.writeFloatSlab(v, []int{start}, []int{count}, values)
}

func (f *File) ensureCoordVars() error {
	p, err := f.requireInit()
	if err != nil {
		return err
	}
	needDefine := false
	for axis := 0; axis < p.NumDim; axis++ {
		if _, ok := f.st.Var(naming.VarCoord(axis)); !ok {
			needDefine = true
			break
		}
	}
	if !needDefine {
		return nil
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	typ := f.elemType()
	for axis := 0; axis < p.NumDim; axis++ {
		name := naming.VarCoord(axis)
		if _, ok := f.st.Var(name); ok {
			continue
		}
		v, err := f.st.AddVar(name, typ, []string{naming.DimNumNodes})
		if err != nil {
			return errBackend(err)
		}
		if err := f.applyCompression(v); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) elemType() store.VarType {
	if f.opts.FloatSize == Float32 {
		return store.TypeFloat32
	}
	return store.TypeFloat64
}

// writeFloatSlab converts a float64 slice to the backend's declared word
// size and writes it. Write-time f64->f32 conversion is lossy (truncates);
// spec §4.4 requires that and forbids notifying the caller about it.
func (f *File) writeFloatSlab(v store.Var, origin, shape []int, values []float64) error {
	var buf []byte
	switch v.Type {
	case store.TypeFloat64:
		buf = make([]byte, 8*len(values))
		for i, x := range values {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
		}
	case store.TypeFloat32:
		buf = make([]byte, 4*len(values))
		for i, x := range values {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(x)))
		}
	default:
		return errArrayLengthMismatch("writeFloatSlab: unsupported var type", 0, int(v.Type))
	}
	if err := f.st.Write(v, origin, shape, buf); err != nil {
		return errBackend(err)
	}
	return nil
}

// readFloatSlab reads a hyperslab and widens to float64. Read-time
// f32->f64 conversion is always exact (spec §4.4).
func (f *File) readFloatSlab(v store.Var, origin, shape []int) ([]float64, error) {
	raw, err := f.st.Read(v, origin, shape)
	if err != nil {
		return nil, errBackend(err)
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	out := make([]float64, n)
	switch v.Type {
	case store.TypeFloat64:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	case store.TypeFloat32:
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	default:
		return nil, errArrayLengthMismatch("readFloatSlab: unsupported var type", 0, int(v.Type))
	}
	return out, nil
}

// GetCoords reads the full nodal coordinate arrays.
func (f *File) GetCoords() (x, y, z []float64, err error) {
	if err := f.ensureReadable(); err != nil {
		return nil, nil, nil, err
	}
	p, err := f.requireInit()
	if err != nil {
		return nil, nil, nil, err
	}
	out := make([][]float64, p.NumDim)
	for axis := 0; axis < p.NumDim; axis++ {
		v, ok := f.st.Var(naming.VarCoord(axis))
		if !ok {
			out[axis] = make([]float64, p.NumNodes)
			continue
		}
		vals, err := f.readFloatSlab(v, []int{0}, []int{p.NumNodes})
		if err != nil {
			return nil, nil, nil, err
		}
		out[axis] = vals
	}
	switch p.NumDim {
	case 1:
		return out[0], nil, nil, nil
	case 2:
		return out[0], out[1], nil, nil
	default:
		return out[0], out[1], out[2], nil
	}
}

// GetCoordsWindow reads a partial [start,count) window of one axis.
func (f *File) GetCoordsWindow(axis, start, count int) ([]float64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	p, err := f.requireInit()
	if err != nil {
		return nil, err
	}
	if start < 0 || count < 0 || start+count > p.NumNodes {
		return nil, ErrOutOfRange
	}
	v, ok := f.st.Var(naming.VarCoord(axis))
	if !ok {
		return make([]float64, count), nil
	}
	return f.readFloatSlab(v, []int{start}, []int{count})
}

// PutCoordNames overrides the default x/y/z coordinate names.
func (f *File) PutCoordNames(names []string) error {
	p, err := f.requireInit()
	if err != nil {
		return err
	}
	if len(names) != p.NumDim {
		return errArrayLengthMismatch("PutCoordNames", p.NumDim, len(names))
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	v, ok := f.st.Var(naming.VarCoordNames)
	if !ok {
		v, err = f.st.AddVar(naming.VarCoordNames, store.TypeChar, []string{naming.DimNumDim, naming.DimLenName})
		if err != nil {
			return errBackend(err)
		}
	}
	for i, n := range names {
		if len(n) > naming.MaxNameLen {
			n = n[:naming.MaxNameLen]
		}
		f.cache.coordNames[i] = n
		buf := make([]byte, naming.LenNameWidth)
		copy(buf, n)
		if err := f.ensureDataModeFor(v); err != nil {
			return err
		}
		if err := f.st.Write(v, []int{i, 0}, []int{1, naming.LenNameWidth}, buf); err != nil {
			return errBackend(err)
		}
	}
	return nil
}

// ensureDataModeFor is a small convenience used by Put* operations whose
// variable declaration and value write are interleaved: it performs the
// define->data transition exactly once, after the variable exists.
func (f *File) ensureDataModeFor(_ store.Var) error {
	return f.ensureDataMode()
}

// CoordNames returns the coordinate-axis names, defaulting to x, y, z
// (spec §4.3).
func (f *File) CoordNames() ([]string, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	p, err := f.requireInit()
	if err != nil {
		return nil, err
	}
	names := make([]string, p.NumDim)
	if v, ok := f.st.Var(naming.VarCoordNames); ok {
		for i := 0; i < p.NumDim; i++ {
			raw, err := f.st.Read(v, []int{i, 0}, []int{1, naming.LenNameWidth})
			if err != nil {
				return nil, errBackend(err)
			}
			names[i] = cString(raw)
		}
		return names, nil
	}
	defaults := []string{"x", "y", "z"}
	copy(names, defaults[:p.NumDim])
	return names, nil
}

func (f *File) requireInit() (InitParams, error) {
	if !f.cache.initSet {
		p, err := f.InitParams()
		if err != nil {
			return InitParams{}, err
		}
		return p, nil
	}
	return *f.cache.init, nil
}
