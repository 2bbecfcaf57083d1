// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
)

// mapBlockClass is the block class whose registered entries a map-bearing
// class counts over: NodeMap counts nodes, ElemMap counts the elements
// summed across every registered element block, and so on (spec §4.9).
func mapBlockClass(c Class) Class {
	switch c {
	case EdgeMap:
		return EdgeBlock
	case FaceMap:
		return FaceBlock
	default:
		return ElemBlock
	}
}

func (f *File) mapTotal(class Class) (int, error) {
	if class == NodeMap {
		p, err := f.requireInit()
		if err != nil {
			return 0, err
		}
		return p.NumNodes, nil
	}
	return f.classTotalWidth(mapBlockClass(class))
}

// PutMap writes an optional ID-map permutation for a map-bearing class
// (spec §4.9): ids must have the mesh-wide member count for that class
// (NumNodes for NodeMap, the summed registered-block entry count for
// Edge/Face/ElemMap).
func (f *File) PutMap(class Class, ids []int64) error {
	switch class {
	case NodeMap, EdgeMap, FaceMap, ElemMap:
	default:
		return errInvalidTopology(class.String())
	}
	want, err := f.mapTotal(class)
	if err != nil {
		return err
	}
	if len(ids) != want {
		return errArrayLengthMismatch("PutMap", want, len(ids))
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	v, ok := f.st.Var(naming.VarMap(class))
	if !ok {
		dim := naming.DimNumNodes
		if class != NodeMap {
			dim = naming.DimClassTotal(mapBlockClass(class))
			if _, ok := f.st.DimLen(dim); !ok {
				if err := f.st.AddDim(dim, want); err != nil {
					return errBackend(err)
				}
			}
		}
		v, err = f.st.AddVar(naming.VarMap(class), idVarType(f.opts.IntMode), []string{dim})
		if err != nil {
			return errBackend(err)
		}
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	return f.writeIDSlab(v, ids)
}

// Map returns the ID-map for a class, or the implied identity map [1..=N]
// if none was written (spec §4.9).
func (f *File) Map(class Class) ([]int64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	n, err := f.mapTotal(class)
	if err != nil {
		return nil, err
	}
	v, ok := f.st.Var(naming.VarMap(class))
	if !ok {
		identity := make([]int64, n)
		for i := range identity {
			identity[i] = int64(i + 1)
		}
		return identity, nil
	}
	return f.readIDSlab(v, n)
}
