// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// PutSet registers a set: its member dimension and property-table row,
// and (if NumDistFactors > 0) its distribution-factor dimension/variable
// (spec §4.6).
func (f *File) PutSet(s Set) error {
	switch s.Class {
	case NodeSet, EdgeSet, FaceSet, SideSet, ElemSet:
	default:
		return errInvalidTopology(s.Class.String())
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	if _, ok := f.cache.entityIndex(s.Class, s.ID); ok {
		return errEntityNotFound(s.Class, s.ID)
	}

	memberDim := naming.DimNumEntries(s.Class, int64(s.ID))
	if err := f.st.AddDim(memberDim, s.NumEntries); err != nil {
		return errBackend(err)
	}

	idType := idVarType(f.opts.IntMode)
	switch s.Class {
	case SideSet:
		if _, err := f.st.AddVar(naming.VarSetElem(int64(s.ID)), idType, []string{memberDim}); err != nil {
			return errBackend(err)
		}
		if _, err := f.st.AddVar(naming.VarSetSide(int64(s.ID)), idType, []string{memberDim}); err != nil {
			return errBackend(err)
		}
	default:
		if _, err := f.st.AddVar(naming.VarSetMembers(s.Class, int64(s.ID)), idType, []string{memberDim}); err != nil {
			return errBackend(err)
		}
	}

	if s.NumDistFactors > 0 {
		dfDim := naming.DimNumDistFact(s.Class, int64(s.ID))
		if err := f.st.AddDim(dfDim, s.NumDistFactors); err != nil {
			return errBackend(err)
		}
		if _, err := f.st.AddVar(naming.VarDistFact(s.Class, int64(s.ID)), store.TypeFloat64, []string{dfDim}); err != nil {
			return errBackend(err)
		}
	}

	idx := f.cache.registerEntity(s.Class, s.ID)
	sc := s
	f.cache.sets[entityKey{s.Class, s.ID}] = &sc
	if err := f.ensurePropTable(s.Class); err != nil {
		return err
	}
	return f.writePropID(s.Class, idx, int64(s.ID))
}

// Set returns a previously registered set's definition.
func (f *File) Set(class Class, id EntityID) (Set, error) {
	if err := f.ensureReadable(); err != nil {
		return Set{}, err
	}
	s, ok := f.cache.sets[entityKey{class, id}]
	if !ok {
		return Set{}, errEntityNotFound(class, id)
	}
	return *s, nil
}

// SetIDs returns set IDs in insertion order (spec §8 scenario S3).
func (f *File) SetIDs(class Class) ([]EntityID, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	return append([]EntityID(nil), f.cache.order[class]...), nil
}

// PutSetMembers writes a node/edge/face/elem set's flat member list.
// Not valid for SideSet; use PutSideSetMembers.
func (f *File) PutSetMembers(class Class, id EntityID, members []int64) error {
	if class == SideSet {
		return errInvalidTopology("SideSet: use PutSideSetMembers")
	}
	s, err := f.Set(class, id)
	if err != nil {
		return err
	}
	if len(members) != s.NumEntries {
		return errArrayLengthMismatch("PutSetMembers", s.NumEntries, len(members))
	}
	v, ok := f.st.Var(naming.VarSetMembers(class, int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarSetMembers(class, int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	return f.writeIDSlab(v, members)
}

// SetMembers reads a node/edge/face/elem set's flat member list.
func (f *File) SetMembers(class Class, id EntityID) ([]int64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	s, err := f.Set(class, id)
	if err != nil {
		return nil, err
	}
	v, ok := f.st.Var(naming.VarSetMembers(class, int64(id)))
	if !ok {
		return nil, errVariableNotDefined(naming.VarSetMembers(class, int64(id)))
	}
	return f.readIDSlab(v, s.NumEntries)
}

// PutSideSetMembers writes the parallel element-id/local-side-number
// arrays for a side set. Member-count for SideSet equals element count
// (spec §4.6).
func (f *File) PutSideSetMembers(id EntityID, elems, sides []int64) error {
	s, err := f.Set(SideSet, id)
	if err != nil {
		return err
	}
	if len(elems) != s.NumEntries {
		return errArrayLengthMismatch("PutSideSetMembers elems", s.NumEntries, len(elems))
	}
	if len(sides) != s.NumEntries {
		return errArrayLengthMismatch("PutSideSetMembers sides", s.NumEntries, len(sides))
	}
	ev, ok := f.st.Var(naming.VarSetElem(int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarSetElem(int64(id)))
	}
	sv, ok := f.st.Var(naming.VarSetSide(int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarSetSide(int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	if err := f.writeIDSlab(ev, elems); err != nil {
		return err
	}
	return f.writeIDSlab(sv, sides)
}

// SideSetMembers reads the parallel element-id/local-side-number arrays.
func (f *File) SideSetMembers(id EntityID) (elems, sides []int64, err error) {
	if err := f.ensureReadable(); err != nil {
		return nil, nil, err
	}
	s, err := f.Set(SideSet, id)
	if err != nil {
		return nil, nil, err
	}
	ev, ok := f.st.Var(naming.VarSetElem(int64(id)))
	if !ok {
		return nil, nil, errVariableNotDefined(naming.VarSetElem(int64(id)))
	}
	sv, ok := f.st.Var(naming.VarSetSide(int64(id)))
	if !ok {
		return nil, nil, errVariableNotDefined(naming.VarSetSide(int64(id)))
	}
	elems, err = f.readIDSlab(ev, s.NumEntries)
	if err != nil {
		return nil, nil, err
	}
	sides, err = f.readIDSlab(sv, s.NumEntries)
	return elems, sides, err
}

// PutDistFactors writes a set's optional distribution factors. A
// distribution-factor count may exceed the member count (one factor per
// node on each side, for SideSet) so its length is validated against
// NumDistFactors, not NumEntries (spec §4.6).
func (f *File) PutDistFactors(class Class, id EntityID, factors []float64) error {
	s, err := f.Set(class, id)
	if err != nil {
		return err
	}
	if len(factors) != s.NumDistFactors {
		return errArrayLengthMismatch("PutDistFactors", s.NumDistFactors, len(factors))
	}
	v, ok := f.st.Var(naming.VarDistFact(class, int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarDistFact(class, int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	return f.writeFloatSlab(v, []int{0}, []int{len(factors)}, factors)
}

// DistFactors reads a set's distribution factors, or nil if none exist.
func (f *File) DistFactors(class Class, id EntityID) ([]float64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	s, err := f.Set(class, id)
	if err != nil {
		return nil, err
	}
	if s.NumDistFactors == 0 {
		return nil, nil
	}
	v, ok := f.st.Var(naming.VarDistFact(class, int64(id)))
	if !ok {
		return nil, nil
	}
	return f.readFloatSlab(v, []int{0}, []int{s.NumDistFactors})
}

func (f *File) writeIDSlab(v store.Var, ids []int64) error {
	buf := make([]byte, len(ids)*v.Type.Size())
	for i, id := range ids {
		putID(buf[i*v.Type.Size():], v.Type, id)
	}
	return wrapBackend(f.st.Write(v, []int{0}, []int{len(ids)}, buf))
}

func (f *File) readIDSlab(v store.Var, n int) ([]int64, error) {
	raw, err := f.st.Read(v, []int{0}, []int{n})
	if err != nil {
		return nil, errBackend(err)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = getID(raw[i*v.Type.Size():], v.Type)
	}
	return out, nil
}
