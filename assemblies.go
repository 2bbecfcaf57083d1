// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// AssemblyGroup is a named, ordered group of entities of a single class
// (blocks, sets, or even other assemblies) used to tag higher-level
// structure the mesh itself doesn't encode (spec §4.9).
type AssemblyGroup struct {
	ID          EntityID
	Name        string
	MemberClass Class
	MemberIDs   []int64
}

// PutAssembly registers an assembly: its name, member class, and ordered
// member-id list. ID must fall within the num_assembly count set at Init.
func (f *File) PutAssembly(a AssemblyGroup) error {
	cur, ok := f.st.DimLen(naming.DimNumAssembly)
	if !ok {
		return errInvalidDimension(naming.DimNumAssembly, 0, 1)
	}
	if _, exists := f.cache.entityIndex(naming.Assembly, a.ID); exists {
		return errEntityNotFound(naming.Assembly, a.ID)
	}
	idx := f.cache.entityCount(naming.Assembly)
	if idx >= cur {
		return errInvalidDimension(naming.DimNumAssembly, cur, idx+1)
	}

	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	memberDim := naming.DimNumAssemblyEntries(int64(a.ID))
	if err := f.st.AddDim(memberDim, len(a.MemberIDs)); err != nil {
		return errBackend(err)
	}
	v, err := f.st.AddVar(naming.VarAssemblyMembers(int64(a.ID)), idVarType(f.opts.IntMode), []string{memberDim})
	if err != nil {
		return errBackend(err)
	}
	if err := f.st.PutAttr(store.OfVar(v.Name), naming.AttrAssemblyMemberClass(int64(a.ID)), int64(a.MemberClass)); err != nil {
		return errBackend(err)
	}

	namesVar, ok := f.st.Var(naming.VarEntityNames(naming.Assembly))
	if !ok {
		namesVar, err = f.st.AddVar(naming.VarEntityNames(naming.Assembly), store.TypeChar, []string{naming.DimNumAssembly, naming.DimLenName})
		if err != nil {
			return errBackend(err)
		}
	}
	idVar, ok := f.st.Var(naming.VarAssemblyIDTable)
	if !ok {
		idVar, err = f.st.AddVar(naming.VarAssemblyIDTable, idVarType(f.opts.IntMode), []string{naming.DimNumAssembly})
		if err != nil {
			return errBackend(err)
		}
	}

	f.cache.registerEntity(naming.Assembly, a.ID)
	ac := a
	f.cache.assemblies[a.ID] = &ac

	if err := f.ensureDataMode(); err != nil {
		return err
	}
	if err := f.writeIDSlab(v, a.MemberIDs); err != nil {
		return err
	}
	idBuf := make([]byte, idVar.Type.Size())
	putID(idBuf, idVar.Type, int64(a.ID))
	if err := wrapBackend(f.st.Write(idVar, []int{idx}, []int{1}, idBuf)); err != nil {
		return err
	}
	name := a.Name
	if len(name) > naming.MaxNameLen {
		name = name[:naming.MaxNameLen]
	}
	buf := make([]byte, naming.LenNameWidth)
	copy(buf, name)
	return wrapBackend(f.st.Write(namesVar, []int{idx, 0}, []int{1, naming.LenNameWidth}, buf))
}

// Assembly returns a previously registered assembly's definition.
func (f *File) Assembly(id EntityID) (AssemblyGroup, error) {
	if err := f.ensureReadable(); err != nil {
		return AssemblyGroup{}, err
	}
	a, ok := f.cache.assemblies[id]
	if !ok {
		return AssemblyGroup{}, errEntityNotFound(naming.Assembly, id)
	}
	return *a, nil
}

// AssemblyIDs returns every registered assembly ID, in registration
// order.
func (f *File) AssemblyIDs() []EntityID {
	return append([]EntityID(nil), f.cache.order[naming.Assembly]...)
}
