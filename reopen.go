// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// blockClasses and setClasses are the block-bearing and set-bearing
// subsets of the entity classes HasEntries covers.
var blockClasses = []Class{EdgeBlock, FaceBlock, ElemBlock}
var setClasses = []Class{NodeSet, EdgeSet, FaceSet, SideSet, ElemSet}

// rebuildCache walks an already-populated backend and repopulates every
// entity-indexed lookup a freshly opened handle otherwise starts out
// without: block/set registrations, property names, variable catalogs, and
// the time-step high-water mark. Create never needs this, since its cache
// grows incrementally as it writes; Open, Append, and OpenMem all attach to
// a backend that may already hold a full schema, and this is their
// counterpart read path, the same way VariableNames already falls back to
// reading the backend on a cache miss instead of assuming its own prior
// writes are the only source of truth.
func (f *File) rebuildCache() error {
	for _, c := range blockClasses {
		if err := f.rebuildEntityClass(c); err != nil {
			return err
		}
	}
	for _, c := range setClasses {
		if err := f.rebuildEntityClass(c); err != nil {
			return err
		}
	}
	if err := f.rebuildAssemblies(); err != nil {
		return err
	}
	if err := f.rebuildBlobs(); err != nil {
		return err
	}
	for _, c := range []Class{Nodal, Global, EdgeBlock, FaceBlock, ElemBlock, NodeSet, EdgeSet, FaceSet, SideSet, ElemSet} {
		if _, err := f.VariableNames(c); err != nil {
			return err
		}
	}
	if n, ok := f.st.DimLen(naming.DimTimeStep); ok {
		f.cache.maxStep = n
	}
	return nil
}

// rebuildEntityClass recovers every registered block or set of one class
// from its property table's "ID" column (eb_prop1, ns_prop1, ...), the
// only durable record of which entities exist and in what order.
func (f *File) rebuildEntityClass(c Class) error {
	cur, ok := f.st.DimLen(classCountDim(c))
	if !ok || cur == 0 {
		return nil
	}
	propVar, ok := f.st.Var(naming.VarPropTable(c, 1))
	if !ok {
		return nil
	}
	ids, err := f.readIDSlab(propVar, cur)
	if err != nil {
		return err
	}
	isBlock := c == EdgeBlock || c == FaceBlock || c == ElemBlock
	for _, raw := range ids {
		id := EntityID(raw)
		f.cache.registerEntity(c, id)
		if isBlock {
			b, err := f.rebuildBlock(c, id)
			if err != nil {
				return err
			}
			f.cache.blocks[entityKey{c, id}] = &b
			continue
		}
		s, err := f.rebuildSet(c, id)
		if err != nil {
			return err
		}
		f.cache.sets[entityKey{c, id}] = &s
	}
	return f.rebuildPropertyNames(c)
}

func (f *File) rebuildBlock(c Class, id EntityID) (Block, error) {
	b := Block{ID: id, Class: c}
	connVar, ok := f.st.Var(naming.VarConnect(c, int64(id)))
	if !ok {
		return Block{}, errVariableNotDefined(naming.VarConnect(c, int64(id)))
	}
	if topo, ok, err := f.st.GetAttr(store.OfVar(connVar.Name), naming.AttrElemType); err != nil {
		return Block{}, errBackend(err)
	} else if ok {
		b.Topology, _ = topo.(string)
	}
	if n, ok := f.st.DimLen(naming.DimNumEntries(c, int64(id))); ok {
		b.NumEntries = n
	}
	if !IsPolyTopology(b.Topology) {
		if n, ok := f.st.DimLen(naming.DimNumNodesPerEntry(c, int64(id))); ok {
			b.NodesPerEntry = n
		}
	}
	if n, ok := f.st.DimLen(naming.DimNumAttrPerEntry(c, int64(id))); ok {
		b.AttributeCount = n
	}
	return b, nil
}

func (f *File) rebuildSet(c Class, id EntityID) (Set, error) {
	s := Set{ID: id, Class: c}
	if n, ok := f.st.DimLen(naming.DimNumEntries(c, int64(id))); ok {
		s.NumEntries = n
	}
	if n, ok := f.st.DimLen(naming.DimNumDistFact(c, int64(id))); ok {
		s.NumDistFactors = n
	}
	return s, nil
}

// rebuildPropertyNames recovers the property names registered beyond the
// implicit "ID" at index 1, by scanning property-table variables until one
// is missing: PutProperty always appends the next name at the next index,
// so a gap means the table ends.
func (f *File) rebuildPropertyNames(c Class) error {
	for idx := 2; ; idx++ {
		v, ok := f.st.Var(naming.VarPropTable(c, idx))
		if !ok {
			return nil
		}
		name, ok, err := f.st.GetAttr(store.OfVar(v.Name), naming.PropNameAttr)
		if err != nil {
			return errBackend(err)
		}
		var n string
		if ok {
			n, _ = name.(string)
		}
		f.cache.propNames[c] = append(f.cache.propNames[c], n)
	}
}

// rebuildAssemblies recovers assembly IDs from assembly_prop1, the only
// durable record of which assembly IDs exist (Assembly has no clsSuffix
// entry, so it cannot share blocks/sets' eb_prop1 convention; PutAssembly
// writes this table for exactly this reason).
func (f *File) rebuildAssemblies() error {
	cur, ok := f.st.DimLen(naming.DimNumAssembly)
	if !ok || cur == 0 {
		return nil
	}
	idVar, ok := f.st.Var(naming.VarAssemblyIDTable)
	if !ok {
		return nil
	}
	ids, err := f.readIDSlab(idVar, cur)
	if err != nil {
		return err
	}
	namesVar, hasNames := f.st.Var(naming.VarEntityNames(naming.Assembly))
	for idx, raw := range ids {
		id := EntityID(raw)
		f.cache.registerEntity(naming.Assembly, id)
		a := AssemblyGroup{ID: id}
		if hasNames {
			rawName, err := f.st.Read(namesVar, []int{idx, 0}, []int{1, naming.LenNameWidth})
			if err != nil {
				return errBackend(err)
			}
			a.Name = cString(rawName)
		}
		if memberVar, ok := f.st.Var(naming.VarAssemblyMembers(int64(id))); ok {
			if cls, ok, err := f.st.GetAttr(store.OfVar(memberVar.Name), naming.AttrAssemblyMemberClass(int64(id))); err == nil && ok {
				if n, ok := cls.(int64); ok {
					a.MemberClass = Class(n)
				}
			}
			if n, ok := f.st.DimLen(naming.DimNumAssemblyEntries(int64(id))); ok && n > 0 {
				members, err := f.readIDSlab(memberVar, n)
				if err != nil {
					return err
				}
				a.MemberIDs = members
			}
		}
		ac := a
		f.cache.assemblies[id] = &ac
	}
	return nil
}

// rebuildBlobs recovers blob IDs from blob_prop1, the same id-table
// convention rebuildAssemblies uses. Payload bytes are recovered lazily by
// Blob on demand; only the length is needed here, from the payload
// dimension, so Blob's existing len(b.Payload)-driven read still works
// unchanged.
func (f *File) rebuildBlobs() error {
	cur, ok := f.st.DimLen(naming.DimNumBlob)
	if !ok || cur == 0 {
		return nil
	}
	idVar, ok := f.st.Var(naming.VarBlobIDTable)
	if !ok {
		return nil
	}
	ids, err := f.readIDSlab(idVar, cur)
	if err != nil {
		return err
	}
	namesVar, hasNames := f.st.Var(naming.VarEntityNames(naming.Blob))
	for idx, raw := range ids {
		id := EntityID(raw)
		f.cache.registerEntity(naming.Blob, id)
		b := BlobRecord{ID: id}
		if hasNames {
			rawName, err := f.st.Read(namesVar, []int{idx, 0}, []int{1, naming.LenNameWidth})
			if err != nil {
				return errBackend(err)
			}
			b.Name = cString(rawName)
		}
		if n, ok := f.st.DimLen(naming.DimNumBlobEntries(int64(id))); ok {
			b.Payload = make([]byte, n)
		}
		bc := b
		f.cache.blobs[id] = &bc
	}
	return nil
}
