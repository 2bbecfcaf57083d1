// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"encoding/binary"

	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// PutBlock registers a block: its member dimension, connectivity
// variable, property-table row, and (for NSIDED/NFACED topologies) its
// auxiliary per-entry count array (spec §4.5). Must precede
// PutConnectivity for the same block ID.
func (f *File) PutBlock(b Block) error {
	if b.Class != EdgeBlock && b.Class != FaceBlock && b.Class != ElemBlock {
		return errInvalidTopology(b.Class.String())
	}
	if !IsPolyTopology(b.Topology) {
		if n, ok := TopologyNodeCount(b.Topology); ok && n != b.NodesPerEntry {
			return errInvalidTopology(b.Topology)
		}
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	if _, ok := f.cache.entityIndex(b.Class, b.ID); ok {
		return errEntityNotFound(b.Class, b.ID) // duplicate registration
	}

	entriesDim := naming.DimNumEntries(b.Class, int64(b.ID))
	if err := f.st.AddDim(entriesDim, b.NumEntries); err != nil {
		return errBackend(err)
	}

	var connDims []string
	if !IsPolyTopology(b.Topology) {
		nodesDim := naming.DimNumNodesPerEntry(b.Class, int64(b.ID))
		if err := f.st.AddDim(nodesDim, b.NodesPerEntry); err != nil {
			return errBackend(err)
		}
		connDims = []string{entriesDim, nodesDim}
	} else {
		// NSIDED/NFACED: connectivity is a ragged flat array addressed
		// with a single flat dimension of NumEntries*max(NodesPerEntry,1)
		// slots rather than a rectangular (entries, nodes) shape; the
		// per-entry counts live in their own variable.
		flatDim := entriesDim + "_flat"
		if err := f.st.AddDim(flatDim, b.NumEntries*maxInt(b.NodesPerEntry, 1)); err != nil {
			return errBackend(err)
		}
		connDims = []string{flatDim}
		if _, err := f.st.AddVar(naming.VarEntryCount(int64(b.ID)), idVarType(f.opts.IntMode), []string{entriesDim}); err != nil {
			return errBackend(err)
		}
	}

	connVar, err := f.st.AddVar(naming.VarConnect(b.Class, int64(b.ID)), idVarType(f.opts.IntMode), connDims)
	if err != nil {
		return errBackend(err)
	}
	if err := f.st.PutAttr(store.OfVar(connVar.Name), naming.AttrElemType, b.Topology); err != nil {
		return errBackend(err)
	}
	if err := f.applyCompression(connVar); err != nil {
		return err
	}

	if b.AttributeCount > 0 {
		attrDim := naming.DimNumAttrPerEntry(b.Class, int64(b.ID))
		if err := f.st.AddDim(attrDim, b.AttributeCount); err != nil {
			return errBackend(err)
		}
		attrVar, err := f.st.AddVar(naming.VarAttrib(b.Class, int64(b.ID)), store.TypeFloat64, []string{entriesDim, attrDim})
		if err != nil {
			return errBackend(err)
		}
		if err := f.applyCompression(attrVar); err != nil {
			return err
		}
		if _, err := f.st.AddVar(naming.VarAttribName(b.Class, int64(b.ID)), store.TypeChar, []string{attrDim, naming.DimLenName}); err != nil {
			return errBackend(err)
		}
	}

	idx := f.cache.registerEntity(b.Class, b.ID)
	bc := b
	f.cache.blocks[entityKey{b.Class, b.ID}] = &bc
	if err := f.ensurePropTable(b.Class); err != nil {
		return err
	}
	return f.writePropID(b.Class, idx, int64(b.ID))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func idVarType(m IntMode) store.VarType {
	if m == Int64 {
		return store.TypeInt64
	}
	return store.TypeInt32
}

// ensurePropTable makes sure the class's property table ("eb_prop1" etc.,
// spec §4.5/§4.9) exists, sized to the class's current member count.
func (f *File) ensurePropTable(c Class) error {
	name := naming.VarPropTable(c, 1)
	if _, ok := f.st.Var(name); ok {
		return nil
	}
	countDim := classCountDim(c)
	v, err := f.st.AddVar(name, idVarType(f.opts.IntMode), []string{countDim})
	if err != nil {
		return errBackend(err)
	}
	return f.st.PutAttr(store.OfVar(v.Name), naming.PropNameAttr, "ID")
}

// classCountDim is the dimension backing a class's property table:
// num_el_blk for ElemBlock, num_node_sets for NodeSet, and so on. Init
// sizes it once from InitParams and it never grows; it is the single
// dimension, shared by every block/set of that class, that records how
// many blocks/sets the class may hold.
func classCountDim(c Class) string {
	switch c {
	case EdgeBlock:
		return "num_ed_blk"
	case FaceBlock:
		return "num_fa_blk"
	case ElemBlock:
		return "num_el_blk"
	case NodeSet:
		return "num_node_sets"
	case EdgeSet:
		return "num_edge_sets"
	case FaceSet:
		return "num_face_sets"
	case SideSet:
		return "num_side_sets"
	case ElemSet:
		return "num_elem_sets"
	default:
		return "num_" + naming.Suffix(c)
	}
}

// writePropID stores a newly registered block/set's ID into its class's
// property table at its stable index position. The property table's
// count dimension is sized from InitParams and is immutable (spec §3
// invariant: init counts never change), so this never grows anything;
// idx must already be within that fixed bound.
func (f *File) writePropID(c Class, idx int, id int64) error {
	countDim := classCountDim(c)
	cur, ok := f.st.DimLen(countDim)
	if !ok || idx >= cur {
		return errInvalidDimension(countDim, cur, idx+1)
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	v, _ := f.st.Var(naming.VarPropTable(c, 1))
	buf := make([]byte, v.Type.Size())
	putID(buf, v.Type, id)
	return wrapBackend(f.st.Write(v, []int{idx}, []int{1}, buf))
}

func putID(buf []byte, t store.VarType, id int64) {
	switch t {
	case store.TypeInt64:
		binary.LittleEndian.PutUint64(buf, uint64(id))
	default:
		binary.LittleEndian.PutUint32(buf, uint32(id))
	}
}

func getID(buf []byte, t store.VarType) int64 {
	switch t {
	case store.TypeInt64:
		return int64(binary.LittleEndian.Uint64(buf))
	default:
		return int64(int32(binary.LittleEndian.Uint32(buf)))
	}
}

func wrapBackend(err error) error {
	if err == nil {
		return nil
	}
	return errBackend(err)
}

// Block returns a previously registered block's definition.
func (f *File) Block(class Class, id EntityID) (Block, error) {
	if err := f.ensureReadable(); err != nil {
		return Block{}, err
	}
	b, ok := f.cache.blocks[entityKey{class, id}]
	if !ok {
		return Block{}, errEntityNotFound(class, id)
	}
	return *b, nil
}

// BlockIDs returns block IDs in insertion (and property-table) order.
func (f *File) BlockIDs(class Class) ([]EntityID, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	return append([]EntityID(nil), f.cache.order[class]...), nil
}

// PutConnectivity writes a block's flat connectivity array. len(data) must
// equal NumEntries*NodesPerEntry for fixed topologies.
func (f *File) PutConnectivity(class Class, id EntityID, data []int64) error {
	b, err := f.Block(class, id)
	if err != nil {
		return err
	}
	if !IsPolyTopology(b.Topology) {
		want := b.NumEntries * b.NodesPerEntry
		if len(data) != want {
			return errArrayLengthMismatch("PutConnectivity", want, len(data))
		}
	}
	v, ok := f.st.Var(naming.VarConnect(class, int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarConnect(class, int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	buf := make([]byte, len(data)*v.Type.Size())
	for i, n := range data {
		putID(buf[i*v.Type.Size():], v.Type, n)
	}
	shape := []int{len(data)}
	if !IsPolyTopology(b.Topology) {
		shape = []int{b.NumEntries, b.NodesPerEntry}
	}
	origin := make([]int, len(shape))
	return wrapBackend(f.st.Write(v, origin, shape, buf))
}

// PutEntryCounts writes the per-entry node/face counts for an NSIDED or
// NFACED block (spec §4.5).
func (f *File) PutEntryCounts(class Class, id EntityID, counts []int64) error {
	b, err := f.Block(class, id)
	if err != nil {
		return err
	}
	if !IsPolyTopology(b.Topology) {
		return errInvalidTopology(b.Topology)
	}
	if len(counts) != b.NumEntries {
		return errArrayLengthMismatch("PutEntryCounts", b.NumEntries, len(counts))
	}
	v, ok := f.st.Var(naming.VarEntryCount(int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarEntryCount(int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	buf := make([]byte, len(counts)*v.Type.Size())
	for i, n := range counts {
		putID(buf[i*v.Type.Size():], v.Type, n)
	}
	return wrapBackend(f.st.Write(v, []int{0}, []int{len(counts)}, buf))
}

// Connectivity reads a block's connectivity back, preserving shape and
// topology (spec §4.5).
func (f *File) Connectivity(class Class, id EntityID) (Connectivity, error) {
	if err := f.ensureReadable(); err != nil {
		return Connectivity{}, err
	}
	b, err := f.Block(class, id)
	if err != nil {
		return Connectivity{}, err
	}
	v, ok := f.st.Var(naming.VarConnect(class, int64(id)))
	if !ok {
		return Connectivity{}, errVariableNotDefined(naming.VarConnect(class, int64(id)))
	}
	out := Connectivity{Topology: b.Topology, NumEntries: b.NumEntries, NodesPerEntry: b.NodesPerEntry}
	var shape []int
	if !IsPolyTopology(b.Topology) {
		shape = []int{b.NumEntries, b.NodesPerEntry}
	} else {
		n, _ := f.st.DimLen(naming.DimNumEntries(class, int64(id)) + "_flat")
		shape = []int{n}
		cv, ok := f.st.Var(naming.VarEntryCount(int64(id)))
		if ok {
			raw, err := f.st.Read(cv, []int{0}, []int{b.NumEntries})
			if err != nil {
				return Connectivity{}, errBackend(err)
			}
			counts := make([]int64, b.NumEntries)
			for i := range counts {
				counts[i] = getID(raw[i*cv.Type.Size():], cv.Type)
			}
			out.EntryCounts = counts
		}
	}
	origin := make([]int, len(shape))
	raw, err := f.st.Read(v, origin, shape)
	if err != nil {
		return Connectivity{}, errBackend(err)
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = getID(raw[i*v.Type.Size():], v.Type)
	}
	out.NodeIDs = ids
	return out, nil
}

// PutBlockAttributes writes the num_attributes x num_entries attribute
// values and the attribute names for a block (spec §4.5).
func (f *File) PutBlockAttributes(class Class, id EntityID, names []string, values []float64) error {
	b, err := f.Block(class, id)
	if err != nil {
		return err
	}
	if len(names) != b.AttributeCount {
		return errArrayLengthMismatch("PutBlockAttributes names", b.AttributeCount, len(names))
	}
	want := b.NumEntries * b.AttributeCount
	if len(values) != want {
		return errArrayLengthMismatch("PutBlockAttributes values", want, len(values))
	}
	av, ok := f.st.Var(naming.VarAttrib(class, int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarAttrib(class, int64(id)))
	}
	nv, ok := f.st.Var(naming.VarAttribName(class, int64(id)))
	if !ok {
		return errVariableNotDefined(naming.VarAttribName(class, int64(id)))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	if err := f.writeFloatSlab(av, []int{0, 0}, []int{b.NumEntries, b.AttributeCount}, values); err != nil {
		return err
	}
	for i, n := range names {
		if len(n) > naming.MaxNameLen {
			n = n[:naming.MaxNameLen]
		}
		buf := make([]byte, naming.LenNameWidth)
		copy(buf, n)
		if err := f.st.Write(nv, []int{i, 0}, []int{1, naming.LenNameWidth}, buf); err != nil {
			return errBackend(err)
		}
	}
	return nil
}

// BlockAttributes reads a block's attribute names and values back.
func (f *File) BlockAttributes(class Class, id EntityID) (names []string, values []float64, err error) {
	if err := f.ensureReadable(); err != nil {
		return nil, nil, err
	}
	b, err := f.Block(class, id)
	if err != nil {
		return nil, nil, err
	}
	if b.AttributeCount == 0 {
		return nil, nil, nil
	}
	av, ok := f.st.Var(naming.VarAttrib(class, int64(id)))
	if !ok {
		return nil, nil, errVariableNotDefined(naming.VarAttrib(class, int64(id)))
	}
	nv, ok := f.st.Var(naming.VarAttribName(class, int64(id)))
	if !ok {
		return nil, nil, errVariableNotDefined(naming.VarAttribName(class, int64(id)))
	}
	values, err = f.readFloatSlab(av, []int{0, 0}, []int{b.NumEntries, b.AttributeCount})
	if err != nil {
		return nil, nil, err
	}
	names = make([]string, b.AttributeCount)
	for i := range names {
		raw, err := f.st.Read(nv, []int{i, 0}, []int{1, naming.LenNameWidth})
		if err != nil {
			return nil, nil, errBackend(err)
		}
		names[i] = cString(raw)
	}
	return names, values, nil
}
