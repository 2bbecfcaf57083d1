// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package naming centralizes the Exodus II dimension, variable, and
// attribute names: callers ask for a name by entity class and index and
// get back the exact string the reference C library would have used, the
// same way saferwall/pe centralizes every ImageXxx magic and flag constant
// instead of letting each parser hand-roll hex literals. Two names are
// spelled outside this package: the per-class count dimensions
// (num_el_blk, num_node_sets, ...) in the root package's classCountDim,
// and the NSIDED/NFACED flat connectivity dimension, which PutBlock forms
// by appending "_flat" to the block's entries dimension.
package naming

import "fmt"

// Class is one of the fixed Exodus II entity classes (spec §3).
type Class int

const (
	Nodal Class = iota
	Global
	EdgeBlock
	FaceBlock
	ElemBlock
	NodeSet
	EdgeSet
	FaceSet
	SideSet
	ElemSet
	NodeMap
	EdgeMap
	FaceMap
	ElemMap
	Assembly
	Blob
)

// String returns the class's canonical short name.
func (c Class) String() string {
	switch c {
	case Nodal:
		return "Nodal"
	case Global:
		return "Global"
	case EdgeBlock:
		return "EdgeBlock"
	case FaceBlock:
		return "FaceBlock"
	case ElemBlock:
		return "ElemBlock"
	case NodeSet:
		return "NodeSet"
	case EdgeSet:
		return "EdgeSet"
	case FaceSet:
		return "FaceSet"
	case SideSet:
		return "SideSet"
	case ElemSet:
		return "ElemSet"
	case NodeMap:
		return "NodeMap"
	case EdgeMap:
		return "EdgeMap"
	case FaceMap:
		return "FaceMap"
	case ElemMap:
		return "ElemMap"
	case Assembly:
		return "Assembly"
	case Blob:
		return "Blob"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// clsSuffix is the short variable/attribute-name infix the Exodus II format
// uses per entity class, e.g. "eb" for element blocks, "ns" for node sets.
// Entity classes with no block/set variable surface (Nodal, Global,
// Assembly, Blob) are not addressed through this table.
var clsSuffix = map[Class]string{
	EdgeBlock: "ed",
	FaceBlock: "fa",
	ElemBlock: "eb",
	NodeSet:   "ns",
	EdgeSet:   "es",
	FaceSet:   "fs",
	SideSet:   "ss",
	ElemSet:   "els",
}

// varInfix is the "_cls_var" infix used for per-class variable catalogs and
// value arrays, e.g. "nod" for nodal, "glo" for global, "elem" for element
// blocks.
var varInfix = map[Class]string{
	Nodal:     "nod",
	Global:    "glo",
	EdgeBlock: "edge",
	FaceBlock: "face",
	ElemBlock: "elem",
	NodeSet:   "nset",
	EdgeSet:   "eset",
	FaceSet:   "fset",
	SideSet:   "sset",
	ElemSet:   "elset",
}

// Suffix returns the short class infix ("eb", "ns", ...) used in
// per-block/per-set dimension and variable names. Panics on classes with no
// block/set surface: a programming error, never a runtime condition since
// callers only reach this through the typed block/set APIs.
func Suffix(c Class) string {
	s, ok := clsSuffix[c]
	if !ok {
		panic("naming: class " + c.String() + " has no block/set suffix")
	}
	return s
}

// HasEntries reports whether a class is block/set-bearing, i.e. has member
// dimensions, property tables, and per-entity variables (as opposed to
// Nodal/Global which are mesh-wide, or Assembly/Blob which are not
// block/set entities).
func HasEntries(c Class) bool {
	_, ok := clsSuffix[c]
	return ok
}

// ---- Global attributes (§6) ----

const (
	AttrAPIVersion  = "api_version"
	AttrVersion     = "version"
	AttrWordSize    = "floating_point_word_size"
	AttrFileSize    = "file_size"
	AttrTitle       = "title"
	AttrMaxNameLen  = "maximum_name_length"
	AttrIntWordSize = "int64_status"
)

// ---- Fixed dimensions (§6) ----

const (
	DimNumDim     = "num_dim"
	DimNumNodes   = "num_nodes"
	DimNumElem    = "num_elem"
	DimTimeStep   = "time_step"
	DimLenString  = "len_string"
	DimLenLine    = "len_line"
	DimLenName    = "len_name"
	DimFourBytes  = "four"
	DimNumQARec   = "num_qa_rec"
	DimNumInfo    = "num_info"
	DimNumAssembly = "num_assembly"
	DimNumBlob    = "num_blob"

	LenStringWidth = 33
	LenLineWidth   = 81
	LenNameWidth   = 33
	MaxLineLen     = 80
	MaxNameLen     = 32
	MaxQAFieldLen  = 32
)

// ---- Per-class member-count dimension, e.g. num_el_in_blk100 ----

// DimNumEntries is the member-count dimension name for a block or set:
// num_el_in_blk{id} / num_ed_in_edblk{id} / num_fa_in_fablk{id} /
// num_nod_ns{id} / num_ed_es{id} / num_fa_fs{id} / num_side_ss{id} /
// num_el_els{id}.
func DimNumEntries(c Class, id int64) string {
	switch c {
	case ElemBlock:
		return fmt.Sprintf("num_el_in_blk%d", id)
	case EdgeBlock:
		return fmt.Sprintf("num_ed_in_edblk%d", id)
	case FaceBlock:
		return fmt.Sprintf("num_fa_in_fablk%d", id)
	case NodeSet:
		return fmt.Sprintf("num_nod_ns%d", id)
	case EdgeSet:
		return fmt.Sprintf("num_ed_es%d", id)
	case FaceSet:
		return fmt.Sprintf("num_fa_fs%d", id)
	case SideSet:
		return fmt.Sprintf("num_side_ss%d", id)
	case ElemSet:
		return fmt.Sprintf("num_el_els%d", id)
	default:
		panic("naming: " + c.String() + " has no member-count dimension")
	}
}

// DimNumNodesPerEntry is the per-entry node-count dimension for a block:
// num_nod_per_el{id} / num_nod_per_ed{id} / num_nod_per_fa{id}.
func DimNumNodesPerEntry(c Class, id int64) string {
	switch c {
	case ElemBlock:
		return fmt.Sprintf("num_nod_per_el%d", id)
	case EdgeBlock:
		return fmt.Sprintf("num_nod_per_ed%d", id)
	case FaceBlock:
		return fmt.Sprintf("num_nod_per_fa%d", id)
	default:
		panic("naming: " + c.String() + " has no connectivity")
	}
}

// DimNumAttrPerEntry is the per-block attribute-count dimension:
// num_att_in_blk{id} (and edge/face analogues).
func DimNumAttrPerEntry(c Class, id int64) string {
	switch c {
	case ElemBlock:
		return fmt.Sprintf("num_att_in_blk%d", id)
	case EdgeBlock:
		return fmt.Sprintf("num_att_in_ed%d", id)
	case FaceBlock:
		return fmt.Sprintf("num_att_in_fa%d", id)
	default:
		panic("naming: " + c.String() + " has no attributes")
	}
}

// VarConnect is the connectivity variable name: connect{id} (and
// econnect{id}/fconnect{id} for edge/face blocks).
func VarConnect(c Class, id int64) string {
	switch c {
	case ElemBlock:
		return fmt.Sprintf("connect%d", id)
	case EdgeBlock:
		return fmt.Sprintf("econnect%d", id)
	case FaceBlock:
		return fmt.Sprintf("fconnect%d", id)
	default:
		panic("naming: " + c.String() + " has no connectivity")
	}
}

// VarEntryCount is the NSIDED/NFACED auxiliary per-entry node/face count
// array: ebepecnt{id}.
func VarEntryCount(id int64) string { return fmt.Sprintf("ebepecnt%d", id) }

// AttrElemType is the attribute name carrying a block's topology string.
const AttrElemType = "elem_type"

// VarPropTable is the property-table variable for a class's first ("ID")
// property and onward: eb_prop1, ns_prop1, ss_prop1, and so on. Index is
// 1-based as in the format.
func VarPropTable(c Class, idx int) string {
	return fmt.Sprintf("%s_prop%d", Suffix(c), idx)
}

// VarAttrib is the per-block/per-set attribute value array: attrib{id}
// (elem), eattrib{id} (edge), fattrib{id} (face).
func VarAttrib(c Class, id int64) string {
	switch c {
	case ElemBlock:
		return fmt.Sprintf("attrib%d", id)
	case EdgeBlock:
		return fmt.Sprintf("eattrib%d", id)
	case FaceBlock:
		return fmt.Sprintf("fattrib%d", id)
	default:
		panic("naming: " + c.String() + " has no attributes")
	}
}

// VarAttribName is the per-block attribute-name matrix: attrib_name{id}.
func VarAttribName(c Class, id int64) string {
	return fmt.Sprintf("%sattrib_name%d", blockPrefix(c), id)
}

func blockPrefix(c Class) string {
	switch c {
	case ElemBlock:
		return ""
	case EdgeBlock:
		return "e"
	case FaceBlock:
		return "f"
	default:
		panic("naming: " + c.String() + " has no attributes")
	}
}

// ---- Set member variables (§4.6) ----

// VarSetMembers is the member-list variable for a set: node_ns{id},
// {cls}{id} for edge/face/elem sets. SideSet uses VarSetElem/VarSetSide
// instead.
func VarSetMembers(c Class, id int64) string {
	switch c {
	case NodeSet:
		return fmt.Sprintf("node_ns%d", id)
	case EdgeSet:
		return fmt.Sprintf("edge_es%d", id)
	case FaceSet:
		return fmt.Sprintf("face_fs%d", id)
	case ElemSet:
		return fmt.Sprintf("elem_els%d", id)
	default:
		panic("naming: " + c.String() + " has no flat member list")
	}
}

// VarSetElem and VarSetSide are the parallel element-id/local-side-number
// arrays for a side set.
func VarSetElem(id int64) string { return fmt.Sprintf("elem_ss%d", id) }
func VarSetSide(id int64) string { return fmt.Sprintf("side_ss%d", id) }

// VarDistFact is the optional distribution-factor array for any set class.
func VarDistFact(c Class, id int64) string {
	return fmt.Sprintf("dist_fact_%s%d", Suffix(c), id)
}

// DimNumDistFact is the distribution-factor count dimension.
func DimNumDistFact(c Class, id int64) string {
	return fmt.Sprintf("num_df_%s%d", Suffix(c), id)
}

// ---- Combined-layout total-width dimensions (§4.7) ----

// DimClassTotal is the dimension backing a class's Combined-layout value
// variable width: the mesh-wide node/element count for Nodal/ElemBlock
// (reusing num_nodes/num_elem, exactly as the reference format does), and a
// dedicated running total for edge/face blocks and every set class, which
// have no other mesh-wide count dimension to reuse.
func DimClassTotal(c Class) string {
	switch c {
	case Nodal:
		return DimNumNodes
	case ElemBlock:
		return DimNumElem
	default:
		return fmt.Sprintf("num_%s_all", varInfix[c])
	}
}

// ---- Variable catalog & time (§4.7) ----

// DimNumVar is the per-class variable-count dimension: num_nod_var,
// num_glo_var, num_elem_var, and so on.
func DimNumVar(c Class) string { return fmt.Sprintf("num_%s_var", varInfix[c]) }

// VarNameTable is the 2-D name matrix for a class's variable catalog:
// name_nod_var, name_glo_var, name_elem_var, ...
func VarNameTable(c Class) string { return fmt.Sprintf("name_%s_var", varInfix[c]) }

// VarTimeWhole is the unlimited time-step coordinate variable.
const VarTimeWhole = "time_whole"

// VarValsCombined is the combined-layout value variable for a class: one
// backend variable per class, shape (time_step, num_{cls}_var, entries).
func VarValsCombined(c Class) string { return fmt.Sprintf("vals_%s_var", varInfix[c]) }

// VarValsSeparate is the separate-layout value variable for one
// (variable-index, block/entity) pair: vals_{cls}_var{v} for Nodal/Global,
// vals_{cls}_var{v}eb{blk} for block-bearing classes (1-based v and blk).
func VarValsSeparate(c Class, v int, blockIdx int) string {
	if !HasEntries(c) {
		return fmt.Sprintf("vals_%s_var%d", varInfix[c], v)
	}
	return fmt.Sprintf("vals_%s_var%d%s%d", varInfix[c], v, Suffix(c), blockIdx)
}

// VarTruthTableDoc records that a truth table is not a backend variable:
// truth tables are carried purely
// in the metadata cache and never persisted as a named array themselves;
// the existing separate/combined value variables already encode which
// slots are materialized. Kept here as a doc anchor only.
const VarTruthTableDoc = "(truth table has no dedicated backend variable; see cache.go)"

// ---- Coordinates (§4.4) ----

var coordVarNames = [3]string{"coordx", "coordy", "coordz"}

// VarCoord returns coordx/coordy/coordz for axis 0/1/2.
func VarCoord(axis int) string { return coordVarNames[axis] }

// VarCoordNames is the coordinate-name matrix (defaults to x, y, z).
const VarCoordNames = "coor_names"

// ---- QA / info records (§4.3) ----

const (
	DimNumQA    = DimNumQARec
	VarQARecord = "qa_records"
	VarInfo     = "info_records"
)

// ---- Maps (§4.9) ----

// VarMap is the optional ID-map variable for a map-bearing class:
// elem_num_map, node_num_map, edge_num_map, face_num_map (no index suffix:
// a file has at most one map per class).
func VarMap(c Class) string {
	switch c {
	case NodeMap:
		return "node_num_map"
	case EdgeMap:
		return "edge_num_map"
	case FaceMap:
		return "face_num_map"
	case ElemMap:
		return "elem_num_map"
	default:
		panic("naming: " + c.String() + " is not a map class")
	}
}

// ---- Names (§4.9) ----

// VarEntityNames is the 2-D name matrix for block/set/assembly/blob
// instance names: eb_names, ns_names, ss_names, ..., and (since Assembly
// and Blob have no block/set suffix) assembly_names/blob_names.
func VarEntityNames(c Class) string {
	switch c {
	case Assembly:
		return "assembly_names"
	case Blob:
		return "blob_names"
	default:
		return fmt.Sprintf("%s_names", Suffix(c))
	}
}

// ---- Properties (§4.9) ----

// PropNameAttr is the attribute carrying a property's name. Property names
// have no separate table in the format: property values live directly in
// the eb_prop{n}/ns_prop{n}/... variables whose own "name" attribute
// carries the property's name. PutProperty and ensurePropTable write that
// attribute; rebuildPropertyNames reads it back on reopen.
const PropNameAttr = "name"

// ---- Assemblies & blobs (§4.9) ----

func DimNumAssemblyEntries(id int64) string { return fmt.Sprintf("num_assembly_%d", id) }
func DimNumBlobEntries(id int64) string     { return fmt.Sprintf("num_blob_%d", id) }
func AttrAssemblyMemberClass(id int64) string { return fmt.Sprintf("assembly_member_class_%d", id) }
func VarAssemblyMembers(id int64) string    { return fmt.Sprintf("assembly_%d", id) }
func VarBlobPayload(id int64) string        { return fmt.Sprintf("blob_%d", id) }

// VarAssemblyIDTable and VarBlobIDTable hold each assembly/blob's ID in
// registration order, the same role VarPropTable(c, 1) plays for
// block/set classes. Assembly and Blob have no clsSuffix entry, so they
// get their own fixed name rather than going through Suffix.
const (
	VarAssemblyIDTable = "assembly_prop1"
	VarBlobIDTable     = "blob_prop1"
)
