// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import "github.com/exodus-go/exodus/internal/naming"

// Class is one of the fixed Exodus II entity classes (spec §3). It is the
// exported alias of the naming package's canonical class enum: there is
// exactly one definition of "what the entity classes are and what they're
// called on disk", and it lives in internal/naming.
type Class = naming.Class

const (
	Nodal     = naming.Nodal
	Global    = naming.Global
	EdgeBlock = naming.EdgeBlock
	FaceBlock = naming.FaceBlock
	ElemBlock = naming.ElemBlock
	NodeSet   = naming.NodeSet
	EdgeSet   = naming.EdgeSet
	FaceSet   = naming.FaceSet
	SideSet   = naming.SideSet
	ElemSet   = naming.ElemSet
	NodeMap   = naming.NodeMap
	EdgeMap   = naming.EdgeMap
	FaceMap   = naming.FaceMap
	ElemMap   = naming.ElemMap
	Assembly  = naming.Assembly
	Blob      = naming.Blob
)

// EntityID is a user-defined, signed 64-bit identifier, unique within its
// class (spec §3).
type EntityID int64

// InitParams are the mesh-wide parameters written exactly once by Init
// (spec §4.3). Counts default to zero; a class with a zero count has no
// dimension created for it.
type InitParams struct {
	Title   string // truncated to naming.MaxLineLen, no error.
	NumDim  int    // 1, 2, or 3.
	NumNodes int
	NumElem  int

	NumEdgeBlock, NumFaceBlock, NumElemBlock int
	NumNodeSet, NumEdgeSet, NumFaceSet, NumSideSet, NumElemSet int
	NumNodeMap, NumEdgeMap, NumFaceMap, NumElemMap int
	NumAssembly, NumBlob int
}

// countFor returns the class's mesh-wide member count for dimension
// creation purposes (spec §4.3: per-class count dimensions are created
// only when non-zero).
func (p InitParams) countFor(c Class) int {
	switch c {
	case EdgeBlock:
		return p.NumEdgeBlock
	case FaceBlock:
		return p.NumFaceBlock
	case ElemBlock:
		return p.NumElemBlock
	case NodeSet:
		return p.NumNodeSet
	case EdgeSet:
		return p.NumEdgeSet
	case FaceSet:
		return p.NumFaceSet
	case SideSet:
		return p.NumSideSet
	case ElemSet:
		return p.NumElemSet
	case NodeMap:
		return p.NumNodeMap
	case EdgeMap:
		return p.NumEdgeMap
	case FaceMap:
		return p.NumFaceMap
	case ElemMap:
		return p.NumElemMap
	case Assembly:
		return p.NumAssembly
	case Blob:
		return p.NumBlob
	default:
		return 0
	}
}

// Block describes a single element/edge/face block (spec §3). Topology is
// a canonical string such as "HEX8", "QUAD4", "TET10", "NSIDED", "NFACED".
type Block struct {
	ID             EntityID
	Class          Class // EdgeBlock, FaceBlock, or ElemBlock.
	Topology       string
	NumEntries     int
	NodesPerEntry  int
	EdgesPerEntry  int
	FacesPerEntry  int
	AttributeCount int
}

// Set describes a single set entity (spec §3). NodeSet stores a node
// list; SideSet stores parallel element-id/local-side-number arrays; other
// set classes store a flat entity list.
type Set struct {
	ID             EntityID
	Class          Class
	NumEntries     int
	NumDistFactors int
}

// Connectivity is the flat per-block connectivity array returned by reads,
// preserving the shape and topology needed for structured iteration
// (spec §4.5).
type Connectivity struct {
	Topology      string
	NumEntries    int
	NodesPerEntry int
	// NodeIDs is the flat NumEntries*NodesPerEntry array (1-based node
	// indices unless an ID map overrides them). For NSIDED/NFACED blocks
	// NodeIDs is the ragged flat array, NodesPerEntry is the value the
	// block was registered with (0 after a reopen), and EntryCounts gives
	// the per-entry count.
	NodeIDs     []int64
	EntryCounts []int64
}

// topologyNodeCount is a total function from topology to expected
// node-per-entry count, except for NSIDED/NFACED/custom topologies which
// carry a per-entry count array instead (spec §3).
var topologyNodeCount = map[string]int{
	"SPHERE":  1,
	"BAR2":    2,
	"BEAM2":   2,
	"TRUSS2":  2,
	"BAR3":    3,
	"TRI3":    3,
	"TRIANGLE": 3,
	"TRI6":    6,
	"QUAD4":   4,
	"SHELL4":  4,
	"QUAD8":   8,
	"QUAD9":   9,
	"TET4":    4,
	"TETRA":   4,
	"TET10":   10,
	"TET14":   14,
	"WEDGE6":  6,
	"WEDGE15": 15,
	"PYRAMID5": 5,
	"PYRAMID13": 13,
	"HEX8":    8,
	"HEX20":   20,
	"HEX27":   27,
}

// TopologyNodeCount returns the expected node-per-entry count for a
// canonical topology string, and false for NSIDED/NFACED/custom
// topologies where the count is not a total function of the name alone.
func TopologyNodeCount(topology string) (int, bool) {
	n, ok := topologyNodeCount[topology]
	return n, ok
}

// IsPolyTopology reports whether topology is the NSIDED (face-in-2D /
// polygon) or NFACED (polyhedron) family that carries an explicit
// per-entry count array instead of a fixed node count.
func IsPolyTopology(topology string) bool {
	return topology == "NSIDED" || topology == "NFACED"
}
