// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import "github.com/exodus-go/exodus/internal/store"

// layout is the auto-detected storage layout for a block/set-bearing
// entity class (spec §3): None (no variables of this class), Separate
// (one backend variable per variable-index/entity pair), or Combined (one
// 3-D variable per class). Global is always Combined.
type layout int

const (
	layoutNone layout = iota
	layoutSeparate
	layoutCombined
)

func (l layout) String() string {
	switch l {
	case layoutSeparate:
		return "Separate"
	case layoutCombined:
		return "Combined"
	default:
		return "None"
	}
}

type entityKey struct {
	class Class
	id    EntityID
}

// metaCache is the file handle's lookup of entity registrations, variable
// catalogs, truth tables, and detected storage layout (spec §2 component
// 3). It is owned by, and lives exactly as long as, the file handle.
// Registrations are added entry by entry as entities are written (or
// recovered by rebuildCache on open); the detected storage layouts are
// dropped and re-probed on every define->data transition (see
// ensureDataMode), probing being a total function rather than a
// catch-and-retry path (§9, "Storage-layout detection").
type metaCache struct {
	init    *InitParams
	initSet bool

	// order gives each class's entities stable 0-based index positions in
	// insertion order, and index maps (class, id) back to that position;
	// this is also the order the property table and truth-table rows use.
	order map[Class][]EntityID
	index map[entityKey]int

	blocks     map[entityKey]*Block
	sets       map[entityKey]*Set
	assemblies map[EntityID]*AssemblyGroup
	blobs      map[EntityID]*BlobRecord

	coordNames [3]string

	varNames map[Class][]string
	layouts  map[Class]layout
	// truth[class][entityIdx][varIdx]
	truth map[Class][][]bool
	// maxStep is the highest time step index (1-based) written so far, 0
	// if none.
	maxStep int

	idMaps map[Class][]int64 // explicit ID map per map-bearing class, if any

	// propNames holds each class's property names beyond the implicit
	// "ID" at property-table index 1, in the order they were added;
	// that order is the property-table index (2, 3, ...) each one lives
	// at.
	propNames map[Class][]string

	qaPending   [][4]string
	infoPending []string
	qaVar       *store.Var
	infoVar     *store.Var

	pendingVarNameVar []pendingVarNames
}

func newMetaCache() *metaCache {
	return &metaCache{
		order:      make(map[Class][]EntityID),
		index:      make(map[entityKey]int),
		blocks:     make(map[entityKey]*Block),
		sets:       make(map[entityKey]*Set),
		assemblies: make(map[EntityID]*AssemblyGroup),
		blobs:      make(map[EntityID]*BlobRecord),
		varNames:   make(map[Class][]string),
		layouts:    make(map[Class]layout),
		truth:      make(map[Class][][]bool),
		idMaps:     make(map[Class][]int64),
		propNames:  make(map[Class][]string),
	}
}

// invalidate drops everything, resetting the cache to its empty state.
func (m *metaCache) invalidate() {
	*m = *newMetaCache()
}

func (m *metaCache) registerEntity(c Class, id EntityID) int {
	k := entityKey{c, id}
	if idx, ok := m.index[k]; ok {
		return idx
	}
	idx := len(m.order[c])
	m.order[c] = append(m.order[c], id)
	m.index[k] = idx
	return idx
}

func (m *metaCache) entityIndex(c Class, id EntityID) (int, bool) {
	idx, ok := m.index[entityKey{c, id}]
	return idx, ok
}

func (m *metaCache) entityCount(c Class) int {
	return len(m.order[c])
}
