// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// attrMarkerFuncs dispatches (class, id) to the name of a backend variable
// that already exists per-entity for that class, giving every attribute a
// scope to hang off without fabricating a throwaway variable per entity.
// Blocks and sets reuse their connectivity/member variable; assemblies and
// blobs reuse their own member/payload variable. This mirrors how
// saferwall-pe's file.go dispatches one ImageDirectoryEntry to one parser
// through a funcMaps table instead of a type switch at every call site.
var attrMarkerFuncs = map[Class]func(id int64) string{
	EdgeBlock: func(id int64) string { return naming.VarConnect(EdgeBlock, id) },
	FaceBlock: func(id int64) string { return naming.VarConnect(FaceBlock, id) },
	ElemBlock: func(id int64) string { return naming.VarConnect(ElemBlock, id) },
	NodeSet:   func(id int64) string { return naming.VarSetMembers(NodeSet, id) },
	EdgeSet:   func(id int64) string { return naming.VarSetMembers(EdgeSet, id) },
	FaceSet:   func(id int64) string { return naming.VarSetMembers(FaceSet, id) },
	ElemSet:   func(id int64) string { return naming.VarSetMembers(ElemSet, id) },
	SideSet:   func(id int64) string { return naming.VarSetElem(id) },
	Assembly:  func(id int64) string { return naming.VarAssemblyMembers(id) },
	Blob:      func(id int64) string { return naming.VarBlobPayload(id) },
}

// attrMarker resolves the backend variable an entity's attributes attach
// to, failing if the entity was never registered.
func (f *File) attrMarker(class Class, id EntityID) (store.Var, error) {
	fn, ok := attrMarkerFuncs[class]
	if !ok {
		return store.Var{}, errInvalidTopology(class.String())
	}
	name := fn(int64(id))
	v, ok := f.st.Var(name)
	if !ok {
		return store.Var{}, errEntityNotFound(class, id)
	}
	return v, nil
}

// PutAttribute attaches a typed, named piece of metadata to a block, set,
// assembly, or blob (spec §4.9): value must be a string, int32, int64, or
// float64, the four types the backing store natively round-trips.
func (f *File) PutAttribute(class Class, id EntityID, name string, value interface{}) error {
	if !f.cap.canWrite() {
		return &Error{Kind: KindWriteOnReadOnly, Message: "PutAttribute requires write capability"}
	}
	switch value.(type) {
	case string, int32, int64, float64:
	default:
		return errArrayLengthMismatch("PutAttribute: unsupported value type", 0, 0)
	}
	v, err := f.attrMarker(class, id)
	if err != nil {
		return err
	}
	return wrapBackend(f.st.PutAttr(store.OfVar(v.Name), name, value))
}

// Attribute reads a named attribute back, reporting false if it was never
// set.
func (f *File) Attribute(class Class, id EntityID, name string) (interface{}, bool, error) {
	v, err := f.attrMarker(class, id)
	if err != nil {
		return nil, false, err
	}
	val, ok, err := f.st.GetAttr(store.OfVar(v.Name), name)
	if err != nil {
		return nil, false, errBackend(err)
	}
	return val, ok, nil
}
