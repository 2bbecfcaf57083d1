// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"
)

// TestCreateCloseOpenRoundTrip exercises a real disk file through Create,
// populate, Close, then Open: every entity-indexed lookup the cache owns
// (blocks, sets, properties, names, assemblies, blobs) must come back
// exactly as written, not just what a same-process OpenMem would already
// see from its unflushed writes.
func TestCreateCloseOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.exo")

	f, err := Create(path, nil)
	if err != nil {
		t.Fatalf("Create failed, reason: %v", err)
	}
	if err := f.Init(InitParams{
		NumDim: 3, NumNodes: 8, NumElem: 1, NumElemBlock: 1,
		NumNodeSet: 1, NumAssembly: 1, NumBlob: 1,
	}); err != nil {
		t.Fatalf("Init failed, reason: %v", err)
	}
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	if err := f.PutSet(Set{Class: NodeSet, ID: 10, NumEntries: 4}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}
	if err := f.PutProperty(ElemBlock, "MAT", []int64{7}); err != nil {
		t.Fatalf("PutProperty failed, reason: %v", err)
	}
	if err := f.PutEntityNames(ElemBlock, []string{"steel_block"}); err != nil {
		t.Fatalf("PutEntityNames failed, reason: %v", err)
	}
	if err := f.PutAssembly(AssemblyGroup{ID: 20, Name: "left_wing", MemberClass: ElemBlock, MemberIDs: []int64{1}}); err != nil {
		t.Fatalf("PutAssembly failed, reason: %v", err)
	}
	payload := []byte("checkpoint-0001")
	if err := f.PutBlob(BlobRecord{ID: 30, Name: "restart", Payload: payload}); err != nil {
		t.Fatalf("PutBlob failed, reason: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed, reason: %v", err)
	}

	r, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed, reason: %v", err)
	}
	defer r.Close()

	p, err := r.InitParams()
	if err != nil {
		t.Fatalf("InitParams failed, reason: %v", err)
	}
	if p.NumElemBlock != 1 || p.NumNodeSet != 1 {
		t.Fatalf("InitParams assertion failed, got %+v", p)
	}

	block, err := r.Block(ElemBlock, 1)
	if err != nil {
		t.Fatalf("Block failed, reason: %v", err)
	}
	if block.Topology != "HEX8" || block.NumEntries != 1 || block.NodesPerEntry != 8 {
		t.Fatalf("Block assertion failed, got %+v", block)
	}

	set, err := r.Set(NodeSet, 10)
	if err != nil {
		t.Fatalf("Set failed, reason: %v", err)
	}
	if set.NumEntries != 4 {
		t.Fatalf("Set assertion failed, got %+v", set)
	}

	ids, err := r.SetIDs(NodeSet)
	if err != nil {
		t.Fatalf("SetIDs failed, reason: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Fatalf("SetIDs assertion failed, got %v, want [10]", ids)
	}

	mat, err := r.Property(ElemBlock, "MAT")
	if err != nil {
		t.Fatalf("Property failed, reason: %v", err)
	}
	if !reflect.DeepEqual(mat, []int64{7}) {
		t.Fatalf("Property assertion failed, got %v, want [7]", mat)
	}
	wantNames := []string{"ID", "MAT"}
	if got := r.PropertyNames(ElemBlock); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("PropertyNames assertion failed, got %v, want %v", got, wantNames)
	}

	names, err := r.EntityNames(ElemBlock)
	if err != nil {
		t.Fatalf("EntityNames failed, reason: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"steel_block"}) {
		t.Fatalf("EntityNames assertion failed, got %v, want [steel_block]", names)
	}

	asm, err := r.Assembly(20)
	if err != nil {
		t.Fatalf("Assembly failed, reason: %v", err)
	}
	if asm.Name != "left_wing" || asm.MemberClass != ElemBlock || !reflect.DeepEqual(asm.MemberIDs, []int64{1}) {
		t.Fatalf("Assembly assertion failed, got %+v", asm)
	}

	blob, err := r.Blob(30)
	if err != nil {
		t.Fatalf("Blob failed, reason: %v", err)
	}
	if blob.Name != "restart" || !bytes.Equal(blob.Payload, payload) {
		t.Fatalf("Blob assertion failed, got %+v", blob)
	}
}
