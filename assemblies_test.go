// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"reflect"
	"testing"
)

func newAssemblyFile(t *testing.T) *File {
	t.Helper()
	f, err := Create("", &Options{InMemory: true})
	if err != nil {
		t.Fatalf("Create(InMemory) failed, reason: %v", err)
	}
	if err := f.Init(InitParams{NumDim: 3, NumNodes: 8, NumElem: 2, NumElemBlock: 1, NumAssembly: 2}); err != nil {
		t.Fatalf("Init failed, reason: %v", err)
	}
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 2, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	return f
}

func TestPutAssembly(t *testing.T) {
	f := newAssemblyFile(t)
	a := AssemblyGroup{ID: 10, Name: "left_wing", MemberClass: ElemBlock, MemberIDs: []int64{1}}
	if err := f.PutAssembly(a); err != nil {
		t.Fatalf("PutAssembly failed, reason: %v", err)
	}
	got, err := f.Assembly(10)
	if err != nil {
		t.Fatalf("Assembly failed, reason: %v", err)
	}
	if got.Name != "left_wing" || got.MemberClass != ElemBlock || !reflect.DeepEqual(got.MemberIDs, []int64{1}) {
		t.Fatalf("Assembly assertion failed, got %+v", got)
	}
}

func TestPutAssemblyDuplicateRejected(t *testing.T) {
	f := newAssemblyFile(t)
	a := AssemblyGroup{ID: 10, Name: "left_wing", MemberClass: ElemBlock, MemberIDs: []int64{1}}
	if err := f.PutAssembly(a); err != nil {
		t.Fatalf("PutAssembly failed, reason: %v", err)
	}
	if err := f.PutAssembly(a); err == nil {
		t.Fatalf("PutAssembly: expected duplicate rejection, got nil")
	}
}

func TestPutAssemblyExceedsCount(t *testing.T) {
	f := newAssemblyFile(t)
	a1 := AssemblyGroup{ID: 10, Name: "a1", MemberClass: ElemBlock, MemberIDs: []int64{1}}
	a2 := AssemblyGroup{ID: 11, Name: "a2", MemberClass: ElemBlock, MemberIDs: []int64{1}}
	a3 := AssemblyGroup{ID: 12, Name: "a3", MemberClass: ElemBlock, MemberIDs: []int64{1}}
	if err := f.PutAssembly(a1); err != nil {
		t.Fatalf("PutAssembly failed, reason: %v", err)
	}
	if err := f.PutAssembly(a2); err != nil {
		t.Fatalf("PutAssembly failed, reason: %v", err)
	}
	if err := f.PutAssembly(a3); err == nil {
		t.Fatalf("PutAssembly: expected count-exceeded error, got nil")
	}
}
