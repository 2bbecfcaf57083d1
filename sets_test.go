// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import "testing"

func newMemFile(t *testing.T) *File {
	t.Helper()
	f, err := Create("", &Options{InMemory: true})
	if err != nil {
		t.Fatalf("Create(InMemory) failed, reason: %v", err)
	}
	if err := f.Init(InitParams{NumDim: 3, NumNodes: 8, NumElem: 1, NumElemBlock: 1, NumNodeSet: 1, NumSideSet: 1}); err != nil {
		t.Fatalf("Init failed, reason: %v", err)
	}
	return f
}

func TestPutSetNodeSet(t *testing.T) {
	f := newMemFile(t)

	if err := f.PutSet(Set{ID: 10, Class: NodeSet, NumEntries: 4}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}

	got, err := f.Set(NodeSet, 10)
	if err != nil {
		t.Fatalf("Set failed, reason: %v", err)
	}
	if got.NumEntries != 4 {
		t.Fatalf("Set NumEntries assertion failed, got %d, want %d", got.NumEntries, 4)
	}

	members := []int64{1, 2, 3, 4}
	if err := f.PutSetMembers(NodeSet, 10, members); err != nil {
		t.Fatalf("PutSetMembers failed, reason: %v", err)
	}
	back, err := f.SetMembers(NodeSet, 10)
	if err != nil {
		t.Fatalf("SetMembers failed, reason: %v", err)
	}
	for i, m := range members {
		if back[i] != m {
			t.Fatalf("SetMembers[%d] assertion failed, got %d, want %d", i, back[i], m)
		}
	}

	ids, err := f.SetIDs(NodeSet)
	if err != nil {
		t.Fatalf("SetIDs failed, reason: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Fatalf("SetIDs assertion failed, got %v, want [10]", ids)
	}
}

func TestPutSetSideSet(t *testing.T) {
	f := newMemFile(t)

	if err := f.PutSet(Set{ID: 20, Class: SideSet, NumEntries: 3, NumDistFactors: 6}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}

	elems := []int64{1, 1, 1}
	sides := []int64{1, 2, 3}
	if err := f.PutSideSetMembers(20, elems, sides); err != nil {
		t.Fatalf("PutSideSetMembers failed, reason: %v", err)
	}
	gotElems, gotSides, err := f.SideSetMembers(20)
	if err != nil {
		t.Fatalf("SideSetMembers failed, reason: %v", err)
	}
	for i := range elems {
		if gotElems[i] != elems[i] || gotSides[i] != sides[i] {
			t.Fatalf("SideSetMembers[%d] assertion failed, got (%d,%d), want (%d,%d)",
				i, gotElems[i], gotSides[i], elems[i], sides[i])
		}
	}

	df := []float64{1, 1, 1, 1, 1, 1}
	if err := f.PutDistFactors(SideSet, 20, df); err != nil {
		t.Fatalf("PutDistFactors failed, reason: %v", err)
	}
	back, err := f.DistFactors(SideSet, 20)
	if err != nil {
		t.Fatalf("DistFactors failed, reason: %v", err)
	}
	for i, v := range df {
		if back[i] != v {
			t.Fatalf("DistFactors[%d] assertion failed, got %v, want %v", i, back[i], v)
		}
	}
}

func TestPutSetRejectsSideSetMemberWrite(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutSet(Set{ID: 30, Class: SideSet, NumEntries: 2}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}
	if err := f.PutSetMembers(SideSet, 30, []int64{1, 2}); err == nil {
		t.Fatalf("PutSetMembers on SideSet assertion failed, want error, got nil")
	}
}

func TestPutSetDuplicateRejected(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutSet(Set{ID: 40, Class: NodeSet, NumEntries: 1}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}
	if err := f.PutSet(Set{ID: 40, Class: NodeSet, NumEntries: 1}); err == nil {
		t.Fatalf("duplicate PutSet assertion failed, want error, got nil")
	}
}
