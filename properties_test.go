// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"reflect"
	"testing"
)

func TestPutPropertyAndRead(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}

	if err := f.PutProperty(ElemBlock, "MAT", []int64{7, 9}); err == nil {
		t.Fatalf("PutProperty: expected length mismatch error, got nil")
	}
	if err := f.PutProperty(ElemBlock, "MAT", []int64{7}); err != nil {
		t.Fatalf("PutProperty failed, reason: %v", err)
	}
	if err := f.PutProperty(ElemBlock, "ID", []int64{1}); err == nil {
		t.Fatalf("PutProperty: expected reserved-name error for ID, got nil")
	}

	got, err := f.Property(ElemBlock, "MAT")
	if err != nil {
		t.Fatalf("Property failed, reason: %v", err)
	}
	want := []int64{7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Property assertion failed, got %v, want %v", got, want)
	}

	ids, err := f.Property(ElemBlock, "ID")
	if err != nil {
		t.Fatalf("Property(ID) failed, reason: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1}) {
		t.Fatalf("Property(ID) assertion failed, got %v, want [1]", ids)
	}

	names := f.PropertyNames(ElemBlock)
	wantNames := []string{"ID", "MAT"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Fatalf("PropertyNames assertion failed, got %v, want %v", names, wantNames)
	}

	if _, err := f.Property(ElemBlock, "MISSING"); err == nil {
		t.Fatalf("Property: expected error for undefined property, got nil")
	}
}

func TestPutPropertySecondIndex(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutSet(Set{Class: NodeSet, ID: 5, NumEntries: 3}); err != nil {
		t.Fatalf("PutSet failed, reason: %v", err)
	}
	if err := f.PutProperty(NodeSet, "FACE_NORMAL", []int64{1}); err != nil {
		t.Fatalf("PutProperty failed, reason: %v", err)
	}
	if err := f.PutProperty(NodeSet, "COLOR", []int64{2}); err != nil {
		t.Fatalf("PutProperty failed, reason: %v", err)
	}
	got, err := f.Property(NodeSet, "COLOR")
	if err != nil {
		t.Fatalf("Property failed, reason: %v", err)
	}
	if !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("Property assertion failed, got %v", got)
	}
}
