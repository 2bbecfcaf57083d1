// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"reflect"
	"testing"
)

func TestMapIdentityDefault(t *testing.T) {
	f := newMemFile(t)
	got, err := f.Map(NodeMap)
	if err != nil {
		t.Fatalf("Map failed, reason: %v", err)
	}
	want := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Map identity default assertion failed, got %v, want %v", got, want)
	}
}

func TestPutMapNodeMap(t *testing.T) {
	f := newMemFile(t)
	ids := []int64{8, 7, 6, 5, 4, 3, 2, 1}
	if err := f.PutMap(NodeMap, ids); err != nil {
		t.Fatalf("PutMap failed, reason: %v", err)
	}
	got, err := f.Map(NodeMap)
	if err != nil {
		t.Fatalf("Map failed, reason: %v", err)
	}
	if !reflect.DeepEqual(got, ids) {
		t.Fatalf("Map assertion failed, got %v, want %v", got, ids)
	}
}

func TestPutMapElemMapUsesRegisteredBlockTotal(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	if err := f.PutMap(ElemMap, []int64{1, 2}); err == nil {
		t.Fatalf("PutMap: expected length mismatch error, got nil")
	}
	if err := f.PutMap(ElemMap, []int64{42}); err != nil {
		t.Fatalf("PutMap failed, reason: %v", err)
	}
	got, err := f.Map(ElemMap)
	if err != nil {
		t.Fatalf("Map failed, reason: %v", err)
	}
	if !reflect.DeepEqual(got, []int64{42}) {
		t.Fatalf("Map assertion failed, got %v, want [42]", got)
	}
}
