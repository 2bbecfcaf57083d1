// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"reflect"
	"testing"
)

func TestEntityNamesDefaultEmpty(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	names, err := f.EntityNames(ElemBlock)
	if err != nil {
		t.Fatalf("EntityNames failed, reason: %v", err)
	}
	if !reflect.DeepEqual(names, []string{""}) {
		t.Fatalf("EntityNames default assertion failed, got %v, want [\"\"]", names)
	}
}

func TestPutEntityNames(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	if err := f.PutEntityNames(ElemBlock, []string{"bad", "names"}); err == nil {
		t.Fatalf("PutEntityNames: expected length mismatch error, got nil")
	}
	if err := f.PutEntityNames(ElemBlock, []string{"steel_block"}); err != nil {
		t.Fatalf("PutEntityNames failed, reason: %v", err)
	}
	got, err := f.EntityNames(ElemBlock)
	if err != nil {
		t.Fatalf("EntityNames failed, reason: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"steel_block"}) {
		t.Fatalf("EntityNames assertion failed, got %v, want [steel_block]", got)
	}
}
