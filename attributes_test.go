// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import "testing"

func TestPutAttributeBlock(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{Class: ElemBlock, ID: 1, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	if err := f.PutAttribute(ElemBlock, 1, "density", 7850.0); err != nil {
		t.Fatalf("PutAttribute failed, reason: %v", err)
	}
	if err := f.PutAttribute(ElemBlock, 1, "material_id", int64(42)); err != nil {
		t.Fatalf("PutAttribute failed, reason: %v", err)
	}

	got, ok, err := f.Attribute(ElemBlock, 1, "density")
	if err != nil {
		t.Fatalf("Attribute failed, reason: %v", err)
	}
	if !ok || got.(float64) != 7850.0 {
		t.Fatalf("Attribute assertion failed, got %v, ok %v", got, ok)
	}

	got, ok, err = f.Attribute(ElemBlock, 1, "material_id")
	if err != nil {
		t.Fatalf("Attribute failed, reason: %v", err)
	}
	if !ok || got.(int64) != 42 {
		t.Fatalf("Attribute assertion failed, got %v, ok %v", got, ok)
	}

	_, ok, err = f.Attribute(ElemBlock, 1, "missing")
	if err != nil {
		t.Fatalf("Attribute failed, reason: %v", err)
	}
	if ok {
		t.Fatalf("Attribute: expected ok=false for unset attribute")
	}
}

func TestPutAttributeUnregisteredEntity(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutAttribute(ElemBlock, 99, "x", int64(1)); err == nil {
		t.Fatalf("PutAttribute: expected error for unregistered entity, got nil")
	}
}
