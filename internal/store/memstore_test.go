// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package store

import "testing"

func TestMemDimAndVarLifecycle(t *testing.T) {
	m := NewMem()
	if !m.InDefineMode() {
		t.Fatalf("NewMem: expected define mode")
	}
	if err := m.AddDim("x", 4); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	if err := m.AddDim("x", 4); err == nil {
		t.Fatalf("AddDim: expected duplicate-dimension error, got nil")
	}
	v, err := m.AddVar("vals", TypeFloat64, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if _, err := m.AddVar("vals", TypeFloat64, []string{"x"}); err == nil {
		t.Fatalf("AddVar: expected duplicate-variable error, got nil")
	}
	if _, err := m.Read(v, []int{0}, []int{4}); err == nil {
		t.Fatalf("Read: expected define-mode rejection, got nil")
	}
	if err := m.EndDefine(); err != nil {
		t.Fatalf("EndDefine failed, reason: %v", err)
	}
	data := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	if err := m.Write(v, []int{0}, []int{1}, data); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if err := m.ReenterDefine(); err != nil {
		t.Fatalf("ReenterDefine failed, reason: %v", err)
	}
	if err := m.Write(v, []int{0}, []int{1}, data); err == nil {
		t.Fatalf("Write: expected define-mode rejection, got nil")
	}
}

func TestMemUnlimitedDimGrows(t *testing.T) {
	m := NewMem()
	if err := m.AddDim("time_step", 0); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	v, err := m.AddVar("time_whole", TypeFloat64, []string{"time_step"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if err := m.EndDefine(); err != nil {
		t.Fatalf("EndDefine failed, reason: %v", err)
	}
	if err := m.Write(v, []int{0}, []int{1}, []byte{0, 0, 0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if n, _ := m.DimLen("time_step"); n != 1 {
		t.Fatalf("unlimited dim assertion failed, got %d, want 1", n)
	}
	if err := m.Write(v, []int{1}, []int{1}, []byte{0, 0, 0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if n, _ := m.DimLen("time_step"); n != 2 {
		t.Fatalf("unlimited dim assertion failed, got %d, want 2", n)
	}
}

func TestMemAttrs(t *testing.T) {
	m := NewMem()
	if err := m.PutAttr(Global(), "title", "mesh"); err != nil {
		t.Fatalf("PutAttr failed, reason: %v", err)
	}
	v, ok, err := m.GetAttr(Global(), "title")
	if err != nil || !ok || v.(string) != "mesh" {
		t.Fatalf("GetAttr assertion failed, got %v, ok %v, err %v", v, ok, err)
	}
	if err := m.AddDim("x", 1); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	vv, err := m.AddVar("v", TypeInt32, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if err := m.PutAttr(OfVar(vv.Name), "name", "ID"); err != nil {
		t.Fatalf("PutAttr failed, reason: %v", err)
	}
	got, ok, err := m.GetAttr(OfVar(vv.Name), "name")
	if err != nil || !ok || got.(string) != "ID" {
		t.Fatalf("GetAttr assertion failed, got %v, ok %v, err %v", got, ok, err)
	}
	if _, ok, _ := m.GetAttr(OfVar(vv.Name), "missing"); ok {
		t.Fatalf("GetAttr: expected ok=false for unset attribute")
	}
}

func TestMemHyperslabOutOfRange(t *testing.T) {
	m := NewMem()
	if err := m.AddDim("x", 2); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	v, err := m.AddVar("v", TypeInt32, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if err := m.EndDefine(); err != nil {
		t.Fatalf("EndDefine failed, reason: %v", err)
	}
	if err := m.Write(v, []int{1}, []int{2}, []byte{0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatalf("Write: expected out-of-range error, got nil")
	}
}
