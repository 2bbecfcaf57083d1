// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package store

import (
	"path/filepath"
	"testing"
)

func TestFileCreateWriteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.exostor")

	f, err := Create(path, false)
	if err != nil {
		t.Fatalf("Create failed, reason: %v", err)
	}
	if err := f.AddDim("x", 3); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	v, err := f.AddVar("coordx", TypeFloat64, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if err := f.PutAttr(Global(), "title", "round trip"); err != nil {
		t.Fatalf("PutAttr failed, reason: %v", err)
	}
	if err := f.EndDefine(); err != nil {
		t.Fatalf("EndDefine failed, reason: %v", err)
	}
	data := make([]byte, 3*8)
	for i := 0; i < 3; i++ {
		data[i*8] = byte(i + 1)
	}
	if err := f.Write(v, []int{0}, []int{3}, data); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed, reason: %v", err)
	}

	reopened, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open failed, reason: %v", err)
	}
	defer reopened.Close()

	if n, ok := reopened.DimLen("x"); !ok || n != 3 {
		t.Fatalf("DimLen assertion failed, got %d, ok %v, want 3, true", n, ok)
	}
	rv, ok := reopened.Var("coordx")
	if !ok {
		t.Fatalf("Var: coordx not found after reopen")
	}
	got, err := reopened.Read(rv, []int{0}, []int{3})
	if err != nil {
		t.Fatalf("Read failed, reason: %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("Read length assertion failed, got %d, want %d", len(got), len(data))
	}
	for i := range got {
		if got[i] != data[i] {
			t.Fatalf("Read byte %d assertion failed, got %d, want %d", i, got[i], data[i])
		}
	}
	title, ok, err := reopened.GetAttr(Global(), "title")
	if err != nil || !ok || title.(string) != "round trip" {
		t.Fatalf("GetAttr assertion failed, got %v, ok %v, err %v", title, ok, err)
	}
}

func TestFileCompressedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compressed.exostor")

	f, err := Create(path, false)
	if err != nil {
		t.Fatalf("Create failed, reason: %v", err)
	}
	if err := f.AddDim("x", 4); err != nil {
		t.Fatalf("AddDim failed, reason: %v", err)
	}
	v, err := f.AddVar("vals", TypeInt32, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar failed, reason: %v", err)
	}
	if err := f.SetFilter(v, Compression{Kind: CompressionGzip, Level: 6}); err != nil {
		t.Fatalf("SetFilter failed, reason: %v", err)
	}
	if err := f.EndDefine(); err != nil {
		t.Fatalf("EndDefine failed, reason: %v", err)
	}
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0}
	if err := f.Write(v, []int{0}, []int{4}, data); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed, reason: %v", err)
	}

	reopened, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open failed, reason: %v", err)
	}
	defer reopened.Close()
	rv, _ := reopened.Var("vals")
	got, err := reopened.Read(rv, []int{0}, []int{4})
	if err != nil {
		t.Fatalf("Read failed, reason: %v", err)
	}
	for i := range got {
		if got[i] != data[i] {
			t.Fatalf("Read byte %d assertion failed, got %d, want %d", i, got[i], data[i])
		}
	}
}

func TestFileNoClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.exostor")
	f, err := Create(path, false)
	if err != nil {
		t.Fatalf("Create failed, reason: %v", err)
	}
	f.Close()

	if _, err := Create(path, true); err == nil {
		t.Fatalf("Create(noClobber): expected error for existing file, got nil")
	}
}
