// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"bytes"
	"testing"
)

func newBlobFile(t *testing.T) *File {
	t.Helper()
	f, err := Create("", &Options{InMemory: true})
	if err != nil {
		t.Fatalf("Create(InMemory) failed, reason: %v", err)
	}
	if err := f.Init(InitParams{NumDim: 3, NumNodes: 8, NumBlob: 1}); err != nil {
		t.Fatalf("Init failed, reason: %v", err)
	}
	return f
}

func TestPutBlobAndRead(t *testing.T) {
	f := newBlobFile(t)
	payload := []byte("checkpoint-0001")
	if err := f.PutBlob(BlobRecord{ID: 1, Name: "restart", Payload: payload}); err != nil {
		t.Fatalf("PutBlob failed, reason: %v", err)
	}
	got, err := f.Blob(1)
	if err != nil {
		t.Fatalf("Blob failed, reason: %v", err)
	}
	if got.Name != "restart" || !bytes.Equal(got.Payload, payload) {
		t.Fatalf("Blob assertion failed, got %+v", got)
	}
}

func TestPutBlobExceedsCount(t *testing.T) {
	f := newBlobFile(t)
	if err := f.PutBlob(BlobRecord{ID: 1, Name: "a", Payload: []byte("x")}); err != nil {
		t.Fatalf("PutBlob failed, reason: %v", err)
	}
	if err := f.PutBlob(BlobRecord{ID: 2, Name: "b", Payload: []byte("y")}); err == nil {
		t.Fatalf("PutBlob: expected count-exceeded error, got nil")
	}
}
