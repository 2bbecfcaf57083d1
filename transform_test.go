// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"math"
	"testing"
)

func TestTranslate(t *testing.T) {
	f := newMemFile(t)
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	y := make([]float64, 8)
	z := make([]float64, 8)
	if err := f.PutCoords(x, y, z); err != nil {
		t.Fatalf("PutCoords failed, reason: %v", err)
	}
	if err := f.Translate([3]float64{10, 0, 0}); err != nil {
		t.Fatalf("Translate failed, reason: %v", err)
	}
	nx, _, _, err := f.GetCoords()
	if err != nil {
		t.Fatalf("GetCoords failed, reason: %v", err)
	}
	for i, v := range x {
		want := v + 10
		if math.Abs(nx[i]-want) > 1e-9 {
			t.Fatalf("Translate[%d] assertion failed, got %v, want %v", i, nx[i], want)
		}
	}
}

func TestRotateZ90(t *testing.T) {
	f := newMemFile(t)
	x := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	y := []float64{0, 1, 0, 0, 0, 0, 0, 0}
	z := make([]float64, 8)
	if err := f.PutCoords(x, y, z); err != nil {
		t.Fatalf("PutCoords failed, reason: %v", err)
	}
	if err := f.RotateZ(90, true); err != nil {
		t.Fatalf("RotateZ failed, reason: %v", err)
	}
	nx, ny, _, err := f.GetCoords()
	if err != nil {
		t.Fatalf("GetCoords failed, reason: %v", err)
	}
	if math.Abs(nx[0]-0) > 1e-9 || math.Abs(ny[0]-1) > 1e-9 {
		t.Fatalf("RotateZ node0 assertion failed, got (%v,%v), want (0,1)", nx[0], ny[0])
	}
	if math.Abs(nx[1]-(-1)) > 1e-9 || math.Abs(ny[1]-0) > 1e-9 {
		t.Fatalf("RotateZ node1 assertion failed, got (%v,%v), want (-1,0)", nx[1], ny[1])
	}
}

func TestScaleUniform(t *testing.T) {
	f := newMemFile(t)
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, 8)
	z := make([]float64, 8)
	if err := f.PutCoords(x, y, z); err != nil {
		t.Fatalf("PutCoords failed, reason: %v", err)
	}
	if err := f.ScaleUniform(2); err != nil {
		t.Fatalf("ScaleUniform failed, reason: %v", err)
	}
	nx, _, _, err := f.GetCoords()
	if err != nil {
		t.Fatalf("GetCoords failed, reason: %v", err)
	}
	for i, v := range x {
		want := v * 2
		if math.Abs(nx[i]-want) > 1e-9 {
			t.Fatalf("ScaleUniform[%d] assertion failed, got %v, want %v", i, nx[i], want)
		}
	}
}
