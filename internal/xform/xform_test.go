// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package xform

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestRotationZ90(t *testing.T) {
	r := RotationZ(math.Pi / 2)
	points := []float64{1, 0, 0}
	ApplyToPoints(r, [3]float64{}, points)
	if !approxEqual(points[0], 0, 1e-9) || !approxEqual(points[1], 1, 1e-9) {
		t.Fatalf("RotationZ90 assertion failed, got (%v,%v), want (0,1)", points[0], points[1])
	}
}

func TestApplyToPointsTranslateOnly(t *testing.T) {
	points := []float64{1, 2, 3}
	ApplyToPoints(nil, [3]float64{10, 20, 30}, points)
	want := []float64{11, 22, 33}
	for i := range want {
		if !approxEqual(points[i], want[i], 1e-9) {
			t.Fatalf("translate-only assertion failed at %d, got %v, want %v", i, points[i], want[i])
		}
	}
}

func TestComposeExtrinsicVsIntrinsic(t *testing.T) {
	extr, err := Compose("XY", []float64{90, 90}, true)
	if err != nil {
		t.Fatalf("Compose failed, reason: %v", err)
	}
	intr, err := Compose("xy", []float64{90, 90}, true)
	if err != nil {
		t.Fatalf("Compose failed, reason: %v", err)
	}
	// Extrinsic X-then-Y (pre-multiplied, R = Ry*Rx) and intrinsic x-then-y
	// (post-multiplied, R = Rx*Ry) are different compositions in general;
	// applying each to the same point must disagree for at least one axis
	// to prove the two multiplication orders are actually distinct.
	p1 := []float64{0, 0, 1}
	p2 := []float64{0, 0, 1}
	ApplyToPoints(extr, [3]float64{}, p1)
	ApplyToPoints(intr, [3]float64{}, p2)
	if approxEqual(p1[0], p2[0], 1e-9) && approxEqual(p1[1], p2[1], 1e-9) && approxEqual(p1[2], p2[2], 1e-9) {
		t.Fatalf("Compose: expected extrinsic and intrinsic composition to differ, both gave %v", p1)
	}
}

func TestComposeLengthMismatch(t *testing.T) {
	if _, err := Compose("XY", []float64{90}, true); err == nil {
		t.Fatalf("Compose: expected length-mismatch error, got nil")
	}
}

func TestComposeBadAxis(t *testing.T) {
	if _, err := Compose("Q", []float64{90}, true); err == nil {
		t.Fatalf("Compose: expected bad-axis error, got nil")
	}
}

func TestApplyToVectors(t *testing.T) {
	r := RotationZ(math.Pi / 2)
	vectors := []float64{1, 0, 0, 0, 1, 0}
	ApplyToVectors(r, vectors)
	want := []float64{0, 1, 0, -1, 0, 0}
	for i := range want {
		if !approxEqual(vectors[i], want[i], 1e-9) {
			t.Fatalf("ApplyToVectors assertion failed at %d, got %v, want %v", i, vectors[i], want[i])
		}
	}
}

func TestApplyToSymmetricTensorsIdentity(t *testing.T) {
	r := Identity()
	tensors := []float64{1, 2, 3, 4, 5, 6}
	orig := append([]float64(nil), tensors...)
	ApplyToSymmetricTensors(r, tensors)
	for i := range orig {
		if !approxEqual(tensors[i], orig[i], 1e-9) {
			t.Fatalf("identity rotation assertion failed at %d, got %v, want %v", i, tensors[i], orig[i])
		}
	}
}

func TestApplyToSymmetricTensorsZ90SwapsXXYY(t *testing.T) {
	r := RotationZ(math.Pi / 2)
	// Pure XX stress: a 90-degree rotation about Z should turn it into
	// pure YY stress.
	tensors := []float64{5, 0, 0, 0, 0, 0}
	ApplyToSymmetricTensors(r, tensors)
	if !approxEqual(tensors[0], 0, 1e-9) || !approxEqual(tensors[1], 5, 1e-9) {
		t.Fatalf("Z90 tensor rotation assertion failed, got XX=%v YY=%v, want XX=0 YY=5", tensors[0], tensors[1])
	}
}
