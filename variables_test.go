// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import "testing"

func TestPutVarNodalCombined(t *testing.T) {
	f := newMemFile(t)
	if err := f.DefineVariables(Nodal, []string{"disp_x", "disp_y"}); err != nil {
		t.Fatalf("DefineVariables failed, reason: %v", err)
	}
	if err := f.PutTime(1, 0.0); err != nil {
		t.Fatalf("PutTime failed, reason: %v", err)
	}
	vals := make([]float64, 8)
	for i := range vals {
		vals[i] = float64(i)
	}
	if err := f.PutVar(1, Nodal, 0, 0, vals); err != nil {
		t.Fatalf("PutVar failed, reason: %v", err)
	}
	back, err := f.Var(1, Nodal, 0, 0)
	if err != nil {
		t.Fatalf("Var failed, reason: %v", err)
	}
	for i, v := range vals {
		if back[i] != v {
			t.Fatalf("Var[%d] assertion failed, got %v, want %v", i, back[i], v)
		}
	}
}

func TestPutVarGlobalCombined(t *testing.T) {
	f := newMemFile(t)
	if err := f.DefineVariables(Global, []string{"ke", "pe"}); err != nil {
		t.Fatalf("DefineVariables failed, reason: %v", err)
	}
	if err := f.PutTime(1, 0.0); err != nil {
		t.Fatalf("PutTime failed, reason: %v", err)
	}
	if err := f.PutVar(1, Global, 0, 0, []float64{1.5}); err != nil {
		t.Fatalf("PutVar failed, reason: %v", err)
	}
	back, err := f.Var(1, Global, 0, 0)
	if err != nil {
		t.Fatalf("Var failed, reason: %v", err)
	}
	if back[0] != 1.5 {
		t.Fatalf("Var assertion failed, got %v, want %v", back[0], 1.5)
	}
}

func TestPutVarNonContiguousStep(t *testing.T) {
	f := newMemFile(t)
	if err := f.DefineVariables(Global, []string{"ke"}); err != nil {
		t.Fatalf("DefineVariables failed, reason: %v", err)
	}
	if err := f.PutVar(2, Global, 0, 0, []float64{1}); err == nil {
		t.Fatalf("non-contiguous PutVar assertion failed, want error, got nil")
	}
}

func TestPutVarTruthTableViolation(t *testing.T) {
	f := newMemFile(t)
	if err := f.PutBlock(Block{ID: 1, Class: ElemBlock, Topology: "HEX8", NumEntries: 1, NodesPerEntry: 8}); err != nil {
		t.Fatalf("PutBlock failed, reason: %v", err)
	}
	if err := f.DefineVariables(ElemBlock, []string{"stress"}); err != nil {
		t.Fatalf("DefineVariables failed, reason: %v", err)
	}
	if err := f.PutTruthTable(ElemBlock, [][]bool{{false}}); err != nil {
		t.Fatalf("PutTruthTable failed, reason: %v", err)
	}
	if err := f.PutTime(1, 0.0); err != nil {
		t.Fatalf("PutTime failed, reason: %v", err)
	}
	if err := f.PutVar(1, ElemBlock, 1, 0, []float64{1}); err == nil {
		t.Fatalf("truth-table violation assertion failed, want error, got nil")
	}
}

func TestPutVarMultiAndTimeSeries(t *testing.T) {
	f := newMemFile(t)
	if err := f.DefineVariables(Global, []string{"ke", "pe"}); err != nil {
		t.Fatalf("DefineVariables failed, reason: %v", err)
	}
	for step := 1; step <= 3; step++ {
		if err := f.PutTime(step, float64(step)); err != nil {
			t.Fatalf("PutTime(%d) failed, reason: %v", step, err)
		}
		if err := f.PutVarMulti(step, Global, 0, [][]float64{{float64(step)}, {float64(step) * 2}}); err != nil {
			t.Fatalf("PutVarMulti(%d) failed, reason: %v", step, err)
		}
	}
	series, err := f.VarTimeSeries(Global, 0, 0, 1, 3)
	if err != nil {
		t.Fatalf("VarTimeSeries failed, reason: %v", err)
	}
	for i, s := range series {
		want := float64(i + 1)
		if s[0] != want {
			t.Fatalf("VarTimeSeries[%d] assertion failed, got %v, want %v", i, s[0], want)
		}
	}
	times, err := f.Times()
	if err != nil {
		t.Fatalf("Times failed, reason: %v", err)
	}
	if len(times) != 3 || times[2] != 3 {
		t.Fatalf("Times assertion failed, got %v", times)
	}
}
