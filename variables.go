// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// DefineVariables appends a class's variable-name catalog and fixes its
// variable count, once (spec §4.7). Must precede any value write for the
// class.
func (f *File) DefineVariables(class Class, names []string) error {
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	if _, ok := f.cache.varNames[class]; ok {
		return errSchemaFrozen("DefineVariables: " + class.String() + " variable catalog already defined")
	}
	dim := naming.DimNumVar(class)
	if err := f.st.AddDim(dim, len(names)); err != nil {
		return errBackend(err)
	}
	v, err := f.st.AddVar(naming.VarNameTable(class), store.TypeChar, []string{dim, naming.DimLenName})
	if err != nil {
		return errBackend(err)
	}
	truncated := make([]string, len(names))
	for i, n := range names {
		if len(n) > naming.MaxNameLen {
			n = n[:naming.MaxNameLen]
		}
		truncated[i] = n
	}
	f.cache.varNames[class] = truncated
	f.cache.pendingVarNameVar = append(f.cache.pendingVarNameVar, pendingVarNames{class: class, v: v, names: truncated})
	return nil
}

type pendingVarNames struct {
	class Class
	v     store.Var
	names []string
}

// VariableNames returns the current ordered variable-name list for a class.
func (f *File) VariableNames(class Class) ([]string, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	if names, ok := f.cache.varNames[class]; ok {
		return append([]string(nil), names...), nil
	}
	v, ok := f.st.Var(naming.VarNameTable(class))
	if !ok {
		return nil, nil
	}
	n, _ := f.st.DimLen(naming.DimNumVar(class))
	names := make([]string, n)
	for i := 0; i < n; i++ {
		raw, err := f.st.Read(v, []int{i, 0}, []int{1, naming.LenNameWidth})
		if err != nil {
			return nil, errBackend(err)
		}
		names[i] = cString(raw)
	}
	f.cache.varNames[class] = names
	return names, nil
}

func (f *File) flushPendingVarNames() error {
	for _, p := range f.cache.pendingVarNameVar {
		for i, n := range p.names {
			buf := make([]byte, naming.LenNameWidth)
			copy(buf, n)
			if err := f.st.Write(p.v, []int{i, 0}, []int{1, naming.LenNameWidth}, buf); err != nil {
				return errBackend(err)
			}
		}
	}
	f.cache.pendingVarNameVar = nil
	return nil
}

// PutTime writes the time value for a 1-based step index, which may
// rewrite any existing step or be at most one past the current maximum
// (spec §4.7: the unlimited time axis may never have gaps).
func (f *File) PutTime(step int, t float64) error {
	if step < 1 {
		return ErrInvalidTimeStep
	}
	if step > f.cache.maxStep+1 {
		return ErrNonContiguousTimeStep
	}
	if err := f.ensureTimeVar(); err != nil {
		return err
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	v, _ := f.st.Var(naming.VarTimeWhole)
	if err := f.writeFloatSlab(v, []int{step - 1}, []int{1}, []float64{t}); err != nil {
		return err
	}
	if step > f.cache.maxStep {
		f.cache.maxStep = step
	}
	return nil
}

// Times returns the full time-value vector.
func (f *File) Times() ([]float64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	v, ok := f.st.Var(naming.VarTimeWhole)
	if !ok {
		return nil, nil
	}
	n, _ := f.st.DimLen(naming.DimTimeStep)
	return f.readFloatSlab(v, []int{0}, []int{n})
}

func (f *File) ensureTimeVar() error {
	if _, ok := f.st.Var(naming.VarTimeWhole); ok {
		return nil
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	_, err := f.st.AddVar(naming.VarTimeWhole, f.elemType(), []string{naming.DimTimeStep})
	if err != nil {
		return errBackend(err)
	}
	return nil
}

// PutTruthTable validates and stores a class's [entities × variables] truth
// table (spec §4.7). An explicitly-written table must exactly match the
// class's current entity and variable counts.
func (f *File) PutTruthTable(class Class, table [][]bool) error {
	names, ok := f.cache.varNames[class]
	if !ok {
		return errVariableNotDefined(naming.VarNameTable(class))
	}
	numEntities := f.truthTableRows(class)
	if len(table) != numEntities {
		return errArrayLengthMismatch("PutTruthTable rows", numEntities, len(table))
	}
	for i, row := range table {
		if len(row) != len(names) {
			return errArrayLengthMismatch("PutTruthTable row", len(names), len(row))
		}
		_ = i
	}
	cp := make([][]bool, len(table))
	for i, row := range table {
		cp[i] = append([]bool(nil), row...)
	}
	f.cache.truth[class] = cp
	return nil
}

// TruthTable returns the class's truth table, defaulting to all-ones (spec
// §4.7) if none was explicitly written.
func (f *File) TruthTable(class Class) ([][]bool, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	if t, ok := f.cache.truth[class]; ok {
		out := make([][]bool, len(t))
		for i, row := range t {
			out[i] = append([]bool(nil), row...)
		}
		return out, nil
	}
	names := f.cache.varNames[class]
	rows := f.truthTableRows(class)
	out := make([][]bool, rows)
	for i := range out {
		row := make([]bool, len(names))
		for j := range row {
			row[j] = true
		}
		out[i] = row
	}
	return out, nil
}

func (f *File) truthTableRows(class Class) int {
	if !naming.HasEntries(class) {
		return 1
	}
	return len(f.cache.order[class])
}

func (f *File) truthTableAllows(class Class, entityIdx, varIdx int) bool {
	t, ok := f.cache.truth[class]
	if !ok {
		return true
	}
	if entityIdx < 0 || entityIdx >= len(t) {
		return true
	}
	row := t[entityIdx]
	if varIdx < 0 || varIdx >= len(row) {
		return true
	}
	return row[varIdx]
}

// entityWidth returns the number of scalar slots one entity occupies in a
// class's value storage: NumNodes for Nodal, 1 for Global, NumEntries for
// a registered block/set.
func (f *File) entityWidth(class Class, id EntityID) (int, error) {
	switch class {
	case Nodal:
		p, err := f.requireInit()
		if err != nil {
			return 0, err
		}
		return p.NumNodes, nil
	case Global:
		return 1, nil
	default:
		if b, ok := f.cache.blocks[entityKey{class, id}]; ok {
			return b.NumEntries, nil
		}
		if s, ok := f.cache.sets[entityKey{class, id}]; ok {
			return s.NumEntries, nil
		}
		return 0, errEntityNotFound(class, id)
	}
}

// classTotalWidth is the Combined-layout width for a class: the sum of
// every registered entity's width.
func (f *File) classTotalWidth(class Class) (int, error) {
	switch class {
	case Nodal:
		p, err := f.requireInit()
		if err != nil {
			return 0, err
		}
		return p.NumNodes, nil
	case Global:
		return 1, nil
	default:
		total := 0
		for _, id := range f.cache.order[class] {
			w, err := f.entityWidth(class, id)
			if err != nil {
				return 0, err
			}
			total += w
		}
		return total, nil
	}
}

// entityOffset returns an entity's starting offset within its class's
// Combined-layout value array, and its own width.
func (f *File) entityOffset(class Class, id EntityID) (offset, width int, err error) {
	if class == Nodal || class == Global {
		w, err := f.entityWidth(class, id)
		return 0, w, err
	}
	for _, cur := range f.cache.order[class] {
		w, werr := f.entityWidth(class, cur)
		if werr != nil {
			return 0, 0, werr
		}
		if cur == id {
			return offset, w, nil
		}
		offset += w
	}
	return 0, 0, errEntityNotFound(class, id)
}

// effectiveLayout is the layout in force for writes to a class: Global is
// pinned Combined; every other class follows Options.VariableLayout unless
// a layout was already detected on an opened file.
func (f *File) effectiveLayout(class Class) layout {
	if class == Global {
		return layoutCombined
	}
	if l, ok := f.cache.layouts[class]; ok && l != layoutNone {
		return l
	}
	if f.opts.VariableLayout == LayoutSeparate {
		return layoutSeparate
	}
	return layoutCombined
}

// ensureCombinedVar returns (creating if needed) the single Combined-layout
// value variable for a class.
func (f *File) ensureCombinedVar(class Class) (store.Var, error) {
	name := naming.VarValsCombined(class)
	if v, ok := f.st.Var(name); ok {
		return v, nil
	}
	if err := f.ensureDefineMode(); err != nil {
		return store.Var{}, err
	}
	widthDim := naming.DimClassTotal(class)
	if _, ok := f.st.DimLen(widthDim); !ok {
		total, err := f.classTotalWidth(class)
		if err != nil {
			return store.Var{}, err
		}
		if err := f.st.AddDim(widthDim, total); err != nil {
			return store.Var{}, errBackend(err)
		}
	}
	v, err := f.st.AddVar(name, f.elemType(), []string{naming.DimTimeStep, naming.DimNumVar(class), widthDim})
	if err != nil {
		return store.Var{}, errBackend(err)
	}
	if err := f.applyCompression(v); err != nil {
		return store.Var{}, err
	}
	f.cache.layouts[class] = layoutCombined
	return v, nil
}

// ensureSeparateVar returns (creating if needed) the Separate-layout value
// variable for one (variable-index, entity) pair.
func (f *File) ensureSeparateVar(class Class, id EntityID, vIdx int) (store.Var, error) {
	blockIdx := 0
	if naming.HasEntries(class) {
		idx, ok := f.cache.entityIndex(class, id)
		if !ok {
			return store.Var{}, errEntityNotFound(class, id)
		}
		blockIdx = idx + 1
	}
	name := naming.VarValsSeparate(class, vIdx+1, blockIdx)
	if v, ok := f.st.Var(name); ok {
		return v, nil
	}
	if err := f.ensureDefineMode(); err != nil {
		return store.Var{}, err
	}
	// Global never reaches here: effectiveLayout pins it to Combined.
	widthDim := naming.DimNumNodes
	if naming.HasEntries(class) {
		widthDim = naming.DimNumEntries(class, int64(id))
	}
	v, err := f.st.AddVar(name, f.elemType(), []string{naming.DimTimeStep, widthDim})
	if err != nil {
		return store.Var{}, errBackend(err)
	}
	if err := f.applyCompression(v); err != nil {
		return store.Var{}, err
	}
	f.cache.layouts[class] = layoutSeparate
	return v, nil
}

func (f *File) valueVar(class Class, id EntityID, vIdx int) (store.Var, int, int, error) {
	if f.effectiveLayout(class) == layoutCombined {
		v, err := f.ensureCombinedVar(class)
		if err != nil {
			return store.Var{}, 0, 0, err
		}
		offset, width, err := f.entityOffset(class, id)
		return v, offset, width, err
	}
	v, err := f.ensureSeparateVar(class, id, vIdx)
	if err != nil {
		return store.Var{}, 0, 0, err
	}
	width, err := f.entityWidth(class, id)
	return v, 0, width, err
}

// PutVar writes one variable's values for one entity at one time step
// (spec §4.7). step must already have a time value (or be written via
// PutTime first or after; the time axis and variable axis grow
// independently but both gate on NonContiguousTimeStep at their own call).
func (f *File) PutVar(step int, class Class, id EntityID, v int, values []float64) error {
	if step < 1 {
		return ErrInvalidTimeStep
	}
	if step > f.cache.maxStep+1 {
		return ErrNonContiguousTimeStep
	}
	names, ok := f.cache.varNames[class]
	if !ok || v < 0 || v >= len(names) {
		return errVariableNotDefined(naming.VarNameTable(class))
	}
	entIdx, _ := f.cache.entityIndex(class, id)
	if class == Global {
		entIdx = 0
	}
	if !f.truthTableAllows(class, entIdx, v) {
		return errTruthTableViolation(class, entIdx, v)
	}
	backendVar, offset, width, err := f.valueVar(class, id, v)
	if err != nil {
		return err
	}
	if len(values) != width {
		return errArrayLengthMismatch("PutVar", width, len(values))
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	if f.effectiveLayout(class) == layoutCombined {
		return f.writeFloatSlab(backendVar, []int{step - 1, v, offset}, []int{1, 1, width}, values)
	}
	return f.writeFloatSlab(backendVar, []int{step - 1, 0}, []int{1, width}, values)
}

// Var reads one variable's values for one entity at one time step.
func (f *File) Var(step int, class Class, id EntityID, v int) ([]float64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	names, err := f.VariableNames(class)
	if err != nil {
		return nil, err
	}
	if v < 0 || v >= len(names) {
		return nil, errVariableNotDefined(naming.VarNameTable(class))
	}
	backendVar, offset, width, err := f.valueVar(class, id, v)
	if err != nil {
		return nil, err
	}
	if f.effectiveLayout(class) == layoutCombined {
		return f.readFloatSlab(backendVar, []int{step - 1, v, offset}, []int{1, 1, width})
	}
	return f.readFloatSlab(backendVar, []int{step - 1, 0}, []int{1, width})
}

// PutVarMulti writes every defined variable of a class-entity at one step
// (spec §4.7). len(values) must equal the class's variable count.
func (f *File) PutVarMulti(step int, class Class, id EntityID, values [][]float64) error {
	names, ok := f.cache.varNames[class]
	if !ok {
		return errVariableNotDefined(naming.VarNameTable(class))
	}
	if len(values) != len(names) {
		return errArrayLengthMismatch("PutVarMulti", len(names), len(values))
	}
	for v, vals := range values {
		if err := f.PutVar(step, class, id, v, vals); err != nil {
			return err
		}
	}
	return nil
}

// VarMulti reads every defined variable of a class-entity at one step.
func (f *File) VarMulti(step int, class Class, id EntityID) ([][]float64, error) {
	names, err := f.VariableNames(class)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(names))
	for v := range names {
		vals, err := f.Var(step, class, id, v)
		if err != nil {
			return nil, err
		}
		out[v] = vals
	}
	return out, nil
}

// PutVarTimeSeries writes one variable across a contiguous step range
// [startStep, startStep+len(values)) for one entity.
func (f *File) PutVarTimeSeries(class Class, id EntityID, v int, startStep int, values [][]float64) error {
	for i, vals := range values {
		if err := f.PutVar(startStep+i, class, id, v, vals); err != nil {
			return err
		}
	}
	return nil
}

// VarTimeSeries reads one variable across a step range.
func (f *File) VarTimeSeries(class Class, id EntityID, v int, startStep, numSteps int) ([][]float64, error) {
	out := make([][]float64, numSteps)
	for i := 0; i < numSteps; i++ {
		vals, err := f.Var(startStep+i, class, id, v)
		if err != nil {
			return nil, err
		}
		out[i] = vals
	}
	return out, nil
}
