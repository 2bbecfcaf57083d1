// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// PutProperty writes a named integer property array aligned with a
// class's block/set entities, in property-table order (spec §4.9). "ID"
// is reserved: it is always property-table index 1, populated by
// PutBlock/PutSet, and cannot be overwritten here.
func (f *File) PutProperty(class Class, name string, values []int64) error {
	if !naming.HasEntries(class) {
		return errInvalidTopology(class.String())
	}
	if name == "ID" {
		return errReservedName("ID")
	}
	n := len(f.cache.order[class])
	if len(values) != n {
		return errArrayLengthMismatch("PutProperty", n, len(values))
	}

	idx := f.propertyIndex(class, name)
	if idx == 0 {
		f.cache.propNames[class] = append(f.cache.propNames[class], name)
		idx = len(f.cache.propNames[class]) + 1
	}

	varName := naming.VarPropTable(class, idx)
	v, ok := f.st.Var(varName)
	if !ok {
		if err := f.ensureDefineMode(); err != nil {
			return err
		}
		var err error
		v, err = f.st.AddVar(varName, idVarType(f.opts.IntMode), []string{classCountDim(class)})
		if err != nil {
			return errBackend(err)
		}
		if err := f.st.PutAttr(store.OfVar(v.Name), naming.PropNameAttr, name); err != nil {
			return errBackend(err)
		}
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	for i, val := range values {
		buf := make([]byte, v.Type.Size())
		putID(buf, v.Type, val)
		if err := f.st.Write(v, []int{i}, []int{1}, buf); err != nil {
			return errBackend(err)
		}
	}
	return nil
}

// propertyIndex returns the 1-based property-table index for name (0 if
// unseen). Index 1 is always the implicit "ID" property.
func (f *File) propertyIndex(class Class, name string) int {
	for i, n := range f.cache.propNames[class] {
		if n == name {
			return i + 2
		}
	}
	return 0
}

// Property reads a named integer property array back, in property-table
// order, or a VariableNotDefined error if the name was never written.
func (f *File) Property(class Class, name string) ([]int64, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	if name == "ID" {
		return f.readIDProperty(class)
	}
	idx := f.propertyIndex(class, name)
	if idx == 0 {
		return nil, errVariableNotDefined(naming.VarPropTable(class, 0))
	}
	v, ok := f.st.Var(naming.VarPropTable(class, idx))
	if !ok {
		return nil, errVariableNotDefined(naming.VarPropTable(class, idx))
	}
	return f.readIDSlab(v, len(f.cache.order[class]))
}

func (f *File) readIDProperty(class Class) ([]int64, error) {
	v, ok := f.st.Var(naming.VarPropTable(class, 1))
	if !ok {
		return nil, errVariableNotDefined(naming.VarPropTable(class, 1))
	}
	return f.readIDSlab(v, len(f.cache.order[class]))
}

// PropertyNames returns every property name for a class, "ID" always
// first.
func (f *File) PropertyNames(class Class) []string {
	out := append([]string{"ID"}, f.cache.propNames[class]...)
	return out
}
