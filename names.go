// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// PutEntityNames writes the instance-name matrix for every registered
// block or set of a class (spec §4.9). len(names) must equal the number of
// entities currently registered for class, in their property-table order.
func (f *File) PutEntityNames(class Class, names []string) error {
	if !naming.HasEntries(class) {
		return errInvalidTopology(class.String())
	}
	n := len(f.cache.order[class])
	if len(names) != n {
		return errArrayLengthMismatch("PutEntityNames", n, len(names))
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	v, ok := f.st.Var(naming.VarEntityNames(class))
	if !ok {
		var err error
		v, err = f.st.AddVar(naming.VarEntityNames(class), store.TypeChar, []string{classCountDim(class), naming.DimLenName})
		if err != nil {
			return errBackend(err)
		}
	}
	if err := f.ensureDataMode(); err != nil {
		return err
	}
	for i, name := range names {
		if len(name) > naming.MaxNameLen {
			name = name[:naming.MaxNameLen]
		}
		buf := make([]byte, naming.LenNameWidth)
		copy(buf, name)
		if err := f.st.Write(v, []int{i, 0}, []int{1, naming.LenNameWidth}, buf); err != nil {
			return errBackend(err)
		}
	}
	return nil
}

// EntityNames reads a class's instance-name matrix, or a slice of empty
// strings if none was written.
func (f *File) EntityNames(class Class) ([]string, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	n := len(f.cache.order[class])
	v, ok := f.st.Var(naming.VarEntityNames(class))
	if !ok {
		return make([]string, n), nil
	}
	out := make([]string, n)
	for i := range out {
		raw, err := f.st.Read(v, []int{i, 0}, []int{1, naming.LenNameWidth})
		if err != nil {
			return nil, errBackend(err)
		}
		out[i] = cString(raw)
	}
	return out, nil
}
