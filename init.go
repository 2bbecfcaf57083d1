// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// Init writes the mesh-wide parameters exactly once (spec §4.3). It
// creates the fixed dimensions, the per-class count dimensions for
// classes with a non-zero count, and the title/word-size/version global
// attributes. A second call fails with ErrAlreadyInitialized.
func (f *File) Init(p InitParams) error {
	if f.cache.initSet {
		return ErrAlreadyInitialized
	}
	if p.NumDim < 1 || p.NumDim > 3 {
		return errInvalidDimension("NumDim", 3, p.NumDim)
	}
	if err := f.ensureDefineMode(); err != nil {
		return err
	}

	title := p.Title
	if len(title) > naming.MaxLineLen {
		title = title[:naming.MaxLineLen]
	}
	if err := f.st.PutAttr(store.Global(), naming.AttrTitle, title); err != nil {
		return errBackend(err)
	}

	if err := f.addDim(naming.DimNumDim, p.NumDim); err != nil {
		return err
	}
	if err := f.addDim(naming.DimLenString, naming.LenStringWidth); err != nil {
		return err
	}
	if err := f.addDim(naming.DimLenLine, naming.LenLineWidth); err != nil {
		return err
	}
	if err := f.addDim(naming.DimLenName, naming.LenNameWidth); err != nil {
		return err
	}
	if err := f.st.AddDim(naming.DimTimeStep, 0); err != nil {
		return errBackend(err)
	}
	if p.NumNodes > 0 {
		if err := f.addDim(naming.DimNumNodes, p.NumNodes); err != nil {
			return err
		}
	}
	if p.NumElem > 0 {
		if err := f.addDim(naming.DimNumElem, p.NumElem); err != nil {
			return err
		}
	}

	// The per-class block/set *count* dimensions (num_el_blk,
	// num_node_sets, ...) are written now, sized from InitParams, and are
	// immutable for the life of the file; only the per-block/per-set
	// member dimensions created by PutBlock/PutSet grow the schema later.
	blockSetClasses := []Class{
		EdgeBlock, FaceBlock, ElemBlock,
		NodeSet, EdgeSet, FaceSet, SideSet, ElemSet,
	}
	for _, c := range blockSetClasses {
		if n := p.countFor(c); n > 0 {
			if err := f.addDim(classCountDim(c), n); err != nil {
				return err
			}
		}
	}
	for _, c := range []Class{NodeMap, EdgeMap, FaceMap, ElemMap} {
		if n := p.countFor(c); n > 0 {
			_ = n // map presence is a single variable, not a counted dimension
		}
	}
	if p.NumAssembly > 0 {
		if err := f.addDim(naming.DimNumAssembly, p.NumAssembly); err != nil {
			return err
		}
	}
	if p.NumBlob > 0 {
		if err := f.addDim(naming.DimNumBlob, p.NumBlob); err != nil {
			return err
		}
	}

	// Default coordinate names.
	f.cache.coordNames = [3]string{"x", "y", "z"}

	f.cache.init = &p
	f.cache.initSet = true
	return nil
}

func (f *File) addDim(name string, n int) error {
	if err := f.st.AddDim(name, n); err != nil {
		return errBackend(err)
	}
	return nil
}

// InitParams returns the populated mesh-wide parameters, pulling from the
// metadata cache where present and the backend otherwise (spec §4.3).
func (f *File) InitParams() (InitParams, error) {
	if err := f.ensureReadable(); err != nil {
		return InitParams{}, err
	}
	if f.cache.init != nil {
		return *f.cache.init, nil
	}
	p := InitParams{}
	if v, ok, err := f.st.GetAttr(store.Global(), naming.AttrTitle); err == nil && ok {
		p.Title, _ = v.(string)
	}
	if n, ok := f.st.DimLen(naming.DimNumDim); ok {
		p.NumDim = n
	} else {
		return InitParams{}, ErrNotInitialized
	}
	if n, ok := f.st.DimLen(naming.DimNumNodes); ok {
		p.NumNodes = n
	}
	if n, ok := f.st.DimLen(naming.DimNumElem); ok {
		p.NumElem = n
	}
	// The block/set counts are read from the backend's own fixed-capacity
	// count dimensions, not from the entity cache: a freshly Open'd or
	// Append'd handle has an empty cache until rebuildCache walks the
	// backend, and these dimensions are exactly as authoritative as
	// DimNumNodes/DimNumElem read two lines above.
	for c, dst := range map[Class]*int{
		EdgeBlock: &p.NumEdgeBlock,
		FaceBlock: &p.NumFaceBlock,
		ElemBlock: &p.NumElemBlock,
		NodeSet:   &p.NumNodeSet,
		EdgeSet:   &p.NumEdgeSet,
		FaceSet:   &p.NumFaceSet,
		SideSet:   &p.NumSideSet,
		ElemSet:   &p.NumElemSet,
	} {
		if n, ok := f.st.DimLen(classCountDim(c)); ok {
			*dst = n
		}
	}
	f.cache.init = &p
	f.cache.initSet = true
	return p, nil
}

// PutQARecords writes the QA record history as a 2-D fixed-width char
// matrix (spec §4.3). Each field is truncated to 32 characters with no
// error reported: that truncation is the format's contract, not the
// library's to enforce as a failure (spec §4.3, §7).
func (f *File) PutQARecords(records [][4]string) error {
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	truncated := make([][4]string, len(records))
	for i, r := range records {
		for j, s := range r {
			if len(s) > naming.MaxQAFieldLen {
				s = s[:naming.MaxQAFieldLen]
			}
			truncated[i][j] = s
		}
	}
	if err := f.st.AddDim(naming.DimNumQARec, len(records)); err != nil {
		return errBackend(err)
	}
	v, err := f.st.AddVar(naming.VarQARecord, store.TypeChar,
		[]string{naming.DimNumQARec, naming.DimFourBytes, naming.DimLenString})
	if err != nil {
		return errBackend(err)
	}
	f.cache.qaPending = truncated
	f.cache.qaVar = &v
	return nil
}

// QARecords reads back the QA record history.
func (f *File) QARecords() ([][4]string, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	n, ok := f.st.DimLen(naming.DimNumQARec)
	if !ok || n == 0 {
		return nil, nil
	}
	v, ok := f.st.Var(naming.VarQARecord)
	if !ok {
		return nil, nil
	}
	out := make([][4]string, n)
	for i := 0; i < n; i++ {
		for j := 0; j < 4; j++ {
			raw, err := f.st.Read(v, []int{i, j, 0}, []int{1, 1, naming.LenStringWidth})
			if err != nil {
				return nil, errBackend(err)
			}
			out[i][j] = cString(raw)
		}
	}
	return out, nil
}

// PutInfoRecords writes free-text info records, each truncated to 80
// characters (spec §4.3).
func (f *File) PutInfoRecords(records []string) error {
	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	truncated := make([]string, len(records))
	for i, s := range records {
		if len(s) > naming.MaxLineLen {
			s = s[:naming.MaxLineLen]
		}
		truncated[i] = s
	}
	if err := f.st.AddDim(naming.DimNumInfo, len(records)); err != nil {
		return errBackend(err)
	}
	v, err := f.st.AddVar(naming.VarInfo, store.TypeChar, []string{naming.DimNumInfo, naming.DimLenLine})
	if err != nil {
		return errBackend(err)
	}
	f.cache.infoPending = truncated
	f.cache.infoVar = &v
	return nil
}

// InfoRecords reads back the free-text info records.
func (f *File) InfoRecords() ([]string, error) {
	if err := f.ensureReadable(); err != nil {
		return nil, err
	}
	n, ok := f.st.DimLen(naming.DimNumInfo)
	if !ok || n == 0 {
		return nil, nil
	}
	v, ok := f.st.Var(naming.VarInfo)
	if !ok {
		return nil, nil
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		raw, err := f.st.Read(v, []int{i, 0}, []int{1, naming.LenLineWidth})
		if err != nil {
			return nil, errBackend(err)
		}
		out[i] = cString(raw)
	}
	return out, nil
}

// cString trims a fixed-width NUL-padded char array read from the backend
// down to its logical string content.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// flushPendingRecords writes the QA/info payloads staged by
// PutQARecords/PutInfoRecords once data mode is entered. Called by
// ensureDataMode on every define->data transition.
func (f *File) flushPendingRecords() error {
	if f.cache.qaPending != nil && f.cache.qaVar != nil {
		v := *f.cache.qaVar
		for i, rec := range f.cache.qaPending {
			for j, s := range rec {
				buf := make([]byte, naming.LenStringWidth)
				copy(buf, s)
				if err := f.st.Write(v, []int{i, j, 0}, []int{1, 1, naming.LenStringWidth}, buf); err != nil {
					return errBackend(err)
				}
			}
		}
		f.cache.qaPending = nil
	}
	if f.cache.infoPending != nil && f.cache.infoVar != nil {
		v := *f.cache.infoVar
		for i, s := range f.cache.infoPending {
			buf := make([]byte, naming.LenLineWidth)
			copy(buf, s)
			if err := f.st.Write(v, []int{i, 0}, []int{1, naming.LenLineWidth}, buf); err != nil {
				return errBackend(err)
			}
		}
		f.cache.infoPending = nil
	}
	return nil
}
