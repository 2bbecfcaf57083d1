// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/naming"
	"github.com/exodus-go/exodus/internal/store"
)

// BlobRecord is an opaque, named byte payload attached to the file:
// application-defined side data the format itself never interprets
// (spec §4.9), such as a solver's restart checkpoint or a provenance
// blob.
type BlobRecord struct {
	ID      EntityID
	Name    string
	Payload []byte
}

// PutBlob registers a blob and writes its payload in one call. ID must
// fall within the num_blob count set at Init.
func (f *File) PutBlob(b BlobRecord) error {
	cur, ok := f.st.DimLen(naming.DimNumBlob)
	if !ok {
		return errInvalidDimension(naming.DimNumBlob, 0, 1)
	}
	if _, exists := f.cache.entityIndex(naming.Blob, b.ID); exists {
		return errEntityNotFound(naming.Blob, b.ID)
	}
	idx := f.cache.entityCount(naming.Blob)
	if idx >= cur {
		return errInvalidDimension(naming.DimNumBlob, cur, idx+1)
	}

	if err := f.ensureDefineMode(); err != nil {
		return err
	}
	payloadDim := naming.DimNumBlobEntries(int64(b.ID))
	if err := f.st.AddDim(payloadDim, len(b.Payload)); err != nil {
		return errBackend(err)
	}
	v, err := f.st.AddVar(naming.VarBlobPayload(int64(b.ID)), store.TypeChar, []string{payloadDim})
	if err != nil {
		return errBackend(err)
	}

	namesVar, ok := f.st.Var(naming.VarEntityNames(naming.Blob))
	if !ok {
		namesVar, err = f.st.AddVar(naming.VarEntityNames(naming.Blob), store.TypeChar, []string{naming.DimNumBlob, naming.DimLenName})
		if err != nil {
			return errBackend(err)
		}
	}
	idVar, ok := f.st.Var(naming.VarBlobIDTable)
	if !ok {
		idVar, err = f.st.AddVar(naming.VarBlobIDTable, idVarType(f.opts.IntMode), []string{naming.DimNumBlob})
		if err != nil {
			return errBackend(err)
		}
	}

	f.cache.registerEntity(naming.Blob, b.ID)
	bc := b
	f.cache.blobs[b.ID] = &bc

	if err := f.ensureDataMode(); err != nil {
		return err
	}
	if len(b.Payload) > 0 {
		if err := f.st.Write(v, []int{0}, []int{len(b.Payload)}, b.Payload); err != nil {
			return errBackend(err)
		}
	}
	idBuf := make([]byte, idVar.Type.Size())
	putID(idBuf, idVar.Type, int64(b.ID))
	if err := wrapBackend(f.st.Write(idVar, []int{idx}, []int{1}, idBuf)); err != nil {
		return err
	}
	name := b.Name
	if len(name) > naming.MaxNameLen {
		name = name[:naming.MaxNameLen]
	}
	buf := make([]byte, naming.LenNameWidth)
	copy(buf, name)
	return wrapBackend(f.st.Write(namesVar, []int{idx, 0}, []int{1, naming.LenNameWidth}, buf))
}

// Blob returns a previously registered blob's name and payload.
func (f *File) Blob(id EntityID) (BlobRecord, error) {
	if err := f.ensureReadable(); err != nil {
		return BlobRecord{}, err
	}
	b, ok := f.cache.blobs[id]
	if !ok {
		return BlobRecord{}, errEntityNotFound(naming.Blob, id)
	}
	if len(b.Payload) == 0 {
		return *b, nil
	}
	v, ok := f.st.Var(naming.VarBlobPayload(int64(id)))
	if !ok {
		return *b, nil
	}
	raw, err := f.st.Read(v, []int{0}, []int{len(b.Payload)})
	if err != nil {
		return BlobRecord{}, errBackend(err)
	}
	out := *b
	out.Payload = raw
	return out, nil
}

// BlobIDs returns every registered blob ID, in registration order.
func (f *File) BlobIDs() []EntityID {
	return append([]EntityID(nil), f.cache.order[naming.Blob]...)
}
