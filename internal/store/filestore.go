// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// File is a disk-backed Store. It keeps the same in-memory Mem as its
// live schema/data model (so every define/data-mode rule, hyperslab
// bounds check, and attribute lookup is shared with the test backend) and
// adds two things a real backend needs: reading an existing container by
// memory-mapping it the way saferwall/pe memory-maps a PE image instead of
// streaming it with buffered reads, and applying a real compression filter
// (klauspost/compress's gzip and zstd, both pure Go) to each variable's
// bytes when the file is flushed.
//
// This is not a NetCDF-4/HDF5 bitstream writer; that C backend is
// explicitly out of scope (spec §1) and treated as an abstract
// key-value-plus-typed-array store. File is the concrete instance of that
// abstraction: a real file on disk, a real memory map, real compression.
type File struct {
	*Mem
	path     string
	f        *os.File
	mapped   mmap.MMap
	readOnly bool
}

const fileMagic = "EXOSTOR1"

// Create truncates (or, with noClobber, refuses to overwrite) path and
// returns a File in define mode, mirroring Store.create in spec §4.2.
func Create(path string, noClobber bool) (*File, error) {
	flags := os.O_RDWR | os.O_CREATE | os.O_TRUNC
	if noClobber {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("store: %s already exists and NoClobber was requested", path)
		}
		flags = os.O_RDWR | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{Mem: NewMem(), path: path, f: f}, nil
}

// Open memory-maps an existing container (read-only when readOnly is set,
// read-write otherwise) and decodes it into a
// live Mem, leaving the store in data mode as spec §4.2 requires.
func Open(path string, readOnly bool) (*File, error) {
	flags := os.O_RDWR
	if readOnly {
		flags = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, err
	}
	mapMode := mmap.RDWR
	if readOnly {
		mapMode = mmap.RDONLY
	}
	data, err := mmap.Map(f, mapMode, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	mem, err := decode(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	mem.define = false
	return &File{Mem: mem, path: path, f: f, mapped: data, readOnly: readOnly}, nil
}

// Flush serializes the live Mem state to disk. It does not change
// define/data mode; callers go through EndDefine/ReenterDefine as usual.
func (s *File) Flush() error {
	if s.readOnly {
		return fmt.Errorf("store: Flush: %s was opened read-only", s.path)
	}
	buf, err := encode(s.Mem)
	if err != nil {
		return err
	}
	if s.mapped != nil {
		if err := s.mapped.Unmap(); err != nil {
			return err
		}
		s.mapped = nil
	}
	if err := s.f.Truncate(0); err != nil {
		return err
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := s.f.Write(buf); err != nil {
		return err
	}
	return s.f.Sync()
}

// Close flushes (unless read-only) and releases the file and mapping.
func (s *File) Close() error {
	var ferr error
	if !s.readOnly {
		ferr = s.Flush()
	}
	if s.mapped != nil {
		_ = s.mapped.Unmap()
	}
	if cerr := s.f.Close(); cerr != nil && ferr == nil {
		ferr = cerr
	}
	return ferr
}

// ---- container encode/decode ----
//
// A deliberately simple length-prefixed layout: this is our own
// abstraction's on-disk form, not the Exodus/NetCDF bitstream; the spec
// treats that bitstream as out of scope (§1) and the core never inspects
// these bytes directly.

func encode(m *Mem) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileMagic)

	writeString(&buf, m.unlimDim)

	writeInt(&buf, len(m.dims))
	for name, n := range m.dims {
		writeString(&buf, name)
		writeInt(&buf, n)
	}

	writeInt(&buf, len(m.gattrs))
	for name, v := range m.gattrs {
		writeString(&buf, name)
		if err := writeAttrValue(&buf, v); err != nil {
			return nil, err
		}
	}

	writeInt(&buf, len(m.varOrder))
	for _, name := range m.varOrder {
		mv := m.vars[name]
		writeString(&buf, mv.v.Name)
		writeInt(&buf, int(mv.v.Type))
		writeInt(&buf, len(mv.v.Dims))
		for _, d := range mv.v.Dims {
			writeString(&buf, d)
		}
		writeInt(&buf, int(mv.filter.Kind))
		writeInt(&buf, mv.filter.Level)

		compressed, err := compressBytes(mv.filter, mv.data)
		if err != nil {
			return nil, err
		}
		writeInt(&buf, len(mv.data))
		writeInt(&buf, len(compressed))
		buf.Write(compressed)

		writeInt(&buf, len(mv.attrs))
		for aname, av := range mv.attrs {
			writeString(&buf, aname)
			if err := writeAttrValue(&buf, av); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*Mem, error) {
	r := bytes.NewReader(data)
	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != fileMagic {
		return nil, fmt.Errorf("store: not an exodus container (bad magic)")
	}

	m := NewMem()
	var err error
	if m.unlimDim, err = readString(r); err != nil {
		return nil, err
	}

	nDims, err := readInt(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nDims; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		n, err := readInt(r)
		if err != nil {
			return nil, err
		}
		m.dims[name] = n
	}

	nAttrs, err := readInt(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nAttrs; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readAttrValue(r)
		if err != nil {
			return nil, err
		}
		m.gattrs[name] = v
	}

	nVars, err := readInt(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nVars; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		typ, err := readInt(r)
		if err != nil {
			return nil, err
		}
		nd, err := readInt(r)
		if err != nil {
			return nil, err
		}
		dims := make([]string, nd)
		for j := range dims {
			if dims[j], err = readString(r); err != nil {
				return nil, err
			}
		}
		filterKind, err := readInt(r)
		if err != nil {
			return nil, err
		}
		filterLevel, err := readInt(r)
		if err != nil {
			return nil, err
		}
		rawLen, err := readInt(r)
		if err != nil {
			return nil, err
		}
		compLen, err := readInt(r)
		if err != nil {
			return nil, err
		}
		compressed := make([]byte, compLen)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, err
		}
		filter := Compression{Kind: CompressionKind(filterKind), Level: filterLevel}
		raw, err := decompressBytes(filter, compressed, rawLen)
		if err != nil {
			return nil, err
		}
		mv := &memVar{
			v:      Var{Name: name, Type: VarType(typ), Dims: dims},
			data:   raw,
			attrs:  make(map[string]interface{}),
			filter: filter,
		}
		nAVars, err := readInt(r)
		if err != nil {
			return nil, err
		}
		for j := 0; j < nAVars; j++ {
			aname, err := readString(r)
			if err != nil {
				return nil, err
			}
			av, err := readAttrValue(r)
			if err != nil {
				return nil, err
			}
			mv.attrs[aname] = av
		}
		m.vars[name] = mv
		m.varOrder = append(m.varOrder, name)
	}
	return m, nil
}

func compressBytes(c Compression, data []byte) ([]byte, error) {
	switch c.Kind {
	case CompressionGzip:
		var buf bytes.Buffer
		level := c.Level
		if level == 0 {
			level = gzip.DefaultCompression
		}
		w, err := gzip.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		var buf bytes.Buffer
		w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstdLevel(c.Level)))
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		// CompressionNone and CompressionSzip (no pure-Go SZIP codec
		// exists in the ecosystem this module draws from; a Szip filter
		// is accepted and recorded but the data is stored uncompressed,
		// and nothing logs the fallback).
		return append([]byte(nil), data...), nil
	}
}

func decompressBytes(c Compression, data []byte, rawLen int) ([]byte, error) {
	switch c.Kind {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		out := make([]byte, rawLen)
		if _, err := io.ReadFull(r, out); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return out, nil
	case CompressionZstd:
		d, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer d.Close()
		out := make([]byte, rawLen)
		if _, err := io.ReadFull(d, out); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return out, nil
	default:
		out := make([]byte, rawLen)
		copy(out, data)
		return out, nil
	}
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 4:
		return zstd.SpeedDefault
	case level <= 7:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func writeString(buf *bytes.Buffer, s string) {
	writeInt(buf, len(s))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readInt(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeInt(buf *bytes.Buffer, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(n)))
	buf.Write(b[:])
}

func readInt(r *bytes.Reader) (int, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// attr value tags
const (
	attrTagString = 0
	attrTagInt32  = 1
	attrTagInt64  = 2
	attrTagFloat  = 3
)

func writeAttrValue(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case string:
		writeInt(buf, attrTagString)
		writeString(buf, val)
	case int32:
		writeInt(buf, attrTagInt32)
		writeInt(buf, int(val))
	case int64:
		writeInt(buf, attrTagInt64)
		writeInt(buf, int(val))
	case float64:
		writeInt(buf, attrTagFloat)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(int64(mathFloatBits(val))))
		buf.Write(b[:])
	default:
		return fmt.Errorf("store: unsupported attribute value type %T", v)
	}
	return nil
}

func readAttrValue(r *bytes.Reader) (interface{}, error) {
	tag, err := readInt(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case attrTagString:
		return readString(r)
	case attrTagInt32:
		n, err := readInt(r)
		return int32(n), err
	case attrTagInt64:
		n, err := readInt(r)
		return int64(n), err
	case attrTagFloat:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		return mathFloatFromBits(int64(binary.LittleEndian.Uint64(b[:]))), nil
	default:
		return nil, fmt.Errorf("store: unknown attribute tag %d", tag)
	}
}
