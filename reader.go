// Copyright 2024 The ncdf3 Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file contains the Reader: header parsing, numrecs inference for
// streaming files, and whole-variable reads addressed through the
// parsed plan.

package ncdf3

import (
	"io"
	"os"
)

// Reader provides read access to a NetCDF-3 file's dataset and
// variable payloads.
type Reader struct {
	f       *os.File
	ds      *Dataset
	version Version
	p       *plan
}

// Open parses the header of the file at path and returns a Reader
// positioned to serve variable reads.
//
// If the header's numrecs field is the indeterminate marker (written
// by a streaming producer that did not know its final record count),
// the true count is inferred from the file's size: (size minus the
// record section's offset) divided by the record slab's stride,
// matching how field implementations of this format have always
// resolved that marker.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIOErr(err)
	}

	ds, version, numrecs, p, err := readHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	recCount := int(numrecs)
	if numrecs == indeterminate {
		recCount, err = inferRecordCount(f, p)
		if err != nil {
			f.Close()
			return nil, err
		}
		log.WithField("file", path).Warnf("ncdf3: numrecs is indeterminate; inferred %d records from file size", recCount)
	}
	ds.setRecordCount(recCount)

	return &Reader{f: f, ds: ds, version: version, p: p}, nil
}

func inferRecordCount(f *os.File, p *plan) (int, error) {
	if p.slabSize == 0 {
		return 0, nil
	}
	info, err := f.Stat()
	if err != nil {
		return 0, newIOErr(err)
	}
	recordStart := recordSectionStart(p)
	avail := info.Size() - recordStart
	if avail < 0 {
		avail = 0
	}
	return int(avail / p.slabSize), nil
}

// recordSectionStart returns the file offset at which the record
// section begins: the begin offset of the first record variable (the
// others follow it at increasing offsets within the slab).
func recordSectionStart(p *plan) int64 {
	for _, vl := range p.layouts {
		if vl.isRecord() {
			return vl.begin
		}
	}
	return 0
}

// Dataset returns the parsed metadata: dimensions, global and
// per-variable attributes, and variable declarations.
func (r *Reader) Dataset() *Dataset { return r.ds }

// ReadVar reads the full contents of the variable named name.
//
// May fail with VariableNotDefined if no such variable exists, or an
// IoError/UnexpectedEndOfFile if the file is shorter than the header
// declares.
func (r *Reader) ReadVar(name string) (Value, error) {
	v := r.ds.Variable(name)
	if v == nil {
		return Value{}, newErr(ErrKindVariableNotDefined, name)
	}
	vl := r.p.layoutFor(name)

	if !vl.isRecord() {
		return r.readSliceAt(vl.begin, v.dtype, int32(vl.elemCount))
	}

	n := r.ds.RecordCount()
	return r.readRecordVar(vl, n)
}

// readRecordVar reads all n records of a record variable, concatenated
// along the unlimited dimension, by striding through the shared slab.
func (r *Reader) readRecordVar(vl *varLayout, n int) (Value, error) {
	recordStart := vl.begin
	parts := make([]Value, 0, n)
	for rec := 0; rec < n; rec++ {
		off := recordStart + int64(rec)*r.p.slabSize
		part, err := r.readSliceAt(off, vl.v.dtype, int32(vl.elemCount))
		if err != nil {
			return Value{}, err
		}
		parts = append(parts, part)
	}
	return concatValues(vl.v.dtype, parts)
}

func (r *Reader) readSliceAt(off int64, t ElementType, n int32) (Value, error) {
	byteLen := int64(n) * int64(t.Size())
	buf := make([]byte, byteLen)
	if _, err := r.f.ReadAt(buf, off); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Value{}, newEOFErr(off)
		}
		return Value{}, newIOErr(err)
	}
	return decodeArray(t, n, buf)
}

// concatValues joins same-typed Values end to end, in order.
func concatValues(t ElementType, parts []Value) (Value, error) {
	switch t {
	case I8:
		var out []int8
		for _, p := range parts {
			v, _ := p.I8()
			out = append(out, v...)
		}
		return NewI8Value(out), nil
	case U8:
		var out []uint8
		for _, p := range parts {
			v, _ := p.U8()
			out = append(out, v...)
		}
		return NewU8Value(out), nil
	case I16:
		var out []int16
		for _, p := range parts {
			v, _ := p.I16()
			out = append(out, v...)
		}
		return NewI16Value(out), nil
	case I32:
		var out []int32
		for _, p := range parts {
			v, _ := p.I32()
			out = append(out, v...)
		}
		return NewI32Value(out), nil
	case F32:
		var out []float32
		for _, p := range parts {
			v, _ := p.F32()
			out = append(out, v...)
		}
		return NewF32Value(out), nil
	case F64:
		var out []float64
		for _, p := range parts {
			v, _ := p.F64()
			out = append(out, v...)
		}
		return NewF64Value(out), nil
	default:
		return Value{}, newErr(ErrKindTypeMismatch, "")
	}
}

// ReadAllVars reads every variable in the dataset, keyed by name.
func (r *Reader) ReadAllVars() (map[string]Value, error) {
	out := make(map[string]Value, len(r.ds.vars))
	for _, v := range r.ds.vars {
		val, err := r.ReadVar(v.name)
		if err != nil {
			return nil, err
		}
		out[v.name] = val
	}
	return out, nil
}

// Close releases the underlying file and returns the parsed dataset.
func (r *Reader) Close() (*Dataset, error) {
	if err := r.f.Close(); err != nil {
		return r.ds, newIOErr(err)
	}
	return r.ds, nil
}
