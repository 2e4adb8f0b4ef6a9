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

// This file contains the Writer: header emission, immediate writes of
// fixed variables, and the buffered interleaving of record variables
// that can only be laid out once every record's length is known, at
// Close.

package ncdf3

import (
	"fmt"
	"os"
)

// Writer creates a NetCDF-3 file and writes fixed variables as they
// arrive; record-variable values are buffered until Close, since their
// on-disk interleaving requires every record variable's final length.
type Writer struct {
	f       *os.File
	ds      *Dataset
	version Version
	p       *plan

	fixedWritten map[string]bool
	recordValues map[string][]Value // appended per call to WriteVar
	closed       bool
}

// Create creates a new file at path for ds, in the given version, and
// writes its header immediately with an indeterminate record count.
//
// May fail with FileSizeExceeded if ds's fixed-variable layout does
// not fit the version's addressable range.
func Create(path string, ds *Dataset, version Version) (*Writer, error) {
	p, err := planLayout(ds, version)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, newIOErr(err)
	}

	if err := writeHeader(f, ds, p, indeterminate); err != nil {
		f.Close()
		return nil, err
	}

	w := &Writer{
		f:            f,
		ds:           ds,
		version:      version,
		p:            p,
		fixedWritten: make(map[string]bool),
		recordValues: make(map[string][]Value),
	}

	if err := w.padToRecordSection(); err != nil {
		f.Close()
		return nil, err
	}

	return w, nil
}

// padToRecordSection extends the file through the end of the
// fixed-variable section (the point at which record data begins),
// zero-filling every fixed variable's trailing alignment padding
// regardless of whether the dataset declares any record variables.
func (w *Writer) padToRecordSection() error {
	end := pad4(w.p.headerLen)
	for _, vl := range w.p.layouts {
		if !vl.isRecord() {
			end += vl.stride
		}
	}
	if end == 0 {
		return nil
	}
	if err := w.f.Truncate(end); err != nil {
		return newIOErr(err)
	}
	return nil
}

// WriteVar supplies the full value for the variable named name.
//
// Fixed variables are written to their final position immediately.
// Record variables are buffered and interleaved at Close, once every
// record variable's record count is known to agree.
//
// May fail with VariableNotDefined, TypeMismatch (val's element type
// does not match the variable's declared type), or VariableMismatch
// (val's length is not a multiple of the variable's per-record element
// count, for a record variable, or does not exactly match the
// variable's declared element count, for a fixed variable).
func (w *Writer) WriteVar(name string, val Value) error {
	v := w.ds.Variable(name)
	if v == nil {
		return newErr(ErrKindVariableNotDefined, name)
	}
	if val.Type() != v.dtype {
		return newErr(ErrKindTypeMismatch, name)
	}
	vl := w.p.layoutFor(name)

	if !vl.isRecord() {
		if int64(val.Len()) != vl.elemCount {
			return newErr(ErrKindVariableMismatch, name)
		}
		if err := w.writeSliceAt(vl.begin, val); err != nil {
			return err
		}
		w.fixedWritten[name] = true
		return nil
	}

	if vl.elemCount == 0 || int64(val.Len())%vl.elemCount != 0 {
		return newErr(ErrKindVariableMismatch, name)
	}
	w.recordValues[name] = append(w.recordValues[name], val)
	return nil
}

func (w *Writer) writeSliceAt(off int64, val Value) error {
	buf, err := encodeArray(val)
	if err != nil {
		return err
	}
	if _, err := w.f.WriteAt(buf, off); err != nil {
		return newIOErr(err)
	}
	return nil
}

// encodeArray serializes val in its native external width, unpadded
// (the caller is responsible for alignment when writing into a
// pre-sized slab slot).
func encodeArray(val Value) ([]byte, error) {
	var buf countingBuffer
	if err := writeBE(&buf, val.anySlice()); err != nil {
		return nil, newIOErr(err)
	}
	return buf.b, nil
}

type countingBuffer struct{ b []byte }

func (c *countingBuffer) Write(p []byte) (int, error) {
	c.b = append(c.b, p...)
	return len(p), nil
}

// Close finalizes the file: it interleaves every buffered record
// variable's records into the shared slab, patches the header's
// numrecs field, and closes the underlying file.
//
// May fail with VariableMismatch if a declared fixed variable or
// record variable received no WriteVar calls, or if record variables
// disagree on how many records were supplied.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.checkAllFixedVarsWritten(); err != nil {
		w.f.Close()
		return err
	}

	recCount, err := w.recordCountFromWrites()
	if err != nil {
		w.f.Close()
		return err
	}

	if recCount > 0 {
		if err := w.writeRecords(recCount); err != nil {
			w.f.Close()
			return err
		}
	}

	if err := patchNumRecs(w.f, int64(recCount)); err != nil {
		w.f.Close()
		return err
	}

	w.ds.setRecordCount(recCount)

	if err := w.f.Close(); err != nil {
		return newIOErr(err)
	}
	return nil
}

// checkAllFixedVarsWritten validates that every fixed variable in the
// plan received a WriteVar call; omitting one would otherwise leave
// its slot silently zero-filled by padToRecordSection's Truncate.
func (w *Writer) checkAllFixedVarsWritten() error {
	for _, vl := range w.p.layouts {
		if vl.isRecord() {
			continue
		}
		if !w.fixedWritten[vl.v.name] {
			return &Error{Kind: ErrKindVariableMismatch, Name: vl.v.name,
				Err: fmt.Errorf("no value written for fixed variable %q", vl.v.name)}
		}
	}
	return nil
}

// recordCountFromWrites validates that every record variable received
// the same number of records, and returns that count (0 if the
// dataset has no record variables).
func (w *Writer) recordCountFromWrites() (int, error) {
	count := -1
	for _, vl := range w.p.layouts {
		if !vl.isRecord() {
			continue
		}
		vals, ok := w.recordValues[vl.v.name]
		if !ok || len(vals) == 0 {
			return 0, &Error{Kind: ErrKindVariableMismatch, Name: vl.v.name,
				Err: fmt.Errorf("no values written for record variable %q", vl.v.name)}
		}
		n := 0
		for _, v := range vals {
			n += v.Len()
		}
		if n%int(vl.elemCount) != 0 {
			return 0, newErr(ErrKindLengthMismatch, vl.v.name)
		}
		recs := n / int(vl.elemCount)
		if count == -1 {
			count = recs
		} else if count != recs {
			return 0, newErr(ErrKindVariableMismatch, vl.v.name)
		}
	}
	if count == -1 {
		return 0, nil
	}
	return count, nil
}

// writeRecords writes record 0's slices in variable-declaration order,
// then record 1's, and so on; each slice is cut by sliceRecord from the
// variable's buffered values taken in WriteVar order.
func (w *Writer) writeRecords(recCount int) error {
	recordStart := recordSectionStart(w.p)

	flat := make(map[string][]Value, len(w.recordValues))
	for name, vals := range w.recordValues {
		flat[name] = vals
	}

	for rec := 0; rec < recCount; rec++ {
		recOff := recordStart + int64(rec)*w.p.slabSize
		off := recOff
		for _, vl := range w.p.layouts {
			if !vl.isRecord() {
				continue
			}
			slice, err := sliceRecord(flat[vl.v.name], vl.v.dtype, rec, int(vl.elemCount))
			if err != nil {
				return err
			}
			if err := w.writeSliceAt(off, slice); err != nil {
				return err
			}
			off += vl.stride
		}
	}
	return nil
}

// sliceRecord extracts the elemCount elements belonging to record rec
// from vals, a sequence of Values previously appended via WriteVar
// calls and logically concatenated.
func sliceRecord(vals []Value, t ElementType, rec, elemCount int) (Value, error) {
	whole, err := concatValues(t, vals)
	if err != nil {
		return Value{}, err
	}
	lo, hi := rec*elemCount, (rec+1)*elemCount
	switch t {
	case I8:
		v, _ := whole.I8()
		return NewI8Value(v[lo:hi]), nil
	case U8:
		v, _ := whole.U8()
		return NewU8Value(v[lo:hi]), nil
	case I16:
		v, _ := whole.I16()
		return NewI16Value(v[lo:hi]), nil
	case I32:
		v, _ := whole.I32()
		return NewI32Value(v[lo:hi]), nil
	case F32:
		v, _ := whole.F32()
		return NewF32Value(v[lo:hi]), nil
	case F64:
		v, _ := whole.F64()
		return NewF64Value(v[lo:hi]), nil
	default:
		return Value{}, newErr(ErrKindTypeMismatch, "")
	}
}

// patchNumRecs overwrites the 4-byte numrecs field at its fixed offset
// (immediately after the 4-byte magic/version) with the true record
// count now that it is known.
func patchNumRecs(f *os.File, n int64) error {
	var buf countingBuffer
	if err := writeI32(&buf, int32(uint32(n))); err != nil {
		return newIOErr(err)
	}
	if _, err := f.WriteAt(buf.b, 4); err != nil {
		return newIOErr(err)
	}
	return nil
}
