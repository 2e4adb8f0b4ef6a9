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

// This file contains the header serializer: the magic, version,
// numrecs, and the three tagged lists (dimensions, global attributes,
// variables).

package ncdf3

import "io"

const (
	tagAbsent    int32 = 0
	tagDimension int32 = 10
	tagVariable  int32 = 11
	tagAttribute int32 = 12
)

// countingWriter discards all bytes but counts them, used to measure
// the serialized header length without knowing final begin/vsize
// values yet (they are fixed-width fields, so the count is the same
// either way).
type countingWriter struct{ n int64 }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func writeName(w io.Writer, name string) error {
	if err := writeI32(w, int32(len(name))); err != nil {
		return err
	}
	return writePaddedBlock(w, []byte(name))
}

func writeDimensionEntry(w io.Writer, d *Dimension) error {
	if err := writeName(w, d.name); err != nil {
		return err
	}
	return writeI32(w, d.size) // 0 for the unlimited dimension
}

func writeAttributeEntry(w io.Writer, a *Attribute) error {
	if err := writeName(w, a.name); err != nil {
		return err
	}
	if err := writeI32(w, a.value.typ.Code()); err != nil {
		return err
	}
	if err := writeI32(w, int32(a.value.Len())); err != nil {
		return err
	}
	return writeAttributePayload(w, a.value)
}

func writeAttributeList(w io.Writer, attrs []*Attribute) error {
	if len(attrs) == 0 {
		return writeBE(w, [2]int32{tagAbsent, 0})
	}
	if err := writeBE(w, [2]int32{tagAttribute, int32(len(attrs))}); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := writeAttributeEntry(w, a); err != nil {
			return err
		}
	}
	return nil
}

// layoutLookup resolves a variable's on-disk vsize field and begin
// offset. During the size-only pass (headerSize) it always returns
// zeros, since neither field's encoded width depends on its value.
type layoutLookup func(name string) (vsizeField, begin int64)

func writeVariableEntry(w io.Writer, ds *Dataset, v *Variable, version Version, lookup layoutLookup) error {
	if err := writeName(w, v.name); err != nil {
		return err
	}
	if err := writeI32(w, int32(len(v.dims))); err != nil {
		return err
	}
	for _, d := range v.dims {
		if err := writeI32(w, int32(dimensionID(ds, d))); err != nil {
			return err
		}
	}
	if err := writeAttributeList(w, v.attrs); err != nil {
		return err
	}
	if err := writeI32(w, v.dtype.Code()); err != nil {
		return err
	}

	vsizeField, begin := lookup(v.name)
	if err := writeI32(w, int32(uint32(vsizeField))); err != nil {
		return err
	}
	if version == Offset64Bit {
		return writeI64(w, begin)
	}
	return writeI32(w, int32(begin))
}

func dimensionID(ds *Dataset, d *Dimension) int {
	for i, x := range ds.dims {
		if x == d {
			return i
		}
	}
	return -1
}

// writeHeaderInternal serializes ds's header to w using the given
// numrecs value and layout lookup.
func writeHeaderInternal(w io.Writer, ds *Dataset, version Version, numrecs int64, lookup layoutLookup) error {
	if err := writeBE(w, [4]byte{'C', 'D', 'F', byte(version)}); err != nil {
		return err
	}
	if err := writeI32(w, int32(uint32(numrecs))); err != nil {
		return err
	}

	if len(ds.dims) == 0 {
		if err := writeBE(w, [2]int32{tagAbsent, 0}); err != nil {
			return err
		}
	} else {
		if err := writeBE(w, [2]int32{tagDimension, int32(len(ds.dims))}); err != nil {
			return err
		}
		for _, d := range ds.dims {
			if err := writeDimensionEntry(w, d); err != nil {
				return err
			}
		}
	}

	if err := writeAttributeList(w, ds.gatts); err != nil {
		return err
	}

	if len(ds.vars) == 0 {
		if err := writeBE(w, [2]int32{tagAbsent, 0}); err != nil {
			return err
		}
	} else {
		if err := writeBE(w, [2]int32{tagVariable, int32(len(ds.vars))}); err != nil {
			return err
		}
		for _, v := range ds.vars {
			if err := writeVariableEntry(w, ds, v, version, lookup); err != nil {
				return err
			}
		}
	}

	return nil
}

func zeroLayoutLookup(string) (int64, int64) { return 0, 0 }

// headerSize returns the byte length of ds's serialized header for
// the given version, without requiring variable offsets to be known
// yet.
func headerSize(ds *Dataset, version Version) (int64, error) {
	var cw countingWriter
	if err := writeHeaderInternal(&cw, ds, version, indeterminate, zeroLayoutLookup); err != nil {
		return 0, err
	}
	return cw.n, nil
}

// writeHeader serializes ds's header to w using the offsets and vsize
// fields from p, and the given numrecs value (typically the
// indeterminate marker; the writer patches in the true count once all
// records have been written).
func writeHeader(w io.Writer, ds *Dataset, p *plan, numrecs int64) error {
	lookup := func(name string) (int64, int64) {
		vl := p.layoutFor(name)
		return vl.vsizeField, vl.begin
	}
	return writeHeaderInternal(w, ds, p.version, numrecs, lookup)
}
