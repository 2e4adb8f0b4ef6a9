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

// This file contains the header parser: magic/version validation and
// the three tagged lists. The lists are always parsed in the order
// dimensions, global attributes, variables; a list whose tag is not the
// one expected at its position is logged as a warning and then parsed
// as the expected kind of list, not as the kind its tag names.

package ncdf3

import "io"

// readHeader parses a NetCDF-3 header from r (which must be positioned
// at the start of the file) and returns the resulting Dataset, the
// parsed on-disk version, the raw numrecs field (which may be the
// indeterminate marker), and a plan describing where each variable's
// payload begins.
func readHeader(r io.Reader) (ds *Dataset, version Version, numrecs int64, p *plan, err error) {
	var magic [4]byte
	if err := readBE(r, &magic); err != nil {
		return nil, 0, 0, nil, err
	}
	if magic[0] != 'C' || magic[1] != 'D' || magic[2] != 'F' {
		return nil, 0, 0, nil, newErr(ErrKindHeaderInvalid, "")
	}
	switch magic[3] {
	case 1:
		version = Classic
	case 2:
		version = Offset64Bit
	default:
		return nil, 0, 0, nil, newErr(ErrKindHeaderInvalid, "")
	}

	rawNumrecs, err := readI32(r)
	if err != nil {
		return nil, 0, 0, nil, err
	}
	numrecs = int64(uint32(rawNumrecs))

	ds = NewDataset()

	if err := readDimensionList(r, ds); err != nil {
		return nil, 0, 0, nil, err
	}
	if err := readAttributeList(r, func(name string, v Value) error {
		_, err := ds.AddGlobalAttribute(name, v)
		return err
	}); err != nil {
		return nil, 0, 0, nil, err
	}

	vr, err := readVariableList(r, ds, version)
	if err != nil {
		return nil, 0, 0, nil, err
	}

	return ds, version, numrecs, vr, nil
}

// readTag reads the two-int32 (tag, count) prefix shared by every
// tagged list, and validates the tag against want (or tagAbsent, which
// is always accepted and forces count to 0).
func readTag(r io.Reader, want int32) (int32, error) {
	tag, err := readI32(r)
	if err != nil {
		return 0, err
	}
	count, err := readI32(r)
	if err != nil {
		return 0, err
	}
	if tag == tagAbsent {
		return 0, nil
	}
	if tag != want {
		log.Warnf("ncdf3: unexpected tag %d where %d was expected; continuing", tag, want)
	}
	if count < 0 {
		return 0, newErr(ErrKindHeaderInvalid, "")
	}
	return count, nil
}

func readName(r io.Reader) (string, error) {
	n, err := readI32(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", newErr(ErrKindHeaderInvalid, "")
	}
	raw, err := readPaddedBlock(r, n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func readDimensionList(r io.Reader, ds *Dataset) error {
	count, err := readTag(r, tagDimension)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return err
		}
		size, err := readI32(r)
		if err != nil {
			return err
		}
		if size == 0 {
			if _, err := ds.AddUnlimitedDimension(name); err != nil {
				return err
			}
			continue
		}
		if _, err := ds.AddFixedDimension(name, int(size)); err != nil {
			return err
		}
	}
	return nil
}

// readAttributeList parses an attribute tagged list, handing each
// decoded (name, value) pair to add.
func readAttributeList(r io.Reader, add func(name string, v Value) error) error {
	count, err := readTag(r, tagAttribute)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return err
		}
		code, err := readI32(r)
		if err != nil {
			return err
		}
		t, ok := elementTypeFromCode(code)
		if !ok {
			return newErr(ErrKindHeaderInvalid, name)
		}
		n, err := readI32(r)
		if err != nil {
			return err
		}
		if n < 0 {
			return newErr(ErrKindHeaderInvalid, name)
		}
		v, err := readAttributePayload(r, t, n)
		if err != nil {
			return err
		}
		if err := add(name, v); err != nil {
			return err
		}
	}
	return nil
}

// readVariableList parses the variable tagged list, defining each
// variable on ds and assembling the corresponding plan. The file's
// on-disk vsize field is parsed but not trusted for addressing (it is
// recomputed geometrically, matching the package's read path for
// payload access); begin is the one field taken as ground truth from
// the file.
func readVariableList(r io.Reader, ds *Dataset, version Version) (*plan, error) {
	count, err := readTag(r, tagVariable)
	if err != nil {
		return nil, err
	}

	type parsed struct {
		name  string
		begin int64
	}
	entries := make([]parsed, 0, count)

	for i := int32(0); i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return nil, err
		}
		ndims, err := readI32(r)
		if err != nil {
			return nil, err
		}
		if ndims < 0 || int(ndims) > MaxVarDims {
			return nil, newErr(ErrKindHeaderInvalid, name)
		}
		dims := make([]*Dimension, ndims)
		for j := range dims {
			id, err := readI32(r)
			if err != nil {
				return nil, err
			}
			if id < 0 || int(id) >= len(ds.dims) {
				return nil, newErr(ErrKindHeaderInvalid, name)
			}
			dims[j] = ds.dims[id]
		}

		var attrs []*Attribute
		if err := readAttributeList(r, func(aname string, v Value) error {
			attrs = append(attrs, &Attribute{name: aname, value: v})
			return nil
		}); err != nil {
			return nil, err
		}

		code, err := readI32(r)
		if err != nil {
			return nil, err
		}
		t, ok := elementTypeFromCode(code)
		if !ok {
			return nil, newErr(ErrKindHeaderInvalid, name)
		}

		if _, err := readI32(r); err != nil { // vsize: recomputed, not trusted
			return nil, err
		}

		var begin int64
		if version == Offset64Bit {
			begin, err = readI64(r)
		} else {
			var b32 int32
			b32, err = readI32(r)
			begin = int64(b32)
		}
		if err != nil {
			return nil, err
		}

		v, err := ds.AddVariable(name, dims, t)
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			if _, err := ds.AddVariableAttribute(v, a.name, a.value); err != nil {
				return nil, err
			}
		}

		entries = append(entries, parsed{name: name, begin: begin})
	}

	layouts, byName, singleRecordVar := varGeometry(ds)
	p := &plan{version: version, layouts: layouts, byName: byName}

	for _, e := range entries {
		vl := byName[e.name]
		vl.begin = e.begin
		if vl.isRecord() && singleRecordVar {
			vl.stride = vl.sliceBytes
		} else {
			vl.stride = pad4(vl.sliceBytes)
		}
		vl.vsizeField = vsizeFieldFor(vl.stride)
	}

	p.slabSize = 0
	for _, vl := range layouts {
		if vl.isRecord() {
			p.slabSize += vl.stride
		}
	}

	return p, nil
}
