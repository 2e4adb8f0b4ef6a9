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

// This file contains the layout planner: given a Dataset and a target
// Version, it computes every variable's begin offset, its on-disk
// vsize, the record slab stride, and the serialized header length.

package ncdf3

// indeterminate is the 0xFFFFFFFF sentinel used for an unknown vsize
// or numrecs.
const indeterminate = int64(0xFFFFFFFF)

const maxVsize = int64(1)<<31 - 1 // values beyond this get the indeterminate marker
const maxClassicOffset = int64(1)<<31 - 1

// varLayout is the planned (or, after a read, parsed) placement of one
// variable's payload.
type varLayout struct {
	v *Variable

	begin int64

	// elemCount is the number of elements in one full read: the
	// product of all dimension sizes for a fixed variable, or the
	// product of all dimensions after the first (the "fixed tail")
	// for a record variable.
	elemCount int64

	// sliceBytes is the unpadded byte size of one read: elemCount
	// times the element's external size.
	sliceBytes int64

	// stride is the on-disk footprint of one slice: sliceBytes padded
	// to 4 bytes, except when this is the dataset's only record
	// variable, in which case it equals sliceBytes exactly (the
	// single-record-variable quirk).
	stride int64

	// vsizeField is the value written to (or read from) the header's
	// vsize slot: stride, or the indeterminate marker if stride
	// overflows a signed 32-bit value.
	vsizeField int64
}

func (vl *varLayout) isRecord() bool { return vl.v.IsRecordVariable() }

// plan is the full placement computed by planLayout.
type plan struct {
	version   Version
	headerLen int64
	layouts   []*varLayout
	byName    map[string]*varLayout
	slabSize  int64 // stride from one record to the next
}

func (p *plan) layoutFor(name string) *varLayout { return p.byName[name] }

// varGeometry returns the per-variable slice layouts for ds with only
// elemCount/sliceBytes populated (stride, vsizeField and begin are left
// for the caller to assign), plus whether ds has exactly one record
// variable.
func varGeometry(ds *Dataset) ([]*varLayout, map[string]*varLayout, bool) {
	layouts := make([]*varLayout, 0, len(ds.vars))
	byName := make(map[string]*varLayout, len(ds.vars))
	recordVars := 0

	for _, v := range ds.vars {
		vl := &varLayout{v: v}
		dims := v.dims
		tail := dims
		if vl.isRecord() {
			tail = dims[1:]
			recordVars++
		}
		elems := int64(1)
		for _, d := range tail {
			elems *= int64(d.size)
		}
		vl.elemCount = elems
		vl.sliceBytes = elems * int64(v.dtype.Size())
		layouts = append(layouts, vl)
		byName[v.name] = vl
	}

	return layouts, byName, recordVars == 1
}

// planLayout computes the on-disk placement of every variable in ds
// for the given version. It never mutates ds.
//
// May fail with FileSizeExceeded if a fixed-offset variable would
// start beyond the version's addressable range.
func planLayout(ds *Dataset, version Version) (*plan, error) {
	p := &plan{version: version}
	p.layouts, p.byName, _ = varGeometry(ds)
	singleRecordVar := false
	{
		recordVars := 0
		for _, vl := range p.layouts {
			if vl.isRecord() {
				recordVars++
			}
		}
		singleRecordVar = recordVars == 1
	}

	// header length does not depend on the begin/vsize magnitudes
	// (they are fixed-width fields), so it can be computed from a
	// dummy serialization pass before offsets are assigned.
	headerLen, err := headerSize(ds, version)
	if err != nil {
		return nil, err
	}
	p.headerLen = headerLen

	offs := pad4(headerLen)

	// fixed variables first, in insertion order.
	for _, vl := range p.layouts {
		if vl.isRecord() {
			continue
		}
		vl.begin = offs
		vl.stride = pad4(vl.sliceBytes)
		vl.vsizeField = vsizeFieldFor(vl.stride)
		if version == Classic && vl.begin > maxClassicOffset {
			return nil, newErr(ErrKindFileSizeExceeded, vl.v.name)
		}
		offs += vl.stride
	}

	// then record variables, in insertion order; all share a common
	// slab stride equal to the sum of their per-record footprints.
	p.slabSize = 0
	for _, vl := range p.layouts {
		if !vl.isRecord() {
			continue
		}
		if singleRecordVar {
			vl.stride = vl.sliceBytes
		} else {
			vl.stride = pad4(vl.sliceBytes)
		}
		vl.vsizeField = vsizeFieldFor(vl.stride)
		vl.begin = offs + p.slabSize
		if version == Classic && vl.begin > maxClassicOffset {
			return nil, newErr(ErrKindFileSizeExceeded, vl.v.name)
		}
		p.slabSize += vl.stride
	}

	return p, nil
}

func vsizeFieldFor(stride int64) int64 {
	if stride > maxVsize {
		return indeterminate
	}
	return stride
}
