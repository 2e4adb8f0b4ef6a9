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

package ncdf3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleRecordVariableOmitsTrailingPad(t *testing.T) {
	ds := NewDataset()
	tdim, _ := ds.AddUnlimitedDimension("t")
	_, err := ds.AddVariable("a", []*Dimension{tdim}, I8)
	require.NoError(t, err)

	p, err := planLayout(ds, Classic)
	require.NoError(t, err)

	vl := p.layoutFor("a")
	require.Equal(t, int64(1), vl.sliceBytes) // 1 element, 1 byte
	require.Equal(t, vl.sliceBytes, vl.stride) // unpadded: the quirk
	require.Equal(t, vl.stride, p.slabSize)
}

func TestMultipleRecordVariablesArePaddedIndependently(t *testing.T) {
	ds := NewDataset()
	tdim, _ := ds.AddUnlimitedDimension("t")
	_, err := ds.AddVariable("a", []*Dimension{tdim}, I16)
	require.NoError(t, err)
	_, err = ds.AddVariable("b", []*Dimension{tdim}, F64)
	require.NoError(t, err)

	p, err := planLayout(ds, Classic)
	require.NoError(t, err)

	a := p.layoutFor("a")
	b := p.layoutFor("b")
	require.Equal(t, int64(2), a.sliceBytes)
	require.Equal(t, int64(4), a.stride) // padded to 4
	require.Equal(t, int64(8), b.sliceBytes)
	require.Equal(t, int64(8), b.stride)
	require.Equal(t, a.begin+a.stride, b.begin)
	require.Equal(t, a.stride+b.stride, p.slabSize)
}

func TestFixedVariableOffsetsAreSequentialInInsertionOrder(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", 3)
	_, err := ds.AddVariable("a", []*Dimension{x}, F32) // 12 bytes
	require.NoError(t, err)
	_, err = ds.AddVariable("b", []*Dimension{x}, I8) // 3 bytes, padded to 4
	require.NoError(t, err)

	p, err := planLayout(ds, Classic)
	require.NoError(t, err)

	a := p.layoutFor("a")
	b := p.layoutFor("b")
	require.Equal(t, a.begin+12, b.begin)
	require.Equal(t, int64(4), b.stride)
}

func TestClassicFileSizeExceededWhile64BitSucceeds(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", MaxDimSize)
	_, err := ds.AddVariable("huge1", []*Dimension{x}, F64)
	require.NoError(t, err)
	_, err = ds.AddVariable("huge2", []*Dimension{x}, F64)
	require.NoError(t, err)

	_, err = planLayout(ds, Classic)
	require.True(t, errors.Is(err, ErrFileSizeExceeded))

	_, err = planLayout(ds, Offset64Bit)
	require.NoError(t, err)
}

func TestEmptyDatasetHeaderSize(t *testing.T) {
	ds := NewDataset()
	n, err := headerSize(ds, Classic)
	require.NoError(t, err)
	// magic+version(4) + numrecs(4) + 3 absent tagged lists (8 each)
	require.Equal(t, int64(4+4+8*3), n)
}
