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

func TestDimensionSizeBoundary(t *testing.T) {
	ds := NewDataset()

	_, err := ds.AddFixedDimension("x", MaxDimSize)
	require.NoError(t, err)

	_, err = ds.AddFixedDimension("y", MaxDimSize+1)
	require.True(t, errors.Is(err, ErrDimensionSizeOutOfRange))
}

func TestOnlyOneUnlimitedDimension(t *testing.T) {
	ds := NewDataset()
	_, err := ds.AddUnlimitedDimension("t")
	require.NoError(t, err)

	_, err = ds.AddUnlimitedDimension("t2")
	require.True(t, errors.Is(err, ErrUnlimitedAlreadyExists))
}

func TestRemoveDimensionInUseIsRejectedAndDatasetUnchanged(t *testing.T) {
	ds := NewDataset()
	x, err := ds.AddFixedDimension("x", 3)
	require.NoError(t, err)
	_, err = ds.AddVariable("v", []*Dimension{x}, F32)
	require.NoError(t, err)

	err = ds.RemoveDimension(x)
	require.True(t, errors.Is(err, ErrDimensionInUse))

	require.Len(t, ds.Dimensions(), 1)
	require.NotNil(t, ds.Dimension("x"))
	require.NotNil(t, ds.Variable("v"))
}

func TestRenameDimensionIsVisibleThroughExistingVariableReference(t *testing.T) {
	ds := NewDataset()
	x, err := ds.AddFixedDimension("x", 3)
	require.NoError(t, err)
	v, err := ds.AddVariable("v", []*Dimension{x}, F32)
	require.NoError(t, err)

	require.NoError(t, ds.RenameDimension(x, "x2"))

	require.Equal(t, "x2", v.Dimensions()[0].Name())
	require.Nil(t, ds.Dimension("x"))
	require.NotNil(t, ds.Dimension("x2"))
}

func TestUnlimitedDimensionMustBeFirst(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", 3)
	tdim, _ := ds.AddUnlimitedDimension("t")

	_, err := ds.AddVariable("bad", []*Dimension{x, tdim}, F32)
	require.True(t, errors.Is(err, ErrUnlimitedDimensionMustBeFirst))
}

func TestDuplicatedDimensionReferences(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", 3)

	_, err := ds.AddVariable("bad", []*Dimension{x, x}, F32)
	require.True(t, errors.Is(err, ErrDuplicatedDimensionReferences))
}

func TestTooManyDimensionsBoundary(t *testing.T) {
	ds := NewDataset()
	dims := make([]*Dimension, MaxVarDims)
	for i := range dims {
		d, err := ds.AddFixedDimension(dimName(i), 1)
		require.NoError(t, err)
		dims[i] = d
	}
	_, err := ds.AddVariable("ok", dims, F32)
	require.NoError(t, err)

	over, err := ds.AddFixedDimension("extra", 1)
	require.NoError(t, err)
	_, err = ds.AddVariable("bad", append(dims, over), F32)
	require.True(t, errors.Is(err, ErrTooManyDimensions))
}

func dimName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	var b []byte
	n := i
	for {
		b = append([]byte{letters[n%26]}, b...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return "d" + string(b)
}

func TestIsRecordVariable(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", 3)
	tdim, _ := ds.AddUnlimitedDimension("t")

	fixed, _ := ds.AddVariable("fixed", []*Dimension{x}, F32)
	record, _ := ds.AddVariable("record", []*Dimension{tdim, x}, F32)

	require.False(t, fixed.IsRecordVariable())
	require.True(t, record.IsRecordVariable())
}

func TestVariableAttributeLifecycle(t *testing.T) {
	ds := NewDataset()
	x, _ := ds.AddFixedDimension("x", 3)
	v, _ := ds.AddVariable("v", []*Dimension{x}, F32)

	a, err := ds.AddVariableAttribute(v, "units", NewTextValue("m"))
	require.NoError(t, err)

	require.NoError(t, ds.RenameVariableAttribute(v, a, "unit"))
	require.Nil(t, v.Attribute("units"))
	require.NotNil(t, v.Attribute("unit"))

	require.NoError(t, ds.RemoveVariableAttribute(v, a))
	require.Nil(t, v.Attribute("unit"))
}

func TestMutationsAreTransactionalOnNameCollision(t *testing.T) {
	ds := NewDataset()
	_, err := ds.AddFixedDimension("x", 3)
	require.NoError(t, err)

	_, err = ds.AddFixedDimension("x", 4)
	require.True(t, errors.Is(err, ErrNameAlreadyUsed))
	require.Equal(t, 3, ds.Dimension("x").Size())
	require.Len(t, ds.Dimensions(), 1)
}
