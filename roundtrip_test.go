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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyDatasetIsExactly32Bytes(t *testing.T) {
	ds := NewDataset()
	path := filepath.Join(t.TempDir(), "empty.nc")

	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 32)
	require.Equal(t, []byte{'C', 'D', 'F', 1}, raw[:4])
	require.Equal(t, make([]byte, 28), raw[4:]) // numrecs=0, three ABSENT lists
}

func TestFixedVariableRoundTrip(t *testing.T) {
	ds := NewDataset()
	x, err := ds.AddFixedDimension("x", 3)
	require.NoError(t, err)
	_, err = ds.AddVariable("v", []*Dimension{x}, F32)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fixed.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.WriteVar("v", NewF32Value([]float32{1.0, 2.0, 3.0})))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	val, err := r.ReadVar("v")
	require.NoError(t, err)
	got, ok := val.F32()
	require.True(t, ok)
	require.Equal(t, []float32{1.0, 2.0, 3.0}, got)
	_, err = r.Close()
	require.NoError(t, err)
}

func TestRecordVariableInterleavingRoundTrip(t *testing.T) {
	ds := NewDataset()
	tdim, err := ds.AddUnlimitedDimension("t")
	require.NoError(t, err)
	_, err = ds.AddVariable("a", []*Dimension{tdim}, I16)
	require.NoError(t, err)
	_, err = ds.AddVariable("b", []*Dimension{tdim}, F64)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "records.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.WriteVar("a", NewI16Value([]int16{1, 2})))
	require.NoError(t, w.WriteVar("b", NewF64Value([]float64{3.0, 4.0})))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, r.Dataset().RecordCount())

	a, err := r.ReadVar("a")
	require.NoError(t, err)
	av, _ := a.I16()
	require.Equal(t, []int16{1, 2}, av)

	b, err := r.ReadVar("b")
	require.NoError(t, err)
	bv, _ := b.F64()
	require.Equal(t, []float64{3.0, 4.0}, bv)
	_, err = r.Close()
	require.NoError(t, err)
}

func TestSingleRecordVariableNoPadRoundTrip(t *testing.T) {
	ds := NewDataset()
	tdim, err := ds.AddUnlimitedDimension("t")
	require.NoError(t, err)
	_, err = ds.AddVariable("a", []*Dimension{tdim}, I8)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "single-record.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.WriteVar("a", NewI8Value([]int8{1, 2, 3, 4, 5})))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// the record payload (5 bytes, unpadded) is the file's final 5 bytes.
	require.Equal(t, []byte{1, 2, 3, 4, 5}, raw[len(raw)-5:])

	r, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 5, r.Dataset().RecordCount())
	val, err := r.ReadVar("a")
	require.NoError(t, err)
	got, _ := val.I8()
	require.Equal(t, []int8{1, 2, 3, 4, 5}, got)
	_, err = r.Close()
	require.NoError(t, err)
}

func TestAttributeRoundTrip(t *testing.T) {
	ds := NewDataset()
	_, err := ds.AddGlobalAttribute("title", NewTextValue("hello"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "attr.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	a := r.Dataset().GlobalAttribute("title")
	require.NotNil(t, a)
	text, ok := a.Value().Text()
	require.True(t, ok)
	require.Equal(t, "hello", text)
	_, err = r.Close()
	require.NoError(t, err)
}

func TestMissingRecordVariableWriteFailsVariableMismatch(t *testing.T) {
	ds := NewDataset()
	tdim, err := ds.AddUnlimitedDimension("t")
	require.NoError(t, err)
	_, err = ds.AddVariable("a", []*Dimension{tdim}, I8)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)

	err = w.Close()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrKindVariableMismatch, e.Kind)
}

func TestOmittedFixedVariableWriteFailsVariableMismatch(t *testing.T) {
	ds := NewDataset()
	x, err := ds.AddFixedDimension("x", 3)
	require.NoError(t, err)
	_, err = ds.AddVariable("v", []*Dimension{x}, F32)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "omitted.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)

	err = w.Close()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrKindVariableMismatch, e.Kind)
}

func TestParseThenSerializeIsByteIdentical(t *testing.T) {
	ds := NewDataset()
	x, err := ds.AddFixedDimension("x", 2)
	require.NoError(t, err)
	_, err = ds.AddVariable("v", []*Dimension{x}, I32)
	require.NoError(t, err)
	_, err = ds.AddGlobalAttribute("note", NewTextValue("hi"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stable.nc")
	w, err := Create(path, ds, Classic)
	require.NoError(t, err)
	require.NoError(t, w.WriteVar("v", NewI32Value([]int32{7, 8})))
	require.NoError(t, w.Close())

	original, err := os.ReadFile(path)
	require.NoError(t, err)

	r, err := Open(path)
	require.NoError(t, err)
	parsed, err := r.Close()
	require.NoError(t, err)

	path2 := filepath.Join(t.TempDir(), "stable2.nc")
	w2, err := Create(path2, parsed, Classic)
	require.NoError(t, err)
	require.NoError(t, w2.WriteVar("v", NewI32Value([]int32{7, 8})))
	require.NoError(t, w2.Close())

	rewritten, err := os.ReadFile(path2)
	require.NoError(t, err)
	require.Equal(t, original, rewritten)
}
