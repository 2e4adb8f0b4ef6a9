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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayPayloadI16IsNotSignExtended(t *testing.T) {
	var buf bytes.Buffer
	v := NewI16Value([]int16{1, -2})
	require.NoError(t, writeArrayPayload(&buf, v))

	// two i16 elements = 4 bytes, already a multiple of 4: no padding.
	require.Equal(t, []byte{0x00, 0x01, 0xFF, 0xFE}, buf.Bytes())

	got, err := readArrayPayload(&buf, I16, 2)
	require.NoError(t, err)
	out, ok := got.I16()
	require.True(t, ok)
	require.Equal(t, []int16{1, -2}, out)
}

func TestAttributePayloadI16IsSignExtendedTo4Bytes(t *testing.T) {
	var buf bytes.Buffer
	v := NewI16Value([]int16{1, -2})
	require.NoError(t, writeAttributePayload(&buf, v))

	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x01,
		0xFF, 0xFF, 0xFF, 0xFE,
	}, buf.Bytes())

	got, err := readAttributePayload(&buf, I16, 2)
	require.NoError(t, err)
	out, ok := got.I16()
	require.True(t, ok)
	require.Equal(t, []int16{1, -2}, out)
}

func TestTextAttributePaddedTo4Bytes(t *testing.T) {
	var buf bytes.Buffer
	v := NewTextValue("hello")
	require.NoError(t, writeAttributePayload(&buf, v))
	require.Equal(t, []byte("hello\x00\x00\x00"), buf.Bytes())
}

func TestF32ArrayPayloadBigEndian(t *testing.T) {
	var buf bytes.Buffer
	v := NewF32Value([]float32{1.0, 2.0, 3.0})
	require.NoError(t, writeArrayPayload(&buf, v))
	require.Equal(t, []byte{
		0x3F, 0x80, 0x00, 0x00,
		0x40, 0x00, 0x00, 0x00,
		0x40, 0x40, 0x00, 0x00,
	}, buf.Bytes())
}

func TestElementTypeCodesMatchClassicFormat(t *testing.T) {
	cases := map[ElementType]int32{I8: 1, U8: 2, I16: 3, I32: 4, F32: 5, F64: 6}
	for typ, code := range cases {
		require.Equal(t, code, typ.Code())
		got, ok := elementTypeFromCode(code)
		require.True(t, ok)
		require.Equal(t, typ, got)
	}
}
