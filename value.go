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

// This file contains the ElementType tag and the typed Value vector
// that carries a homogeneous sequence of one of the six NetCDF-3
// element types.

package ncdf3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// ElementType is one of the six NetCDF-3 external data types.
type ElementType int32

const (
	I8 ElementType = iota + 1
	U8
	I16
	I32
	F32
	F64
)

// type2Code is the on-disk type tag, per the classic format spec.
var type2Code = [...]int32{0, 1, 2, 3, 4, 5, 6}
var type2Size = [...]int{0, 1, 1, 2, 4, 4, 8}
var type2String = [...]string{"", "I8", "U8", "I16", "I32", "F32", "F64"}

func (t ElementType) valid() bool { return t >= I8 && t <= F64 }

// Code returns the on-disk NetCDF-3 type tag for t.
func (t ElementType) Code() int32 {
	if t.valid() {
		return type2Code[t]
	}
	return 0
}

// elementTypeFromCode maps an on-disk type tag back to an ElementType,
// or reports ok=false for an unrecognized tag.
func elementTypeFromCode(code int32) (ElementType, bool) {
	switch code {
	case 1:
		return I8, true
	case 2:
		return U8, true
	case 3:
		return I16, true
	case 4:
		return I32, true
	case 5:
		return F32, true
	case 6:
		return F64, true
	default:
		return 0, false
	}
}

// Size returns the external (on-disk) size in bytes of one element of t.
func (t ElementType) Size() int {
	if t.valid() {
		return type2Size[t]
	}
	return 0
}

func (t ElementType) String() string {
	if t.valid() {
		return type2String[t]
	}
	return fmt.Sprintf("<%d>", int32(t))
}

// Value is a tagged, homogeneous sequence of one of the six element
// types. The zero Value is not valid; construct one with NewI8Value
// etc.
type Value struct {
	typ ElementType
	i8  []int8
	u8  []uint8
	i16 []int16
	i32 []int32
	f32 []float32
	f64 []float64
}

func NewI8Value(v []int8) Value   { return Value{typ: I8, i8: v} }
func NewU8Value(v []uint8) Value  { return Value{typ: U8, u8: v} }
func NewI16Value(v []int16) Value { return Value{typ: I16, i16: v} }
func NewI32Value(v []int32) Value { return Value{typ: I32, i32: v} }
func NewF32Value(v []float32) Value { return Value{typ: F32, f32: v} }
func NewF64Value(v []float64) Value { return Value{typ: F64, f64: v} }

// NewTextValue constructs a U8-typed Value from a string, the
// conventional representation of NetCDF CHAR data as raw bytes.
func NewTextValue(s string) Value { return Value{typ: U8, u8: []byte(s)} }

// Type reports the element type carried by v.
func (v Value) Type() ElementType { return v.typ }

// Len reports the number of elements in v.
func (v Value) Len() int {
	switch v.typ {
	case I8:
		return len(v.i8)
	case U8:
		return len(v.u8)
	case I16:
		return len(v.i16)
	case I32:
		return len(v.i32)
	case F32:
		return len(v.f32)
	case F64:
		return len(v.f64)
	default:
		return 0
	}
}

// ByteSize reports the number of bytes the elements of v occupy in
// their external (on-disk, un-padded) representation.
func (v Value) ByteSize() int64 { return int64(v.Len()) * int64(v.typ.Size()) }

func (v Value) I8() ([]int8, bool)     { r, ok := v.i8, v.typ == I8; return r, ok }
func (v Value) U8() ([]uint8, bool)    { r, ok := v.u8, v.typ == U8; return r, ok }
func (v Value) I16() ([]int16, bool)   { r, ok := v.i16, v.typ == I16; return r, ok }
func (v Value) I32() ([]int32, bool)   { r, ok := v.i32, v.typ == I32; return r, ok }
func (v Value) F32() ([]float32, bool) { r, ok := v.f32, v.typ == F32; return r, ok }
func (v Value) F64() ([]float64, bool) { r, ok := v.f64, v.typ == F64; return r, ok }

// Text returns v's bytes as a string, valid for any U8-typed value.
func (v Value) Text() (string, bool) {
	if v.typ != U8 {
		return "", false
	}
	return string(v.u8), true
}

// anySlice returns the underlying slice as interface{}, for use with
// encoding/binary.
func (v Value) anySlice() interface{} {
	switch v.typ {
	case I8:
		return v.i8
	case U8:
		return v.u8
	case I16:
		return v.i16
	case I32:
		return v.i32
	case F32:
		return v.f32
	case F64:
		return v.f64
	default:
		return nil
	}
}

// writeArrayPayload writes v's elements in their native external width
// (the numeric-array path: I16 is 2 bytes, never sign-extended),
// followed by zero padding to a 4-byte boundary.
func writeArrayPayload(w io.Writer, v Value) error {
	if err := writeBE(w, v.anySlice()); err != nil {
		return err
	}
	if p := padLen(v.ByteSize()); p > 0 {
		_, err := w.Write(zeros[:p])
		return err
	}
	return nil
}

// readArrayPayload reads n elements of type t from r in their native
// external width, plus trailing padding to a 4-byte boundary.
func readArrayPayload(r io.Reader, t ElementType, n int32) (Value, error) {
	byteLen := int64(n) * int64(t.Size())
	raw, err := readPaddedBlock(r, int32(byteLen))
	if err != nil {
		return Value{}, err
	}
	return decodeArray(t, n, raw)
}

func decodeArray(t ElementType, n int32, raw []byte) (Value, error) {
	br := bytes.NewReader(raw)
	switch t {
	case I8:
		out := make([]int8, n)
		if err := binary.Read(br, binary.BigEndian, out); err != nil {
			return Value{}, newIOErr(err)
		}
		return NewI8Value(out), nil
	case U8:
		return NewU8Value(append([]byte(nil), raw...)), nil
	case I16:
		out := make([]int16, n)
		if err := binary.Read(br, binary.BigEndian, out); err != nil {
			return Value{}, newIOErr(err)
		}
		return NewI16Value(out), nil
	case I32:
		out := make([]int32, n)
		if err := binary.Read(br, binary.BigEndian, out); err != nil {
			return Value{}, newIOErr(err)
		}
		return NewI32Value(out), nil
	case F32:
		out := make([]float32, n)
		if err := binary.Read(br, binary.BigEndian, out); err != nil {
			return Value{}, newIOErr(err)
		}
		return NewF32Value(out), nil
	case F64:
		out := make([]float64, n)
		if err := binary.Read(br, binary.BigEndian, out); err != nil {
			return Value{}, newIOErr(err)
		}
		return NewF64Value(out), nil
	default:
		return Value{}, newErr(ErrKindTypeMismatch, "")
	}
}

// attributeElementSize returns the on-disk element width of t when stored
// as an attribute payload rather than a numeric-array payload. I16 is
// the one type where the two differ: the classic format sign-extends
// attribute SHORT values to a 4-byte representation, while array SHORT
// data keeps its native 2-byte width. See writeAttributePayload.
func attributeElementSize(t ElementType) int {
	if t == I16 {
		return 4
	}
	return t.Size()
}

// writeAttributePayload writes v's elements using the attribute-payload
// width rules (I16 sign-extended to 4 bytes; everything else at its
// native width), then pads to a 4-byte boundary.
func writeAttributePayload(w io.Writer, v Value) error {
	if v.typ == I16 {
		for _, x := range v.i16 {
			if err := writeBE(w, int32(x)); err != nil {
				return err
			}
		}
		return nil // 4 bytes/elem is always a multiple of 4, no padding needed
	}
	return writeArrayPayload(w, v)
}

// readAttributePayload reads n elements of type t from r using the
// attribute-payload width rules.
func readAttributePayload(r io.Reader, t ElementType, n int32) (Value, error) {
	if t == I16 {
		out := make([]int16, n)
		for i := range out {
			v, err := readI32(r)
			if err != nil {
				return Value{}, err
			}
			out[i] = int16(v)
		}
		return NewI16Value(out), nil
	}
	return readArrayPayload(r, t, n)
}
