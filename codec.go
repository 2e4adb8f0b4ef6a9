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

// This file contains the big-endian primitive codec: fixed-width
// integer/float read and write, and the 4-byte zero padding rule
// applied to every variable-length byte block in the format.

package ncdf3

import (
	"encoding/binary"
	"io"
)

// pad4 rounds x up to the next multiple of 4.
func pad4(x int64) int64 { return (x + 3) &^ 3 }

// padLen returns the number of zero bytes needed to pad n bytes to a
// multiple of 4.
func padLen(n int64) int64 { return pad4(n) - n }

var zeros [4]byte

// writePaddedBlock writes the raw bytes b followed by zero padding so
// the total written is a multiple of 4.
func writePaddedBlock(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	if p := padLen(int64(len(b))); p > 0 {
		if _, err := w.Write(zeros[:p]); err != nil {
			return err
		}
	}
	return nil
}

// readPaddedBlock reads ceil(n/4)*4 bytes from r and returns the first
// n of them. It reports UnexpectedEndOfFile (via the returned error)
// if fewer bytes are available.
func readPaddedBlock(r io.Reader, n int32) ([]byte, error) {
	if n < 0 {
		return nil, newErr(ErrKindHeaderInvalid, "")
	}
	total := pad4(int64(n))
	buf := make([]byte, total)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, newEOFErr(0)
		}
		return nil, newIOErr(err)
	}
	return buf[:n], nil
}

func writeBE(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.BigEndian, v)
}

func readBE(r io.Reader, v interface{}) error {
	err := binary.Read(r, binary.BigEndian, v)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return newEOFErr(0)
	}
	if err != nil {
		return newIOErr(err)
	}
	return nil
}

func writeI32(w io.Writer, v int32) error { return writeBE(w, v) }
func readI32(r io.Reader) (int32, error) {
	var v int32
	err := readBE(r, &v)
	return v, err
}

func writeI64(w io.Writer, v int64) error { return writeBE(w, v) }
func readI64(r io.Reader) (int64, error) {
	var v int64
	err := readBE(r, &v)
	return v, err
}
