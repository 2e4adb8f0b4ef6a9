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

// This file contains the NetCDF-3 identifier validator. Validation
// operates on raw bytes: UTF-8 is accepted in names but not decoded or
// normalised here (that belongs to a UTF-8 convenience layer outside
// this package).

package ncdf3

// MaxNameSize is the largest number of bytes a dimension, attribute or
// variable name may occupy.
const MaxNameSize = 256

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isUTF8Lead reports whether b is the leading byte of a multi-byte
// UTF-8 sequence (as opposed to a bare continuation byte).
func isUTF8Lead(b byte) bool { return b >= 0xC2 && b <= 0xF4 }

// isUTF8Continuation reports whether b is a UTF-8 continuation byte.
func isUTF8Continuation(b byte) bool { return b >= 0x80 && b <= 0xBF }

func isValidFirstByte(b byte) bool {
	return isASCIIAlnum(b) || b == '_' || isUTF8Lead(b)
}

func isValidTrailingByte(b byte) bool {
	switch b {
	case '_', '.', '+', '-', '@':
		return true
	}
	return isASCIIAlnum(b) || isUTF8Continuation(b) || isUTF8Lead(b)
}

// ValidateName checks name against the NetCDF-3 identifier rules:
// length in [1, MaxNameSize]; first byte a letter, digit, underscore,
// or the leading byte of a UTF-8 sequence; remaining bytes drawn from
// letters, digits, '_', '.', '+', '-', '@' or valid UTF-8 bytes.
//
// Returns an *Error with Kind ErrKindInvalidName and the violated
// NameErrorReason on failure.
func ValidateName(name string) error {
	if len(name) == 0 {
		return newNameErr(name, NameEmpty)
	}
	if len(name) > MaxNameSize {
		return newNameErr(name, NameTooLong)
	}
	if !isValidFirstByte(name[0]) {
		return newNameErr(name, NameBadFirstChar)
	}
	for i := 1; i < len(name); i++ {
		if !isValidTrailingByte(name[i]) {
			return newNameErr(name, NameBadChar)
		}
	}
	return nil
}
