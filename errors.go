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

// This file contains the closed error-kind enumeration shared by every
// component of the package.

package ncdf3

import "fmt"

// ErrorKind is one of a closed set of failure categories. Every
// operation in the package documents which kinds it may return.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrKindIOError
	ErrKindUnexpectedEOF
	ErrKindHeaderInvalid
	ErrKindInvalidName
	ErrKindNameAlreadyUsed
	ErrKindDimensionNotDefined
	ErrKindDimensionInUse
	ErrKindDimensionSizeOutOfRange
	ErrKindUnlimitedAlreadyExists
	ErrKindVariableNotDefined
	ErrKindUndefinedDimension
	ErrKindUnlimitedDimensionMustBeFirst
	ErrKindTooManyDimensions
	ErrKindDuplicatedDimensionReferences
	ErrKindGlobalAttributeNotDefined
	ErrKindVariableAttributeNotDefined
	ErrKindTypeMismatch
	ErrKindLengthMismatch
	ErrKindFileSizeExceeded
	ErrKindVariableMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindIOError:
		return "IoError"
	case ErrKindUnexpectedEOF:
		return "UnexpectedEndOfFile"
	case ErrKindHeaderInvalid:
		return "HeaderInvalid"
	case ErrKindInvalidName:
		return "InvalidName"
	case ErrKindNameAlreadyUsed:
		return "NameAlreadyUsed"
	case ErrKindDimensionNotDefined:
		return "DimensionNotDefined"
	case ErrKindDimensionInUse:
		return "DimensionInUse"
	case ErrKindDimensionSizeOutOfRange:
		return "DimensionSizeOutOfRange"
	case ErrKindUnlimitedAlreadyExists:
		return "UnlimitedAlreadyExists"
	case ErrKindVariableNotDefined:
		return "VariableNotDefined"
	case ErrKindUndefinedDimension:
		return "UndefinedDimension"
	case ErrKindUnlimitedDimensionMustBeFirst:
		return "UnlimitedDimensionMustBeFirst"
	case ErrKindTooManyDimensions:
		return "TooManyDimensions"
	case ErrKindDuplicatedDimensionReferences:
		return "DuplicatedDimensionReferences"
	case ErrKindGlobalAttributeNotDefined:
		return "GlobalAttributeNotDefined"
	case ErrKindVariableAttributeNotDefined:
		return "VariableAttributeNotDefined"
	case ErrKindTypeMismatch:
		return "TypeMismatch"
	case ErrKindLengthMismatch:
		return "LengthMismatch"
	case ErrKindFileSizeExceeded:
		return "FileSizeExceeded"
	case ErrKindVariableMismatch:
		return "VariableMismatch"
	default:
		return fmt.Sprintf("<%d>", int(k))
	}
}

// NameErrorReason is the sub-kind carried by an InvalidName error.
type NameErrorReason int

const (
	_ NameErrorReason = iota
	NameEmpty
	NameTooLong
	NameBadFirstChar
	NameBadChar
)

func (r NameErrorReason) String() string {
	switch r {
	case NameEmpty:
		return "Empty"
	case NameTooLong:
		return "TooLong"
	case NameBadFirstChar:
		return "BadFirstChar"
	case NameBadChar:
		return "BadChar"
	default:
		return fmt.Sprintf("<%d>", int(r))
	}
}

// Error is the concrete error type returned by every package operation.
// Use errors.Is against the package-level Err* sentinels to test the
// kind, and errors.As to recover the fields below.
type Error struct {
	Kind ErrorKind

	// Name is the dimension/variable/attribute name involved, if any.
	Name string
	// NameReason is set when Kind == ErrKindInvalidName.
	NameReason NameErrorReason
	// Offset is a byte offset into a file, if relevant.
	Offset int64
	// Err is the underlying error (I/O failure, EOF, ...), if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKindInvalidName:
		return fmt.Sprintf("ncdf3: invalid name %q: %s", e.Name, e.NameReason)
	case ErrKindIOError:
		if e.Err != nil {
			return fmt.Sprintf("ncdf3: io error: %v", e.Err)
		}
		return "ncdf3: io error"
	case ErrKindUnexpectedEOF:
		return fmt.Sprintf("ncdf3: unexpected end of file at offset %d", e.Offset)
	default:
		if e.Name != "" {
			return fmt.Sprintf("ncdf3: %s: %s", e.Kind, e.Name)
		}
		return fmt.Sprintf("ncdf3: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same Kind, enabling
// errors.Is(err, ncdf3.ErrDimensionInUse) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind ErrorKind, name string) *Error { return &Error{Kind: kind, Name: name} }

func newNameErr(name string, reason NameErrorReason) *Error {
	return &Error{Kind: ErrKindInvalidName, Name: name, NameReason: reason}
}

func newIOErr(err error) *Error { return &Error{Kind: ErrKindIOError, Err: err} }

func newEOFErr(offset int64) *Error { return &Error{Kind: ErrKindUnexpectedEOF, Offset: offset} }

// Sentinel values usable with errors.Is. Only Kind participates in the
// comparison; fields on the target are ignored.
var (
	ErrIOError                     = &Error{Kind: ErrKindIOError}
	ErrUnexpectedEOF                = &Error{Kind: ErrKindUnexpectedEOF}
	ErrHeaderInvalid                = &Error{Kind: ErrKindHeaderInvalid}
	ErrInvalidName                  = &Error{Kind: ErrKindInvalidName}
	ErrNameAlreadyUsed              = &Error{Kind: ErrKindNameAlreadyUsed}
	ErrDimensionNotDefined          = &Error{Kind: ErrKindDimensionNotDefined}
	ErrDimensionInUse               = &Error{Kind: ErrKindDimensionInUse}
	ErrDimensionSizeOutOfRange      = &Error{Kind: ErrKindDimensionSizeOutOfRange}
	ErrUnlimitedAlreadyExists       = &Error{Kind: ErrKindUnlimitedAlreadyExists}
	ErrVariableNotDefined           = &Error{Kind: ErrKindVariableNotDefined}
	ErrUndefinedDimension           = &Error{Kind: ErrKindUndefinedDimension}
	ErrUnlimitedDimensionMustBeFirst = &Error{Kind: ErrKindUnlimitedDimensionMustBeFirst}
	ErrTooManyDimensions            = &Error{Kind: ErrKindTooManyDimensions}
	ErrDuplicatedDimensionReferences = &Error{Kind: ErrKindDuplicatedDimensionReferences}
	ErrGlobalAttributeNotDefined    = &Error{Kind: ErrKindGlobalAttributeNotDefined}
	ErrVariableAttributeNotDefined  = &Error{Kind: ErrKindVariableAttributeNotDefined}
	ErrTypeMismatch                 = &Error{Kind: ErrKindTypeMismatch}
	ErrLengthMismatch               = &Error{Kind: ErrKindLengthMismatch}
	ErrFileSizeExceeded             = &Error{Kind: ErrKindFileSizeExceeded}
	ErrVariableMismatch             = &Error{Kind: ErrKindVariableMismatch}
)
