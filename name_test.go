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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateNameLengthBoundary(t *testing.T) {
	require.NoError(t, ValidateName(strings.Repeat("a", MaxNameSize)))

	err := ValidateName(strings.Repeat("a", MaxNameSize+1))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidName))
	var ne *Error
	require.True(t, errors.As(err, &ne))
	require.Equal(t, NameTooLong, ne.NameReason)
}

func TestValidateNameEmpty(t *testing.T) {
	err := ValidateName("")
	require.True(t, errors.Is(err, ErrInvalidName))
	var ne *Error
	require.True(t, errors.As(err, &ne))
	require.Equal(t, NameEmpty, ne.NameReason)
}

func TestValidateNameFirstByte(t *testing.T) {
	require.NoError(t, ValidateName("_ok"))
	require.NoError(t, ValidateName("x1"))

	err := ValidateName(".bad")
	require.True(t, errors.Is(err, ErrInvalidName))
	var ne *Error
	require.True(t, errors.As(err, &ne))
	require.Equal(t, NameBadFirstChar, ne.NameReason)
}

func TestValidateNameTrailingBytes(t *testing.T) {
	require.NoError(t, ValidateName("a.b+c-d@e_f"))
	require.Error(t, ValidateName("a b"))
}
