/*******************************************************************************
*
* Copyright 2024 Holo Corelib Authors
*
* This file is part of holo-corelib.
*
* holo-corelib is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* holo-corelib is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* holo-corelib. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(OutOfRange, "index %d out of range [0, %d)", 5, 3)
	assert.Equal(t, "out of range: index 5 out of range [0, 3)", err.Error())
}

func TestNewWithNoArgsKeepsLiteralFormat(t *testing.T) {
	err := New(InvalidArgument, "k must be <= n")
	assert.Equal(t, "invalid argument: k must be <= n", err.Error())
}

func TestWrapIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(IoError, cause, "write failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.Same(t, cause, err.Unwrap())
}

func TestCodecCarriesCodeAndLabel(t *testing.T) {
	err := Codec(7, "BZ_DATA_ERROR", "bzip2 stream corrupt")
	assert.Equal(t, CodecError, err.Kind)
	assert.Equal(t, 7, err.Code)
	assert.Equal(t, "BZ_DATA_ERROR", err.Label)
}

func TestIsMatchesByKindOnly(t *testing.T) {
	err := Wrap(CrcError, errors.New("bad crc"), "trailer mismatch")
	assert.True(t, errors.Is(err, New(CrcError, "")))
	assert.False(t, errors.Is(err, New(LengthError, "")))
}

func TestKindStringIsLowerCase(t *testing.T) {
	assert.Equal(t, "type mismatch", TypeMismatch.String())
	assert.Equal(t, "unknown error", Kind(999).String())
}
