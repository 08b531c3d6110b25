// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when no codec is registered for a file extension
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Op names the failing side of a codec call
type Op string

const (
	OpDecode Op = "decode"
	OpEncode Op = "encode"
)

// Error ties a decode or encode failure to the file it concerns.
type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func decodeError(path string, err error) *Error {
	return &Error{Op: OpDecode, Path: path, Err: err}
}

func encodeError(path string, err error) *Error {
	return &Error{Op: OpEncode, Path: path, Err: err}
}
