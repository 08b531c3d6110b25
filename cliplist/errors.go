// SPDX-License-Identifier: EPL-2.0

package cliplist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrColumnCount = errors.New("wrong number of columns")
	ErrNotNumber   = errors.New("not a finite number")
	ErrEmptyPath   = errors.New("empty source path")
)

// InputFormatError reports a row that cannot be turned into a clip. Row is
// the 1-based line number; Column is 1-based and zero when the whole row is
// at fault.
type InputFormatError struct {
	File   string
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *InputFormatError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "row %d", e.Row)
	if e.Column > 0 {
		fmt.Fprintf(&b, ", column %d", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}
