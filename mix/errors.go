// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOffset is returned when a clip starts before time zero or
	// its offset is not a finite number.
	ErrInvalidOffset = errors.New("invalid clip offset")
	// ErrOffsetOutOfRange is returned when a valid offset starts the clip
	// past MaxStartFrame.
	ErrOffsetOutOfRange = errors.New("clip offset out of range")
	// ErrNoAudio is returned when an Input carries no decoded audio.
	ErrNoAudio = errors.New("clip has no audio")
	// ErrUnknownPanLaw is returned by ParsePanLaw for unrecognized names.
	ErrUnknownPanLaw = errors.New("unknown pan law")
	// ErrUnknownOverflowPolicy is returned by ParseOverflowPolicy for
	// unrecognized names.
	ErrUnknownOverflowPolicy = errors.New("unknown overflow policy")
)

// ClipError ties a failure to the clip that caused it. Index is the
// zero-based position of the clip in the mix input.
type ClipError struct {
	Index int
	Path  string
	Err   error
}

func (e *ClipError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("clip %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("clip %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *ClipError) Unwrap() error {
	return e.Err
}
