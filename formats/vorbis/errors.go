// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbisFile indicates the stream is not Ogg or carries no Vorbis headers
var ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")
