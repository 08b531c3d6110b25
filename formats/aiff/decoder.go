// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/pcm"
)

// Decoder reads uncompressed AIFF files (8, 16, 24 or 32-bit signed PCM).
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	src, err := pcm.NewSource(dec, pcm.Format{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   int(dec.BitDepth),
	})
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	return src, nil
}
