// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/pcm"
)

// Encoder writes signed PCM AIFF files.
type Encoder struct {
	// BitDepth forces the sample size. Zero picks it from quality:
	// 24-bit at quality >= 0.9, 16-bit otherwise.
	BitDepth int
}

func (e Encoder) Encode(w io.WriteSeeker, buf *audio.Buffer, quality float64) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	depth := e.BitDepth
	if depth == 0 {
		depth = pcm.BitDepthForQuality(quality)
	}

	format := pcm.Format{SampleRate: buf.SampleRate, Channels: buf.Channels, BitDepth: depth}
	if err := format.Validate(); err != nil {
		return err
	}

	enc := aiff.NewEncoder(w, buf.SampleRate, depth, buf.Channels)
	if err := pcm.WriteBuffer(enc, buf, format); err != nil {
		return fmt.Errorf("aiff: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("aiff: finalizing header: %w", err)
	}

	return nil
}
