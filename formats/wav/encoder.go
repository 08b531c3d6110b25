// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/pcm"
)

// Encoder writes integer PCM WAV files.
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

	format := pcm.Format{
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
		BitDepth:   depth,
		Unsigned8:  true,
	}
	if err := format.Validate(); err != nil {
		return err
	}

	enc := wav.NewEncoder(w, buf.SampleRate, depth, buf.Channels, formatPCM)
	if err := pcm.WriteBuffer(enc, buf, format); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalizing header: %w", err)
	}

	return nil
}
