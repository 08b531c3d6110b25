// SPDX-License-Identifier: EPL-2.0

// Package pcm bridges the go-audio integer buffers used by the WAV and AIFF
// containers and the float32 samples used everywhere else.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// ErrUnsupportedBitDepth is returned for sample sizes other than 8, 16, 24
// and 32 bits.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// HighQuality is the quality at or above which integer containers are
// written with 24-bit samples instead of 16-bit.
const HighQuality = 0.9

// Reader is the part of a go-audio decoder Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Writer is the part of a go-audio encoder WriteBuffer needs.
type Writer interface {
	Write(buf *goaudio.IntBuffer) error
}

// Format describes the integer samples moving through a Reader or Writer.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned8 marks 8-bit data stored as unsigned bytes centred on 128.
	Unsigned8 bool
}

// Validate checks that f can be converted.
func (f Format) Validate() error {
	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, f.BitDepth)
	}
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", audio.ErrDecodeGeometry, f.SampleRate, f.Channels)
	}
	return nil
}

func (f Format) goaudio() *goaudio.Format {
	return &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate}
}

// Source adapts a go-audio decoder to audio.Source.
type Source struct {
	dec    Reader
	format Format
	intBuf *goaudio.IntBuffer
}

// NewSource wraps dec, whose samples are laid out as format describes.
func NewSource(dec Reader, format Format) (*Source, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	return &Source{dec: dec, format: format}, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.Channels }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) Close() error { return nil }

// ReadSamples fills dst with whole frames. go-audio decoders report the end
// of data as a zero-length read, which is turned into io.EOF.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.format.Channels
	if want == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.format.goaudio(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		if s.format.Unsigned8 && s.format.BitDepth == 8 {
			v -= 128
		}
		dst[i] = utils.PCMToFloat(v, s.format.BitDepth)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

// ReadSeeker returns r itself when it can seek, otherwise its whole content
// buffered in memory. The go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// chunkFrames bounds how much of a Buffer is converted per Write.
const chunkFrames = 4096

// WriteBuffer converts buf to integers of format.BitDepth and writes it to w
// in chunks. Samples are clamped to [-1,1]. At least one Write is always
// issued so an empty buffer still yields a valid container.
func WriteBuffer(w Writer, buf *audio.Buffer, format Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := buf.Validate(); err != nil {
		return err
	}

	ib := &goaudio.IntBuffer{
		Format:         format.goaudio(),
		SourceBitDepth: format.BitDepth,
		Data:           make([]int, 0, min(len(buf.Samples), chunkFrames*buf.Channels)),
	}

	step := chunkFrames * buf.Channels
	for off := 0; off == 0 || off < len(buf.Samples); off += step {
		end := min(off+step, len(buf.Samples))

		ib.Data = ib.Data[:0]
		for _, s := range buf.Samples[off:end] {
			v := utils.FloatToPCM(s, format.BitDepth)
			if format.Unsigned8 && format.BitDepth == 8 {
				v += 128
			}
			ib.Data = append(ib.Data, v)
		}

		if err := w.Write(ib); err != nil {
			return fmt.Errorf("writing PCM: %w", err)
		}
	}

	return nil
}

// BitDepthForQuality maps the [0,1] quality knob onto an integer sample
// size.
func BitDepthForQuality(quality float64) int {
	if quality >= HighQuality {
		return 24
	}
	return 16
}
