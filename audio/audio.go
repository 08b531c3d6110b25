// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder writes a complete Buffer into a container. quality is in [0,1];
// each format maps it onto its own knob (bit depth, bitrate).
type Encoder interface {
	Encode(w io.WriteSeeker, buf *Buffer, quality float64) error
}

// Registry maps a format key (usually a lower-case file extension such as
// "wav", "mp3" or "ogg") to a codec.
type Registry[T any] struct {
	codecs map[string]T

	mtx *sync.Mutex
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		codecs: make(map[string]T),
		mtx:    &sync.Mutex{},
	}
}

// Register stores c under format. Keys are case-insensitive and a leading
// dot is ignored, so ".WAV" and "wav" name the same entry.
func (r *Registry[T]) Register(format string, c T) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = c
}

func (r *Registry[T]) Get(format string) (T, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[normalizeFormat(format)]
	return c, ok
}

// Formats returns the registered keys.
func (r *Registry[T]) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
