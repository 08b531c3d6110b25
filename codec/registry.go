// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"path/filepath"
	"slices"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// NewDecoders returns a registry holding every built-in decoder, keyed by
// file extension.
func NewDecoders() *audio.Registry[audio.Decoder] {
	r := audio.NewRegistry[audio.Decoder]()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})

	return r
}

// NewEncoders returns a registry holding every built-in encoder, keyed by
// file extension.
func NewEncoders() *audio.Registry[audio.Encoder] {
	r := audio.NewRegistry[audio.Encoder]()

	r.Register("wav", wav.Encoder{})
	r.Register("wave", wav.Encoder{})
	r.Register("aif", aiff.Encoder{})
	r.Register("aiff", aiff.Encoder{})
	registerOpus(r)

	return r
}

// Formats lists a registry's keys in sorted order.
func Formats[T any](r *audio.Registry[T]) []string {
	keys := r.Formats()
	slices.Sort(keys)
	return keys
}

func extension(path string) string {
	return filepath.Ext(path)
}
