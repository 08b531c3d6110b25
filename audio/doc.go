// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level sample plumbing used by the mixer.
//
// This package contains the core building blocks:
//   - Source interface for streaming audio input
//   - Buffer, a fully decoded clip, plus ReadAll to collect a Source into one
//   - Resampler and Resample for sample rate conversion
//   - StereoMixer and ToStereo for channel normalization
//   - Registry for mapping file extensions onto codecs
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors implement this interface so they can be chained.
// A decoded clip is usually drained once into a Buffer:
//
//	buf, err := audio.ReadAll(src)
//
// # Resampling
//
// Resample converts a whole Buffer with cubic interpolation and returns
// exactly round(frames*to/from) frames:
//
//	out, err := audio.Resample(buf, 44100)
//
// The streaming Resampler is available for pipelines. When downsampling, both
// run the source through a Kaiser windowed-sinc low-pass filter first, so
// content above the destination Nyquist frequency is attenuated by about
// 80 dB instead of folding back into the audible band.
//
// # Channel Layout
//
// Only mono and stereo input is accepted. ToStereo duplicates mono into both
// channels and fails with ErrUnsupportedChannelLayout for anything wider.
//
// # Sample Format
//
// Audio samples are float32 in the range [-1.0, 1.0]. Intermediate sums may
// leave that range; clamping happens only when a track is finalized.
package audio
