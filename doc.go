// SPDX-License-Identifier: EPL-2.0

// Package audmix renders a timeline of audio clips into one stereo file.
//
// A clip list names source files with a start offset, a volume and a pan
// position. Every clip is decoded, resampled to 44.1 kHz, expanded to
// stereo, scaled and panned, and summed into a single track at its offset.
// The track is then brought back into [-1, 1] and encoded.
//
// # Quick Start
//
//	r := audmix.NewRenderer(
//	    codec.NewFileDecoder(nil),
//	    codec.NewFileEncoder(nil),
//	    audmix.DefaultOptions(),
//	)
//	stats, err := r.RenderFile(ctx, "clips.csv", "mix.wav")
//
// clips.csv has one clip per row and no header:
//
//	0,1.0,0.0,intro.wav
//	500,0.5,-1.0,voice.mp3
//
// # Collaborators
//
// Decoding and encoding are behind the Decoder and Encoder interfaces so
// the renderer can run entirely in memory. The codec package provides the
// file based implementations; the mix package holds the mixing engine and
// can be used on its own.
//
// # Formats
//
// Decoders:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Encoders:
//   - WAV and AIFF, 16-bit or 24-bit by quality
//   - Ogg Opus via formats/opus
//
// See the individual subpackages for more detailed documentation.
package audmix
