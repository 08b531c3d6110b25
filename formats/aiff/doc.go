// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// # Supported Formats
//
//   - Uncompressed AIFF, signed PCM 8, 16, 24 and 32-bit
//   - Any channel count and sample rate
//
// AIFF-C compressed payloads are not supported.
//
// # Decoding
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//
// The returned audio.Source yields float32 samples in [-1.0, 1.0].
//
// # Encoding
//
// Encoder writes a whole audio.Buffer. As with WAV, quality >= 0.9 selects
// 24-bit samples and anything lower 16-bit; BitDepth overrides it.
package aiff
