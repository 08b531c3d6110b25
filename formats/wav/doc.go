// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// It uses github.com/go-audio/wav for container handling and the pcm
// package for sample conversion.
//
// # Supported Formats
//
//   - Integer PCM, 8-bit (unsigned), 16, 24 and 32-bit
//   - WAVE_FORMAT_EXTENSIBLE carrying integer PCM
//   - Any channel count and sample rate
//
// IEEE float and compressed payloads are rejected with
// ErrUnsupportedEncoding.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(source)
//
// Inputs that cannot seek are buffered in memory first.
//
// # Writing WAV Files
//
// Encoder writes a whole audio.Buffer. The quality argument selects the
// sample size: 24-bit at 0.9 and above, 16-bit below. Set BitDepth to
// override it.
//
//	file, _ := os.Create("mix.wav")
//	err := wav.Encoder{}.Encode(file, track.Buffer(), 0.7)
//
// Samples outside [-1,1] are clamped.
package wav
