// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding using github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source returned here
// reports two channels; mono files carry the same signal on both. The
// sample rate is the file's own (commonly 44.1 or 48 kHz).
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(source)
//
// There is no MP3 encoder.
package mp3
