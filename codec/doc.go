// SPDX-License-Identifier: EPL-2.0

// Package codec binds the format packages to file paths.
//
// FileDecoder opens a file, picks a decoder by extension (wav, wave, aif,
// aiff, mp3, ogg, oga) and returns the whole stream as an audio.Buffer.
// FileEncoder writes a buffer by extension (wav, wave, aif, aiff, opus)
// through a temporary file that is renamed into place.
//
// Failures are *Error values carrying the operation and path:
//
//	buf, err := codec.NewFileDecoder(nil).Decode(ctx, "kick.wav")
//	var cerr *codec.Error
//	if errors.As(err, &cerr) {
//	    log.Printf("%s failed for %s", cerr.Op, cerr.Path)
//	}
//
// The opus encoder needs cgo and libopus; build with -tags noopus to leave
// it out.
package codec
