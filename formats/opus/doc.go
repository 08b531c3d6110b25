// SPDX-License-Identifier: EPL-2.0

// Package opus writes Ogg Opus files using libopus through
// gopkg.in/hraban/opus.v2 and the Ogg page writer from
// github.com/pion/webrtc/v4/pkg/media/oggwriter.
//
// The buffer is resampled to 48 kHz and cut into 20 ms frames. The stream
// opens with enough silence to cover the pre-skip declared in the header, and
// the last page's granule position ends on the final real sample, so players
// drop both the lead-in and the padding of the last frame. Quality in [0,1]
// maps onto 32..256 kbps:
//
//	f, _ := os.Create("mix.opus")
//	defer f.Close()
//	err := opus.Encoder{}.Encode(f, track.Buffer(), 0.7)
//
// Building this package needs cgo and the libopus development headers.
package opus
