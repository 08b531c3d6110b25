// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/ik5/audmix/audio"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"gopkg.in/hraban/opus.v2"
)

const (
	// SampleRate is the only rate the encoder feeds to libopus.
	SampleRate = 48000
	// FrameSize is 20 ms of audio per channel at SampleRate.
	FrameSize = SampleRate / 50

	MinBitrate = 32000
	MaxBitrate = 256000

	// PreSkip is the pre-skip oggwriter writes into the OpusHead header.
	PreSkip = 3840
	// EncoderDelay is the libopus lookahead at 48 kHz outside the
	// restricted low-delay application.
	EncoderDelay = 312

	maxPacketSize = 4000
	payloadType   = 111
)

// Bitrate maps quality in [0,1] linearly onto MinBitrate..MaxBitrate.
// Values outside the range are clamped.
func Bitrate(quality float64) int {
	quality = min(max(quality, 0), 1)
	return MinBitrate + int(quality*float64(MaxBitrate-MinBitrate))
}

// Encoder writes Ogg Opus files. The buffer is resampled to 48 kHz before
// encoding.
type Encoder struct {
	// Bitrate in bits per second. Zero picks it from quality.
	Bitrate int
	// Complexity 0..10 passed to libopus. Zero keeps the library default.
	Complexity int
}

// Encode only needs an io.Writer; the WriteSeeker signature keeps it
// interchangeable with the PCM container encoders.
func (e Encoder) Encode(w io.WriteSeeker, buf *audio.Buffer, quality float64) error {
	return e.EncodeTo(w, buf, quality)
}

func (e Encoder) EncodeTo(w io.Writer, buf *audio.Buffer, quality float64) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if buf.Channels != audio.Mono && buf.Channels != audio.Stereo {
		return fmt.Errorf("%w: %d channels", audio.ErrUnsupportedChannelLayout, buf.Channels)
	}

	pcm, err := audio.Resample(buf, SampleRate)
	if err != nil {
		return err
	}

	enc, err := opus.NewEncoder(SampleRate, pcm.Channels, opus.AppAudio)
	if err != nil {
		return fmt.Errorf("opus: %w", err)
	}

	bitrate := e.Bitrate
	if bitrate == 0 {
		bitrate = Bitrate(quality)
	}
	if err := enc.SetBitrate(bitrate); err != nil {
		return fmt.Errorf("opus: bitrate %d: %w", bitrate, err)
	}
	if e.Complexity > 0 {
		if err := enc.SetComplexity(e.Complexity); err != nil {
			return fmt.Errorf("opus: complexity %d: %w", e.Complexity, err)
		}
	}

	// oggwriter closes its stream when it is an io.Closer; bufio keeps
	// ownership of w with the caller.
	bw := bufio.NewWriter(w)
	ogg, err := oggwriter.NewWith(bw, SampleRate, uint16(pcm.Channels))
	if err != nil {
		return fmt.Errorf("opus: ogg header: %w", err)
	}

	if err := writePackets(enc, ogg, pcm); err != nil {
		return err
	}

	if err := ogg.Close(); err != nil {
		return fmt.Errorf("opus: closing ogg stream: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("opus: %w", err)
	}

	return nil
}

// writePackets encodes pcm in FrameSize chunks and muxes every packet into
// ogg.
//
// oggwriter declares a pre-skip of PreSkip samples, so the stream starts
// with PreSkip-EncoderDelay frames of silence and the first decoded sample
// after the pre-skip is pcm frame 0. Silence is appended until the encoder
// delay is flushed, and the last page's granule is PreSkip plus the pcm
// length, so players trim the zero padding of the final frame.
func writePackets(enc *opus.Encoder, ogg *oggwriter.OggWriter, pcm *audio.Buffer) error {
	frames := pcm.Frames()
	if frames == 0 {
		return nil
	}

	ch := pcm.Channels
	frame := make([]float32, FrameSize*ch)
	data := make([]byte, maxPacketSize)

	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:     2,
			PayloadType: payloadType,
			SSRC:        rand.Uint32(),
		},
	}

	end := PreSkip + frames
	packets := (end + FrameSize - 1) / FrameSize
	for k := range packets {
		fillFrame(frame, pcm, k*FrameSize-(PreSkip-EncoderDelay))

		size, err := enc.EncodeFloat32(frame, data)
		if err != nil {
			return fmt.Errorf("opus: encoding packet %d: %w", k, err)
		}

		pkt.SequenceNumber = uint16(k)
		pkt.Timestamp = timestamp(k, end)
		pkt.Payload = data[:size]
		if err := ogg.WriteRTP(pkt); err != nil {
			return fmt.Errorf("opus: writing page: %w", err)
		}
	}

	return nil
}

// fillFrame copies the FrameSize frames of pcm starting at frame from into
// dst. Frames outside pcm are silence.
func fillFrame(dst []float32, pcm *audio.Buffer, from int) {
	clear(dst)

	ch := pcm.Channels
	lo := max(from, 0)
	hi := min(from+FrameSize, pcm.Frames())
	if lo < hi {
		copy(dst[(lo-from)*ch:], pcm.Samples[lo*ch:hi*ch])
	}
}

// timestamp returns the RTP timestamp that makes oggwriter stamp packet k
// with the granule of its last sample. oggwriter gives the first page
// granule 1 and adds the timestamp delta for every later page.
func timestamp(k, end int) uint32 {
	if k == 0 {
		return 0
	}
	return uint32(granule(k, end) - 1)
}

// granule is the Ogg granule position oggwriter records for packet k of a
// stream whose last decoded sample, pre-skip included, is end.
func granule(k, end int) int {
	if k == 0 {
		return 1
	}
	return min((k+1)*FrameSize, end)
}
