// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

func TestBitrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quality float64
		want    int
	}{
		{quality: 0, want: 32000},
		{quality: 0.5, want: 144000},
		{quality: 0.7, want: 188800},
		{quality: 1, want: 256000},
		{quality: -1, want: 32000},
		{quality: 3, want: 256000},
	}

	for _, tt := range tests {
		if got := Bitrate(tt.quality); got != tt.want {
			t.Errorf("Bitrate(%v) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

// oggPages walks the page headers and returns their granule positions
func oggPages(t *testing.T, data []byte) []uint64 {
	t.Helper()

	var granules []uint64
	for len(data) > 0 {
		if len(data) < 27 || string(data[:4]) != "OggS" {
			t.Fatalf("bad page header at %d bytes from end", len(data))
		}
		segments := int(data[26])
		size := 27 + segments
		for _, s := range data[27 : 27+segments] {
			size += int(s)
		}
		granules = append(granules, binary.LittleEndian.Uint64(data[6:14]))
		data = data[size:]
	}
	return granules
}

func TestEncoder_WritesOggOpus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		buf         *audio.Buffer
		wantPkts    int
		wantGranule uint64
	}{
		{
			// 48000 frames after resampling plus the pre-skip
			name:        "stereo one second",
			buf:         audiotest.Tone(44100, 2, 44100, 440, 0.5),
			wantPkts:    54,
			wantGranule: 51840,
		},
		{
			name:        "mono partial frame",
			buf:         audiotest.Tone(48000, 1, 1000, 440, 0.5),
			wantPkts:    6,
			wantGranule: 4840,
		},
		{
			name:        "single frame",
			buf:         audiotest.Constant(48000, 2, 1, 0.1),
			wantPkts:    5,
			wantGranule: 3841,
		},
		{
			name: "empty",
			buf:  &audio.Buffer{SampleRate: 44100, Channels: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			if err := (Encoder{}).EncodeTo(&out, tt.buf, 0.7); err != nil {
				t.Fatalf("EncodeTo() error = %v", err)
			}

			if !bytes.Contains(out.Bytes(), []byte("OpusHead")) {
				t.Fatal("missing OpusHead")
			}

			// id header and comment header come first
			pages := oggPages(t, out.Bytes())[2:]
			if len(pages) != tt.wantPkts {
				t.Fatalf("got %d audio pages, want %d", len(pages), tt.wantPkts)
			}
			if len(pages) == 0 {
				return
			}

			if last := pages[len(pages)-1]; last != tt.wantGranule {
				t.Errorf("final granule = %d, want %d", last, tt.wantGranule)
			}
			for k := 1; k < len(pages)-1; k++ {
				if want := uint64((k + 1) * FrameSize); pages[k] != want {
					t.Errorf("page %d granule = %d, want %d", k, pages[k], want)
				}
			}
		})
	}
}

func TestEncoder_PreSkipHeader(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := (Encoder{}).EncodeTo(&out, audiotest.Constant(48000, 1, 10, 0), 0.5); err != nil {
		t.Fatalf("EncodeTo() error = %v", err)
	}

	head := bytes.Index(out.Bytes(), []byte("OpusHead"))
	if head < 0 {
		t.Fatal("missing OpusHead")
	}
	if got := binary.LittleEndian.Uint16(out.Bytes()[head+10:]); got != PreSkip {
		t.Errorf("OpusHead pre-skip = %d, want %d", got, PreSkip)
	}
}

func TestFillFrame(t *testing.T) {
	t.Parallel()

	pcm := audiotest.Ramp(48000, 2, 1500, 0.001)
	frame := make([]float32, FrameSize*2)

	tests := []struct {
		name      string
		from      int
		firstReal int // frame index in dst holding pcm frame max(from, 0)
		realCount int
	}{
		{name: "lead-in", from: -FrameSize, realCount: 0},
		{name: "straddles start", from: -100, firstReal: 100, realCount: FrameSize - 100},
		{name: "inside", from: 10, firstReal: 0, realCount: FrameSize},
		{name: "straddles end", from: 1000, firstReal: 0, realCount: 500},
		{name: "tail", from: 1500, realCount: 0},
	}

	for _, tt := range tests {
		fillFrame(frame, pcm, tt.from)

		for f := range FrameSize {
			inPCM := f >= tt.firstReal && f < tt.firstReal+tt.realCount
			for c := range 2 {
				got := frame[f*2+c]
				want := float32(0)
				if inPCM {
					want = pcm.Samples[(tt.from+f)*2+c]
				}
				if got != want {
					t.Fatalf("%s: frame[%d][%d] = %v, want %v", tt.name, f, c, got, want)
				}
			}
		}
	}
}

func TestGranule(t *testing.T) {
	t.Parallel()

	end := PreSkip + 1000
	want := []int{1, 1920, 2880, 3840, 4800, 4840}
	for k, w := range want {
		if got := granule(k, end); got != w {
			t.Errorf("granule(%d, %d) = %d, want %d", k, end, got, w)
		}
	}
}

func TestEncoder_RejectsLayouts(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := (Encoder{}).EncodeTo(&out, audiotest.Constant(44100, 6, 10, 0), 0.5)
	if !errors.Is(err, audio.ErrUnsupportedChannelLayout) {
		t.Errorf("six channels: error = %v, want ErrUnsupportedChannelLayout", err)
	}

	err = (Encoder{}).EncodeTo(&out, &audio.Buffer{SampleRate: 0, Channels: 2}, 0.5)
	if !errors.Is(err, audio.ErrDecodeGeometry) {
		t.Errorf("zero rate: error = %v, want ErrDecodeGeometry", err)
	}
}
