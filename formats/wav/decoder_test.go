// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/pcm"
)

// Helper function to create a minimal WAV file around a raw payload
func createWAVFile(sampleRate, channels, bitsPerSample int, formatTag uint16, payload []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(payload))
	riffSize := 36 + dataSize

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, formatTag)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(payload)

	return buf.Bytes()
}

func int16Payload(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte) *audio.Buffer {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return buf
}

func TestDecoder_PCM16(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, formatPCM, int16Payload(0, 16384, -16384, -32768))
	buf := decodeAll(t, data)

	if buf.SampleRate != 8000 || buf.Channels != 1 {
		t.Errorf("geometry = %d Hz / %d ch, want 8000 / 1", buf.SampleRate, buf.Channels)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if len(buf.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Samples), len(want))
	}
	for i := range want {
		if buf.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Samples[i], want[i])
		}
	}
}

func TestDecoder_StereoKeepsInterleaving(t *testing.T) {
	t.Parallel()

	data := createWAVFile(44100, 2, 16, formatPCM, int16Payload(8192, -8192, 16384, -16384))
	buf := decodeAll(t, data)

	if buf.Channels != 2 || buf.Frames() != 2 {
		t.Fatalf("got %d ch / %d frames, want 2 / 2", buf.Channels, buf.Frames())
	}
	want := []float32{0.25, -0.25, 0.5, -0.5}
	for i := range want {
		if buf.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Samples[i], want[i])
		}
	}
}

func TestDecoder_PCM8IsUnsigned(t *testing.T) {
	t.Parallel()

	data := createWAVFile(11025, 1, 8, formatPCM, []byte{128, 192, 0, 64})
	buf := decodeAll(t, data)

	want := []float32{0, 0.5, -1, -0.5}
	if len(buf.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Samples), len(want))
	}
	for i := range want {
		if buf.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Samples[i], want[i])
		}
	}
}

func TestDecoder_PCM24(t *testing.T) {
	t.Parallel()

	// 0x400000 = half scale, 0x800000 = -full scale (little-endian)
	payload := []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0x80}
	buf := decodeAll(t, createWAVFile(48000, 1, 24, formatPCM, payload))

	want := []float32{0.5, -1}
	for i := range want {
		if buf.Samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Samples[i], want[i])
		}
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := createWAVFile(16000, 1, 16, formatPCM, int16Payload(1, 2, 3))

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", buf.Frames())
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	wrongMarker := new(bytes.Buffer)
	wrongMarker.WriteString("RIFF")
	binary.Write(wrongMarker, binary.LittleEndian, uint32(36))
	wrongMarker.WriteString("NOPE")

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "not a wav file", data: []byte("NOT A WAV FILE DATA"), wantErr: ErrNotWavFile},
		{name: "wrong WAVE marker", data: wrongMarker.Bytes(), wantErr: ErrNotWavFile},
		{name: "truncated header", data: []byte("RIFF\x00"), wantErr: ErrNotWavFile},
		{name: "empty", data: nil, wantErr: ErrNotWavFile},
		{name: "IEEE float", data: createWAVFile(44100, 1, 32, 3, make([]byte, 8)), wantErr: ErrUnsupportedEncoding},
		{name: "12-bit", data: createWAVFile(44100, 1, 12, formatPCM, make([]byte, 4)), wantErr: pcm.ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecoder_ErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(strings.NewReader("definitely not audio"))
	if err == nil || !strings.Contains(err.Error(), "not a WAV file") {
		t.Errorf("Decode() error = %v, want message naming the format", err)
	}
}

func BenchmarkDecoder(b *testing.B) {
	payload := make([]byte, 44100*2*2)
	data := createWAVFile(44100, 2, 16, formatPCM, payload)

	b.ReportAllocs()
	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(data))
		_, _ = audio.ReadAll(src)
	}
}
