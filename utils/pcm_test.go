// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float32
		bitDepth int
		want     int
	}{
		{name: "zero 16-bit", input: 0, bitDepth: 16, want: 0},
		{name: "max positive 16-bit", input: 1, bitDepth: 16, want: math.MaxInt16},
		{name: "max negative 16-bit", input: -1, bitDepth: 16, want: -math.MaxInt16},
		{name: "half 16-bit", input: 0.5, bitDepth: 16, want: 16384},
		{name: "clamp over max 16-bit", input: 1.5, bitDepth: 16, want: math.MaxInt16},
		{name: "clamp under min 16-bit", input: -7, bitDepth: 16, want: -math.MaxInt16},
		{name: "max positive 24-bit", input: 1, bitDepth: 24, want: 8388607},
		{name: "half 24-bit", input: -0.5, bitDepth: 24, want: -4194304},
		{name: "max positive 8-bit", input: 1, bitDepth: 8, want: 127},
		{name: "max positive 32-bit", input: 1, bitDepth: 32, want: math.MaxInt32},
		{name: "unknown depth falls back to 16-bit", input: 1, bitDepth: 12, want: math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToPCM(tt.input, tt.bitDepth)
			if got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %d, want %d", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestPCMToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    int
		bitDepth int
		want     float32
	}{
		{name: "zero", input: 0, bitDepth: 16, want: 0},
		{name: "min 16-bit", input: math.MinInt16, bitDepth: 16, want: -1},
		{name: "half 16-bit", input: 16384, bitDepth: 16, want: 0.5},
		{name: "min 8-bit", input: -128, bitDepth: 8, want: -1},
		{name: "min 24-bit", input: -8388608, bitDepth: 24, want: -1},
		{name: "half 32-bit", input: 1 << 30, bitDepth: 32, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := PCMToFloat(tt.input, tt.bitDepth)
			if got != tt.want {
				t.Errorf("PCMToFloat(%d, %d) = %v, want %v", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

// TestFloatToPCMRoundTrip checks that converting back and forth stays within one step
func TestFloatToPCMRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{8, 16, 24} {
		step := 1.0 / float64(int(1)<<(depth-1))
		for f := -1.0; f <= 1.0; f += 0.01 {
			back := PCMToFloat(FloatToPCM(float32(f), depth), depth)
			if diff := math.Abs(float64(back) - f); diff > 2*step {
				t.Errorf("depth %d: %v -> %v (diff %v)", depth, f, back, diff)
			}
		}
	}
}

// TestFloatToPCMMonotonic tests that the conversion never decreases
func TestFloatToPCMMonotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToPCM(-1.0, 16)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := FloatToPCM(float32(f), 16)
		if curr < prev {
			t.Errorf("FloatToPCM not monotonic: f=%v gives %v, previous was %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ in, want float32 }{
		{0.25, 0.25}, {1, 1}, {-1, -1}, {1.01, 1}, {-3, -1},
	} {
		if got := Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestFloatToPCM_ZeroAllocs verifies no heap allocations
func TestFloatToPCM_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = FloatToPCM(0.5, 24)
	})

	if allocs > 0 {
		t.Errorf("FloatToPCM allocated %v times, want 0", allocs)
	}
}

// BenchmarkFloatToPCM simulates converting one second of stereo audio
func BenchmarkFloatToPCM(b *testing.B) {
	floatSamples := make([]float32, 88200)
	intSamples := make([]int, 88200)

	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			intSamples[j] = FloatToPCM(floatSamples[j], 16)
		}
	}
}
