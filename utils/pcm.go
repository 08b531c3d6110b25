// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}

// FloatToPCM converts a sample in [-1, 1] to a signed integer of the given
// bit depth (8, 16, 24 or 32). Out of range input is clamped and the result
// is rounded to the nearest step. 8-bit output is signed; containers that
// store unsigned 8-bit PCM must add the offset themselves.
func FloatToPCM(x float32, bitDepth int) int {
	x = Clamp(x)

	var scale float64
	switch bitDepth {
	case 8:
		scale = 127
	case 24:
		scale = 8388607
	case 32:
		scale = 2147483647
	default:
		scale = 32767
	}

	return int(math.Round(float64(x) * scale))
}

// PCMToFloat converts a signed integer sample of the given bit depth to a
// float in [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(float64(v) / 8388608.0)
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
