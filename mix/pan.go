// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/audmix/audio"
)

// PanLaw maps a volume and pan value to left and right gains.
type PanLaw int

const (
	// PanLinear attenuates only the side panned away from:
	// left = volume*min(1, 1-pan), right = volume*min(1, 1+pan).
	// Centre passes both channels at volume. Pan is not clamped.
	PanLinear PanLaw = iota
	// PanEqualPower keeps perceived loudness constant across the field:
	// left = volume*cos(θ), right = volume*sin(θ), θ = (pan+1)π/4.
	// Pan is clamped to [-1,1]; centre yields volume/√2 per channel.
	PanEqualPower
)

func (p PanLaw) String() string {
	switch p {
	case PanLinear:
		return "linear"
	case PanEqualPower:
		return "equal-power"
	default:
		return fmt.Sprintf("PanLaw(%d)", int(p))
	}
}

// ParsePanLaw accepts "linear" and "equal-power" (or "equal_power"),
// case-insensitively. An empty name selects PanLinear.
func ParsePanLaw(name string) (PanLaw, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return PanLinear, nil
	case "equal-power", "equal_power", "equalpower":
		return PanEqualPower, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPanLaw, name)
	}
}

// Gains returns the left and right multipliers for volume and pan.
func (p PanLaw) Gains(volume, pan float64) (left, right float64) {
	if p == PanEqualPower {
		theta := (clampPan(pan) + 1) * math.Pi / 4
		return volume * math.Cos(theta), volume * math.Sin(theta)
	}
	return volume * math.Min(1, 1-pan), volume * math.Min(1, 1+pan)
}

func clampPan(pan float64) float64 {
	return math.Max(-1, math.Min(1, pan))
}

// ApplyGainPan returns a new stereo buffer with every left sample scaled by
// the left gain and every right sample by the right gain. stereo is not
// modified. No clamping is applied.
func ApplyGainPan(stereo *audio.Buffer, volume, pan float64, law PanLaw) (*audio.Buffer, error) {
	if err := stereo.Validate(); err != nil {
		return nil, err
	}
	if stereo.Channels != audio.Stereo {
		return nil, fmt.Errorf("%w: gain/pan needs stereo, got %d channels",
			audio.ErrUnsupportedChannelLayout, stereo.Channels)
	}

	lg, rg := law.Gains(volume, pan)
	left, right := float32(lg), float32(rg)

	out := &audio.Buffer{
		Samples:    make([]float32, len(stereo.Samples)),
		SampleRate: stereo.SampleRate,
		Channels:   audio.Stereo,
	}
	for i := 0; i < len(stereo.Samples); i += audio.Stereo {
		out.Samples[i] = stereo.Samples[i] * left
		out.Samples[i+1] = stereo.Samples[i+1] * right
	}

	return out, nil
}
