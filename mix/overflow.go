// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"strings"

	"github.com/ik5/audmix/utils"
)

// OverflowPolicy decides how a finished track is brought back into [-1,1].
type OverflowPolicy int

const (
	// OverflowClip hard-clamps every sample to [-1,1].
	OverflowClip OverflowPolicy = iota
	// OverflowNormalize scales the whole track so its peak equals the
	// target when the peak exceeds it. Quieter tracks are left alone.
	OverflowNormalize
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowClip:
		return "clip"
	case OverflowNormalize:
		return "normalize"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy accepts "clip" and "normalize", case-insensitively.
// An empty name selects OverflowClip.
func ParseOverflowPolicy(name string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "clip", "clamp":
		return OverflowClip, nil
	case "normalize", "normalise":
		return OverflowNormalize, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOverflowPolicy, name)
	}
}

// OverflowResult reports what ApplyOverflow did.
type OverflowResult struct {
	// Peak is the largest absolute sample before any change.
	Peak float32
	// Clamped counts samples that were outside [-1,1] and got clamped.
	Clamped int
	// Gain is the factor applied by normalization, 1 when none was.
	Gain float64
}

// ApplyOverflow rewrites t in place according to policy. target is the
// normalization peak and must be in (0,1]; values outside fall back to 1.
func ApplyOverflow(t *Track, policy OverflowPolicy, target float64) OverflowResult {
	res := OverflowResult{Peak: t.Peak(), Gain: 1}

	if policy == OverflowNormalize {
		if target <= 0 || target > 1 {
			target = 1
		}
		if float64(res.Peak) > target {
			res.Gain = target / float64(res.Peak)
			g := float32(res.Gain)
			for i := range t.Samples {
				t.Samples[i] *= g
			}
		}
	}

	// Rounding in the scale above can leave a sample a hair past full scale
	for i, s := range t.Samples {
		if c := utils.Clamp(s); c != s {
			t.Samples[i] = c
			res.Clamped++
		}
	}

	return res
}
