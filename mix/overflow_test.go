// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"math"
	"testing"
)

func TestApplyOverflow_Clip(t *testing.T) {
	t.Parallel()

	tr := &Track{Samples: []float32{0.5, -0.5, 1.5, -2, 1, -1}}

	res := ApplyOverflow(tr, OverflowClip, 1)

	want := []float32{0.5, -0.5, 1, -1, 1, -1}
	for i := range want {
		if tr.Samples[i] != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, tr.Samples[i], want[i])
		}
	}
	if res.Peak != 2 {
		t.Errorf("Peak = %v, want 2", res.Peak)
	}
	if res.Clamped != 2 {
		t.Errorf("Clamped = %d, want 2", res.Clamped)
	}
	if res.Gain != 1 {
		t.Errorf("Gain = %v, want 1", res.Gain)
	}
}

func TestApplyOverflow_Normalize(t *testing.T) {
	t.Parallel()

	tr := &Track{Samples: []float32{0.5, -2, 1, 0}}

	res := ApplyOverflow(tr, OverflowNormalize, 1)

	if math.Abs(res.Gain-0.5) > 1e-12 {
		t.Errorf("Gain = %v, want 0.5", res.Gain)
	}
	if res.Clamped != 0 {
		t.Errorf("Clamped = %d, want 0", res.Clamped)
	}

	want := []float32{0.25, -1, 0.5, 0}
	for i := range want {
		if math.Abs(float64(tr.Samples[i]-want[i])) > 1e-6 {
			t.Errorf("Samples[%d] = %v, want %v", i, tr.Samples[i], want[i])
		}
	}
}

func TestApplyOverflow_NormalizeToTarget(t *testing.T) {
	t.Parallel()

	tr := &Track{Samples: []float32{0.9, -0.3}}

	res := ApplyOverflow(tr, OverflowNormalize, 0.45)
	if math.Abs(float64(tr.Peak())-0.45) > 1e-6 {
		t.Errorf("peak after normalize = %v, want 0.45", tr.Peak())
	}
	if math.Abs(res.Gain-0.5) > 1e-6 {
		t.Errorf("Gain = %v, want 0.5", res.Gain)
	}
}

func TestApplyOverflow_NormalizeLeavesQuietTrack(t *testing.T) {
	t.Parallel()

	tr := &Track{Samples: []float32{0.2, -0.4}}

	res := ApplyOverflow(tr, OverflowNormalize, 0)
	if res.Gain != 1 || tr.Samples[0] != 0.2 || tr.Samples[1] != -0.4 {
		t.Errorf("quiet track changed: gain %v, samples %v", res.Gain, tr.Samples)
	}
}

func TestParseOverflowPolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]OverflowPolicy{
		"":          OverflowClip,
		"clip":      OverflowClip,
		"CLAMP":     OverflowClip,
		"normalize": OverflowNormalize,
		"Normalise": OverflowNormalize,
	} {
		got, err := ParseOverflowPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseOverflowPolicy(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	if _, err := ParseOverflowPolicy("limit"); !errors.Is(err, ErrUnknownOverflowPolicy) {
		t.Errorf("ParseOverflowPolicy(limit) error = %v, want ErrUnknownOverflowPolicy", err)
	}

	if OverflowNormalize.String() != "normalize" || OverflowClip.String() != "clip" {
		t.Error("String() does not round trip")
	}
}
