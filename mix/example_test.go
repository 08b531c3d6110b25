// SPDX-License-Identifier: EPL-2.0

package mix_test

import (
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/mix"
)

func ExampleEngine_Mix() {
	// One second of 22.05 kHz mono and one second of 44.1 kHz stereo
	intro := audiotest.Tone(22050, audio.Mono, 22050, 440, 0.5)
	voice := audiotest.Tone(44100, audio.Stereo, 44100, 220, 0.5)

	engine := &mix.Engine{PanLaw: mix.PanLinear}
	track, err := engine.Mix([]mix.Input{
		{Spec: mix.ClipSpec{StartOffsetMs: 0, Volume: 1, Pan: 0}, Audio: intro},
		{Spec: mix.ClipSpec{StartOffsetMs: 500, Volume: 0.5, Pan: -1}, Audio: voice},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(track.Frames(), track.Duration())
	// Output: 66150 1.5s
}

func ExampleApplyOverflow() {
	track := &mix.Track{Samples: []float32{0.5, 1.5, -2, 0.25}}

	res := mix.ApplyOverflow(track, mix.OverflowClip, 1)

	fmt.Println(track.Samples, res.Clamped)
	// Output: [0.5 1 -1 0.25] 2
}

func ExamplePanLaw_Gains() {
	left, right := mix.PanLinear.Gains(0.8, 0.5)

	fmt.Printf("%.2f %.2f\n", left, right)
	// Output: 0.40 0.80
}
