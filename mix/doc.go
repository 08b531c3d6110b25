// SPDX-License-Identifier: EPL-2.0

// Package mix places decoded clips on a shared timeline and sums them into a
// single stereo track at TargetRate.
//
// Every clip is resampled, expanded to stereo, scaled by its volume and pan
// law and added into the track at round(offset_ms*TargetRate/1000). Frames
// no clip covers stay exactly zero. Summation is plain addition, so the
// order clips are mixed in does not matter; the Engine still adds them in
// row order so results are reproducible bit for bit.
//
// Accumulated samples are not clamped. Use ApplyOverflow on the finished
// Track to choose between a hard clip and peak normalization.
//
// Basic usage:
//
//	engine := &mix.Engine{PanLaw: mix.PanLinear}
//	track, err := engine.Mix([]mix.Input{
//	    {Spec: mix.ClipSpec{StartOffsetMs: 0, Volume: 1}, Audio: intro},
//	    {Spec: mix.ClipSpec{StartOffsetMs: 500, Volume: 0.5, Pan: -1}, Audio: voice},
//	})
package mix
