// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding using
// github.com/jfreymuth/oggvorbis.
//
// The stream's sample rate and channel count are passed through untouched.
// Samples are interleaved float32 values already limited to [-1, 1]:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Decoding only; there is no Vorbis encoder.
package vorbis
