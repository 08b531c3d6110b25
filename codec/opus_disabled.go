// SPDX-License-Identifier: EPL-2.0

//go:build noopus

package codec

import "github.com/ik5/audmix/audio"

// Builds tagged noopus skip libopus and cgo entirely.
func registerOpus(*audio.Registry[audio.Encoder]) {}
