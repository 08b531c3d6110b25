// SPDX-License-Identifier: EPL-2.0

package mix

import "github.com/ik5/audmix/audio"

// ClipSpec describes where and how loud one clip plays.
//
// Volume is nominally in [0,1] and Pan in [-1,1] (full left to full right),
// but values outside those ranges are accepted and applied literally.
type ClipSpec struct {
	StartOffsetMs float64
	Volume        float64
	Pan           float64
	SourcePath    string
}

// Input pairs a ClipSpec with its decoded audio. Several inputs may share
// the same Audio pointer; it is only read.
type Input struct {
	Spec  ClipSpec
	Audio *audio.Buffer
}
