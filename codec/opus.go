// SPDX-License-Identifier: EPL-2.0

//go:build !noopus

package codec

import (
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/opus"
)

func registerOpus(r *audio.Registry[audio.Encoder]) {
	r.Register("opus", opus.Encoder{})
}
