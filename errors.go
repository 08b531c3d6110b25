// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

// ErrInvalidQuality is returned when the encode quality is outside [0,1]
var ErrInvalidQuality = errors.New("quality must be within [0,1]")
