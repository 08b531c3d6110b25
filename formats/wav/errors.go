// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no valid RIFF/WAVE header
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates a WAV payload that is not integer PCM
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")
)
