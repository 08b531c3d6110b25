// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"context"
	"fmt"
	"os"

	"github.com/ik5/audmix/audio"
)

// FileDecoder decodes whole files, picking the codec from the extension.
type FileDecoder struct {
	decoders *audio.Registry[audio.Decoder]
}

// NewFileDecoder uses the built-in decoders when decoders is nil.
func NewFileDecoder(decoders *audio.Registry[audio.Decoder]) *FileDecoder {
	if decoders == nil {
		decoders = NewDecoders()
	}
	return &FileDecoder{decoders: decoders}
}

// Decode reads path into memory. Every failure comes back as *Error with
// Op == OpDecode.
func (d *FileDecoder) Decode(ctx context.Context, path string) (*audio.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, decodeError(path, err)
	}

	dec, ok := d.decoders.Get(extension(path))
	if !ok {
		return nil, decodeError(path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension(path)))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, decodeError(path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, decodeError(path, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, decodeError(path, err)
	}

	if err := buf.Validate(); err != nil {
		return nil, decodeError(path, err)
	}

	return buf, nil
}
