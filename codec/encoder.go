// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ik5/audmix/audio"
)

// FileEncoder writes a buffer to a file, picking the codec from the
// extension. The file only appears at its final path once encoding
// succeeded.
type FileEncoder struct {
	encoders *audio.Registry[audio.Encoder]
}

// NewFileEncoder uses the built-in encoders when encoders is nil.
func NewFileEncoder(encoders *audio.Registry[audio.Encoder]) *FileEncoder {
	if encoders == nil {
		encoders = NewEncoders()
	}
	return &FileEncoder{encoders: encoders}
}

// Encode writes buf to path. Every failure comes back as *Error with
// Op == OpEncode, and no partial file is left behind.
func (e *FileEncoder) Encode(ctx context.Context, buf *audio.Buffer, path string, quality float64) error {
	if err := ctx.Err(); err != nil {
		return encodeError(path, err)
	}

	enc, ok := e.encoders.Get(extension(path))
	if !ok {
		return encodeError(path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension(path)))
	}

	// Same directory so the rename never crosses filesystems
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := writeFile(tmp, enc, buf, quality); err != nil {
		return encodeError(path, errors.Join(err, removeTemp(tmp)))
	}

	if err := os.Rename(tmp, path); err != nil {
		return encodeError(path, errors.Join(err, removeTemp(tmp)))
	}

	return nil
}

func writeFile(name string, enc audio.Encoder, buf *audio.Buffer, quality float64) error {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if err := enc.Encode(f, buf, quality); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func removeTemp(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
