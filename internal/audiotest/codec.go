// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ik5/audmix/audio"
)

// Decoder serves buffers from memory by path. Paths with an entry in Errs
// fail with that error; unknown paths fail with os.ErrNotExist. Safe for
// concurrent use.
type Decoder struct {
	Buffers map[string]*audio.Buffer
	Errs    map[string]error

	mtx   sync.Mutex
	calls map[string]int
}

func (d *Decoder) Decode(ctx context.Context, path string) (*audio.Buffer, error) {
	d.mtx.Lock()
	if d.calls == nil {
		d.calls = make(map[string]int)
	}
	d.calls[path]++
	d.mtx.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := d.Errs[path]; ok {
		return nil, err
	}
	buf, ok := d.Buffers[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return buf, nil
}

// Calls reports how many times path was decoded.
func (d *Decoder) Calls(path string) int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.calls[path]
}

// Encoder records what it was asked to write instead of writing it.
type Encoder struct {
	Err error

	Buf     *audio.Buffer
	Path    string
	Quality float64
	Count   int
}

func (e *Encoder) Encode(ctx context.Context, buf *audio.Buffer, path string, quality float64) error {
	e.Count++
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Err != nil {
		return e.Err
	}

	// Keep a copy; callers may reuse the track
	e.Buf = &audio.Buffer{
		Samples:    append([]float32(nil), buf.Samples...),
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
	}
	e.Path = path
	e.Quality = quality
	return nil
}
