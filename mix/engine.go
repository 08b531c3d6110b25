// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/pool"
)

// DefaultBlockFrames is the frame range each worker reduces at a time.
const DefaultBlockFrames = 8192

// Engine mixes clips into a Track. The zero value is ready to use and mixes
// with PanLinear on one worker per CPU.
type Engine struct {
	// Workers bounds parallelism. Zero means one per CPU; one runs the
	// whole mix on the calling goroutine.
	Workers int
	// PanLaw is applied to every clip.
	PanLaw PanLaw
	// BlockFrames sets the size of the frame ranges summed independently.
	// Zero selects DefaultBlockFrames.
	BlockFrames int
}

// prepared is a clip ready for accumulation: stereo, at TargetRate, with
// gain and pan already applied.
type prepared struct {
	buf   *audio.Buffer
	start int
	path  string
}

func (p prepared) end() int { return p.start + p.buf.Frames() }

// Mix resamples, channel-normalizes, scales and places every input, then
// sums them into one track sized to the latest clip end. Zero inputs give
// an empty track.
//
// Inputs sharing an Audio pointer are normalized once. The first failing
// input in row order aborts the mix and is reported as a *ClipError.
func (e *Engine) Mix(inputs []Input) (*Track, error) {
	workers := pool.Size(e.Workers)

	clips, err := e.prepareAll(inputs, workers)
	if err != nil {
		return nil, err
	}

	if workers == 1 {
		return accumulateSequential(clips)
	}

	return e.accumulateBlocks(clips, workers), nil
}

func (e *Engine) prepareAll(inputs []Input, workers int) ([]prepared, error) {
	// Normalize each distinct buffer once
	slot := make(map[*audio.Buffer]int)
	var distinct []*audio.Buffer
	owner := make([]int, len(inputs))
	for i, in := range inputs {
		if in.Audio == nil {
			owner[i] = -1
			continue
		}
		idx, ok := slot[in.Audio]
		if !ok {
			idx = len(distinct)
			slot[in.Audio] = idx
			distinct = append(distinct, in.Audio)
		}
		owner[i] = idx
	}

	normalized := make([]*audio.Buffer, len(distinct))
	normErrs := make([]error, len(distinct))
	pool.Run(len(distinct), workers, func(i int) {
		normalized[i], normErrs[i] = Normalize(distinct[i])
	})

	clips := make([]prepared, len(inputs))
	errs := make([]error, len(inputs))
	pool.Run(len(inputs), workers, func(i int) {
		spec := inputs[i].Spec

		start, err := StartFrame(spec.StartOffsetMs, TargetRate)
		if err != nil {
			errs[i] = err
			return
		}

		idx := owner[i]
		if idx < 0 {
			errs[i] = ErrNoAudio
			return
		}
		if normErrs[idx] != nil {
			errs[i] = normErrs[idx]
			return
		}

		buf, err := ApplyGainPan(normalized[idx], spec.Volume, spec.Pan, e.PanLaw)
		if err != nil {
			errs[i] = err
			return
		}

		clips[i] = prepared{buf: buf, start: start, path: spec.SourcePath}
	})

	if i, err := pool.FirstError(errs); err != nil {
		return nil, &ClipError{Index: i, Path: inputs[i].Spec.SourcePath, Err: err}
	}

	return clips, nil
}

// Normalize brings buf to stereo at TargetRate. Buffers already in that
// shape are returned as is.
func Normalize(buf *audio.Buffer) (*audio.Buffer, error) {
	if buf == nil {
		return nil, ErrNoAudio
	}
	if buf.Channels != audio.Mono && buf.Channels != audio.Stereo {
		return nil, fmt.Errorf("%w: %d channels", audio.ErrUnsupportedChannelLayout, buf.Channels)
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	// Resample before expanding so mono input is converted once
	resampled, err := audio.Resample(buf, TargetRate)
	if err != nil {
		return nil, err
	}

	return audio.ToStereo(resampled)
}

// accumulateSequential grows the track clip by clip in row order.
func accumulateSequential(clips []prepared) (*Track, error) {
	track := &Track{}
	for i, c := range clips {
		if err := Accumulate(track, c.buf, c.start); err != nil {
			return nil, &ClipError{Index: i, Path: c.path, Err: err}
		}
	}
	return track, nil
}

// accumulateBlocks sizes the track up front, splits it into disjoint frame
// ranges and lets each worker sum every overlapping clip into its range in
// row order. Ranges never overlap, so no locking is needed, and each sample
// sees the same addition order as accumulateSequential.
func (e *Engine) accumulateBlocks(clips []prepared, workers int) *Track {
	total := 0
	for _, c := range clips {
		total = max(total, c.end())
	}

	track := NewTrack(total)

	block := e.BlockFrames
	if block <= 0 {
		block = DefaultBlockFrames
	}
	blocks := (total + block - 1) / block

	pool.Run(blocks, workers, func(b int) {
		lo := b * block
		hi := min(lo+block, total)

		for _, c := range clips {
			from := max(lo, c.start)
			to := min(hi, c.end())
			if from >= to {
				continue
			}
			addFrames(track.Samples, c.buf.Samples, c.start, from-c.start, to-c.start)
		}
	})

	return track
}
