// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/cliplist"
	"github.com/ik5/audmix/internal/logging"
	"github.com/ik5/audmix/internal/pool"
	"github.com/ik5/audmix/mix"
)

// DefaultQuality is the encode quality used when none is configured.
const DefaultQuality = 0.7

// Decoder loads a whole source file into memory.
type Decoder interface {
	Decode(ctx context.Context, path string) (*audio.Buffer, error)
}

// Encoder writes a finished track to path. quality is in [0,1].
type Encoder interface {
	Encode(ctx context.Context, buf *audio.Buffer, path string, quality float64) error
}

// Options tune a Renderer. The zero value renders at quality 0 with the
// linear pan law, hard clipping and one worker per CPU; use
// DefaultOptions for the usual settings.
type Options struct {
	Quality    float64
	PanLaw     mix.PanLaw
	Overflow   mix.OverflowPolicy
	PeakTarget float64
	Workers    int
	Logger     *slog.Logger
}

// DefaultOptions returns quality 0.7, linear panning and hard clipping.
func DefaultOptions() Options {
	return Options{
		Quality:    DefaultQuality,
		PanLaw:     mix.PanLinear,
		Overflow:   mix.OverflowClip,
		PeakTarget: 1,
	}
}

// Stats summarizes one render.
type Stats struct {
	RunID string
	// Clips is the number of rows mixed; Sources the number of distinct
	// paths decoded for them.
	Clips   int
	Sources int
	// Frames and Duration describe the output track.
	Frames   int
	Duration time.Duration
	// Peak is the largest absolute sample before overflow handling.
	Peak    float32
	Clamped int
	Gain    float64
}

func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("clips", s.Clips),
		slog.Int("sources", s.Sources),
		slog.Int("frames", s.Frames),
		slog.Duration("duration", s.Duration),
		slog.Float64("peak", float64(s.Peak)),
		slog.Int("clamped", s.Clamped),
		slog.Float64("gain", s.Gain),
	)
}

// Renderer turns a clip list into an encoded file.
type Renderer struct {
	dec  Decoder
	enc  Encoder
	opts Options
	log  *slog.Logger
}

func NewRenderer(dec Decoder, enc Encoder, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Renderer{
		dec:  dec,
		enc:  enc,
		opts: opts,
		log:  logging.WithComponent(logger, "render"),
	}
}

// RenderFile parses the clip list at listPath and renders it to out.
func (r *Renderer) RenderFile(ctx context.Context, listPath, out string) (*Stats, error) {
	clips, err := cliplist.ParseFile(listPath)
	if err != nil {
		return nil, err
	}

	return r.Render(ctx, clips, out)
}

// Render decodes, mixes and encodes clips into out. Any failure aborts the
// run; nothing is written unless every clip decoded and mixed.
func (r *Renderer) Render(ctx context.Context, clips []mix.ClipSpec, out string) (*Stats, error) {
	if r.opts.Quality < 0 || r.opts.Quality > 1 || r.opts.Quality != r.opts.Quality {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuality, r.opts.Quality)
	}

	track, stats, err := r.Mix(ctx, clips)
	if err != nil {
		return nil, err
	}

	log := logging.WithRunID(r.log, stats.RunID)

	start := time.Now()
	if err := r.enc.Encode(ctx, track.Buffer(), out, r.opts.Quality); err != nil {
		log.Error("encode failed", "output", out, "error", err)
		return nil, err
	}
	log.Info("encoded", "output", out, "quality", r.opts.Quality, "elapsed", time.Since(start))

	return stats, nil
}

// Mix decodes every distinct source once, mixes clips and applies the
// overflow policy. The returned track is ready to encode.
func (r *Renderer) Mix(ctx context.Context, clips []mix.ClipSpec) (*mix.Track, *Stats, error) {
	stats := &Stats{RunID: uuid.NewString(), Clips: len(clips)}
	log := logging.WithRunID(r.log, stats.RunID)

	log.Info("render started", "clips", len(clips), "workers", pool.Size(r.opts.Workers))

	inputs, sources, err := r.decodeAll(ctx, log, clips)
	if err != nil {
		return nil, nil, err
	}
	stats.Sources = sources

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	engine := mix.Engine{Workers: r.opts.Workers, PanLaw: r.opts.PanLaw}
	track, err := engine.Mix(inputs)
	if err != nil {
		log.Error("mix failed", "error", err)
		return nil, nil, err
	}

	res := mix.ApplyOverflow(track, r.opts.Overflow, r.opts.PeakTarget)

	stats.Frames = track.Frames()
	stats.Duration = track.Duration()
	stats.Peak = res.Peak
	stats.Clamped = res.Clamped
	stats.Gain = res.Gain

	log.Info("mixed",
		"frames", stats.Frames,
		"duration", stats.Duration,
		"pan_law", r.opts.PanLaw.String(),
		"elapsed", time.Since(start),
	)

	if res.Clamped > 0 || res.Gain != 1 {
		log.Warn("track exceeded full scale",
			"policy", r.opts.Overflow.String(),
			"peak", res.Peak,
			"clamped", res.Clamped,
			"gain", res.Gain,
		)
	}

	return track, stats, nil
}

// decodeAll decodes each distinct path once and pairs every clip with its
// buffer. When decodes fail, the clip on the lowest row wins.
func (r *Renderer) decodeAll(ctx context.Context, log *slog.Logger, clips []mix.ClipSpec) ([]mix.Input, int, error) {
	slot := make(map[string]int)
	var paths []string
	var firstRow []int
	for i, c := range clips {
		if _, ok := slot[c.SourcePath]; !ok {
			slot[c.SourcePath] = len(paths)
			paths = append(paths, c.SourcePath)
			firstRow = append(firstRow, i)
		}
	}

	bufs := make([]*audio.Buffer, len(paths))
	errs := make([]error, len(paths))

	pool.Run(len(paths), r.opts.Workers, func(i int) {
		start := time.Now()
		bufs[i], errs[i] = r.dec.Decode(ctx, paths[i])

		clipLog := logging.WithClip(log, firstRow[i], paths[i])
		if errs[i] != nil {
			clipLog.Debug("decode failed", "error", errs[i])
			return
		}
		clipLog.Debug("decoded",
			"sample_rate", bufs[i].SampleRate,
			"channels", bufs[i].Channels,
			"frames", bufs[i].Frames(),
			"elapsed", time.Since(start),
		)
	})

	// paths are in first-appearance order, so the first failing path
	// belongs to the lowest failing row
	if i, err := pool.FirstError(errs); err != nil {
		log.Error("decode failed", "row", firstRow[i], "path", paths[i], "error", err)
		return nil, 0, &mix.ClipError{Index: firstRow[i], Path: paths[i], Err: err}
	}

	inputs := make([]mix.Input, len(clips))
	for i, c := range clips {
		inputs[i] = mix.Input{Spec: c, Audio: bufs[slot[c.SourcePath]]}
	}

	return inputs, len(paths), nil
}
