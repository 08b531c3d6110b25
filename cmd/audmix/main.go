// SPDX-License-Identifier: EPL-2.0

// Command audmix renders a clip list into one stereo audio file.
//
//	audmix -i clips.csv -o mix.wav [-q 0.7] [-config audmix.yaml]
//	       [-pan linear|equal-power] [-overflow clip|normalize]
//	       [-workers N] [-log-level info] [-log-format text|json]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "audmix:", err)
		}
		stop()
		os.Exit(1)
	}
}

var errUsage = errors.New("both -i and -o are required")

type options struct {
	input, output string
	configPath    string

	// flag values; given holds the names actually passed
	flags config.Config
	given map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{given: make(map[string]bool)}

	fs := flag.NewFlagSet("audmix", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.input, "i", "", "clip list (CSV: offset_ms,volume,pan,path)")
	fs.StringVar(&o.output, "o", "", "output file; the extension picks the encoder")
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.Float64Var(&o.flags.Quality, "q", config.DefaultQuality, "encode quality in [0,1]")
	fs.StringVar(&o.flags.PanLaw, "pan", config.DefaultPanLaw, "pan law: linear or equal-power")
	fs.StringVar(&o.flags.Overflow, "overflow", config.DefaultOverflow, "overflow policy: clip or normalize")
	fs.Float64Var(&o.flags.PeakTarget, "peak", config.DefaultPeakTarget, "normalize target peak in (0,1]")
	fs.IntVar(&o.flags.Workers, "workers", 0, "parallel workers, 0 for one per CPU")
	fs.StringVar(&o.flags.LogLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	fs.StringVar(&o.flags.LogFormat, "log-format", config.DefaultLogFormat, "text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { o.given[f.Name] = true })

	if o.input == "" || o.output == "" {
		fs.Usage()
		return nil, errUsage
	}

	return o, nil
}

// apply overlays the flags that were given on cfg
func (o *options) apply(cfg *config.Config) {
	if o.given["q"] {
		cfg.Quality = o.flags.Quality
	}
	if o.given["pan"] {
		cfg.PanLaw = o.flags.PanLaw
	}
	if o.given["overflow"] {
		cfg.Overflow = o.flags.Overflow
	}
	if o.given["peak"] {
		cfg.PeakTarget = o.flags.PeakTarget
	}
	if o.given["workers"] {
		cfg.Workers = o.flags.Workers
	}
	if o.given["log-level"] {
		cfg.LogLevel = o.flags.LogLevel
	}
	if o.given["log-format"] {
		cfg.LogFormat = o.flags.LogFormat
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	law, policy, err := cfg.Render()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	r := audmix.NewRenderer(
		codec.NewFileDecoder(nil),
		codec.NewFileEncoder(nil),
		audmix.Options{
			Quality:    cfg.Quality,
			PanLaw:     law,
			Overflow:   policy,
			PeakTarget: cfg.PeakTarget,
			Workers:    cfg.Workers,
			Logger:     logger,
		},
	)

	stats, err := r.RenderFile(ctx, o.input, o.output)
	if err != nil {
		return err
	}

	logger.Info("render complete", "output", o.output, "stats", stats)
	return nil
}
