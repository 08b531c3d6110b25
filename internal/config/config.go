// SPDX-License-Identifier: EPL-2.0

// Package config loads render settings. Defaults are overlaid by an
// optional YAML file and then by AUDMIX_* environment variables; the
// command line applies its flags last.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/audmix/internal/logging"
	"github.com/ik5/audmix/mix"
	"gopkg.in/yaml.v3"
)

const (
	// Default values
	DefaultQuality    = 0.7
	DefaultPanLaw     = "linear"
	DefaultOverflow   = "clip"
	DefaultPeakTarget = 1.0
	DefaultLogLevel   = "info"
	DefaultLogFormat  = logging.FormatText

	// Environment variable names
	EnvQuality    = "AUDMIX_QUALITY"
	EnvPanLaw     = "AUDMIX_PAN_LAW"
	EnvOverflow   = "AUDMIX_OVERFLOW"
	EnvPeakTarget = "AUDMIX_PEAK_TARGET"
	EnvWorkers    = "AUDMIX_WORKERS"
	EnvLogLevel   = "AUDMIX_LOG_LEVEL"
	EnvLogFormat  = "AUDMIX_LOG_FORMAT"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config holds render and logging settings.
type Config struct {
	// Quality in [0,1] is passed through to the encoder.
	Quality float64 `yaml:"quality"`
	// PanLaw is "linear" or "equal-power".
	PanLaw string `yaml:"pan_law"`
	// Overflow is "clip" or "normalize".
	Overflow string `yaml:"overflow"`
	// PeakTarget is the normalization peak, in (0,1].
	PeakTarget float64 `yaml:"peak_target"`
	// Workers bounds parallel work; 0 means GOMAXPROCS.
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Quality:    DefaultQuality,
		PanLaw:     DefaultPanLaw,
		Overflow:   DefaultOverflow,
		PeakTarget: DefaultPeakTarget,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		if err := cfg.decodeYAML(f); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decodeYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	// An empty file keeps the defaults
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvQuality); ok && v != "" {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvQuality, err)
		}
		c.Quality = q
	}

	if v, ok := lookup(EnvPeakTarget); ok && v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPeakTarget, err)
		}
		c.PeakTarget = p
	}

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}

	if v, ok := lookup(EnvPanLaw); ok && v != "" {
		c.PanLaw = v
	}
	if v, ok := lookup(EnvOverflow); ok && v != "" {
		c.Overflow = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}

	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Quality < 0 || c.Quality > 1 || c.Quality != c.Quality {
		errs = append(errs, fmt.Errorf("quality %v outside [0,1]", c.Quality))
	}
	if c.PeakTarget <= 0 || c.PeakTarget > 1 || c.PeakTarget != c.PeakTarget {
		errs = append(errs, fmt.Errorf("peak target %v outside (0,1]", c.PeakTarget))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d is negative", c.Workers))
	}
	if _, err := mix.ParsePanLaw(c.PanLaw); err != nil {
		errs = append(errs, err)
	}
	if _, err := mix.ParseOverflowPolicy(c.Overflow); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Render returns the parsed pan law and overflow policy. Call Validate
// first.
func (c *Config) Render() (mix.PanLaw, mix.OverflowPolicy, error) {
	law, err := mix.ParsePanLaw(c.PanLaw)
	if err != nil {
		return 0, 0, err
	}
	policy, err := mix.ParseOverflowPolicy(c.Overflow)
	if err != nil {
		return 0, 0, err
	}
	return law, policy, nil
}
