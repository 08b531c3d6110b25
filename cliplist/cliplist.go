// SPDX-License-Identifier: EPL-2.0

// Package cliplist reads the clip description table: one clip per row,
// no header, four comma-separated columns in fixed order:
//
//	start_offset_ms, volume, pan, source_path
//
// For example:
//
//	0,1.0,0.0,intro.wav
//	500,0.5,-1.0,voice.mp3
//
// Blank lines and lines starting with '#' are ignored. Fields are trimmed.
package cliplist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/audmix/mix"
)

// Columns is the number of fields every row must have.
const Columns = 4

// Column positions, 1-based as reported in InputFormatError.
const (
	ColumnOffset = iota + 1
	ColumnVolume
	ColumnPan
	ColumnPath
)

// Parse reads every row from r. The first malformed row aborts parsing
// with an *InputFormatError.
func Parse(r io.Reader) ([]mix.ClipSpec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.ReuseRecord = true

	var specs []mix.ClipSpec
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			ferr := &InputFormatError{Err: err}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				ferr.Row = perr.StartLine
			}
			return nil, ferr
		}

		row, _ := cr.FieldPos(0)

		spec, err := parseRecord(record, row)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) ([]mix.ClipSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening clip list: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		var ferr *InputFormatError
		if errors.As(err, &ferr) {
			ferr.File = path
		}
		return nil, err
	}

	return specs, nil
}

func parseRecord(record []string, row int) (mix.ClipSpec, error) {
	if len(record) != Columns {
		return mix.ClipSpec{}, &InputFormatError{
			Row: row,
			Err: fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(record), Columns),
		}
	}

	var (
		spec mix.ClipSpec
		err  error
	)

	if spec.StartOffsetMs, err = parseNumber(record, row, ColumnOffset); err != nil {
		return spec, err
	}
	if spec.Volume, err = parseNumber(record, row, ColumnVolume); err != nil {
		return spec, err
	}
	if spec.Pan, err = parseNumber(record, row, ColumnPan); err != nil {
		return spec, err
	}

	spec.SourcePath = strings.TrimSpace(record[ColumnPath-1])
	if spec.SourcePath == "" {
		return spec, &InputFormatError{Row: row, Column: ColumnPath, Err: ErrEmptyPath}
	}

	return spec, nil
}

func parseNumber(record []string, row, column int) (float64, error) {
	raw := strings.TrimSpace(record[column-1])

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputFormatError{Row: row, Column: column, Value: raw, Err: ErrNotNumber}
	}

	return v, nil
}
