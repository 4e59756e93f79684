// Package index provides read-only tabular row indexes for recorded
// traversals: one row per timestamped observation, with planar coordinates
// and per-modality timestamp columns. Indexes are loaded eagerly at
// construction, never mutated afterwards, and safe for concurrent readers.
package index

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names every backend requires.
const (
	colTrack    = "track"
	colNorthing = "northing"
	colEasting  = "easting"
	colInQuery  = "in_query"
)

// Row is one observation record.
type Row struct {
	// Track groups all assets from one contiguous recording run.
	Track string

	// Northing and Easting are the planar (UTM) coordinates of the
	// observation.
	Northing float32
	Easting  float32

	// InQuery marks rows evaluation should treat as queries. True when the
	// source table has no in_query column.
	InQuery bool

	// Columns holds every remaining column verbatim, keyed by header name.
	// Per-modality timestamp columns live here.
	Columns map[string]string
}

// Column returns the named extra column value.
func (r Row) Column(name string) (string, error) {
	v, ok := r.Columns[name]
	if !ok {
		return "", errors.Errorf("row index has no column %q", name)
	}
	return v, nil
}

// RowIndex is an ordered, random-access table of observations.
type RowIndex interface {
	// Len returns the number of rows.
	Len() int

	// Row returns the record at position i, 0 <= i < Len().
	Row(i int) (Row, error)
}

func requireColumns(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, required := range []string{colTrack, colNorthing, colEasting} {
		if !present[required] {
			return errors.Errorf("row index is missing required column %q", required)
		}
	}
	return nil
}

func rowFromRecord(headers, values []string) (Row, error) {
	if len(values) != len(headers) {
		return Row{}, errors.Errorf("record has %d values for %d columns", len(values), len(headers))
	}
	row := Row{InQuery: true, Columns: map[string]string{}}
	for i, h := range headers {
		v := values[i]
		var err error
		switch h {
		case colTrack:
			row.Track = v
		case colNorthing:
			row.Northing, err = parseFloat32(v)
		case colEasting:
			row.Easting, err = parseFloat32(v)
		case colInQuery:
			row.InQuery, err = strconv.ParseBool(strings.TrimSpace(v))
		default:
			row.Columns[h] = v
		}
		if err != nil {
			return Row{}, errors.Wrapf(err, "couldn't parse column %q value %q", h, v)
		}
	}
	return row, nil
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v), err
}

func checkRowBounds(i, n int) error {
	if i < 0 || i >= n {
		return errors.Errorf("row %d out of range with %d rows", i, n)
	}
	return nil
}
