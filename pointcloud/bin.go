// Package pointcloud reads the raw LiDAR assets recorded alongside each
// traversal and applies the dataset's spatial range filter.
package pointcloud

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Each point record is four little-endian float32 values: x, y, z and a
// reserved intensity slot the dataset discards.
const (
	pointStride     = 4
	pointRecordSize = pointStride * 4
)

// Range bounds in meters. A point survives the filter only if every
// coordinate lies inside the closed interval.
const (
	MinRange = -100
	MaxRange = 100
)

// ReadBin decodes a raw point cloud stream without filtering. An empty
// stream yields zero points.
func ReadBin(r io.Reader) ([]r3.Vector, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%pointRecordSize != 0 {
		return nil, errors.Errorf(
			"point cloud has %d bytes, not a multiple of the %d byte point record", len(data), pointRecordSize)
	}
	pts := make([]r3.Vector, 0, len(data)/pointRecordSize)
	for off := 0; off < len(data); off += pointRecordSize {
		pts = append(pts, r3.Vector{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))),
		})
	}
	return pts, nil
}

// InRange reports whether every coordinate of p lies in [MinRange, MaxRange].
func InRange(p r3.Vector) bool {
	return p.X >= MinRange && p.X <= MaxRange &&
		p.Y >= MinRange && p.Y <= MaxRange &&
		p.Z >= MinRange && p.Z <= MaxRange
}

// FilterRange drops every point with any coordinate out of range. The test
// is conjunctive across axes; a single out-of-range axis drops the whole
// point, nothing is clamped.
func FilterRange(pts []r3.Vector) []r3.Vector {
	kept := make([]r3.Vector, 0, len(pts))
	for _, p := range pts {
		if InRange(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// ReadBinFile loads one raw point cloud asset and filters it to the valid
// range. Assets with a ".gz" suffix are decompressed transparently.
func ReadBinFile(path string) ([]r3.Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open point cloud")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't decompress %q", path)
		}
		defer utils.UncheckedErrorFunc(zr.Close)
		r = zr
	}

	pts, err := ReadBin(r)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't decode %q", path)
	}
	return FilterRange(pts), nil
}
