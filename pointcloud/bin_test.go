package pointcloud

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/klauspost/compress/gzip"
	"go.viam.com/test"
)

func binBytes(t *testing.T, vals []float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	test.That(t, binary.Write(&buf, binary.LittleEndian, vals), test.ShouldBeNil)
	return buf.Bytes()
}

func TestReadBinFile(t *testing.T) {
	// two recorded points, one of them out of range on x
	raw := binBytes(t, []float32{1, 2, 3, 0, 200, 0, 0, 0})
	path := filepath.Join(t.TempDir(), "1000.bin")
	test.That(t, os.WriteFile(path, raw, 0o644), test.ShouldBeNil)

	pts, err := ReadBinFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts, test.ShouldResemble, []r3.Vector{{X: 1, Y: 2, Z: 3}})
}

func TestReadBinFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	test.That(t, os.WriteFile(path, nil, 0o644), test.ShouldBeNil)

	pts, err := ReadBinFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts, test.ShouldHaveLength, 0)
}

func TestReadBinFileMissing(t *testing.T) {
	_, err := ReadBinFile(filepath.Join(t.TempDir(), "nope.bin"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, fs.ErrNotExist), test.ShouldBeTrue)
}

func TestReadBinMisaligned(t *testing.T) {
	raw := binBytes(t, []float32{1, 2, 3, 0, 5})
	_, err := ReadBin(bytes.NewReader(raw))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not a multiple")
}

func TestReadBinDiscardsIntensity(t *testing.T) {
	raw := binBytes(t, []float32{1, 2, 3, 99.5})
	pts, err := ReadBin(bytes.NewReader(raw))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts, test.ShouldResemble, []r3.Vector{{X: 1, Y: 2, Z: 3}})
}

func TestFilterRange(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    r3.Vector
		kept bool
	}{
		{"origin", r3.Vector{}, true},
		{"upper bound inclusive", r3.Vector{X: 100, Y: 100, Z: 100}, true},
		{"lower bound inclusive", r3.Vector{X: -100, Y: -100, Z: -100}, true},
		{"x above", r3.Vector{X: 100.001, Y: 0, Z: 0}, false},
		{"y below", r3.Vector{X: 0, Y: -100.001, Z: 0}, false},
		{"z above", r3.Vector{X: 0, Y: 0, Z: 100.5}, false},
		{"one bad axis drops in-range axes", r3.Vector{X: 1, Y: 2, Z: 101}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, InRange(tc.p), test.ShouldEqual, tc.kept)
			kept := FilterRange([]r3.Vector{tc.p})
			if tc.kept {
				test.That(t, kept, test.ShouldResemble, []r3.Vector{tc.p})
			} else {
				test.That(t, kept, test.ShouldHaveLength, 0)
			}
		})
	}
}

func TestReadBinFileGzip(t *testing.T) {
	raw := binBytes(t, []float32{1, 2, 3, 0, 200, 0, 0, 0})
	path := filepath.Join(t.TempDir(), "1000.bin.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(raw)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, zw.Close(), test.ShouldBeNil)
	test.That(t, os.WriteFile(path, buf.Bytes(), 0o644), test.ShouldBeNil)

	pts, err := ReadBinFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts, test.ShouldResemble, []r3.Vector{{X: 1, Y: 2, Z: 3}})
}

func TestWritePCD(t *testing.T) {
	var buf bytes.Buffer
	err := WritePCD([]r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 5, Z: -6}}, &buf)
	test.That(t, err, test.ShouldBeNil)

	out := buf.String()
	test.That(t, out, test.ShouldContainSubstring, "VERSION .7")
	test.That(t, out, test.ShouldContainSubstring, "POINTS 2")
	test.That(t, out, test.ShouldContainSubstring, "DATA ascii")
	test.That(t, out, test.ShouldContainSubstring, "1.000000 2.000000 3.000000")
	test.That(t, out, test.ShouldContainSubstring, "-4.000000 5.000000 -6.000000")
}
