package index

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	test.That(t, os.WriteFile(path, []byte(contents), 0o644), test.ShouldBeNil)
	return path
}

func TestNewCSV(t *testing.T) {
	path := writeCSV(t,
		"track,northing,easting,front_cam_ts,back_cam_ts,lidar_ts\n"+
			"3,1234.5,5678.25,1000,1001,1000\n"+
			"7,-42.5,17,2000,2001,2000\n")

	idx, err := NewCSV(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, idx.Len(), test.ShouldEqual, 2)

	row, err := idx.Row(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.Track, test.ShouldEqual, "3")
	test.That(t, row.Northing, test.ShouldEqual, float32(1234.5))
	test.That(t, row.Easting, test.ShouldEqual, float32(5678.25))
	test.That(t, row.InQuery, test.ShouldBeTrue)

	ts, err := row.Column("lidar_ts")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ts, test.ShouldEqual, "1000")

	row, err = idx.Row(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.Track, test.ShouldEqual, "7")
	test.That(t, row.Northing, test.ShouldEqual, float32(-42.5))
}

func TestNewCSVRowBounds(t *testing.T) {
	path := writeCSV(t, "track,northing,easting\n3,1,2\n")
	idx, err := NewCSV(path)
	test.That(t, err, test.ShouldBeNil)

	for _, i := range []int{-1, 1, 5} {
		_, err := idx.Row(i)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	}
}

func TestNewCSVMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, "track,northing,lidar_ts\n3,1,1000\n")
	_, err := NewCSV(path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"easting"`)
}

func TestNewCSVInQueryColumn(t *testing.T) {
	path := writeCSV(t,
		"track,northing,easting,in_query\n"+
			"3,1,2,False\n"+
			"3,3,4,True\n")

	idx, err := NewCSV(path)
	test.That(t, err, test.ShouldBeNil)

	row, err := idx.Row(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.InQuery, test.ShouldBeFalse)

	row, err = idx.Row(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.InQuery, test.ShouldBeTrue)
}

func TestNewCSVBadFloat(t *testing.T) {
	path := writeCSV(t, "track,northing,easting\n3,abc,2\n")
	_, err := NewCSV(path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"northing"`)
}

func TestNewCSVMissingFile(t *testing.T) {
	_, err := NewCSV(filepath.Join(t.TempDir(), "nope.csv"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRowColumnMissing(t *testing.T) {
	row := Row{Columns: map[string]string{"lidar_ts": "1000"}}
	_, err := row.Column("front_cam_ts")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"front_cam_ts"`)
}

func TestNewSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	db, err := sql.Open("sqlite", path)
	test.That(t, err, test.ShouldBeNil)
	_, err = db.Exec(`CREATE TABLE observations (
		track TEXT,
		northing REAL,
		easting REAL,
		lidar_ts INTEGER
	)`)
	test.That(t, err, test.ShouldBeNil)
	_, err = db.Exec("INSERT INTO observations VALUES (?, ?, ?, ?), (?, ?, ?, ?)",
		"3", 1234.5, 5678.25, 1000,
		"7", -42.5, 17.0, 2000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, db.Close(), test.ShouldBeNil)

	idx, err := NewSQLite(path, "observations")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, idx.Len(), test.ShouldEqual, 2)

	row, err := idx.Row(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.Track, test.ShouldEqual, "3")
	test.That(t, row.Northing, test.ShouldEqual, float32(1234.5))
	test.That(t, row.Easting, test.ShouldEqual, float32(5678.25))

	ts, err := row.Column("lidar_ts")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ts, test.ShouldEqual, "1000")

	row, err = idx.Row(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.Track, test.ShouldEqual, "7")
}

func TestNewSQLiteMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	db, err := sql.Open("sqlite", path)
	test.That(t, err, test.ShouldBeNil)
	_, err = db.Exec("CREATE TABLE observations (track TEXT, northing REAL)")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, db.Close(), test.ShouldBeNil)

	_, err = NewSQLite(path, "observations")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"easting"`)
}
