package index

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// CSV is a RowIndex backed by a comma-separated file.
type CSV struct {
	rows []Row
}

// NewCSV reads the whole file at path into memory. The first record is the
// header and must contain the track, northing and easting columns.
func NewCSV(path string) (*CSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open row index")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse row index %q", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("row index %q has no header", path)
	}
	headers := records[0]
	if err := requireColumns(headers); err != nil {
		return nil, errors.Wrapf(err, "row index %q", path)
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		row, err := rowFromRecord(headers, record)
		if err != nil {
			return nil, errors.Wrapf(err, "row index %q row %d", path, n)
		}
		rows = append(rows, row)
	}
	return &CSV{rows: rows}, nil
}

// Len returns the number of rows.
func (c *CSV) Len() int {
	return len(c.rows)
}

// Row returns the record at position i.
func (c *CSV) Row(i int) (Row, error) {
	if err := checkRowBounds(i, len(c.rows)); err != nil {
		return Row{}, err
	}
	return c.rows[i], nil
}
