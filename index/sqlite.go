package index

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	// registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

// SQLite is a RowIndex backed by one table of a SQLite database. The table
// is loaded eagerly in rowid order so that row access never touches the
// database afterwards.
type SQLite struct {
	rows []Row
}

// NewSQLite loads every row of the named table from the database at path.
func NewSQLite(path, table string) (_ *SQLite, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open row index database")
	}
	defer func() {
		err = multierr.Combine(err, db.Close())
	}()

	// table is an identifier, not a value, so it cannot be a placeholder.
	result, err := db.Query(fmt.Sprintf("SELECT * FROM %q ORDER BY rowid", table))
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't query table %q", table)
	}
	defer func() {
		err = multierr.Combine(err, result.Close())
	}()

	headers, err := result.Columns()
	if err != nil {
		return nil, err
	}
	if err := requireColumns(headers); err != nil {
		return nil, errors.Wrapf(err, "table %q", table)
	}

	var rows []Row
	scanned := make([]sql.NullString, len(headers))
	dest := make([]interface{}, len(headers))
	for i := range scanned {
		dest[i] = &scanned[i]
	}
	for result.Next() {
		if err := result.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "table %q row %d", table, len(rows))
		}
		values := make([]string, len(headers))
		for i, s := range scanned {
			if s.Valid {
				values[i] = s.String
			}
		}
		row, err := rowFromRecord(headers, values)
		if err != nil {
			return nil, errors.Wrapf(err, "table %q row %d", table, len(rows))
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, errors.Wrapf(err, "couldn't read table %q", table)
	}
	return &SQLite{rows: rows}, nil
}

// Len returns the number of rows.
func (s *SQLite) Len() int {
	return len(s.rows)
}

// Row returns the record at position i.
func (s *SQLite) Row(i int) (Row, error) {
	if err := checkRowBounds(i, len(s.rows)); err != nil {
		return Row{}, err
	}
	return s.rows[i], nil
}
