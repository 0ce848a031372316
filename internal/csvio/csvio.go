// Package csvio reads and writes the header-keyed CSV files that password
// manager exports use. Rows travel as column-name maps so callers never
// depend on column positions.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/taggedzi/creddedupe/pkg/errors"
)

const utf8BOM = "\uFEFF"

// Read parses CSV from r into its header row and one map per data row. Rows
// shorter than the header leave the missing columns empty; trailing cells
// beyond the header are dropped. A UTF-8 byte order mark on the first header
// cell is stripped.
func Read(r io.Reader, name string) ([]string, []map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.ErrEmptyInput
	}
	if err != nil {
		return nil, nil, errors.NewParseError("csv", name, "invalid header row", err)
	}
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewParseError("csv", name, "invalid row", err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// ReadFile reads and parses a CSV file.
func ReadFile(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Write renders rows to w in the given column order. Columns absent from a
// row are written empty.
func Write(w io.Writer, columns []string, rows []map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return errors.WrapIO("write header", "", err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return errors.WrapIO("write row", "", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to a CSV file, creating or truncating it.
func WriteFile(path string, columns []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := Write(f, columns, rows); err != nil {
		return err
	}
	return f.Close()
}
