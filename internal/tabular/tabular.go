// Package tabular reads and writes the header-named CSV extracts the
// district systems produce. Reading applies a header-to-canonical-name
// mapping (the schema mapper): headers are whitespace-stripped, renamed per
// the mapping, and unmapped headers are dropped.
//
// A missing or unreadable source is never an error. It yields an empty
// table and a logged warning; downstream stages treat an empty table as "no
// data this period".
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one record of a mapped table, keyed by canonical column name.
// Values are raw cell strings; use the typed accessors for numbers.
type Row map[string]string

// ReadTable reads the CSV at path and renames its columns per mapping
// (raw header -> canonical name). Only mapped columns are retained.
//
// Fails soft: any open, decode, or parse failure logs a warning and returns
// an empty table.
func ReadTable(path string, mapping map[string]string) []Row {
	rows, err := ReadTableStrict(path, mapping)
	if err != nil {
		slog.Warn("input table unavailable, continuing with no data", "path", path, "error", err)
		return nil
	}
	return rows
}

// ReadTableStrict is ReadTable without the soft-fail contract: open and
// parse failures are returned to the caller. The ledger reads through this
// path because an unparseable ledger must halt the run, not degrade it.
func ReadTableStrict(path string, mapping map[string]string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := decodeCSV(f, mapping)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// decodeCSV parses CSV from r, strips a UTF-8 BOM if present, and applies
// the header mapping. Extracts saved from spreadsheet tools routinely carry
// a BOM, which would otherwise corrupt the first header.
func decodeCSV(r io.Reader, mapping map[string]string) ([]Row, error) {
	bom := unicode.UTF8BOM.NewDecoder()
	cr := csv.NewReader(transform.NewReader(r, bom))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// canonical name per column index; "" means dropped
	names := make([]string, len(header))
	for i, h := range header {
		raw := strings.TrimSpace(h)
		if canon, ok := mapping[raw]; ok {
			names[i] = canon
		}
	}

	var rows []Row
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(Row)
		for i, cell := range cells {
			if i >= len(names) || names[i] == "" {
				continue
			}
			row[names[i]] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// String returns the trimmed cell value for key, and whether the cell is
// present and non-empty.
func (r Row) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Float parses the cell for key as a float64.
func (r Row) Float(key string) (float64, bool) {
	v, ok := r.String(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 parses the cell for key as an int64. Values exported as floats
// ("1001.0") are accepted and truncated.
func (r Row) Int64(key string) (int64, bool) {
	v, ok := r.String(key)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// dateLayouts covers the timestamp shapes the district extracts use.
var dateLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// ParseDate parses a cell value using the known extract date layouts.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// WriteCSV writes rows under the given header to path, overwriting any
// existing file. Callers own backup semantics.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
