package dataset

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the uniform declared type of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindTime    Kind = "datetime"
	KindText    Kind = "text"
)

// Column holds one named column of values. Numeric cells use IEEE-754 NaN for
// missing values; text and datetime cells carry an explicit missing mask.
type Column struct {
	name    string
	kind    Kind
	numbers []float64
	times   []time.Time
	texts   []string
	missing []bool
}

// NumericColumn builds a numeric column. NaN entries mark missing cells.
func NumericColumn(name string, values []float64) Column {
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = math.IsNaN(v)
	}
	return Column{name: name, kind: KindNumeric, numbers: append([]float64(nil), values...), missing: missing}
}

// TextColumn builds a text column. Empty strings mark missing cells.
func TextColumn(name string, values []string) Column {
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = v == ""
	}
	return Column{name: name, kind: KindText, texts: append([]string(nil), values...), missing: missing}
}

// TimeColumn builds a datetime column. Zero times mark missing cells.
func TimeColumn(name string, values []time.Time) Column {
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = v.IsZero()
	}
	return Column{name: name, kind: KindTime, times: append([]time.Time(nil), values...), missing: missing}
}

// Name returns the column header.
func (c Column) Name() string { return c.name }

// Kind returns the column's declared type.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of cells.
func (c Column) Len() int { return len(c.missing) }

// IsMissing reports whether the cell at row i is null.
func (c Column) IsMissing(i int) bool {
	if i < 0 || i >= len(c.missing) {
		return true
	}
	return c.missing[i]
}

// MissingCount returns the number of null cells.
func (c Column) MissingCount() int {
	count := 0
	for _, m := range c.missing {
		if m {
			count++
		}
	}
	return count
}

// cellKey renders the cell at row i as a stable string for row-identity
// comparisons. Missing cells map to a sentinel that cannot collide with data.
func (c Column) cellKey(i int) string {
	if c.IsMissing(i) {
		return "\x00"
	}
	switch c.kind {
	case KindNumeric:
		return strconv.FormatFloat(c.numbers[i], 'g', -1, 64)
	case KindTime:
		return c.times[i].Format(time.RFC3339Nano)
	default:
		return c.texts[i]
	}
}

// StringAt renders the cell at row i for grouping and display. Missing cells
// return "" with ok=false.
func (c Column) StringAt(i int) (string, bool) {
	if c.IsMissing(i) {
		return "", false
	}
	return c.cellKey(i), true
}

// Dataset is an immutable, ordered collection of equal-length columns.
type Dataset struct {
	columns []Column
	rows    int
}

// New assembles a dataset and validates that columns are uniquely named and
// uniformly sized. A dataset with zero rows is valid.
func New(columns ...Column) (*Dataset, error) {
	rows := 0
	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if col.name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := seen[col.name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.name)
		}
		seen[col.name] = struct{}{}
		if i == 0 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.name, col.Len(), rows)
		}
	}
	return &Dataset{columns: columns, rows: rows}, nil
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int { return d.rows }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// ColumnNames returns headers in source order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.name
	}
	return names
}

// Column looks a column up by exact header name.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.columns {
		if col.name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Numeric returns the named column as a Numeric view. The second return is
// false when the column is absent or not numeric, which analyzers treat as
// "skip this column".
func (d *Dataset) Numeric(name string) (Numeric, bool) {
	col, ok := d.Column(name)
	if !ok || col.kind != KindNumeric {
		return Numeric{}, false
	}
	return Numeric{name: col.name, values: col.numbers}, true
}

// MissingCells counts null cells across every column.
func (d *Dataset) MissingCells() int {
	total := 0
	for _, col := range d.columns {
		total += col.MissingCount()
	}
	return total
}

// Fingerprint returns a content hash over headers, column kinds, and every
// cell. Two datasets with equal fingerprints produce identical analyses.
func (d *Dataset) Fingerprint() string {
	h := fnv.New64a()
	for _, col := range d.columns {
		h.Write([]byte(col.name))
		h.Write([]byte{0x1f})
		h.Write([]byte(col.kind))
		h.Write([]byte{0x1e})
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(d.rows))
	h.Write(buf[:])
	for i := 0; i < d.rows; i++ {
		h.Write([]byte(d.RowKey(i)))
		h.Write([]byte{0x1e})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// RowKey renders row i as a composite identity string across all columns in
// source order. Two rows are exact duplicates iff their keys are equal.
func (d *Dataset) RowKey(i int) string {
	parts := make([]string, len(d.columns))
	for j, col := range d.columns {
		parts[j] = col.cellKey(i)
	}
	return strings.Join(parts, "\x1f")
}
