package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when inferring datetime columns.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// FromRecords builds a dataset from already-parsed cells. Each row is a slice
// of cells aligned with names; nil cells are missing. Every column receives a
// single inferred kind: numeric if all present cells are numbers or parse as
// numbers, datetime if all parse as dates, text otherwise.
func FromRecords(names []string, rows [][]any) (*Dataset, error) {
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(names))
		}
	}

	columns := make([]Column, 0, len(names))
	for j, name := range names {
		cells := make([]any, len(rows))
		for i := range rows {
			cells[i] = rows[i][j]
		}
		columns = append(columns, inferColumn(name, cells))
	}
	return New(columns...)
}

func inferColumn(name string, cells []any) Column {
	numeric := true
	datetime := true
	present := 0

	for _, cell := range cells {
		if isMissingCell(cell) {
			continue
		}
		present++
		if _, ok := toFloat(cell); !ok {
			numeric = false
		}
		if _, ok := toTime(cell); !ok {
			datetime = false
		}
	}

	switch {
	case present > 0 && numeric:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if isMissingCell(cell) {
				values[i] = math.NaN()
				continue
			}
			values[i], _ = toFloat(cell)
		}
		return NumericColumn(name, values)
	case present > 0 && datetime:
		values := make([]time.Time, len(cells))
		for i, cell := range cells {
			if isMissingCell(cell) {
				continue
			}
			values[i], _ = toTime(cell)
		}
		return TimeColumn(name, values)
	default:
		values := make([]string, len(cells))
		for i, cell := range cells {
			if isMissingCell(cell) {
				continue
			}
			values[i] = toText(cell)
		}
		return TextColumn(name, values)
	}
}

func isMissingCell(cell any) bool {
	if cell == nil {
		return true
	}
	if s, ok := cell.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	if f, ok := cell.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

func toFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toTime(cell any) (time.Time, bool) {
	switch v := cell.(type) {
	case time.Time:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func toText(cell any) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
