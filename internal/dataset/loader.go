package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadCSV reads a headed CSV stream into a dataset. The first record supplies
// column names; remaining records become rows in source order.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	var rows [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(rows)+1, err)
		}
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return FromRecords(header, rows)
}

// LoadXLSX reads one worksheet of an Excel workbook into a dataset. An empty
// sheet name selects the first sheet.
func LoadXLSX(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q is empty", sheet)
	}

	header := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		// GetRows trims trailing empty cells; pad back to header width.
		row := make([]any, len(header))
		for i := range header {
			if i < len(record) {
				row[i] = record[i]
			} else {
				row[i] = ""
			}
		}
		rows = append(rows, row)
	}
	return FromRecords(header, rows)
}

// LoadFile dispatches on file extension. The sheet argument only applies to
// Excel workbooks.
func LoadFile(path, sheet string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}
