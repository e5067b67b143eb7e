package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV source yields no parsable values.
var ErrNoData = errors.New("no valid data found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "y")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// missing values are skipped rather than parsed.
var missing = map[string]bool{"": true, "NA": true, "NaN": true, "null": true}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006",
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVColumn loads one column from a CSV file.
func LoadCSVColumn(filename, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// LoadCSVFiltered loads the rows of a CSV file whose idColumn equals idValue.
func LoadCSVFiltered(filename, idColumn, idValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.IDColumn = idColumn
	opts.IDFilter = idValue
	if valueColumn != "" {
		opts.ValueColumn = valueColumn
	}
	return LoadCSV(filename, opts)
}

type columns struct {
	value, date, id int
}

func clean(field string) string {
	return strings.TrimSpace(strings.Trim(field, "\""))
}

// resolveColumns maps header names to indices, falling back to common
// names ("ds", "date", "unique_id") and to the last column for values.
func resolveColumns(header []string, opts *CSVOptions) columns {
	cols := columns{value: -1, date: -1, id: -1}
	for i, raw := range header {
		h := clean(raw)
		switch {
		case h == opts.ValueColumn:
			cols.value = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			cols.date = i
		case opts.DateColumn == "" && cols.date == -1 && (h == "ds" || h == "date" || h == "Date" || h == "timestamp"):
			cols.date = i
		case opts.IDColumn != "" && h == opts.IDColumn:
			cols.id = i
		}
	}
	if cols.value == -1 {
		cols.value = len(header) - 1
	}
	return cols
}

func parseDate(field, preferred string) (time.Time, bool) {
	for _, layout := range append([]string{preferred}, dateLayouts...) {
		if layout == "" {
			continue
		}
		if ts, err := time.Parse(layout, field); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// LoadCSVFromReader loads a time series from an io.Reader. Rows with missing
// or unparsable values are skipped. Timestamps are kept only if every kept
// row has a parsable date.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	cols := columns{value: 1, date: 0, id: -1}
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		cols = resolveColumns(header, opts)
	}

	var values []float64
	var timestamps []time.Time
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if opts.IDFilter != "" && cols.id >= 0 && cols.id < len(record) && clean(record[cols.id]) != opts.IDFilter {
			continue
		}
		if cols.value >= len(record) {
			continue
		}
		field := clean(record[cols.value])
		if missing[field] {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		values = append(values, v)

		if cols.date >= 0 && cols.date < len(record) {
			if ts, ok := parseDate(clean(record[cols.date]), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}
	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values}, nil
	}
	return New(values), nil
}
