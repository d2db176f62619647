package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opendatateam/ucli/internal/lib"
)

// sniffSampleSize is how many leading bytes are inspected to guess the dialect
const sniffSampleSize = 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sniffDelimiters are the delimiters considered by SniffDialect, by preference
var sniffDelimiters = []rune{',', ';', '\t', '|'}

// Dialect describes how a CSV file is delimited
type Dialect struct {
	Delimiter rune
}

// DefaultDialect is plain comma-separated values
var DefaultDialect = Dialect{Delimiter: ','}

// String returns a printable name of the delimiter
func (d Dialect) String() string {
	if d.Delimiter == '\t' {
		return "tab"
	}
	return fmt.Sprintf("%q", d.Delimiter)
}

// CSVRow is one data row keyed by header column
type CSVRow struct {
	Line   int // 1-based line in the file; the header is line 1
	Values map[string]string
}

// Get returns the value of a column, or "" if the row has none
func (r CSVRow) Get(column string) string {
	return r.Values[column]
}

// CSVTable is a fully read CSV file with a header row
type CSVTable struct {
	Path    string
	Dialect Dialect
	Header  []string
	Rows    []CSVRow
}

// HasColumn reports whether the header contains column
func (t *CSVTable) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// RequireColumn returns an input error if column is missing from the header
func (t *CSVTable) RequireColumn(column string) error {
	if !t.HasColumn(column) {
		return lib.ErrCSVColumn(t.Path, column, t.Header)
	}
	return nil
}

// SniffDialect guesses the delimiter of a CSV sample: the candidate producing
// the same field count (greater than one) on every complete sample line wins.
func SniffDialect(sample []byte) Dialect {
	sample = bytes.TrimPrefix(sample, utf8BOM)

	// Drop a trailing partial line when the sample was cut
	if len(sample) >= sniffSampleSize {
		if idx := bytes.LastIndexByte(sample, '\n'); idx > 0 {
			sample = sample[:idx+1]
		}
	}

	best := DefaultDialect
	bestFields := 1
	for _, delim := range sniffDelimiters {
		fields, ok := consistentFieldCount(sample, delim)
		if ok && fields > bestFields {
			best = Dialect{Delimiter: delim}
			bestFields = fields
		}
	}
	return best
}

// consistentFieldCount parses sample with delim and returns the field count
// if every record has the same number of fields
func consistentFieldCount(sample []byte, delim rune) (int, bool) {
	reader := csv.NewReader(bytes.NewReader(sample))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	count := -1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, false
		}
		if count == -1 {
			count = len(record)
		} else if len(record) != count {
			return 0, false
		}
	}
	return count, count > 1
}

// ReadCSV reads a header row followed by data rows.
// Rows shorter than the header get empty values for the missing columns.
func ReadCSV(r io.Reader, dialect Dialect) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = dialect.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, lib.ErrInvalidInput("CSV file is empty", nil)
	}
	if err != nil {
		return nil, lib.ErrInvalidInput("failed to read CSV header", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], string(utf8BOM))
	}

	table := &CSVTable{Dialect: dialect, Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, lib.ErrInvalidInput("failed to read CSV row", err)
		}

		line, _ := reader.FieldPos(0)
		values := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				values[column] = record[i]
			} else {
				values[column] = ""
			}
		}
		table.Rows = append(table.Rows, CSVRow{Line: line, Values: values})
	}

	return table, nil
}

// LoadCSV reads a CSV file, sniffing its dialect when sniff is set
func LoadCSV(path string, sniff bool) (*CSVTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lib.ErrInvalidInput(fmt.Sprintf("cannot read %s", path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	dialect := DefaultDialect
	if sniff {
		sample := data
		if len(sample) > sniffSampleSize {
			sample = sample[:sniffSampleSize]
		}
		dialect = SniffDialect(sample)
	}

	table, err := ReadCSV(bytes.NewReader(data), dialect)
	if err != nil {
		return nil, err
	}
	table.Path = path
	return table, nil
}
