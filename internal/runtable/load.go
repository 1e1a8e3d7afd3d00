package runtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the run table lacks a required column.
var ErrMissingColumn = errors.New("run table is missing a required column")

// Table is the loaded run table.
type Table struct {
	Path    string
	Columns []string
	Records []Record
}

// Load reads the run table CSV at path. A missing or unreadable file is fatal.
func Load(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("unable to open run table %s: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return Table{}, fmt.Errorf("unable to read run table %s: %w", path, err)
	}
	table.Path = path
	return table, nil
}

// Read parses a run table from r. The first row must be a header; extra
// columns are ignored.
func Read(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Table{}, errors.New("run table is empty")
		}
		return Table{}, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return Table{}, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []Record
	repetitions := make(map[Key]int)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Table{}, err
		}

		rec := Record{
			Benchmark: field(row, index[ColBenchmark]),
			Version:   field(row, index[ColVersion]),
			Size:      field(row, index[ColSize]),
		}
		values := make([]float64, len(MetricColumns))
		for i, col := range MetricColumns {
			v, err := parseMeasurement(field(row, index[col]))
			if err != nil {
				return Table{}, fmt.Errorf("line %d column %s: %w", line, col, err)
			}
			values[i] = v
		}
		rec.CPUEnergyJ = values[0]
		rec.ExecTimeSec = values[1]
		rec.AvgCPUUsage = values[2]
		rec.AvgUsedMemory = values[3]

		key := rec.Key()
		rec.Repetition = repetitions[key]
		repetitions[key]++
		records = append(records, rec)
	}

	cols := make([]string, len(headers))
	copy(cols, headers)
	return Table{Columns: cols, Records: records}, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseMeasurement converts a CSV cell to float64, mapping empty cells and
// NA markers to NaN.
func parseMeasurement(raw string) (float64, error) {
	switch strings.ToLower(raw) {
	case "", "na", "nan", "null", "none":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
