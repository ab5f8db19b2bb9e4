package schtasks

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
)

// TaskRecord is one row of a query result, keyed by snake_case column name.
// All values stay strings; no type inference is applied.
type TaskRecord map[string]string

// nonVerboseColumns is the fixed schema of /query /fo CSV /nh output, which
// carries no header row.
var nonVerboseColumns = []string{"task_name", "next_run_time", "status"}

// parseTaskList parses the CSV text emitted by a query invocation. Verbose
// output carries a header row (repeated per task folder, so repeats are
// skipped); non-verbose output is parsed against the fixed 3-column schema.
func parseTaskList(lines []string, verbose bool) ([]TaskRecord, error) {
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse scheduler csv output: %w", err)
	}

	if !verbose {
		records := make([]TaskRecord, 0, len(rows))
		for _, row := range rows {
			if len(row) < len(nonVerboseColumns) {
				continue
			}
			rec := make(TaskRecord, len(nonVerboseColumns))
			for i, col := range nonVerboseColumns {
				rec[col] = row[i]
			}
			records = append(records, rec)
		}
		return records, nil
	}

	var header []string
	var rawHeader []string
	records := make([]TaskRecord, 0, len(rows))
	for _, row := range rows {
		if header == nil {
			rawHeader = row
			header = make([]string, len(row))
			for i, col := range row {
				header[i] = snakeCase(col)
			}
			continue
		}
		if equalFields(row, rawHeader) {
			continue
		}
		rec := make(TaskRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// snakeCase folds a CSV column title like "Next Run Time" to next_run_time.
func snakeCase(s string) string {
	s = nonAlnumRun.ReplaceAllString(strings.ToLower(s), "_")
	return strings.Trim(s, "_")
}
