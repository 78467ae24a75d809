package sources

import (
	"fmt"
	"strings"

	"activitylog/internal/core"
)

// Normalized column names of the activity table.
const (
	ColumnDate        = "date"
	ColumnDescription = "activity description"
	ColumnDuration    = "duration (hours)"
	ColumnMood        = "how i feel"
)

const utf8BOM = "\ufeff"

// NormalizeHeader trims and lowercases a column name.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, utf8BOM)))
}

type columns struct {
	date, desc, duration, mood int
}

func locateColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	lookup := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	cols := columns{
		date:     lookup(ColumnDate),
		desc:     lookup(ColumnDescription),
		duration: lookup(ColumnDuration),
		mood:     lookup(ColumnMood),
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s; got headers=%v", core.ErrMissingColumn, strings.Join(missing, ", "), header)
	}
	return cols, nil
}

// DecodeTable turns a header row and data rows into activity records.
// Short rows are padded with empty cells; fully blank rows are skipped.
func DecodeTable(header []string, rows [][]string) ([]core.ActivityRecord, error) {
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}
	records := make([]core.ActivityRecord, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		// Row numbers are 1-based and count the header line.
		line := i + 2
		date, err := core.ParseDate(safeGet(row, cols.date))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", line, ColumnDate, err)
		}
		hours, err := core.ParseHours(safeGet(row, cols.duration))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", line, ColumnDuration, err)
		}
		records = append(records, core.ActivityRecord{
			Date:        date,
			Description: safeGet(row, cols.desc),
			Duration:    hours,
			Mood:        strings.TrimSpace(safeGet(row, cols.mood)),
		})
	}
	return records, nil
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
