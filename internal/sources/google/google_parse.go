package google

import (
	"fmt"
	"strconv"

	"activitylog/internal/core"
	"activitylog/internal/sources"
)

// decodeValues converts a values matrix (as returned by Sheets API) into
// activity records. The first row is the header.
func decodeValues(values [][]interface{}) ([]core.ActivityRecord, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: range is empty", core.ErrMissingColumn)
	}
	header := toStrings(values[0])
	rows := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		rows = append(rows, toStrings(v))
	}
	return sources.DecodeTable(header, rows)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = cellString(v)
	}
	return out
}

// cellString renders a cell the way it would appear in an exported CSV.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
