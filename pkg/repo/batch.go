package repo

import (
	"fmt"
	"strings"
)

// BatchInsertQueryN expands a multi-row insert from a base query ending in
// "VALUES" and a rectangular set of rows, producing positional placeholders
// and the flattened argument list.
func BatchInsertQueryN(baseQuery string, rows [][]any) (string, []any) {
	if len(rows) == 0 {
		return baseQuery, nil
	}

	width := len(rows[0])
	var sb strings.Builder
	sb.WriteString(baseQuery)

	args := make([]any, 0, len(rows)*width)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" (")
		for j := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*width+j+1)
		}
		sb.WriteString(")")
		args = append(args, row...)
	}
	return sb.String(), args
}
