package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
)

// Row is one table row in column order.
type Row []any

// String returns column i as text; NULL is "".
func (r Row) String(i int) string {
	if i >= len(r) {
		return ""
	}
	switch v := r[i].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return domain.FormatTime(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns column i as an integer; NULL and unparsable text are 0.
func (r Row) Int(i int) int64 {
	if i >= len(r) {
		return 0
	}
	switch v := r[i].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	}
	return 0
}

// Values returns the row as a plain slice, suitable for export.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i := range r {
		if b, ok := r[i].([]byte); ok {
			out[i] = string(b)
			continue
		}
		out[i] = r[i]
	}
	return out
}

func scanRows(rows *sql.Rows) ([]Row, []string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out []Row
	for rows.Next() {
		row := make(Row, len(cols))
		ptrs := make([]any, len(cols))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			}
		}
		out = append(out, row)
	}
	return out, cols, rows.Err()
}
