package mysql

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

// Record is one result row keyed by column name, the Go rendition of a
// dictionary cursor row. Accessors tolerate the driver's raw representations
// ([]byte for text, int64 for integers) and return zero values for absent or
// NULL columns.
type Record map[string]any

// String returns the named column as a string.
func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Int64 returns the named column as an int64.
func (r Record) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

// Time returns the named column as a time.Time (requires the DSN's
// parseTime option, which the pool always sets).
func (r Record) Time(col string) time.Time {
	if v, ok := r[col].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// ExecResult reports the outcome of a mutating statement.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// Executor runs parameterized statements against the pool. Each call
// acquires one connection for its duration and releases it on every exit
// path; the executor itself never retries (reconnecting is the pool's job).
type Executor struct {
	pool *Pool
}

func NewExecutor(pool *Pool) *Executor {
	return &Executor{pool: pool}
}

// Exec runs a statement that returns no rows (INSERT/UPDATE/DELETE) and
// reports the affected-row count and generated id. Fails with a
// configuration fault when no pool is available.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (ExecResult, error) {
	db, err := e.pool.DB()
	if err != nil {
		return ExecResult{}, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return ExecResult{}, classifyErr(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, classifyErr(err)
	}
	// MySQL reports LastInsertId without an extra round trip; an error here
	// only occurs on drivers that do not support it.
	lastID, _ := res.LastInsertId()

	return ExecResult{RowsAffected: rows, LastInsertID: lastID}, nil
}

// QueryOne returns the first row as a Record, or nil when the query matches
// nothing. Absence is not an error; callers decide what missing means.
func (e *Executor) QueryOne(ctx context.Context, query string, args ...any) (Record, error) {
	records, err := e.QueryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// QueryAll returns the full result set as an ordered slice of Records.
func (e *Executor) QueryAll(ctx context.Context, query string, args ...any) ([]Record, error) {
	db, err := e.pool.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, classifyErr(err)
	}
	return records, nil
}

// collectRecords scans every row into a column-keyed Record.
func collectRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		record := make(Record, len(columns))
		for i, col := range columns {
			record[col] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
