package surrealdb

import (
	"context"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// isNotFoundError reports whether err is a SurrealDB "record does not exist"
// style failure rather than a transport error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// queryList runs a SurrealQL query and returns the rows of its first
// statement as a slice of pointers.
func queryList[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) ([]*T, error) {
	results, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, err
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	var mapped []*T
	for i := range (*results)[0].Result {
		mapped = append(mapped, &(*results)[0].Result[i])
	}
	return mapped, nil
}

// queryOne runs a SurrealQL query and returns the first row of its first
// statement, or nil when the query matched nothing.
func queryOne[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) (*T, error) {
	rows, err := queryList[T](ctx, db, sql, vars)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
