// Package source loads SQL query results as runtime arrays so generated
// code can fold and map over rows. Each row becomes a Record keyed by
// column name.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"splufp/internal/object"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Source struct {
	Driver string
	DB     *sql.DB
}

// Open connects with one of the registered drivers: sqlite3, mysql or
// postgres.
func Open(ctx context.Context, driver, dsn string) (*Source, error) {
	if !slices.Contains(sql.Drivers(), driver) {
		return nil, fmt.Errorf("unknown database driver %q (have %s)", driver, strings.Join(sql.Drivers(), ", "))
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("database connection opened", slog.String("driver", driver))
	return &Source{Driver: driver, DB: db}, nil
}

func (s *Source) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Query runs sql and returns one Record per row, in result order.
func (s *Source) Query(ctx context.Context, query string, params ...any) (*object.Array, error) {
	rows, err := s.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result, err := renderRows(rows)
	if err != nil {
		return nil, err
	}
	slog.Debug("query complete", slog.String("driver", s.Driver), slog.Int("rows", len(result.Elements)))
	return result, nil
}

// Exec runs a statement and reports rowsAffected and lastInsertId.
func (s *Source) Exec(ctx context.Context, query string, params ...any) (*object.Record, error) {
	result, err := s.DB.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("exec failed: %w", err)
	}

	affected, _ := result.RowsAffected()
	lastID, _ := result.LastInsertId()

	res := &object.Record{}
	res.Put("rowsAffected", &object.Number{Value: float64(affected)})
	res.Put("lastInsertId", &object.Number{Value: float64(lastID)})
	return res, nil
}

// QueryFn exposes Query as a curried one-argument primitive taking the
// SQL text.
func (s *Source) QueryFn() *object.Function {
	return object.Curry1("query", func(q object.Deferred) (object.Object, error) {
		v, err := object.Resolve(q)
		if err != nil {
			return nil, err
		}
		str, ok := v.(*object.String)
		if !ok {
			return nil, object.NewError("argument to `query` must be a STRING, got=%s", v.Type())
		}
		return s.Query(context.Background(), str.Value)
	})
}

func renderRows(rows *sql.Rows) (*object.Array, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := &object.Array{Elements: []object.Object{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		row := &object.Record{}
		for i, col := range columns {
			var ct *sql.ColumnType
			if i < len(colTypes) {
				ct = colTypes[i]
			}
			row.Put(col, TypeMapper(values[i], ct))
		}
		result.Elements = append(result.Elements, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TypeMapper converts a scanned driver value into a runtime value.
func TypeMapper(v any, ct *sql.ColumnType) object.Object {
	if v == nil {
		return object.NONE
	}

	switch x := v.(type) {
	case int64:
		return &object.Number{Value: float64(x)}
	case int32:
		return &object.Number{Value: float64(x)}
	case int:
		return &object.Number{Value: float64(x)}
	case float64:
		return &object.Number{Value: x}
	case float32:
		return &object.Number{Value: float64(x)}
	case bool:
		return object.NativeBoolToBooleanObject(x)
	case time.Time:
		return &object.String{Value: x.Format(time.RFC3339Nano)}
	case string:
		return &object.String{Value: x}
	case []byte:
		return mapBytes(x, ct)
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}

// mapBytes uses the declared column type to decide what raw bytes are.
// mysql hands back DECIMAL and friends as text.
func mapBytes(b []byte, ct *sql.ColumnType) object.Object {
	decl := ""
	if ct != nil {
		decl = strings.ToUpper(ct.DatabaseTypeName())
	}

	switch {
	case strings.Contains(decl, "BLOB") || strings.Contains(decl, "BINARY") || decl == "BYTEA":
		elements := make([]object.Object, len(b))
		for i, c := range b {
			elements[i] = &object.Number{Value: float64(c)}
		}
		return &object.Array{Elements: elements}
	case decl == "DECIMAL" || decl == "NUMERIC":
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			return &object.Number{Value: f}
		}
	}
	return &object.String{Value: string(b)}
}
