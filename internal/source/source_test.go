package source

import (
	"bytes"
	"context"
	"path/filepath"
	"splufp/internal/foreign"
	"splufp/internal/object"
	"splufp/internal/thunk"
	"testing"
)

func openTestSource(t *testing.T) *Source {
	t.Helper()
	ctx := context.Background()
	src, err := Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "rows.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { src.Close() })

	stmts := []string{
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, item TEXT, amount REAL, note TEXT, raw BLOB)`,
		`INSERT INTO orders (item, amount, note, raw) VALUES ('apple', 1.5, NULL, x'0102')`,
		`INSERT INTO orders (item, amount, note, raw) VALUES ('pear', 2, 'ripe', NULL)`,
		`INSERT INTO orders (item, amount, note, raw) VALUES ('fig', 3.25, NULL, NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := src.Exec(ctx, stmt); err != nil {
			t.Fatalf("exec %q failed: %v", stmt, err)
		}
	}
	return src
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "nosuchdb", ""); err == nil {
		t.Fatalf("expected an error for an unknown driver")
	}
}

func TestQueryRowsAsRecords(t *testing.T) {
	src := openTestSource(t)

	rows, err := src.Query(context.Background(), `SELECT id, item, amount, note, raw FROM orders ORDER BY id`)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(rows.Elements) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows.Elements))
	}

	first := rows.Elements[0].(*object.Record)
	expected := "{id: 1, item: apple, amount: 1.5, note: none, raw: [1, 2]}"
	if first.Inspect() != expected {
		t.Errorf("expected %s, got %s", expected, first.Inspect())
	}
}

func TestQueryWithParams(t *testing.T) {
	src := openTestSource(t)

	rows, err := src.Query(context.Background(), `SELECT item FROM orders WHERE amount > ? ORDER BY id`, 1.75)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if rows.Inspect() != "[{item: pear}, {item: fig}]" {
		t.Errorf("unexpected rows %s", rows.Inspect())
	}
}

func TestExecReportsAffectedRows(t *testing.T) {
	src := openTestSource(t)

	res, err := src.Exec(context.Background(), `UPDATE orders SET note = 'checked' WHERE amount < 3`)
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	if v, _ := res.Get("rowsAffected"); v.Inspect() != "2" {
		t.Errorf("expected 2 rows affected, got %s", v.Inspect())
	}
}

func TestFoldOverQueryResult(t *testing.T) {
	src := openTestSource(t)
	fns := foreign.GetForeignFunctions(&bytes.Buffer{})

	rows, err := object.Apply(src.QueryFn(), thunk.Of(&object.String{Value: `SELECT amount FROM orders`}))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	// sumAmount acc row = add acc (obj_get row "amount")
	sumAmount := object.Curry2("sumAmount", func(row, acc object.Deferred) (object.Object, error) {
		amount, err := object.Apply(fns["obj_get"], row, thunk.Of(&object.String{Value: "amount"}))
		if err != nil {
			return nil, err
		}
		return object.Apply(fns["add"], acc, thunk.Of(amount))
	})

	total, err := object.Apply(fns["foldl"], thunk.Of(sumAmount), thunk.Of(&object.Number{Value: 0}), thunk.Of(rows))
	if err != nil {
		t.Fatalf("fold failed: %v", err)
	}
	got, err := object.Resolve(total)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Inspect() != "6.75" {
		t.Errorf("expected 6.75, got %s", got.Inspect())
	}
}

func TestTypeMapper(t *testing.T) {
	cases := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "none"},
		{"int64", int64(42), "42"},
		{"float64", 2.5, "2.5"},
		{"bool", true, "true"},
		{"string", "hi", "hi"},
		{"untyped bytes", []byte("text"), "text"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TypeMapper(c.value, nil)
			if got.Inspect() != c.expected {
				t.Errorf("expected %s, got %s", c.expected, got.Inspect())
			}
		})
	}
}
