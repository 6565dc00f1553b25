// Package postgres implements the remote entity store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"GLOBETROTTER_BACK-END/internal/store"
)

// DBTX is the part of pgxpool.Pool and pgx.Tx the table client needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Op is a filter comparison.
type Op string

const (
	OpEq    Op = "="
	OpILike Op = "ILIKE"
)

// Filter compares one column against a bound value.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq filters rows where column = value.
func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// Order sorts by one column.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query selects rows of a table. Filters are ANDed.
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   int
	Offset  int
}

// Table is a typed client for one table. Column names are checked against the table's
// column list before they reach SQL; values are always bound parameters.
type Table[T any] struct {
	db      DBTX
	name    string
	columns []string
}

// NewTable returns a client for table name whose rows scan into T by db tag.
func NewTable[T any](db DBTX, name string, columns []string) *Table[T] {
	return &Table[T]{db: db, name: name, columns: columns}
}

// Name is the table name.
func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) ident(column string) (string, error) {
	if !slices.Contains(t.columns, column) {
		return "", fmt.Errorf("%s: unknown column %q", t.name, column)
	}
	return pgx.Identifier{column}.Sanitize(), nil
}

func (t *Table[T]) selectList() string {
	quoted := make([]string, len(t.columns))
	for i, c := range t.columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

func (t *Table[T]) where(filters []Filter, args []any) (string, []any, error) {
	if len(filters) == 0 {
		return "", args, nil
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		col, err := t.ident(f.Column)
		if err != nil {
			return "", nil, err
		}
		op := f.Op
		if op == "" {
			op = OpEq
		}
		if op != OpEq && op != OpILike {
			return "", nil, fmt.Errorf("%s: unsupported operator %q", t.name, op)
		}
		args = append(args, f.Value)
		parts = append(parts, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func (t *Table[T]) buildSelect(q Query) (string, []any, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", t.selectList(), pgx.Identifier{t.name}.Sanitize())

	where, args, err := t.where(q.Filters, nil)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	if len(q.Orders) > 0 {
		parts := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			col, err := t.ident(o.Column)
			if err != nil {
				return "", nil, err
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts = append(parts, col+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args, nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t *Table[T]) buildInsert(values map[string]any) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, fmt.Errorf("%s: insert without values", t.name)
	}
	keys := sortedKeys(values)
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		col, err := t.ident(k)
		if err != nil {
			return "", nil, err
		}
		cols[i] = col
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[k]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pgx.Identifier{t.name}.Sanitize(), strings.Join(cols, ", "), strings.Join(marks, ", "), t.selectList())
	return sql, args, nil
}

func (t *Table[T]) buildUpdate(id string, patch map[string]any) (string, []any, error) {
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("%s: update without values", t.name)
	}
	keys := sortedKeys(patch)
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		if k == "id" {
			return "", nil, fmt.Errorf("%s: id cannot be updated", t.name)
		}
		col, err := t.ident(k)
		if err != nil {
			return "", nil, err
		}
		args = append(args, patch[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		pgx.Identifier{t.name}.Sanitize(), strings.Join(sets, ", "), len(args), t.selectList())
	return sql, args, nil
}

// Select returns the rows matching q.
func (t *Table[T]) Select(ctx context.Context, q Query) ([]T, error) {
	sql, args, err := t.buildSelect(q)
	if err != nil {
		return nil, err
	}
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(t.name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, wrapErr(t.name, err)
	}
	return out, nil
}

// Get returns the row with the given id or store.ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	return t.One(ctx, Eq("id", id))
}

// One returns the first row matching filters or store.ErrNotFound.
func (t *Table[T]) One(ctx context.Context, filters ...Filter) (T, error) {
	var zero T
	rows, err := t.Select(ctx, Query{Filters: filters, Limit: 1})
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, store.ErrNotFound
	}
	return rows[0], nil
}

// Insert writes a row and returns it as stored.
func (t *Table[T]) Insert(ctx context.Context, values map[string]any) (T, error) {
	var zero T
	sql, args, err := t.buildInsert(values)
	if err != nil {
		return zero, err
	}
	return t.queryOne(ctx, sql, args)
}

// Update changes the given columns of row id. A missing row is store.ErrNotFound.
func (t *Table[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	sql, args, err := t.buildUpdate(id, patch)
	if err != nil {
		return zero, err
	}
	return t.queryOne(ctx, sql, args)
}

// Delete removes row id. Deleting a missing row is not an error.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pgx.Identifier{t.name}.Sanitize())
	if _, err := t.db.Exec(ctx, sql, id); err != nil {
		return wrapErr(t.name, err)
	}
	return nil
}

// Count returns the number of rows matching filters.
func (t *Table[T]) Count(ctx context.Context, filters ...Filter) (int, error) {
	where, args, err := t.where(filters, nil)
	if err != nil {
		return 0, err
	}
	var n int
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", pgx.Identifier{t.name}.Sanitize(), where)
	if err := t.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, wrapErr(t.name, err)
	}
	return n, nil
}

func (t *Table[T]) queryOne(ctx context.Context, sql string, args []any) (T, error) {
	var zero T
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return zero, wrapErr(t.name, err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, wrapErr(t.name, err)
	}
	return row, nil
}

// wrapErr maps driver errors onto the store sentinels.
func wrapErr(table string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", table, store.ErrConflict)
		case "23503":
			return fmt.Errorf("%s: referenced row does not exist: %w", table, store.ErrNotFound)
		}
		return fmt.Errorf("%s: %s (%s)", table, pgErr.Message, pgErr.Code)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %v: %w", table, err, store.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", table, err)
}
