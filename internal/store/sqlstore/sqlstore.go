// Package sqlstore implements store.Store on database/sql for MySQL and Postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"homeservices/internal/store"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect string) (*Store, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(dialect)))
	if d != MySQL && d != Postgres {
		return nil, fmt.Errorf("sqlstore: unsupported dialect %q", dialect)
	}
	if db == nil {
		return nil, fmt.Errorf("sqlstore: nil db")
	}
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) placeholder(n int) string {
	if s.dialect == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func checkIdent(names ...string) error {
	for _, n := range names {
		if !identRe.MatchString(n) {
			return fmt.Errorf("sqlstore: invalid identifier %q", n)
		}
	}
	return nil
}

func sortedColumns(row store.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func (s *Store) Insert(ctx context.Context, table string, row store.Row) ([]store.Row, error) {
	cols := sortedColumns(row)
	if err := checkIdent(append([]string{table}, cols...)...); err != nil {
		return nil, err
	}

	args := make([]any, 0, len(cols))
	marks := make([]string, 0, len(cols))
	for i, c := range cols {
		args = append(args, row[c])
		marks = append(marks, s.placeholder(i+1))
	}

	var q string
	switch {
	case len(cols) == 0 && s.dialect == Postgres:
		q = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)
	case len(cols) == 0:
		q = fmt.Sprintf("INSERT INTO %s () VALUES ()", table)
	default:
		q = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	}

	if s.dialect == Postgres {
		rows, err := s.db.QueryContext(ctx, q+" RETURNING *", args...)
		if err != nil {
			return nil, fmt.Errorf("insert %s: %w", table, err)
		}
		return scanRows(rows)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert %s: last insert id: %w", table, err)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table), id)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", table, err)
	}
	return scanRows(rows)
}

func (s *Store) Select(ctx context.Context, table string, order store.Order) ([]store.Row, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	q := "SELECT * FROM " + table
	if order.Column != "" {
		if err := checkIdent(order.Column); err != nil {
			return nil, err
		}
		dir := "ASC"
		if order.Desc {
			dir = "DESC"
		}
		q += fmt.Sprintf(" ORDER BY %s %s", order.Column, dir)
	}

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return scanRows(rows)
}

func (s *Store) UpdateByID(ctx context.Context, table, id string, values store.Row) error {
	cols := sortedColumns(values)
	if len(cols) == 0 {
		return nil
	}
	if err := checkIdent(append([]string{table}, cols...)...); err != nil {
		return err
	}

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = %s", c, s.placeholder(i+1)))
		args = append(args, values[c])
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", table, strings.Join(sets, ", "), s.placeholder(len(cols)+1))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update %s id=%s: %w", table, id, err)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]store.Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []store.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		r := make(store.Row, len(cols))
		for i, c := range cols {
			r[c] = normalize(vals[i])
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}
