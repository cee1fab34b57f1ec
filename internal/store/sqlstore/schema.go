package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var textColumns = map[string][]string{
	"bookings": {
		"full_name", "phone", "email", "service_type", "date", "time",
		"duration", "address", "notes",
	},
	"workers": {
		"full_name", "phone", "email", "city", "service_type", "experience",
		"availability", "address", "certifications", "info",
		"aadhaar_url", "pan_url", "photo_url",
	},
}

// Tables lists the tables EnsureSchema manages, in creation order.
var Tables = []string{"bookings", "workers"}

// HasTable reports whether table exists in the current schema.
func (s *Store) HasTable(ctx context.Context, table string) (bool, error) {
	q := `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1`
	if s.dialect == Postgres {
		q = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1 LIMIT 1`
	}

	var name sql.NullString
	err := s.db.QueryRowContext(ctx, q, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return name.Valid && name.String != "", nil
}

// EnsureSchema creates the missing tables and returns the ones it created.
func (s *Store) EnsureSchema(ctx context.Context) ([]string, error) {
	created := []string{}
	for _, table := range Tables {
		ok, err := s.HasTable(ctx, table)
		if err != nil {
			return created, err
		}
		if ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, s.createTableSQL(table)); err != nil {
			return created, fmt.Errorf("create table %s: %w", table, err)
		}
		created = append(created, table)
	}
	return created, nil
}

func (s *Store) createTableSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", table)
	if s.dialect == Postgres {
		b.WriteString("id BIGSERIAL PRIMARY KEY")
	} else {
		b.WriteString("id BIGINT AUTO_INCREMENT PRIMARY KEY")
	}
	for _, c := range textColumns[table] {
		fmt.Fprintf(&b, ", %s TEXT NULL", c)
	}
	b.WriteString(", status VARCHAR(64) NOT NULL")
	if s.dialect == Postgres {
		b.WriteString(", created_at TIMESTAMPTZ NOT NULL DEFAULT now())")
	} else {
		b.WriteString(", created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6))")
	}
	return b.String()
}
