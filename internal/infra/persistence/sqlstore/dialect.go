package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect covers the differences between MySQL and PostgreSQL that the
// repositories care about. Queries are written with ? placeholders.
type Dialect struct {
	Name          string
	timestampType string

	// exactCollate is appended to columns compared with = that must match
	// byte for byte. MySQL's default collations ignore case.
	exactCollate string
	numbered     bool
}

var (
	MySQL    = Dialect{Name: "mysql", timestampType: "DATETIME(6)", exactCollate: " COLLATE utf8mb4_bin"}
	Postgres = Dialect{Name: "postgres", timestampType: "TIMESTAMPTZ", numbered: true}
)

// Rebind rewrites ? placeholders into $1, $2, ... for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) schema() []string {
	ts := d.timestampType
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
            id VARCHAR(36) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL,
            password_hash VARCHAR(255) NOT NULL,
            role VARCHAR(16) NOT NULL,
            is_active BOOLEAN NOT NULL,
            created_at ` + ts + ` NOT NULL,
            CONSTRAINT uniq_users_email UNIQUE (email)
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id VARCHAR(36) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            name_key VARCHAR(255) NOT NULL,
            subcategories TEXT NOT NULL,
            created_at ` + ts + ` NOT NULL,
            updated_at ` + ts + ` NOT NULL,
            CONSTRAINT uniq_categories_name_key UNIQUE (name_key)
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id VARCHAR(36) PRIMARY KEY,
            title VARCHAR(255) NOT NULL,
            description TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            category VARCHAR(255)` + d.exactCollate + ` NOT NULL,
            merchant_id VARCHAR(36) NOT NULL,
            is_active BOOLEAN NOT NULL,
            created_at ` + ts + ` NOT NULL,
            updated_at ` + ts + ` NOT NULL
        )`,
	}
}
