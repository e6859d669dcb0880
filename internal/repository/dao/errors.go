package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// uniqueViolation reports whether err is a unique-key violation and, when the
// driver exposes it, which constraint or column tripped it.
//
// Postgres reports the constraint name (uni_users_email, idx_tickets_token ...),
// SQLite reports the columns ("UNIQUE constraint failed: users.email").
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName + " " + pgErr.Message, true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return sqliteErr.Error(), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	return "", false
}

func violates(err error, needle string) bool {
	detail, ok := uniqueViolation(err)
	return ok && strings.Contains(detail, needle)
}
