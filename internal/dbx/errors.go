package dbx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finanzas/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique/primary key constraint
// failure from either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		// primary result code only
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

// DBError wraps a driver failure as a transport error.
func DBError(err error) error {
	return fmt.Errorf("db error: %w: %w", common.ErrTransport, err)
}

// ScanError wraps a row decoding failure as a data format error.
func ScanError(err error) error {
	return fmt.Errorf("scan error: %w: %w", common.ErrDataFormat, err)
}
