package sqlite

import (
	"errors"
	"strings"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// errorCode returns the SQLite result code carried by err, if any.
func errorCode(err error) (int, bool) {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	return se.Code(), true
}

// isConstraint reports whether err is a constraint failure whose extended
// code is one of codes, or whose message carries the given marker when the
// driver only reports the primary code.
func isConstraint(err error, marker string, codes ...int) bool {
	code, ok := errorCode(err)
	if !ok || code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), marker)
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY violation.
func IsUniqueViolation(err error) bool {
	return isConstraint(err, "UNIQUE constraint failed",
		sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY violation.
func IsForeignKeyViolation(err error) bool {
	return isConstraint(err, "FOREIGN KEY constraint failed", sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

// IsCheckViolation reports whether err is a NOT NULL or CHECK violation.
func IsCheckViolation(err error) bool {
	code, ok := errorCode(err)
	if !ok {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return true
	}
	return code == sqlite3.SQLITE_CONSTRAINT &&
		(strings.Contains(err.Error(), "NOT NULL constraint failed") || strings.Contains(err.Error(), "CHECK constraint failed"))
}
