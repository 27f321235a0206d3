// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a row owned by someone else,
// while ErrNotFound signals that the addressed row does not exist.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write collides with a uniqueness
// constraint. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when the addressed row (or a row it references)
// does not exist.
var ErrNotFound = errors.New("not found")

// MySQL server error numbers we react to.
const (
	errDuplicateEntry        = 1062
	errNoReferencedRow       = 1452
	errNoReferencedRowLegacy = 1216
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicateKey(err error) bool {
	return mysqlErrNumber(err) == errDuplicateEntry
}

func isMissingReference(err error) bool {
	n := mysqlErrNumber(err)
	return n == errNoReferencedRow || n == errNoReferencedRowLegacy
}
