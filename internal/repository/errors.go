// Package repository holds the hand-written SQL behind every entity.  The
// sentinel errors below are shared by all repositories so that higher layers
// can map failures to HTTP statuses without knowing about the driver.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no row matches the requested id (or key).
// Update and delete report it too, so a missing row is never silent.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a unique key.  Services
// check uniqueness before saving; this is the backstop for races.
var ErrConflict = errors.New("conflict")

// ErrInvalidSort is returned when a page request sorts by a property the
// table does not expose.
var ErrInvalidSort = errors.New("invalid sort property")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate-key error.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "1062")
}

// mapWriteErr converts driver errors of INSERT/UPDATE statements.
func mapWriteErr(err error) error {
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}
