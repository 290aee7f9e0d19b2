// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrEmailExists is returned when registering with an email address
// that already has an account. Handlers should translate this into
// an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is MySQL error 1062, raised when an insert
// violates a unique key.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate-key violation.
// Repositories use it to turn unique-index races into their domain
// outcome instead of a generic failure.
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
