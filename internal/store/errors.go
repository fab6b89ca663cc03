package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateToken = errors.New("token is already blacklisted")
)

const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL unique-key violation.
func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
