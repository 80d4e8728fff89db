package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysql error numbers for unique key and foreign key violations.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
)

// translateError maps driver-level errors onto the store sentinels so
// handlers never have to know about MySQL error numbers.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return ErrDuplicate
		case mysqlErrNoReferencedRow:
			return &ValidationError{Msg: "referenced record does not exist"}
		}
	}
	return err
}
