package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Queryer is satisfied by *sql.DB and *sql.Tx so repository methods can
// run either standalone or inside a caller-owned transaction.
type Queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// isDuplicateKey reports MySQL error 1062 (unique constraint violation).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
