package infrastructure

import (
	"database/sql"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// querierFor routes a statement through the open storage transaction when one
// is in flight, and straight at the pool otherwise.
func querierFor(db *sql.DB, tx domain.Tx) querier {
	if sqlTx, ok := tx.(*sql.Tx); ok && sqlTx != nil {
		return sqlTx
	}
	return db
}
