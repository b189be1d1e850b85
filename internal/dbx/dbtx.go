// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and a Transactor
// abstraction so services do not depend on *sql.DB directly.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work executed by a Transactor.
type TxFunc func(ctx context.Context, tx DBTX) error

// Transactor runs a unit of work atomically.
//
// Implementations call fn exactly once. The DBTX handed to fn is the handle
// repositories must be bound to for their writes to be part of the unit.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
	// Conn returns the non-transactional handle.
	Conn() DBTX
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE token = $1", t)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// SQLTransactor is a Transactor over a *sql.DB.
type SQLTransactor struct {
	db   *sql.DB
	opts *sql.TxOptions
}

func NewSQLTransactor(db *sql.DB, opts *sql.TxOptions) *SQLTransactor {
	return &SQLTransactor{db: db, opts: opts}
}

func (t *SQLTransactor) WithTx(ctx context.Context, fn TxFunc) error {
	return WithTx(ctx, t.db, t.opts, fn)
}

func (t *SQLTransactor) Conn() DBTX {
	return t.db
}

// NoopTransactor runs fn directly with a nil handle. It backs repository
// implementations that ignore DBTX (in-memory), where each call is already
// atomic on its own.
type NoopTransactor struct{}

func (NoopTransactor) WithTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, nil)
}

func (NoopTransactor) Conn() DBTX {
	return nil
}
