package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tokens (id INTEGER PRIMARY KEY, token TEXT);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM tokens`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tokens(token) VALUES ('a')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, db), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO tokens(token) VALUES ('b')`)
		require.NoError(t, e)
		return errors.New("boom")
	})
	require.Error(t, err)

	require.Equal(t, 0, countRows(t, db), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRows(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO tokens(token) VALUES ('c')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}

func TestSQLTransactor_RotatesAtomically(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO tokens(token) VALUES ('old')`)
	require.NoError(t, err)

	tr := NewSQLTransactor(db, nil)
	require.Equal(t, DBTX(db), tr.Conn())

	err = tr.WithTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE token = 'old'`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tokens(token) VALUES ('new')`); err != nil {
			return err
		}
		return errors.New("crash before commit")
	})
	require.Error(t, err)

	var tok string
	require.NoError(t, db.QueryRow(`SELECT token FROM tokens`).Scan(&tok))
	require.Equal(t, "old", tok, "neither delete nor insert may survive a failed unit")
}

func TestNoopTransactor_CallsFnOnce(t *testing.T) {
	calls := 0
	err := NoopTransactor{}.WithTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		calls++
		require.Nil(t, tx)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Nil(t, NoopTransactor{}.Conn())
}
