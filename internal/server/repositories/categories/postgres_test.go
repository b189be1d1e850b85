package categories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*description\s+FROM\s+categories\s+ORDER\s+BY\s+name$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow(a.String(), "Books", "Paper things").
			AddRow(b.String(), "Games", nil))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Books", got[0].Name)
	require.NotNil(t, got[0].Description)
	assert.Equal(t, "Paper things", *got[0].Description)
	assert.Nil(t, got[1].Description)
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetByID(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*name,\s*description\s+FROM\s+categories\s+WHERE\s+id\s*=\s*\$1$`
	id := uuid.New()

	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(q).WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(id.String(), "Books", nil))
	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	mock.ExpectQuery(q).WithArgs(id.String()).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNameTaken(t *testing.T) {
	q := `(?s)SELECT\s+EXISTS.*LOWER\(name\)\s*=\s*LOWER\(\$1\)\s+AND\s+\(\$2::uuid\s+IS\s+NULL\s+OR\s+id\s*<>\s*\$2\)`
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(q).WithArgs("books", nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	taken, err := repo.NameTaken(context.Background(), "books", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	self := uuid.New()
	mock.ExpectQuery(q).WithArgs("books", self.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	taken, err = repo.NameTaken(context.Background(), "books", &self)
	require.NoError(t, err)
	assert.False(t, taken)

	mock.ExpectQuery(q).WillReturnError(errors.New("boom"))
	_, err = repo.NameTaken(context.Background(), "books", nil)
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+categories\s*\(name,\s*description\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(q).WithArgs("Books", "Paper").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := repo.Create(context.Background(), &models.Category{Name: "Books", Description: strPtr("Paper")})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	mock.ExpectQuery(q).WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err = repo.Create(context.Background(), &models.Category{Name: "books"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestUpdate(t *testing.T) {
	q := `(?s)^UPDATE\s+categories\s+SET\s+name\s*=\s*COALESCE\(\$2,\s*name\),\s*description\s*=\s*COALESCE\(\$3,\s*description\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,\s*name,\s*description\s*$`
	id := uuid.New()
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(q).WithArgs(id.String(), "Novels", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(id.String(), "Novels", "Paper"))
	got, err := repo.Update(context.Background(), id, strPtr("Novels"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Novels", got.Name)

	mock.ExpectQuery(q).WillReturnError(sql.ErrNoRows)
	_, err = repo.Update(context.Background(), id, strPtr("Novels"), nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(q).WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err = repo.Update(context.Background(), id, strPtr("Games"), nil)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestDelete(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+categories\s+WHERE\s+id\s*=\s*\$1$`
	id := uuid.New()
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(q).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(q).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs(id.String()).WillReturnError(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrInUse)

	require.NoError(t, mock.ExpectationsWereMet())
}
