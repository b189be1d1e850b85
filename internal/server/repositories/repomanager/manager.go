// Package repomanager builds repository sets bound to a database handle so
// services can rebind them to a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Categories(db dbx.DBTX) categories.Repository
	Products(db dbx.DBTX) products.Repository
}
