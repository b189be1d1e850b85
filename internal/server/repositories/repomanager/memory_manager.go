package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out repositories over one shared in-memory
// store. The DBTX argument is ignored; pair it with dbx.NoopTransactor.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager(store *memory.Store) *MemoryRepositoryManager {
	if store == nil {
		store = memory.NewStore()
	}
	return &MemoryRepositoryManager{store: store}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.store.Users() }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens()
}

func (m *MemoryRepositoryManager) Categories(dbx.DBTX) categories.Repository {
	return m.store.Categories()
}

func (m *MemoryRepositoryManager) Products(dbx.DBTX) products.Repository { return m.store.Products() }
