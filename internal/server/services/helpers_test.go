package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/cryptox"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/mocks"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var cheapParams = cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return tm
}

// newMemoryUserService returns a service over a fresh in-memory store.
func newMemoryUserService(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewUserService(dbx.NoopTransactor{}, repomanager.NewMemoryRepositoryManager(store),
		cryptox.NewHasherWithParams(2, cheapParams), newTestTokens(t), logging.Discard())
	return svc, store
}

// mockManager serves gomock repositories; other repositories are unused.
type mockManager struct {
	repomanager.RepositoryManager
	users  *mocks.MockUsersRepository
	tokens *mocks.MockRefreshTokensRepository
}

func (m *mockManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *mockManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }

func newMockUserService(t *testing.T) (*UserService, *mocks.MockUsersRepository, *mocks.MockRefreshTokensRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &mockManager{
		users:  mocks.NewMockUsersRepository(ctrl),
		tokens: mocks.NewMockRefreshTokensRepository(ctrl),
	}
	svc := NewUserService(dbx.NoopTransactor{}, m,
		cryptox.NewHasherWithParams(2, cheapParams), newTestTokens(t), logging.Discard())
	return svc, m.users, m.tokens
}
