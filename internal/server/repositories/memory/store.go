// Package memory provides map-backed repository implementations for local
// development and tests. A single Store guards all tables with one mutex,
// so every method call is atomic on its own.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	tokens     map[string]models.RefreshToken
	categories map[uuid.UUID]models.Category
	products   map[uuid.UUID]models.Product

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]models.User),
		tokens:     make(map[string]models.RefreshToken),
		categories: make(map[uuid.UUID]models.Category),
		products:   make(map[uuid.UUID]models.Product),
		now:        time.Now,
	}
}

// SetClock overrides the time source used for expiry checks and timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() *UsersRepository                 { return &UsersRepository{s: s} }
func (s *Store) RefreshTokens() *RefreshTokensRepository { return &RefreshTokensRepository{s: s} }
func (s *Store) Categories() *CategoriesRepository       { return &CategoriesRepository{s: s} }
func (s *Store) Products() *ProductsRepository           { return &ProductsRepository{s: s} }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
