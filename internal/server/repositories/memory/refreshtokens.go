package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

type RefreshTokensRepository struct {
	s *Store
}

func (r *RefreshTokensRepository) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.tokens[token]; exists {
		return nil, common.ErrorAlreadyExists
	}

	now := r.s.now()
	rt := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(validity),
		CreatedAt: now,
	}
	r.s.tokens[token] = rt

	return &rt, nil
}

func (r *RefreshTokensRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rt, ok := r.s.tokens[token]
	if !ok || !rt.ExpiresAt.After(r.s.now()) {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (r *RefreshTokensRepository) Consume(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rt, ok := r.s.tokens[token]
	if !ok || !rt.ExpiresAt.After(r.s.now()) {
		return nil, common.ErrorNotFound
	}
	delete(r.s.tokens, token)
	return &rt, nil
}

func (r *RefreshTokensRepository) Delete(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, token)
	return nil
}

func (r *RefreshTokensRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for k, rt := range r.s.tokens {
		if rt.UserID == userID {
			delete(r.s.tokens, k)
		}
	}
	return nil
}

func (r *RefreshTokensRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	var n int64
	for k, rt := range r.s.tokens {
		if !rt.ExpiresAt.After(now) {
			delete(r.s.tokens, k)
			n++
		}
	}
	return n, nil
}
