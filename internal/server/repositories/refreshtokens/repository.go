// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=../mocks/refreshtokens_mock.go -package=mocks -mock_names=Repository=MockRefreshTokensRepository . Repository

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	// A duplicate token value yields common.ErrorAlreadyExists.
	Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) (*models.RefreshToken, error)

	// Find returns the token only while it is unexpired; otherwise
	// common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Consume deletes an unexpired token and returns it. Of two concurrent
	// calls with the same token at most one succeeds; the other gets
	// common.ErrorNotFound.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser revokes every refresh token of the user.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired purges expired tokens and reports how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
