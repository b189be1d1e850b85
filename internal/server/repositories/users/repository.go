// Package users declares and implements storage for user accounts.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

// Unique-constraint failures, both matching common.ErrorAlreadyExists.
var (
	ErrUsernameTaken = fmt.Errorf("username %w", common.ErrorAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("email %w", common.ErrorAlreadyExists)
)

//go:generate mockgen -destination=../mocks/users_mock.go -package=mocks -mock_names=Repository=MockUsersRepository . Repository

type Repository interface {
	// Create inserts the user and fills in ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Update changes the non-nil fields and returns the stored row.
	Update(ctx context.Context, id uuid.UUID, username, email *string) (*models.User, error)
}
