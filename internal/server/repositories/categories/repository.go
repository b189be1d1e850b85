// Package categories stores product categories.
package categories

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

// ErrInUse is returned when deleting a category that products still reference.
var ErrInUse = errors.New("category in use")

type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// NameTaken reports whether another category (other than exclude, if
	// given) already uses name, compared case-insensitively.
	NameTaken(ctx context.Context, name string, exclude *uuid.UUID) (bool, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, name, description *string) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
