// Package products stores catalog products and answers filtered, paginated
// product searches.
package products

import (
	"context"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	// Search returns one page of products matching f and the total number of
	// matches. f must already be normalized.
	Search(ctx context.Context, f models.ProductFilter) ([]models.ProductWithCategory, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*models.ProductWithCategory, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, u models.ProductUpdate) (*models.Product, error)
	// SetImage replaces the product's image URL; nil clears it.
	SetImage(ctx context.Context, id uuid.UUID, url *string) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}
