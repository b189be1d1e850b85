package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	msgCategoryNameEmpty  = "Category name cannot be empty"
	msgCategoryNameExists = "Category name already exists"
	msgCategoryNotFound   = "Category not found"
	msgCategoryInUse      = "Cannot delete category with existing products"
)

type CategoryService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewCategoryService(tx dbx.Transactor, m repomanager.RepositoryManager, log logging.Logger) *CategoryService {
	return &CategoryService{tx: tx, repomanager: m, log: log}
}

func (s *CategoryService) repo() categories.Repository {
	return s.repomanager.Categories(s.tx.Conn())
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	list, err := s.repo().List(ctx)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("list categories: %w", err))
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, common.NewValidationError(msgCategoryNameEmpty)
	}

	repo := s.repo()
	taken, err := repo.NameTaken(ctx, name, nil)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("check category name: %w", err))
	}
	if taken {
		return nil, common.NewConflictError(msgCategoryNameExists)
	}

	c, err := repo.Create(ctx, &models.Category{Name: name, Description: req.Description})
	if err != nil {
		return nil, categoryError(err)
	}

	s.log.Info(ctx, "category created", "category_id", c.ID)
	return c, nil
}

// Update applies the non-nil fields of req.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req models.UpdateCategoryRequest) (*models.Category, error) {
	repo := s.repo()

	if _, err := repo.GetByID(ctx, id); err != nil {
		return nil, categoryError(err)
	}

	var name *string
	if req.Name != nil {
		v := normalizeName(*req.Name)
		if v == "" {
			return nil, common.NewValidationError(msgCategoryNameEmpty)
		}
		taken, err := repo.NameTaken(ctx, v, &id)
		if err != nil {
			return nil, common.NewInternalError(fmt.Errorf("check category name: %w", err))
		}
		if taken {
			return nil, common.NewConflictError(msgCategoryNameExists)
		}
		name = &v
	}

	c, err := repo.Update(ctx, id, name, req.Description)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}

// Delete refuses to remove a category that still has products.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	conn := s.tx.Conn()
	repo := s.repomanager.Categories(conn)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return categoryError(err)
	}

	n, err := s.repomanager.Products(conn).CountByCategory(ctx, id)
	if err != nil {
		return common.NewInternalError(fmt.Errorf("count products: %w", err))
	}
	if n > 0 {
		return common.NewBadRequestError(msgCategoryInUse)
	}

	if err := repo.Delete(ctx, id); err != nil {
		return categoryError(err)
	}
	s.log.Info(ctx, "category deleted", "category_id", id)
	return nil
}

func categoryError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.NewNotFoundError(msgCategoryNotFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.NewConflictError(msgCategoryNameExists)
	case errors.Is(err, categories.ErrInUse):
		return common.NewBadRequestError(msgCategoryInUse)
	default:
		return common.NewInternalError(err)
	}
}
