package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/categories"
	"github.com/google/uuid"
)

type CategoriesRepository struct {
	s *Store
}

func (r *CategoriesRepository) List(ctx context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *CategoriesRepository) NameTaken(ctx context.Context, name string, exclude *uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.nameTaken(name, exclude), nil
}

func (r *CategoriesRepository) nameTaken(name string, exclude *uuid.UUID) bool {
	for id, c := range r.s.categories {
		if exclude != nil && id == *exclude {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *CategoriesRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(c.Name, nil) {
		return nil, common.ErrorAlreadyExists
	}

	c.ID = uuid.New()
	c.Description = clonePtr(c.Description)
	r.s.categories[c.ID] = *c
	return c, nil
}

func (r *CategoriesRepository) Update(ctx context.Context, id uuid.UUID, name, description *string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if name != nil {
		if r.nameTaken(*name, &id) {
			return nil, common.ErrorAlreadyExists
		}
		c.Name = *name
	}
	if description != nil {
		c.Description = clonePtr(description)
	}

	r.s.categories[id] = c
	return &c, nil
}

func (r *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return common.ErrorNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return categories.ErrInUse
		}
	}

	delete(r.s.categories, id)
	return nil
}
