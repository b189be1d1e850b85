package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/products"
	"github.com/google/uuid"
)

type ProductsRepository struct {
	s *Store
}

func (r *ProductsRepository) Search(ctx context.Context, f models.ProductFilter) ([]models.ProductWithCategory, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]models.ProductWithCategory, 0)
	for _, p := range r.s.products {
		c := r.s.categories[p.CategoryID]
		if matches(p, c, f) {
			matched = append(matched, models.ProductWithCategory{Product: p, CategoryName: c.Name})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := f.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := min(start+f.PerPage, total)

	return matched[start:end], total, nil
}

// matches approximates full-text search: every word of the query must occur
// in the name or description, ignoring case.
func matches(p models.Product, c models.Category, f models.ProductFilter) bool {
	if words := strings.Fields(strings.ToLower(f.Search)); len(words) > 0 {
		text := strings.ToLower(p.Name)
		if p.Description != nil {
			text += " " + strings.ToLower(*p.Description)
		}
		for _, w := range words {
			if !strings.Contains(text, w) {
				return false
			}
		}
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if name := strings.TrimSpace(f.CategoryName); name != "" && !strings.EqualFold(c.Name, name) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock != nil && (p.Stock > 0) != *f.InStock {
		return false
	}
	return true
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *ProductsRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*models.ProductWithCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.ProductWithCategory{Product: p, CategoryName: r.s.categories[p.CategoryID].Name}, nil
}

func (r *ProductsRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[p.CategoryID]; !ok {
		return nil, products.ErrUnknownCategory
	}

	created := *p
	created.ID = uuid.New()
	created.CreatedAt = r.s.now()
	created.Description = clonePtr(p.Description)
	created.ImageURL = nil
	r.s.products[created.ID] = created

	return &created, nil
}

func (r *ProductsRepository) Update(ctx context.Context, id uuid.UUID, u models.ProductUpdate) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if u.CategoryID != nil {
		if _, ok := r.s.categories[*u.CategoryID]; !ok {
			return nil, products.ErrUnknownCategory
		}
		p.CategoryID = *u.CategoryID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = clonePtr(u.Description)
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}

	r.s.products[id] = p
	return &p, nil
}

func (r *ProductsRepository) SetImage(ctx context.Context, id uuid.UUID, url *string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.ImageURL = clonePtr(url)
	r.s.products[id] = p
	return &p, nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductsRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}
