package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

// ErrUnknownCategory is returned when a write references a missing category.
var ErrUnknownCategory = errors.New("unknown category")

const (
	productColumns     = `id, name, description, price, category_id, image_url, stock, created_at`
	joinedColumns      = `p.id, p.name, p.description, p.price, p.category_id, p.image_url, p.stock, p.created_at, c.name`
	joinedFrom         = ` FROM products p JOIN categories c ON c.id = p.category_id`
	searchOrderByLimit = ` ORDER BY p.created_at DESC, p.id LIMIT %s OFFSET %s`
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	p := &models.Product{}
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.ImageURL, &p.Stock, &p.CreatedAt)
	return p, err
}

func scanJoined(s scanner) (models.ProductWithCategory, error) {
	var p models.ProductWithCategory
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.ImageURL, &p.Stock, &p.CreatedAt, &p.CategoryName)
	return p, err
}

func (r *PostgresRepository) Search(ctx context.Context, f models.ProductFilter) ([]models.ProductWithCategory, int, error) {
	w := buildFilter(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+joinedFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + joinedColumns + joinedFrom + w.String()
	query += fmt.Sprintf(searchOrderByLimit, w.next(f.PerPage), w.next(f.Offset()))

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.ProductWithCategory, 0, f.PerPage)
	for rows.Next() {
		p, err := scanJoined(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PostgresRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*models.ProductWithCategory, error) {
	p, err := scanJoined(r.db.QueryRowContext(ctx, `SELECT `+joinedColumns+joinedFrom+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, description, price, category_id, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.CategoryID, p.Stock))
	if err != nil {
		return nil, writeError(err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, u models.ProductUpdate) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    category_id = COALESCE($5, category_id),
		    stock = COALESCE($6, stock)
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, u.Name, u.Description, u.Price, u.CategoryID, u.Stock))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, writeError(err)
	}
	return p, nil
}

func (r *PostgresRepository) SetImage(ctx context.Context, id uuid.UUID, url *string) (*models.Product, error) {
	query := `UPDATE products SET image_url = $2 WHERE id = $1 RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, url))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func writeError(err error) error {
	if dbx.ForeignKeyViolation(err) {
		return ErrUnknownCategory
	}
	return fmt.Errorf("db error: %w", err)
}
