package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"category_id"`
	ImageURL    *string         `json:"image_url"`
	Stock       int32           `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductWithCategory is a product joined with its category's name.
type ProductWithCategory struct {
	Product
	CategoryName string `json:"category_name"`
}

// CreateProductRequest carries the price as a string so that clients can
// send exact decimal values.
type CreateProductRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       string    `json:"price"`
	CategoryID  uuid.UUID `json:"category_id"`
	Stock       int32     `json:"stock"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *string    `json:"price"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Stock       *int32     `json:"stock"`
}

// ProductUpdate is the validated form of UpdateProductRequest handed to
// repositories.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
	Stock       *int32
}

// ProductFilter selects and paginates products. Zero values mean "no filter".
type ProductFilter struct {
	Search       string
	CategoryID   *uuid.UUID
	CategoryName string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStock      *bool
	Page         int
	PerPage      int
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 50
	// MaxPage keeps (page-1)*per_page well inside a PostgreSQL bigint OFFSET.
	MaxPage = 1 << 20
)

// Normalize clamps paging values into range: 1 <= page <= MaxPage,
// 1 <= per_page <= 50.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip for the current page.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// Page is a paginated list response.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
	TotalPages  int `json:"total_pages"`
	ItemOnPage  int `json:"item_on_page"`
}

// NewPage assembles a page from one slice of results and the total count.
func NewPage[T any](data []T, total int, f ProductFilter) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:        data,
		CurrentPage: f.Page,
		TotalItems:  total,
		PerPage:     f.PerPage,
		TotalPages:  (total + f.PerPage - 1) / f.PerPage,
		ItemOnPage:  len(data),
	}
}
