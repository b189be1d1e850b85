package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcatalog/internal/server/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgProductNameEmpty  = "Product name cannot be empty"
	msgInvalidPrice      = "Invalid price format"
	msgNegativePrice     = "Price cannot be negative"
	msgNegativeStock     = "Stock cannot be negative"
	msgProductNotFound   = "Product not found"
	msgInvalidFileType   = "Invalid file type. Allowed: jpg, jpeg, png, webp, gif"
	msgFileTooLarge      = "File too large"
	msgMissingFile       = "No image file provided"
	maxPriceIntegerDigit = 8
)

var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

// ImageUpload is an uploaded file as received from the client.
type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type ProductService struct {
	tx            dbx.Transactor
	repomanager   repomanager.RepositoryManager
	images        storage.ImageStore
	maxUploadSize int64
	log           logging.Logger
}

func NewProductService(tx dbx.Transactor, m repomanager.RepositoryManager, images storage.ImageStore, maxUploadSize int64, log logging.Logger) *ProductService {
	return &ProductService{
		tx:            tx,
		repomanager:   m,
		images:        images,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (s *ProductService) repo() products.Repository {
	return s.repomanager.Products(s.tx.Conn())
}

// Search normalizes paging and returns one page of matching products,
// newest first.
func (s *ProductService) Search(ctx context.Context, f models.ProductFilter) (*models.Page[models.ProductWithCategory], error) {
	f.Normalize()
	f.Search = strings.TrimSpace(f.Search)

	data, total, err := s.repo().Search(ctx, f)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("search products: %w", err))
	}

	page := models.NewPage(data, total, f)
	return &page, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.ProductWithCategory, error) {
	p, err := s.repo().GetWithCategory(ctx, id)
	if err != nil {
		return nil, productError(err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, common.NewValidationError(msgProductNameEmpty)
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, common.NewValidationError(msgNegativeStock)
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p, err := s.repo().Create(ctx, &models.Product{
		Name:        name,
		Description: req.Description,
		Price:       price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, productError(err)
	}

	s.log.Info(ctx, "product created", "product_id", p.ID)
	return p, nil
}

// Update applies the non-nil fields of req with the same rules as Create.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.repo().GetByID(ctx, id); err != nil {
		return nil, productError(err)
	}

	var u models.ProductUpdate
	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return nil, common.NewValidationError(msgProductNameEmpty)
		}
		u.Name = &name
	}
	u.Description = req.Description
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		u.Price = &price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, common.NewValidationError(msgNegativeStock)
		}
		u.Stock = req.Stock
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		u.CategoryID = req.CategoryID
	}

	p, err := s.repo().Update(ctx, id, u)
	if err != nil {
		return nil, productError(err)
	}
	return p, nil
}

// Delete removes the product and then its stored image.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	repo := s.repo()

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return productError(err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return productError(err)
	}

	s.removeImage(ctx, p.ImageURL)
	s.log.Info(ctx, "product deleted", "product_id", id)
	return nil
}

// UploadImage stores the file as "<productID>_<uuid>.<ext>", points the
// product at it and removes the previous image.
func (s *ProductService) UploadImage(ctx context.Context, id uuid.UUID, file ImageUpload) (*models.Product, error) {
	if file.Body == nil {
		return nil, common.NewFileUploadError(msgMissingFile)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return nil, common.NewFileUploadError(msgInvalidFileType)
	}
	if s.maxUploadSize > 0 && file.Size > s.maxUploadSize {
		return nil, common.NewFileUploadError(msgFileTooLarge)
	}

	repo := s.repo()
	old, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, productError(err)
	}

	name := fmt.Sprintf("%s_%s.%s", id, uuid.New(), ext)
	url, err := s.images.Save(ctx, name, file.Body, file.Size, contentType)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("save image: %w", err))
	}

	p, err := repo.SetImage(ctx, id, &url)
	if err != nil {
		s.removeImage(ctx, &url)
		return nil, productError(err)
	}

	s.removeImage(ctx, old.ImageURL)
	return p, nil
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repomanager.Categories(s.tx.Conn()).GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewNotFoundError(msgCategoryNotFound)
		}
		return common.NewInternalError(fmt.Errorf("find category: %w", err))
	}
	return nil
}

func (s *ProductService) removeImage(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	if err := s.images.Delete(ctx, *url); err != nil {
		s.log.Warn(ctx, "remove product image", "url", *url, "error", err)
	}
}

// parsePrice accepts a decimal string that fits NUMERIC(10,2).
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, common.NewValidationError(msgInvalidPrice)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, common.NewValidationError(msgNegativePrice)
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(decimal.New(1, maxPriceIntegerDigit)) {
		return decimal.Decimal{}, common.NewValidationError(msgInvalidPrice)
	}
	return price, nil
}

func productError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.NewNotFoundError(msgProductNotFound)
	case errors.Is(err, products.ErrUnknownCategory):
		return common.NewNotFoundError(msgCategoryNotFound)
	default:
		return common.NewInternalError(err)
	}
}
