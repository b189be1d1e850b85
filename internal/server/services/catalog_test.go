package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	saved   map[string]string
	deleted []string
	saveErr error
}

func (f *fakeImages) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[name] = string(b)
	return "/uploads/" + name, nil
}

func (f *fakeImages) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newCatalog(t *testing.T) (*CategoryService, *ProductService, *fakeImages) {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager(memory.NewStore())
	images := &fakeImages{}
	return NewCategoryService(dbx.NoopTransactor{}, m, logging.Discard()),
		NewProductService(dbx.NoopTransactor{}, m, images, 1024, logging.Discard()),
		images
}

func strPtr(s string) *string { return &s }

func TestCategoryService_Lifecycle(t *testing.T) {
	cats, prods, _ := newCatalog(t)
	ctx := context.Background()

	_, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "  "})
	requireKind(t, err, common.KindValidation, "Category name cannot be empty")

	books, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Books", Description: strPtr("Paper")})
	require.NoError(t, err)

	_, err = cats.Create(ctx, models.CreateCategoryRequest{Name: "books"})
	requireKind(t, err, common.KindConflict, "Category name already exists")

	music, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Music"})
	require.NoError(t, err)

	_, err = cats.Update(ctx, music.ID, models.UpdateCategoryRequest{Name: strPtr("BOOKS")})
	requireKind(t, err, common.KindConflict, "Category name already exists")

	renamed, err := cats.Update(ctx, books.ID, models.UpdateCategoryRequest{Name: strPtr("books")})
	require.NoError(t, err, "renaming to own name in another case is allowed")
	assert.Equal(t, "books", renamed.Name)
	require.NotNil(t, renamed.Description)
	assert.Equal(t, "Paper", *renamed.Description)

	_, err = cats.Update(ctx, uuid.New(), models.UpdateCategoryRequest{})
	requireKind(t, err, common.KindNotFound, "Category not found")

	_, err = prods.Create(ctx, models.CreateProductRequest{Name: "Novel", Price: "9.99", CategoryID: books.ID, Stock: 1})
	require.NoError(t, err)

	err = cats.Delete(ctx, books.ID)
	requireKind(t, err, common.KindBadRequest, "Cannot delete category with existing products")

	require.NoError(t, cats.Delete(ctx, music.ID))
	err = cats.Delete(ctx, music.ID)
	requireKind(t, err, common.KindNotFound, "Category not found")

	list, err := cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestProductService_CreateValidation(t *testing.T) {
	cats, prods, _ := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Toys"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  models.CreateProductRequest
		kind common.Kind
		msg  string
	}{
		{"empty name", models.CreateProductRequest{Name: "", Price: "1", CategoryID: c.ID}, common.KindValidation, "Product name cannot be empty"},
		{"bad price", models.CreateProductRequest{Name: "Ball", Price: "cheap", CategoryID: c.ID}, common.KindValidation, "Invalid price format"},
		{"negative price", models.CreateProductRequest{Name: "Ball", Price: "-1", CategoryID: c.ID}, common.KindValidation, "Price cannot be negative"},
		{"negative stock", models.CreateProductRequest{Name: "Ball", Price: "1", CategoryID: c.ID, Stock: -1}, common.KindValidation, "Stock cannot be negative"},
		{"unknown category", models.CreateProductRequest{Name: "Ball", Price: "1", CategoryID: uuid.New()}, common.KindNotFound, "Category not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prods.Create(ctx, tt.req)
			requireKind(t, err, tt.kind, tt.msg)
		})
	}

	p, err := prods.Create(ctx, models.CreateProductRequest{Name: "Ball", Price: "12.5", CategoryID: c.ID, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "12.5", p.Price.String())

	got, err := prods.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toys", got.CategoryName)
}

func TestProductService_UpdatePartial(t *testing.T) {
	cats, prods, _ := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Toys"})
	require.NoError(t, err)
	p, err := prods.Create(ctx, models.CreateProductRequest{Name: "Ball", Price: "5", CategoryID: c.ID, Stock: 3})
	require.NoError(t, err)

	price := "7.25"
	got, err := prods.Update(ctx, p.ID, models.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Ball", got.Name)
	assert.Equal(t, "7.25", got.Price.String())
	assert.EqualValues(t, 3, got.Stock)

	neg := int32(-2)
	_, err = prods.Update(ctx, p.ID, models.UpdateProductRequest{Stock: &neg})
	requireKind(t, err, common.KindValidation, "Stock cannot be negative")

	missing := uuid.New()
	_, err = prods.Update(ctx, p.ID, models.UpdateProductRequest{CategoryID: &missing})
	requireKind(t, err, common.KindNotFound, "Category not found")

	_, err = prods.Update(ctx, uuid.New(), models.UpdateProductRequest{})
	requireKind(t, err, common.KindNotFound, "Product not found")
}

func TestProductService_SearchPaging(t *testing.T) {
	cats, prods, _ := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Toys"})
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		_, err := prods.Create(ctx, models.CreateProductRequest{Name: "Ball", Price: "1", CategoryID: c.ID})
		require.NoError(t, err)
	}

	page, err := prods.Search(ctx, models.ProductFilter{Page: 0, PerPage: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, 12, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 10, page.ItemOnPage)

	page, err = prods.Search(ctx, models.ProductFilter{Page: 2, PerPage: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, page.PerPage)
	assert.Equal(t, 0, page.ItemOnPage)
	assert.NotNil(t, page.Data)
}

func TestProductService_UploadImage(t *testing.T) {
	cats, prods, images := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Toys"})
	require.NoError(t, err)
	p, err := prods.Create(ctx, models.CreateProductRequest{Name: "Ball", Price: "5", CategoryID: c.ID})
	require.NoError(t, err)

	_, err = prods.UploadImage(ctx, p.ID, ImageUpload{Filename: "x.exe", Size: 3, Body: strings.NewReader("bin")})
	requireKind(t, err, common.KindFileUpload, "Invalid file type. Allowed: jpg, jpeg, png, webp, gif")

	_, err = prods.UploadImage(ctx, p.ID, ImageUpload{Filename: "x.png", Size: 4096, Body: strings.NewReader("big")})
	requireKind(t, err, common.KindFileUpload, "File too large")

	_, err = prods.UploadImage(ctx, uuid.New(), ImageUpload{Filename: "x.png", Size: 3, Body: strings.NewReader("png")})
	requireKind(t, err, common.KindNotFound, "Product not found")

	first, err := prods.UploadImage(ctx, p.ID, ImageUpload{Filename: "Photo.PNG", Size: 3, Body: strings.NewReader("one")})
	require.NoError(t, err)
	require.NotNil(t, first.ImageURL)
	assert.True(t, strings.HasPrefix(*first.ImageURL, "/uploads/"+p.ID.String()+"_"))
	assert.True(t, strings.HasSuffix(*first.ImageURL, ".png"))

	second, err := prods.UploadImage(ctx, p.ID, ImageUpload{Filename: "b.jpg", Size: 3, Body: strings.NewReader("two")})
	require.NoError(t, err)
	assert.Equal(t, []string{*first.ImageURL}, images.deleted, "previous image removed")

	require.NoError(t, prods.Delete(ctx, p.ID))
	assert.Equal(t, []string{*first.ImageURL, *second.ImageURL}, images.deleted)

	err = prods.Delete(ctx, p.ID)
	requireKind(t, err, common.KindNotFound, "Product not found")
}

func TestProductService_UploadStoreFailure(t *testing.T) {
	cats, prods, images := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, models.CreateCategoryRequest{Name: "Toys"})
	require.NoError(t, err)
	p, err := prods.Create(ctx, models.CreateProductRequest{Name: "Ball", Price: "5", CategoryID: c.ID})
	require.NoError(t, err)

	images.saveErr = errors.New("disk full")
	_, err = prods.UploadImage(ctx, p.ID, ImageUpload{Filename: "a.gif", Size: 1, Body: strings.NewReader("g")})
	requireKind(t, err, common.KindInternal, "Internal server error")
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0", "0", true},
		{" 19.99 ", "19.99", true},
		{"1.005", "1.01", true},
		{"99999999.99", "99999999.99", true},
		{"100000000", "", false},
		{"", "", false},
		{"1e3", "1000", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePrice(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
