package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/httpx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// multipart bodies may exceed the image limit by this much for headers and
// boundaries before the request is cut off.
const multipartOverhead = 1 << 20

func pathID(r *http.Request, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, common.NewBadRequestError("Invalid " + what + " ID")
	}
	return id, nil
}

// productFilter reads search and paging parameters from the query string.
func productFilter(r *http.Request) (models.ProductFilter, error) {
	q := r.URL.Query()
	f := models.ProductFilter{
		Search:       q.Get("search"),
		CategoryName: q.Get("category_name"),
	}

	if v := q.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, common.NewValidationError("Invalid category_id")
		}
		f.CategoryID = &id
	}
	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{{"min_price", &f.MinPrice}, {"max_price", &f.MaxPrice}} {
		if v := q.Get(p.name); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return f, common.NewValidationError("Invalid " + p.name)
			}
			*p.dst = &d
		}
	}
	if v := q.Get("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, common.NewValidationError("Invalid in_stock")
		}
		f.InStock = &b
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &f.Page}, {"per_page", &f.PerPage}} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return f, common.NewValidationError("Invalid " + p.name)
			}
			*p.dst = n
		}
	}

	return f, nil
}

func (s *RESTServer) listProducts(w http.ResponseWriter, r *http.Request) {
	f, err := productFilter(r)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	page, err := s.svc.Products.Search(r.Context(), f)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, page)
}

func (s *RESTServer) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	p, err := s.svc.Products.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}

func (s *RESTServer) createProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	p, err := s.svc.Products.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (s *RESTServer) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	var req models.UpdateProductRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	p, err := s.svc.Products.Update(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}

func (s *RESTServer) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	if err := s.svc.Products.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.MessageResponse{Status: http.StatusOK, Message: "Product deleted successfully"})
}

func (s *RESTServer) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	if s.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+multipartOverhead)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			err = common.NewFileUploadError("File too large")
		case errors.Is(err, http.ErrMissingFile):
			err = common.NewFileUploadError("No image file provided")
		default:
			err = common.NewBadRequestError("Invalid multipart form")
		}
		httpx.WriteError(w, r, s.logger, err)
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	p, err := s.svc.Products.UploadImage(r.Context(), id, services.ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}

func (s *RESTServer) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Categories.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, list)
}

func (s *RESTServer) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	c, err := s.svc.Categories.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, c)
}

func (s *RESTServer) createCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	c, err := s.svc.Categories.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (s *RESTServer) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	var req models.UpdateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	c, err := s.svc.Categories.Update(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, c)
}

func (s *RESTServer) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	if err := s.svc.Categories.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.MessageResponse{Status: http.StatusOK, Message: "Category deleted successfully"})
}
