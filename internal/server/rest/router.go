package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/httpx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wires every route. Reads of the catalog are public, writes need an
// admin token, profile routes need any valid token.
func (s *RESTServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	requireAuth := auth.RequireAuth(s.verifier, s.logger)
	requireAdmin := auth.RequireAdmin(s.verifier, s.logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/refresh", s.refresh)
			r.Post("/logout", s.logout)
		})

		r.With(requireAuth).Get("/profile", s.getProfile)
		r.With(requireAuth).Put("/profile", s.updateProfile)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Get("/{id}", s.getProduct)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", s.createProduct)
				r.Put("/{id}", s.updateProduct)
				r.Delete("/{id}", s.deleteProduct)
				r.Post("/{id}/upload-image", s.uploadProductImage)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Get("/{id}", s.getCategory)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", s.createCategory)
				r.Put("/{id}", s.updateCategory)
				r.Delete("/{id}", s.deleteCategory)
			})
		})
	})

	if s.uploads != nil {
		r.Handle(storage.LocalURLPrefix+"*", s.uploads)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, s.logger, common.NewNotFoundError("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.ErrorBody{Error: httpx.ErrorDetail{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		}})
	})

	return r
}

func (s *RESTServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
