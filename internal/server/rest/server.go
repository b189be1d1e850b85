// Package rest exposes the catalog over JSON HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Services groups the business services the handlers call.
type Services struct {
	Users      *services.UserService
	Categories *services.CategoryService
	Products   *services.ProductService
}

type RESTServer struct {
	address       string
	logger        logging.Logger
	svc           Services
	verifier      auth.Verifier
	uploads       http.Handler
	maxUploadSize int64
}

// NewRESTServer builds the server. uploads, when non-nil, is mounted at
// /uploads/ to serve locally stored images.
func NewRESTServer(address string, l logging.Logger, svc Services, v auth.Verifier, uploads http.Handler, maxUploadSize int64) *RESTServer {
	return &RESTServer{
		address:       address,
		logger:        l.With("module", "rest_server"),
		svc:           svc,
		verifier:      v,
		uploads:       uploads,
		maxUploadSize: maxUploadSize,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
