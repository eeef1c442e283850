package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/yamdb/yamdb-server/internal/api"
	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/logger"
	"github.com/yamdb/yamdb-server/internal/mail"
	"github.com/yamdb/yamdb-server/internal/service"
)

// Version is reported in the OpenAPI document. Set with -ldflags at build time.
var Version = "dev"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	errs chan error
}

// Err delivers the listener error if the server stops on its own.
func (h *HTTPServerHandle) Err() <-chan error {
	return h.errs
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	mailer := do.MustInvoke[*mail.BreakerSender](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		Users:      do.MustInvoke[*service.UserService](i),
		Categories: do.MustInvoke[*service.CategoryService](i),
		Genres:     do.MustInvoke[*service.GenreService](i),
		Titles:     do.MustInvoke[*service.TitleService](i),
		Reviews:    do.MustInvoke[*service.ReviewService](i),
		Comments:   do.MustInvoke[*service.CommentService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Version:      Version,
		HealthChecks: []api.HealthChecker{mailer},
	}, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	h := &HTTPServerHandle{Server: srv, errs: make(chan error, 1)}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			h.errs <- err
		}
	}()

	return h, nil
}
