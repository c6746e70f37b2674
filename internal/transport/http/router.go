package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-presignup-gate/internal/config"
	"github.com/go-presignup-gate/internal/transport/http/handler"
	appmiddleware "github.com/go-presignup-gate/internal/transport/http/middleware"
	"github.com/go-presignup-gate/internal/transport/lambda"
	"golang.org/x/time/rate"
)

// Deps holds the dependencies for the router.
type Deps struct {
	Hook   *lambda.Handler
	Logger *slog.Logger
}

// NewRouter builds the local HTTP harness around the pre-signup hook.
// ctx bounds background work such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10.
	hookRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	healthH := handler.NewHealthHandler(cfg.AppName)
	preSignUpH := handler.NewPreSignUpHandler(deps.Hook, deps.Logger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(hookRL.Limit).Post("/presignup", preSignUpH.Invoke)
	})

	return r
}
