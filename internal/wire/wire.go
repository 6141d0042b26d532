// internal/wire/wire.go
package wire

import (
	"net/http"

	"storefront-admin/internal/adaptor"
	"storefront-admin/internal/data/repository"
	"storefront-admin/internal/usecase"
	"storefront-admin/pkg/middleware"
	"storefront-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// sessionGuards are the two ways a route can resolve its caller.
type sessionGuards struct {
	required func(http.Handler) http.Handler
	optional func(http.Handler) http.Handler
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, service, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, service *usecase.Service, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	guards := sessionGuards{
		required: middleware.AuthSession(service.Auth, logger),
		optional: middleware.OptionalSession(service.Auth, logger),
	}

	// Apply routes
	wireAuth(r, handler.Auth, guards)
	wireCategory(r, handler.Category, guards)
	wireReview(r, handler.Review, guards)
	wireOrder(r, handler.Order, guards)
	wireUser(r, handler.User, guards)
	wireStats(r, handler.Stats, guards)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
