package api

import (
	"net/http"
	"time"

	"wishlist_api/internal/api/handler"
	"wishlist_api/internal/api/middleware"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common"
	"wishlist_api/internal/common/security"
	"wishlist_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	tokens *security.TokenManager,
	authService *service.AuthService,
	wishService *service.WishService,
	userService *service.UserService,
	fileService *service.FileService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Verifies a bearer token when present, puts token + claims in context.
	// The Authenticator middleware decides per route group whether identity
	// is actually required.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Public liveness probe
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "wishlist-api",
		})
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		wishHandler := handler.NewWishHandler(wishService)
		v1.Route("/wishes", wishHandler.RegisterRoutes)

		uploadHandler := handler.NewUploadHandler(fileService)
		v1.Route("/upload", uploadHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(userService)
		v1.Route("/admin", adminHandler.RegisterRoutes)
	})

	return r
}
