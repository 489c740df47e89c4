package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cinehub/booking-api/internal/auth"
	"github.com/cinehub/booking-api/internal/config"
	"github.com/cinehub/booking-api/internal/httputil"
	"github.com/cinehub/booking-api/internal/logging"
	"github.com/cinehub/booking-api/internal/movie"
	"github.com/cinehub/booking-api/internal/showtime"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	movieHandler *movie.Handler,
	showtimeHandler *showtime.Handler,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/adminlogin", authHandler.AdminLogin)

			// Protected account routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Put("/change-password", authHandler.ChangePassword)
				r.Delete("/profile", authHandler.DeleteAccount)

				r.With(authMiddleware.RequireAdmin).Get("/users", authHandler.ListUsers)
			})
		})

		// Password recovery (public by design: the caller has lost their password)
		r.Route("/password", func(r chi.Router) {
			r.Post("/send-otp", authHandler.SendOTP)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.List)
			r.Get("/{id}", movieHandler.Get)

			// Catalog mutations are admin-only
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
				r.Post("/", movieHandler.Create)
				r.Put("/{id}", movieHandler.Update)
				r.Delete("/{id}", movieHandler.Delete)
			})
		})

		r.Route("/showtimes", func(r chi.Router) {
			r.Get("/", showtimeHandler.List)
			r.Get("/movie/{movieId}", showtimeHandler.ListByMovie)
			r.Get("/{id}", showtimeHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
				r.Post("/", showtimeHandler.Create)
				r.Put("/{id}", showtimeHandler.Update)
				r.Delete("/{id}", showtimeHandler.Delete)
			})
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
