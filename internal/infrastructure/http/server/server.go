// Package server wires the chi router for the public site API and the
// admin dashboard API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/infrastructure/http/handlers"
	"github.com/receitario/v1/internal/infrastructure/http/middleware"
	"github.com/receitario/v1/internal/infrastructure/security"
	"github.com/receitario/v1/internal/ports/inbound"
)

// Server is the HTTP server for the recipe site
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *chi.Mux
}

// Services bundles the inbound ports the router exposes
type Services struct {
	Recipes    inbound.RecipeService
	Generation inbound.GenerationService
	Social     inbound.SocialService
	Site       inbound.SiteService
	MealPlans  inbound.MealPlanService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	services Services,
	auth *security.AuthService,
	registry *prometheus.Registry,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}
	s.router = s.setupRoutes(services, auth, registry)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes(services Services, auth *security.AuthService, registry *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5))
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	recipeH := handlers.NewRecipeHandlers(services.Recipes, s.logger)
	genH := handlers.NewGenerationHandlers(services.Generation, services.Social, s.logger)
	siteH := handlers.NewSiteHandlers(services.Site, services.MealPlans, s.logger)
	authH := handlers.NewAuthHandlers(auth, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authH.Login)

		// Public site API
		r.Get("/recipes", recipeH.List)
		r.Get("/recipes/{slug}", recipeH.GetBySlug)
		r.Post("/recipes/{id}/reviews", recipeH.AddReview)
		r.Post("/recipes/{id}/favorite", recipeH.ToggleFavorite)
		r.Get("/favorites", recipeH.ListFavorites)
		r.Get("/categories", recipeH.ListCategories)
		r.Get("/stories", siteH.ListStories)
		r.Get("/stories/{id}", siteH.GetStory)
		r.Get("/settings", siteH.GetSettings)
		r.Post("/suggestions", siteH.SubmitSuggestion)
		r.Post("/newsletter", siteH.SubscribeNewsletter)
		r.Get("/diet-plans", siteH.ListDietPlans)
		r.Get("/meal-plans/{weekID}", siteH.GetMealPlan)
		r.Put("/meal-plans/{weekID}/slots", siteH.SetMealSlot)
		r.Post("/meal-plans/{weekID}/apply", siteH.ApplyDietPlan)

		// Admin dashboard API
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(auth))

			r.Get("/recipes/{id}", recipeH.Get)
			r.Post("/recipes", recipeH.Create)
			r.Put("/recipes/{id}", recipeH.Update)
			r.Delete("/recipes/{id}", recipeH.Delete)
			r.Post("/recipes/{id}/publish", recipeH.Publish)
			r.Post("/recipes/{id}/archive", recipeH.Archive)
			r.Put("/categories", recipeH.SaveCategories)

			r.Post("/generate", genH.Generate)
			r.Post("/generate/magic", genH.MagicCreate)
			r.Post("/recipes/{id}/remix", genH.Remix)
			r.Post("/recipes/{id}/story", genH.GenerateStory)
			r.Post("/recipes/{id}/reel", genH.GenerateReel)
			r.Post("/recipes/{id}/meme", genH.PublishMeme)
			r.Post("/recipes/{id}/publish-social", genH.PublishSocial)
			r.Get("/recipes/{id}/caption", genH.SocialCaption)
			r.Post("/analyze-image", genH.AnalyzeImage)
			r.Post("/identify-utensils", genH.IdentifyUtensils)

			r.Get("/settings", siteH.GetAdminSettings)
			r.Put("/settings", siteH.SaveSettings)
			r.Get("/suggestions", siteH.ListSuggestions)
			r.Post("/suggestions/{id}/review", siteH.MarkSuggestionReviewed)
			r.Delete("/suggestions/{id}", siteH.ConsumeSuggestion)
			r.Put("/diet-plans", siteH.SaveDietPlan)
			r.Delete("/diet-plans/{id}", siteH.DeleteDietPlan)
			r.Post("/import/wordpress", siteH.ImportWordPress)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","version":%q}`, s.config.App.Version)
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
