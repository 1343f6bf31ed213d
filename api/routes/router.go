package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abhi-engg/farmstand-backend/api/controllers"
	"github.com/Abhi-engg/farmstand-backend/api/middleware"
	authsvc "github.com/Abhi-engg/farmstand-backend/internal/auth"
	"github.com/Abhi-engg/farmstand-backend/internal/banners"
	"github.com/Abhi-engg/farmstand-backend/internal/cart"
	"github.com/Abhi-engg/farmstand-backend/internal/catalog"
	"github.com/Abhi-engg/farmstand-backend/internal/extraction"
	"github.com/Abhi-engg/farmstand-backend/internal/favorites"
	"github.com/Abhi-engg/farmstand-backend/internal/reviews"
	"github.com/Abhi-engg/farmstand-backend/internal/users"
	"github.com/Abhi-engg/farmstand-backend/pkg/auth/session"
	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
	"github.com/Abhi-engg/farmstand-backend/pkg/metrics"
	"github.com/Abhi-engg/farmstand-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	registerService authsvc.RegisterService,
	usersRepo *users.Repository,
	catalogService catalog.Service,
	reviewsService reviews.Service,
	favoritesService favorites.Service,
	cartService cart.Service,
	bannersService banners.Service,
	extractionService extraction.Service,
) http.Handler {
	var redisP redis.Pinger
	var limiter middleware.RateLimitStore
	if redisClient != nil {
		redisP = redisClient
		limiter = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Browsing works logged out; a valid token only adds is_favorite.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, sessionManager, logg))

			r.Get("/products", controllers.ListProducts(catalogService, logg))
			r.Get("/products/featured", controllers.FeaturedProducts(catalogService, logg))
			r.Get("/products/{productID}", controllers.GetProduct(catalogService, logg))
			r.Get("/products/{productID}/reviews", controllers.ListProductReviews(reviewsService, logg))
			r.Get("/categories", controllers.ListCategories(catalogService, logg))
			r.Get("/banners", controllers.ListBanners(bannersService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Post("/products/{productID}/reviews", controllers.AddProductReview(reviewsService, logg))
			r.Post("/products/{productID}/favorite", controllers.ToggleFavorite(favoritesService, logg))
			r.Post("/products/{productID}/add-to-cart", controllers.AddProductToCart(cartService, logg))
			r.Post("/products/{productID}/buy-now", controllers.BuyNow(cartService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartService, logg))
				r.Post("/items", controllers.AddToCart(cartService, logg))
				r.Patch("/items/{itemID}", controllers.UpdateCartQuantity(cartService, logg))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(cartService, logg))
				r.Post("/clear", controllers.ClearCart(cartService, logg))
			})

			r.Get("/favorites", controllers.ListFavorites(favoritesService, logg))
			r.Delete("/reviews/{reviewID}", controllers.DeleteReview(reviewsService, logg))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.CurrentUser(usersRepo, logg))
				r.Patch("/", controllers.UpdateCurrentUser(usersRepo, logg))
			})

			r.With(middleware.RateLimit(
				"extract",
				limiter,
				cfg.RateLimit.ExtractLimit,
				cfg.RateLimit.ExtractWindow,
				logg,
			)).Post("/extract-text", controllers.ExtractText(extractionService, cfg.Media, logg))
		})
	})

	return r
}
