package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amara-cosmetics/amara-backend/api/controllers"
	"github.com/amara-cosmetics/amara-backend/api/middleware"
	"github.com/amara-cosmetics/amara-backend/internal/addresses"
	authsvc "github.com/amara-cosmetics/amara-backend/internal/auth"
	"github.com/amara-cosmetics/amara-backend/internal/cart"
	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	"github.com/amara-cosmetics/amara-backend/internal/content"
	"github.com/amara-cosmetics/amara-backend/internal/orders"
	"github.com/amara-cosmetics/amara-backend/internal/profiles"
	"github.com/amara-cosmetics/amara-backend/internal/reviews"
	"github.com/amara-cosmetics/amara-backend/internal/stats"
	"github.com/amara-cosmetics/amara-backend/internal/wishlist"
	"github.com/amara-cosmetics/amara-backend/pkg/auth/session"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/logger"
	"github.com/amara-cosmetics/amara-backend/pkg/metrics"
	"github.com/amara-cosmetics/amara-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	addressesService addresses.Service,
	reviewsService reviews.Service,
	wishlistService wishlist.Service,
	profilesService profiles.Service,
	contentService content.Service,
	statsService stats.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminAuthLogin(authService, logg))
	})

	// Storefront browse surface. No auth so guests can shop.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsBrowse(catalogService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(catalogService, logg))
		r.Get("/products/{productId}/reviews", controllers.ReviewsList(reviewsService, logg))
		r.Get("/categories", controllers.CategoriesList(catalogService, logg))
		r.Get("/categories/{slug}", controllers.CategoryBySlug(catalogService, logg))
		r.Get("/blog", controllers.BlogList(contentService, logg))
		r.Get("/blog/{slug}", controllers.BlogBySlug(contentService, logg))
		r.Get("/faqs", controllers.FAQList(contentService, logg))
		r.Get("/settings", controllers.SettingsFetch(contentService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderPlace(ordersService, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(ordersService, logg))
		})

		r.Route("/v1/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(addressesService, logg))
			r.Post("/", controllers.AddressCreate(addressesService, logg))
			r.Patch("/{addressId}", controllers.AddressUpdate(addressesService, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(addressesService, logg))
			r.Post("/{addressId}/default", controllers.AddressSetDefault(addressesService, logg))
		})

		r.Route("/v1/reviews", func(r chi.Router) {
			r.Post("/{productId}", controllers.ReviewCreate(reviewsService, logg))
			r.Delete("/{reviewId}", controllers.ReviewDelete(reviewsService, logg))
		})

		r.Route("/v1/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(wishlistService, logg))
			r.Get("/ids", controllers.WishlistIDs(wishlistService, logg))
			r.Post("/", controllers.WishlistAddItem(wishlistService, logg))
			r.Delete("/{productId}", controllers.WishlistRemoveItem(wishlistService, logg))
		})

		r.Route("/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileFetch(profilesService, logg))
			r.Put("/", controllers.ProfileUpdate(profilesService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.AdminPing())
		r.Get("/stats", controllers.AdminStats(statsService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsBrowse(catalogService, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(catalogService, logg))
			r.Patch("/{categoryId}", controllers.AdminUpdateCategory(catalogService, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(catalogService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(ordersService, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(ordersService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(profilesService, logg))
			r.Patch("/{userId}/role", controllers.AdminUserUpdateRole(profilesService, logg))
			r.Patch("/{userId}/active", controllers.AdminUserSetActive(profilesService, logg))
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.AdminBlogList(contentService, logg))
			r.Post("/", controllers.AdminBlogCreate(contentService, logg))
			r.Patch("/{postId}", controllers.AdminBlogUpdate(contentService, logg))
			r.Delete("/{postId}", controllers.AdminBlogDelete(contentService, logg))
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", controllers.AdminFAQList(contentService, logg))
			r.Post("/", controllers.AdminFAQCreate(contentService, logg))
			r.Patch("/{faqId}", controllers.AdminFAQUpdate(contentService, logg))
			r.Delete("/{faqId}", controllers.AdminFAQDelete(contentService, logg))
		})

		r.Put("/settings", controllers.AdminSettingsUpdate(contentService, logg))
	})

	return r
}
