package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tankstore/storefront-backend/api/controllers"
	"github.com/tankstore/storefront-backend/api/middleware"
	"github.com/tankstore/storefront-backend/internal/auth"
	"github.com/tankstore/storefront-backend/internal/brands"
	"github.com/tankstore/storefront-backend/internal/categories"
	"github.com/tankstore/storefront-backend/internal/products"
	"github.com/tankstore/storefront-backend/internal/settings"
	"github.com/tankstore/storefront-backend/internal/videos"
	"github.com/tankstore/storefront-backend/pkg/config"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/metrics"
)

// Deps is everything the router mounts. Limiter and the ready checks may be
// nil; UploadsRoot is empty unless files are served from local disk.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Ready       map[string]controllers.Pinger
	Limiter     middleware.RateLimiter
	HTTPMetrics *metrics.HTTPMetrics
	MetricsPage http.Handler
	UploadsRoot string

	Auth       auth.Service
	Brands     brands.Service
	Categories categories.Service
	Products   products.Service
	Settings   settings.Service
	Videos     videos.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger
	maxUpload := cfg.Storage.MaxUploadBytes()
	authRequired := cfg.FeatureFlags.AuthRequired

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Ready))
	})
	if d.MetricsPage != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsPage)
	}
	if d.UploadsRoot != "" {
		prefix := strings.TrimSuffix(cfg.Storage.PublicPrefix, "/")
		r.Handle(prefix+"/*", uploads(d.UploadsRoot))
	}

	loginPolicy := middleware.LoginRateLimitPolicy{
		Window:          cfg.AuthRateLimit.LoginWindow,
		IPLimit:         cfg.AuthRateLimit.LoginIPLimit,
		IdentifierLimit: cfg.AuthRateLimit.LoginEmailLimit,
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(loginPolicy, d.Limiter, logg)).Post("/login", controllers.Login(d.Auth, logg))

		r.Get("/brands", controllers.BrandList(d.Brands, logg))
		r.Get("/categories", controllers.CategoryList(d.Categories, logg))
		r.Get("/products", controllers.ProductList(d.Products, logg))
		r.Get("/products/{id}", controllers.ProductGet(d.Products, logg))
		r.Get("/product/category", controllers.ProductsByCategory(d.Products, logg))
		r.Get("/price-list", controllers.PriceList(d.Products, logg))
		r.Get("/settings", controllers.SettingsGet(d.Settings, logg))
		r.Get("/videos", controllers.VideoList(d.Videos, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, authRequired, logg))
			r.Use(middleware.RequireRole(models.RoleAdmin, authRequired, logg))

			r.Post("/brands", controllers.BrandCreate(d.Brands, logg))
			r.Put("/brands/{id}", controllers.BrandUpdate(d.Brands, logg))
			r.Delete("/brands/{id}", controllers.BrandDelete(d.Brands, logg))

			r.Post("/categories", controllers.CategoryCreate(d.Categories, maxUpload, logg))
			r.Put("/categories/{id}", controllers.CategoryUpdate(d.Categories, maxUpload, logg))
			r.Delete("/categories/{id}", controllers.CategoryDelete(d.Categories, logg))

			r.Post("/products", controllers.ProductCreate(d.Products, maxUpload, logg))
			r.Put("/products/{id}", controllers.ProductUpdate(d.Products, maxUpload, logg))
			r.Delete("/products/{id}", controllers.ProductDelete(d.Products, logg))

			r.Put("/settings", controllers.SettingsUpdate(d.Settings, maxUpload, logg))

			r.Post("/videos", controllers.VideoCreate(d.Videos, logg))
			r.Put("/videos/{id}", controllers.VideoUpdate(d.Videos, logg))
			r.Delete("/videos/{id}", controllers.VideoDelete(d.Videos, logg))
		})
	})

	return r
}

// uploads serves stored files from root without directory listings. Stored
// paths already start with the public prefix, so no prefix is stripped.
func uploads(root string) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}
