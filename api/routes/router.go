package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solsticegems/solstice-backend/api/controllers"
	"github.com/solsticegems/solstice-backend/api/middleware"
	authsvc "github.com/solsticegems/solstice-backend/internal/auth"
	cartsvc "github.com/solsticegems/solstice-backend/internal/cart"
	catalogsvc "github.com/solsticegems/solstice-backend/internal/catalog"
	customizesvc "github.com/solsticegems/solstice-backend/internal/customize"
	inventorysvc "github.com/solsticegems/solstice-backend/internal/inventory"
	mediasvc "github.com/solsticegems/solstice-backend/internal/media"
	"github.com/solsticegems/solstice-backend/pkg/config"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/metrics"
	pkgredis "github.com/solsticegems/solstice-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. Services may be nil in
// partial deployments; their controllers then answer with an internal error.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     catalogsvc.Service
	Cart        cartsvc.Service
	Customize   customizesvc.Service
	Inventory   inventorysvc.Service
	Media       mediasvc.Service
	Auth        authsvc.Service
	Idempotency pkgredis.IdempotencyStore
	RateLimit   pkgredis.RateLimitStore
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
	Pingers     map[string]controllers.Pinger
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Pingers))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		// Storefront catalog. The static "detail" segment keeps product
		// pages out of the {subcategory} wildcard.
		r.Route("/products/{category}", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Catalog, d.HTTPMetrics, logg))
			r.Get("/detail/{id}", controllers.GetProductDetail(d.Catalog, logg))
			r.Get("/{subcategory}", controllers.ListProducts(d.Catalog, d.HTTPMetrics, logg))
		})

		r.Get("/customize/complete", controllers.CompleteCustomization(d.Customize, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(d.Cart, logg))
			r.Delete("/", controllers.ClearCart(d.Cart, logg))
			r.Post("/items", controllers.AddCartItem(d.Cart, logg))
			r.Put("/items/{lineId}", controllers.UpdateCartItem(d.Cart, logg))
			r.Delete("/items/{lineId}", controllers.RemoveCartItem(d.Cart, logg))
		})

		loginPolicy := middleware.LoginRateLimitPolicy{
			Window:     cfg.AuthRateLimit.LoginWindow,
			IPLimit:    cfg.AuthRateLimit.LoginIPLimit,
			EmailLimit: cfg.AuthRateLimit.LoginEmailLimit,
		}
		r.With(middleware.LoginRateLimit(loginPolicy, d.RateLimit, logg)).
			Post("/auth/login", controllers.AdminLogin(d.Auth, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg, "admin", "editor"))
			r.Use(middleware.Idempotency(d.Idempotency, logg))

			r.Post("/media", controllers.UploadMedia(d.Media, logg))

			r.Route("/{category}", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(d.Inventory, logg))
				r.Post("/", controllers.AdminCreateProduct(d.Inventory, d.Media, logg))
				r.Get("/{id}", controllers.AdminGetProduct(d.Inventory, logg))
				r.Put("/{id}", controllers.AdminUpdateProduct(d.Inventory, d.Media, logg))
				r.Put("/{id}/availability", controllers.AdminSetAvailability(d.Inventory, logg))
				r.With(middleware.RequireRole(logg, "admin")).
					Delete("/{id}", controllers.AdminDeleteProduct(d.Inventory, logg))
			})
		})
	})

	return r
}
