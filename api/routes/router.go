package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cadefab1n/cardapio-backend/api/controllers"
	cartcontrollers "github.com/cadefab1n/cardapio-backend/api/controllers/cart"
	"github.com/cadefab1n/cardapio-backend/api/middleware"
	authsvc "github.com/cadefab1n/cardapio-backend/internal/auth"
	cartsvc "github.com/cadefab1n/cardapio-backend/internal/cart"
	checkoutsvc "github.com/cadefab1n/cardapio-backend/internal/checkout"
	"github.com/cadefab1n/cardapio-backend/internal/combos"
	"github.com/cadefab1n/cardapio-backend/internal/products"
	"github.com/cadefab1n/cardapio-backend/internal/promotions"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	"github.com/cadefab1n/cardapio-backend/internal/categories"
	"github.com/cadefab1n/cardapio-backend/pkg/config"
	"github.com/cadefab1n/cardapio-backend/pkg/db"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/cadefab1n/cardapio-backend/pkg/metrics"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Carts       *cartsvc.Manager
	Auth        authsvc.Service
	Restaurants restaurants.Service
	Categories  categories.Service
	Products    products.Service
	Combos      combos.Service
	Promotions  promotions.Service
	Checkout    *checkoutsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/restaurant", controllers.PublicRestaurant(deps.Restaurants, logg))
		r.Get("/categories", controllers.PublicCategories(deps.Categories, deps.Restaurants, logg))
		r.Get("/products", controllers.PublicProducts(deps.Products, deps.Restaurants, logg))
		r.Get("/combos", controllers.PublicCombos(deps.Combos, deps.Restaurants, logg))
		r.Get("/promotions", controllers.PublicPromotions(deps.Promotions, deps.Restaurants, logg))
	})

	cartHandlers := cartcontrollers.Handlers{
		Carts:       deps.Carts,
		Products:    deps.Products,
		Combos:      deps.Combos,
		Promotions:  deps.Promotions,
		Restaurants: deps.Restaurants,
		Logger:      logg,
	}

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Cart, logg))
		r.Get("/", cartHandlers.Get)
		r.Delete("/", cartHandlers.Clear)
		r.Post("/items", cartHandlers.AddItem)
		r.Put("/items/{itemID}", cartHandlers.UpdateQuantity)
		r.Delete("/items/{itemID}", cartHandlers.RemoveItem)

		r.Get("/checkout/quote", controllers.CheckoutQuote(deps.Checkout, logg))
		r.Post("/checkout", controllers.CheckoutSend(deps.Checkout, logg))
		r.Post("/checkout/confirm", controllers.CheckoutConfirm(deps.Checkout, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/restaurant", func(r chi.Router) {
				r.Get("/", controllers.PublicRestaurant(deps.Restaurants, logg))
				r.Put("/", controllers.AdminUpsertRestaurant(deps.Restaurants, logg))
				r.Patch("/open", controllers.AdminSetRestaurantOpen(deps.Restaurants, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminListCategories(deps.Categories, deps.Restaurants, logg))
				r.Post("/", controllers.AdminCreateCategory(deps.Categories, deps.Restaurants, logg))
				r.Put("/{categoryID}", controllers.AdminUpdateCategory(deps.Categories, logg))
				r.Patch("/{categoryID}/toggle", controllers.AdminToggleCategory(deps.Categories, logg))
				r.Delete("/{categoryID}", controllers.AdminDeleteCategory(deps.Categories, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.Products, deps.Restaurants, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.Products, deps.Restaurants, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(deps.Products, logg))
				r.Patch("/{productID}/toggle", controllers.AdminToggleProduct(deps.Products, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.Products, logg))
			})

			r.Route("/combos", func(r chi.Router) {
				r.Get("/", controllers.AdminListCombos(deps.Combos, deps.Restaurants, logg))
				r.Post("/", controllers.AdminCreateCombo(deps.Combos, deps.Restaurants, logg))
				r.Put("/{comboID}", controllers.AdminUpdateCombo(deps.Combos, logg))
				r.Patch("/{comboID}/toggle", controllers.AdminToggleCombo(deps.Combos, logg))
				r.Delete("/{comboID}", controllers.AdminDeleteCombo(deps.Combos, logg))
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", controllers.AdminListPromotions(deps.Promotions, deps.Restaurants, logg))
				r.Post("/", controllers.AdminCreatePromotion(deps.Promotions, deps.Restaurants, logg))
				r.Put("/{promotionID}", controllers.AdminUpdatePromotion(deps.Promotions, logg))
				r.Patch("/{promotionID}/toggle", controllers.AdminTogglePromotion(deps.Promotions, logg))
				r.Delete("/{promotionID}", controllers.AdminDeletePromotion(deps.Promotions, logg))
			})
		})
	})

	return r
}
