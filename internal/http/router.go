package http

import (
	"net/http"
	"time"

	"storefront-backend/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps collects everything the route table needs.
type RouterDeps struct {
	Auth     *AuthHandler
	Users    *UsersHandler
	Owners   *OwnersHandler
	Stores   *StoresHandler
	Catalog  *CatalogHandler
	Orders   *OrdersHandler
	Checkout *CheckoutHandler

	JWTSecret      string
	RequestTimeout time.Duration
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	if deps.Metrics != nil {
		r.Use(ObserveRequests(deps.Metrics))
	}
	r.Use(Authenticate(deps.JWTSecret))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", deps.Auth.Login)
		r.Post("/register-user", deps.Auth.RegisterUser)
		r.Post("/register-owner", deps.Auth.RegisterOwner)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/session", deps.Checkout.CreateSession)
			r.Post("/webhook", deps.Checkout.Webhook)
		})

		r.With(RequireOwner).Get("/orders/{orderID}", deps.Orders.GetOrder)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(RequireCorrectUser)
			r.Get("/", deps.Users.Get)
			r.Patch("/", deps.Users.Update)
			r.Delete("/", deps.Users.Delete)
			r.Post("/addresses", deps.Users.CreateAddress)
			r.Put("/addresses", deps.Users.UpdateAddress)
			r.Delete("/addresses", deps.Users.DeleteAddress)
		})

		r.Route("/owners/{ownerID}", func(r chi.Router) {
			r.Use(RequireCorrectOwner)
			r.Get("/", deps.Owners.Get)
			r.Patch("/", deps.Owners.Update)
			r.Delete("/", deps.Owners.Delete)
		})

		r.Route("/stores", func(r chi.Router) {
			r.With(RequireOwner).Post("/", deps.Stores.Create)
			r.With(RequireOwner).Put("/", deps.Stores.Update)
			r.With(RequireOwner).Delete("/", deps.Stores.Delete)

			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", deps.Stores.Get)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", deps.Catalog.ListCategories)
					r.With(RequireOwner).Post("/", deps.Catalog.CreateCategory)
					r.Get("/{categoryID}", deps.Catalog.GetCategory)
					r.With(RequireOwner).Put("/{categoryID}", deps.Catalog.UpdateCategory)
					r.With(RequireOwner).Delete("/{categoryID}", deps.Catalog.DeleteCategory)
				})

				r.Route("/products", func(r chi.Router) {
					r.Get("/", deps.Catalog.ListProducts)
					r.With(RequireOwner).Post("/", deps.Catalog.CreateProduct)
					r.Get("/{productID}", deps.Catalog.GetProduct)
					r.With(RequireOwner).Put("/{productID}", deps.Catalog.UpdateProduct)
					r.With(RequireOwner).Delete("/{productID}", deps.Catalog.DeleteProduct)
				})

				r.Route("/carousel", func(r chi.Router) {
					r.Get("/", deps.Catalog.GetCarousel)
					r.With(RequireOwner).Post("/", deps.Catalog.CreateCarousel)
					r.With(RequireOwner).Put("/", deps.Catalog.UpdateCarousel)
				})

				r.With(RequireOwner).Get("/orders", deps.Orders.ListStoreOrders)
			})
		})
	})

	return r
}
