package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marwan-kudus/jabar-onshop/internal/auth"
	"github.com/marwan-kudus/jabar-onshop/internal/cart"
	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/events"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
	"github.com/marwan-kudus/jabar-onshop/internal/order"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

type Deps struct {
	Logger *log.Logger

	Catalog   catalog.Repository
	Cart      cart.Repository
	Orders    order.Repository
	Users     *user.Service
	Sessions  *auth.SessionStore
	Authority auth.Authority
	Publisher events.Publisher

	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.Authenticate(d.Authority, d.Logger))
	r.Use(middleware.AccessPolicy)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "jabar-onshop"})
	})

	products := NewProductHandler(d.Catalog, d.Logger)
	categories := NewCategoryHandler(d.Catalog, d.Logger)
	carts := NewCartHandler(d.Cart, d.Logger)
	orders := NewOrderHandler(d.Orders, d.Publisher, d.Logger)
	authn := NewAuthHandler(d.Users, d.Sessions, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/{productId}", products.Get)
			r.Put("/{productId}", products.Update)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Post("/", carts.Upsert)
			r.Delete("/", carts.Remove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/{orderId}", orders.Get)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authn.Register)
			r.Post("/login", authn.Login)
			r.Post("/logout", authn.Logout)
		})
	})

	return r
}
